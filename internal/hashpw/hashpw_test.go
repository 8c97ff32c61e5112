package hashpw

import "testing"

func TestGenerateSaltLengthAndAlphabet(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	if len(salt) != saltLength {
		t.Fatalf("salt length = %d, want %d", len(salt), saltLength)
	}
	for i, c := range []byte(salt) {
		if i == 0 {
			continue
		}
		if c < 37 || c > 125 {
			t.Fatalf("salt[%d] = %d out of printable range [37,125]", i, c)
		}
	}
}

func TestGenerateSaltNonDeterministic(t *testing.T) {
	a, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	b, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	if a == b {
		t.Fatalf("two salts collided: %q", a)
	}
}

func TestHashDeterministicWithFixedSalt(t *testing.T) {
	a, err := Hash("correct horse battery staple", 2, "abcdefghijklmnop")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := Hash("correct horse battery staple", 2, "abcdefghijklmnop")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a != b {
		t.Fatalf("same password+salt+cost produced different hashes:\n%q\n%q", a, b)
	}
}

func TestHashSensitiveToPassword(t *testing.T) {
	a, err := Hash("password-one", 2, "abcdefghijklmnop")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := Hash("password-two", 2, "abcdefghijklmnop")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a == b {
		t.Fatalf("different passwords produced the same hash: %q", a)
	}
}

func TestHashSensitiveToSalt(t *testing.T) {
	a, err := Hash("same-password", 2, "aaaaaaaaaaaaaaaa")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := Hash("same-password", 2, "bbbbbbbbbbbbbbbb")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a == b {
		t.Fatalf("different salts produced the same hash: %q", a)
	}
}

func TestHashSensitiveToCost(t *testing.T) {
	a, err := Hash("same-password", 1, "abcdefghijklmnop")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := Hash("same-password", 3, "abcdefghijklmnop")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a == b {
		t.Fatalf("different costs produced the same hash: %q", a)
	}
}

func TestHashWithoutSaltVaries(t *testing.T) {
	a, err := Hash("same-password", 2, "")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := Hash("same-password", 2, "")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a == b {
		t.Fatalf("omitting salt should draw a fresh one on every iteration, got identical hashes: %q", a)
	}
}

func TestHashShapeIsStable(t *testing.T) {
	out, err := Hash("shape-check", 3, "qrstuvwxyzabcdef")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("Hash returned empty output")
	}
	if out[0] != '$' {
		t.Fatalf("Hash output %q does not start with the %q record marker", out, "$")
	}
}

func TestInternalHashRoundIsDeterministic(t *testing.T) {
	memo := make(Memo, 0, 16)
	first := internalHashRound("pw", "0123456789abcdef", memo)
	second := internalHashRound("pw", "0123456789abcdef", memo)
	if first != second {
		t.Fatalf("internalHashRound is not pure: %+v vs %+v", first, second)
	}
}

func TestNthElementShuffleIsPermutation(t *testing.T) {
	data := []byte("abcdefgh")
	for _, n := range []int{-4, -1, 0, 1, 4} {
		shuffled := nthElementShuffle(data, n)
		if len(shuffled) != len(data) {
			t.Fatalf("n=%d: length changed: %d vs %d", n, len(shuffled), len(data))
		}
		seen := map[byte]int{}
		for _, b := range shuffled {
			seen[b]++
		}
		for _, b := range data {
			if seen[b] != 1 {
				t.Fatalf("n=%d: byte %q not present exactly once in shuffle of %q: %q", n, b, data, shuffled)
			}
		}
	}
}

func TestLatin1ToUTF8ExpandsHighBytes(t *testing.T) {
	out := latin1ToUTF8([]byte{0x41, 0x80, 0xFF})
	want := []byte{0x41, 0xC2, 0x80, 0xC3, 0xBF}
	if string(out) != string(want) {
		t.Fatalf("latin1ToUTF8 = %x, want %x", out, want)
	}
}
