package hashpw

import "fmt"

// Hash is C3: it drives internalHashRound for 2^cost iterations, folding
// each round's output into a 16-slot block of the memo table consulted by
// every later round. If salt is "", a fresh salt is generated on every
// iteration (not just the first) - this mirrors the distilled source
// exactly, quirks included.
func Hash(password string, cost int, salt string) (string, error) {
	if cost < 0 {
		return "", fmt.Errorf("hash password: cost must be non-negative, got %d", cost)
	}
	iterations := 1 << uint(cost)

	memo := make(Memo, iterations*16)
	current := password

	for i := 0; i < iterations; i++ {
		roundSalt := salt
		if roundSalt == "" {
			s, err := GenerateSalt()
			if err != nil {
				return "", fmt.Errorf("hash password: %w", err)
			}
			roundSalt = s
		}

		t := internalHashRound(current, roundSalt, memo[:i*16])

		b := i * 16
		memo[b+0] = t.H0
		memo[b+1] = t.H1
		memo[b+2] = t.H2
		memo[b+3] = t.H3
		memo[b+4] = t.H4
		memo[b+15] = t.H5
		memo[b+6] = t.H5 + t.H2
		memo[b+7] = t.H5 + t.H3
		memo[b+8] = t.H5 + t.H4
		memo[b+9] = t.H5 + t.H1
		memo[b+10] = t.H5 + t.H0
		memo[b+11] = t.H5 + t.H2
		memo[b+12] = t.H2 + t.H3
		memo[b+13] = t.H2 + t.H4
		memo[b+14] = t.H0 + t.H1
		memo[b+5] = t.H0 + t.H3

		current = t.H0
	}

	return current, nil
}
