package container

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	dir := t.TempDir()
	plaintext := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog\n"), 500)
	in := writeTempFile(t, dir, "plain.txt", plaintext)
	enc := filepath.Join(dir, "plain.txt.enc")
	dec := filepath.Join(dir, "plain.txt.dec")

	if err := Encrypt(in, enc, "hunter2", EncryptOptions{Cost: 2, Workers: 3}); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if err := Decrypt(enc, dec, "hunter2"); err != nil {
		t.Fatalf("Decrypt: %v", err)
	}

	got, err := os.ReadFile(dec)
	if err != nil {
		t.Fatalf("read decrypted output: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(plaintext))
	}
}

func TestEncryptDecryptEmptyFile(t *testing.T) {
	dir := t.TempDir()
	in := writeTempFile(t, dir, "empty.bin", nil)
	enc := filepath.Join(dir, "empty.bin.enc")
	dec := filepath.Join(dir, "empty.bin.dec")

	if err := Encrypt(in, enc, "pw", EncryptOptions{Cost: 1, Workers: 2}); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if err := Decrypt(enc, dec, "pw"); err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	got, err := os.ReadFile(dec)
	if err != nil {
		t.Fatalf("read decrypted output: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty output, got %d bytes", len(got))
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	dir := t.TempDir()
	in := writeTempFile(t, dir, "secret.txt", []byte("top secret payload"))
	enc := filepath.Join(dir, "secret.txt.enc")
	dec := filepath.Join(dir, "secret.txt.dec")

	if err := Encrypt(in, enc, "correct-password", EncryptOptions{Cost: 1, Workers: 1}); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	err := Decrypt(enc, dec, "wrong-password")
	if err == nil {
		t.Fatalf("expected an error for a wrong password")
	}
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
}

func TestEncryptionIsNonDeterministic(t *testing.T) {
	dir := t.TempDir()
	in := writeTempFile(t, dir, "same.txt", []byte("identical plaintext input"))
	enc1 := filepath.Join(dir, "same1.enc")
	enc2 := filepath.Join(dir, "same2.enc")

	if err := Encrypt(in, enc1, "pw", EncryptOptions{Cost: 1, Workers: 1}); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if err := Encrypt(in, enc2, "pw", EncryptOptions{Cost: 1, Workers: 1}); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	b1, err := os.ReadFile(enc1)
	if err != nil {
		t.Fatalf("read enc1: %v", err)
	}
	b2, err := os.ReadFile(enc2)
	if err != nil {
		t.Fatalf("read enc2: %v", err)
	}
	if bytes.Equal(b1, b2) {
		t.Fatalf("two encryptions of the same input+password produced byte-identical containers")
	}
}

func TestInspectWithoutPassword(t *testing.T) {
	dir := t.TempDir()
	in := writeTempFile(t, dir, "doc.txt", bytes.Repeat([]byte("x"), 6*1024*1024))
	enc := filepath.Join(dir, "doc.txt.enc")

	if err := Encrypt(in, enc, "pw", EncryptOptions{Cost: 1, Workers: 4}); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	meta, chunks, err := Inspect(enc)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if meta.File != "doc.txt" {
		t.Fatalf("meta.File = %q, want %q", meta.File, "doc.txt")
	}
	if meta.Cost != 1 {
		t.Fatalf("meta.Cost = %d, want 1", meta.Cost)
	}
	if chunks == 0 {
		t.Fatalf("expected at least one chunk for a 6MB file")
	}
}

type fakeProgress struct {
	shown    int
	finished bool
}

func (f *fakeProgress) ShowProgress(total int)                 { f.shown = total }
func (f *fakeProgress) UpdateProgress(completed int, _ float64) {}
func (f *fakeProgress) FinishProgress()                         { f.finished = true }

func TestEncryptReportsProgress(t *testing.T) {
	dir := t.TempDir()
	in := writeTempFile(t, dir, "big.bin", bytes.Repeat([]byte("z"), 6*1024*1024))
	enc := filepath.Join(dir, "big.bin.enc")

	fp := &fakeProgress{}
	if err := Encrypt(in, enc, "pw", EncryptOptions{Cost: 1, Workers: 4, Progress: fp}); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if fp.shown == 0 {
		t.Fatalf("expected ShowProgress to be called with a nonzero chunk count")
	}
	if !fp.finished {
		t.Fatalf("expected FinishProgress to be called")
	}
}

func TestDecryptMalformedContainer(t *testing.T) {
	dir := t.TempDir()
	bogus := writeTempFile(t, dir, "bogus.enc", []byte("not a zip file"))
	dec := filepath.Join(dir, "bogus.dec")

	err := Decrypt(bogus, dec, "pw")
	if err == nil {
		t.Fatalf("expected an error for a non-zip input")
	}
}

func TestMetadataFormatParseRoundTrip(t *testing.T) {
	m := Metadata{File: "report.pdf", Salt: "saltsaltsaltsalt", Cost: 12, HashVerify: "$saltsaltsaltsalt$/$abc"}
	parsed := ParseMetadata(m.Format())
	if parsed != m {
		t.Fatalf("ParseMetadata(Format(m)) = %+v, want %+v", parsed, m)
	}
}
