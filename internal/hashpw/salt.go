// Package hashpw implements the bespoke password-hashing construction: a
// single internal hash round (C2) iterated by a password hasher (C3) over a
// self-referential memo table, seeded by a random salt (C1).
package hashpw

import (
	"crypto/rand"
	"fmt"
)

const saltLength = 16

const saltLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateSalt returns a fresh 16-character salt. The first character is
// drawn from the 52-letter ASCII alphabet; the remaining 15 land in the
// printable range chr(37)..chr(125).
func GenerateSalt() (string, error) {
	raw := make([]byte, saltLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	buf := make([]byte, saltLength)
	buf[0] = saltLetters[int(raw[0])%len(saltLetters)]
	for i := 1; i < saltLength; i++ {
		buf[i] = byte(int(raw[i])%89 + 37)
	}
	return string(buf), nil
}
