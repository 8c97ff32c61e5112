// Package container implements the ZIP container format (C7) and the
// top-level encrypt/decrypt/inspect flows (C8) built on top of
// internal/hashpw, internal/transform and internal/chunked.
package container

import (
	"fmt"
	"strconv"
	"strings"
)

// Metadata is the four-line plaintext record stored as filedata.crypt
// inside the container, and (encrypted) as filedata_enc.crypt.
type Metadata struct {
	File       string
	Salt       string
	Cost       int
	HashVerify string
}

// Format renders m in the fixed "key : value" line order the distilled
// construction uses, one newline-terminated line per field, in this exact
// order: file, salt, cost, hash_verify.
func (m Metadata) Format() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "file : %s\n", m.File)
	fmt.Fprintf(&b, "salt : %s\n", m.Salt)
	fmt.Fprintf(&b, "cost : %d\n", m.Cost)
	fmt.Fprintf(&b, "hash_verify : %s\n", m.HashVerify)
	return []byte(b.String())
}

// ParseMetadata recovers a Metadata record from its formatted bytes. Lines
// that don't match a known prefix are ignored; cost defaults to 10 if its
// line is missing or unparsable.
func ParseMetadata(data []byte) Metadata {
	m := Metadata{Cost: 10}
	for _, line := range strings.Split(string(data), "\n") {
		switch {
		case strings.HasPrefix(line, "file : "):
			m.File = strings.TrimPrefix(line, "file : ")
		case strings.HasPrefix(line, "salt : "):
			m.Salt = strings.TrimPrefix(line, "salt : ")
		case strings.HasPrefix(line, "cost : "):
			if c, err := strconv.Atoi(strings.TrimPrefix(line, "cost : ")); err == nil {
				m.Cost = c
			}
		case strings.HasPrefix(line, "hash_verify : "):
			m.HashVerify = strings.TrimPrefix(line, "hash_verify : ")
		}
	}
	return m
}
