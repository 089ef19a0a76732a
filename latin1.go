// latin1.go
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file converts between the Latin-1 byte strings used as keys
// inside the compressed image (component B's trie alphabet, per
// spec.md's 127-character alphabet invariant) and the UTF-8 Go
// strings exposed at the facade/query boundary.

package binpack

import (
	"golang.org/x/text/encoding/charmap"
)

// ToLatin1 converts a UTF-8 string to its Latin-1 byte representation.
// ok is false if the string contains a rune with no Latin-1
// representation, in which case the caller should treat the lookup
// as "not found" rather than an error (spec.md §7).
func ToLatin1(s string) (b []byte, ok bool) {
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, false
	}
	return b, true
}

// FromLatin1 converts a Latin-1 byte string back to UTF-8.
func FromLatin1(b []byte) string {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		// Should not happen for well-formed single-byte Latin-1 input;
		// fall back to a byte-for-byte rune conversion.
		runes := make([]rune, len(b))
		for i, c := range b {
			runes[i] = rune(c)
		}
		return string(runes)
	}
	return string(out)
}
