// Package vertex defines the opaque identifier for commit-graph nodes.
//
// A vertex name is an immutable byte string, typically a content hash.
// Equality and hashing are byte-exact; names are never reused or mutated
// once assigned to a commit.
package vertex

import (
	"encoding/hex"
	"unicode"
)

// Name is an immutable opaque byte identifier for a graph vertex (a commit).
//
// Name values are compared byte-for-byte. The underlying bytes must not be
// modified after construction - NameFromBytes copies its input to guarantee
// this.
type Name struct {
	data string
}

// NameFromBytes creates a Name from raw bytes. The bytes are copied.
func NameFromBytes(b []byte) Name {
	return Name{data: string(b)}
}

// NameFromString creates a Name from a string.
func NameFromString(s string) Name {
	return Name{data: s}
}

// Bytes returns a copy of the raw bytes backing the name.
func (n Name) Bytes() []byte {
	return []byte(n.data)
}

// Key returns the name as a string for use as a map key.
// The returned string shares the immutable backing data.
func (n Name) Key() string {
	return n.data
}

// IsZero reports whether the name is the zero value (empty).
func (n Name) IsZero() bool {
	return n.data == ""
}

// Equal reports whether two names are byte-identical.
func (n Name) Equal(other Name) bool {
	return n.data == other.data
}

// String renders the name for display: printable names are shown verbatim,
// binary names (e.g. raw hashes) as hex.
func (n Name) String() string {
	for _, r := range n.data {
		if r == unicode.ReplacementChar || !unicode.IsPrint(r) {
			return hex.EncodeToString([]byte(n.data))
		}
	}
	return n.data
}
