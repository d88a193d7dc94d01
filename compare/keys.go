package compare

import (
	"bytes"
	"cmp"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Hashed fingerprints strings by their xxhash digest. The fingerprint does
// not follow Compare, which is byte-wise; a container using Hashed orders
// its keys by digest first, ties broken by Compare. Iteration order looks
// random, lookups are fast for keys with long common prefixes.
type Hashed struct{}

// Compare implements Comparator.
func (Hashed) Compare(a, b string) int {
	return cmp.Compare(a, b)
}

// Fingerprint implements Comparator.
func (Hashed) Fingerprint(s string) uint64 {
	return xxhash.Sum64String(s)
}

// UUID orders UUIDs byte-wise. The fingerprint is the leading 8 bytes.
type UUID struct{}

// Compare implements Comparator.
func (UUID) Compare(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

// Fingerprint implements Comparator.
func (UUID) Fingerprint(u uuid.UUID) uint64 {
	return binary.BigEndian.Uint64(u[:8])
}
