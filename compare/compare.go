/*
Package compare provides the comparators which order the keys of ordered
cluster trees.

A Comparator pairs a three-way comparison with a 64-bit fingerprint. Trees
order keys by fingerprint first and use Compare only to break ties, so
comparisons mostly reduce to an integer compare. A fingerprint must be
consistent with Compare: keys comparing equal must have equal fingerprints.
If the fingerprint is order-preserving as well (a < b implies
Fingerprint(a) <= Fingerprint(b)), a tree iterates keys in Compare order;
otherwise the order is by fingerprint, which is still a total order.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package compare

import (
	"cmp"
	"math"
)

// Comparator orders keys of type K.
type Comparator[K any] interface {
	// Compare returns a negative number if a < b, zero if a == b and a
	// positive number if a > b.
	Compare(a, b K) int
	// Fingerprint returns the primary ordering key of k.
	Fingerprint(k K) uint64
}

// --- Func ------------------------------------------------------------------

type funcComparator[K any] struct {
	fn func(a, b K) int
}

// Func adapts a comparison function. All keys share the fingerprint 0, so
// every comparison calls fn.
func Func[K any](fn func(a, b K) int) Comparator[K] {
	return funcComparator[K]{fn: fn}
}

func (c funcComparator[K]) Compare(a, b K) int     { return c.fn(a, b) }
func (c funcComparator[K]) Fingerprint(_ K) uint64 { return 0 }

// --- Ordered ---------------------------------------------------------------

// Ordered is the natural comparator for the built-in ordered types, using
// cmp.Compare. Its fingerprint is order-preserving for integers, floats and
// strings (by their first 8 bytes); other types fall back to a constant
// fingerprint.
type Ordered[K cmp.Ordered] struct{}

// Compare implements Comparator.
func (Ordered[K]) Compare(a, b K) int {
	return cmp.Compare(a, b)
}

// Fingerprint implements Comparator.
func (Ordered[K]) Fingerprint(k K) uint64 {
	switch v := any(k).(type) {
	case int:
		return signedPrint(int64(v))
	case int8:
		return signedPrint(int64(v))
	case int16:
		return signedPrint(int64(v))
	case int32:
		return signedPrint(int64(v))
	case int64:
		return signedPrint(v)
	case uint:
		return uint64(v)
	case uint8:
		return uint64(v)
	case uint16:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	case uintptr:
		return uint64(v)
	case float32:
		return floatPrint(float64(v))
	case float64:
		return floatPrint(v)
	case string:
		return stringPrint(v)
	}
	return 0
}

func signedPrint(v int64) uint64 {
	return uint64(v) ^ (1 << 63)
}

// floatPrint maps floats to integers of the same order. NaN sorts first,
// as with cmp.Compare, and both zeros share one fingerprint.
func floatPrint(f float64) uint64 {
	if math.IsNaN(f) {
		return 0
	}
	if f == 0 {
		return 1 << 63
	}
	bits := math.Float64bits(f)
	if bits>>63 == 1 {
		return ^bits
	}
	return bits | 1<<63
}

// stringPrint packs the first 8 bytes of s big-endian, padded with zeros.
func stringPrint(s string) uint64 {
	var fp uint64
	for i := 0; i < 8; i++ {
		fp <<= 8
		if i < len(s) {
			fp |= uint64(s[i])
		}
	}
	return fp
}
