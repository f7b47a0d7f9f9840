// Package numeric holds small generic comparison helpers shared by the
// index and bit-field arithmetic in the select and sparse layers,
// parameterized with golang.org/x/exp/constraints so they work
// uniformly over the mix of int, int64 and uint64 index types those layers
// use.
package numeric

import "golang.org/x/exp/constraints"

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Clamp constrains v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return Max(lo, Min(v, hi))
}
