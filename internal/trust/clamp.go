package trust

import "golang.org/x/exp/constraints"

// Clamp bounds v to [lo, hi]. Every bounded field in the trust, emotion, and
// fate dynamics goes through this rather than rejecting out-of-range input.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
