package av1

import "golang.org/x/exp/constraints"

// clip3 clamps v to [lo, hi]. Generic over any ordered numeric type so the
// same helper serves MI coordinates, quantizer indices, and coefficient
// magnitudes without per-type duplication.
func clip3[T constraints.Integer](lo, hi, v T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minT[T constraints.Integer](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func maxT[T constraints.Integer](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
