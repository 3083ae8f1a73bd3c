package math

import "golang.org/x/exp/constraints"

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// InRange reports whether every argument already lies in [low, high].
func InRange[T constraints.Ordered](low, high T, values ...T) bool {
	for _, v := range values {
		if Clamp(v, low, high) != v {
			return false
		}
	}
	return true
}

// IsColour reports whether all four channels are within [0, 1].
func (v Vec4) IsColour() bool {
	return InRange(0, 1, v.X, v.Y, v.Z, v.W)
}
