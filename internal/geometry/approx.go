package geometry

import "math"

// DefaultEpsilon is the relative tolerance used by LooseEqual.
const DefaultEpsilon = 0.01

// LooseEqual reports whether a and b are equal within the default relative
// tolerance.
func LooseEqual(a, b float64) bool {
	return LooseEqualEps(a, b, DefaultEpsilon)
}

// LooseEqualEps reports whether a and b are equal within a relative
// tolerance of eps. Exact equality always passes, so an eps of 0 degrades
// to ==.
//
// The tolerance base is (|a|+|b|)/2 + |b|/2, i.e. |a|/2 + |b|: b weighs
// double, so callers pass the reference dimension second.
func LooseEqualEps(a, b, eps float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= eps*((math.Abs(a)+math.Abs(b))/2+math.Abs(b)/2)
}
