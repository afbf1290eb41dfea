// Package numeric provides integer division and rounding helpers used by the
// thread pool's chunk-size arithmetic
package numeric

// Integer is the set of built-in integer types
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// DivideRoundingUp returns numerator/denominator rounded towards positive
// infinity for positive quotients. A zero numerator yields zero.
func DivideRoundingUp[T Integer](numerator, denominator T) T {
	if numerator == 0 {
		return 0
	}
	return 1 + (numerator-1)/denominator
}

// DivideRoundingDown returns the floor of numerator/denominator
func DivideRoundingDown[T Integer](numerator, denominator T) T {
	quotient := numerator / denominator
	if numerator%denominator != 0 && (numerator < 0) != (denominator < 0) {
		quotient--
	}
	return quotient
}

// DivideRoundingToClosest returns numerator/denominator rounded to the
// closest integer, halves away from zero
func DivideRoundingToClosest[T Integer](numerator, denominator T) T {
	half := denominator / 2
	if (numerator < 0) == (denominator < 0) {
		return (numerator + half) / denominator
	}
	return (numerator - half) / denominator
}

// Lerp interpolates linearly between a and b; t outside [0, 1] extrapolates
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
