package numeric

import (
	"errors"
	"fmt"
	"math"
	"unsafe"
)

// ErrOverflow indicates that a value does not fit the target integer type
var ErrOverflow = errors.New("numeric overflow")

// OverflowError reports a rounding result outside the target type's range
type OverflowError struct {
	// Value is the offending input
	Value float64

	// Min and Max are the bounds of the target type
	Min string
	Max string
}

// Error implements the error interface
func (e *OverflowError) Error() string {
	return fmt.Sprintf("numeric overflow: %g is outside [%s, %s]", e.Value, e.Min, e.Max)
}

// Is reports ErrOverflow as the error category
func (e *OverflowError) Is(target error) bool {
	return target == ErrOverflow
}

// Round rounds x to the closest T, halves away from zero. NaN and values
// outside T's range return an *OverflowError.
func Round[T Integer](x float64) (T, error) {
	lo, hi := bounds[T]()
	bits := int(unsafe.Sizeof(lo)) * 8
	r := math.Round(x)

	var inRange bool
	if lo < 0 {
		limit := math.Ldexp(1, bits-1)
		inRange = r >= -limit && r < limit
	} else {
		inRange = r >= 0 && r < math.Ldexp(1, bits)
	}
	if math.IsNaN(r) || !inRange {
		return 0, &OverflowError{
			Value: x,
			Min:   fmt.Sprint(lo),
			Max:   fmt.Sprint(hi),
		}
	}
	return T(r), nil
}

func bounds[T Integer]() (lo, hi T) {
	var zero T
	bits := unsafe.Sizeof(zero) * 8
	if ^zero < 0 {
		lo = T(1) << (bits - 1)
		hi = lo - 1
		return lo, hi
	}
	return 0, ^zero
}
