package numeric

import (
	"math"
)

// PowerMean returns the generalized mean of values with exponent p.
//
// p = 0 is the geometric mean, p = 1 the arithmetic mean, and p = ±Inf the
// maximum and minimum respectively. The result is non-decreasing in p.
// Values must be non-negative; an empty slice or a negative value yields NaN.
func PowerMean(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < 0 || math.IsNaN(v) {
			return math.NaN()
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	switch {
	case math.IsInf(p, 1):
		return hi
	case math.IsInf(p, -1):
		return lo
	case p == 0:
		return geometricMean(values)
	case p > 0:
		if hi == 0 {
			return 0
		}
		return hi * scaledMean(values, hi, p)
	default:
		if lo == 0 {
			return 0
		}
		return lo * scaledMean(values, lo, p)
	}
}

// scaledMean computes (mean((v/scale)^p))^(1/p). Scaling by the max for
// positive p and by the min for negative p keeps every term in [0, 1].
func scaledMean(values []float64, scale, p float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += math.Pow(v/scale, p)
	}
	return math.Pow(sum/float64(len(values)), 1/p)
}

func geometricMean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += math.Log(v)
	}
	return math.Exp(sum / float64(len(values)))
}
