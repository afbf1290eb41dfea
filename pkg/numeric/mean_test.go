package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPowerMean(t *testing.T) {
	values := []float64{1, 25}

	tests := []struct {
		name string
		p    float64
		want float64
	}{
		{"minimum", math.Inf(-1), 1},
		{"maximum", math.Inf(1), 25},
		{"geometric", 0, 5},
		{"arithmetic", 1, 13},
		{"harmonic", -1, 2 / (1.0 + 1.0/25)},
		{"quadratic", 2, math.Sqrt((1 + 625) / 2.0)},
		{"very negative", -1e6, 1},
		{"very positive", 1e6, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PowerMean(values, tt.p), 1e-4)
		})
	}
}

func TestPowerMean_Monotonic(t *testing.T) {
	values := []float64{1, 7, 40}
	prev := PowerMean(values, math.Inf(-1))

	for p := -50.0; p <= 50.0; p += 0.5 {
		current := PowerMean(values, p)
		assert.GreaterOrEqual(t, current+1e-9, prev, "p=%v", p)
		prev = current
	}
	assert.GreaterOrEqual(t, PowerMean(values, math.Inf(1))+1e-9, prev)
}

func TestPowerMean_EdgeCases(t *testing.T) {
	assert.True(t, math.IsNaN(PowerMean(nil, 1)))
	assert.True(t, math.IsNaN(PowerMean([]float64{-1, 2}, 1)))
	assert.Equal(t, 0.0, PowerMean([]float64{0, 4}, -1))
	assert.Equal(t, 0.0, PowerMean([]float64{0, 4}, 0))
	assert.Equal(t, 0.0, PowerMean([]float64{0, 0}, 3))
	assert.InDelta(t, 2.0, PowerMean([]float64{0, 4}, 1), 1e-12)
	assert.Equal(t, 3.0, PowerMean([]float64{3}, 0.5))
}
