package scenario

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeVelocityStats(t *testing.T) {
	xs := []float64{7, 3, 10, 1, 5, 9, 2, 8, 4, 6}
	orig := append([]float64(nil), xs...)

	got := computeVelocityStats(xs)

	assert.Equal(t, 10, got.Count)
	assert.InDelta(t, 5.5, got.Mean, 1e-12)
	assert.Equal(t, 1.0, got.Min)
	assert.Equal(t, 10.0, got.Max)
	assert.Equal(t, 5.0, got.P50)
	assert.Equal(t, 9.0, got.P85)
	assert.Equal(t, 10.0, got.P95)
	assert.Equal(t, orig, xs, "input must not be reordered")
}

func TestComputeVelocityStats_Empty(t *testing.T) {
	got := computeVelocityStats(nil)
	assert.Equal(t, 0, got.Count)
	for name, v := range map[string]float64{
		"mean": got.Mean, "min": got.Min, "max": got.Max,
		"p50": got.P50, "p85": got.P85, "p95": got.P95,
	} {
		assert.True(t, math.IsNaN(v), "%s = %v, want NaN", name, v)
	}
}

func TestMean(t *testing.T) {
	assert.True(t, math.IsNaN(mean(nil)))
	assert.Equal(t, 10.0, mean([]float64{10}))
	assert.InDelta(t, 2.5, mean([]float64{1, 2, 3, 4}), 1e-12)
}
