package scenario

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// VelocityStats summarises a velocity series.
// All fields except Count are NaN for an empty series.
type VelocityStats struct {
	Count int
	Mean  float64
	Min   float64
	Max   float64
	P50   float64
	P85   float64
	P95   float64
}

// mean is the arithmetic mean of xs, NaN when xs is empty.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

// computeVelocityStats does not modify xs.
func computeVelocityStats(xs []float64) VelocityStats {
	if len(xs) == 0 {
		nan := math.NaN()
		return VelocityStats{Mean: nan, Min: nan, Max: nan, P50: nan, P85: nan, P95: nan}
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	return VelocityStats{
		Count: len(xs),
		Mean:  stat.Mean(xs, nil),
		Min:   floats.Min(xs),
		Max:   floats.Max(xs),
		P50:   stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P85:   stat.Quantile(0.85, stat.Empirical, sorted, nil),
		P95:   stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
}
