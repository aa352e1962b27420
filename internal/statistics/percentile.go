// Package statistics computes percentile summaries, empirical CDFs and
// descriptive moments over sample sets.
package statistics

import (
	"math"
	"slices"

	"reservoirmc/domain/core"
	"reservoirmc/domain/reservoir"
)

// Well-known percentile thresholds
var SummaryPercentiles = []float64{10, 50, 90}

// Percentiles returns the requested percentiles of sample using linear
// interpolation between order statistics: for p over sorted data of length
// N the fractional rank is p/100*(N-1). The input is not modified.
func Percentiles(sample []float64, ps []float64) ([]float64, error) {
	if len(sample) == 0 {
		return nil, core.NewEmptySampleError("percentile input")
	}
	for _, p := range ps {
		if math.IsNaN(p) || p < 0 || p > 100 {
			return nil, core.NewInvalidPercentileError(p)
		}
	}

	sorted := sortedCopy(sample)
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = percentileSorted(sorted, p)
	}
	return out, nil
}

// Percentile returns a single percentile of sample
func Percentile(sample []float64, p float64) (float64, error) {
	out, err := Percentiles(sample, []float64{p})
	if err != nil {
		return 0, err
	}
	return out[0], nil
}

// Summarize returns the P10/P50/P90 of sample
func Summarize(sample []float64) (reservoir.PercentileSummary, error) {
	out, err := Percentiles(sample, SummaryPercentiles)
	if err != nil {
		return reservoir.PercentileSummary{}, err
	}
	return reservoir.PercentileSummary{P10: out[0], P50: out[1], P90: out[2]}, nil
}

// EmpiricalCDF returns the sorted sample paired with evenly spaced
// cumulative probabilities from 0 to 1, ready to plot as an S-curve.
func EmpiricalCDF(sample []float64) ([]reservoir.CDFPoint, error) {
	n := len(sample)
	if n == 0 {
		return nil, core.NewEmptySampleError("cdf input")
	}

	sorted := sortedCopy(sample)
	points := make([]reservoir.CDFPoint, n)
	for i, v := range sorted {
		prob := 0.0
		if n > 1 {
			prob = float64(i) / float64(n-1)
		}
		points[i] = reservoir.CDFPoint{Value: v, Probability: prob}
	}
	return points, nil
}

func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(n-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if upper >= n {
		upper = n - 1
	}
	if lower == upper {
		return sorted[lower]
	}

	frac := rank - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}

func sortedCopy(sample []float64) []float64 {
	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	slices.Sort(sorted)
	return sorted
}
