package statistics

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"reservoirmc/domain/core"
	"reservoirmc/domain/reservoir"
)

// Description summarises one distribution for reports
type Description struct {
	Name        reservoir.VariableName      `json:"name"`
	Count       int                         `json:"count"`
	Mean        float64                     `json:"mean"`
	StdDev      float64                     `json:"std_dev"`
	Min         float64                     `json:"min"`
	Max         float64                     `json:"max"`
	Percentiles reservoir.PercentileSummary `json:"percentiles"`
}

// Median returns the sample median
func Median(sample []float64) (float64, error) {
	if len(sample) == 0 {
		return 0, core.NewEmptySampleError("median input")
	}
	median, err := stats.Median(sample)
	if err != nil {
		return 0, fmt.Errorf("median: %w", err)
	}
	return median, nil
}

// Describe computes summary moments and percentiles for a sample set
func Describe(s reservoir.SampleSet) (Description, error) {
	data := s.Values
	if len(data) == 0 {
		return Description{}, core.NewEmptySampleError(string(s.Name))
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return Description{}, fmt.Errorf("mean of %s: %w", s.Name, err)
	}
	stdDev, err := stats.StandardDeviation(data)
	if err != nil {
		return Description{}, fmt.Errorf("std dev of %s: %w", s.Name, err)
	}
	min, err := stats.Min(data)
	if err != nil {
		return Description{}, fmt.Errorf("min of %s: %w", s.Name, err)
	}
	max, err := stats.Max(data)
	if err != nil {
		return Description{}, fmt.Errorf("max of %s: %w", s.Name, err)
	}
	summary, err := Summarize(data)
	if err != nil {
		return Description{}, err
	}

	return Description{
		Name:        s.Name,
		Count:       len(data),
		Mean:        mean,
		StdDev:      stdDev,
		Min:         min,
		Max:         max,
		Percentiles: summary,
	}, nil
}

// Histogram holds equal-width bin counts over [Edges[0], Edges[len-1]]
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// NewHistogram bins sample into the given number of equal-width bins.
// The last bin is closed on the right so the maximum is counted. A sample
// with no spread lands entirely in the first bin.
func NewHistogram(sample []float64, bins int) (Histogram, error) {
	if bins <= 0 {
		return Histogram{}, core.NewInvalidParameterError("bins", fmt.Sprintf("must be positive, got %d", bins))
	}
	if len(sample) == 0 {
		return Histogram{}, core.NewEmptySampleError("histogram input")
	}

	sorted := sortedCopy(sample)
	lo, hi := sorted[0], sorted[len(sorted)-1]

	edges := floats.Span(make([]float64, bins+1), lo, hi)
	counts := make([]int, bins)
	if hi == lo {
		counts[0] = len(sorted)
		return Histogram{Edges: edges, Counts: counts}, nil
	}

	// stat.Histogram bins are half-open, so nudge the last divider past the max
	dividers := make([]float64, len(edges))
	copy(dividers, edges)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	for i, c := range stat.Histogram(nil, dividers, sorted, nil) {
		counts[i] = int(c)
	}
	return Histogram{Edges: edges, Counts: counts}, nil
}
