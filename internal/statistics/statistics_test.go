package statistics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservoirmc/domain/core"
	"reservoirmc/domain/reservoir"
)

func TestPercentiles_LinearInterpolation(t *testing.T) {
	data := []float64{4, 1, 3, 2}

	got, err := Percentiles(data, []float64{0, 10, 50, 90, 100})
	require.NoError(t, err)

	want := []float64{1, 1.3, 2.5, 3.7, 4}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12, "percentile index %d", i)
	}

	// Input must not be reordered
	assert.Equal(t, []float64{4, 1, 3, 2}, data)
}

func TestPercentiles_SingleElement(t *testing.T) {
	got, err := Percentiles([]float64{7}, []float64{0, 37.5, 100})
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 7, 7}, got)
}

func TestPercentiles_Errors(t *testing.T) {
	_, err := Percentiles([]float64{}, []float64{50})
	assert.True(t, core.IsEmptySample(err), "expected EmptySample, got %v", err)

	_, err = Percentiles([]float64{1, 2, 3}, []float64{150})
	assert.True(t, core.IsInvalidPercentile(err), "expected InvalidPercentile, got %v", err)

	_, err = Percentiles([]float64{1, 2, 3}, []float64{-0.1})
	assert.True(t, core.IsInvalidPercentile(err))

	_, err = Percentiles([]float64{1, 2, 3}, []float64{math.NaN()})
	assert.True(t, core.IsInvalidPercentile(err))
}

func TestPercentiles_Monotonic(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	data := make([]float64, 997)
	for i := range data {
		data[i] = rng.NormFloat64()*3 + 10
	}

	ps := make([]float64, 101)
	for i := range ps {
		ps[i] = float64(i)
	}
	got, err := Percentiles(data, ps)
	require.NoError(t, err)

	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Fatalf("percentiles not monotonic at p=%v: %v < %v", ps[i], got[i], got[i-1])
		}
	}

	summary, err := Summarize(data)
	require.NoError(t, err)
	assert.LessOrEqual(t, summary.P10, summary.P50)
	assert.LessOrEqual(t, summary.P50, summary.P90)
	assert.InDelta(t, summary.P90-summary.P10, summary.Spread(), 1e-12)
}

func TestMedian_MatchesFiftiethPercentile(t *testing.T) {
	data := []float64{5, 1, 9, 3, 7, 2}

	median, err := Median(data)
	require.NoError(t, err)
	p50, err := Percentile(data, 50)
	require.NoError(t, err)

	assert.InDelta(t, 4.0, median, 1e-12)
	assert.InDelta(t, median, p50, 1e-12)

	_, err = Median(nil)
	assert.True(t, core.IsEmptySample(err))
}

func TestEmpiricalCDF(t *testing.T) {
	points, err := EmpiricalCDF([]float64{3, 1, 2, 2, 5})
	require.NoError(t, err)
	require.Len(t, points, 5)

	wantValues := []float64{1, 2, 2, 3, 5}
	for i, p := range points {
		assert.Equal(t, wantValues[i], p.Value)
		assert.InDelta(t, float64(i)/4, p.Probability, 1e-12)
	}
	assert.Equal(t, 0.0, points[0].Probability)
	assert.Equal(t, 1.0, points[4].Probability)

	single, err := EmpiricalCDF([]float64{42})
	require.NoError(t, err)
	assert.Equal(t, []reservoir.CDFPoint{{Value: 42, Probability: 0}}, single)

	_, err = EmpiricalCDF(nil)
	assert.True(t, core.IsEmptySample(err))
}

func TestDescribe(t *testing.T) {
	s := reservoir.NewSampleSet(reservoir.Area, []float64{2, 4, 4, 4, 5, 5, 7, 9})

	d, err := Describe(s)
	require.NoError(t, err)

	assert.Equal(t, reservoir.Area, d.Name)
	assert.Equal(t, 8, d.Count)
	assert.InDelta(t, 5.0, d.Mean, 1e-12)
	assert.InDelta(t, 2.0, d.StdDev, 1e-12)
	assert.Equal(t, 2.0, d.Min)
	assert.Equal(t, 9.0, d.Max)
	assert.InDelta(t, 4.5, d.Percentiles.P50, 1e-12)

	_, err = Describe(reservoir.NewSampleSet(reservoir.Area, nil))
	assert.True(t, core.IsEmptySample(err))
}

func TestNewHistogram(t *testing.T) {
	h, err := NewHistogram([]float64{0, 1, 2, 3, 4}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2, 4}, h.Edges)
	assert.Equal(t, []int{2, 3}, h.Counts)

	flat, err := NewHistogram([]float64{3, 3, 3}, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0, 0, 0}, flat.Counts)

	_, err = NewHistogram([]float64{1}, 0)
	assert.True(t, core.IsInvalidParameter(err))

	_, err = NewHistogram(nil, 10)
	assert.True(t, core.IsEmptySample(err))
}

func TestNewHistogram_MaximumInClosedLastBin(t *testing.T) {
	h, err := NewHistogram([]float64{10, 20, 20, 20}, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 0, 0, 3}, h.Counts)
	assert.Equal(t, 20.0, h.Edges[len(h.Edges)-1])

	single, err := NewHistogram([]float64{7}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 0}, single.Counts)
	assert.Equal(t, []float64{7, 7, 7, 7}, single.Edges)
}

func TestNewHistogram_CountsEverySample(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	sample := make([]float64, 10000)
	for i := range sample {
		sample[i] = rng.NormFloat64()
	}

	h, err := NewHistogram(sample, 50)
	require.NoError(t, err)
	require.Len(t, h.Edges, 51)

	total := 0
	for _, c := range h.Counts {
		total += c
	}
	assert.Equal(t, len(sample), total)
	assert.Positive(t, h.Counts[0])
	assert.Positive(t, h.Counts[len(h.Counts)-1])
	for i := 1; i < len(h.Edges); i++ {
		assert.Greater(t, h.Edges[i], h.Edges[i-1])
	}
}
