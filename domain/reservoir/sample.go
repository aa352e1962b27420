package reservoir

// SampleSet is an ordered sequence of draws for one variable.
// Values must not be mutated once the set is handed out.
type SampleSet struct {
	Name   VariableName `json:"name"`
	Values []float64    `json:"values"`
}

// NewSampleSet wraps values without copying
func NewSampleSet(name VariableName, values []float64) SampleSet {
	return SampleSet{Name: name, Values: values}
}

// Len returns the number of draws
func (s SampleSet) Len() int { return len(s.Values) }

// At returns the i-th draw
func (s SampleSet) At(i int) float64 { return s.Values[i] }

// Copy returns a copy of the draws safe for the caller to modify
func (s SampleSet) Copy() []float64 {
	out := make([]float64, len(s.Values))
	copy(out, s.Values)
	return out
}

// PercentileSummary holds the P10/P50/P90 of a distribution
type PercentileSummary struct {
	P10 float64 `json:"p10"`
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
}

// Spread is the P10-P90 interval width
func (p PercentileSummary) Spread() float64 { return p.P90 - p.P10 }

// CDFPoint pairs a sorted value with its cumulative probability
type CDFPoint struct {
	Value       float64 `json:"value"`
	Probability float64 `json:"probability"`
}

// TornadoRange is one variable's swing when it alone moves from P10 to P90,
// the others held at their medians.
type TornadoRange struct {
	Name         VariableName `json:"name"`
	Low          float64      `json:"low"`
	Mid          float64      `json:"mid"`
	High         float64      `json:"high"`
	OtherProduct float64      `json:"other_product"`
}

// Width is High - Low; larger widths mean more influence on the outcome
func (t TornadoRange) Width() float64 { return t.High - t.Low }

// MarginalContribution is a variable's draws scaled by the product of the
// other variables' medians.
type MarginalContribution struct {
	SampleSet
	OtherProduct float64 `json:"other_product"`
}
