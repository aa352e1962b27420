// Package sensitivity performs one-at-a-time tornado analysis: each input
// swings across its own distribution while the others sit at their medians.
package sensitivity

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"reservoirmc/domain/core"
	"reservoirmc/domain/reservoir"
	"reservoirmc/internal/statistics"
)

// Analysis holds the per-variable sensitivity results in fixed variable order
type Analysis struct {
	Medians       []float64                        `json:"medians"`
	Contributions []reservoir.MarginalContribution `json:"-"`
	Tornado       []reservoir.TornadoRange         `json:"tornado"`
	// ContributionSummaries are the percentiles of each MarginalContribution.
	// They equal Tornado up to rounding since the scale factor is positive.
	ContributionSummaries []reservoir.PercentileSummary `json:"contribution_summaries"`
}

// Analyze runs the sensitivity decomposition. vars must be in fixed
// variable order with saturation already inverted to 1 - saturation.
func Analyze(vars []reservoir.SampleSet) (*Analysis, error) {
	if err := validate(vars); err != nil {
		return nil, err
	}

	medians := make([]float64, len(vars))
	for i, v := range vars {
		m, err := statistics.Median(v.Values)
		if err != nil {
			return nil, fmt.Errorf("median of %s: %w", v.Name, err)
		}
		medians[i] = m
	}

	a := &Analysis{
		Medians:               medians,
		Contributions:         make([]reservoir.MarginalContribution, len(vars)),
		Tornado:               make([]reservoir.TornadoRange, len(vars)),
		ContributionSummaries: make([]reservoir.PercentileSummary, len(vars)),
	}

	for idx, v := range vars {
		otherProd := OtherProduct(medians, idx)

		scaled := make([]float64, v.Len())
		floats.ScaleTo(scaled, otherProd, v.Values)
		a.Contributions[idx] = reservoir.MarginalContribution{
			SampleSet:    reservoir.NewSampleSet(v.Name, scaled),
			OtherProduct: otherProd,
		}

		own, err := statistics.Percentiles(v.Values, statistics.SummaryPercentiles)
		if err != nil {
			return nil, fmt.Errorf("percentiles of %s: %w", v.Name, err)
		}
		a.Tornado[idx] = reservoir.TornadoRange{
			Name:         v.Name,
			Low:          own[0] * otherProd,
			Mid:          own[1] * otherProd,
			High:         own[2] * otherProd,
			OtherProduct: otherProd,
		}

		summary, err := statistics.Summarize(scaled)
		if err != nil {
			return nil, fmt.Errorf("contribution of %s: %w", v.Name, err)
		}
		a.ContributionSummaries[idx] = summary
	}

	return a, nil
}

// OtherProduct multiplies every median except the one at idx, left to right
func OtherProduct(medians []float64, idx int) float64 {
	others := make([]float64, 0, len(medians)-1)
	others = append(others, medians[:idx]...)
	others = append(others, medians[idx+1:]...)
	return floats.Prod(others)
}

// Widths returns High - Low for each variable in fixed order
func (a *Analysis) Widths() []float64 {
	widths := make([]float64, len(a.Tornado))
	for i, t := range a.Tornado {
		widths[i] = t.Width()
	}
	return widths
}

// Ranked returns the tornado ranges ordered by descending width.
// Equal widths keep the fixed variable order.
func (a *Analysis) Ranked() []reservoir.TornadoRange {
	ranked := make([]reservoir.TornadoRange, len(a.Tornado))
	copy(ranked, a.Tornado)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Width() > ranked[j].Width()
	})
	return ranked
}

// MostInfluential returns the variable with the widest tornado range
func (a *Analysis) MostInfluential() reservoir.TornadoRange {
	return a.Ranked()[0]
}

// Contribution returns the marginal contribution for name
func (a *Analysis) Contribution(name reservoir.VariableName) (reservoir.MarginalContribution, bool) {
	for _, c := range a.Contributions {
		if c.Name == name {
			return c, true
		}
	}
	return reservoir.MarginalContribution{}, false
}

func validate(vars []reservoir.SampleSet) error {
	names := reservoir.VariableNames()
	if len(vars) != len(names) {
		return core.NewInvalidParameterError("variables", fmt.Sprintf("expected %d sample sets, got %d", len(names), len(vars)))
	}

	n := vars[0].Len()
	for i, v := range vars {
		if v.Name != names[i] {
			return core.NewInvalidParameterError("variables", fmt.Sprintf("position %d must be %s, got %s", i, names[i], v.Name))
		}
		if v.Len() == 0 {
			return core.NewEmptySampleError(string(v.Name))
		}
		if v.Len() != n {
			return core.NewShapeMismatchError(string(v.Name), v.Len(), n)
		}
	}
	return nil
}
