// Package combiner applies the volumetric product to sampled inputs.
package combiner

import (
	"gonum.org/v1/gonum/floats"

	"reservoirmc/domain/core"
	"reservoirmc/domain/reservoir"
)

// Combine computes, for every scenario index i,
//
//	area[i] * thickness[i] * porosity[i] * (1 - saturation[i]) * recovery[i]
//
// saturation is the raw draw; it is inverted here.
func Combine(area, thickness, porosity, saturation, recovery reservoir.SampleSet) (reservoir.SampleSet, error) {
	n := area.Len()
	for _, s := range []reservoir.SampleSet{thickness, porosity, saturation, recovery} {
		if s.Len() != n {
			return reservoir.SampleSet{}, core.NewShapeMismatchError(string(s.Name), s.Len(), n)
		}
	}

	out := area.Copy()
	floats.Mul(out, thickness.Values)
	floats.Mul(out, porosity.Values)
	floats.Mul(out, SaturationImpact(saturation).Values)
	floats.Mul(out, recovery.Values)

	return reservoir.NewSampleSet(reservoir.TotalRecoverableVolume, out), nil
}

// CombineSets combines sample sets given in the fixed variable order
func CombineSets(sets []reservoir.SampleSet) (reservoir.SampleSet, error) {
	if len(sets) != len(reservoir.VariableNames()) {
		return reservoir.SampleSet{}, core.NewInvalidParameterError("sample sets", "expected one per input variable")
	}
	return Combine(sets[0], sets[1], sets[2], sets[3], sets[4])
}

// SaturationImpact returns 1 - s elementwise, the hydrocarbon fraction
func SaturationImpact(s reservoir.SampleSet) reservoir.SampleSet {
	out := make([]float64, s.Len())
	floats.ScaleTo(out, -1, s.Values)
	floats.AddConst(1, out)
	return reservoir.NewSampleSet(reservoir.SaturationImpact, out)
}

// SensitivityInputs returns the sets the sensitivity analysis works on:
// the raw sets in fixed order with saturation replaced by 1 - saturation.
func SensitivityInputs(sets []reservoir.SampleSet) ([]reservoir.SampleSet, error) {
	if len(sets) != len(reservoir.VariableNames()) {
		return nil, core.NewInvalidParameterError("sample sets", "expected one per input variable")
	}
	out := make([]reservoir.SampleSet, len(sets))
	copy(out, sets)
	out[3] = SaturationImpact(sets[3])
	return out, nil
}
