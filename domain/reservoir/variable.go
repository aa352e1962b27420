package reservoir

import (
	"fmt"
	"math"

	"reservoirmc/domain/core"
)

// VariableName identifies one of the five volumetric inputs
type VariableName string

const (
	Area             VariableName = "Area"
	Thickness        VariableName = "Thickness"
	Porosity         VariableName = "Porosity"
	SaturationImpact VariableName = "Saturation Impact"
	RecoveryFactor   VariableName = "Recovery Factor"
)

// TotalRecoverableVolume names the joint outcome sample set
const TotalRecoverableVolume VariableName = "Total Recoverable Volume"

// VariableNames returns the fixed input order used by every output
func VariableNames() []VariableName {
	return []VariableName{Area, Thickness, Porosity, SaturationImpact, RecoveryFactor}
}

// Labels returns VariableNames as plain strings for chart labelling
func Labels() []string {
	names := VariableNames()
	labels := make([]string, len(names))
	for i, n := range names {
		labels[i] = string(n)
	}
	return labels
}

// DistributionKind is the family an input is drawn from
type DistributionKind string

const (
	Normal     DistributionKind = "normal"
	Triangular DistributionKind = "triangular"
	Uniform    DistributionKind = "uniform"
	Beta       DistributionKind = "beta"
	LogNormal  DistributionKind = "lognormal"
)

// Params holds distribution parameters. Only the fields relevant to the
// variable's Kind are read:
//
//	normal, lognormal: Mu, Sigma (lognormal: of the underlying normal)
//	triangular:        Min, Mode, Max
//	uniform:           Min, Max
//	beta:              Alpha, Beta
type Params struct {
	Mu    float64 `json:"mu,omitempty"`
	Sigma float64 `json:"sigma,omitempty"`
	Min   float64 `json:"min,omitempty"`
	Mode  float64 `json:"mode,omitempty"`
	Max   float64 `json:"max,omitempty"`
	Alpha float64 `json:"alpha,omitempty"`
	Beta  float64 `json:"beta,omitempty"`
}

// InputVariable is a named random variable with a fixed distribution.
// The saturation input is sampled raw and inverted downstream, so its
// Name is SaturationImpact while its draws are saturation itself.
type InputVariable struct {
	Name   VariableName     `json:"name"`
	Kind   DistributionKind `json:"kind"`
	Params Params           `json:"params"`
}

// DefaultVariables returns the configured geological inputs in fixed order
func DefaultVariables() []InputVariable {
	return []InputVariable{
		{Name: Area, Kind: Normal, Params: Params{Mu: 500, Sigma: 40}},
		{Name: Thickness, Kind: Triangular, Params: Params{Min: 20, Mode: 50, Max: 120}},
		{Name: Porosity, Kind: Uniform, Params: Params{Min: 0.12, Max: 0.28}},
		{Name: SaturationImpact, Kind: Beta, Params: Params{Alpha: 2, Beta: 5}},
		{Name: RecoveryFactor, Kind: LogNormal, Params: Params{Mu: 0.3, Sigma: 0.05}},
	}
}

// Validate checks the parameters against the domain of the distribution family
func (v InputVariable) Validate() error {
	p := v.Params
	param := func(field string) string { return fmt.Sprintf("%s.%s", v.Name, field) }

	switch v.Kind {
	case Normal:
		if err := finite(param("mu"), p.Mu); err != nil {
			return err
		}
		if err := finite(param("sigma"), p.Sigma); err != nil {
			return err
		}
		if p.Sigma < 0 {
			return core.NewInvalidParameterError(param("sigma"), fmt.Sprintf("must be non-negative, got %v", p.Sigma))
		}
	case LogNormal:
		if err := finite(param("mu"), p.Mu); err != nil {
			return err
		}
		if err := finite(param("sigma"), p.Sigma); err != nil {
			return err
		}
		if p.Sigma <= 0 {
			return core.NewInvalidParameterError(param("sigma"), fmt.Sprintf("must be positive, got %v", p.Sigma))
		}
	case Triangular:
		fields := []struct {
			name string
			x    float64
		}{{"min", p.Min}, {"mode", p.Mode}, {"max", p.Max}}
		for _, f := range fields {
			if err := finite(param(f.name), f.x); err != nil {
				return err
			}
		}
		if p.Min > p.Mode {
			return core.NewInvalidParameterError(param("mode"), fmt.Sprintf("min %v exceeds mode %v", p.Min, p.Mode))
		}
		if p.Mode > p.Max {
			return core.NewInvalidParameterError(param("mode"), fmt.Sprintf("mode %v exceeds max %v", p.Mode, p.Max))
		}
		if p.Min >= p.Max {
			return core.NewInvalidParameterError(param("max"), fmt.Sprintf("must exceed min %v, got %v", p.Min, p.Max))
		}
	case Uniform:
		if err := finite(param("min"), p.Min); err != nil {
			return err
		}
		if err := finite(param("max"), p.Max); err != nil {
			return err
		}
		if p.Min > p.Max {
			return core.NewInvalidParameterError(param("min"), fmt.Sprintf("low %v exceeds high %v", p.Min, p.Max))
		}
	case Beta:
		if err := finite(param("alpha"), p.Alpha); err != nil {
			return err
		}
		if err := finite(param("beta"), p.Beta); err != nil {
			return err
		}
		if p.Alpha <= 0 {
			return core.NewInvalidParameterError(param("alpha"), fmt.Sprintf("must be positive, got %v", p.Alpha))
		}
		if p.Beta <= 0 {
			return core.NewInvalidParameterError(param("beta"), fmt.Sprintf("must be positive, got %v", p.Beta))
		}
	default:
		return core.NewInvalidParameterError(string(v.Name)+".kind", fmt.Sprintf("unknown distribution %q", v.Kind))
	}
	return nil
}

func finite(param string, x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return core.NewInvalidParameterError(param, "must be finite")
	}
	return nil
}
