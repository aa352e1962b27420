package reservoir

import (
	"math"
	"testing"

	"reservoirmc/domain/core"
)

func TestDefaultVariables_FixedOrder(t *testing.T) {
	vars := DefaultVariables()
	names := VariableNames()

	if len(vars) != len(names) {
		t.Fatalf("Expected %d variables, got %d", len(names), len(vars))
	}
	for i, v := range vars {
		if v.Name != names[i] {
			t.Errorf("Variable %d: expected %s, got %s", i, names[i], v.Name)
		}
		if err := v.Validate(); err != nil {
			t.Errorf("Default variable %s should be valid: %v", v.Name, err)
		}
	}

	labels := Labels()
	if labels[3] != "Saturation Impact" {
		t.Errorf("Expected fourth label to be Saturation Impact, got %q", labels[3])
	}
}

func TestInputVariable_ValidateRejectsBadDomains(t *testing.T) {
	cases := []struct {
		name string
		v    InputVariable
	}{
		{"negative normal sigma", InputVariable{Name: Area, Kind: Normal, Params: Params{Mu: 500, Sigma: -1}}},
		{"NaN normal mu", InputVariable{Name: Area, Kind: Normal, Params: Params{Mu: math.NaN(), Sigma: 1}}},
		{"triangular min above mode", InputVariable{Name: Thickness, Kind: Triangular, Params: Params{Min: 60, Mode: 50, Max: 120}}},
		{"triangular mode above max", InputVariable{Name: Thickness, Kind: Triangular, Params: Params{Min: 20, Mode: 130, Max: 120}}},
		{"degenerate triangle", InputVariable{Name: Thickness, Kind: Triangular, Params: Params{Min: 50, Mode: 50, Max: 50}}},
		{"uniform inverted", InputVariable{Name: Porosity, Kind: Uniform, Params: Params{Min: 0.3, Max: 0.1}}},
		{"beta zero alpha", InputVariable{Name: SaturationImpact, Kind: Beta, Params: Params{Alpha: 0, Beta: 5}}},
		{"beta negative beta", InputVariable{Name: SaturationImpact, Kind: Beta, Params: Params{Alpha: 2, Beta: -5}}},
		{"lognormal zero sigma", InputVariable{Name: RecoveryFactor, Kind: LogNormal, Params: Params{Mu: 0.3, Sigma: 0}}},
		{"unknown kind", InputVariable{Name: Area, Kind: "cauchy"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.v.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !core.IsInvalidParameter(err) {
				t.Errorf("Expected InvalidParameter, got %v", err)
			}
		})
	}
}

func TestTornadoRange_Width(t *testing.T) {
	tr := TornadoRange{Name: Area, Low: 10, Mid: 15, High: 25}
	if tr.Width() != 15 {
		t.Errorf("Expected width 15, got %v", tr.Width())
	}
}

func TestSampleSet_CopyIsIndependent(t *testing.T) {
	s := NewSampleSet(Area, []float64{1, 2, 3})
	c := s.Copy()
	c[0] = 99
	if s.At(0) != 1 {
		t.Error("Copy should not alias the sample set")
	}
	if s.Len() != 3 {
		t.Errorf("Expected length 3, got %d", s.Len())
	}
}
