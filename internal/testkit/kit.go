package testkit

import (
	"context"
	"fmt"

	"reservoirmc/app"
	"reservoirmc/domain/reservoir"
	"reservoirmc/internal/config"
	"reservoirmc/ports"
)

// Small defaults keep handler and renderer tests fast
const (
	DefaultSamples = 2000
	DefaultSeed    = 1234
)

// TestKit provides testing utilities and fixtures
type TestKit struct {
	config config.SimulationConfig
}

// NewTestKit creates a test kit with a small sample count
func NewTestKit() *TestKit {
	cfg := config.Default().Simulation
	cfg.Samples = DefaultSamples
	cfg.Seed = DefaultSeed
	cfg.HistogramBins = 20
	return &TestKit{config: cfg}
}

// Config returns the kit's simulation configuration
func (t *TestKit) Config() config.SimulationConfig {
	return t.config
}

// Service returns a simulation service using the kit's configuration
func (t *TestKit) Service(renderer ports.ReportRenderer) *app.SimulationService {
	return app.NewSimulationService(t.config, renderer)
}

// Report runs a simulation and builds its report
func (t *TestKit) Report(ctx context.Context, n int, seed uint64) (*ports.SimulationReport, error) {
	svc := t.Service(nil)
	result, err := svc.RunSimulation(ctx, n, seed)
	if err != nil {
		return nil, fmt.Errorf("testkit simulation: %w", err)
	}
	return svc.BuildReport(result)
}

// LiteralSampleSets returns the one-scenario inputs whose volumetric
// product is exactly 500 * 50 * 0.2 * 0.5 * 1.0 = 2500.
func LiteralSampleSets() []reservoir.SampleSet {
	return Sets(
		[]float64{500},
		[]float64{50},
		[]float64{0.2},
		[]float64{0.5},
		[]float64{1.0},
	)
}

// Sets names value slices in the fixed variable order
func Sets(values ...[]float64) []reservoir.SampleSet {
	names := reservoir.VariableNames()
	out := make([]reservoir.SampleSet, len(values))
	for i, v := range values {
		out[i] = reservoir.NewSampleSet(names[i], v)
	}
	return out
}
