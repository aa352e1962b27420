package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"reservoirmc/domain/core"
	"reservoirmc/domain/reservoir"
	"reservoirmc/domain/run"
	"reservoirmc/internal/combiner"
	"reservoirmc/internal/config"
	"reservoirmc/internal/errors"
	"reservoirmc/internal/sampler"
	"reservoirmc/internal/sensitivity"
	"reservoirmc/internal/statistics"
	"reservoirmc/ports"
)

// maxSCurvePoints bounds the empirical CDF handed to presentation
const maxSCurvePoints = 200

// SimulationService orchestrates sampling, combination, sensitivity and statistics
type SimulationService struct {
	config    config.SimulationConfig
	variables []reservoir.InputVariable
	renderer  ports.ReportRenderer
}

// SimulationResult contains everything a single run produces
type SimulationResult struct {
	Manifest     *run.RunManifest
	Samples      []reservoir.SampleSet
	Joint        reservoir.SampleSet
	JointSummary reservoir.PercentileSummary
	Analysis     *sensitivity.Analysis
	RuntimeMs    int64
}

// Contributions returns the marginal contribution of each variable in fixed order
func (r *SimulationResult) Contributions() []reservoir.MarginalContribution {
	return r.Analysis.Contributions
}

// Tornado returns the tornado range of each variable in fixed order
func (r *SimulationResult) Tornado() []reservoir.TornadoRange {
	return r.Analysis.Tornado
}

// NewSimulationService creates a simulation service over the default inputs.
// renderer may be nil when only RunSimulation is used.
func NewSimulationService(cfg config.SimulationConfig, renderer ports.ReportRenderer) *SimulationService {
	return &SimulationService{
		config:    cfg,
		variables: reservoir.DefaultVariables(),
		renderer:  renderer,
	}
}

// WithVariables returns a copy of the service sampling the given inputs
func (s *SimulationService) WithVariables(vars []reservoir.InputVariable) *SimulationService {
	copied := make([]reservoir.InputVariable, len(vars))
	copy(copied, vars)
	return &SimulationService{config: s.config, variables: copied, renderer: s.renderer}
}

// Variables returns the inputs the service samples, in fixed order
func (s *SimulationService) Variables() []reservoir.InputVariable {
	out := make([]reservoir.InputVariable, len(s.variables))
	copy(out, s.variables)
	return out
}

// Config returns the service's simulation configuration
func (s *SimulationService) Config() config.SimulationConfig {
	return s.config
}

// RunDefault runs a simulation with the configured sample count and seed
func (s *SimulationService) RunDefault(ctx context.Context) (*SimulationResult, error) {
	return s.RunSimulation(ctx, s.config.Samples, s.config.Seed)
}

// RunSimulation draws n scenarios with the given seed and computes the joint
// outcome and the one-at-a-time sensitivity. Identical (n, seed) yield
// bit-identical sample sets.
func (s *SimulationService) RunSimulation(ctx context.Context, n int, seed uint64) (*SimulationResult, error) {
	startTime := time.Now()

	if n <= 0 {
		return nil, errors.Wrap(core.NewInvalidParameterError("samples", fmt.Sprintf("must be positive, got %d", n)), "simulation rejected")
	}

	smp, err := sampler.New(s.variables, sampler.WithWorkers(s.config.Workers))
	if err != nil {
		return nil, errors.Wrap(err, "invalid input configuration")
	}

	manifest := run.NewRunManifest(core.NewRunID(), seed, n, smp.Variables(), s.config.CodeVersion)
	if err := manifest.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid run manifest")
	}

	log.Printf("Starting simulation run %s: samples=%d seed=%d fingerprint=%s",
		manifest.RunID, n, seed, manifest.Fingerprint.Fingerprint.Short())

	samples, err := smp.Sample(ctx, n, seed)
	if err != nil {
		return nil, errors.Wrap(err, "sampling failed")
	}

	joint, err := combiner.CombineSets(samples)
	if err != nil {
		return nil, errors.Wrap(err, "volumetric combination failed")
	}

	jointSummary, err := statistics.Summarize(joint.Values)
	if err != nil {
		return nil, errors.Wrap(err, "joint percentiles failed")
	}

	inputs, err := combiner.SensitivityInputs(samples)
	if err != nil {
		return nil, errors.Wrap(err, "sensitivity inputs failed")
	}

	analysis, err := sensitivity.Analyze(inputs)
	if err != nil {
		return nil, errors.Wrap(err, "sensitivity analysis failed")
	}

	result := &SimulationResult{
		Manifest:     manifest,
		Samples:      samples,
		Joint:        joint,
		JointSummary: jointSummary,
		Analysis:     analysis,
		RuntimeMs:    time.Since(startTime).Milliseconds(),
	}

	top := analysis.MostInfluential()
	log.Printf("Simulation run %s complete in %dms: P10=%.0f P50=%.0f P90=%.0f most influential=%s",
		manifest.RunID, result.RuntimeMs, jointSummary.P10, jointSummary.P50, jointSummary.P90, top.Name)

	return result, nil
}

// BuildReport summarises a result for presentation
func (s *SimulationService) BuildReport(result *SimulationResult) (*ports.SimulationReport, error) {
	joint, err := statistics.Describe(result.Joint)
	if err != nil {
		return nil, errors.Wrap(err, "describe joint outcome")
	}

	report := &ports.SimulationReport{
		Manifest:     result.Manifest,
		Labels:       reservoir.Labels(),
		BaseCase:     joint.Percentiles.P50,
		Joint:        joint,
		JointSummary: result.JointSummary,
		Tornado:      result.Analysis.Tornado,
		Ranked:       result.Analysis.Ranked(),
	}

	for _, set := range result.Samples {
		d, err := statistics.Describe(set)
		if err != nil {
			return nil, errors.Wrapf(err, "describe input %s", set.Name)
		}
		report.Inputs = append(report.Inputs, d)
	}

	// One histogram per variable's effect plus the joint outcome for comparison
	effects := make([]reservoir.SampleSet, 0, len(result.Analysis.Contributions)+1)
	for _, c := range result.Analysis.Contributions {
		effects = append(effects, c.SampleSet)
	}
	for _, set := range effects {
		d, err := statistics.Describe(set)
		if err != nil {
			return nil, errors.Wrapf(err, "describe impact of %s", set.Name)
		}
		report.Impacts = append(report.Impacts, d)
	}
	effects = append(effects, result.Joint)

	for _, set := range effects {
		h, err := statistics.NewHistogram(set.Values, s.config.HistogramBins)
		if err != nil {
			return nil, errors.Wrapf(err, "histogram of %s", set.Name)
		}
		report.Histograms = append(report.Histograms, ports.HistogramSummary{Name: string(set.Name), Histogram: h})
	}

	cdf, err := statistics.EmpiricalCDF(result.Joint.Values)
	if err != nil {
		return nil, errors.Wrap(err, "empirical cdf")
	}
	report.SCurve = Downsample(cdf, maxSCurvePoints)

	return report, nil
}

// RenderReport runs a simulation and writes its report with the configured renderer
func (s *SimulationService) RenderReport(ctx context.Context, w io.Writer, n int, seed uint64) error {
	if s.renderer == nil {
		return errors.InternalError("no report renderer configured")
	}

	result, err := s.RunSimulation(ctx, n, seed)
	if err != nil {
		return err
	}
	report, err := s.BuildReport(result)
	if err != nil {
		return err
	}
	if err := s.renderer.Render(ctx, w, report); err != nil {
		return errors.Wrap(err, "render report")
	}
	return nil
}

// Downsample keeps at most max evenly spaced points, always including both ends
func Downsample(points []reservoir.CDFPoint, max int) []reservoir.CDFPoint {
	if max < 2 || len(points) <= max {
		return points
	}
	out := make([]reservoir.CDFPoint, max)
	last := len(points) - 1
	for i := range out {
		out[i] = points[i*last/(max-1)]
	}
	return out
}
