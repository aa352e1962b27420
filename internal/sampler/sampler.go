// Package sampler draws seeded, reproducible sample sets for the volumetric
// input variables.
package sampler

import (
	"context"
	"fmt"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"

	"reservoirmc/domain/core"
	"reservoirmc/domain/reservoir"
)

// ctxCheckInterval is how many draws pass between cancellation checks
const ctxCheckInterval = 4096

// Sampler draws one sample set per configured input variable
type Sampler struct {
	variables []reservoir.InputVariable
	workers   int
}

// Option configures a Sampler
type Option func(*Sampler)

// WithWorkers bounds how many variables are sampled concurrently.
// Values below 1 are treated as 1.
func WithWorkers(n int) Option {
	return func(s *Sampler) {
		if n < 1 {
			n = 1
		}
		s.workers = n
	}
}

// New validates the variables and returns a sampler for them. The variables
// must be the five volumetric inputs in their fixed order.
func New(vars []reservoir.InputVariable, opts ...Option) (*Sampler, error) {
	names := reservoir.VariableNames()
	if len(vars) != len(names) {
		return nil, core.NewInvalidParameterError("variables", fmt.Sprintf("expected %d inputs, got %d", len(names), len(vars)))
	}
	for i, v := range vars {
		if v.Name != names[i] {
			return nil, core.NewInvalidParameterError("variables", fmt.Sprintf("position %d must be %s, got %s", i, names[i], v.Name))
		}
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	copied := make([]reservoir.InputVariable, len(vars))
	copy(copied, vars)

	s := &Sampler{variables: copied, workers: len(copied)}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Variables returns the sampler's input variables in fixed order
func (s *Sampler) Variables() []reservoir.InputVariable {
	out := make([]reservoir.InputVariable, len(s.variables))
	copy(out, s.variables)
	return out
}

// Sample draws n values for every variable. Variable i draws from a PCG
// generator whose initial state is (seed, i), so each variable starts from a
// distinct state and the result is identical for a given (n, seed) no matter
// how the goroutines are scheduled.
func (s *Sampler) Sample(ctx context.Context, n int, seed uint64) ([]reservoir.SampleSet, error) {
	if n <= 0 {
		return nil, core.NewInvalidParameterError("samples", fmt.Sprintf("must be positive, got %d", n))
	}

	sets := make([]reservoir.SampleSet, len(s.variables))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, v := range s.variables {
		g.Go(func() error {
			values, err := draw(ctx, v, n, rand.NewPCG(seed, uint64(i)))
			if err != nil {
				return fmt.Errorf("sample %s: %w", v.Name, err)
			}
			sets[i] = reservoir.NewSampleSet(v.Name, values)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sets, nil
}

// Sample is a convenience wrapper that samples the default variables
func Sample(ctx context.Context, n int, seed uint64) ([]reservoir.SampleSet, error) {
	s, err := New(reservoir.DefaultVariables())
	if err != nil {
		return nil, err
	}
	return s.Sample(ctx, n, seed)
}

func draw(ctx context.Context, v reservoir.InputVariable, n int, src rand.Source) ([]float64, error) {
	dist, err := distribution(v, src)
	if err != nil {
		return nil, err
	}

	values := make([]float64, n)
	for i := range values {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		values[i] = dist.Rand()
	}
	return values, nil
}

// randomVariate is the subset of distuv distributions the sampler needs
type randomVariate interface {
	Rand() float64
}

func distribution(v reservoir.InputVariable, src rand.Source) (randomVariate, error) {
	p := v.Params
	switch v.Kind {
	case reservoir.Normal:
		return distuv.Normal{Mu: p.Mu, Sigma: p.Sigma, Src: src}, nil
	case reservoir.Triangular:
		return distuv.NewTriangle(p.Min, p.Max, p.Mode, src), nil
	case reservoir.Uniform:
		return distuv.Uniform{Min: p.Min, Max: p.Max, Src: src}, nil
	case reservoir.Beta:
		return distuv.Beta{Alpha: p.Alpha, Beta: p.Beta, Src: src}, nil
	case reservoir.LogNormal:
		return distuv.LogNormal{Mu: p.Mu, Sigma: p.Sigma, Src: src}, nil
	default:
		return nil, core.NewInvalidParameterError(string(v.Name)+".kind", fmt.Sprintf("unknown distribution %q", v.Kind))
	}
}
