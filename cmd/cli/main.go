package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"reservoirmc/adapters/report"
	"reservoirmc/app"
	"reservoirmc/domain/core"
	"reservoirmc/internal/config"
	"reservoirmc/internal/statistics"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runOptions are the flags shared by every subcommand
type runOptions struct {
	samples int
	seed    uint64
	format  string
}

func newRootCmd() *cobra.Command {
	opts := &runOptions{}

	rootCmd := &cobra.Command{
		Use:           "reservoir-cli",
		Short:         "Monte Carlo recoverable volume simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaults := config.Default().Simulation
	rootCmd.PersistentFlags().IntVar(&opts.samples, "samples", 0, fmt.Sprintf("Number of scenarios (default RESERVOIR_SAMPLES or %d)", defaults.Samples))
	rootCmd.PersistentFlags().Uint64Var(&opts.seed, "seed", 0, fmt.Sprintf("Random seed (default RESERVOIR_SEED or %d)", defaults.Seed))
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", report.FormatText, "Output format: "+strings.Join(report.Formats(), ", "))

	rootCmd.AddCommand(
		newSimulateCmd(opts),
		newTornadoCmd(opts),
		newPercentilesCmd(opts),
		newSCurveCmd(opts),
	)

	return rootCmd
}

func newSimulateCmd(opts *runOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Run a simulation and print the full report",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := report.ForFormat(opts.format)
			if err != nil {
				return err
			}
			sim, n, seed, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			service := app.NewSimulationService(sim, renderer)
			return service.RenderReport(cmd.Context(), cmd.OutOrStdout(), n, seed)
		},
	}
}

func newTornadoCmd(opts *runOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tornado",
		Short: "Print P10/P50/P90 of each variable's marginal contribution, widest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.run(cmd)
			if err != nil {
				return err
			}
			ranked := result.Analysis.Ranked()
			out := cmd.OutOrStdout()
			if opts.json() {
				return writeJSON(out, map[string]interface{}{
					"base_case": result.JointSummary.P50,
					"ranked":    ranked,
				})
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "Variable\tP10\tP50\tP90\tWidth")
			for _, t := range ranked {
				fmt.Fprintf(tw, "%s\t%.0f\t%.0f\t%.0f\t%.0f\n", t.Name, t.Low, t.Mid, t.High, t.Width())
			}
			return tw.Flush()
		},
	}
}

func newPercentilesCmd(opts *runOptions) *cobra.Command {
	var levels string

	cmd := &cobra.Command{
		Use:   "percentiles",
		Short: "Print percentiles of total recoverable volume",
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := parseLevels(levels)
			if err != nil {
				return err
			}
			result, err := opts.run(cmd)
			if err != nil {
				return err
			}
			values, err := statistics.Percentiles(result.Joint.Values, ps)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.json() {
				rows := make([]map[string]float64, len(ps))
				for i, p := range ps {
					rows[i] = map[string]float64{"p": p, "value": values[i]}
				}
				return writeJSON(out, rows)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "Percentile\tTotal recoverable volume")
			for i, p := range ps {
				fmt.Fprintf(tw, "P%g\t%.0f\n", p, values[i])
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&levels, "p", "10,50,90", "Comma-separated percentiles in [0, 100]")
	return cmd
}

func newSCurveCmd(opts *runOptions) *cobra.Command {
	var points int

	cmd := &cobra.Command{
		Use:   "scurve",
		Short: "Print the empirical CDF of total recoverable volume",
		RunE: func(cmd *cobra.Command, args []string) error {
			if points <= 0 {
				return core.NewInvalidParameterError("points", fmt.Sprintf("must be positive, got %d", points))
			}
			result, err := opts.run(cmd)
			if err != nil {
				return err
			}
			cdf, err := statistics.EmpiricalCDF(result.Joint.Values)
			if err != nil {
				return err
			}
			cdf = app.Downsample(cdf, points)

			out := cmd.OutOrStdout()
			if opts.json() {
				return writeJSON(out, cdf)
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "Probability\tTotal recoverable volume")
			for _, pt := range cdf {
				fmt.Fprintf(tw, "%.4f\t%.0f\n", pt.Probability, pt.Value)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&points, "points", 50, "Maximum number of curve points")
	return cmd
}

// settings loads configuration and resolves samples and seed, flags taking precedence
func (o *runOptions) settings(cmd *cobra.Command) (config.SimulationConfig, int, uint64, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.SimulationConfig{}, 0, 0, err
	}
	n, seed := cfg.Simulation.Samples, cfg.Simulation.Seed
	if cmd.Flags().Changed("samples") {
		n = o.samples
	}
	if cmd.Flags().Changed("seed") {
		seed = o.seed
	}
	return cfg.Simulation, n, seed, nil
}

func (o *runOptions) run(cmd *cobra.Command) (*app.SimulationResult, error) {
	switch strings.ToLower(o.format) {
	case report.FormatText, report.FormatJSON:
	default:
		return nil, core.NewInvalidParameterError("format", fmt.Sprintf("%s supports text or json, got %q", cmd.Name(), o.format))
	}
	sim, n, seed, err := o.settings(cmd)
	if err != nil {
		return nil, err
	}
	service := app.NewSimulationService(sim, nil)
	return service.RunSimulation(cmd.Context(), n, seed)
}

func (o *runOptions) json() bool {
	return strings.EqualFold(o.format, report.FormatJSON)
}

func parseLevels(s string) ([]float64, error) {
	var ps []float64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		p, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, core.NewInvalidParameterError("p", fmt.Sprintf("not a number: %q", field))
		}
		ps = append(ps, p)
	}
	if len(ps) == 0 {
		return nil, core.NewInvalidParameterError("p", "at least one percentile is required")
	}
	return ps, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
