package ports

import (
	"context"
	"io"

	"reservoirmc/domain/reservoir"
	"reservoirmc/domain/run"
	"reservoirmc/internal/statistics"
)

// SimulationReport is the presentation view of a simulation run. It carries
// summaries only; full sample sets stay in the simulation result.
type SimulationReport struct {
	Manifest     *run.RunManifest            `json:"manifest"`
	Labels       []string                    `json:"labels"`
	BaseCase     float64                     `json:"base_case"`
	Joint        statistics.Description      `json:"joint"`
	Tornado      []reservoir.TornadoRange    `json:"tornado"`
	Ranked       []reservoir.TornadoRange    `json:"ranked"`
	Inputs       []statistics.Description    `json:"inputs"`
	Impacts      []statistics.Description    `json:"impacts"`
	Histograms   []HistogramSummary          `json:"histograms"`
	SCurve       []reservoir.CDFPoint        `json:"s_curve"`
	JointSummary reservoir.PercentileSummary `json:"joint_summary"`
}

// HistogramSummary is a named histogram for one distribution
type HistogramSummary struct {
	Name string `json:"name"`
	statistics.Histogram
}

// ReportRenderer writes a simulation report in one output format
type ReportRenderer interface {
	// Render writes the report to w
	Render(ctx context.Context, w io.Writer, report *SimulationReport) error

	// ContentType is the MIME type of the rendered output
	ContentType() string
}
