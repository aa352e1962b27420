// Package report renders simulation reports as text, JSON, markdown or HTML.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"reservoirmc/domain/core"
	"reservoirmc/ports"
)

// Supported output formats
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Formats lists the supported format names
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatMarkdown, FormatHTML}
}

// ForFormat returns the renderer for a format name
func ForFormat(format string) (ports.ReportRenderer, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return TextRenderer{}, nil
	case FormatJSON:
		return JSONRenderer{Indent: true}, nil
	case FormatMarkdown, "md":
		return MarkdownRenderer{}, nil
	case FormatHTML:
		return HTMLRenderer{}, nil
	default:
		return nil, core.NewInvalidParameterError("format", fmt.Sprintf("unsupported %q (want one of %s)", format, strings.Join(Formats(), ", ")))
	}
}

// TextRenderer writes aligned plain-text tables
type TextRenderer struct{}

func (TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func (TextRenderer) Render(_ context.Context, w io.Writer, r *ports.SimulationReport) error {
	fmt.Fprintf(w, "Run %s (seed %d, %d samples, fingerprint %s)\n\n",
		r.Manifest.RunID, r.Manifest.Seed, r.Manifest.Samples, r.Manifest.Fingerprint.Fingerprint.Short())

	fmt.Fprintln(w, "Total recoverable volume")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "P10\tP50\tP90\tMean\tStdDev\t")
	fmt.Fprintf(tw, "%.0f\t%.0f\t%.0f\t%.0f\t%.0f\t\n",
		r.JointSummary.P10, r.JointSummary.P50, r.JointSummary.P90, r.Joint.Mean, r.Joint.StdDev)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nSensitivity (others held at median, base case %.0f)\n", r.BaseCase)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Rank\tVariable\tLow (P10)\tMid (P50)\tHigh (P90)\tWidth")
	for i, t := range r.Ranked {
		fmt.Fprintf(tw, "%d\t%s\t%.0f\t%.0f\t%.0f\t%.0f\n", i+1, t.Name, t.Low, t.Mid, t.High, t.Width())
	}
	return tw.Flush()
}

// JSONRenderer writes the report as a JSON document
type JSONRenderer struct {
	Indent bool
}

func (JSONRenderer) ContentType() string { return "application/json" }

func (j JSONRenderer) Render(_ context.Context, w io.Writer, r *ports.SimulationReport) error {
	enc := json.NewEncoder(w)
	if j.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(r)
}

// MarkdownRenderer writes GitHub-flavoured markdown tables
type MarkdownRenderer struct{}

func (MarkdownRenderer) ContentType() string { return "text/markdown; charset=utf-8" }

func (MarkdownRenderer) Render(_ context.Context, w io.Writer, r *ports.SimulationReport) error {
	_, err := io.WriteString(w, Markdown(r))
	return err
}

// Markdown builds the markdown form of a report
func Markdown(r *ports.SimulationReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Recoverable volume simulation\n\n")
	fmt.Fprintf(&b, "Run `%s` with seed %d and %d samples (fingerprint `%s`).\n\n",
		r.Manifest.RunID, r.Manifest.Seed, r.Manifest.Samples, r.Manifest.Fingerprint.Fingerprint.Short())

	fmt.Fprintf(&b, "## Total recoverable volume\n\n")
	fmt.Fprintf(&b, "| P10 (Low) | P50 (Mid) | P90 (High) | Mean | Std dev |\n")
	fmt.Fprintf(&b, "|---:|---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %.0f | %.0f | %.0f | %.0f | %.0f |\n\n",
		r.JointSummary.P10, r.JointSummary.P50, r.JointSummary.P90, r.Joint.Mean, r.Joint.StdDev)

	fmt.Fprintf(&b, "## Which variables drive the most risk?\n\n")
	fmt.Fprintf(&b, "Others held at their medians; base case %.0f.\n\n", r.BaseCase)
	fmt.Fprintf(&b, "| Rank | Variable | Low (P10) | Mid (P50) | High (P90) | Width |\n")
	fmt.Fprintf(&b, "|---:|---|---:|---:|---:|---:|\n")
	for i, t := range r.Ranked {
		fmt.Fprintf(&b, "| %d | %s | %.0f | %.0f | %.0f | %.0f |\n", i+1, t.Name, t.Low, t.Mid, t.High, t.Width())
	}
	b.WriteString("\n")

	if len(r.Inputs) > 0 {
		fmt.Fprintf(&b, "## Sampled inputs\n\n")
		fmt.Fprintf(&b, "| Variable | Mean | Std dev | Min | Max |\n")
		fmt.Fprintf(&b, "|---|---:|---:|---:|---:|\n")
		for _, d := range r.Inputs {
			fmt.Fprintf(&b, "| %s | %.4g | %.4g | %.4g | %.4g |\n", d.Name, d.Mean, d.StdDev, d.Min, d.Max)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTMLRenderer converts the markdown report into a complete HTML page
type HTMLRenderer struct{}

func (HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }

func (HTMLRenderer) Render(_ context.Context, w io.Writer, r *ports.SimulationReport) error {
	_, err := w.Write(HTML(r, true))
	return err
}

// HTML renders the markdown report to HTML. With completePage false only
// the body fragment is produced, for embedding in a template.
func HTML(r *ports.SimulationReport, completePage bool) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)

	flags := html.CommonFlags
	if completePage {
		flags |= html.CompletePage
	}
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: flags,
		Title: "Recoverable volume simulation",
	})

	return markdown.ToHTML([]byte(Markdown(r)), p, renderer)
}
