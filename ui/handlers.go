package ui

import (
	"fmt"
	"html/template"
	"log"
	"math"
	"net/http"
	"strconv"

	"reservoirmc/adapters/report"
	"reservoirmc/domain/core"
	"reservoirmc/domain/reservoir"
	"reservoirmc/internal/errors"
	"reservoirmc/ports"
)

// maxUISamples keeps page loads interactive
const maxUISamples = 500_000

// tornadoBar positions one variable's P10-P90 bar on a shared axis
type tornadoBar struct {
	reservoir.TornadoRange
	Left float64
	Span float64
}

type indexView struct {
	Report   *ports.SimulationReport
	Summary  template.HTML
	Bars     []tornadoBar
	BaseLeft float64
	AxisMin  float64
	AxisMax  float64
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	rep, err := a.buildReport(r)
	if err != nil {
		writeError(w, err)
		return
	}

	lo, hi := axisBounds(rep.Ranked)
	view := indexView{
		Report:   rep,
		Summary:  template.HTML(report.HTML(rep, false)),
		BaseLeft: scale(rep.BaseCase, lo, hi),
		AxisMin:  lo,
		AxisMax:  hi,
	}
	for _, t := range rep.Ranked {
		left := scale(t.Low, lo, hi)
		view.Bars = append(view.Bars, tornadoBar{
			TornadoRange: t,
			Left:         left,
			Span:         scale(t.High, lo, hi) - left,
		})
	}

	a.renderTemplate(w, "report.html", view)
}

func (a *App) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	a.renderWith(w, r, report.MarkdownRenderer{})
}

func (a *App) handleJSON(w http.ResponseWriter, r *http.Request) {
	a.renderWith(w, r, report.JSONRenderer{})
}

func (a *App) renderWith(w http.ResponseWriter, r *http.Request, renderer ports.ReportRenderer) {
	rep, err := a.buildReport(r)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	if err := renderer.Render(r.Context(), w, rep); err != nil {
		log.Printf("Render error: %v", err)
	}
}

func (a *App) buildReport(r *http.Request) (*ports.SimulationReport, error) {
	cfg := a.service.Config()
	n, seed := cfg.Samples, cfg.Seed

	if raw := r.URL.Query().Get("samples"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, core.NewInvalidParameterError("samples", fmt.Sprintf("not an integer: %q", raw))
		}
		n = v
	}
	if n > maxUISamples {
		return nil, core.NewInvalidParameterError("samples", fmt.Sprintf("must not exceed %d", maxUISamples))
	}
	if raw := r.URL.Query().Get("seed"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, core.NewInvalidParameterError("seed", fmt.Sprintf("not an unsigned integer: %q", raw))
		}
		seed = v
	}

	result, err := a.service.RunSimulation(r.Context(), n, seed)
	if err != nil {
		return nil, err
	}
	return a.service.BuildReport(result)
}

// axisBounds spans every bar with a small margin
func axisBounds(ranges []reservoir.TornadoRange) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, t := range ranges {
		lo = math.Min(lo, t.Low)
		hi = math.Max(hi, t.High)
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 1
	}
	margin := (hi - lo) * 0.05
	return lo - margin, hi + margin
}

func scale(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return (v - lo) / (hi - lo) * 100
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if core.IsInputError(err) {
		status = http.StatusBadRequest
	} else {
		log.Printf("Report failed: %v", err)
	}
	http.Error(w, fmt.Sprintf("%s: %v", errors.GetCode(errors.FromDomain(err)), err), status)
}
