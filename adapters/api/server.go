package api

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reservoirmc/app"
	"reservoirmc/domain/core"
	"reservoirmc/domain/reservoir"
	"reservoirmc/internal/errors"
	"reservoirmc/internal/statistics"
)

// MaxSamples caps the scenario count a single request may ask for
const MaxSamples = 1_000_000

// Server exposes simulation runs over a JSON HTTP API
type Server struct {
	router  *gin.Engine
	service *app.SimulationService
}

// NewServer creates the API server. ginMode is one of gin's debug, release or test.
func NewServer(service *app.SimulationService, ginMode string) *Server {
	if ginMode != "" {
		gin.SetMode(ginMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	s := &Server{router: router, service: service}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.GET("/simulation", s.handleSimulation)
	api.GET("/tornado", s.handleTornado)
	api.GET("/scurve", s.handleSCurve)
	api.GET("/percentiles", s.handlePercentiles)
	api.GET("/variables", s.handleVariables)
}

// Handler returns the HTTP handler, for tests and custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves the API on addr until the listener fails
func (s *Server) Run(addr string) error {
	log.Printf("API server listening on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSimulation(c *gin.Context) {
	result, ok := s.runFromQuery(c)
	if !ok {
		return
	}

	report, err := s.service.BuildReport(result)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) handleTornado(c *gin.Context) {
	result, ok := s.runFromQuery(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":  result.Manifest.RunID,
		"tornado": result.Analysis.Tornado,
		"widths":  result.Analysis.Widths(),
		"ranked":  result.Analysis.Ranked(),
		"medians": result.Analysis.Medians,
	})
}

func (s *Server) handleSCurve(c *gin.Context) {
	points := 200
	if raw := c.Query("points"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 2 {
			respondError(c, core.NewInvalidParameterError("points", fmt.Sprintf("must be an integer >= 2, got %q", raw)))
			return
		}
		points = n
	}

	result, ok := s.runFromQuery(c)
	if !ok {
		return
	}

	cdf, err := statistics.EmpiricalCDF(result.Joint.Values)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":      result.Manifest.RunID,
		"percentiles": result.JointSummary,
		"points":      app.Downsample(cdf, points),
	})
}

func (s *Server) handlePercentiles(c *gin.Context) {
	ps := []float64{10, 50, 90}
	if raw := c.QueryArray("p"); len(raw) > 0 {
		ps = ps[:0]
		for _, r := range raw {
			p, err := strconv.ParseFloat(r, 64)
			if err != nil {
				respondError(c, core.NewInvalidParameterError("p", fmt.Sprintf("not a number: %q", r)))
				return
			}
			ps = append(ps, p)
		}
	}

	result, ok := s.runFromQuery(c)
	if !ok {
		return
	}

	values, err := statistics.Percentiles(result.Joint.Values, ps)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":      result.Manifest.RunID,
		"percentiles": ps,
		"values":      values,
	})
}

func (s *Server) handleVariables(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"labels":    reservoir.Labels(),
		"variables": s.service.Variables(),
	})
}

// runFromQuery runs a simulation from the samples and seed query
// parameters, falling back to the configured defaults.
func (s *Server) runFromQuery(c *gin.Context) (*app.SimulationResult, bool) {
	cfg := s.service.Config()
	n := cfg.Samples
	seed := cfg.Seed

	if raw := c.Query("samples"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, core.NewInvalidParameterError("samples", fmt.Sprintf("not an integer: %q", raw)))
			return nil, false
		}
		n = v
	}
	if n > MaxSamples {
		respondError(c, core.NewInvalidParameterError("samples", fmt.Sprintf("must not exceed %d", MaxSamples)))
		return nil, false
	}
	if raw := c.Query("seed"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, core.NewInvalidParameterError("seed", fmt.Sprintf("not an unsigned integer: %q", raw)))
			return nil, false
		}
		seed = v
	}

	result, err := s.service.RunSimulation(c.Request.Context(), n, seed)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return result, true
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if core.IsInputError(err) {
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.Printf("API request %s failed: %v", c.Request.URL.Path, err)
	}
	appErr := errors.FromDomain(err)
	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(appErr),
	})
}
