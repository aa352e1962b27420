package main

import (
	"context"
	"log"
	"os"

	"reservoirmc/adapters/report"
	"reservoirmc/app"
	"reservoirmc/internal"
	"reservoirmc/internal/config"
)

// main runs the default simulation and prints the text report
func main() {
	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	sim := cfg.Simulation
	logger.Debug("Configuration: samples=%d seed=%d workers=%d bins=%d", sim.Samples, sim.Seed, sim.Workers, sim.HistogramBins)

	service := app.NewSimulationService(sim, report.TextRenderer{})
	if err := service.RenderReport(context.Background(), os.Stdout, sim.Samples, sim.Seed); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}
}
