package main

import (
	"log"

	"reservoirmc/adapters/api"
	"reservoirmc/adapters/report"
	"reservoirmc/app"
	"reservoirmc/internal"
	"reservoirmc/internal/config"
)

func main() {
	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	service := app.NewSimulationService(cfg.Simulation, report.JSONRenderer{})
	server := api.NewServer(service, cfg.Server.GinMode)

	addr := ":" + cfg.Server.Port
	logger.Info("Starting API server on %s (default samples=%d seed=%d)", addr, cfg.Simulation.Samples, cfg.Simulation.Seed)
	if err := server.Run(addr); err != nil {
		log.Fatal("Server failed:", err)
	}
}
