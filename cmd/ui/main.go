package main

import (
	"log"

	"reservoirmc/adapters/report"
	"reservoirmc/app"
	"reservoirmc/internal"
	"reservoirmc/internal/config"
	"reservoirmc/ui"
)

func main() {
	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	service := app.NewSimulationService(cfg.Simulation, report.HTMLRenderer{})
	uiApp, err := ui.NewApp(service)
	if err != nil {
		log.Fatalf("Failed to initialize UI: %v", err)
	}

	logger.Info("Report UI listening on port %s", cfg.Server.UIPort)
	if err := uiApp.Start(ui.Config{Port: cfg.Server.UIPort}); err != nil {
		log.Fatal("Server failed:", err)
	}
}
