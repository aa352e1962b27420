package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"reservoirmc/internal/errors"
)

// Default values for a simulation run
const (
	DefaultSamples       = 100000
	DefaultSeed          = 1234
	DefaultHistogramBins = 50
)

// Config represents the complete application configuration
type Config struct {
	Simulation SimulationConfig
	Server     ServerConfig
}

// SimulationConfig replaces hardcoded run constants; it is passed into the
// simulation service explicitly.
type SimulationConfig struct {
	Samples       int    `env:"RESERVOIR_SAMPLES"         envDefault:"100000"`
	Seed          uint64 `env:"RESERVOIR_SEED"            envDefault:"1234"`
	Workers       int    `env:"RESERVOIR_SAMPLER_WORKERS" envDefault:"5"`
	HistogramBins int    `env:"RESERVOIR_HISTOGRAM_BINS"  envDefault:"50"`
	CodeVersion   string `env:"RESERVOIR_CODE_VERSION"    envDefault:"1.0.0"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `env:"PORT"     envDefault:"8080"`
	UIPort  string `env:"UI_PORT"  envDefault:"8081"`
	GinMode string `env:"GIN_MODE" envDefault:"release"`
}

// Default returns the documented defaults without reading the environment
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Samples:       DefaultSamples,
			Seed:          DefaultSeed,
			Workers:       5,
			HistogramBins: DefaultHistogramBins,
			CodeVersion:   "1.0.0",
		},
		Server: ServerConfig{
			Port:    "8080",
			UIPort:  "8081",
			GinMode: "release",
		},
	}
}

// Load reads an optional .env file, then environment variables, and validates the result
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, errors.Wrap(err, "failed to load .env file")
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to parse environment")
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// loadDotEnv loads path if it exists; a missing file is not an error
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

func validateConfig(config *Config) error {
	sim := config.Simulation
	if sim.Samples <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("RESERVOIR_SAMPLES must be positive, got %d", sim.Samples))
	}
	if sim.Workers <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("RESERVOIR_SAMPLER_WORKERS must be positive, got %d", sim.Workers))
	}
	if sim.HistogramBins <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("RESERVOIR_HISTOGRAM_BINS must be positive, got %d", sim.HistogramBins))
	}
	if sim.CodeVersion == "" {
		return errors.ConfigInvalid("RESERVOIR_CODE_VERSION is required")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	return nil
}
