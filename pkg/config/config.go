package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds process-wide defaults read from RAYTRACER_* environment variables.
// Zero values for the sampling fields mean "use the scene's recommendation".
type Config struct {
	Workers         int    `envconfig:"WORKERS" default:"0"`
	SamplesPerPixel int    `envconfig:"SPP" default:"0"`
	MaxDepth        int    `envconfig:"MAX_DEPTH" default:"0"`
	Width           int    `envconfig:"WIDTH" default:"0"`
	Seed            int64  `envconfig:"SEED" default:"42"`
	OutputDir       string `envconfig:"OUTPUT_DIR" default:"output"`
	Port            int    `envconfig:"PORT" default:"8080"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"notice"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("raytracer", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.Workers < 0 || cfg.SamplesPerPixel < 0 || cfg.MaxDepth < 0 || cfg.Width < 0 {
		return nil, fmt.Errorf("loading config: negative sampling values are not allowed")
	}
	return &cfg, nil
}
