package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Workers != 0 || cfg.SamplesPerPixel != 0 || cfg.MaxDepth != 0 || cfg.Width != 0 {
		t.Errorf("Expected zero sampling defaults, got %+v", cfg)
	}
	if cfg.Seed != 42 {
		t.Errorf("Expected default seed 42, got %d", cfg.Seed)
	}
	if cfg.OutputDir != "output" || cfg.Port != 8080 || cfg.LogLevel != "notice" {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("RAYTRACER_WORKERS", "3")
	t.Setenv("RAYTRACER_SPP", "16")
	t.Setenv("RAYTRACER_SEED", "7")
	t.Setenv("RAYTRACER_OUTPUT_DIR", "/tmp/renders")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Workers != 3 || cfg.SamplesPerPixel != 16 || cfg.Seed != 7 || cfg.OutputDir != "/tmp/renders" {
		t.Errorf("Environment not applied: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"not a number", "RAYTRACER_WORKERS", "many"},
		{"negative", "RAYTRACER_MAX_DEPTH", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
