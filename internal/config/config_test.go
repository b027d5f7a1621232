package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scopeworks/fpoint/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Calculation.EQDETCeiling != domain.DefaultEQDETCeiling {
		t.Errorf("EQDETCeiling = %d, want %d", cfg.Calculation.EQDETCeiling, domain.DefaultEQDETCeiling)
	}
	if !cfg.Calculation.BoundaryWarnings {
		t.Error("boundary warnings should default to enabled")
	}
	if cfg.Estimation.ProductivityFactor != 0 {
		t.Errorf("productivity factor must default to unset, got %g", cfg.Estimation.ProductivityFactor)
	}
	if cfg.Estimation.HoursPerDay != domain.DefaultHoursPerDay {
		t.Errorf("HoursPerDay = %g, want %g", cfg.Estimation.HoursPerDay, domain.DefaultHoursPerDay)
	}
	if cfg.Estimation.BufferPercent != domain.DefaultBufferPercent {
		t.Errorf("BufferPercent = %g, want %g", cfg.Estimation.BufferPercent, domain.DefaultBufferPercent)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("Format = %q, want text", cfg.Output.Format)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero eq det ceiling", func(c *Config) { c.Calculation.EQDETCeiling = 0 }},
		{"negative productivity factor", func(c *Config) { c.Estimation.ProductivityFactor = -1 }},
		{"zero hours per day", func(c *Config) { c.Estimation.HoursPerDay = 0 }},
		{"hours per day over 24", func(c *Config) { c.Estimation.HoursPerDay = 25 }},
		{"negative buffer", func(c *Config) { c.Estimation.BufferPercent = -5 }},
		{"negative stable threshold", func(c *Config) { c.Trend.StableThresholdPercent = -0.5 }},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }},
		{"bad sort", func(c *Config) { c.Output.SortBy = "severity" }},
		{"empty include patterns", func(c *Config) { c.Input.IncludePatterns = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfigYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".fpoint.yaml")
	content := `estimation:
  productivity_factor: 12.5
  hours_per_day: 7
output:
  format: json
  sort_by: points
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Estimation.ProductivityFactor != 12.5 {
		t.Errorf("ProductivityFactor = %g, want 12.5", cfg.Estimation.ProductivityFactor)
	}
	if cfg.Estimation.HoursPerDay != 7 {
		t.Errorf("HoursPerDay = %g, want 7", cfg.Estimation.HoursPerDay)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Output.Format)
	}
	if cfg.Output.SortBy != "points" {
		t.Errorf("SortBy = %q, want points", cfg.Output.SortBy)
	}
	// Untouched sections keep their defaults
	if cfg.Calculation.EQDETCeiling != domain.DefaultEQDETCeiling {
		t.Errorf("EQDETCeiling = %d, want default", cfg.Calculation.EQDETCeiling)
	}
}

func TestDefaultConfigTOMLTemplate(t *testing.T) {
	if DefaultConfigTOML == "" {
		t.Fatal("embedded config template is empty")
	}
	for _, section := range []string{"[calculation]", "[estimation]", "[trend]", "[output]", "[input]"} {
		if !strings.Contains(DefaultConfigTOML, section) {
			t.Errorf("template missing section %s", section)
		}
	}
}
