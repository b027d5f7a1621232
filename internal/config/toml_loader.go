package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FpointTomlConfig represents the structure of .fpoint.toml. Boolean
// and threshold fields use pointers so an absent key is
// distinguishable from an explicit zero.
type FpointTomlConfig struct {
	Calculation FpointTomlCalculationConfig `toml:"calculation"`
	Estimation  FpointTomlEstimationConfig  `toml:"estimation"`
	Trend       FpointTomlTrendConfig       `toml:"trend"`
	Output      FpointTomlOutputConfig      `toml:"output"`
	Input       FpointTomlInputConfig       `toml:"input"`
}

type FpointTomlCalculationConfig struct {
	EQDETCeiling     int   `toml:"eq_det_ceiling"`
	BoundaryWarnings *bool `toml:"boundary_warnings"` // pointer to detect unset
}

type FpointTomlEstimationConfig struct {
	ProductivityFactor float64  `toml:"productivity_factor"`
	HoursPerDay        float64  `toml:"hours_per_day"`
	BufferPercent      *float64 `toml:"buffer_percent"` // pointer to detect unset (0 is a valid buffer)
}

type FpointTomlTrendConfig struct {
	StableThresholdPercent *float64 `toml:"stable_threshold_percent"` // pointer to detect unset
}

type FpointTomlOutputConfig struct {
	Format      string `toml:"format"`
	SortBy      string `toml:"sort_by"`
	ShowDetails *bool  `toml:"show_details"` // pointer to detect unset
	Directory   string `toml:"directory"`
}

type FpointTomlInputConfig struct {
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
	Recursive       *bool    `toml:"recursive"` // pointer to detect unset
}

// TomlConfigLoader handles TOML-only configuration loading
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig loads configuration from .fpoint.toml, walking up the
// directory tree from startDir. Returns the defaults when no config
// file exists.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	configPath, err := l.FindConfigFile(startDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return l.LoadFile(configPath)
}

// LoadFile loads and validates a specific TOML config file
func (l *TomlConfigLoader) LoadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var fileConfig FpointTomlConfig
	if err := toml.Unmarshal(data, &fileConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	config := DefaultConfig()
	l.merge(config, &fileConfig)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}

	return config, nil
}

// FindConfigFile walks up the directory tree to find .fpoint.toml
func (l *TomlConfigLoader) FindConfigFile(startDir string) (string, error) {
	dir := startDir
	if dir == "" {
		dir = "."
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	for {
		configPath := filepath.Join(dir, ".fpoint.toml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

// merge overlays explicitly set TOML values onto the defaults
func (l *TomlConfigLoader) merge(defaults *Config, fileConfig *FpointTomlConfig) {
	// Calculation
	if fileConfig.Calculation.EQDETCeiling > 0 {
		defaults.Calculation.EQDETCeiling = fileConfig.Calculation.EQDETCeiling
	}
	if fileConfig.Calculation.BoundaryWarnings != nil {
		defaults.Calculation.BoundaryWarnings = *fileConfig.Calculation.BoundaryWarnings
	}

	// Estimation
	if fileConfig.Estimation.ProductivityFactor > 0 {
		defaults.Estimation.ProductivityFactor = fileConfig.Estimation.ProductivityFactor
	}
	if fileConfig.Estimation.HoursPerDay > 0 {
		defaults.Estimation.HoursPerDay = fileConfig.Estimation.HoursPerDay
	}
	if fileConfig.Estimation.BufferPercent != nil {
		defaults.Estimation.BufferPercent = *fileConfig.Estimation.BufferPercent
	}

	// Trend
	if fileConfig.Trend.StableThresholdPercent != nil {
		defaults.Trend.StableThresholdPercent = *fileConfig.Trend.StableThresholdPercent
	}

	// Output
	if fileConfig.Output.Format != "" {
		defaults.Output.Format = fileConfig.Output.Format
	}
	if fileConfig.Output.SortBy != "" {
		defaults.Output.SortBy = fileConfig.Output.SortBy
	}
	if fileConfig.Output.ShowDetails != nil {
		defaults.Output.ShowDetails = *fileConfig.Output.ShowDetails
	}
	if fileConfig.Output.Directory != "" {
		defaults.Output.Directory = fileConfig.Output.Directory
	}

	// Input
	if len(fileConfig.Input.IncludePatterns) > 0 {
		defaults.Input.IncludePatterns = fileConfig.Input.IncludePatterns
	}
	if len(fileConfig.Input.ExcludePatterns) > 0 {
		defaults.Input.ExcludePatterns = fileConfig.Input.ExcludePatterns
	}
	if fileConfig.Input.Recursive != nil {
		defaults.Input.Recursive = *fileConfig.Input.Recursive
	}
}
