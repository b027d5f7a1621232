package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/scopeworks/fpoint/domain"
)

// Config represents the main configuration structure
type Config struct {
	// Calculation holds validation and classification configuration
	Calculation CalculationConfig `mapstructure:"calculation" yaml:"calculation"`

	// Estimation holds effort and staffing configuration
	Estimation EstimationConfig `mapstructure:"estimation" yaml:"estimation"`

	// Trend holds version history analysis configuration
	Trend TrendConfig `mapstructure:"trend" yaml:"trend"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Input holds estimate file collection configuration
	Input InputConfig `mapstructure:"input" yaml:"input"`
}

// CalculationConfig holds configuration for the validation pipeline
// and complexity classification
type CalculationConfig struct {
	// EQDETCeiling is the maximum combined input+output DET count
	// accepted for a dual-count inquiry
	EQDETCeiling int `mapstructure:"eq_det_ceiling" yaml:"eq_det_ceiling"`

	// BoundaryWarnings controls whether counts sitting exactly on a
	// classification band edge emit warnings
	BoundaryWarnings bool `mapstructure:"boundary_warnings" yaml:"boundary_warnings"`
}

// EstimationConfig holds configuration for effort and team estimation
type EstimationConfig struct {
	// ProductivityFactor is hours of effort per adjusted function
	// point. Zero means unset; the calculator never invents one.
	ProductivityFactor float64 `mapstructure:"productivity_factor" yaml:"productivity_factor"`

	// HoursPerDay is the productive hours per person per working day
	HoursPerDay float64 `mapstructure:"hours_per_day" yaml:"hours_per_day"`

	// BufferPercent is the schedule buffer applied to raw effort
	BufferPercent float64 `mapstructure:"buffer_percent" yaml:"buffer_percent"`
}

// TrendConfig holds configuration for trend analysis
type TrendConfig struct {
	// StableThresholdPercent is the band around zero change treated
	// as stable
	StableThresholdPercent float64 `mapstructure:"stable_threshold_percent" yaml:"stable_threshold_percent"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv
	Format string `mapstructure:"format" yaml:"format"`

	// SortBy specifies how to sort components: kind, name, points, complexity
	SortBy string `mapstructure:"sort_by" yaml:"sort_by"`

	// ShowDetails controls whether to show the per-component breakdown
	ShowDetails bool `mapstructure:"show_details" yaml:"show_details"`

	// Directory is where generated report files are written
	Directory string `mapstructure:"directory" yaml:"directory"`
}

// InputConfig holds configuration for estimate file collection
type InputConfig struct {
	// IncludePatterns specifies file patterns to include
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns specifies file patterns to exclude
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive controls whether directories are walked recursively
	Recursive bool `mapstructure:"recursive" yaml:"recursive"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Calculation: CalculationConfig{
			EQDETCeiling:     domain.DefaultEQDETCeiling,
			BoundaryWarnings: true,
		},
		Estimation: EstimationConfig{
			ProductivityFactor: 0, // must be supplied by the organization
			HoursPerDay:        domain.DefaultHoursPerDay,
			BufferPercent:      domain.DefaultBufferPercent,
		},
		Trend: TrendConfig{
			StableThresholdPercent: domain.DefaultStableThresholdPercent,
		},
		Output: OutputConfig{
			Format:      "text",
			SortBy:      "kind",
			ShowDetails: false,
		},
		Input: InputConfig{
			IncludePatterns: []string{"*.fpe.yaml", "*.fpe.yml", "*.fpe.json"},
			ExcludePatterns: []string{},
			Recursive:       true,
		},
	}
}

// LoadConfig loads configuration from file or returns the defaults.
// TOML files go through the dedicated loader; everything else is
// handled by viper.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	// If no config path specified, try to find default config files
	if configPath == "" {
		if tomlPath, err := NewTomlConfigLoader().FindConfigFile("."); err == nil {
			configPath = tomlPath
		} else {
			configPath = findDefaultConfig()
		}
	}

	// If still no config found, return default
	if configPath == "" {
		return config, nil
	}

	if filepath.Ext(configPath) == ".toml" {
		return NewTomlConfigLoader().LoadFile(configPath)
	}

	viper.SetConfigFile(configPath)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigWithTarget loads configuration, preferring config files
// discovered upward from the target path over the working directory
func LoadConfigWithTarget(configPath, targetPath string) (*Config, error) {
	if configPath == "" && targetPath != "" {
		startDir := targetPath
		if info, err := os.Stat(targetPath); err == nil && !info.IsDir() {
			startDir = filepath.Dir(targetPath)
		}
		if tomlPath, err := NewTomlConfigLoader().FindConfigFile(startDir); err == nil {
			configPath = tomlPath
		}
	}
	return LoadConfig(configPath)
}

// findDefaultConfig looks for default configuration files in common locations
func findDefaultConfig() string {
	candidates := []string{
		".fpoint.yaml",
		".fpoint.yml",
		"fpoint.yaml",
		"fpoint.yml",
	}

	// Check current directory first
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	// Check home directory
	if home, err := os.UserHomeDir(); err == nil {
		for _, candidate := range candidates {
			path := filepath.Join(home, candidate)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Calculation.EQDETCeiling < 1 {
		return fmt.Errorf("calculation.eq_det_ceiling must be >= 1, got %d", c.Calculation.EQDETCeiling)
	}

	if c.Estimation.ProductivityFactor < 0 {
		return fmt.Errorf("estimation.productivity_factor must be >= 0, got %g", c.Estimation.ProductivityFactor)
	}

	if c.Estimation.HoursPerDay <= 0 {
		return fmt.Errorf("estimation.hours_per_day must be positive, got %g", c.Estimation.HoursPerDay)
	}

	if c.Estimation.HoursPerDay > 24 {
		return fmt.Errorf("estimation.hours_per_day cannot exceed 24, got %g", c.Estimation.HoursPerDay)
	}

	if c.Estimation.BufferPercent < 0 {
		return fmt.Errorf("estimation.buffer_percent must be >= 0, got %g", c.Estimation.BufferPercent)
	}

	if c.Trend.StableThresholdPercent < 0 {
		return fmt.Errorf("trend.stable_threshold_percent must be >= 0, got %g", c.Trend.StableThresholdPercent)
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
		"csv":  true,
	}

	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, csv", c.Output.Format)
	}

	validSortBy := map[string]bool{
		"kind":       true,
		"name":       true,
		"points":     true,
		"complexity": true,
	}

	if !validSortBy[c.Output.SortBy] {
		return fmt.Errorf("invalid output.sort_by '%s', must be one of: kind, name, points, complexity", c.Output.SortBy)
	}

	if len(c.Input.IncludePatterns) == 0 {
		return fmt.Errorf("input.include_patterns cannot be empty")
	}

	return nil
}

// ValidationOptions converts the calculation section to the domain
// options consumed by the validation pipeline
func (c *CalculationConfig) ValidationOptions() domain.ValidationOptions {
	return domain.ValidationOptions{
		EQDETCeiling:     c.EQDETCeiling,
		BoundaryWarnings: c.BoundaryWarnings,
	}
}

// HasProductivityFactor reports whether the organization supplied a
// productivity factor in configuration
func (c *EstimationConfig) HasProductivityFactor() bool {
	return c.ProductivityFactor > 0
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	viper.Set("calculation", config.Calculation)
	viper.Set("estimation", config.Estimation)
	viper.Set("trend", config.Trend)
	viper.Set("output", config.Output)
	viper.Set("input", config.Input)

	return viper.WriteConfig()
}
