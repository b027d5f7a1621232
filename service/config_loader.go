package service

import (
	"os"

	"github.com/scopeworks/fpoint/domain"
	"github.com/scopeworks/fpoint/internal/config"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.CalculateRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}

	return c.convertToCalculateRequest(cfg), nil
}

// LoadDefaultConfig loads the default configuration, first checking
// for a config file in the current directory
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.CalculateRequest {
	configFile := c.FindDefaultConfigFile()
	if configFile != "" {
		if configReq, err := c.LoadConfig(configFile); err == nil {
			return configReq
		}
		// If loading failed, fall back to hardcoded defaults
	}

	cfg := config.DefaultConfig()
	return c.convertToCalculateRequest(cfg)
}

// MergeConfig merges CLI flags with configuration file
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.CalculateRequest, override *domain.CalculateRequest) *domain.CalculateRequest {
	merged := *base

	wasExplicitlySet := func(flagName string) bool {
		if override.ExplicitFlags == nil {
			return false
		}
		return override.ExplicitFlags[flagName]
	}

	// Paths and the inline estimate always come from the command
	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}
	if override.Estimate != nil {
		merged.Estimate = override.Estimate
	}

	// Output configuration
	if wasExplicitlySet("format") || override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}
	if wasExplicitlySet("details") {
		merged.ShowDetails = override.ShowDetails
	}

	// Sorting and filtering
	if wasExplicitlySet("sort") {
		merged.SortBy = override.SortBy
	}
	if len(override.KindFilter) > 0 {
		merged.KindFilter = override.KindFilter
	}

	// Calculation options
	if wasExplicitlySet("productivity") {
		merged.ProductivityFactor = override.ProductivityFactor
	}
	if wasExplicitlySet("eq-det-ceiling") {
		merged.Validation.EQDETCeiling = override.Validation.EQDETCeiling
	}
	if wasExplicitlySet("boundary-warnings") {
		merged.Validation.BoundaryWarnings = override.Validation.BoundaryWarnings
	}

	// Config path is always from override if provided
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	// File collection
	if wasExplicitlySet("recursive") {
		merged.Recursive = override.Recursive
	}
	if wasExplicitlySet("include") && len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}
	if wasExplicitlySet("exclude") && len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}

	return &merged
}

// convertToCalculateRequest converts internal config to domain request
func (c *ConfigurationLoaderImpl) convertToCalculateRequest(cfg *config.Config) *domain.CalculateRequest {
	var outputFormat domain.OutputFormat
	switch cfg.Output.Format {
	case "json":
		outputFormat = domain.OutputFormatJSON
	case "yaml":
		outputFormat = domain.OutputFormatYAML
	case "csv":
		outputFormat = domain.OutputFormatCSV
	default:
		outputFormat = domain.OutputFormatText
	}

	var sortBy domain.SortCriteria
	switch cfg.Output.SortBy {
	case "name":
		sortBy = domain.SortByName
	case "points":
		sortBy = domain.SortByPoints
	case "complexity":
		sortBy = domain.SortByComplexity
	default:
		sortBy = domain.SortByKind
	}

	return &domain.CalculateRequest{
		OutputFormat:       outputFormat,
		OutputWriter:       os.Stdout,
		ShowDetails:        cfg.Output.ShowDetails,
		SortBy:             sortBy,
		ProductivityFactor: cfg.Estimation.ProductivityFactor,
		Validation:         cfg.Calculation.ValidationOptions(),
		Recursive:          cfg.Input.Recursive,
		IncludePatterns:    cfg.Input.IncludePatterns,
		ExcludePatterns:    cfg.Input.ExcludePatterns,
	}
}

// CreateConfigTemplate creates a template configuration file
func (c *ConfigurationLoaderImpl) CreateConfigTemplate(path string) error {
	cfg := config.DefaultConfig()
	return config.SaveConfig(cfg, path)
}

// FindDefaultConfigFile looks for a config file in the current directory
func (c *ConfigurationLoaderImpl) FindDefaultConfigFile() string {
	configFiles := []string{".fpoint.toml", ".fpoint.yaml", ".fpoint.yml", "fpoint.yaml"}

	for _, filename := range configFiles {
		if _, err := os.Stat(filename); err == nil {
			return filename
		}
	}

	return ""
}
