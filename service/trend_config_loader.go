package service

import (
	"os"

	"github.com/scopeworks/fpoint/domain"
	"github.com/scopeworks/fpoint/internal/config"
)

// TrendConfigLoader loads trend analysis configuration into domain requests
type TrendConfigLoader struct{}

// NewTrendConfigLoader creates a new trend config loader
func NewTrendConfigLoader() *TrendConfigLoader {
	return &TrendConfigLoader{}
}

// LoadConfig loads configuration from the specified path
func (l *TrendConfigLoader) LoadConfig(path string) (*domain.TrendRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return l.convertToTrendRequest(cfg), nil
}

// LoadDefaultConfig loads the default configuration
func (l *TrendConfigLoader) LoadDefaultConfig() *domain.TrendRequest {
	cfg, err := config.LoadConfig("")
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return l.convertToTrendRequest(cfg)
}

// MergeConfig merges CLI flags with configuration file
func (l *TrendConfigLoader) MergeConfig(base *domain.TrendRequest, override *domain.TrendRequest) *domain.TrendRequest {
	merged := *base

	wasExplicitlySet := func(flagName string) bool {
		if override.ExplicitFlags == nil {
			return false
		}
		return override.ExplicitFlags[flagName]
	}

	// The history source always comes from the command
	if override.HistoryPath != "" {
		merged.HistoryPath = override.HistoryPath
	}
	if len(override.Estimates) > 0 {
		merged.Estimates = override.Estimates
	}

	if wasExplicitlySet("metric") || override.Metric != "" {
		merged.Metric = override.Metric
	}
	if wasExplicitlySet("stable-threshold") {
		merged.StableThresholdPercent = override.StableThresholdPercent
	}

	if wasExplicitlySet("format") || override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	return &merged
}

func (l *TrendConfigLoader) convertToTrendRequest(cfg *config.Config) *domain.TrendRequest {
	return &domain.TrendRequest{
		Metric:                 domain.TrendMetricAFP,
		StableThresholdPercent: cfg.Trend.StableThresholdPercent,
		OutputFormat:           domain.OutputFormat(cfg.Output.Format),
		OutputWriter:           os.Stdout,
	}
}
