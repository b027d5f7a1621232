package service

import (
	"os"

	"github.com/scopeworks/fpoint/domain"
	"github.com/scopeworks/fpoint/internal/config"
)

// TeamSizeConfigLoader loads staffing configuration into domain requests
type TeamSizeConfigLoader struct{}

// NewTeamSizeConfigLoader creates a new team size config loader
func NewTeamSizeConfigLoader() *TeamSizeConfigLoader {
	return &TeamSizeConfigLoader{}
}

// LoadConfig loads configuration from the specified path
func (l *TeamSizeConfigLoader) LoadConfig(path string) (*domain.TeamSizeRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return l.convertToTeamSizeRequest(cfg), nil
}

// LoadDefaultConfig loads the default configuration
func (l *TeamSizeConfigLoader) LoadDefaultConfig() *domain.TeamSizeRequest {
	cfg, err := config.LoadConfig("")
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return l.convertToTeamSizeRequest(cfg)
}

// MergeConfig merges CLI flags with configuration file
func (l *TeamSizeConfigLoader) MergeConfig(base *domain.TeamSizeRequest, override *domain.TeamSizeRequest) *domain.TeamSizeRequest {
	merged := *base

	wasExplicitlySet := func(flagName string) bool {
		if override.ExplicitFlags == nil {
			return false
		}
		return override.ExplicitFlags[flagName]
	}

	// The magnitude always comes from the command
	if override.AdjustedFP > 0 {
		merged.AdjustedFP = override.AdjustedFP
	}
	if override.TotalEffortHours > 0 {
		merged.TotalEffortHours = override.TotalEffortHours
	}

	if wasExplicitlySet("productivity") {
		merged.ProductivityFactor = override.ProductivityFactor
	}
	if wasExplicitlySet("hours-per-day") {
		merged.HoursPerDay = override.HoursPerDay
	}
	if wasExplicitlySet("buffer") {
		merged.BufferPercent = override.BufferPercent
	}
	if wasExplicitlySet("duration") {
		merged.FixedDurationMonths = override.FixedDurationMonths
	}
	if wasExplicitlySet("team-size") {
		merged.FixedTeamSize = override.FixedTeamSize
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

func (l *TeamSizeConfigLoader) convertToTeamSizeRequest(cfg *config.Config) *domain.TeamSizeRequest {
	return &domain.TeamSizeRequest{
		ProductivityFactor: cfg.Estimation.ProductivityFactor,
		HoursPerDay:        cfg.Estimation.HoursPerDay,
		BufferPercent:      cfg.Estimation.BufferPercent,
		OutputFormat:       domain.OutputFormat(cfg.Output.Format),
		OutputWriter:       os.Stdout,
	}
}
