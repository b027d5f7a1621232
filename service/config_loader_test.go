package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scopeworks/fpoint/domain"
)

func TestLoadDefaultConfig(t *testing.T) {
	loader := NewConfigurationLoader()
	req := loader.LoadDefaultConfig()

	assert.Equal(t, domain.OutputFormatText, req.OutputFormat)
	assert.Equal(t, domain.SortByKind, req.SortBy)
	assert.Equal(t, domain.DefaultEQDETCeiling, req.Validation.EQDETCeiling)
	assert.True(t, req.Validation.BoundaryWarnings)
	assert.True(t, req.Recursive)
	assert.NotEmpty(t, req.IncludePatterns)
}

func TestMergeConfigExplicitFlags(t *testing.T) {
	loader := NewConfigurationLoader()
	base := loader.LoadDefaultConfig()

	override := &domain.CalculateRequest{
		Paths:              []string{"estimates/"},
		OutputFormat:       domain.OutputFormatJSON,
		SortBy:             domain.SortByPoints,
		ProductivityFactor: 15,
		ShowDetails:        true,
		ExplicitFlags: map[string]bool{
			"sort":         true,
			"productivity": true,
			"details":      true,
		},
	}

	merged := loader.MergeConfig(base, override)

	assert.Equal(t, []string{"estimates/"}, merged.Paths)
	assert.Equal(t, domain.OutputFormatJSON, merged.OutputFormat)
	assert.Equal(t, domain.SortByPoints, merged.SortBy)
	assert.Equal(t, 15.0, merged.ProductivityFactor)
	assert.True(t, merged.ShowDetails)

	// Untouched settings keep the base values
	assert.Equal(t, base.Validation.EQDETCeiling, merged.Validation.EQDETCeiling)
	assert.Equal(t, base.Recursive, merged.Recursive)
}

func TestMergeConfigIgnoresUnflaggedOverrides(t *testing.T) {
	loader := NewConfigurationLoader()
	base := loader.LoadDefaultConfig()
	base.ProductivityFactor = 12

	override := &domain.CalculateRequest{
		ProductivityFactor: 99,
		// productivity flag not set, so the override must not apply
		ExplicitFlags: map[string]bool{},
	}

	merged := loader.MergeConfig(base, override)
	assert.Equal(t, 12.0, merged.ProductivityFactor)
}

func TestTeamSizeConfigLoaderMerge(t *testing.T) {
	loader := NewTeamSizeConfigLoader()
	base := loader.LoadDefaultConfig()

	assert.Equal(t, domain.DefaultHoursPerDay, base.HoursPerDay)
	assert.Equal(t, domain.DefaultBufferPercent, base.BufferPercent)

	override := &domain.TeamSizeRequest{
		AdjustedFP:    250,
		BufferPercent: 0,
		ExplicitFlags: map[string]bool{"buffer": true},
	}

	merged := loader.MergeConfig(base, override)
	assert.Equal(t, 250.0, merged.AdjustedFP)
	// Explicit zero buffer overrides the configured default
	assert.Zero(t, merged.BufferPercent)
	assert.Equal(t, domain.DefaultHoursPerDay, merged.HoursPerDay)
}

func TestTrendConfigLoaderMerge(t *testing.T) {
	loader := NewTrendConfigLoader()
	base := loader.LoadDefaultConfig()

	assert.Equal(t, domain.TrendMetricAFP, base.Metric)
	assert.Equal(t, domain.DefaultStableThresholdPercent, base.StableThresholdPercent)

	override := &domain.TrendRequest{
		HistoryPath:            "history.yaml",
		Metric:                 domain.TrendMetricEffort,
		StableThresholdPercent: 2.5,
		ExplicitFlags:          map[string]bool{"metric": true, "stable-threshold": true},
	}

	merged := loader.MergeConfig(base, override)
	assert.Equal(t, "history.yaml", merged.HistoryPath)
	assert.Equal(t, domain.TrendMetricEffort, merged.Metric)
	assert.Equal(t, 2.5, merged.StableThresholdPercent)
}
