package domain

import (
	"context"
	"io"
)

// TrendMetric selects which derived value a trend is computed over
type TrendMetric string

const (
	TrendMetricAFP    TrendMetric = "afp"
	TrendMetricEffort TrendMetric = "effort"
	TrendMetricVAF    TrendMetric = "vaf"
)

// IsValid checks whether the metric is supported
func (m TrendMetric) IsValid() bool {
	switch m {
	case TrendMetricAFP, TrendMetricEffort, TrendMetricVAF:
		return true
	}
	return false
}

// ParseTrendMetric converts a string to a TrendMetric
func ParseTrendMetric(s string) (TrendMetric, error) {
	m := TrendMetric(s)
	if !m.IsValid() {
		return "", NewUnsupportedMetricError(s)
	}
	return m, nil
}

// TrendDirection classifies how a metric moved across versions
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// IsGrowth returns true when the metric moved upward
func (d TrendDirection) IsGrowth() bool {
	return d == TrendIncreasing
}

// Symbol returns a single-character marker for compact display
func (d TrendDirection) Symbol() string {
	switch d {
	case TrendIncreasing:
		return "↑"
	case TrendDecreasing:
		return "↓"
	default:
		return "→"
	}
}

// TrendRequest represents a request for estimate history analysis
type TrendRequest struct {
	// Path to a version history file
	HistoryPath string

	// Inline history, used by callers that already hold one
	Estimates []*Estimate

	// Metric to analyze
	Metric TrendMetric

	// Band around zero treated as stable, in percent
	StableThresholdPercent float64

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string

	// Configuration
	ConfigPath string

	// CLI flags explicitly set by the user, for config merging
	ExplicitFlags map[string]bool
}

// Validate checks that the request is well formed
func (req *TrendRequest) Validate() error {
	if req.HistoryPath == "" && len(req.Estimates) == 0 {
		return NewValidationError("no input: provide a history file or inline estimates")
	}
	if !req.Metric.IsValid() {
		return NewUnsupportedMetricError(string(req.Metric))
	}
	if req.StableThresholdPercent < 0 {
		return NewValidationError("stable threshold cannot be negative")
	}
	switch req.OutputFormat {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML, OutputFormatCSV, "":
	default:
		return NewUnsupportedFormatError(string(req.OutputFormat))
	}
	return nil
}

// TrendPoint is one version's value of the analyzed metric
type TrendPoint struct {
	Version int
	Value   float64
}

// TrendResult represents the outcome of a history analysis
type TrendResult struct {
	Metric    TrendMetric
	Direction TrendDirection

	// Relative change from the first to the last version, in percent
	PercentageChange float64

	// True when the first value is zero and the last is not, which
	// leaves the percentage change without a defined baseline
	BaselineUndefined bool

	FirstValue float64
	LastValue  float64
	Points     []TrendPoint

	// Metadata
	GeneratedAt string
	Version     string
}

// TrendService defines the business logic for history analysis
type TrendService interface {
	// AnalyzeTrend computes direction and change across versions
	AnalyzeTrend(ctx context.Context, req TrendRequest) (*TrendResult, error)
}

// TrendFormatter defines the interface for formatting trend results
type TrendFormatter interface {
	// Format formats the result according to the specified format
	Format(result *TrendResult, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(result *TrendResult, format OutputFormat, writer io.Writer) error
}
