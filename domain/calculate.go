package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
)

// SortCriteria represents the criteria for sorting results
type SortCriteria string

const (
	SortByKind       SortCriteria = "kind"
	SortByName       SortCriteria = "name"
	SortByPoints     SortCriteria = "points"
	SortByComplexity SortCriteria = "complexity"
)

// ValidationOptions controls the tunable limits of the validation
// pipeline. Zero values fall back to the documented defaults.
type ValidationOptions struct {
	// Combined input+output DET ceiling for dual-count inquiries
	EQDETCeiling int

	// Emit warnings when a count sits exactly on a classification
	// band boundary
	BoundaryWarnings bool
}

// CalculateRequest represents a request for a function point calculation
type CalculateRequest struct {
	// Input estimate definition files or directories
	Paths []string

	// Inline estimate, used by callers that already hold one
	Estimate *Estimate

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	ShowDetails  bool

	// Filtering and sorting
	SortBy     SortCriteria
	KindFilter []ComponentKind

	// Calculation options
	ProductivityFactor float64
	Validation         ValidationOptions

	// Configuration
	ConfigPath string

	// File collection options
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// CLI flags explicitly set by the user, for config merging
	ExplicitFlags map[string]bool
}

// Validate checks that the request is well formed
func (req *CalculateRequest) Validate() error {
	if len(req.Paths) == 0 && req.Estimate == nil {
		return NewValidationError("no input: provide estimate files or an inline estimate")
	}
	switch req.OutputFormat {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML, OutputFormatCSV:
	default:
		return NewUnsupportedFormatError(string(req.OutputFormat))
	}
	switch req.SortBy {
	case SortByKind, SortByName, SortByPoints, SortByComplexity, "":
	default:
		return NewValidationError("sort criteria must be one of: kind, name, points, complexity")
	}
	for _, kind := range req.KindFilter {
		if !kind.IsValid() {
			return NewUnknownKindError(string(kind))
		}
	}
	if req.ProductivityFactor < 0 {
		return NewValidationError("productivity factor cannot be negative")
	}
	return nil
}

// ComponentResult represents the classification outcome for a single component
type ComponentResult struct {
	Component  Component
	Complexity Complexity
	Weight     int

	// Per-side ratings, populated for dual-count inquiries
	InputRating  Complexity
	OutputRating Complexity

	// Validation outcome for the component's counts
	Validation ValidationResult
}

// FunctionPoints returns the component's contribution to the unadjusted count
func (r *ComponentResult) FunctionPoints() int {
	return r.Weight
}

// EstimateResult represents the calculation outcome for one estimate
type EstimateResult struct {
	EstimateID string
	ProjectID  string
	Name       string
	Version    int
	SourceFile string

	Components []ComponentResult

	UnadjustedFP   int
	TotalInfluence int
	VAF            float64
	AdjustedFP     float64
	EffortHours    float64

	// False when any component failed validation
	Valid bool
}

// KindBreakdown aggregates component counts and points for one kind
type KindBreakdown struct {
	Count          int
	FunctionPoints int
}

// CalculateSummary represents aggregate statistics across all estimates
type CalculateSummary struct {
	TotalEstimates  int
	TotalComponents int
	FilesAnalyzed   int

	TotalUnadjustedFP int
	TotalAdjustedFP   float64
	TotalEffortHours  float64

	// Per-kind counts and points, keyed by ComponentKind
	KindBreakdowns map[ComponentKind]KindBreakdown

	// Complexity distribution across all components
	ComplexityDistribution map[string]int
}

// CalculateResponse represents the complete calculation result
type CalculateResponse struct {
	Results []EstimateResult
	Summary CalculateSummary

	// Warnings and issues
	Warnings []string
	Errors   []string

	// Metadata
	GeneratedAt string
	Version     string
	Config      interface{}
}

// CalculationService defines the core business logic for function point counting
type CalculationService interface {
	// Calculate performs a full calculation on the given request
	Calculate(ctx context.Context, req CalculateRequest) (*CalculateResponse, error)

	// CalculateEstimate calculates a single estimate
	CalculateEstimate(ctx context.Context, estimate *Estimate, req CalculateRequest) (*EstimateResult, error)

	// ValidateComponent runs the validation pipeline on one component
	ValidateComponent(ctx context.Context, component Component, opts ValidationOptions) (*ValidationResult, error)

	// ClassifyComponent rates one component without building a full response
	ClassifyComponent(ctx context.Context, component Component) (*ComponentResult, error)
}

// EstimateReader defines the interface for reading estimate definitions
type EstimateReader interface {
	// CollectEstimateFiles recursively finds estimate files in the given paths
	CollectEstimateFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadEstimate parses a single estimate definition file
	ReadEstimate(path string) (*Estimate, error)

	// ReadHistory parses a version history file into estimates ordered as stored
	ReadHistory(path string) ([]*Estimate, error)

	// IsValidEstimateFile checks if a file looks like an estimate definition
	IsValidEstimateFile(path string) bool

	// FileExists checks if a file exists and returns an error if not
	FileExists(path string) (bool, error)
}

// OutputFormatter defines the interface for formatting calculation results
type OutputFormatter interface {
	// Format formats the calculation response according to the specified format
	Format(response *CalculateResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *CalculateResponse, format OutputFormat, writer io.Writer) error
}

// ConfigurationLoader defines the interface for loading configuration
type ConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*CalculateRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *CalculateRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *CalculateRequest, override *CalculateRequest) *CalculateRequest
}
