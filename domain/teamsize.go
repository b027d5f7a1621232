package domain

import (
	"context"
	"io"
)

// TeamSizeRequest represents a request for team size and duration estimation
type TeamSizeRequest struct {
	// Adjusted function points to staff for
	AdjustedFP float64

	// Total effort in person-hours. When zero it is derived from
	// AdjustedFP and ProductivityFactor.
	TotalEffortHours float64

	// Hours of effort per adjusted function point
	ProductivityFactor float64

	// Productive hours per person per working day
	HoursPerDay float64

	// Schedule buffer applied to raw effort, in percent
	BufferPercent float64

	// Constraints, mutually exclusive. Zero means unconstrained.
	FixedDurationMonths float64
	FixedTeamSize       int

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
func (req *TeamSizeRequest) Validate() error {
	if req.AdjustedFP <= 0 && req.TotalEffortHours <= 0 {
		return NewValidationError("either adjusted function points or total effort hours must be positive")
	}
	if req.TotalEffortHours <= 0 && req.ProductivityFactor <= 0 {
		return NewValidationError("productivity factor is required to derive effort from function points")
	}
	if req.HoursPerDay <= 0 {
		return NewValidationError("hours per day must be positive")
	}
	if req.HoursPerDay > 24 {
		return NewValidationError("hours per day cannot exceed 24")
	}
	if req.BufferPercent < 0 {
		return NewValidationError("buffer percent cannot be negative")
	}
	if req.FixedDurationMonths > 0 && req.FixedTeamSize > 0 {
		return NewValidationError("fixed duration and fixed team size are mutually exclusive")
	}
	if req.FixedDurationMonths < 0 {
		return NewValidationError("fixed duration cannot be negative")
	}
	if req.FixedTeamSize < 0 {
		return NewValidationError("fixed team size cannot be negative")
	}
	switch req.OutputFormat {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML, OutputFormatCSV, "":
	default:
		return NewUnsupportedFormatError(string(req.OutputFormat))
	}
	return nil
}

// TeamSizeResult represents the team size and schedule recommendation
type TeamSizeResult struct {
	// Inputs echoed for reporting
	AdjustedFP       float64
	TotalEffortHours float64
	BufferPercent    float64
	HoursPerDay      float64

	// Effort after the schedule buffer
	BufferedEffortHours float64

	// Recommended staffing
	RecommendedTeamSize int
	MinTeamSize         int
	MaxTeamSize         int

	// Schedule at the recommended size, and at the range bounds.
	// A larger team shortens the schedule, so MinDurationMonths
	// pairs with MaxTeamSize and vice versa.
	DurationMonths    float64
	MinDurationMonths float64
	MaxDurationMonths float64

	// Experience-tier sizing derived from project magnitude alone
	IdealMinTeamSize int
	IdealMaxTeamSize int

	// Metadata
	GeneratedAt string
	Version     string
}

// TeamSizeService defines the business logic for staffing estimation
type TeamSizeService interface {
	// EstimateTeam derives team size and duration from effort
	EstimateTeam(ctx context.Context, req TeamSizeRequest) (*TeamSizeResult, error)
}

// TeamSizeFormatter defines the interface for formatting staffing results
type TeamSizeFormatter interface {
	// Format formats the result according to the specified format
	Format(result *TeamSizeResult, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(result *TeamSizeResult, format OutputFormat, writer io.Writer) error
}
