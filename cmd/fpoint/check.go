package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/scopeworks/fpoint/app"
	"github.com/scopeworks/fpoint/domain"
	"github.com/scopeworks/fpoint/service"
)

// CheckCommand represents a CI-oriented estimate validation command
type CheckCommand struct {
	configFile string
	quiet      bool

	// Gate thresholds
	maxAFP           float64
	boundaryWarnings bool
}

// NewCheckCommand creates a new check command
func NewCheckCommand() *CheckCommand {
	return &CheckCommand{}
}

// CreateCobraCommand creates the cobra command for estimate checking
func (c *CheckCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Validate estimate files with CI-friendly output",
		Long: `Validate estimate definition files and fail on broken counts.

This command runs the full calculation but reports only problems:
• Components with out-of-range DET, RET, or FTR counts
• Dual-count inquiries missing a side or over the DET ceiling
• Estimates whose adjusted count exceeds --max-afp (when set)

Exit codes:
• 0: All estimates valid
• 1: Validation issues found (see output for details)

Examples:
  # Check current directory (typical CI usage)
  fpoint check .

  # Fail when the project grows past 500 adjusted function points
  fpoint check --max-afp 500 estimates/

  # Include boundary warnings in the output
  fpoint check --boundary-warnings estimates/`,
		Args: cobra.ArbitraryArgs,
		RunE: c.runCheck,
	}

	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path")
	cmd.Flags().BoolVarP(&c.quiet, "quiet", "q", false, "Suppress output unless issues found")
	cmd.Flags().Float64Var(&c.maxAFP, "max-afp", 0, "Maximum allowed total adjusted function points (0 = no limit)")
	cmd.Flags().BoolVar(&c.boundaryWarnings, "boundary-warnings", false, "Report counts sitting exactly on a band boundary")

	return cmd
}

// runCheck executes the estimate validation
func (c *CheckCommand) runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	request := domain.CalculateRequest{
		Paths:        args,
		OutputFormat: domain.OutputFormatText,
		OutputWriter: io.Discard,
		SortBy:       domain.SortByKind,
		Validation: domain.ValidationOptions{
			BoundaryWarnings: c.boundaryWarnings,
		},
		ConfigPath:    c.configFile,
		Recursive:     true,
		ExplicitFlags: collectExplicitFlags(cmd),
	}

	useCase, err := app.NewCalculateUseCaseBuilder().
		WithService(service.NewCalculationService()).
		WithReader(service.NewEstimateReader()).
		WithFormatter(service.NewOutputFormatter()).
		WithConfigLoader(service.NewConfigurationLoader()).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create calculate use case: %w", err)
	}

	response, err := useCase.ExecuteAndReturn(cmd.Context(), request)
	if err != nil {
		return fmt.Errorf("estimate check failed: %w", err)
	}

	issueCount := 0

	// File-level parse failures
	for _, parseErr := range response.Errors {
		issueCount++
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", parseErr)
	}

	// Component-level validation failures in linter format
	for _, result := range response.Results {
		source := result.SourceFile
		if source == "" {
			source = result.Name
		}
		for _, component := range result.Components {
			for _, issue := range component.Validation.Errors {
				issueCount++
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s: %s\n",
					source, component.Component.DisplayName(), issue.String())
			}
			if c.boundaryWarnings && !c.quiet {
				for _, warning := range component.Validation.Warnings {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s: warning: %s\n",
						source, component.Component.DisplayName(), warning.String())
				}
			}
		}
	}

	// Magnitude gate
	if c.maxAFP > 0 && response.Summary.TotalAdjustedFP > c.maxAFP {
		issueCount++
		fmt.Fprintf(cmd.ErrOrStderr(), "total adjusted function points too high (%.2f > %.2f)\n",
			response.Summary.TotalAdjustedFP, c.maxAFP)
	}

	if issueCount > 0 {
		return fmt.Errorf("found %d estimate issue(s)", issueCount)
	}

	if !c.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "✅ %d estimate(s) valid (%.2f adjusted function points)\n",
			response.Summary.TotalEstimates, response.Summary.TotalAdjustedFP)
	}

	return nil
}

// NewCheckCmd creates and returns the check cobra command
func NewCheckCmd() *cobra.Command {
	checkCommand := NewCheckCommand()
	return checkCommand.CreateCobraCommand()
}
