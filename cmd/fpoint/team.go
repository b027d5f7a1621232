package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scopeworks/fpoint/app"
	"github.com/scopeworks/fpoint/domain"
	"github.com/scopeworks/fpoint/service"
)

// TeamCommand represents the team size estimation command
type TeamCommand struct {
	adjustedFP  float64
	effortHours float64

	productivityFactor float64
	hoursPerDay        float64
	bufferPercent      float64

	fixedDuration float64
	fixedTeamSize int

	jsonOutput bool
	csvOutput  bool
	yamlOutput bool

	configPath string
}

// NewTeamCommand creates a new team command
func NewTeamCommand() *TeamCommand {
	return &TeamCommand{
		hoursPerDay:   domain.DefaultHoursPerDay,
		bufferPercent: domain.DefaultBufferPercent,
	}
}

// CreateCobraCommand creates the cobra command for team size estimation
func (c *TeamCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Estimate team size and duration from function points",
		Long: `Estimate team size and project duration from an adjusted function
point count or a total effort figure.

The magnitude picks a target duration band, the effort (plus schedule
buffer) is spread over that duration at the configured productive hours
per day, and the resulting head count is reported with a working range.

Examples:
  # Staff a 250 AFP project at 10 hours per function point
  fpoint team --afp 250 --productivity 10

  # Staff from a known effort figure
  fpoint team --effort 2500

  # Answer "how long with 4 people?"
  fpoint team --effort 2500 --team-size 4

  # Answer "how many people to finish in 6 months?"
  fpoint team --effort 2500 --duration 6`,
		RunE: c.runTeam,
	}

	cmd.Flags().Float64Var(&c.adjustedFP, "afp", 0, "Adjusted function points to staff for")
	cmd.Flags().Float64Var(&c.effortHours, "effort", 0, "Total effort in person-hours (overrides derivation from --afp)")

	cmd.Flags().Float64Var(&c.productivityFactor, "productivity", 0, "Hours per adjusted function point")
	cmd.Flags().Float64Var(&c.hoursPerDay, "hours-per-day", domain.DefaultHoursPerDay, "Productive hours per person per day")
	cmd.Flags().Float64Var(&c.bufferPercent, "buffer", domain.DefaultBufferPercent, "Schedule buffer in percent")

	cmd.Flags().Float64Var(&c.fixedDuration, "duration", 0, "Fix the duration in months and solve for team size")
	cmd.Flags().IntVar(&c.fixedTeamSize, "team-size", 0, "Fix the team size and solve for duration")

	cmd.Flags().BoolVar(&c.jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&c.csvOutput, "csv", false, "Output as CSV")
	cmd.Flags().BoolVar(&c.yamlOutput, "yaml", false, "Output as YAML")

	cmd.Flags().StringVarP(&c.configPath, "config", "c", "", "Configuration file path")

	return cmd
}

// runTeam executes the team size estimation
func (c *TeamCommand) runTeam(cmd *cobra.Command, args []string) error {
	outputFormat := domain.OutputFormatText
	if c.jsonOutput {
		outputFormat = domain.OutputFormatJSON
	} else if c.csvOutput {
		outputFormat = domain.OutputFormatCSV
	} else if c.yamlOutput {
		outputFormat = domain.OutputFormatYAML
	}

	override := domain.TeamSizeRequest{
		AdjustedFP:          c.adjustedFP,
		TotalEffortHours:    c.effortHours,
		ProductivityFactor:  c.productivityFactor,
		HoursPerDay:         c.hoursPerDay,
		BufferPercent:       c.bufferPercent,
		FixedDurationMonths: c.fixedDuration,
		FixedTeamSize:       c.fixedTeamSize,
		OutputFormat:        outputFormat,
		OutputWriter:        cmd.OutOrStdout(),
		ConfigPath:          c.configPath,
		ExplicitFlags:       collectExplicitFlags(cmd),
	}

	// Merge config file defaults under the explicit flags
	configLoader := service.NewTeamSizeConfigLoader()
	var base *domain.TeamSizeRequest
	if c.configPath != "" {
		loaded, err := configLoader.LoadConfig(c.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config from %s: %w", c.configPath, err)
		}
		base = loaded
	} else {
		base = configLoader.LoadDefaultConfig()
	}
	request := configLoader.MergeConfig(base, &override)

	useCase, err := app.NewTeamSizeUseCaseBuilder().
		WithService(service.NewTeamSizeService()).
		WithFormatter(service.NewTeamSizeFormatter()).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create team size use case: %w", err)
	}

	if err := useCase.Execute(cmd.Context(), *request); err != nil {
		return fmt.Errorf("team size estimation failed: %w", err)
	}

	return nil
}

// NewTeamCmd creates and returns the team cobra command
func NewTeamCmd() *cobra.Command {
	teamCommand := NewTeamCommand()
	return teamCommand.CreateCobraCommand()
}
