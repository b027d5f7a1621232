package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scopeworks/fpoint/app"
	"github.com/scopeworks/fpoint/domain"
	"github.com/scopeworks/fpoint/service"
)

// TrendCommand represents the estimate history analysis command
type TrendCommand struct {
	metric          string
	stableThreshold float64

	jsonOutput bool
	csvOutput  bool
	yamlOutput bool

	configPath string
}

// NewTrendCommand creates a new trend command
func NewTrendCommand() *TrendCommand {
	return &TrendCommand{
		metric:          string(domain.TrendMetricAFP),
		stableThreshold: domain.DefaultStableThresholdPercent,
	}
}

// CreateCobraCommand creates the cobra command for trend analysis
func (c *TrendCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trend <history-file>",
		Short: "Analyze how an estimate evolved across versions",
		Long: `Analyze the direction of an estimate across its version history.

The selected metric is read for every version in the history file,
ordered by version number, and the relative change from the first to
the last version decides the direction. Changes inside the stable
threshold band count as stable.

Metrics:
  afp     - Adjusted function points (default)
  effort  - Estimated effort hours
  vaf     - Value adjustment factor

Examples:
  fpoint trend history.yaml                  # AFP trend
  fpoint trend --metric effort history.yaml  # Effort trend
  fpoint trend --stable-threshold 5 history.yaml
  fpoint trend --json history.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: c.runTrend,
	}

	cmd.Flags().StringVar(&c.metric, "metric", string(domain.TrendMetricAFP), "Metric to analyze (afp|effort|vaf)")
	cmd.Flags().Float64Var(&c.stableThreshold, "stable-threshold", domain.DefaultStableThresholdPercent, "Percent change treated as stable")

	cmd.Flags().BoolVar(&c.jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&c.csvOutput, "csv", false, "Output as CSV")
	cmd.Flags().BoolVar(&c.yamlOutput, "yaml", false, "Output as YAML")

	cmd.Flags().StringVarP(&c.configPath, "config", "c", "", "Configuration file path")

	return cmd
}

// runTrend executes the trend analysis
func (c *TrendCommand) runTrend(cmd *cobra.Command, args []string) error {
	outputFormat := domain.OutputFormatText
	if c.jsonOutput {
		outputFormat = domain.OutputFormatJSON
	} else if c.csvOutput {
		outputFormat = domain.OutputFormatCSV
	} else if c.yamlOutput {
		outputFormat = domain.OutputFormatYAML
	}

	override := domain.TrendRequest{
		HistoryPath:            args[0],
		Metric:                 domain.TrendMetric(c.metric),
		StableThresholdPercent: c.stableThreshold,
		OutputFormat:           outputFormat,
		OutputWriter:           cmd.OutOrStdout(),
		ConfigPath:             c.configPath,
		ExplicitFlags:          collectExplicitFlags(cmd),
	}

	configLoader := service.NewTrendConfigLoader()
	var base *domain.TrendRequest
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

	useCase, err := app.NewTrendUseCaseBuilder().
		WithService(service.NewTrendService()).
		WithFormatter(service.NewTrendFormatter()).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create trend use case: %w", err)
	}

	if err := useCase.Execute(cmd.Context(), *request); err != nil {
		return fmt.Errorf("trend analysis failed: %w", err)
	}

	return nil
}

// NewTrendCmd creates and returns the trend cobra command
func NewTrendCmd() *cobra.Command {
	trendCommand := NewTrendCommand()
	return trendCommand.CreateCobraCommand()
}
