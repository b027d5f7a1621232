package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/scopeworks/fpoint/app"
	"github.com/scopeworks/fpoint/domain"
	"github.com/scopeworks/fpoint/service"
)

// CalculateCommand represents the calculate command
type CalculateCommand struct {
	// Output format flags
	jsonOutput bool
	csvOutput  bool
	yamlOutput bool
	outputPath string
	report     bool

	showDetails bool
	sortBy      string
	kindFilter  []string

	// Calculation options
	productivityFactor float64
	eqDETCeiling       int
	boundaryWarnings   bool

	// File selection
	recursive       bool
	includePatterns []string
	excludePatterns []string

	configPath string
}

// NewCalculateCommand creates a new calculate command
func NewCalculateCommand() *CalculateCommand {
	return &CalculateCommand{
		sortBy:    "kind",
		recursive: true,
	}
}

// CreateCobraCommand creates the cobra command for function point calculation
func (c *CalculateCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [paths...]",
		Short: "Calculate function points for estimate files",
		Long: `Calculate IFPUG function points for one or more estimate definition files.

Each component is classified into a complexity level from its DET, RET,
and FTR counts, weighted, and summed into the unadjusted count. The 14
general system characteristics produce the value adjustment factor, and
a productivity factor (hours per adjusted function point) turns the
adjusted count into an effort estimate.

Examples:
  fpoint calculate billing.fpe.yaml       # Calculate a single estimate
  fpoint calculate estimates/             # Calculate every estimate in a directory
  fpoint calculate --json estimates/      # Output as JSON
  fpoint calculate --sort points .        # Sort components by contribution
  fpoint calculate --kind ilf,eif .       # Only count data functions
  fpoint calculate --productivity 8 .     # Override the productivity factor

Sort options:
  kind        - Sort by component kind (default)
  name        - Sort alphabetically by component name
  points      - Sort by function point contribution (high to low)
  complexity  - Sort by complexity level (high to low)`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.runCalculate,
	}

	// Output options
	cmd.Flags().BoolVar(&c.jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&c.csvOutput, "csv", false, "Output as CSV")
	cmd.Flags().BoolVar(&c.yamlOutput, "yaml", false, "Output as YAML")
	cmd.Flags().StringVarP(&c.outputPath, "output", "o", "", "Write report to file instead of stdout")
	cmd.Flags().BoolVar(&c.report, "report", false, "Write report to a timestamped file in the report directory")
	cmd.Flags().BoolVar(&c.showDetails, "details", false, "Show per-component classification details")

	// Sorting and filtering
	cmd.Flags().StringVar(&c.sortBy, "sort", "kind", "Sort criteria (kind|name|points|complexity)")
	cmd.Flags().StringSliceVar(&c.kindFilter, "kind", []string{}, "Only count the given component kinds (ILF|EIF|EI|EO|EQ)")

	// Calculation options
	cmd.Flags().Float64Var(&c.productivityFactor, "productivity", 0, "Hours per adjusted function point (0 = from estimate file)")
	cmd.Flags().IntVar(&c.eqDETCeiling, "eq-det-ceiling", 0, "Combined DET ceiling for dual-count inquiries (0 = default)")
	cmd.Flags().BoolVar(&c.boundaryWarnings, "boundary-warnings", false, "Warn when counts sit exactly on a band boundary")

	// File selection options
	cmd.Flags().BoolVar(&c.recursive, "recursive", true, "Recursively scan subdirectories")
	cmd.Flags().StringSliceVar(&c.includePatterns, "include", []string{}, "Include file patterns")
	cmd.Flags().StringSliceVar(&c.excludePatterns, "exclude", []string{}, "Exclude file patterns")

	// Configuration
	cmd.Flags().StringVarP(&c.configPath, "config", "c", "", "Configuration file path")

	return cmd
}

// runCalculate executes the calculate command
func (c *CalculateCommand) runCalculate(cmd *cobra.Command, args []string) error {
	outputFormat := domain.OutputFormatText
	extension := "txt"
	if c.jsonOutput {
		outputFormat = domain.OutputFormatJSON
		extension = "json"
	} else if c.csvOutput {
		outputFormat = domain.OutputFormatCSV
		extension = "csv"
	} else if c.yamlOutput {
		outputFormat = domain.OutputFormatYAML
		extension = "yaml"
	}

	outputPath := c.outputPath
	if c.report && outputPath == "" {
		generated, err := generateOutputFilePath("calculate", extension, getTargetPathFromArgs(args))
		if err != nil {
			return err
		}
		outputPath = generated
	}

	kinds, err := parseKindFilter(c.kindFilter)
	if err != nil {
		return err
	}

	request := domain.CalculateRequest{
		Paths:              args,
		OutputFormat:       outputFormat,
		OutputWriter:       cmd.OutOrStdout(),
		OutputPath:         outputPath,
		ShowDetails:        c.showDetails,
		SortBy:             domain.SortCriteria(c.sortBy),
		KindFilter:         kinds,
		ProductivityFactor: c.productivityFactor,
		Validation: domain.ValidationOptions{
			EQDETCeiling:     c.eqDETCeiling,
			BoundaryWarnings: c.boundaryWarnings,
		},
		ConfigPath:      c.configPath,
		Recursive:       c.recursive,
		IncludePatterns: c.includePatterns,
		ExcludePatterns: c.excludePatterns,
		ExplicitFlags:   collectExplicitFlags(cmd),
	}

	formatter := service.NewOutputFormatter()
	useCase, err := app.NewCalculateUseCaseBuilder().
		WithService(service.NewCalculationService()).
		WithReader(service.NewEstimateReader()).
		WithFormatter(formatter).
		WithConfigLoader(service.NewConfigurationLoader()).
		WithProgress(service.NewProgressManager()).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create calculate use case: %w", err)
	}

	if outputPath == "" {
		if err := useCase.Execute(cmd.Context(), request); err != nil {
			return reportFailure(cmd, fmt.Errorf("calculation failed: %w", err))
		}
		return nil
	}

	// File output goes through the report writer so the user gets a
	// status line instead of a silent write
	response, err := useCase.ExecuteAndReturn(cmd.Context(), request)
	if err != nil {
		return reportFailure(cmd, fmt.Errorf("calculation failed: %w", err))
	}

	reportWriter := service.NewFileOutputWriter(cmd.ErrOrStderr())
	return reportWriter.Write(cmd.OutOrStdout(), outputPath, outputFormat, func(w io.Writer) error {
		return formatter.Write(response, outputFormat, w)
	})
}

// parseKindFilter converts flag values into component kinds
func parseKindFilter(values []string) ([]domain.ComponentKind, error) {
	if len(values) == 0 {
		return nil, nil
	}

	kinds := make([]domain.ComponentKind, 0, len(values))
	for _, value := range values {
		kind, err := domain.ParseComponentKind(value)
		if err != nil {
			return nil, fmt.Errorf("invalid --kind value %q: valid options: ILF, EIF, EI, EO, EQ", value)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// NewCalculateCmd creates and returns the calculate cobra command
func NewCalculateCmd() *cobra.Command {
	calculateCommand := NewCalculateCommand()
	return calculateCommand.CreateCobraCommand()
}
