package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/scopeworks/fpoint/domain"
)

// EncodeJSON returns an indented JSON string for the given value.
func EncodeJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", domain.NewOutputError("failed to marshal JSON", err)
	}
	return string(data), nil
}

// EncodeYAML returns a YAML string for the given value.
func EncodeYAML(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", domain.NewOutputError("failed to marshal YAML", err)
	}
	return string(data), nil
}

// Standard formatting constants
const (
	HeaderWidth    = 40
	LabelWidth     = 25
	SectionPadding = 2
	ItemPadding    = 4
)

// ANSI color codes for consistent color usage
const (
	ColorReset  = "\x1b[0m"
	ColorRed    = "\x1b[31m"
	ColorYellow = "\x1b[33m"
	ColorGreen  = "\x1b[32m"
	ColorCyan   = "\x1b[36m"
	ColorBold   = "\x1b[1m"
)

// FormatUtils provides shared formatting utilities
type FormatUtils struct{}

// NewFormatUtils creates a new format utilities instance
func NewFormatUtils() *FormatUtils {
	return &FormatUtils{}
}

// FormatMainHeader creates a standardized main header
func (f *FormatUtils) FormatMainHeader(title string) string {
	var builder strings.Builder
	builder.WriteString(title + "\n")
	builder.WriteString(strings.Repeat("=", HeaderWidth) + "\n\n")
	return builder.String()
}

// FormatSectionHeader creates a standardized section header
func (f *FormatUtils) FormatSectionHeader(title string) string {
	var builder strings.Builder
	builder.WriteString(strings.ToUpper(title) + "\n")
	builder.WriteString(strings.Repeat("-", len(title)) + "\n")
	return builder.String()
}

// FormatSectionSeparator creates a section separator
func (f *FormatUtils) FormatSectionSeparator() string {
	return "\n"
}

// FormatLabelWithIndent creates a formatted label with specific indentation
func (f *FormatUtils) FormatLabelWithIndent(indent int, label string, value interface{}) string {
	return fmt.Sprintf("%s%s: %v\n", strings.Repeat(" ", indent), label, value)
}

// FormatPercentage formats a percentage value consistently
func (f *FormatUtils) FormatPercentage(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// GetComplexityColor returns the appropriate color for a complexity rating
func (f *FormatUtils) GetComplexityColor(complexity domain.Complexity) string {
	switch complexity {
	case domain.ComplexityHigh:
		return ColorRed
	case domain.ComplexityAverage:
		return ColorYellow
	case domain.ComplexityLow:
		return ColorGreen
	default:
		return ColorReset
	}
}

// FormatComplexityWithColor formats a complexity rating with appropriate color
func (f *FormatUtils) FormatComplexityWithColor(complexity domain.Complexity) string {
	color := f.GetComplexityColor(complexity)
	return fmt.Sprintf("%s%s%s", color, string(complexity), ColorReset)
}

// FormatTableHeader creates a table header with consistent formatting
func (f *FormatUtils) FormatTableHeader(columns ...string) string {
	header := strings.Join(columns, "  ")
	separator := strings.Repeat("-", len(header))
	return header + "\n" + separator + "\n"
}

// FormatSummaryStats creates a standardized summary statistics section
func (f *FormatUtils) FormatSummaryStats(stats map[string]interface{}) string {
	var builder strings.Builder
	builder.WriteString(f.FormatSectionHeader("SUMMARY"))

	for label, value := range stats {
		builder.WriteString(f.FormatLabelWithIndent(SectionPadding, label, value))
	}

	builder.WriteString(f.FormatSectionSeparator())
	return builder.String()
}

// FormatKindDistribution creates a standardized per-kind breakdown section
func (f *FormatUtils) FormatKindDistribution(breakdowns map[domain.ComponentKind]domain.KindBreakdown) string {
	var builder strings.Builder
	builder.WriteString(f.FormatSectionHeader("FUNCTION TYPE BREAKDOWN"))

	for _, kind := range domain.AllComponentKinds() {
		bd, ok := breakdowns[kind]
		if !ok {
			continue
		}
		builder.WriteString(f.FormatLabelWithIndent(SectionPadding, string(kind),
			fmt.Sprintf("%d components, %d FP", bd.Count, bd.FunctionPoints)))
	}

	builder.WriteString(f.FormatSectionSeparator())
	return builder.String()
}

// FormatWarningsSection creates a standardized warnings section
func (f *FormatUtils) FormatWarningsSection(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(f.FormatSectionHeader("WARNINGS"))

	for _, warning := range warnings {
		builder.WriteString(f.FormatLabelWithIndent(SectionPadding, "⚠", warning))
	}

	builder.WriteString(f.FormatSectionSeparator())
	return builder.String()
}
