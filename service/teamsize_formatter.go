package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/scopeworks/fpoint/domain"
)

// TeamSizeFormatterImpl implements the TeamSizeFormatter interface
type TeamSizeFormatterImpl struct{}

// NewTeamSizeFormatter creates a new team size formatter
func NewTeamSizeFormatter() *TeamSizeFormatterImpl {
	return &TeamSizeFormatterImpl{}
}

// Format formats the result according to the specified format
func (f *TeamSizeFormatterImpl) Format(result *domain.TeamSizeResult, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText, "":
		return f.formatText(result), nil
	case domain.OutputFormatJSON:
		return EncodeJSON(f.createSerializableResult(result))
	case domain.OutputFormatYAML:
		return EncodeYAML(f.createSerializableResult(result))
	case domain.OutputFormatCSV:
		return f.formatCSV(result)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *TeamSizeFormatterImpl) Write(result *domain.TeamSizeResult, format domain.OutputFormat, writer io.Writer) error {
	output, err := f.Format(result, format)
	if err != nil {
		return err
	}
	if _, err = writer.Write([]byte(output)); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

func (f *TeamSizeFormatterImpl) formatText(result *domain.TeamSizeResult) string {
	var builder strings.Builder
	utils := NewFormatUtils()

	builder.WriteString(utils.FormatMainHeader("Team Size Estimate"))

	builder.WriteString(utils.FormatSectionHeader("INPUTS"))
	if result.AdjustedFP > 0 {
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Adjusted FP", fmt.Sprintf("%.1f", result.AdjustedFP)))
	}
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Effort (hours)", fmt.Sprintf("%.1f", result.TotalEffortHours)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Buffer", utils.FormatPercentage(result.BufferPercent)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Hours per day", fmt.Sprintf("%.1f", result.HoursPerDay)))
	builder.WriteString(utils.FormatSectionSeparator())

	builder.WriteString(utils.FormatSectionHeader("RECOMMENDATION"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Buffered effort (hours)", fmt.Sprintf("%.1f", result.BufferedEffortHours)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Team size", fmt.Sprintf("%d people (range %d-%d)",
		result.RecommendedTeamSize, result.MinTeamSize, result.MaxTeamSize)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Duration", fmt.Sprintf("%.1f months (range %.1f-%.1f)",
		result.DurationMonths, result.MinDurationMonths, result.MaxDurationMonths)))
	if result.IdealMaxTeamSize > 0 {
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Experience tier",
			fmt.Sprintf("%d-%d people for this magnitude", result.IdealMinTeamSize, result.IdealMaxTeamSize)))
	}
	builder.WriteString(utils.FormatSectionSeparator())

	return builder.String()
}

func (f *TeamSizeFormatterImpl) formatCSV(result *domain.TeamSizeResult) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	rows := [][]string{
		{"adjusted_fp", fmt.Sprintf("%.2f", result.AdjustedFP)},
		{"total_effort_hours", fmt.Sprintf("%.2f", result.TotalEffortHours)},
		{"buffered_effort_hours", fmt.Sprintf("%.2f", result.BufferedEffortHours)},
		{"recommended_team_size", fmt.Sprintf("%d", result.RecommendedTeamSize)},
		{"min_team_size", fmt.Sprintf("%d", result.MinTeamSize)},
		{"max_team_size", fmt.Sprintf("%d", result.MaxTeamSize)},
		{"duration_months", fmt.Sprintf("%.2f", result.DurationMonths)},
		{"min_duration_months", fmt.Sprintf("%.2f", result.MinDurationMonths)},
		{"max_duration_months", fmt.Sprintf("%.2f", result.MaxDurationMonths)},
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return "", domain.NewOutputError("failed to write CSV row", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", domain.NewOutputError("CSV writer error", err)
	}
	return builder.String(), nil
}

func (f *TeamSizeFormatterImpl) createSerializableResult(result *domain.TeamSizeResult) map[string]interface{} {
	out := map[string]interface{}{
		"adjusted_fp":           result.AdjustedFP,
		"total_effort_hours":    result.TotalEffortHours,
		"buffer_percent":        result.BufferPercent,
		"hours_per_day":         result.HoursPerDay,
		"buffered_effort_hours": result.BufferedEffortHours,
		"recommended_team_size": result.RecommendedTeamSize,
		"min_team_size":         result.MinTeamSize,
		"max_team_size":         result.MaxTeamSize,
		"duration_months":       result.DurationMonths,
		"min_duration_months":   result.MinDurationMonths,
		"max_duration_months":   result.MaxDurationMonths,
		"metadata": map[string]interface{}{
			"generated_at": result.GeneratedAt,
			"version":      result.Version,
		},
	}
	if result.IdealMaxTeamSize > 0 {
		out["ideal_team_size"] = map[string]int{
			"min": result.IdealMinTeamSize,
			"max": result.IdealMaxTeamSize,
		}
	}
	return out
}
