package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/scopeworks/fpoint/domain"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter service
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// Format formats the calculation response according to the specified format
func (f *OutputFormatterImpl) Format(response *domain.CalculateResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText:
		return f.formatText(response)
	case domain.OutputFormatJSON:
		return EncodeJSON(f.createSerializableResponse(response))
	case domain.OutputFormatYAML:
		return EncodeYAML(f.createSerializableResponse(response))
	case domain.OutputFormatCSV:
		return f.formatCSV(response)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *OutputFormatterImpl) Write(response *domain.CalculateResponse, format domain.OutputFormat, writer io.Writer) error {
	output, err := f.Format(response, format)
	if err != nil {
		return err
	}

	if _, err = writer.Write([]byte(output)); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

// formatText formats the response as human-readable text
func (f *OutputFormatterImpl) formatText(response *domain.CalculateResponse) (string, error) {
	var builder strings.Builder
	utils := NewFormatUtils()

	builder.WriteString(utils.FormatMainHeader("Function Point Analysis Report"))

	for i := range response.Results {
		result := &response.Results[i]
		builder.WriteString(f.formatEstimateText(result, utils))
	}

	// Summary only earns its space with more than one estimate
	if len(response.Results) > 1 {
		stats := map[string]interface{}{
			"Estimates":        response.Summary.TotalEstimates,
			"Components":       response.Summary.TotalComponents,
			"Total UFP":        response.Summary.TotalUnadjustedFP,
			"Total AFP":        fmt.Sprintf("%.2f", response.Summary.TotalAdjustedFP),
			"Total Effort (h)": fmt.Sprintf("%.1f", response.Summary.TotalEffortHours),
		}
		builder.WriteString(utils.FormatSummaryStats(stats))
		if len(response.Summary.KindBreakdowns) > 0 {
			builder.WriteString(utils.FormatKindDistribution(response.Summary.KindBreakdowns))
		}
	}

	if len(response.Warnings) > 0 {
		builder.WriteString(utils.FormatWarningsSection(response.Warnings))
	}

	if len(response.Errors) > 0 {
		builder.WriteString(utils.FormatSectionHeader("ERRORS"))
		for _, err := range response.Errors {
			builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "✗", err))
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	if parsedTime, err := time.Parse(time.RFC3339, response.GeneratedAt); err == nil {
		builder.WriteString(utils.FormatSectionHeader("METADATA"))
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Generated at", parsedTime.Format("2006-01-02T15:04:05-07:00")))
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Version", response.Version))
	}

	return builder.String(), nil
}

// formatEstimateText formats one estimate with its component table
func (f *OutputFormatterImpl) formatEstimateText(result *domain.EstimateResult, utils *FormatUtils) string {
	var builder strings.Builder

	title := result.Name
	if title == "" {
		title = result.ProjectID
	}
	builder.WriteString(utils.FormatSectionHeader(fmt.Sprintf("%s (v%d)", title, result.Version)))

	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Unadjusted FP", result.UnadjustedFP))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Total Influence", result.TotalInfluence))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "VAF", fmt.Sprintf("%.2f", result.VAF)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Adjusted FP", fmt.Sprintf("%.2f", result.AdjustedFP)))
	if result.EffortHours > 0 {
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Effort (hours)", fmt.Sprintf("%.1f", result.EffortHours)))
	}
	if !result.Valid {
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Status", "INVALID: some components failed validation"))
	}
	builder.WriteString(utils.FormatSectionSeparator())

	if len(result.Components) > 0 {
		builder.WriteString(utils.FormatTableHeader(
			fmt.Sprintf("%-30s", "Component"),
			fmt.Sprintf("%-4s", "Kind"),
			fmt.Sprintf("%-10s", "Complexity"),
			fmt.Sprintf("%6s", "Points")))

		for _, cr := range result.Components {
			complexity := utils.FormatComplexityWithColor(cr.Complexity)
			if !cr.Validation.Valid {
				complexity = ColorRed + "invalid" + ColorReset
			}
			builder.WriteString(fmt.Sprintf("%-30s  %-4s  %-10s  %6d\n",
				cr.Component.DisplayName(),
				cr.Component.Kind,
				complexity,
				cr.Weight))

			for _, issue := range cr.Validation.Errors {
				builder.WriteString(utils.FormatLabelWithIndent(ItemPadding, "✗", issue.String()))
			}
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	return builder.String()
}

// formatCSV formats the response as CSV, one row per component
func (f *OutputFormatterImpl) formatCSV(response *domain.CalculateResponse) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	header := []string{"Estimate", "Version", "Component", "Kind", "Complexity", "Points", "Valid"}
	if err := writer.Write(header); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}

	for i := range response.Results {
		result := &response.Results[i]
		for _, cr := range result.Components {
			row := []string{
				result.Name,
				fmt.Sprintf("%d", result.Version),
				cr.Component.DisplayName(),
				string(cr.Component.Kind),
				string(cr.Complexity),
				fmt.Sprintf("%d", cr.Weight),
				fmt.Sprintf("%t", cr.Validation.Valid),
			}
			if err := writer.Write(row); err != nil {
				return "", domain.NewOutputError("failed to write CSV row", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", domain.NewOutputError("CSV writer error", err)
	}

	return builder.String(), nil
}

// createSerializableResponse creates a JSON/YAML-friendly response structure
func (f *OutputFormatterImpl) createSerializableResponse(response *domain.CalculateResponse) map[string]interface{} {
	results := make([]map[string]interface{}, len(response.Results))
	for i := range response.Results {
		result := &response.Results[i]

		components := make([]map[string]interface{}, len(result.Components))
		for j, cr := range result.Components {
			component := map[string]interface{}{
				"name":       cr.Component.DisplayName(),
				"kind":       string(cr.Component.Kind),
				"complexity": string(cr.Complexity),
				"points":     cr.Weight,
				"valid":      cr.Validation.Valid,
			}
			if cr.Component.UsesDualCount() {
				component["input_rating"] = string(cr.InputRating)
				component["output_rating"] = string(cr.OutputRating)
			}
			if len(cr.Validation.Errors) > 0 {
				component["errors"] = issueStrings(cr.Validation.Errors)
			}
			if len(cr.Validation.Warnings) > 0 {
				component["warnings"] = issueStrings(cr.Validation.Warnings)
			}
			components[j] = component
		}

		entry := map[string]interface{}{
			"project":         result.ProjectID,
			"name":            result.Name,
			"version":         result.Version,
			"unadjusted_fp":   result.UnadjustedFP,
			"total_influence": result.TotalInfluence,
			"vaf":             result.VAF,
			"adjusted_fp":     result.AdjustedFP,
			"valid":           result.Valid,
			"components":      components,
		}
		if result.EffortHours > 0 {
			entry["effort_hours"] = result.EffortHours
		}
		if result.SourceFile != "" {
			entry["source_file"] = result.SourceFile
		}
		results[i] = entry
	}

	kindBreakdowns := make(map[string]interface{}, len(response.Summary.KindBreakdowns))
	for kind, bd := range response.Summary.KindBreakdowns {
		kindBreakdowns[string(kind)] = map[string]int{
			"count":           bd.Count,
			"function_points": bd.FunctionPoints,
		}
	}

	summary := map[string]interface{}{
		"total_estimates":         response.Summary.TotalEstimates,
		"total_components":        response.Summary.TotalComponents,
		"files_analyzed":          response.Summary.FilesAnalyzed,
		"total_unadjusted_fp":     response.Summary.TotalUnadjustedFP,
		"total_adjusted_fp":       response.Summary.TotalAdjustedFP,
		"total_effort_hours":      response.Summary.TotalEffortHours,
		"kind_breakdowns":         kindBreakdowns,
		"complexity_distribution": response.Summary.ComplexityDistribution,
	}

	metadata := map[string]interface{}{
		"generated_at": response.GeneratedAt,
		"version":      response.Version,
	}
	if response.Config != nil {
		metadata["configuration"] = response.Config
	}

	out := map[string]interface{}{
		"summary":  summary,
		"results":  results,
		"metadata": metadata,
	}

	if len(response.Warnings) > 0 {
		out["warnings"] = response.Warnings
	}
	if len(response.Errors) > 0 {
		out["errors"] = response.Errors
	}

	return out
}

// FormatSummaryOnly formats only the summary information
func (f *OutputFormatterImpl) FormatSummaryOnly(response *domain.CalculateResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText:
		return f.formatSummaryText(response), nil
	case domain.OutputFormatJSON:
		summary := map[string]interface{}{
			"summary": f.createSerializableResponse(response)["summary"],
		}
		return EncodeJSON(summary)
	default:
		return f.Format(response, format)
	}
}

// formatSummaryText formats only the summary as text
func (f *OutputFormatterImpl) formatSummaryText(response *domain.CalculateResponse) string {
	var builder strings.Builder

	builder.WriteString("Summary:\n")
	builder.WriteString(fmt.Sprintf("  Estimates: %d\n", response.Summary.TotalEstimates))
	builder.WriteString(fmt.Sprintf("  Components: %d\n", response.Summary.TotalComponents))
	builder.WriteString(fmt.Sprintf("  Total UFP: %d\n", response.Summary.TotalUnadjustedFP))
	builder.WriteString(fmt.Sprintf("  Total AFP: %.2f\n", response.Summary.TotalAdjustedFP))
	if response.Summary.TotalEffortHours > 0 {
		builder.WriteString(fmt.Sprintf("  Total Effort: %.1f hours\n", response.Summary.TotalEffortHours))
	}

	if len(response.Summary.ComplexityDistribution) > 0 {
		builder.WriteString("\nComplexity Distribution:\n")

		var keys []string
		for k := range response.Summary.ComplexityDistribution {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			builder.WriteString(fmt.Sprintf("  %s: %d\n", k, response.Summary.ComplexityDistribution[k]))
		}
	}

	return builder.String()
}

func issueStrings(issues []domain.ValidationIssue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.String()
	}
	return out
}
