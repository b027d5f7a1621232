package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/scopeworks/fpoint/domain"
)

// TrendFormatterImpl implements the TrendFormatter interface
type TrendFormatterImpl struct{}

// NewTrendFormatter creates a new trend formatter
func NewTrendFormatter() *TrendFormatterImpl {
	return &TrendFormatterImpl{}
}

// Format formats the result according to the specified format
func (f *TrendFormatterImpl) Format(result *domain.TrendResult, format domain.OutputFormat) (string, error) {
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
func (f *TrendFormatterImpl) Write(result *domain.TrendResult, format domain.OutputFormat, writer io.Writer) error {
	output, err := f.Format(result, format)
	if err != nil {
		return err
	}
	if _, err = writer.Write([]byte(output)); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

func (f *TrendFormatterImpl) formatText(result *domain.TrendResult) string {
	var builder strings.Builder
	utils := NewFormatUtils()

	builder.WriteString(utils.FormatMainHeader("Estimate Trend Analysis"))

	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Metric", string(result.Metric)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Direction",
		fmt.Sprintf("%s %s", result.Direction.Symbol(), result.Direction)))

	if result.BaselineUndefined {
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Change",
			"undefined (first value is zero)"))
	} else {
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Change",
			fmt.Sprintf("%+.1f%%", result.PercentageChange)))
	}

	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "First value", fmt.Sprintf("%.2f", result.FirstValue)))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Last value", fmt.Sprintf("%.2f", result.LastValue)))
	builder.WriteString(utils.FormatSectionSeparator())

	if len(result.Points) > 0 {
		builder.WriteString(utils.FormatTableHeader(
			fmt.Sprintf("%-8s", "Version"),
			fmt.Sprintf("%10s", "Value")))
		for _, point := range result.Points {
			builder.WriteString(fmt.Sprintf("%-8d  %10.2f\n", point.Version, point.Value))
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	return builder.String()
}

func (f *TrendFormatterImpl) formatCSV(result *domain.TrendResult) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	if err := writer.Write([]string{"version", "value"}); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}
	for _, point := range result.Points {
		row := []string{fmt.Sprintf("%d", point.Version), fmt.Sprintf("%.4f", point.Value)}
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

func (f *TrendFormatterImpl) createSerializableResult(result *domain.TrendResult) map[string]interface{} {
	points := make([]map[string]interface{}, len(result.Points))
	for i, point := range result.Points {
		points[i] = map[string]interface{}{
			"version": point.Version,
			"value":   point.Value,
		}
	}

	out := map[string]interface{}{
		"metric":      string(result.Metric),
		"direction":   string(result.Direction),
		"first_value": result.FirstValue,
		"last_value":  result.LastValue,
		"points":      points,
		"metadata": map[string]interface{}{
			"generated_at": result.GeneratedAt,
			"version":      result.Version,
		},
	}

	if result.BaselineUndefined {
		out["baseline_undefined"] = true
	} else {
		out["percentage_change"] = result.PercentageChange
	}

	return out
}
