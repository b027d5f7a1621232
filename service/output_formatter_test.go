package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/scopeworks/fpoint/domain"
)

func createTestCalculateResponse() *domain.CalculateResponse {
	return &domain.CalculateResponse{
		Results: []domain.EstimateResult{
			{
				ProjectID: "billing",
				Name:      "Billing System",
				Version:   1,
				Components: []domain.ComponentResult{
					{
						Component:  domain.Component{Name: "Customer master", Kind: domain.KindILF, DET: 22, RET: 3},
						Complexity: domain.ComplexityAverage,
						Weight:     10,
						Validation: domain.ValidationResult{Valid: true},
					},
					{
						Component:  domain.Component{Name: "Register payment", Kind: domain.KindEI, DET: 10, FTR: 1},
						Complexity: domain.ComplexityAverage,
						Weight:     4,
						Validation: domain.ValidationResult{Valid: true},
					},
				},
				UnadjustedFP:   14,
				TotalInfluence: 28,
				VAF:            0.93,
				AdjustedFP:     13.02,
				EffortHours:    130.2,
				Valid:          true,
			},
		},
		Summary: domain.CalculateSummary{
			TotalEstimates:    1,
			TotalComponents:   2,
			TotalUnadjustedFP: 14,
			TotalAdjustedFP:   13.02,
			TotalEffortHours:  130.2,
			KindBreakdowns: map[domain.ComponentKind]domain.KindBreakdown{
				domain.KindILF: {Count: 1, FunctionPoints: 10},
				domain.KindEI:  {Count: 1, FunctionPoints: 4},
			},
			ComplexityDistribution: map[string]int{"average": 2},
		},
		Warnings:    []string{"something looked odd"},
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     "1.0.0",
	}
}

func TestOutputFormatterText(t *testing.T) {
	formatter := NewOutputFormatter()
	output, err := formatter.Format(createTestCalculateResponse(), domain.OutputFormatText)
	require.NoError(t, err)

	assert.Contains(t, output, "Function Point Analysis Report")
	assert.Contains(t, output, "Billing System")
	assert.Contains(t, output, "Customer master")
	assert.Contains(t, output, "Unadjusted FP")
	assert.Contains(t, output, "0.93")
	assert.Contains(t, output, "13.02")
	assert.Contains(t, output, "WARNINGS")
}

func TestOutputFormatterJSON(t *testing.T) {
	formatter := NewOutputFormatter()
	output, err := formatter.Format(createTestCalculateResponse(), domain.OutputFormatJSON)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &parsed))

	summary := parsed["summary"].(map[string]interface{})
	assert.Equal(t, float64(14), summary["total_unadjusted_fp"])

	results := parsed["results"].([]interface{})
	require.Len(t, results, 1)
	first := results[0].(map[string]interface{})
	assert.Equal(t, "billing", first["project"])
	assert.Len(t, first["components"], 2)
}

func TestOutputFormatterYAML(t *testing.T) {
	formatter := NewOutputFormatter()
	output, err := formatter.Format(createTestCalculateResponse(), domain.OutputFormatYAML)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(output), &parsed))
	assert.Contains(t, parsed, "summary")
	assert.Contains(t, parsed, "results")
}

func TestOutputFormatterCSV(t *testing.T) {
	formatter := NewOutputFormatter()
	output, err := formatter.Format(createTestCalculateResponse(), domain.OutputFormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Component")
	assert.Contains(t, lines[1], "Customer master")
	assert.Contains(t, lines[2], "Register payment")
}

func TestOutputFormatterUnsupported(t *testing.T) {
	formatter := NewOutputFormatter()
	_, err := formatter.Format(createTestCalculateResponse(), "html")
	assert.Error(t, err)
}

func TestOutputFormatterWrite(t *testing.T) {
	formatter := NewOutputFormatter()
	var buf bytes.Buffer

	err := formatter.Write(createTestCalculateResponse(), domain.OutputFormatText, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Function Point Analysis Report")
}

func TestTeamSizeFormatter(t *testing.T) {
	formatter := NewTeamSizeFormatter()
	result := &domain.TeamSizeResult{
		AdjustedFP:          250,
		TotalEffortHours:    2500,
		BufferPercent:       20,
		HoursPerDay:         6,
		BufferedEffortHours: 3000,
		RecommendedTeamSize: 8,
		MinTeamSize:         6,
		MaxTeamSize:         10,
		DurationMonths:      3,
		MinDurationMonths:   2.4,
		MaxDurationMonths:   4,
		IdealMinTeamSize:    2,
		IdealMaxTeamSize:    4,
		GeneratedAt:         time.Now().Format(time.RFC3339),
		Version:             "1.0.0",
	}

	text, err := formatter.Format(result, domain.OutputFormatText)
	require.NoError(t, err)
	assert.Contains(t, text, "Team Size Estimate")
	assert.Contains(t, text, "8 people (range 6-10)")
	assert.Contains(t, text, "2-4 people")

	jsonOut, err := formatter.Format(result, domain.OutputFormatJSON)
	require.NoError(t, err)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(jsonOut), &parsed))
	assert.Equal(t, float64(8), parsed["recommended_team_size"])

	csvOut, err := formatter.Format(result, domain.OutputFormatCSV)
	require.NoError(t, err)
	assert.Contains(t, csvOut, "recommended_team_size,8")
}

func TestTrendFormatter(t *testing.T) {
	formatter := NewTrendFormatter()
	result := &domain.TrendResult{
		Metric:           domain.TrendMetricAFP,
		Direction:        domain.TrendIncreasing,
		PercentageChange: 25,
		FirstValue:       100,
		LastValue:        125,
		Points: []domain.TrendPoint{
			{Version: 1, Value: 100},
			{Version: 2, Value: 125},
		},
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     "1.0.0",
	}

	text, err := formatter.Format(result, domain.OutputFormatText)
	require.NoError(t, err)
	assert.Contains(t, text, "Estimate Trend Analysis")
	assert.Contains(t, text, "increasing")
	assert.Contains(t, text, "+25.0%")

	csvOut, err := formatter.Format(result, domain.OutputFormatCSV)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(csvOut), "\n")
	assert.Len(t, lines, 3)
}

func TestTrendFormatterUndefinedBaseline(t *testing.T) {
	formatter := NewTrendFormatter()
	result := &domain.TrendResult{
		Metric:            domain.TrendMetricAFP,
		Direction:         domain.TrendIncreasing,
		BaselineUndefined: true,
		LastValue:         80,
	}

	text, err := formatter.Format(result, domain.OutputFormatText)
	require.NoError(t, err)
	assert.Contains(t, text, "undefined")

	jsonOut, err := formatter.Format(result, domain.OutputFormatJSON)
	require.NoError(t, err)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(jsonOut), &parsed))
	assert.Equal(t, true, parsed["baseline_undefined"])
	assert.NotContains(t, parsed, "percentage_change")
}
