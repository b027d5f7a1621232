package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopeworks/fpoint/mcp"
)

func callTool(
	t *testing.T,
	handlerFunc func(*mcp.HandlerSet, context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error),
	arguments interface{},
) *mcplib.CallToolResult {
	t.Helper()

	h := mcp.NewHandlerSet(nil)
	req := mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{
			Arguments: arguments,
		},
	}

	res, err := handlerFunc(h, context.Background(), req)
	require.NoError(t, err)
	require.Greater(t, len(res.Content), 0)
	return res
}

func resultJSON(t *testing.T, res *mcplib.CallToolResult) map[string]interface{} {
	t.Helper()
	tc, ok := mcplib.AsTextContent(res.Content[0])
	require.True(t, ok)
	text := tc.Text
	require.NotEmpty(t, text)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &parsed))
	return parsed
}

func writeEstimateFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := `project: billing
name: Billing System
version: 1
productivity_factor: 10.0
gsc: [3, 2, 3, 2, 2, 3, 2, 2, 2, 1, 1, 2, 1, 2]
components:
  - name: Customer master
    kind: ILF
    det: 22
    ret: 3
  - name: Register payment
    kind: EI
    det: 10
    ftr: 1
`
	path := filepath.Join(dir, "billing.fpe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestHandleValidateComponent(t *testing.T) {
	t.Run("invalid_arguments_format", func(t *testing.T) {
		res := callTool(t, (*mcp.HandlerSet).HandleValidateComponent, "not-a-map")
		assert.True(t, res.IsError)
	})

	t.Run("missing_kind", func(t *testing.T) {
		res := callTool(t, (*mcp.HandlerSet).HandleValidateComponent, map[string]interface{}{"det": 10.0})
		assert.True(t, res.IsError)
	})

	t.Run("valid_data_function", func(t *testing.T) {
		res := callTool(t, (*mcp.HandlerSet).HandleValidateComponent, map[string]interface{}{
			"kind": "ILF",
			"det":  22.0,
			"ret":  3.0,
		})
		require.False(t, res.IsError)

		parsed := resultJSON(t, res)
		assert.Equal(t, true, parsed["valid"])
		assert.Equal(t, "average", parsed["complexity"])
		assert.Equal(t, float64(10), parsed["weight"])
	})

	t.Run("out_of_range_det", func(t *testing.T) {
		res := callTool(t, (*mcp.HandlerSet).HandleValidateComponent, map[string]interface{}{
			"kind": "ILF",
			"det":  0.0,
			"ret":  1.0,
		})
		require.False(t, res.IsError)

		parsed := resultJSON(t, res)
		assert.Equal(t, false, parsed["valid"])
		assert.NotEmpty(t, parsed["errors"])
		assert.NotContains(t, parsed, "complexity")
	})
}

func TestHandleClassifyComplexity(t *testing.T) {
	t.Run("transactional_function", func(t *testing.T) {
		res := callTool(t, (*mcp.HandlerSet).HandleClassifyComplexity, map[string]interface{}{
			"kind": "EI",
			"det":  10.0,
			"ftr":  1.0,
		})
		require.False(t, res.IsError)

		parsed := resultJSON(t, res)
		assert.Equal(t, "average", parsed["complexity"])
		assert.Equal(t, float64(4), parsed["weight"])
	})

	t.Run("dual_count_inquiry", func(t *testing.T) {
		res := callTool(t, (*mcp.HandlerSet).HandleClassifyComplexity, map[string]interface{}{
			"kind":       "EQ",
			"input_ftr":  1.0,
			"input_det":  4.0,
			"output_ftr": 1.0,
			"output_det": 10.0,
		})
		require.False(t, res.IsError)

		parsed := resultJSON(t, res)
		assert.Equal(t, "low", parsed["input_rating"])
		assert.Equal(t, "average", parsed["output_rating"])
		assert.Equal(t, float64(4), parsed["weight"])
	})

	t.Run("dual_count_missing_side", func(t *testing.T) {
		res := callTool(t, (*mcp.HandlerSet).HandleClassifyComplexity, map[string]interface{}{
			"kind":      "EQ",
			"input_ftr": 1.0,
			"input_det": 4.0,
		})
		assert.True(t, res.IsError)
	})

	t.Run("unknown_kind", func(t *testing.T) {
		res := callTool(t, (*mcp.HandlerSet).HandleClassifyComplexity, map[string]interface{}{
			"kind": "XYZ",
		})
		assert.True(t, res.IsError)
	})
}

func TestHandleCalculateEstimate(t *testing.T) {
	t.Run("path_missing", func(t *testing.T) {
		res := callTool(t, (*mcp.HandlerSet).HandleCalculateEstimate, map[string]interface{}{})
		assert.True(t, res.IsError)
	})

	t.Run("path_not_exist", func(t *testing.T) {
		res := callTool(t, (*mcp.HandlerSet).HandleCalculateEstimate, map[string]interface{}{
			"path": "/non/existing/estimate.fpe.yaml",
		})
		assert.True(t, res.IsError)
	})

	t.Run("success_summary", func(t *testing.T) {
		res := callTool(t, (*mcp.HandlerSet).HandleCalculateEstimate, map[string]interface{}{
			"path": writeEstimateFile(t),
		})
		require.False(t, res.IsError)

		parsed := resultJSON(t, res)
		summary := parsed["summary"].(map[string]interface{})
		// ILF average(10) + EI average(4) = 14
		assert.Equal(t, float64(14), summary["total_unadjusted_fp"])
		assert.InDelta(t, 14*0.93, summary["total_adjusted_fp"].(float64), 1e-9)
	})

	t.Run("productivity_override", func(t *testing.T) {
		res := callTool(t, (*mcp.HandlerSet).HandleCalculateEstimate, map[string]interface{}{
			"path":                writeEstimateFile(t),
			"productivity_factor": 20.0,
		})
		require.False(t, res.IsError)

		parsed := resultJSON(t, res)
		summary := parsed["summary"].(map[string]interface{})
		assert.InDelta(t, 14*0.93*20, summary["total_effort_hours"].(float64), 1e-9)
	})
}

func TestHandleEstimateTeam(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		res := callTool(t, (*mcp.HandlerSet).HandleEstimateTeam, map[string]interface{}{
			"adjusted_fp":         250.0,
			"productivity_factor": 10.0,
		})
		require.False(t, res.IsError)

		parsed := resultJSON(t, res)
		assert.Equal(t, float64(8), parsed["recommended_team_size"])
		assert.Equal(t, float64(3), parsed["duration_months"])
		assert.Contains(t, parsed, "ideal_team_size")
	})

	t.Run("missing_magnitude", func(t *testing.T) {
		res := callTool(t, (*mcp.HandlerSet).HandleEstimateTeam, map[string]interface{}{})
		assert.True(t, res.IsError)
	})
}

func TestHandleAnalyzeTrend(t *testing.T) {
	writeHistory := func(t *testing.T) string {
		t.Helper()
		dir := t.TempDir()
		content := `project: billing
versions:
  - version: 1
    status: superseded
    components:
      - {name: File, kind: ILF, det: 5, ret: 1}
  - version: 2
    components:
      - {name: File, kind: ILF, det: 25, ret: 2}
`
		path := filepath.Join(dir, "history.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("success", func(t *testing.T) {
		res := callTool(t, (*mcp.HandlerSet).HandleAnalyzeTrend, map[string]interface{}{
			"path": writeHistory(t),
		})
		require.False(t, res.IsError)

		parsed := resultJSON(t, res)
		assert.Equal(t, "afp", parsed["metric"])
		assert.Len(t, parsed["points"], 2)
	})

	t.Run("unknown_metric", func(t *testing.T) {
		res := callTool(t, (*mcp.HandlerSet).HandleAnalyzeTrend, map[string]interface{}{
			"path":   writeHistory(t),
			"metric": "velocity",
		})
		assert.True(t, res.IsError)
	})

	t.Run("path_not_exist", func(t *testing.T) {
		res := callTool(t, (*mcp.HandlerSet).HandleAnalyzeTrend, map[string]interface{}{
			"path": "/non/existing/history.yaml",
		})
		assert.True(t, res.IsError)
	})
}
