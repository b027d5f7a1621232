package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/scopeworks/fpoint/domain"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// HandleValidateComponent handles the validate_component tool
func (h *HandlerSet) HandleValidateComponent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	component, errMsg := parseComponentArgs(args)
	if errMsg != "" {
		return mcp.NewToolResultError(errMsg), nil
	}

	opts := domain.ValidationOptions{}
	if cfg := h.deps.Config(); cfg != nil {
		opts = cfg.Calculation.ValidationOptions()
	}
	if ceiling, ok := args["eq_det_ceiling"].(float64); ok {
		opts.EQDETCeiling = int(ceiling)
	}
	if bw, ok := args["boundary_warnings"].(bool); ok {
		opts.BoundaryWarnings = bw
	}

	result, err := h.deps.calculation.ValidateComponent(ctx, *component, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("validation failed: %v", err)), nil
	}

	responseData := map[string]interface{}{
		"valid":    result.Valid,
		"errors":   issueMessages(result.Errors),
		"warnings": issueMessages(result.Warnings),
	}

	// Valid components also get their classification
	if result.Valid {
		rating, err := h.deps.calculation.ClassifyComponent(ctx, *component)
		if err == nil {
			responseData["complexity"] = string(rating.Complexity)
			responseData["weight"] = rating.Weight
		}
	}

	return marshalResult(responseData)
}

// HandleClassifyComplexity handles the classify_complexity tool
func (h *HandlerSet) HandleClassifyComplexity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	component, errMsg := parseComponentArgs(args)
	if errMsg != "" {
		return mcp.NewToolResultError(errMsg), nil
	}

	rating, err := h.deps.calculation.ClassifyComponent(ctx, *component)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("classification failed: %v", err)), nil
	}

	responseData := map[string]interface{}{
		"kind":       string(component.Kind),
		"complexity": string(rating.Complexity),
		"weight":     rating.Weight,
	}
	if component.UsesDualCount() {
		responseData["input_rating"] = string(rating.InputRating)
		responseData["output_rating"] = string(rating.OutputRating)
	}

	return marshalResult(responseData)
}

// HandleCalculateEstimate handles the calculate_estimate tool
func (h *HandlerSet) HandleCalculateEstimate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	cfg := h.deps.Config()

	req := domain.CalculateRequest{
		Paths:        []string{path},
		OutputFormat: domain.OutputFormatJSON,
		OutputWriter: io.Discard,
		SortBy:       domain.SortByKind,
		Recursive:    cfg == nil || cfg.Input.Recursive,
		ConfigPath:   h.deps.ConfigPath(),
	}
	if cfg != nil {
		req.Validation = cfg.Calculation.ValidationOptions()
		req.ProductivityFactor = cfg.Estimation.ProductivityFactor
		req.IncludePatterns = cfg.Input.IncludePatterns
		req.ExcludePatterns = cfg.Input.ExcludePatterns
	}
	if pf, ok := args["productivity_factor"].(float64); ok {
		req.ProductivityFactor = pf
	}
	if recursive, ok := args["recursive"].(bool); ok {
		req.Recursive = recursive
	}

	useCase, err := h.deps.BuildCalculateUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create calculator: %v", err)), nil
	}

	result, err := useCase.ExecuteAndReturn(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("calculation failed: %v", err)), nil
	}

	// Parse output_mode parameter (default: "summary")
	outputMode := "summary"
	if om, ok := args["output_mode"].(string); ok {
		outputMode = om
	}

	var responseData interface{}
	switch outputMode {
	case "full":
		responseData = result
	default: // "summary"
		responseData = formatCalculateSummary(result)
	}

	return marshalResult(responseData)
}

// HandleEstimateTeam handles the estimate_team tool
func (h *HandlerSet) HandleEstimateTeam(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	req := domain.TeamSizeRequest{
		HoursPerDay:   domain.DefaultHoursPerDay,
		BufferPercent: domain.DefaultBufferPercent,
		OutputFormat:  domain.OutputFormatJSON,
		OutputWriter:  io.Discard,
	}
	if cfg := h.deps.Config(); cfg != nil {
		req.ProductivityFactor = cfg.Estimation.ProductivityFactor
		req.HoursPerDay = cfg.Estimation.HoursPerDay
		req.BufferPercent = cfg.Estimation.BufferPercent
	}

	if afp, ok := args["adjusted_fp"].(float64); ok {
		req.AdjustedFP = afp
	}
	if effort, ok := args["effort_hours"].(float64); ok {
		req.TotalEffortHours = effort
	}
	if pf, ok := args["productivity_factor"].(float64); ok {
		req.ProductivityFactor = pf
	}
	if hpd, ok := args["hours_per_day"].(float64); ok {
		req.HoursPerDay = hpd
	}
	if buffer, ok := args["buffer_percent"].(float64); ok {
		req.BufferPercent = buffer
	}
	if duration, ok := args["fixed_duration_months"].(float64); ok {
		req.FixedDurationMonths = duration
	}
	if teamSize, ok := args["fixed_team_size"].(float64); ok {
		req.FixedTeamSize = int(teamSize)
	}

	result, err := h.deps.teamSize.EstimateTeam(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("team size estimation failed: %v", err)), nil
	}

	responseData := map[string]interface{}{
		"recommended_team_size": result.RecommendedTeamSize,
		"min_team_size":         result.MinTeamSize,
		"max_team_size":         result.MaxTeamSize,
		"duration_months":       result.DurationMonths,
		"min_duration_months":   result.MinDurationMonths,
		"max_duration_months":   result.MaxDurationMonths,
		"buffered_effort_hours": result.BufferedEffortHours,
	}
	if result.IdealMaxTeamSize > 0 {
		responseData["ideal_team_size"] = map[string]int{
			"min": result.IdealMinTeamSize,
			"max": result.IdealMaxTeamSize,
		}
	}

	return marshalResult(responseData)
}

// HandleAnalyzeTrend handles the analyze_trend tool
func (h *HandlerSet) HandleAnalyzeTrend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	req := domain.TrendRequest{
		HistoryPath:  path,
		Metric:       domain.TrendMetricAFP,
		OutputFormat: domain.OutputFormatJSON,
		OutputWriter: io.Discard,
	}
	if cfg := h.deps.Config(); cfg != nil {
		req.StableThresholdPercent = cfg.Trend.StableThresholdPercent
	}
	if metric, ok := args["metric"].(string); ok {
		req.Metric = domain.TrendMetric(metric)
	}
	if threshold, ok := args["stable_threshold"].(float64); ok {
		req.StableThresholdPercent = threshold
	}

	result, err := h.deps.trend.AnalyzeTrend(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend analysis failed: %v", err)), nil
	}

	points := make([]map[string]interface{}, 0, len(result.Points))
	for _, point := range result.Points {
		points = append(points, map[string]interface{}{
			"version": point.Version,
			"value":   point.Value,
		})
	}

	responseData := map[string]interface{}{
		"metric":      string(result.Metric),
		"direction":   string(result.Direction),
		"first_value": result.FirstValue,
		"last_value":  result.LastValue,
		"points":      points,
	}
	if result.BaselineUndefined {
		responseData["baseline_undefined"] = true
	} else {
		responseData["percentage_change"] = result.PercentageChange
	}

	return marshalResult(responseData)
}

// Helper functions

// parseComponentArgs builds a component from tool arguments.
// Returns a non-empty error message on invalid input.
func parseComponentArgs(args map[string]interface{}) (*domain.Component, string) {
	kindArg, ok := args["kind"].(string)
	if !ok {
		return nil, "kind parameter is required and must be a string"
	}

	kind, err := domain.ParseComponentKind(kindArg)
	if err != nil {
		return nil, fmt.Sprintf("unknown component kind: %s", kindArg)
	}

	component := &domain.Component{
		Name: "component",
		Kind: kind,
	}
	if name, ok := args["name"].(string); ok {
		component.Name = name
	}
	if det, ok := args["det"].(float64); ok {
		component.DET = int(det)
	}
	if ret, ok := args["ret"].(float64); ok {
		component.RET = int(ret)
	}
	if ftr, ok := args["ftr"].(float64); ok {
		component.FTR = int(ftr)
	}

	// Dual-count side arguments come as a flat quartet
	inputFTR, hasInputFTR := args["input_ftr"].(float64)
	inputDET, hasInputDET := args["input_det"].(float64)
	outputFTR, hasOutputFTR := args["output_ftr"].(float64)
	outputDET, hasOutputDET := args["output_det"].(float64)
	hasAny := hasInputFTR || hasInputDET || hasOutputFTR || hasOutputDET
	if hasAny {
		if kind != domain.KindEQ {
			return nil, "dual-count sides are only valid for EQ components"
		}
		if !hasInputFTR || !hasInputDET || !hasOutputFTR || !hasOutputDET {
			return nil, "dual-count components need input_ftr, input_det, output_ftr, and output_det"
		}
		component.Dual = &domain.EQSides{
			InputFTR:  int(inputFTR),
			InputDET:  int(inputDET),
			OutputFTR: int(outputFTR),
			OutputDET: int(outputDET),
		}
	}

	return component, ""
}

func issueMessages(issues []domain.ValidationIssue) []string {
	messages := make([]string, 0, len(issues))
	for _, issue := range issues {
		messages = append(messages, issue.String())
	}
	return messages
}

// formatCalculateSummary formats calculation results in compact summary mode
func formatCalculateSummary(result *domain.CalculateResponse) map[string]interface{} {
	estimates := make([]map[string]interface{}, 0, len(result.Results))
	for _, estimate := range result.Results {
		entry := map[string]interface{}{
			"name":          estimate.Name,
			"version":       estimate.Version,
			"unadjusted_fp": estimate.UnadjustedFP,
			"vaf":           estimate.VAF,
			"adjusted_fp":   estimate.AdjustedFP,
			"valid":         estimate.Valid,
		}
		if estimate.EffortHours > 0 {
			entry["effort_hours"] = estimate.EffortHours
		}
		estimates = append(estimates, entry)
	}

	return map[string]interface{}{
		"estimates": estimates,
		"summary": map[string]interface{}{
			"total_estimates":     result.Summary.TotalEstimates,
			"total_components":    result.Summary.TotalComponents,
			"total_unadjusted_fp": result.Summary.TotalUnadjustedFP,
			"total_adjusted_fp":   result.Summary.TotalAdjustedFP,
			"total_effort_hours":  result.Summary.TotalEffortHours,
		},
		"warnings": result.Warnings,
		"errors":   result.Errors,
	}
}

func marshalResult(data interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
