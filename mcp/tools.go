package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all fpoint MCP tools with the server
func RegisterTools(s *server.MCPServer) {
	RegisterToolsWithHandlers(s, NewHandlerSet(nil))
}

// RegisterToolsWithHandlers registers the tools against an explicit handler set
func RegisterToolsWithHandlers(s *server.MCPServer, handlers *HandlerSet) {
	// Tool 1: validate_component - Component count validation
	s.AddTool(mcp.NewTool("validate_component",
		mcp.WithDescription("Validate a function point component's DET, RET, and FTR counts against IFPUG rules"),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Component kind: ILF, EIF, EI, EO, or EQ")),
		mcp.WithString("name",
			mcp.Description("Component name used in messages")),
		mcp.WithNumber("det",
			mcp.Description("Data element type count")),
		mcp.WithNumber("ret",
			mcp.Description("Record element type count (data functions)")),
		mcp.WithNumber("ftr",
			mcp.Description("File type referenced count (transactional functions)")),
		mcp.WithNumber("input_ftr", mcp.Description("Input side FTR for dual-count inquiries")),
		mcp.WithNumber("input_det", mcp.Description("Input side DET for dual-count inquiries")),
		mcp.WithNumber("output_ftr", mcp.Description("Output side FTR for dual-count inquiries")),
		mcp.WithNumber("output_det", mcp.Description("Output side DET for dual-count inquiries")),
		mcp.WithBoolean("boundary_warnings",
			mcp.Description("Warn when counts sit exactly on a band boundary (default: false)")),
	), handlers.HandleValidateComponent)

	// Tool 2: classify_complexity - IFPUG complexity classification
	s.AddTool(mcp.NewTool("classify_complexity",
		mcp.WithDescription("Classify a component into low/average/high complexity and return its function point weight"),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Component kind: ILF, EIF, EI, EO, or EQ")),
		mcp.WithNumber("det",
			mcp.Description("Data element type count")),
		mcp.WithNumber("ret",
			mcp.Description("Record element type count (data functions)")),
		mcp.WithNumber("ftr",
			mcp.Description("File type referenced count (transactional functions)")),
		mcp.WithNumber("input_ftr", mcp.Description("Input side FTR for dual-count inquiries")),
		mcp.WithNumber("input_det", mcp.Description("Input side DET for dual-count inquiries")),
		mcp.WithNumber("output_ftr", mcp.Description("Output side FTR for dual-count inquiries")),
		mcp.WithNumber("output_det", mcp.Description("Output side DET for dual-count inquiries")),
	), handlers.HandleClassifyComplexity)

	// Tool 3: calculate_estimate - Full function point calculation
	s.AddTool(mcp.NewTool("calculate_estimate",
		mcp.WithDescription("Calculate unadjusted and adjusted function points for estimate definition files"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to an estimate file or a directory of estimate files")),
		mcp.WithNumber("productivity_factor",
			mcp.Description("Hours per adjusted function point, overrides the estimate file value")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recursively scan directories (default: true)")),
	), handlers.HandleCalculateEstimate)

	// Tool 4: estimate_team - Team size and duration estimation
	s.AddTool(mcp.NewTool("estimate_team",
		mcp.WithDescription("Estimate team size and project duration from adjusted function points or total effort"),
		mcp.WithNumber("adjusted_fp",
			mcp.Description("Adjusted function points to staff for")),
		mcp.WithNumber("effort_hours",
			mcp.Description("Total effort in person-hours, overrides derivation from adjusted_fp")),
		mcp.WithNumber("productivity_factor",
			mcp.Description("Hours per adjusted function point")),
		mcp.WithNumber("hours_per_day",
			mcp.Description("Productive hours per person per day (default: 6)")),
		mcp.WithNumber("buffer_percent",
			mcp.Description("Schedule buffer in percent (default: 20)")),
		mcp.WithNumber("fixed_duration_months",
			mcp.Description("Fix the duration and solve for team size")),
		mcp.WithNumber("fixed_team_size",
			mcp.Description("Fix the team size and solve for duration")),
	), handlers.HandleEstimateTeam)

	// Tool 5: analyze_trend - Version history trend analysis
	s.AddTool(mcp.NewTool("analyze_trend",
		mcp.WithDescription("Analyze how an estimate's magnitude evolved across its version history"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to a version history file")),
		mcp.WithString("metric",
			mcp.Description("Metric to analyze: afp, effort, vaf (default: afp)")),
		mcp.WithNumber("stable_threshold",
			mcp.Description("Percent change treated as stable (default: 1.0)")),
	), handlers.HandleAnalyzeTrend)
}
