package mcptool

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"intervals-icu-mcp/internal/usecase"
)

func (h *Handlers) registerAnalysisTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("get_activity_streams",
		mcp.WithDescription("Get the raw time series data of an activity (power, heart rate, cadence, speed and more)."),
		mcp.WithString("activity_id", mcp.Required(),
			mcp.Description("Activity ID")),
		mcp.WithArray("streams",
			mcp.Description("Stream types to fetch, e.g. ['watts', 'heartrate']. Omit for all available streams.")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.analysis.Streams(ctx, cfg, req.GetString("activity_id", ""), stringSlice(req, "streams")))
	})

	s.AddTool(mcp.NewTool("get_activity_intervals",
		mcp.WithDescription("Get the detected or planned intervals of an activity with a work/rest summary."),
		mcp.WithString("activity_id", mcp.Required(),
			mcp.Description("Activity ID")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.analysis.Intervals(ctx, cfg, req.GetString("activity_id", "")))
	})

	s.AddTool(mcp.NewTool("get_best_efforts",
		mcp.WithDescription("Get the best efforts detected in an activity, with their position in the recording."),
		mcp.WithString("activity_id", mcp.Required(),
			mcp.Description("Activity ID")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.analysis.BestEfforts(ctx, cfg, req.GetString("activity_id", "")))
	})

	s.AddTool(mcp.NewTool("search_intervals",
		mcp.WithDescription("Search comparable intervals across the activity history by type and duration."),
		mcp.WithString("interval_type",
			mcp.Description("Interval type to match, e.g. 'Work' or 'Recovery'")),
		mcp.WithNumber("min_duration",
			mcp.Description("Minimum interval duration in seconds")),
		mcp.WithNumber("max_duration",
			mcp.Description("Maximum interval duration in seconds")),
		mcp.WithNumber("limit",
			mcp.DefaultNumber(30),
			mcp.Description("Maximum number of intervals to return")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		params := usecase.IntervalSearchParams{
			IntervalType: req.GetString("interval_type", ""),
			MinDuration:  req.GetInt("min_duration", 0),
			MaxDuration:  req.GetInt("max_duration", 0),
			Limit:        req.GetInt("limit", 30),
		}
		return text(h.analysis.SearchIntervals(ctx, cfg, params))
	})

	s.AddTool(mcp.NewTool("get_power_histogram",
		mcp.WithDescription("Get the power distribution histogram of an activity."),
		mcp.WithString("activity_id", mcp.Required(),
			mcp.Description("Activity ID")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.analysis.PowerHistogram(ctx, cfg, req.GetString("activity_id", "")))
	})

	s.AddTool(mcp.NewTool("get_hr_histogram",
		mcp.WithDescription("Get the heart rate distribution histogram of an activity."),
		mcp.WithString("activity_id", mcp.Required(),
			mcp.Description("Activity ID")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.analysis.HRHistogram(ctx, cfg, req.GetString("activity_id", "")))
	})

	s.AddTool(mcp.NewTool("get_pace_histogram",
		mcp.WithDescription("Get the pace distribution histogram of an activity."),
		mcp.WithString("activity_id", mcp.Required(),
			mcp.Description("Activity ID")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.analysis.PaceHistogram(ctx, cfg, req.GetString("activity_id", "")))
	})

	s.AddTool(mcp.NewTool("get_gap_histogram",
		mcp.WithDescription("Get the grade adjusted pace distribution histogram of an activity."),
		mcp.WithString("activity_id", mcp.Required(),
			mcp.Description("Activity ID")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.analysis.GAPHistogram(ctx, cfg, req.GetString("activity_id", "")))
	})
}
