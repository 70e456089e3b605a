package mcptool

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// curveWindow maps the optional days_back argument to the use case sentinel,
// where a negative value means "not set, fall back to time_period".
func curveWindow(req mcp.CallToolRequest) int {
	if v := optInt(req, "days_back"); v != nil {
		return *v
	}
	return -1
}

func (h *Handlers) registerCurveTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("get_power_curves",
		mcp.WithDescription("Get the athlete's power curve with peak efforts, FTP estimate and power zones."),
		mcp.WithNumber("days_back",
			mcp.Description("Exact number of days to include; overrides time_period")),
		mcp.WithString("time_period",
			mcp.Description("Named window: 'week', 'month', 'year' or 'all'. Defaults to 90 days.")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.curves.PowerCurves(ctx, cfg, curveWindow(req), req.GetString("time_period", "")))
	})

	s.AddTool(mcp.NewTool("get_hr_curves",
		mcp.WithDescription("Get the athlete's heart rate curve with estimated max HR and HR zones."),
		mcp.WithNumber("days_back",
			mcp.Description("Exact number of days to include; overrides time_period")),
		mcp.WithString("time_period",
			mcp.Description("Named window: 'week', 'month', 'year' or 'all'. Defaults to 90 days.")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.curves.HRCurves(ctx, cfg, curveWindow(req), req.GetString("time_period", "")))
	})

	s.AddTool(mcp.NewTool("get_pace_curves",
		mcp.WithDescription("Get the athlete's best pace per duration, optionally grade adjusted."),
		mcp.WithNumber("days_back",
			mcp.Description("Exact number of days to include; overrides time_period")),
		mcp.WithString("time_period",
			mcp.Description("Named window: 'week', 'month', 'year' or 'all'. Defaults to 90 days.")),
		mcp.WithBoolean("use_gap",
			mcp.Description("Use grade adjusted pace instead of raw pace")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.curves.PaceCurves(ctx, cfg, curveWindow(req),
			req.GetString("time_period", ""), req.GetBool("use_gap", false)))
	})
}
