package mcptool

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (h *Handlers) registerAthleteTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("get_athlete_profile",
		mcp.WithDescription("Get the athlete profile with current fitness (CTL), fatigue (ATL), form (TSB) and configured thresholds."),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.athlete.GetProfile(ctx, cfg))
	})

	s.AddTool(mcp.NewTool("get_fitness_summary",
		mcp.WithDescription("Get a fitness summary with explained CTL/ATL/TSB metrics, ramp rate and a training recommendation."),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.athlete.GetFitnessSummary(ctx, cfg))
	})
}
