package mcptool

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (h *Handlers) registerWorkoutTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("get_workout_library",
		mcp.WithDescription("List workout folders and training plans in the athlete's library."),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.workouts.Library(ctx, cfg))
	})

	s.AddTool(mcp.NewTool("get_workouts_in_folder",
		mcp.WithDescription("List the workouts in a library folder with duration and load totals."),
		mcp.WithNumber("folder_id", mcp.Required(),
			mcp.Description("Folder ID from get_workout_library")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.workouts.InFolder(ctx, cfg, req.GetInt("folder_id", 0)))
	})
}
