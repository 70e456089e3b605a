package mcptool

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (h *Handlers) registerFileTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("download_activity_file",
		mcp.WithDescription("Download the original uploaded file of an activity. Returns base64 content unless output_path is given."),
		mcp.WithString("activity_id", mcp.Required(),
			mcp.Description("Activity ID")),
		mcp.WithString("output_path",
			mcp.Description("Local path to save the file to instead of returning its content")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.files.DownloadOriginal(ctx, cfg, req.GetString("activity_id", ""), req.GetString("output_path", "")))
	})

	s.AddTool(mcp.NewTool("download_fit_file",
		mcp.WithDescription("Download an activity converted to FIT format. Returns base64 content unless output_path is given."),
		mcp.WithString("activity_id", mcp.Required(),
			mcp.Description("Activity ID")),
		mcp.WithString("output_path",
			mcp.Description("Local path to save the file to instead of returning its content")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.files.DownloadFIT(ctx, cfg, req.GetString("activity_id", ""), req.GetString("output_path", "")))
	})

	s.AddTool(mcp.NewTool("download_gpx_file",
		mcp.WithDescription("Download an activity converted to GPX format. Returns base64 content unless output_path is given."),
		mcp.WithString("activity_id", mcp.Required(),
			mcp.Description("Activity ID")),
		mcp.WithString("output_path",
			mcp.Description("Local path to save the file to instead of returning its content")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.files.DownloadGPX(ctx, cfg, req.GetString("activity_id", ""), req.GetString("output_path", "")))
	})
}
