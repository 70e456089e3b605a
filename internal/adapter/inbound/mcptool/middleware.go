package mcptool

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"intervals-icu-mcp/configs"
	"intervals-icu-mcp/internal/domain"
)

// ConfigMiddleware resolves the credentials for every tool call and injects
// them into the request context. Config is re-read per call so that running
// intervals-mcp-auth takes effect without a server restart. It also converts
// handler panics into an error envelope instead of tearing the session down.
func ConfigMiddleware(logger *slog.Logger) server.ToolHandlerMiddleware {
	log := logger.With("component", "mcptool_middleware")
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("Tool handler panicked",
						slog.String("tool", req.Params.Name),
						slog.Any("panic", r))
					result = mcp.NewToolResultText(domain.ErrorResponse{
						Message: fmt.Sprintf("Unexpected error: %v", r),
						Kind:    domain.ErrInternal,
					}.Build())
					err = nil
				}
			}()

			cfg, loadErr := configs.Load()
			if loadErr != nil {
				log.Warn("Failed to load config", slog.Any("error", loadErr))
				return mcp.NewToolResultError(configs.NotConfiguredMessage), nil
			}
			if !cfg.ValidateCredentials() {
				return mcp.NewToolResultError(configs.NotConfiguredMessage), nil
			}
			return next(configs.NewContext(ctx, cfg), req)
		}
	}
}
