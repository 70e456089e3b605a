package mcptool

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"intervals-icu-mcp/configs"
	"intervals-icu-mcp/internal/usecase"
)

// Handlers binds the tool definitions to their use cases.
type Handlers struct {
	athlete    *usecase.AthleteUseCase
	activities *usecase.ActivitiesUseCase
	files      *usecase.FilesUseCase
	analysis   *usecase.AnalysisUseCase
	curves     *usecase.CurvesUseCase
	wellness   *usecase.WellnessUseCase
	events     *usecase.EventsUseCase
	gear       *usecase.GearUseCase
	workouts   *usecase.WorkoutsUseCase
	logger     *slog.Logger
}

// NewHandlers creates the Handlers struct from the per-domain use cases.
func NewHandlers(
	athlete *usecase.AthleteUseCase,
	activities *usecase.ActivitiesUseCase,
	files *usecase.FilesUseCase,
	analysis *usecase.AnalysisUseCase,
	curves *usecase.CurvesUseCase,
	wellness *usecase.WellnessUseCase,
	events *usecase.EventsUseCase,
	gear *usecase.GearUseCase,
	workouts *usecase.WorkoutsUseCase,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		athlete:    athlete,
		activities: activities,
		files:      files,
		analysis:   analysis,
		curves:     curves,
		wellness:   wellness,
		events:     events,
		gear:       gear,
		workouts:   workouts,
		logger:     logger.With("component", "mcptool_handler"),
	}
}

// Register attaches every tool to the mcp-go server.
func (h *Handlers) Register(s *server.MCPServer) {
	h.registerAthleteTools(s)
	h.registerActivityTools(s)
	h.registerFileTools(s)
	h.registerAnalysisTools(s)
	h.registerCurveTools(s)
	h.registerWellnessTools(s)
	h.registerEventTools(s)
	h.registerGearTools(s)
	h.registerWorkoutTools(s)
}

// requestConfig reads the per-call config injected by ConfigMiddleware. A
// missing config means the middleware did not run; that is reported like
// unconfigured credentials.
func requestConfig(ctx context.Context) (*configs.Config, *mcp.CallToolResult) {
	cfg, ok := configs.FromContext(ctx)
	if !ok {
		return nil, mcp.NewToolResultError(configs.NotConfiguredMessage)
	}
	return cfg, nil
}

func text(out string) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(out), nil
}

// Optional-argument accessors. The use cases distinguish "absent" from the
// zero value, which the flat Get helpers of mcp-go cannot express.

func optString(req mcp.CallToolRequest, key string) *string {
	if v, ok := req.GetArguments()[key]; ok {
		if s, ok := v.(string); ok {
			return &s
		}
	}
	return nil
}

func optFloat(req mcp.CallToolRequest, key string) *float64 {
	if v, ok := req.GetArguments()[key]; ok {
		switch n := v.(type) {
		case float64:
			return &n
		case int:
			f := float64(n)
			return &f
		}
	}
	return nil
}

func optInt(req mcp.CallToolRequest, key string) *int {
	if f := optFloat(req, key); f != nil {
		n := int(*f)
		return &n
	}
	return nil
}

func optBool(req mcp.CallToolRequest, key string) *bool {
	if v, ok := req.GetArguments()[key]; ok {
		if b, ok := v.(bool); ok {
			return &b
		}
	}
	return nil
}

func stringSlice(req mcp.CallToolRequest, key string) []string {
	v, ok := req.GetArguments()[key]
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
