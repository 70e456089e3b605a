package mcptool

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"intervals-icu-mcp/internal/usecase"
)

func (h *Handlers) registerActivityTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("get_recent_activities",
		mcp.WithDescription("List recent activities with summary metrics."),
		mcp.WithNumber("limit",
			mcp.DefaultNumber(30),
			mcp.Description("Maximum number of activities to return (capped at 100)")),
		mcp.WithNumber("days_back",
			mcp.DefaultNumber(30),
			mcp.Description("How many days back to look")),
		mcp.WithString("athlete_id",
			mcp.Description("Athlete ID override; defaults to the configured athlete")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		limit := req.GetInt("limit", 30)
		daysBack := req.GetInt("days_back", 30)
		athleteID := req.GetString("athlete_id", "")
		return text(h.activities.GetRecent(ctx, cfg, limit, daysBack, athleteID))
	})

	s.AddTool(mcp.NewTool("get_activity_details",
		mcp.WithDescription("Get the full details of one activity, including power, heart rate, pace and training load analysis."),
		mcp.WithString("activity_id", mcp.Required(),
			mcp.Description("Activity ID, e.g. 'i12345678'")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.activities.GetDetails(ctx, cfg, req.GetString("activity_id", "")))
	})

	s.AddTool(mcp.NewTool("search_activities",
		mcp.WithDescription("Search activities by name keyword."),
		mcp.WithString("query", mcp.Required(),
			mcp.Description("Text to match against activity names")),
		mcp.WithNumber("limit",
			mcp.DefaultNumber(30),
			mcp.Description("Maximum number of results")),
		mcp.WithString("athlete_id",
			mcp.Description("Athlete ID override; defaults to the configured athlete")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		query := req.GetString("query", "")
		limit := req.GetInt("limit", 30)
		athleteID := req.GetString("athlete_id", "")
		return text(h.activities.Search(ctx, cfg, query, limit, athleteID))
	})

	s.AddTool(mcp.NewTool("search_activities_full",
		mcp.WithDescription("Search activities by keyword and return full activity records instead of summaries."),
		mcp.WithString("query", mcp.Required(),
			mcp.Description("Text to match against activity names")),
		mcp.WithNumber("limit",
			mcp.DefaultNumber(30),
			mcp.Description("Maximum number of results")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.activities.SearchFull(ctx, cfg, req.GetString("query", ""), req.GetInt("limit", 30)))
	})

	s.AddTool(mcp.NewTool("update_activity",
		mcp.WithDescription("Update activity metadata. Only the provided fields are changed."),
		mcp.WithString("activity_id", mcp.Required(),
			mcp.Description("Activity ID to update")),
		mcp.WithString("name", mcp.Description("New activity name")),
		mcp.WithString("description", mcp.Description("New activity description")),
		mcp.WithString("activity_type", mcp.Description("Activity type, e.g. 'Ride', 'Run'")),
		mcp.WithBoolean("trainer", mcp.Description("Whether the activity was done indoors on a trainer")),
		mcp.WithBoolean("commute", mcp.Description("Whether the activity was a commute")),
		mcp.WithNumber("feel", mcp.Description("How the session felt, 1 (strong) to 5 (weak)")),
		mcp.WithNumber("perceived_exertion", mcp.Description("RPE from 1 to 10")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		params := usecase.UpdateActivityParams{
			Name:              optString(req, "name"),
			Description:       optString(req, "description"),
			Type:              optString(req, "activity_type"),
			Trainer:           optBool(req, "trainer"),
			Commute:           optBool(req, "commute"),
			Feel:              optInt(req, "feel"),
			PerceivedExertion: optInt(req, "perceived_exertion"),
		}
		return text(h.activities.Update(ctx, cfg, req.GetString("activity_id", ""), params))
	})

	s.AddTool(mcp.NewTool("delete_activity",
		mcp.WithDescription("Permanently delete an activity."),
		mcp.WithString("activity_id", mcp.Required(),
			mcp.Description("Activity ID to delete")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.activities.Delete(ctx, cfg, req.GetString("activity_id", "")))
	})

	s.AddTool(mcp.NewTool("get_activities_around",
		mcp.WithDescription("Get the activities on the calendar before and after a reference activity."),
		mcp.WithString("activity_id", mcp.Required(),
			mcp.Description("Reference activity ID")),
		mcp.WithNumber("count",
			mcp.DefaultNumber(5),
			mcp.Description("How many activities to include on each side")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.activities.Around(ctx, cfg, req.GetString("activity_id", ""), req.GetInt("count", 5)))
	})
}
