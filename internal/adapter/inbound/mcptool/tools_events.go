package mcptool

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"intervals-icu-mcp/internal/usecase"
)

func (h *Handlers) registerEventTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("create_event",
		mcp.WithDescription("Create a calendar event: a planned workout, note, race or goal."),
		mcp.WithString("start_date", mcp.Required(),
			mcp.Description("Event date in YYYY-MM-DD format")),
		mcp.WithString("name", mcp.Required(),
			mcp.Description("Event name")),
		mcp.WithString("category", mcp.Required(),
			mcp.Description("Event category: WORKOUT, NOTE, RACE or GOAL")),
		mcp.WithString("description", mcp.Description("Event description")),
		mcp.WithString("event_type", mcp.Description("Sport type, e.g. 'Ride' or 'Run'")),
		mcp.WithNumber("duration_seconds", mcp.Description("Planned duration in seconds")),
		mcp.WithNumber("distance_meters", mcp.Description("Planned distance in meters")),
		mcp.WithNumber("training_load", mcp.Description("Planned training load")),
		mcp.WithString("athlete_id",
			mcp.Description("Athlete ID override; defaults to the configured athlete")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		params := usecase.CreateEventParams{
			Description:     req.GetString("description", ""),
			EventType:       req.GetString("event_type", ""),
			DurationSeconds: req.GetInt("duration_seconds", 0),
			DistanceMeters:  req.GetFloat("distance_meters", 0),
			TrainingLoad:    req.GetInt("training_load", 0),
		}
		return text(h.events.Create(ctx, cfg,
			req.GetString("start_date", ""),
			req.GetString("name", ""),
			req.GetString("category", ""),
			params,
			req.GetString("athlete_id", "")))
	})

	s.AddTool(mcp.NewTool("update_event",
		mcp.WithDescription("Update a calendar event. Only the provided fields are changed."),
		mcp.WithNumber("event_id", mcp.Required(),
			mcp.Description("Event ID to update")),
		mcp.WithString("name", mcp.Description("New event name")),
		mcp.WithString("description", mcp.Description("New event description")),
		mcp.WithString("start_date", mcp.Description("New date in YYYY-MM-DD format")),
		mcp.WithString("event_type", mcp.Description("Sport type, e.g. 'Ride' or 'Run'")),
		mcp.WithNumber("duration_seconds", mcp.Description("Planned duration in seconds")),
		mcp.WithNumber("distance_meters", mcp.Description("Planned distance in meters")),
		mcp.WithNumber("training_load", mcp.Description("Planned training load")),
		mcp.WithString("athlete_id",
			mcp.Description("Athlete ID override; defaults to the configured athlete")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		params := usecase.UpdateEventParams{
			Name:            optString(req, "name"),
			Description:     optString(req, "description"),
			StartDate:       optString(req, "start_date"),
			EventType:       optString(req, "event_type"),
			DurationSeconds: optInt(req, "duration_seconds"),
			DistanceMeters:  optFloat(req, "distance_meters"),
			TrainingLoad:    optInt(req, "training_load"),
		}
		return text(h.events.Update(ctx, cfg, req.GetInt("event_id", 0), params, req.GetString("athlete_id", "")))
	})

	s.AddTool(mcp.NewTool("delete_event",
		mcp.WithDescription("Delete a calendar event."),
		mcp.WithNumber("event_id", mcp.Required(),
			mcp.Description("Event ID to delete")),
		mcp.WithString("athlete_id",
			mcp.Description("Athlete ID override; defaults to the configured athlete")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.events.Delete(ctx, cfg, req.GetInt("event_id", 0), req.GetString("athlete_id", "")))
	})

	s.AddTool(mcp.NewTool("bulk_create_events",
		mcp.WithDescription("Create multiple calendar events at once from a JSON array. Each event needs start_date_local, name and category."),
		mcp.WithString("events", mcp.Required(),
			mcp.Description("JSON array of event objects")),
		mcp.WithString("athlete_id",
			mcp.Description("Athlete ID override; defaults to the configured athlete")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.events.BulkCreate(ctx, cfg, req.GetString("events", ""), req.GetString("athlete_id", "")))
	})

	s.AddTool(mcp.NewTool("bulk_delete_events",
		mcp.WithDescription("Delete multiple calendar events at once."),
		mcp.WithString("event_ids", mcp.Required(),
			mcp.Description("JSON array of event IDs, e.g. '[123, 456]'")),
		mcp.WithString("athlete_id",
			mcp.Description("Athlete ID override; defaults to the configured athlete")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.events.BulkDelete(ctx, cfg, req.GetString("event_ids", ""), req.GetString("athlete_id", "")))
	})

	s.AddTool(mcp.NewTool("duplicate_event",
		mcp.WithDescription("Copy an existing calendar event to a new date."),
		mcp.WithNumber("event_id", mcp.Required(),
			mcp.Description("Event ID to duplicate")),
		mcp.WithString("new_date", mcp.Required(),
			mcp.Description("Target date in YYYY-MM-DD format")),
		mcp.WithString("athlete_id",
			mcp.Description("Athlete ID override; defaults to the configured athlete")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.events.Duplicate(ctx, cfg, req.GetInt("event_id", 0), req.GetString("new_date", ""), req.GetString("athlete_id", "")))
	})
}
