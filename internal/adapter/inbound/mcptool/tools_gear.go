package mcptool

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"intervals-icu-mcp/internal/usecase"
)

func (h *Handlers) registerGearTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("get_gear_list",
		mcp.WithDescription("List all gear with usage totals and maintenance reminders."),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.gear.List(ctx, cfg))
	})

	s.AddTool(mcp.NewTool("create_gear",
		mcp.WithDescription("Add a gear item (bike, shoes, or a component)."),
		mcp.WithString("name", mcp.Required(),
			mcp.Description("Gear name")),
		mcp.WithString("gear_type", mcp.Required(),
			mcp.Description("Gear type, e.g. 'Bike' or 'Shoes'")),
		mcp.WithString("brand", mcp.Description("Brand name")),
		mcp.WithString("model", mcp.Description("Model name")),
		mcp.WithBoolean("active",
			mcp.DefaultBool(true),
			mcp.Description("Whether the gear is in active use")),
		mcp.WithBoolean("primary",
			mcp.DefaultBool(false),
			mcp.Description("Whether this is the default gear for its sport")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.gear.Create(ctx, cfg,
			req.GetString("name", ""),
			req.GetString("gear_type", ""),
			req.GetString("brand", ""),
			req.GetString("model", ""),
			req.GetBool("active", true),
			req.GetBool("primary", false)))
	})

	s.AddTool(mcp.NewTool("update_gear",
		mcp.WithDescription("Update a gear item. Only the provided fields are changed."),
		mcp.WithString("gear_id", mcp.Required(),
			mcp.Description("Gear ID to update")),
		mcp.WithString("name", mcp.Description("New gear name")),
		mcp.WithString("gear_type", mcp.Description("New gear type")),
		mcp.WithString("brand", mcp.Description("New brand name")),
		mcp.WithString("model", mcp.Description("New model name")),
		mcp.WithBoolean("active", mcp.Description("Whether the gear is in active use")),
		mcp.WithBoolean("primary", mcp.Description("Whether this is the default gear for its sport")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		params := usecase.UpdateGearParams{
			Name:     optString(req, "name"),
			GearType: optString(req, "gear_type"),
			Brand:    optString(req, "brand"),
			Model:    optString(req, "model"),
			Active:   optBool(req, "active"),
			Primary:  optBool(req, "primary"),
		}
		return text(h.gear.Update(ctx, cfg, req.GetString("gear_id", ""), params))
	})

	s.AddTool(mcp.NewTool("delete_gear",
		mcp.WithDescription("Delete a gear item."),
		mcp.WithString("gear_id", mcp.Required(),
			mcp.Description("Gear ID to delete")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.gear.Delete(ctx, cfg, req.GetString("gear_id", "")))
	})

	s.AddTool(mcp.NewTool("create_gear_reminder",
		mcp.WithDescription("Add a maintenance reminder to a gear item, triggered by distance or time in use."),
		mcp.WithString("gear_id", mcp.Required(),
			mcp.Description("Gear ID the reminder belongs to")),
		mcp.WithString("text", mcp.Required(),
			mcp.Description("Reminder text, e.g. 'Replace chain'")),
		mcp.WithNumber("distance_alert",
			mcp.Description("Alert after this many kilometers of use")),
		mcp.WithNumber("time_alert",
			mcp.Description("Alert after this many hours of use")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.gear.CreateReminder(ctx, cfg,
			req.GetString("gear_id", ""),
			req.GetString("text", ""),
			optFloat(req, "distance_alert"),
			optInt(req, "time_alert")))
	})

	s.AddTool(mcp.NewTool("update_gear_reminder",
		mcp.WithDescription("Update a gear maintenance reminder. Only the provided fields are changed."),
		mcp.WithString("gear_id", mcp.Required(),
			mcp.Description("Gear ID the reminder belongs to")),
		mcp.WithNumber("reminder_id", mcp.Required(),
			mcp.Description("Reminder ID to update")),
		mcp.WithString("text", mcp.Description("New reminder text")),
		mcp.WithNumber("distance_alert",
			mcp.Description("Alert after this many kilometers of use")),
		mcp.WithNumber("time_alert",
			mcp.Description("Alert after this many hours of use")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.gear.UpdateReminder(ctx, cfg,
			req.GetString("gear_id", ""),
			req.GetInt("reminder_id", 0),
			optString(req, "text"),
			optFloat(req, "distance_alert"),
			optInt(req, "time_alert")))
	})
}
