package mcptool

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"intervals-icu-mcp/internal/usecase"
)

func (h *Handlers) registerWellnessTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("get_wellness_data",
		mcp.WithDescription("Get recent daily wellness records (sleep, HRV, resting HR, weight, subjective scores) with trends."),
		mcp.WithNumber("days_back",
			mcp.DefaultNumber(7),
			mcp.Description("How many days back to include")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.wellness.GetRecent(ctx, cfg, req.GetInt("days_back", 7)))
	})

	s.AddTool(mcp.NewTool("get_wellness_for_date",
		mcp.WithDescription("Get the full wellness record of one day, including vitals and blood markers."),
		mcp.WithString("date", mcp.Required(),
			mcp.Description("Date in YYYY-MM-DD format")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		return text(h.wellness.ForDate(ctx, cfg, req.GetString("date", "")))
	})

	s.AddTool(mcp.NewTool("update_wellness",
		mcp.WithDescription("Record wellness metrics for a day. Only the provided metrics are changed."),
		mcp.WithString("date", mcp.Required(),
			mcp.Description("Date in YYYY-MM-DD format")),
		mcp.WithNumber("weight", mcp.Description("Body weight in kg")),
		mcp.WithNumber("resting_hr", mcp.Description("Resting heart rate in bpm")),
		mcp.WithNumber("hrv", mcp.Description("HRV (rMSSD) in ms")),
		mcp.WithNumber("sleep_secs", mcp.Description("Sleep duration in seconds")),
		mcp.WithNumber("sleep_quality", mcp.Description("Sleep quality from 1 (poor) to 5 (great)")),
		mcp.WithNumber("fatigue", mcp.Description("Fatigue from 1 (fresh) to 5 (exhausted)")),
		mcp.WithNumber("soreness", mcp.Description("Muscle soreness from 1 to 5")),
		mcp.WithNumber("stress", mcp.Description("Stress from 1 to 5")),
		mcp.WithNumber("mood", mcp.Description("Mood from 1 to 5")),
		mcp.WithNumber("motivation", mcp.Description("Motivation from 1 to 5")),
		mcp.WithNumber("readiness", mcp.Description("Readiness score")),
		mcp.WithString("comments", mcp.Description("Free text note for the day")),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg, errResult := requestConfig(ctx)
		if errResult != nil {
			return errResult, nil
		}
		params := usecase.UpdateWellnessParams{
			Weight:       optFloat(req, "weight"),
			RestingHR:    optInt(req, "resting_hr"),
			HRV:          optFloat(req, "hrv"),
			SleepSecs:    optInt(req, "sleep_secs"),
			SleepQuality: optInt(req, "sleep_quality"),
			Fatigue:      optInt(req, "fatigue"),
			Soreness:     optInt(req, "soreness"),
			Stress:       optInt(req, "stress"),
			Mood:         optInt(req, "mood"),
			Motivation:   optInt(req, "motivation"),
			Readiness:    optFloat(req, "readiness"),
			Comments:     optString(req, "comments"),
		}
		return text(h.wellness.Update(ctx, cfg, req.GetString("date", ""), params))
	})
}
