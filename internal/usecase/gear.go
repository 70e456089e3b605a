package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"intervals-icu-mcp/configs"
	"intervals-icu-mcp/internal/adapter/outbound/icu"
	"intervals-icu-mcp/internal/domain"
)

// GearUseCase implements the equipment and maintenance reminder tools.
type GearUseCase struct {
	api    func(cfg *configs.Config) GearAPI
	logger *slog.Logger
}

func NewGearUseCase(api func(cfg *configs.Config) GearAPI, logger *slog.Logger) *GearUseCase {
	return &GearUseCase{api: api, logger: logger.With("component", "gear_usecase")}
}

// gearErrorResponse keeps the older unexpected_error fallback these tools
// shipped with: non-API errors pass through without the internal prefix.
func gearErrorResponse(err error) string {
	var apiErr *icu.APIError
	if errors.As(err, &apiErr) {
		return domain.ErrorResponse{Message: apiErr.Message, Kind: domain.ErrAPI}.Build()
	}
	return domain.ErrorResponse{Message: err.Error(), Kind: domain.ErrUnexpected}.Build()
}

// totalTimeString renders moving time as "3h 42m".
func totalTimeString(movingTime int) string {
	return fmt.Sprintf("%dh %dm", movingTime/3600, (movingTime%3600)/60)
}

func gearUsage(g *icu.Gear) map[string]any {
	usage := map[string]any{}
	if g.Distance != nil {
		usage["total_distance_km"] = round2(*g.Distance / 1000)
	}
	if g.MovingTime != nil {
		usage["total_time"] = totalTimeString(*g.MovingTime)
	}
	if g.ActivityCount != nil {
		usage["activity_count"] = *g.ActivityCount
	}
	return usage
}

func reminderInfo(r *icu.GearReminder) map[string]any {
	info := map[string]any{
		"id":   r.ID,
		"text": r.Text,
	}
	if r.DistanceAlert != nil {
		info["alert_every_km"] = round2(*r.DistanceAlert / 1000)
	}
	if r.TimeAlert != nil {
		info["alert_every_hours"] = *r.TimeAlert / 3600
	}
	if r.IsDue != nil {
		info["is_due"] = *r.IsDue
	}
	if r.DueDistance != nil {
		info["due_in_km"] = round2(*r.DueDistance / 1000)
	}
	if r.DueTime != nil {
		info["due_in_hours"] = *r.DueTime / 3600
	}
	putS(info, "snoozed_until", r.SnoozedUntil)
	return info
}

// List returns all gear with usage statistics and maintenance reminders.
func (uc *GearUseCase) List(ctx context.Context, cfg *configs.Config) string {
	gearList, err := uc.api(cfg).GetGear(ctx)
	if err != nil {
		uc.logger.Warn("Failed to fetch gear", slog.Any("error", err))
		return gearErrorResponse(err)
	}

	if len(gearList) == 0 {
		return domain.Response{
			Data:     map[string]any{"message": "No gear items found"},
			Metadata: map[string]any{"count": 0},
		}.Build()
	}

	items := make([]map[string]any, 0, len(gearList))
	for i := range gearList {
		g := &gearList[i]
		info := map[string]any{
			"id":     g.ID,
			"name":   g.Name,
			"type":   g.GearType,
			"active": g.Active,
		}
		putS(info, "brand", g.Brand)
		putS(info, "model", g.Model)

		if usage := gearUsage(g); len(usage) > 0 {
			info["usage"] = usage
		}

		if len(g.Reminders) > 0 {
			reminders := make([]map[string]any, 0, len(g.Reminders))
			for j := range g.Reminders {
				reminders = append(reminders, reminderInfo(&g.Reminders[j]))
			}
			info["reminders"] = reminders
		}
		items = append(items, info)
	}

	return domain.Response{
		Data:     map[string]any{"gear": items},
		Metadata: map[string]any{"count": len(gearList), "type": "gear_list"},
	}.Build()
}

func gearResult(g *icu.Gear) map[string]any {
	result := map[string]any{
		"id":      g.ID,
		"name":    g.Name,
		"type":    g.GearType,
		"active":  g.Active,
		"primary": g.Primary,
	}
	putS(result, "brand", g.Brand)
	putS(result, "model", g.Model)
	return result
}

// Create registers a new gear item.
func (uc *GearUseCase) Create(ctx context.Context, cfg *configs.Config, name, gearType, brand, model string, active, primary bool) string {
	fields := map[string]any{
		"name":      name,
		"gear_type": gearType,
		"active":    active,
		"primary":   primary,
	}
	putS(fields, "brand", brand)
	putS(fields, "model", model)

	g, err := uc.api(cfg).CreateGear(ctx, fields)
	if err != nil {
		uc.logger.Warn("Failed to create gear", slog.String("name", name), slog.Any("error", err))
		return gearErrorResponse(err)
	}

	return domain.Response{
		Data:     gearResult(g),
		Metadata: map[string]any{"type": "gear_created", "message": "Gear item created successfully"},
	}.Build()
}

// UpdateGearParams carries the optional gear field updates; nil leaves a
// field unchanged.
type UpdateGearParams struct {
	Name     *string
	GearType *string
	Brand    *string
	Model    *string
	Active   *bool
	Primary  *bool
}

// Update modifies the provided fields of a gear item.
func (uc *GearUseCase) Update(ctx context.Context, cfg *configs.Config, gearID string, params UpdateGearParams) string {
	fields := map[string]any{}
	if params.Name != nil {
		fields["name"] = *params.Name
	}
	if params.GearType != nil {
		fields["gear_type"] = *params.GearType
	}
	if params.Brand != nil {
		fields["brand"] = *params.Brand
	}
	if params.Model != nil {
		fields["model"] = *params.Model
	}
	if params.Active != nil {
		fields["active"] = *params.Active
	}
	if params.Primary != nil {
		fields["primary"] = *params.Primary
	}

	if len(fields) == 0 {
		return validationError("No fields provided to update")
	}

	g, err := uc.api(cfg).UpdateGear(ctx, gearID, fields)
	if err != nil {
		uc.logger.Warn("Failed to update gear", slog.String("gear_id", gearID), slog.Any("error", err))
		return gearErrorResponse(err)
	}

	result := gearResult(g)
	if g.Distance != nil || g.MovingTime != nil {
		result["usage"] = gearUsage(g)
	}

	return domain.Response{
		Data:     result,
		Metadata: map[string]any{"type": "gear_updated", "message": "Gear item updated successfully"},
	}.Build()
}

// Delete removes a gear item and its reminders.
func (uc *GearUseCase) Delete(ctx context.Context, cfg *configs.Config, gearID string) string {
	if err := uc.api(cfg).DeleteGear(ctx, gearID); err != nil {
		uc.logger.Warn("Failed to delete gear", slog.String("gear_id", gearID), slog.Any("error", err))
		return gearErrorResponse(err)
	}

	return domain.Response{
		Data:     map[string]any{"gear_id": gearID, "deleted": true},
		Metadata: map[string]any{"type": "gear_deleted", "message": "Gear item deleted successfully"},
	}.Build()
}

// CreateReminder adds a maintenance reminder to a gear item. distanceAlert is
// in kilometers, timeAlert in hours; at least one must be set.
func (uc *GearUseCase) CreateReminder(ctx context.Context, cfg *configs.Config, gearID, text string, distanceAlert *float64, timeAlert *int) string {
	fields := map[string]any{"text": text}
	// The API stores alerts in meters and seconds.
	if distanceAlert != nil {
		fields["distance_alert"] = int(*distanceAlert * 1000)
	}
	if timeAlert != nil {
		fields["time_alert"] = *timeAlert * 3600
	}

	if distanceAlert == nil && timeAlert == nil {
		return validationError("Must specify at least one alert threshold (distance_alert or time_alert)")
	}

	r, err := uc.api(cfg).CreateGearReminder(ctx, gearID, fields)
	if err != nil {
		uc.logger.Warn("Failed to create gear reminder", slog.String("gear_id", gearID), slog.Any("error", err))
		return gearErrorResponse(err)
	}

	result := map[string]any{
		"id":      r.ID,
		"gear_id": gearID,
		"text":    r.Text,
	}
	if r.DistanceAlert != nil {
		result["alert_every_km"] = round2(*r.DistanceAlert / 1000)
	}
	if r.TimeAlert != nil {
		result["alert_every_hours"] = *r.TimeAlert / 3600
	}

	return domain.Response{
		Data:     result,
		Metadata: map[string]any{"type": "reminder_created", "message": "Gear reminder created successfully"},
	}.Build()
}

// UpdateReminder modifies the provided fields of a maintenance reminder.
func (uc *GearUseCase) UpdateReminder(ctx context.Context, cfg *configs.Config, gearID string, reminderID int, text *string, distanceAlert *float64, timeAlert *int) string {
	fields := map[string]any{}
	if text != nil {
		fields["text"] = *text
	}
	if distanceAlert != nil {
		fields["distance_alert"] = int(*distanceAlert * 1000)
	}
	if timeAlert != nil {
		fields["time_alert"] = *timeAlert * 3600
	}

	if len(fields) == 0 {
		return validationError("No fields provided to update")
	}

	r, err := uc.api(cfg).UpdateGearReminder(ctx, gearID, reminderID, fields)
	if err != nil {
		uc.logger.Warn("Failed to update gear reminder", slog.Int("reminder_id", reminderID), slog.Any("error", err))
		return gearErrorResponse(err)
	}

	result := map[string]any{
		"id":      r.ID,
		"gear_id": gearID,
		"text":    r.Text,
	}
	if r.DistanceAlert != nil {
		result["alert_every_km"] = round2(*r.DistanceAlert / 1000)
	}
	if r.TimeAlert != nil {
		result["alert_every_hours"] = *r.TimeAlert / 3600
	}
	if r.IsDue != nil {
		result["is_due"] = *r.IsDue
	}
	if r.DueDistance != nil {
		result["due_in_km"] = round2(*r.DueDistance / 1000)
	}
	if r.DueTime != nil {
		result["due_in_hours"] = *r.DueTime / 3600
	}

	return domain.Response{
		Data:     result,
		Metadata: map[string]any{"type": "reminder_updated", "message": "Gear reminder updated successfully"},
	}.Build()
}
