package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"intervals-icu-mcp/configs"
	"intervals-icu-mcp/internal/adapter/outbound/icu"
	"intervals-icu-mcp/internal/domain"
)

// Listing tools never return more than this many activities per call.
const maxActivityLimit = 100

// ActivitiesUseCase implements the activity listing, search and mutation
// tools.
type ActivitiesUseCase struct {
	api    func(cfg *configs.Config) ActivitiesAPI
	logger *slog.Logger
}

func NewActivitiesUseCase(api func(cfg *configs.Config) ActivitiesAPI, logger *slog.Logger) *ActivitiesUseCase {
	return &ActivitiesUseCase{api: api, logger: logger.With("component", "activities_usecase")}
}

func activityName(a icu.Activity) string {
	if a.Name == "" {
		return "Untitled"
	}
	return a.Name
}

func activitySummary(a icu.Activity) map[string]any {
	item := map[string]any{
		"id":         a.ID,
		"name":       activityName(a),
		"start_date": a.StartDateLocal,
		"type":       a.Type,
	}
	putF(item, "distance_meters", a.Distance)
	putI(item, "moving_time_seconds", a.MovingTime)
	return item
}

// GetRecent lists activities from the last daysBack days, newest first as
// delivered by the API.
func (uc *ActivitiesUseCase) GetRecent(ctx context.Context, cfg *configs.Config, limit, daysBack int, athleteID string) string {
	oldest := timeNow().AddDate(0, 0, -daysBack).Format(dateLayout)
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	activities, err := uc.api(cfg).GetActivities(ctx, athleteID, oldest, "", limit)
	if err != nil {
		uc.logger.Warn("Failed to list activities", slog.Any("error", err))
		return apiErrorResponse(err)
	}

	if len(activities) == 0 {
		return domain.Response{
			Data:     map[string]any{"activities": []any{}, "count": 0},
			Metadata: map[string]any{"message": "No activities found"},
		}.Build()
	}

	items := make([]map[string]any, 0, len(activities))
	for _, a := range activities {
		item := activitySummary(a)
		putF(item, "elevation_gain_meters", a.TotalElevationGain)
		putF(item, "average_watts", a.AverageWatts)
		putF(item, "normalized_power", a.NormalizedPower)
		putF(item, "average_heartrate", a.AverageHeartrate)
		putF(item, "average_cadence", a.AverageCadence)
		putF(item, "training_load", a.ICUTrainingLoad)
		putF(item, "intensity_factor", a.ICUIntensity)
		items = append(items, item)
	}

	return domain.Response{
		Data:      map[string]any{"activities": items, "count": len(items)},
		QueryType: "recent_activities",
	}.Build()
}

// GetDetails returns the full metric set for one activity.
func (uc *ActivitiesUseCase) GetDetails(ctx context.Context, cfg *configs.Config, activityID string) string {
	activity, err := uc.api(cfg).GetActivity(ctx, activityID)
	if err != nil {
		uc.logger.Warn("Failed to fetch activity", slog.String("activity_id", activityID), slog.Any("error", err))
		return apiErrorResponse(err)
	}
	a := *activity

	data := map[string]any{
		"id":         a.ID,
		"name":       activityName(a),
		"type":       a.Type,
		"start_date": a.StartDateLocal,
	}
	putS(data, "description", a.Description)
	putI(data, "moving_time_seconds", a.MovingTime)
	putI(data, "elapsed_time_seconds", a.ElapsedTime)
	putF(data, "distance_meters", a.Distance)
	putF(data, "elevation_gain_meters", a.TotalElevationGain)
	putF(data, "average_speed_meters_per_sec", a.AverageSpeed)
	putF(data, "max_speed_meters_per_sec", a.MaxSpeed)

	power := map[string]any{}
	putF(power, "average", a.AverageWatts)
	putF(power, "normalized", a.NormalizedPower)
	putF(power, "weighted_average", a.WeightedAverageWatts)
	putF(power, "max", a.MaxWatts)
	if a.VariabilityIndex != 0 {
		power["variability_index"] = round2(a.VariabilityIndex)
	}
	if a.EfficiencyFactor != 0 {
		power["efficiency_factor"] = round2(a.EfficiencyFactor)
	}
	if len(power) > 0 {
		data["power"] = power
	}

	hr := map[string]any{}
	putF(hr, "average", a.AverageHeartrate)
	putF(hr, "max", a.MaxHeartrate)
	if len(hr) > 0 {
		data["heart_rate"] = hr
	}

	cadence := map[string]any{}
	putF(cadence, "average", a.AverageCadence)
	putF(cadence, "max", a.MaxCadence)
	if len(cadence) > 0 {
		data["cadence"] = cadence
	}

	training := map[string]any{}
	putF(training, "training_load", a.ICUTrainingLoad)
	putF(training, "intensity_factor", a.ICUIntensity)
	putF0(training, "tss", a.TSS)
	putF0(training, "hrss", a.HRSS)
	putF0(training, "trimp", a.TRIMP)
	if len(training) > 0 {
		data["training"] = training
	}

	subjective := map[string]any{}
	putI(subjective, "feel", intv(a.Feel))
	putI(subjective, "rpe", intv(a.PerceivedExertion))
	if len(subjective) > 0 {
		data["subjective"] = subjective
	}

	other := map[string]any{}
	putI(other, "calories", a.Calories)
	putS(other, "device", a.DeviceName)
	if boolv(a.Trainer) || a.Indoor {
		other["indoor"] = true
	}
	if boolv(a.Commute) {
		other["commute"] = true
	}
	if len(other) > 0 {
		data["other"] = other
	}

	return domain.Response{Data: data, QueryType: "activity_details"}.Build()
}

// Search finds activities by name or tag and returns compact summaries.
func (uc *ActivitiesUseCase) Search(ctx context.Context, cfg *configs.Config, query string, limit int, athleteID string) string {
	if isBlank(query) {
		return validationError("Search query cannot be empty")
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	results, err := uc.api(cfg).SearchActivities(ctx, athleteID, query, limit)
	if err != nil {
		uc.logger.Warn("Activity search failed", slog.Any("error", err))
		return apiErrorResponse(err)
	}

	if len(results) == 0 {
		return domain.Response{
			Data:     map[string]any{"activities": []any{}, "count": 0, "query": query},
			Metadata: map[string]any{"message": fmt.Sprintf("No activities found matching '%s'", query)},
		}.Build()
	}

	items := make([]map[string]any, 0, len(results))
	for _, a := range results {
		items = append(items, activitySummary(a))
	}

	return domain.Response{
		Data:      map[string]any{"activities": items, "count": len(items), "query": query},
		QueryType: "search_activities",
	}.Build()
}

// SearchFull is Search with the complete metric set per match.
func (uc *ActivitiesUseCase) SearchFull(ctx context.Context, cfg *configs.Config, query string, limit int) string {
	if isBlank(query) {
		return validationError("Search query cannot be empty")
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	results, err := uc.api(cfg).SearchActivities(ctx, "", query, limit)
	if err != nil {
		uc.logger.Warn("Activity search failed", slog.Any("error", err))
		return apiErrorResponse(err)
	}

	if len(results) == 0 {
		return domain.Response{
			Data:     map[string]any{"activities": []any{}, "count": 0, "query": query},
			Metadata: map[string]any{"message": fmt.Sprintf("No activities found matching '%s'", query)},
		}.Build()
	}

	items := make([]map[string]any, 0, len(results))
	for _, a := range results {
		item := map[string]any{
			"id":         a.ID,
			"name":       activityName(a),
			"type":       a.Type,
			"start_date": a.StartDateLocal,
		}
		putF(item, "distance_meters", a.Distance)
		putI(item, "moving_time_seconds", a.MovingTime)
		putF(item, "elevation_gain_meters", a.TotalElevationGain)

		performance := map[string]any{}
		putF(performance, "average_watts", a.AverageWatts)
		putF(performance, "normalized_power", a.NormalizedPower)
		putF(performance, "average_heartrate", a.AverageHeartrate)
		putF(performance, "average_cadence", a.AverageCadence)
		if len(performance) > 0 {
			item["performance"] = performance
		}

		putF(item, "training_load", a.ICUTrainingLoad)
		putF(item, "intensity_factor", a.ICUIntensity)
		items = append(items, item)
	}

	return domain.Response{
		Data:      map[string]any{"activities": items, "count": len(items), "query": query},
		QueryType: "search_activities_full",
	}.Build()
}

// UpdateActivityParams carries the optional fields of the update tool; nil
// means leave unchanged.
type UpdateActivityParams struct {
	Name              *string
	Description       *string
	Type              *string
	Trainer           *bool
	Commute           *bool
	Feel              *int
	PerceivedExertion *int
}

// Update modifies the provided metadata fields of an activity.
func (uc *ActivitiesUseCase) Update(ctx context.Context, cfg *configs.Config, activityID string, params UpdateActivityParams) string {
	fields := map[string]any{}
	if params.Name != nil {
		fields["name"] = *params.Name
	}
	if params.Description != nil {
		fields["description"] = *params.Description
	}
	if params.Type != nil {
		fields["type"] = *params.Type
	}
	if params.Trainer != nil {
		fields["trainer"] = *params.Trainer
	}
	if params.Commute != nil {
		fields["commute"] = *params.Commute
	}
	if params.Feel != nil {
		fields["feel"] = *params.Feel
	}
	if params.PerceivedExertion != nil {
		fields["perceived_exertion"] = *params.PerceivedExertion
	}

	if len(fields) == 0 {
		return validationError("No fields provided to update. Please specify at least one field to change.")
	}

	activity, err := uc.api(cfg).UpdateActivity(ctx, activityID, fields)
	if err != nil {
		uc.logger.Warn("Failed to update activity", slog.String("activity_id", activityID), slog.Any("error", err))
		return apiErrorResponse(err)
	}

	result := map[string]any{
		"id":         activity.ID,
		"name":       activityName(*activity),
		"type":       activity.Type,
		"start_date": activity.StartDateLocal,
	}
	putS(result, "description", activity.Description)
	if activity.Trainer != nil {
		result["trainer"] = *activity.Trainer
	}
	if activity.Commute != nil {
		result["commute"] = *activity.Commute
	}
	if activity.Feel != nil {
		result["feel"] = *activity.Feel
	}
	if activity.PerceivedExertion != nil {
		result["rpe"] = *activity.PerceivedExertion
	}

	return domain.Response{
		Data:      result,
		QueryType: "update_activity",
		Metadata:  map[string]any{"message": fmt.Sprintf("Successfully updated activity %s", activityID)},
	}.Build()
}

// Delete removes an activity permanently.
func (uc *ActivitiesUseCase) Delete(ctx context.Context, cfg *configs.Config, activityID string) string {
	if err := uc.api(cfg).DeleteActivity(ctx, activityID); err != nil {
		uc.logger.Warn("Failed to delete activity", slog.String("activity_id", activityID), slog.Any("error", err))
		return apiErrorResponse(err)
	}
	return domain.Response{
		Data:      map[string]any{"activity_id": activityID, "deleted": true},
		QueryType: "delete_activity",
		Metadata:  map[string]any{"message": fmt.Sprintf("Successfully deleted activity %s", activityID)},
	}.Build()
}

// Around returns the activities surrounding a reference activity, annotated
// with their position relative to it.
func (uc *ActivitiesUseCase) Around(ctx context.Context, cfg *configs.Config, activityID string, count int) string {
	activities, err := uc.api(cfg).GetActivitiesAround(ctx, activityID, count)
	if err != nil {
		uc.logger.Warn("Failed to fetch surrounding activities", slog.String("activity_id", activityID), slog.Any("error", err))
		return apiErrorResponse(err)
	}

	if len(activities) == 0 {
		return domain.Response{
			Data: map[string]any{
				"activities":            []any{},
				"count":                 0,
				"reference_activity_id": activityID,
			},
			Metadata: map[string]any{"message": "No activities found around the reference activity"},
		}.Build()
	}

	byID := make(map[string]icu.Activity, len(activities))
	refs := make([]domain.ActivityRef, 0, len(activities))
	for _, a := range activities {
		byID[a.ID] = a
		refs = append(refs, domain.ActivityRef{ID: a.ID, StartDateLocal: a.StartDateLocal})
	}
	timeline := domain.PositionAround(refs, activityID)

	items := make([]map[string]any, 0, len(timeline.Placements))
	for _, p := range timeline.Placements {
		a := byID[p.ID]
		item := map[string]any{
			"id":         a.ID,
			"name":       activityName(a),
			"type":       a.Type,
			"start_date": a.StartDateLocal,
		}
		switch {
		case p.IsReference:
			item["is_reference"] = true
		case p.Position == domain.PositionBefore:
			item["position"] = p.Position
			item["days_before"] = p.Offset
		case p.Position == domain.PositionAfter:
			item["position"] = p.Position
			item["days_after"] = p.Offset
		}
		putF(item, "distance_meters", a.Distance)
		putI(item, "moving_time_seconds", a.MovingTime)
		putF(item, "training_load", a.ICUTrainingLoad)

		performance := map[string]any{}
		putF(performance, "average_watts", a.AverageWatts)
		putF(performance, "average_heartrate", a.AverageHeartrate)
		if len(performance) > 0 {
			item["performance"] = performance
		}
		items = append(items, item)
	}

	data := map[string]any{
		"reference_activity_id": activityID,
		"activities":            items,
		"count":                 len(items),
	}
	if timeline.RefIndex >= 0 {
		data["reference_position"] = timeline.RefIndex
		data["activities_before"] = timeline.Before
		data["activities_after"] = timeline.After
	}

	return domain.Response{Data: data, QueryType: "activities_around"}.Build()
}
