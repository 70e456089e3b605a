package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"intervals-icu-mcp/configs"
	"intervals-icu-mcp/internal/adapter/outbound/icu"
	"intervals-icu-mcp/internal/domain"
)

var eventCategories = []string{"WORKOUT", "NOTE", "RACE", "GOAL"}

func validEventCategory(category string) bool {
	upper := strings.ToUpper(category)
	for _, c := range eventCategories {
		if upper == c {
			return true
		}
	}
	return false
}

func invalidCategoryMessage(prefix string) string {
	return prefix + "Invalid category. Must be one of: " + strings.Join(eventCategories, ", ")
}

// EventsUseCase implements the calendar event tools.
type EventsUseCase struct {
	api    func(cfg *configs.Config) EventsAPI
	logger *slog.Logger
}

func NewEventsUseCase(api func(cfg *configs.Config) EventsAPI, logger *slog.Logger) *EventsUseCase {
	return &EventsUseCase{api: api, logger: logger.With("component", "events_usecase")}
}

// eventResult is the common rendering for a calendar entry returned by the
// create/update/duplicate tools.
func eventResult(e *icu.Event) map[string]any {
	result := map[string]any{
		"id":         e.ID,
		"start_date": e.StartDateLocal,
		"name":       e.Name,
		"category":   e.Category,
	}
	putS(result, "description", e.Description)
	putS(result, "type", e.Type)
	putI(result, "duration_seconds", e.MovingTime)
	putF(result, "distance_meters", e.Distance)
	putI(result, "training_load", e.ICUTrainingLoad)
	return result
}

// CreateEventParams holds the optional planned-workout fields for Create.
type CreateEventParams struct {
	Description     string
	EventType       string
	DurationSeconds int
	DistanceMeters  float64
	TrainingLoad    int
}

// Create adds a planned workout, note, race or goal to the calendar.
func (uc *EventsUseCase) Create(ctx context.Context, cfg *configs.Config, startDate, name, category string, params CreateEventParams, athleteID string) string {
	if !validEventCategory(category) {
		return validationError(invalidCategoryMessage(""))
	}
	if !validDate(startDate) {
		return validationError("Invalid date format. Please use YYYY-MM-DD format.")
	}

	// The calendar API expects a full local datetime.
	fields := map[string]any{
		"start_date_local": startDate + "T00:00:00",
		"name":             name,
		"category":         strings.ToUpper(category),
	}
	putS(fields, "description", params.Description)
	putS(fields, "type", params.EventType)
	putI(fields, "moving_time", params.DurationSeconds)
	putF(fields, "distance", params.DistanceMeters)
	putI(fields, "icu_training_load", params.TrainingLoad)

	event, err := uc.api(cfg).CreateEvent(ctx, athleteID, fields)
	if err != nil {
		uc.logger.Warn("Failed to create event", slog.String("name", name), slog.Any("error", err))
		return apiErrorResponse(err)
	}

	return domain.Response{
		Data:      eventResult(event),
		QueryType: "create_event",
		Metadata:  map[string]any{"message": fmt.Sprintf("Successfully created %s: %s", strings.ToLower(category), name)},
	}.Build()
}

// UpdateEventParams carries the optional field updates; nil leaves a field
// unchanged.
type UpdateEventParams struct {
	Name            *string
	Description     *string
	StartDate       *string
	EventType       *string
	DurationSeconds *int
	DistanceMeters  *float64
	TrainingLoad    *int
}

// Update modifies the provided fields of an existing event.
func (uc *EventsUseCase) Update(ctx context.Context, cfg *configs.Config, eventID int, params UpdateEventParams, athleteID string) string {
	if params.StartDate != nil && *params.StartDate != "" && !validDate(*params.StartDate) {
		return validationError("Invalid date format. Please use YYYY-MM-DD format.")
	}

	fields := map[string]any{}
	if params.Name != nil {
		fields["name"] = *params.Name
	}
	if params.Description != nil {
		fields["description"] = *params.Description
	}
	if params.StartDate != nil {
		fields["start_date_local"] = *params.StartDate + "T00:00:00"
	}
	if params.EventType != nil {
		fields["type"] = *params.EventType
	}
	if params.DurationSeconds != nil {
		fields["moving_time"] = *params.DurationSeconds
	}
	if params.DistanceMeters != nil {
		fields["distance"] = *params.DistanceMeters
	}
	if params.TrainingLoad != nil {
		fields["icu_training_load"] = *params.TrainingLoad
	}

	if len(fields) == 0 {
		return validationError("No fields provided to update. Please specify at least one field to change.")
	}

	event, err := uc.api(cfg).UpdateEvent(ctx, athleteID, eventID, fields)
	if err != nil {
		uc.logger.Warn("Failed to update event", slog.Int("event_id", eventID), slog.Any("error", err))
		return apiErrorResponse(err)
	}

	return domain.Response{
		Data:      eventResult(event),
		QueryType: "update_event",
		Metadata:  map[string]any{"message": fmt.Sprintf("Successfully updated event %d", eventID)},
	}.Build()
}

// Delete permanently removes an event from the calendar.
func (uc *EventsUseCase) Delete(ctx context.Context, cfg *configs.Config, eventID int, athleteID string) string {
	if err := uc.api(cfg).DeleteEvent(ctx, athleteID, eventID); err != nil {
		uc.logger.Warn("Failed to delete event", slog.Int("event_id", eventID), slog.Any("error", err))
		return apiErrorResponse(err)
	}

	return domain.Response{
		Data:      map[string]any{"event_id": eventID, "deleted": true},
		QueryType: "delete_event",
		Metadata:  map[string]any{"message": fmt.Sprintf("Successfully deleted event %d", eventID)},
	}.Build()
}

// BulkCreate creates many events in one call. eventsJSON is a JSON array of
// event objects with at least start_date_local, name and category.
func (uc *EventsUseCase) BulkCreate(ctx context.Context, cfg *configs.Config, eventsJSON, athleteID string) string {
	var parsed any
	if err := json.Unmarshal([]byte(eventsJSON), &parsed); err != nil {
		return validationError(fmt.Sprintf("Invalid JSON format: %s", err))
	}
	rawEvents, ok := parsed.([]any)
	if !ok {
		return validationError("Events must be a JSON array")
	}

	events := make([]map[string]any, 0, len(rawEvents))
	for i, raw := range rawEvents {
		event, ok := raw.(map[string]any)
		if !ok {
			return validationError(fmt.Sprintf("Event %d: must be a JSON object", i))
		}
		if _, ok := event["start_date_local"]; !ok {
			return validationError(fmt.Sprintf("Event %d: Missing required field 'start_date_local'", i))
		}
		if _, ok := event["name"]; !ok {
			return validationError(fmt.Sprintf("Event %d: Missing required field 'name'", i))
		}
		if _, ok := event["category"]; !ok {
			return validationError(fmt.Sprintf("Event %d: Missing required field 'category'", i))
		}
		category, ok := event["category"].(string)
		if !ok || !validEventCategory(category) {
			return validationError(invalidCategoryMessage(fmt.Sprintf("Event %d: ", i)))
		}
		event["category"] = strings.ToUpper(category)

		// Bare dates get the midnight suffix the calendar API requires.
		if dateStr, ok := event["start_date_local"].(string); ok && !strings.Contains(dateStr, "T") {
			if !validDate(dateStr) {
				return validationError(fmt.Sprintf("Event %d: Invalid date format. Please use YYYY-MM-DD format.", i))
			}
			event["start_date_local"] = dateStr + "T00:00:00"
		}
		events = append(events, event)
	}

	created, err := uc.api(cfg).BulkCreateEvents(ctx, athleteID, events)
	if err != nil {
		uc.logger.Warn("Failed to bulk create events", slog.Int("count", len(events)), slog.Any("error", err))
		return apiErrorResponse(err)
	}

	results := make([]map[string]any, 0, len(created))
	for i := range created {
		results = append(results, eventResult(&created[i]))
	}

	return domain.Response{
		Data:      map[string]any{"events": results},
		QueryType: "bulk_create_events",
		Metadata: map[string]any{
			"message": fmt.Sprintf("Successfully created %d events", len(created)),
			"count":   len(created),
		},
	}.Build()
}

// BulkDelete deletes many events in one call. idsJSON is a JSON array of
// event IDs.
func (uc *EventsUseCase) BulkDelete(ctx context.Context, cfg *configs.Config, idsJSON, athleteID string) string {
	var parsed any
	if err := json.Unmarshal([]byte(idsJSON), &parsed); err != nil {
		return validationError(fmt.Sprintf("Invalid JSON format: %s", err))
	}
	rawIDs, ok := parsed.([]any)
	if !ok {
		return validationError("Event IDs must be a JSON array")
	}
	if len(rawIDs) == 0 {
		return validationError("Must provide at least one event ID to delete")
	}

	ids := make([]int, 0, len(rawIDs))
	for _, raw := range rawIDs {
		n, ok := raw.(float64)
		if !ok {
			return validationError("Event IDs must be a JSON array")
		}
		ids = append(ids, int(n))
	}

	result, err := uc.api(cfg).BulkDeleteEvents(ctx, athleteID, ids)
	if err != nil {
		uc.logger.Warn("Failed to bulk delete events", slog.Int("count", len(ids)), slog.Any("error", err))
		return apiErrorResponse(err)
	}

	return domain.Response{
		Data: map[string]any{
			"deleted_count": len(ids),
			"event_ids":     ids,
			"result":        result,
		},
		QueryType: "bulk_delete_events",
		Metadata:  map[string]any{"message": fmt.Sprintf("Successfully deleted %d events", len(ids))},
	}.Build()
}

// Duplicate copies an event to a new date, keeping its other properties.
func (uc *EventsUseCase) Duplicate(ctx context.Context, cfg *configs.Config, eventID int, newDate, athleteID string) string {
	if !validDate(newDate) {
		return validationError("Invalid date format. Please use YYYY-MM-DD format.")
	}

	event, err := uc.api(cfg).DuplicateEvent(ctx, athleteID, eventID, newDate)
	if err != nil {
		uc.logger.Warn("Failed to duplicate event", slog.Int("event_id", eventID), slog.Any("error", err))
		return apiErrorResponse(err)
	}

	result := eventResult(event)
	result["original_event_id"] = eventID

	return domain.Response{
		Data:      result,
		QueryType: "duplicate_event",
		Metadata: map[string]any{
			"message":           fmt.Sprintf("Successfully duplicated event %d to %s", eventID, newDate),
			"original_event_id": eventID,
		},
	}.Build()
}
