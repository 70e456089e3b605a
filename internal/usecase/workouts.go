package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"intervals-icu-mcp/configs"
	"intervals-icu-mcp/internal/domain"
)

// WorkoutsUseCase implements the workout library browsing tools.
type WorkoutsUseCase struct {
	api    func(cfg *configs.Config) WorkoutsAPI
	logger *slog.Logger
}

func NewWorkoutsUseCase(api func(cfg *configs.Config) WorkoutsAPI, logger *slog.Logger) *WorkoutsUseCase {
	return &WorkoutsUseCase{api: api, logger: logger.With("component", "workouts_usecase")}
}

// Library lists workout folders and training plans with summary counts.
func (uc *WorkoutsUseCase) Library(ctx context.Context, cfg *configs.Config) string {
	folders, err := uc.api(cfg).GetWorkoutFolders(ctx)
	if err != nil {
		uc.logger.Warn("Failed to fetch workout folders", slog.Any("error", err))
		return apiErrorResponse(err)
	}

	if len(folders) == 0 {
		return domain.Response{
			Data: map[string]any{"folders": []any{}, "count": 0},
			Metadata: map[string]any{
				"message": "No workout folders found. Create folders in Intervals.icu to organize your workouts.",
			},
		}.Build()
	}

	items := make([]map[string]any, 0, len(folders))
	trainingPlans := 0
	totalWorkouts := 0
	for i := range folders {
		f := &folders[i]
		item := map[string]any{
			"id":   f.ID,
			"name": f.Name,
		}
		putS(item, "description", f.Description)
		putI(item, "num_workouts", f.NumWorkouts)
		putS(item, "start_date", f.StartDateLocal)
		// A folder with a duration is a training plan.
		if f.DurationWeeks != nil {
			trainingPlans++
			putI(item, "duration_weeks", *f.DurationWeeks)
		}
		if f.HoursPerWeekMin != 0 || f.HoursPerWeekMax != 0 {
			item["hours_per_week"] = map[string]any{
				"min": f.HoursPerWeekMin,
				"max": f.HoursPerWeekMax,
			}
		}
		totalWorkouts += f.NumWorkouts
		items = append(items, item)
	}

	return domain.Response{
		Data: map[string]any{
			"folders": items,
			"summary": map[string]any{
				"total_folders":   len(folders),
				"training_plans":  trainingPlans,
				"regular_folders": len(folders) - trainingPlans,
				"total_workouts":  totalWorkouts,
			},
		},
		QueryType: "workout_library",
	}.Build()
}

// InFolder lists the workouts of one folder with per-folder totals.
func (uc *WorkoutsUseCase) InFolder(ctx context.Context, cfg *configs.Config, folderID int) string {
	workouts, err := uc.api(cfg).GetWorkoutsInFolder(ctx, folderID)
	if err != nil {
		uc.logger.Warn("Failed to fetch workouts", slog.Int("folder_id", folderID), slog.Any("error", err))
		return apiErrorResponse(err)
	}

	if len(workouts) == 0 {
		return domain.Response{
			Data: map[string]any{"workouts": []any{}, "count": 0, "folder_id": folderID},
			Metadata: map[string]any{
				"message": fmt.Sprintf("No workouts found in folder %d", folderID),
			},
		}.Build()
	}

	items := make([]map[string]any, 0, len(workouts))
	totalDuration := 0
	totalLoad := 0.0
	indoorCount := 0
	for i := range workouts {
		w := &workouts[i]
		item := map[string]any{
			"id":   w.ID,
			"name": w.Name,
		}
		putS(item, "description", w.Description)
		putS(item, "type", w.Type)

		metrics := map[string]any{}
		putI(metrics, "duration_seconds", w.MovingTime)
		putF(metrics, "distance_meters", w.Distance)
		putF(metrics, "training_load", w.ICUTrainingLoad)
		putF(metrics, "intensity_factor", w.ICUIntensity)
		putF(metrics, "joules", w.Joules)
		putF(metrics, "joules_above_ftp", w.JoulesAboveFTP)
		if len(metrics) > 0 {
			item["metrics"] = metrics
		}

		if w.Indoor != nil {
			item["indoor"] = *w.Indoor
			if *w.Indoor {
				indoorCount++
			}
		}
		putS(item, "color", w.Color)

		totalDuration += w.MovingTime
		totalLoad += w.ICUTrainingLoad
		items = append(items, item)
	}

	return domain.Response{
		Data: map[string]any{
			"folder_id": folderID,
			"workouts":  items,
			"summary": map[string]any{
				"total_workouts":         len(workouts),
				"total_duration_seconds": totalDuration,
				"total_training_load":    totalLoad,
				"indoor_workouts":        indoorCount,
			},
		},
		QueryType: "folder_workouts",
	}.Build()
}
