package usecase

import (
	"context"

	"intervals-icu-mcp/internal/adapter/outbound/icu"
)

// Outbound ports, grouped by tool family. The concrete icu.Client satisfies
// all of them; tests substitute mocks per family.

// AthleteAPI reads the athlete profile and training load numbers.
type AthleteAPI interface {
	GetAthlete(ctx context.Context) (*icu.Athlete, error)
}

// ActivitiesAPI covers activity listing, search and mutation.
type ActivitiesAPI interface {
	GetActivities(ctx context.Context, athleteID, oldest, newest string, limit int) ([]icu.Activity, error)
	SearchActivities(ctx context.Context, athleteID, query string, limit int) ([]icu.Activity, error)
	GetActivity(ctx context.Context, activityID string) (*icu.Activity, error)
	UpdateActivity(ctx context.Context, activityID string, fields map[string]any) (*icu.Activity, error)
	DeleteActivity(ctx context.Context, activityID string) error
	GetActivitiesAround(ctx context.Context, activityID string, count int) ([]icu.Activity, error)
}

// FilesAPI downloads activity files in their original and converted formats.
type FilesAPI interface {
	DownloadActivityFile(ctx context.Context, activityID string) ([]byte, error)
	DownloadFITFile(ctx context.Context, activityID string) ([]byte, error)
	DownloadGPXFile(ctx context.Context, activityID string) ([]byte, error)
}

// AnalysisAPI covers per-activity time series, intervals, efforts and
// distribution histograms.
type AnalysisAPI interface {
	GetActivityStreams(ctx context.Context, activityID string, types []string) ([]icu.Stream, error)
	GetActivityIntervals(ctx context.Context, activityID string) ([]icu.Interval, error)
	GetBestEfforts(ctx context.Context, activityID string) ([]icu.BestEffort, error)
	SearchIntervals(ctx context.Context, intervalType string, minDuration, maxDuration, limit int) ([]map[string]any, error)
	GetPowerHistogram(ctx context.Context, activityID string) (*icu.Histogram, error)
	GetHRHistogram(ctx context.Context, activityID string) (*icu.Histogram, error)
	GetPaceHistogram(ctx context.Context, activityID string) (*icu.Histogram, error)
	GetGAPHistogram(ctx context.Context, activityID string) (*icu.Histogram, error)
}

// CurvesAPI reads athlete-level best-effort curves.
type CurvesAPI interface {
	GetPowerCurves(ctx context.Context, oldest string) ([]icu.CurveEntry, error)
	GetHRCurves(ctx context.Context, oldest string) ([]icu.CurveEntry, error)
	GetPaceCurves(ctx context.Context, oldest string, useGAP bool) ([]icu.CurveEntry, error)
}

// WellnessAPI reads and upserts daily wellness records.
type WellnessAPI interface {
	GetWellness(ctx context.Context, oldest, newest string) ([]icu.Wellness, error)
	GetWellnessForDate(ctx context.Context, date string) (*icu.Wellness, error)
	UpdateWellness(ctx context.Context, fields map[string]any) (*icu.Wellness, error)
}

// EventsAPI manages calendar entries.
type EventsAPI interface {
	CreateEvent(ctx context.Context, athleteID string, fields map[string]any) (*icu.Event, error)
	UpdateEvent(ctx context.Context, athleteID string, eventID int, fields map[string]any) (*icu.Event, error)
	DeleteEvent(ctx context.Context, athleteID string, eventID int) error
	BulkCreateEvents(ctx context.Context, athleteID string, events []map[string]any) ([]icu.Event, error)
	BulkDeleteEvents(ctx context.Context, athleteID string, eventIDs []int) (map[string]any, error)
	DuplicateEvent(ctx context.Context, athleteID string, eventID int, newDate string) (*icu.Event, error)
}

// GearAPI manages equipment and maintenance reminders.
type GearAPI interface {
	GetGear(ctx context.Context) ([]icu.Gear, error)
	CreateGear(ctx context.Context, fields map[string]any) (*icu.Gear, error)
	UpdateGear(ctx context.Context, gearID string, fields map[string]any) (*icu.Gear, error)
	DeleteGear(ctx context.Context, gearID string) error
	CreateGearReminder(ctx context.Context, gearID string, fields map[string]any) (*icu.GearReminder, error)
	UpdateGearReminder(ctx context.Context, gearID string, reminderID int, fields map[string]any) (*icu.GearReminder, error)
}

// WorkoutsAPI browses the workout library.
type WorkoutsAPI interface {
	GetWorkoutFolders(ctx context.Context) ([]icu.WorkoutFolder, error)
	GetWorkoutsInFolder(ctx context.Context, folderID int) ([]icu.Workout, error)
}
