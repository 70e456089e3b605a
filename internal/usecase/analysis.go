package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"intervals-icu-mcp/configs"
	"intervals-icu-mcp/internal/adapter/outbound/icu"
	"intervals-icu-mcp/internal/domain"
)

// Stream channels reported in a fixed order regardless of API ordering.
var knownStreamTypes = []string{
	"watts",
	"heartrate",
	"cadence",
	"velocity_smooth",
	"altitude",
	"distance",
	"time",
	"latlng",
	"temp",
	"moving",
	"grade_smooth",
}

// AnalysisUseCase implements the per-activity analysis tools: streams,
// intervals, best efforts, interval search and the four histograms.
type AnalysisUseCase struct {
	api    func(cfg *configs.Config) AnalysisAPI
	logger *slog.Logger
}

func NewAnalysisUseCase(api func(cfg *configs.Config) AnalysisAPI, logger *slog.Logger) *AnalysisUseCase {
	return &AnalysisUseCase{api: api, logger: logger.With("component", "analysis_usecase")}
}

// Streams returns the requested time-series channels of an activity.
func (uc *AnalysisUseCase) Streams(ctx context.Context, cfg *configs.Config, activityID string, types []string) string {
	streams, err := uc.api(cfg).GetActivityStreams(ctx, activityID, types)
	if err != nil {
		uc.logger.Warn("Failed to fetch streams", slog.String("activity_id", activityID), slog.Any("error", err))
		return apiErrorResponse(err)
	}

	byType := make(map[string][]any, len(streams))
	for _, s := range streams {
		byType[s.Type] = s.Data
	}

	var available []string
	streamsDict := map[string]any{}
	lengths := map[string]any{}
	for _, name := range knownStreamTypes {
		data, ok := byType[name]
		if !ok {
			continue
		}
		available = append(available, name)
		streamsDict[name] = data
		lengths[name] = len(data)
	}

	if len(available) == 0 {
		return domain.Response{
			Data:     map[string]any{"streams": map[string]any{}, "available_streams": []any{}},
			Metadata: map[string]any{"message": "No stream data available for this activity"},
		}.Build()
	}

	return domain.Response{
		Data: map[string]any{
			"activity_id":       activityID,
			"streams":           streamsDict,
			"available_streams": available,
			"stream_lengths":    lengths,
		},
		QueryType: "activity_streams",
	}.Build()
}

// Intervals returns the structured segments of a workout plus a work/rest
// summary.
func (uc *AnalysisUseCase) Intervals(ctx context.Context, cfg *configs.Config, activityID string) string {
	intervals, err := uc.api(cfg).GetActivityIntervals(ctx, activityID)
	if err != nil {
		uc.logger.Warn("Failed to fetch intervals", slog.String("activity_id", activityID), slog.Any("error", err))
		return apiErrorResponse(err)
	}

	if len(intervals) == 0 {
		return domain.Response{
			Data:     map[string]any{"intervals": []any{}, "count": 0, "activity_id": activityID},
			Metadata: map[string]any{"message": "No intervals found for this activity"},
		}.Build()
	}

	items := make([]map[string]any, 0, len(intervals))
	workCount, restCount, totalWorkTime := 0, 0, 0
	for _, iv := range intervals {
		item := map[string]any{
			"id":   iv.ID,
			"type": iv.Type,
		}
		if iv.Start != nil {
			item["start_seconds"] = *iv.Start
		}
		if iv.End != nil {
			item["end_seconds"] = *iv.End
		}
		if iv.Duration != nil {
			item["duration_seconds"] = *iv.Duration
		}

		performance := map[string]any{}
		putF(performance, "average_watts", iv.AverageWatts)
		putF(performance, "normalized_power", iv.NormalizedPower)
		putF(performance, "average_heartrate", iv.AverageHeartrate)
		putF(performance, "max_heartrate", iv.MaxHeartrate)
		putF(performance, "average_cadence", iv.AverageCadence)
		putF(performance, "average_speed_meters_per_sec", iv.AverageSpeed)
		putF(performance, "distance_meters", iv.Distance)
		if len(performance) > 0 {
			item["performance"] = performance
		}

		putS(item, "target_description", iv.Target)
		if iv.TargetMin != nil || iv.TargetMax != nil {
			item["target_range"] = map[string]any{
				"min": iv.TargetMin,
				"max": iv.TargetMax,
			}
		}
		items = append(items, item)

		upper := strings.ToUpper(iv.Type)
		switch {
		case strings.Contains(upper, "WORK"):
			workCount++
			totalWorkTime += intv(iv.Duration)
		case strings.Contains(upper, "REST"):
			restCount++
		}
	}

	summary := map[string]any{
		"total_intervals": len(intervals),
		"work_intervals":  workCount,
		"rest_intervals":  restCount,
	}
	if totalWorkTime > 0 {
		summary["total_work_time_seconds"] = totalWorkTime
	}

	return domain.Response{
		Data: map[string]any{
			"activity_id": activityID,
			"intervals":   items,
			"summary":     summary,
		},
		QueryType: "activity_intervals",
	}.Build()
}

// BestEfforts returns the peak performance windows of one activity.
func (uc *AnalysisUseCase) BestEfforts(ctx context.Context, cfg *configs.Config, activityID string) string {
	efforts, err := uc.api(cfg).GetBestEfforts(ctx, activityID)
	if err != nil {
		uc.logger.Warn("Failed to fetch best efforts", slog.String("activity_id", activityID), slog.Any("error", err))
		return apiErrorResponse(err)
	}

	if len(efforts) == 0 {
		return domain.Response{
			Data:     map[string]any{"best_efforts": []any{}, "count": 0, "activity_id": activityID},
			Metadata: map[string]any{"message": "No best efforts found for this activity"},
		}.Build()
	}

	items := make([]map[string]any, 0, len(efforts))
	for _, e := range efforts {
		item := map[string]any{
			"name":                 e.Name,
			"elapsed_time_seconds": e.ElapsedTime,
		}
		putI(item, "moving_time_seconds", e.MovingTime)
		putF(item, "distance_meters", e.Distance)

		performance := map[string]any{}
		putF(performance, "average_watts", e.AverageWatts)
		putF(performance, "normalized_power", e.NormalizedPower)
		putF(performance, "average_heartrate", e.AverageHeartrate)
		putF(performance, "average_cadence", e.AverageCadence)
		putF(performance, "average_speed_meters_per_sec", e.AverageSpeed)
		if len(performance) > 0 {
			item["performance"] = performance
		}

		if e.StartIndex != nil {
			item["start_index"] = *e.StartIndex
		}
		if e.EndIndex != nil {
			item["end_index"] = *e.EndIndex
		}
		items = append(items, item)
	}

	return domain.Response{
		Data: map[string]any{
			"activity_id":  activityID,
			"best_efforts": items,
			"count":        len(items),
		},
		QueryType: "best_efforts",
	}.Build()
}

// IntervalSearchParams narrows an interval search; zero values are unset.
type IntervalSearchParams struct {
	IntervalType string
	MinDuration  int
	MaxDuration  int
	Limit        int
}

// SearchIntervals finds comparable intervals across the activity history.
// Results come back as raw API objects; their shape varies per sport.
func (uc *AnalysisUseCase) SearchIntervals(ctx context.Context, cfg *configs.Config, params IntervalSearchParams) string {
	results, err := uc.api(cfg).SearchIntervals(ctx, params.IntervalType, params.MinDuration, params.MaxDuration, params.Limit)
	if err != nil {
		uc.logger.Warn("Interval search failed", slog.Any("error", err))
		return apiErrorResponse(err)
	}

	if len(results) == 0 {
		var criteria []string
		if params.IntervalType != "" {
			criteria = append(criteria, "type="+params.IntervalType)
		}
		if params.MinDuration != 0 {
			criteria = append(criteria, fmt.Sprintf("min_duration=%ds", params.MinDuration))
		}
		if params.MaxDuration != 0 {
			criteria = append(criteria, fmt.Sprintf("max_duration=%ds", params.MaxDuration))
		}
		criteriaStr := "your criteria"
		if len(criteria) > 0 {
			criteriaStr = strings.Join(criteria, ", ")
		}
		return domain.Response{
			Data:     map[string]any{"intervals": []any{}, "count": 0},
			Metadata: map[string]any{"message": "No intervals found matching " + criteriaStr},
		}.Build()
	}

	searchCriteria := map[string]any{
		"interval_type":        nil,
		"min_duration_seconds": nil,
		"max_duration_seconds": nil,
	}
	if params.IntervalType != "" {
		searchCriteria["interval_type"] = params.IntervalType
	}
	if params.MinDuration != 0 {
		searchCriteria["min_duration_seconds"] = params.MinDuration
	}
	if params.MaxDuration != 0 {
		searchCriteria["max_duration_seconds"] = params.MaxDuration
	}

	return domain.Response{
		Data: map[string]any{
			"intervals":       results,
			"count":           len(results),
			"search_criteria": searchCriteria,
		},
		QueryType: "interval_search",
	}.Build()
}

func toDomainBins(hist *icu.Histogram) []domain.Bin {
	bins := make([]domain.Bin, 0, len(hist.Bins))
	for _, b := range hist.Bins {
		bins = append(bins, domain.Bin{Min: b.Min, Max: b.Max, Count: b.Count, Secs: b.Secs})
	}
	return bins
}

// PowerHistogram returns the power distribution of one activity.
func (uc *AnalysisUseCase) PowerHistogram(ctx context.Context, cfg *configs.Config, activityID string) string {
	hist, err := uc.api(cfg).GetPowerHistogram(ctx, activityID)
	if err != nil {
		return apiErrorResponse(err)
	}
	if len(hist.Bins) == 0 {
		return emptyHistogramResponse(activityID, "No power histogram data available for this activity")
	}

	bins := make([]map[string]any, 0, len(hist.Bins))
	for _, f := range domain.FormatBins(toDomainBins(hist), domain.UnitPower) {
		bin := map[string]any{
			"power_range": map[string]any{"min_watts": int(f.Min), "max_watts": int(f.Max)},
			"count":       f.Count,
		}
		if f.Secs != nil {
			bin["time_seconds"] = *f.Secs
		}
		bins = append(bins, bin)
	}
	return histogramResponse(activityID, bins, hist, nil, "power_histogram")
}

// HRHistogram returns the heart rate distribution of one activity.
func (uc *AnalysisUseCase) HRHistogram(ctx context.Context, cfg *configs.Config, activityID string) string {
	hist, err := uc.api(cfg).GetHRHistogram(ctx, activityID)
	if err != nil {
		return apiErrorResponse(err)
	}
	if len(hist.Bins) == 0 {
		return emptyHistogramResponse(activityID, "No HR histogram data available for this activity")
	}

	bins := make([]map[string]any, 0, len(hist.Bins))
	for _, f := range domain.FormatBins(toDomainBins(hist), domain.UnitHR) {
		bin := map[string]any{
			"hr_range": map[string]any{"min_bpm": int(f.Min), "max_bpm": int(f.Max)},
			"count":    f.Count,
		}
		if f.Secs != nil {
			bin["time_seconds"] = *f.Secs
		}
		bins = append(bins, bin)
	}
	return histogramResponse(activityID, bins, hist, nil, "hr_histogram")
}

// PaceHistogram returns the pace distribution of one activity.
func (uc *AnalysisUseCase) PaceHistogram(ctx context.Context, cfg *configs.Config, activityID string) string {
	hist, err := uc.api(cfg).GetPaceHistogram(ctx, activityID)
	if err != nil {
		return apiErrorResponse(err)
	}
	if len(hist.Bins) == 0 {
		return emptyHistogramResponse(activityID, "No pace histogram data available for this activity")
	}

	bins := make([]map[string]any, 0, len(hist.Bins))
	for _, f := range domain.FormatBins(toDomainBins(hist), domain.UnitPace) {
		bin := map[string]any{
			"pace_range": map[string]any{
				"min_pace_min_per_km": f.Min,
				"max_pace_min_per_km": f.Max,
				"min_pace_formatted":  f.MinLabel,
				"max_pace_formatted":  f.MaxLabel,
			},
			"count": f.Count,
		}
		if f.Secs != nil {
			bin["time_seconds"] = *f.Secs
		}
		bins = append(bins, bin)
	}
	return histogramResponse(activityID, bins, hist, nil, "pace_histogram")
}

// GAPHistogram returns the grade-adjusted pace distribution of one activity.
func (uc *AnalysisUseCase) GAPHistogram(ctx context.Context, cfg *configs.Config, activityID string) string {
	hist, err := uc.api(cfg).GetGAPHistogram(ctx, activityID)
	if err != nil {
		return apiErrorResponse(err)
	}
	if len(hist.Bins) == 0 {
		return emptyHistogramResponse(activityID, "No GAP histogram data available for this activity")
	}

	bins := make([]map[string]any, 0, len(hist.Bins))
	for _, f := range domain.FormatBins(toDomainBins(hist), domain.UnitGAP) {
		bin := map[string]any{
			"gap_range": map[string]any{
				"min_gap_min_per_km": f.Min,
				"max_gap_min_per_km": f.Max,
				"min_gap_formatted":  f.MinLabel,
				"max_gap_formatted":  f.MaxLabel,
			},
			"count": f.Count,
		}
		if f.Secs != nil {
			bin["time_seconds"] = *f.Secs
		}
		bins = append(bins, bin)
	}
	extra := map[string]any{"note": "GAP (Grade Adjusted Pace) normalizes pace for elevation changes"}
	return histogramResponse(activityID, bins, hist, extra, "gap_histogram")
}

func emptyHistogramResponse(activityID, message string) string {
	return domain.Response{
		Data:     map[string]any{"histogram": []any{}, "activity_id": activityID},
		Metadata: map[string]any{"message": message},
	}.Build()
}

func histogramResponse(activityID string, bins []map[string]any, hist *icu.Histogram, extra map[string]any, queryType string) string {
	data := map[string]any{
		"activity_id":   activityID,
		"bins":          bins,
		"total_samples": hist.TotalCount,
	}
	if hist.TotalSecs != nil {
		data["total_time_seconds"] = *hist.TotalSecs
	}
	for k, v := range extra {
		data[k] = v
	}
	return domain.Response{Data: data, QueryType: queryType}.Build()
}
