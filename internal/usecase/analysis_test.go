package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intervals-icu-mcp/configs"
	"intervals-icu-mcp/internal/adapter/outbound/icu"
)

type fakeAnalysisAPI struct {
	getActivityStreams   func(ctx context.Context, activityID string, types []string) ([]icu.Stream, error)
	getActivityIntervals func(ctx context.Context, activityID string) ([]icu.Interval, error)
	getBestEfforts       func(ctx context.Context, activityID string) ([]icu.BestEffort, error)
	searchIntervals      func(ctx context.Context, intervalType string, minDuration, maxDuration, limit int) ([]map[string]any, error)
	getPowerHistogram    func(ctx context.Context, activityID string) (*icu.Histogram, error)
	getHRHistogram       func(ctx context.Context, activityID string) (*icu.Histogram, error)
	getPaceHistogram     func(ctx context.Context, activityID string) (*icu.Histogram, error)
	getGAPHistogram      func(ctx context.Context, activityID string) (*icu.Histogram, error)
}

func (f *fakeAnalysisAPI) GetActivityStreams(ctx context.Context, activityID string, types []string) ([]icu.Stream, error) {
	return f.getActivityStreams(ctx, activityID, types)
}

func (f *fakeAnalysisAPI) GetActivityIntervals(ctx context.Context, activityID string) ([]icu.Interval, error) {
	return f.getActivityIntervals(ctx, activityID)
}

func (f *fakeAnalysisAPI) GetBestEfforts(ctx context.Context, activityID string) ([]icu.BestEffort, error) {
	return f.getBestEfforts(ctx, activityID)
}

func (f *fakeAnalysisAPI) SearchIntervals(ctx context.Context, intervalType string, minDuration, maxDuration, limit int) ([]map[string]any, error) {
	return f.searchIntervals(ctx, intervalType, minDuration, maxDuration, limit)
}

func (f *fakeAnalysisAPI) GetPowerHistogram(ctx context.Context, activityID string) (*icu.Histogram, error) {
	return f.getPowerHistogram(ctx, activityID)
}

func (f *fakeAnalysisAPI) GetHRHistogram(ctx context.Context, activityID string) (*icu.Histogram, error) {
	return f.getHRHistogram(ctx, activityID)
}

func (f *fakeAnalysisAPI) GetPaceHistogram(ctx context.Context, activityID string) (*icu.Histogram, error) {
	return f.getPaceHistogram(ctx, activityID)
}

func (f *fakeAnalysisAPI) GetGAPHistogram(ctx context.Context, activityID string) (*icu.Histogram, error) {
	return f.getGAPHistogram(ctx, activityID)
}

func newAnalysisUC(api *fakeAnalysisAPI) *AnalysisUseCase {
	return NewAnalysisUseCase(func(*configs.Config) AnalysisAPI { return api }, testLogger())
}

func TestStreamsFixedOrder(t *testing.T) {
	uc := newAnalysisUC(&fakeAnalysisAPI{
		getActivityStreams: func(context.Context, string, []string) ([]icu.Stream, error) {
			return []icu.Stream{
				{Type: "heartrate", Data: []any{140.0, 145.0, 150.0}},
				{Type: "watts", Data: []any{200.0, 210.0}},
				{Type: "unknown_channel", Data: []any{1.0}},
			}, nil
		},
	})

	data := dataOf(t, uc.Streams(context.Background(), testConfig(), "a1", nil))
	available := data["available_streams"].([]any)
	// watts sorts ahead of heartrate in the canonical channel order.
	assert.Equal(t, []any{"watts", "heartrate"}, available)

	lengths := data["stream_lengths"].(map[string]any)
	assert.Equal(t, float64(2), lengths["watts"])
	assert.Equal(t, float64(3), lengths["heartrate"])

	streams := data["streams"].(map[string]any)
	assert.NotContains(t, streams, "unknown_channel")
}

func TestStreamsEmpty(t *testing.T) {
	uc := newAnalysisUC(&fakeAnalysisAPI{
		getActivityStreams: func(context.Context, string, []string) ([]icu.Stream, error) { return nil, nil },
	})

	env := decodeEnvelope(t, uc.Streams(context.Background(), testConfig(), "a1", nil))
	data := env["data"].(map[string]any)
	assert.Equal(t, map[string]any{}, data["streams"])
	assert.Equal(t, []any{}, data["available_streams"])
	metadata := env["metadata"].(map[string]any)
	assert.Equal(t, "No stream data available for this activity", metadata["message"])
}

func TestIntervalsWorkRestSummary(t *testing.T) {
	uc := newAnalysisUC(&fakeAnalysisAPI{
		getActivityIntervals: func(context.Context, string) ([]icu.Interval, error) {
			return []icu.Interval{
				{ID: 1, Type: "Work", Duration: iptr(300), AverageWatts: 280,
					Target: "Z4", TargetMin: fptr(260), TargetMax: fptr(290)},
				{ID: 2, Type: "Recovery rest", Duration: iptr(120)},
				{ID: 3, Type: "Work", Duration: iptr(300), AverageWatts: 278},
				{ID: 4, Type: "Warmup"},
			}, nil
		},
	})

	data := dataOf(t, uc.Intervals(context.Background(), testConfig(), "a1"))
	items := data["intervals"].([]any)
	require.Len(t, items, 4)

	first := items[0].(map[string]any)
	assert.Equal(t, float64(300), first["duration_seconds"])
	assert.Equal(t, "Z4", first["target_description"])
	targetRange := first["target_range"].(map[string]any)
	assert.Equal(t, float64(260), targetRange["min"])
	assert.Equal(t, float64(290), targetRange["max"])

	summary := data["summary"].(map[string]any)
	assert.Equal(t, float64(4), summary["total_intervals"])
	assert.Equal(t, float64(2), summary["work_intervals"])
	assert.Equal(t, float64(1), summary["rest_intervals"])
	assert.Equal(t, float64(600), summary["total_work_time_seconds"])
}

func TestSearchIntervalsNoMatchesNamesCriteria(t *testing.T) {
	uc := newAnalysisUC(&fakeAnalysisAPI{
		searchIntervals: func(context.Context, string, int, int, int) ([]map[string]any, error) {
			return nil, nil
		},
	})

	env := decodeEnvelope(t, uc.SearchIntervals(context.Background(), testConfig(), IntervalSearchParams{
		IntervalType: "Work",
		MinDuration:  240,
	}))
	metadata := env["metadata"].(map[string]any)
	assert.Equal(t, "No intervals found matching type=Work, min_duration=240s", metadata["message"])

	env = decodeEnvelope(t, uc.SearchIntervals(context.Background(), testConfig(), IntervalSearchParams{}))
	metadata = env["metadata"].(map[string]any)
	assert.Equal(t, "No intervals found matching your criteria", metadata["message"])
}

func TestSearchIntervalsCriteriaNulls(t *testing.T) {
	uc := newAnalysisUC(&fakeAnalysisAPI{
		searchIntervals: func(context.Context, string, int, int, int) ([]map[string]any, error) {
			return []map[string]any{{"id": 1}}, nil
		},
	})

	data := dataOf(t, uc.SearchIntervals(context.Background(), testConfig(), IntervalSearchParams{
		IntervalType: "Work",
	}))
	criteria := data["search_criteria"].(map[string]any)
	assert.Equal(t, "Work", criteria["interval_type"])
	assert.Nil(t, criteria["min_duration_seconds"])
	assert.Nil(t, criteria["max_duration_seconds"])
}

func TestPowerHistogramTruncatesBounds(t *testing.T) {
	uc := newAnalysisUC(&fakeAnalysisAPI{
		getPowerHistogram: func(context.Context, string) (*icu.Histogram, error) {
			return &icu.Histogram{
				Bins: []icu.HistogramBin{
					{Min: 0, Max: 49.9, Count: 120, Secs: fptr(120.0)},
					{Min: 49.9, Max: 99.9, Count: 300},
				},
				TotalCount: 420,
				TotalSecs:  fptr(420.0),
			}, nil
		},
	})

	env := decodeEnvelope(t, uc.PowerHistogram(context.Background(), testConfig(), "a1"))
	assert.Equal(t, "power_histogram", env["query_type"])

	data := env["data"].(map[string]any)
	assert.Equal(t, float64(420), data["total_samples"])
	assert.Equal(t, float64(420), data["total_time_seconds"])

	bins := data["bins"].([]any)
	require.Len(t, bins, 2)
	first := bins[0].(map[string]any)
	powerRange := first["power_range"].(map[string]any)
	assert.Equal(t, float64(0), powerRange["min_watts"])
	assert.Equal(t, float64(49), powerRange["max_watts"])
	assert.Equal(t, float64(120), first["time_seconds"])

	second := bins[1].(map[string]any)
	assert.NotContains(t, second, "time_seconds")
}

func TestPaceHistogramFormatsBounds(t *testing.T) {
	uc := newAnalysisUC(&fakeAnalysisAPI{
		getPaceHistogram: func(context.Context, string) (*icu.Histogram, error) {
			return &icu.Histogram{
				Bins:       []icu.HistogramBin{{Min: 3.999, Max: 4.5, Count: 60}},
				TotalCount: 60,
			}, nil
		},
	})

	data := dataOf(t, uc.PaceHistogram(context.Background(), testConfig(), "a1"))
	bins := data["bins"].([]any)
	paceRange := bins[0].(map[string]any)["pace_range"].(map[string]any)
	// Seconds truncate: 3.999 min/km stays under 4:00.
	assert.Equal(t, "3:59 /km", paceRange["min_pace_formatted"])
	assert.Equal(t, "4:30 /km", paceRange["max_pace_formatted"])
	assert.Equal(t, 3.999, paceRange["min_pace_min_per_km"])
}

func TestGAPHistogramNote(t *testing.T) {
	uc := newAnalysisUC(&fakeAnalysisAPI{
		getGAPHistogram: func(context.Context, string) (*icu.Histogram, error) {
			return &icu.Histogram{
				Bins:       []icu.HistogramBin{{Min: 4.0, Max: 4.5, Count: 10}},
				TotalCount: 10,
			}, nil
		},
	})

	data := dataOf(t, uc.GAPHistogram(context.Background(), testConfig(), "a1"))
	assert.Equal(t, "GAP (Grade Adjusted Pace) normalizes pace for elevation changes", data["note"])
}

func TestHistogramEmpty(t *testing.T) {
	uc := newAnalysisUC(&fakeAnalysisAPI{
		getHRHistogram: func(context.Context, string) (*icu.Histogram, error) {
			return &icu.Histogram{}, nil
		},
	})

	env := decodeEnvelope(t, uc.HRHistogram(context.Background(), testConfig(), "a1"))
	data := env["data"].(map[string]any)
	assert.Equal(t, []any{}, data["histogram"])
	metadata := env["metadata"].(map[string]any)
	assert.Equal(t, "No HR histogram data available for this activity", metadata["message"])
}

func TestBestEfforts(t *testing.T) {
	uc := newAnalysisUC(&fakeAnalysisAPI{
		getBestEfforts: func(context.Context, string) ([]icu.BestEffort, error) {
			return []icu.BestEffort{
				{Name: "5 min power", ElapsedTime: 300, AverageWatts: 310, StartIndex: iptr(1200), EndIndex: iptr(1500)},
			}, nil
		},
	})

	data := dataOf(t, uc.BestEfforts(context.Background(), testConfig(), "a1"))
	items := data["best_efforts"].([]any)
	require.Len(t, items, 1)
	effort := items[0].(map[string]any)
	assert.Equal(t, "5 min power", effort["name"])
	assert.Equal(t, float64(1200), effort["start_index"])
	performance := effort["performance"].(map[string]any)
	assert.Equal(t, float64(310), performance["average_watts"])
}
