package icu

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intervals-icu-mcp/configs"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &configs.Config{
		BaseURL:           srv.URL,
		APIKey:            "test-key",
		AthleteID:         "i12345",
		HTTPClientTimeout: 5 * time.Second,
	}
	return New(cfg, srv.Client(), slog.New(slog.NewTextHandler(testWriter{t}, nil))), srv
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func TestGetActivities_RequestShape(t *testing.T) {
	var gotPath, gotQuery, gotUser, gotPass string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUser, gotPass, _ = r.BasicAuth()
		_ = json.NewEncoder(w).Encode([]Activity{{ID: "a1", Name: "Morning Ride"}})
	}))

	activities, err := client.GetActivities(context.Background(), "", "2026-05-01", "", 30)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "a1", activities[0].ID)
	assert.Equal(t, "/athlete/i12345/activities", gotPath)
	assert.Contains(t, gotQuery, "oldest=2026-05-01")
	assert.Contains(t, gotQuery, "limit=30")
	assert.Equal(t, "API_KEY", gotUser)
	assert.Equal(t, "test-key", gotPass)
}

func TestGetActivities_AthleteOverride(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("[]"))
	}))

	_, err := client.GetActivities(context.Background(), "i999", "", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "/athlete/i999/activities", gotPath)
}

func TestAPIError_PassesBodyThrough(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("Activity not visible to you"))
	}))

	_, err := client.GetActivity(context.Background(), "a1")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "Activity not visible to you", apiErr.Message)
}

func TestAPIError_EmptyBodyFallsBackToStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.GetAthlete(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.NotEmpty(t, apiErr.Message)
}

func TestUpdateActivity_SendsOnlyProvidedFields(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(Activity{ID: "a1", Name: "Renamed"})
	}))

	updated, err := client.UpdateActivity(context.Background(), "a1", map[string]any{"name": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, map[string]any{"name": "Renamed"}, gotBody)
}

func TestGetActivitiesAround_WindowsAndSlices(t *testing.T) {
	window := []Activity{
		{ID: "a1", StartDateLocal: "2026-06-01T08:00:00"},
		{ID: "a2", StartDateLocal: "2026-06-03T08:00:00"},
		{ID: "a3", StartDateLocal: "2026-06-05T08:00:00"},
		{ID: "a4", StartDateLocal: "2026-06-07T08:00:00"},
		{ID: "a5", StartDateLocal: "2026-06-09T08:00:00"},
	}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/activity/a3":
			_ = json.NewEncoder(w).Encode(window[2])
		case "/athlete/i12345/activities":
			_ = json.NewEncoder(w).Encode(window)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	around, err := client.GetActivitiesAround(context.Background(), "a3", 1)
	require.NoError(t, err)
	require.Len(t, around, 3)
	assert.Equal(t, "a2", around[0].ID)
	assert.Equal(t, "a3", around[1].ID)
	assert.Equal(t, "a4", around[2].ID)
}

func TestGetActivitiesAround_ReferenceMissingFromListing(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/activity/a9":
			_ = json.NewEncoder(w).Encode(Activity{ID: "a9", StartDateLocal: "2026-06-01T08:00:00"})
		default:
			_, _ = w.Write([]byte("[]"))
		}
	}))

	around, err := client.GetActivitiesAround(context.Background(), "a9", 3)
	require.NoError(t, err)
	require.Len(t, around, 1)
	assert.Equal(t, "a9", around[0].ID)
}

func TestUpdateWellness_UsesDateFromPayload(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodPut, r.Method)
		_ = json.NewEncoder(w).Encode(Wellness{ID: "2026-08-20", RestingHR: 48})
	}))

	record, err := client.UpdateWellness(context.Background(), map[string]any{"id": "2026-08-20", "restingHR": 48})
	require.NoError(t, err)
	assert.Equal(t, "/athlete/i12345/wellness/2026-08-20", gotPath)
	assert.Equal(t, 48, record.RestingHR)
}

func TestDuplicateEvent_CopiesFieldsToNewDate(t *testing.T) {
	var created map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(Event{
				ID: 7, StartDateLocal: "2026-08-01T00:00:00", Name: "Threshold intervals",
				Category: "WORKOUT", Type: "Ride", MovingTime: 3600, ICUTrainingLoad: 80,
			})
		case r.Method == http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			_ = json.NewEncoder(w).Encode(Event{
				ID: 8, StartDateLocal: "2026-09-01T00:00:00", Name: "Threshold intervals", Category: "WORKOUT",
			})
		}
	}))

	dup, err := client.DuplicateEvent(context.Background(), "", 7, "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, 8, dup.ID)
	assert.Equal(t, "2026-09-01T00:00:00", created["start_date_local"])
	assert.Equal(t, "Threshold intervals", created["name"])
	assert.Equal(t, "WORKOUT", created["category"])
	assert.EqualValues(t, 3600, created["moving_time"])
}

func TestDownloadActivityFile_ReturnsRawBytes(t *testing.T) {
	payload := []byte{0x0e, 0x10, 0x43, 0x08}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/activity/a1/file", r.URL.Path)
		_, _ = w.Write(payload)
	}))

	data, err := client.DownloadActivityFile(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}
