package icu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"intervals-icu-mcp/configs"
)

// basicAuthUser is the fixed username the API expects for key-based auth.
const basicAuthUser = "API_KEY"

// How far around a reference activity the timeline window reaches.
const aroundWindowDays = 42

// APIError is a non-2xx answer from the Intervals.icu API. The message is the
// response body when one was sent, so upstream wording reaches the caller
// unchanged.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("intervals.icu API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// Client talks to the Intervals.icu REST API on behalf of one athlete.
type Client struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	athleteID string
	logger    *slog.Logger
}

// New creates a Client from the per-call config.
func New(cfg *configs.Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPClientTimeout}
	}
	return &Client{
		client:    httpClient,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		athleteID: strings.TrimSpace(cfg.AthleteID),
		logger:    logger.With("component", "icu_client"),
	}
}

// athlete resolves an optional athlete override (coaches acting for a managed
// athlete) against the configured default.
func (c *Client) athlete(override string) string {
	if override != "" {
		return override
	}
	return c.athleteID
}

func (c *Client) do(ctx context.Context, method, p string, query url.Values, body, out any) error {
	raw, err := c.doRaw(ctx, method, p, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, p, err)
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, p string, query url.Values, body any) ([]byte, error) {
	log := c.logger.With(slog.String("method", method), slog.String("path", p))

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	fullURL := c.baseURL + p
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(basicAuthUser, c.apiKey)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug("Executing API request")
	resp, err := c.client.Do(req)
	if err != nil {
		log.Error("API request failed", slog.Any("error", err))
		return nil, fmt.Errorf("request execution failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(respBody))
		if msg == "" {
			msg = resp.Status
		}
		log.Warn("API returned error status", slog.Int("status_code", resp.StatusCode))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	return respBody, nil
}

// --- Athlete --- //

func (c *Client) GetAthlete(ctx context.Context) (*Athlete, error) {
	var athlete Athlete
	if err := c.do(ctx, http.MethodGet, "/athlete/"+c.athleteID, nil, nil, &athlete); err != nil {
		return nil, err
	}
	return &athlete, nil
}

// --- Activities --- //

func (c *Client) GetActivities(ctx context.Context, athleteID, oldest, newest string, limit int) ([]Activity, error) {
	q := url.Values{}
	if oldest != "" {
		q.Set("oldest", oldest)
	}
	if newest != "" {
		q.Set("newest", newest)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var activities []Activity
	err := c.do(ctx, http.MethodGet, "/athlete/"+c.athlete(athleteID)+"/activities", q, nil, &activities)
	return activities, err
}

func (c *Client) SearchActivities(ctx context.Context, athleteID, query string, limit int) ([]Activity, error) {
	q := url.Values{"q": {query}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var activities []Activity
	err := c.do(ctx, http.MethodGet, "/athlete/"+c.athlete(athleteID)+"/activities/search", q, nil, &activities)
	return activities, err
}

func (c *Client) GetActivity(ctx context.Context, activityID string) (*Activity, error) {
	var activity Activity
	if err := c.do(ctx, http.MethodGet, "/activity/"+activityID, nil, nil, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

func (c *Client) UpdateActivity(ctx context.Context, activityID string, fields map[string]any) (*Activity, error) {
	var activity Activity
	if err := c.do(ctx, http.MethodPut, "/activity/"+activityID, nil, fields, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

func (c *Client) DeleteActivity(ctx context.Context, activityID string) error {
	return c.do(ctx, http.MethodDelete, "/activity/"+activityID, nil, nil, nil)
}

// GetActivitiesAround fetches the activities in a window around the reference
// activity's start date and returns the reference plus up to count entries on
// each side, sorted chronologically. The API has no native endpoint for this.
func (c *Client) GetActivitiesAround(ctx context.Context, activityID string, count int) ([]Activity, error) {
	ref, err := c.GetActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if len(ref.StartDateLocal) < 10 {
		return nil, fmt.Errorf("reference activity %s has no usable start date", activityID)
	}
	refDate, err := time.Parse("2006-01-02", ref.StartDateLocal[:10])
	if err != nil {
		return nil, fmt.Errorf("failed to parse reference activity date: %w", err)
	}

	oldest := refDate.AddDate(0, 0, -aroundWindowDays).Format("2006-01-02")
	newest := refDate.AddDate(0, 0, aroundWindowDays).Format("2006-01-02")
	window, err := c.GetActivities(ctx, "", oldest, newest, 0)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(window, func(i, j int) bool {
		return window[i].StartDateLocal < window[j].StartDateLocal
	})
	refIdx := -1
	for i, a := range window {
		if a.ID == activityID {
			refIdx = i
			break
		}
	}
	if refIdx < 0 {
		// Listing can lag behind the activity endpoint.
		return []Activity{*ref}, nil
	}
	lo := refIdx - count
	if lo < 0 {
		lo = 0
	}
	hi := refIdx + count + 1
	if hi > len(window) {
		hi = len(window)
	}
	return window[lo:hi], nil
}

// --- Activity analysis --- //

func (c *Client) GetActivityStreams(ctx context.Context, activityID string, types []string) ([]Stream, error) {
	q := url.Values{}
	if len(types) > 0 {
		q.Set("types", strings.Join(types, ","))
	}
	var streams []Stream
	err := c.do(ctx, http.MethodGet, "/activity/"+activityID+"/streams", q, nil, &streams)
	return streams, err
}

func (c *Client) GetActivityIntervals(ctx context.Context, activityID string) ([]Interval, error) {
	var intervals []Interval
	err := c.do(ctx, http.MethodGet, "/activity/"+activityID+"/intervals", nil, nil, &intervals)
	return intervals, err
}

func (c *Client) GetBestEfforts(ctx context.Context, activityID string) ([]BestEffort, error) {
	var efforts []BestEffort
	err := c.do(ctx, http.MethodGet, "/activity/"+activityID+"/best-efforts", nil, nil, &efforts)
	return efforts, err
}

// SearchIntervals returns matching intervals as raw objects; the result shape
// varies per sport and is passed through untouched.
func (c *Client) SearchIntervals(ctx context.Context, intervalType string, minDuration, maxDuration, limit int) ([]map[string]any, error) {
	q := url.Values{}
	if intervalType != "" {
		q.Set("type", intervalType)
	}
	if minDuration > 0 {
		q.Set("min_secs", strconv.Itoa(minDuration))
	}
	if maxDuration > 0 {
		q.Set("max_secs", strconv.Itoa(maxDuration))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var results []map[string]any
	err := c.do(ctx, http.MethodGet, "/athlete/"+c.athleteID+"/intervals/search", q, nil, &results)
	return results, err
}

func (c *Client) getHistogram(ctx context.Context, activityID, kind string) (*Histogram, error) {
	var hist Histogram
	if err := c.do(ctx, http.MethodGet, "/activity/"+activityID+"/"+kind, nil, nil, &hist); err != nil {
		return nil, err
	}
	return &hist, nil
}

func (c *Client) GetPowerHistogram(ctx context.Context, activityID string) (*Histogram, error) {
	return c.getHistogram(ctx, activityID, "power-hist")
}

func (c *Client) GetHRHistogram(ctx context.Context, activityID string) (*Histogram, error) {
	return c.getHistogram(ctx, activityID, "hr-hist")
}

func (c *Client) GetPaceHistogram(ctx context.Context, activityID string) (*Histogram, error) {
	return c.getHistogram(ctx, activityID, "pace-hist")
}

func (c *Client) GetGAPHistogram(ctx context.Context, activityID string) (*Histogram, error) {
	return c.getHistogram(ctx, activityID, "gap-hist")
}

// --- Curves --- //

func (c *Client) getCurves(ctx context.Context, kind, oldest string, extra url.Values) ([]CurveEntry, error) {
	q := url.Values{}
	if oldest != "" {
		q.Set("oldest", oldest)
	}
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	var entries []CurveEntry
	err := c.do(ctx, http.MethodGet, "/athlete/"+c.athleteID+"/"+kind, q, nil, &entries)
	return entries, err
}

func (c *Client) GetPowerCurves(ctx context.Context, oldest string) ([]CurveEntry, error) {
	return c.getCurves(ctx, "power-curves", oldest, nil)
}

func (c *Client) GetHRCurves(ctx context.Context, oldest string) ([]CurveEntry, error) {
	return c.getCurves(ctx, "hr-curves", oldest, nil)
}

func (c *Client) GetPaceCurves(ctx context.Context, oldest string, useGAP bool) ([]CurveEntry, error) {
	extra := url.Values{}
	if useGAP {
		extra.Set("gap", "true")
	}
	return c.getCurves(ctx, "pace-curves", oldest, extra)
}

// --- Wellness --- //

func (c *Client) GetWellness(ctx context.Context, oldest, newest string) ([]Wellness, error) {
	q := url.Values{}
	if oldest != "" {
		q.Set("oldest", oldest)
	}
	if newest != "" {
		q.Set("newest", newest)
	}
	var records []Wellness
	err := c.do(ctx, http.MethodGet, "/athlete/"+c.athleteID+"/wellness", q, nil, &records)
	return records, err
}

func (c *Client) GetWellnessForDate(ctx context.Context, date string) (*Wellness, error) {
	var record Wellness
	if err := c.do(ctx, http.MethodGet, "/athlete/"+c.athleteID+"/wellness/"+date, nil, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateWellness upserts the record for fields["id"] (a YYYY-MM-DD date).
func (c *Client) UpdateWellness(ctx context.Context, fields map[string]any) (*Wellness, error) {
	date, _ := fields["id"].(string)
	var record Wellness
	if err := c.do(ctx, http.MethodPut, "/athlete/"+c.athleteID+"/wellness/"+date, nil, fields, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// --- Events --- //

func (c *Client) GetEvent(ctx context.Context, athleteID string, eventID int) (*Event, error) {
	var event Event
	p := "/athlete/" + c.athlete(athleteID) + "/events/" + strconv.Itoa(eventID)
	if err := c.do(ctx, http.MethodGet, p, nil, nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) CreateEvent(ctx context.Context, athleteID string, fields map[string]any) (*Event, error) {
	var event Event
	p := "/athlete/" + c.athlete(athleteID) + "/events"
	if err := c.do(ctx, http.MethodPost, p, nil, fields, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) UpdateEvent(ctx context.Context, athleteID string, eventID int, fields map[string]any) (*Event, error) {
	var event Event
	p := "/athlete/" + c.athlete(athleteID) + "/events/" + strconv.Itoa(eventID)
	if err := c.do(ctx, http.MethodPut, p, nil, fields, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) DeleteEvent(ctx context.Context, athleteID string, eventID int) error {
	p := "/athlete/" + c.athlete(athleteID) + "/events/" + strconv.Itoa(eventID)
	return c.do(ctx, http.MethodDelete, p, nil, nil, nil)
}

func (c *Client) BulkCreateEvents(ctx context.Context, athleteID string, events []map[string]any) ([]Event, error) {
	var created []Event
	p := "/athlete/" + c.athlete(athleteID) + "/events/bulk"
	err := c.do(ctx, http.MethodPost, p, nil, events, &created)
	return created, err
}

func (c *Client) BulkDeleteEvents(ctx context.Context, athleteID string, eventIDs []int) (map[string]any, error) {
	var result map[string]any
	p := "/athlete/" + c.athlete(athleteID) + "/events/bulk-delete"
	err := c.do(ctx, http.MethodPost, p, nil, eventIDs, &result)
	return result, err
}

// DuplicateEvent copies an existing event onto a new date. The API has no
// duplicate endpoint, so this is a read plus a create.
func (c *Client) DuplicateEvent(ctx context.Context, athleteID string, eventID int, newDate string) (*Event, error) {
	src, err := c.GetEvent(ctx, athleteID, eventID)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{
		"start_date_local": newDate + "T00:00:00",
		"name":             src.Name,
		"category":         src.Category,
	}
	if src.Description != "" {
		fields["description"] = src.Description
	}
	if src.Type != "" {
		fields["type"] = src.Type
	}
	if src.MovingTime != 0 {
		fields["moving_time"] = src.MovingTime
	}
	if src.Distance != 0 {
		fields["distance"] = src.Distance
	}
	if src.ICUTrainingLoad != 0 {
		fields["icu_training_load"] = src.ICUTrainingLoad
	}
	return c.CreateEvent(ctx, athleteID, fields)
}

// --- Gear --- //

func (c *Client) GetGear(ctx context.Context) ([]Gear, error) {
	var gear []Gear
	err := c.do(ctx, http.MethodGet, "/athlete/"+c.athleteID+"/gear", nil, nil, &gear)
	return gear, err
}

func (c *Client) CreateGear(ctx context.Context, fields map[string]any) (*Gear, error) {
	var gear Gear
	if err := c.do(ctx, http.MethodPost, "/athlete/"+c.athleteID+"/gear", nil, fields, &gear); err != nil {
		return nil, err
	}
	return &gear, nil
}

func (c *Client) UpdateGear(ctx context.Context, gearID string, fields map[string]any) (*Gear, error) {
	var gear Gear
	if err := c.do(ctx, http.MethodPut, "/athlete/"+c.athleteID+"/gear/"+gearID, nil, fields, &gear); err != nil {
		return nil, err
	}
	return &gear, nil
}

func (c *Client) DeleteGear(ctx context.Context, gearID string) error {
	return c.do(ctx, http.MethodDelete, "/athlete/"+c.athleteID+"/gear/"+gearID, nil, nil, nil)
}

func (c *Client) CreateGearReminder(ctx context.Context, gearID string, fields map[string]any) (*GearReminder, error) {
	var reminder GearReminder
	p := "/athlete/" + c.athleteID + "/gear/" + gearID + "/reminders"
	if err := c.do(ctx, http.MethodPost, p, nil, fields, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (c *Client) UpdateGearReminder(ctx context.Context, gearID string, reminderID int, fields map[string]any) (*GearReminder, error) {
	var reminder GearReminder
	p := "/athlete/" + c.athleteID + "/gear/" + gearID + "/reminders/" + strconv.Itoa(reminderID)
	if err := c.do(ctx, http.MethodPut, p, nil, fields, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// --- Workout library --- //

func (c *Client) GetWorkoutFolders(ctx context.Context) ([]WorkoutFolder, error) {
	var folders []WorkoutFolder
	err := c.do(ctx, http.MethodGet, "/athlete/"+c.athleteID+"/folders", nil, nil, &folders)
	return folders, err
}

func (c *Client) GetWorkoutsInFolder(ctx context.Context, folderID int) ([]Workout, error) {
	var workouts []Workout
	p := "/athlete/" + c.athleteID + "/folders/" + strconv.Itoa(folderID) + "/workouts"
	err := c.do(ctx, http.MethodGet, p, nil, nil, &workouts)
	return workouts, err
}

// --- Files --- //

func (c *Client) DownloadActivityFile(ctx context.Context, activityID string) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, "/activity/"+activityID+"/file", nil, nil)
}

func (c *Client) DownloadFITFile(ctx context.Context, activityID string) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, "/activity/"+activityID+"/fit-file", nil, nil)
}

func (c *Client) DownloadGPXFile(ctx context.Context, activityID string) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, "/activity/"+activityID+"/gpx", nil, nil)
}
