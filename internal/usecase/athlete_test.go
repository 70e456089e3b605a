package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intervals-icu-mcp/configs"
	"intervals-icu-mcp/internal/adapter/outbound/icu"
)

type stubAthleteAPI struct {
	athlete *icu.Athlete
	err     error
}

func (s stubAthleteAPI) GetAthlete(context.Context) (*icu.Athlete, error) {
	return s.athlete, s.err
}

func newAthleteUC(api AthleteAPI) *AthleteUseCase {
	return NewAthleteUseCase(func(*configs.Config) AthleteAPI { return api }, testLogger())
}

func TestGetProfile(t *testing.T) {
	uc := newAthleteUC(stubAthleteAPI{athlete: &icu.Athlete{
		ID:       "i12345",
		Name:     "Test Athlete",
		Weight:   70.5,
		CTL:      fptr(55.34),
		ATL:      fptr(60.12),
		TSB:      fptr(-4.78),
		RampRate: fptr(9.2),
		SportSettings: []icu.SportSettings{
			{Type: "Ride", FTP: 250, FTHR: 165},
			{Type: "Run", PaceThreshold: 270},
		},
	}})

	out := uc.GetProfile(context.Background(), testConfig())
	env := decodeEnvelope(t, out)
	assert.Equal(t, "athlete_profile", env["query_type"])

	data := env["data"].(map[string]any)
	profile := data["profile"].(map[string]any)
	assert.Equal(t, "Test Athlete", profile["name"])
	assert.Equal(t, 70.5, profile["weight_kg"])

	fitness := data["fitness"].(map[string]any)
	assert.Equal(t, 55.3, fitness["ctl"])
	assert.Equal(t, -4.8, fitness["tsb"])

	sports := data["sports"].([]any)
	require.Len(t, sports, 2)
	run := sports[1].(map[string]any)
	assert.Equal(t, "4:30 /km", run["pace_threshold_formatted"])

	analysis := env["analysis"].(map[string]any)
	assert.Equal(t, "optimal", analysis["form_status"])
	assert.Equal(t, "high_risk", analysis["ramp_rate_status"])
	assert.Contains(t, analysis, "ramp_rate_warning")
	assert.NotContains(t, analysis, "ramp_rate_description")
}

func TestGetProfileSustainableRampDescribesInsteadOfWarning(t *testing.T) {
	uc := newAthleteUC(stubAthleteAPI{athlete: &icu.Athlete{
		ID: "i12345", Name: "A", RampRate: fptr(3.0),
	}})

	env := decodeEnvelope(t, uc.GetProfile(context.Background(), testConfig()))
	analysis := env["analysis"].(map[string]any)
	assert.Equal(t, "good", analysis["ramp_rate_status"])
	assert.Contains(t, analysis, "ramp_rate_description")
	assert.NotContains(t, analysis, "ramp_rate_warning")
}

func TestGetProfileAPIError(t *testing.T) {
	uc := newAthleteUC(stubAthleteAPI{err: &icu.APIError{StatusCode: 401, Message: "Invalid API key"}})

	env := decodeEnvelope(t, uc.GetProfile(context.Background(), testConfig()))
	assert.Equal(t, "Invalid API key", env["error"])
	assert.Equal(t, "api_error", env["error_type"])
	suggestions := env["suggestions"].([]any)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Check your API key and athlete ID configuration", suggestions[0])
}

func TestGetProfileUnexpectedError(t *testing.T) {
	uc := newAthleteUC(stubAthleteAPI{err: errors.New("connection refused")})

	env := decodeEnvelope(t, uc.GetProfile(context.Background(), testConfig()))
	assert.Equal(t, "Unexpected error: connection refused", env["error"])
	assert.Equal(t, "internal_error", env["error_type"])
}

func TestGetFitnessSummaryNoData(t *testing.T) {
	uc := newAthleteUC(stubAthleteAPI{athlete: &icu.Athlete{ID: "i12345", Name: "A"}})

	env := decodeEnvelope(t, uc.GetFitnessSummary(context.Background(), testConfig()))
	assert.Equal(t, "no_data", env["error_type"])
	assert.Equal(t, "No fitness data available. Complete some activities to build your fitness history.", env["error"])
}

func TestGetFitnessSummaryRecommendations(t *testing.T) {
	tests := []struct {
		name      string
		tsb       float64
		ramp      float64
		wantFirst string
	}{
		{"deep fatigue", -35, 2, "Take an easy week or rest days"},
		{"hard block", -15, 6, "Balance hard training with recovery"},
		{"fresh and declining", 10, -1, "Good time to increase training load"},
		{"fresh and building", 10, 2, "You're fresh and can handle hard workouts"},
		{"steady state", 0, 2, "Continue current training approach"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newAthleteUC(stubAthleteAPI{athlete: &icu.Athlete{
				ID: "i12345", Name: "A",
				CTL: fptr(50.0), ATL: fptr(50.0),
				TSB: fptr(tt.tsb), RampRate: fptr(tt.ramp),
			}})
			env := decodeEnvelope(t, uc.GetFitnessSummary(context.Background(), testConfig()))
			analysis := env["analysis"].(map[string]any)
			recs := analysis["recommendations"].([]any)
			require.Len(t, recs, 2)
			assert.Equal(t, tt.wantFirst, recs[0])
		})
	}
}

func TestGetFitnessSummaryMetricShape(t *testing.T) {
	uc := newAthleteUC(stubAthleteAPI{athlete: &icu.Athlete{
		ID: "i12345", Name: "Test Athlete",
		CTL: fptr(55.55), ATL: fptr(48.0), TSB: fptr(7.55), RampRate: fptr(6.0),
	}})

	env := decodeEnvelope(t, uc.GetFitnessSummary(context.Background(), testConfig()))
	assert.Equal(t, "fitness_summary", env["query_type"])

	data := env["data"].(map[string]any)
	assert.Equal(t, "Test Athlete", data["athlete_name"])
	metrics := data["fitness_metrics"].(map[string]any)
	ctl := metrics["ctl"].(map[string]any)
	assert.Equal(t, 55.6, ctl["value"])
	assert.Equal(t, "Chronic Training Load (Fitness)", ctl["description"])

	analysis := env["analysis"].(map[string]any)
	assert.Equal(t, "recovered", analysis["form_status"])
	assert.Equal(t, "You're recovered and ready for hard training", analysis["form_interpretation"])
	assert.Equal(t, "caution", analysis["ramp_rate_status"])
	assert.Equal(t, "Monitor fatigue and recovery closely", analysis["ramp_rate_warning"])
}
