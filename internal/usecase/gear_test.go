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

type fakeGearAPI struct {
	getGear            func(ctx context.Context) ([]icu.Gear, error)
	createGear         func(ctx context.Context, fields map[string]any) (*icu.Gear, error)
	updateGear         func(ctx context.Context, gearID string, fields map[string]any) (*icu.Gear, error)
	deleteGear         func(ctx context.Context, gearID string) error
	createGearReminder func(ctx context.Context, gearID string, fields map[string]any) (*icu.GearReminder, error)
	updateGearReminder func(ctx context.Context, gearID string, reminderID int, fields map[string]any) (*icu.GearReminder, error)
}

func (f *fakeGearAPI) GetGear(ctx context.Context) ([]icu.Gear, error) {
	return f.getGear(ctx)
}

func (f *fakeGearAPI) CreateGear(ctx context.Context, fields map[string]any) (*icu.Gear, error) {
	return f.createGear(ctx, fields)
}

func (f *fakeGearAPI) UpdateGear(ctx context.Context, gearID string, fields map[string]any) (*icu.Gear, error) {
	return f.updateGear(ctx, gearID, fields)
}

func (f *fakeGearAPI) DeleteGear(ctx context.Context, gearID string) error {
	return f.deleteGear(ctx, gearID)
}

func (f *fakeGearAPI) CreateGearReminder(ctx context.Context, gearID string, fields map[string]any) (*icu.GearReminder, error) {
	return f.createGearReminder(ctx, gearID, fields)
}

func (f *fakeGearAPI) UpdateGearReminder(ctx context.Context, gearID string, reminderID int, fields map[string]any) (*icu.GearReminder, error) {
	return f.updateGearReminder(ctx, gearID, reminderID, fields)
}

func newGearUC(api *fakeGearAPI) *GearUseCase {
	return NewGearUseCase(func(*configs.Config) GearAPI { return api }, testLogger())
}

func TestGearListEmpty(t *testing.T) {
	uc := newGearUC(&fakeGearAPI{
		getGear: func(context.Context) ([]icu.Gear, error) { return nil, nil },
	})

	env := decodeEnvelope(t, uc.List(context.Background(), testConfig()))
	data := env["data"].(map[string]any)
	assert.Equal(t, "No gear items found", data["message"])
	metadata := env["metadata"].(map[string]any)
	assert.Equal(t, float64(0), metadata["count"])
}

func TestGearListUsageAndReminders(t *testing.T) {
	uc := newGearUC(&fakeGearAPI{
		getGear: func(context.Context) ([]icu.Gear, error) {
			return []icu.Gear{
				{
					ID: "g1", Name: "Road Bike", GearType: "BIKE", Active: true, Brand: "Canyon",
					Distance:   fptr(1234567.0),
					MovingTime: iptr(13320),
					Reminders: []icu.GearReminder{
						{ID: 7, Text: "Replace chain", DistanceAlert: fptr(500000.0), IsDue: bptr(true), DueDistance: fptr(-2500.0)},
					},
				},
				{ID: "g2", Name: "Old Shoes", GearType: "SHOE", Active: false},
			}, nil
		},
	})

	env := decodeEnvelope(t, uc.List(context.Background(), testConfig()))
	metadata := env["metadata"].(map[string]any)
	assert.Equal(t, "gear_list", metadata["type"])
	assert.Equal(t, float64(2), metadata["count"])

	items := env["data"].(map[string]any)["gear"].([]any)
	require.Len(t, items, 2)

	bike := items[0].(map[string]any)
	assert.Equal(t, "Canyon", bike["brand"])
	usage := bike["usage"].(map[string]any)
	assert.Equal(t, 1234.57, usage["total_distance_km"])
	assert.Equal(t, "3h 42m", usage["total_time"])

	reminders := bike["reminders"].([]any)
	require.Len(t, reminders, 1)
	reminder := reminders[0].(map[string]any)
	assert.Equal(t, 500.0, reminder["alert_every_km"])
	assert.Equal(t, true, reminder["is_due"])
	assert.Equal(t, -2.5, reminder["due_in_km"])

	shoes := items[1].(map[string]any)
	assert.NotContains(t, shoes, "usage")
	assert.NotContains(t, shoes, "reminders")
}

func TestGearRawErrorFallback(t *testing.T) {
	uc := newGearUC(&fakeGearAPI{
		getGear: func(context.Context) ([]icu.Gear, error) { return nil, errors.New("dial tcp: timeout") },
	})

	env := decodeEnvelope(t, uc.List(context.Background(), testConfig()))
	assert.Equal(t, "unexpected_error", env["error_type"])
	assert.Equal(t, "dial tcp: timeout", env["error"])
}

func TestGearAPIErrorPassthrough(t *testing.T) {
	uc := newGearUC(&fakeGearAPI{
		getGear: func(context.Context) ([]icu.Gear, error) {
			return nil, &icu.APIError{StatusCode: 404, Message: "Gear not found"}
		},
	})

	env := decodeEnvelope(t, uc.List(context.Background(), testConfig()))
	assert.Equal(t, "api_error", env["error_type"])
	assert.Equal(t, "Gear not found", env["error"])
}

func TestGearCreate(t *testing.T) {
	var gotFields map[string]any
	uc := newGearUC(&fakeGearAPI{
		createGear: func(_ context.Context, fields map[string]any) (*icu.Gear, error) {
			gotFields = fields
			return &icu.Gear{ID: "g9", Name: "Gravel Bike", GearType: "BIKE", Active: true, Primary: true}, nil
		},
	})

	out := uc.Create(context.Background(), testConfig(), "Gravel Bike", "BIKE", "", "", true, true)
	assert.Equal(t, map[string]any{
		"name": "Gravel Bike", "gear_type": "BIKE", "active": true, "primary": true,
	}, gotFields)

	env := decodeEnvelope(t, out)
	data := env["data"].(map[string]any)
	assert.Equal(t, "g9", data["id"])
	assert.Equal(t, true, data["primary"])
	metadata := env["metadata"].(map[string]any)
	assert.Equal(t, "gear_created", metadata["type"])
	assert.Equal(t, "Gear item created successfully", metadata["message"])
}

func TestGearUpdateRequiresFields(t *testing.T) {
	uc := newGearUC(&fakeGearAPI{})

	env := decodeEnvelope(t, uc.Update(context.Background(), testConfig(), "g1", UpdateGearParams{}))
	assert.Equal(t, "validation_error", env["error_type"])
	assert.Equal(t, "No fields provided to update", env["error"])
}

func TestGearDelete(t *testing.T) {
	uc := newGearUC(&fakeGearAPI{
		deleteGear: func(context.Context, string) error { return nil },
	})

	env := decodeEnvelope(t, uc.Delete(context.Background(), testConfig(), "g1"))
	data := env["data"].(map[string]any)
	assert.Equal(t, "g1", data["gear_id"])
	assert.Equal(t, true, data["deleted"])
	metadata := env["metadata"].(map[string]any)
	assert.Equal(t, "gear_deleted", metadata["type"])
}

func TestCreateReminderRequiresThreshold(t *testing.T) {
	uc := newGearUC(&fakeGearAPI{})

	env := decodeEnvelope(t, uc.CreateReminder(context.Background(), testConfig(), "g1", "Replace chain", nil, nil))
	assert.Equal(t, "validation_error", env["error_type"])
	assert.Equal(t, "Must specify at least one alert threshold (distance_alert or time_alert)", env["error"])
}

func TestCreateReminderConvertsUnits(t *testing.T) {
	var gotFields map[string]any
	uc := newGearUC(&fakeGearAPI{
		createGearReminder: func(_ context.Context, _ string, fields map[string]any) (*icu.GearReminder, error) {
			gotFields = fields
			return &icu.GearReminder{ID: 7, Text: "Replace chain", DistanceAlert: fptr(500000.0), TimeAlert: iptr(360000)}, nil
		},
	})

	out := uc.CreateReminder(context.Background(), testConfig(), "g1", "Replace chain", fptr(500), iptr(100))
	// Kilometers and hours become meters and seconds on the wire.
	assert.Equal(t, map[string]any{
		"text":           "Replace chain",
		"distance_alert": 500000,
		"time_alert":     360000,
	}, gotFields)

	env := decodeEnvelope(t, out)
	data := env["data"].(map[string]any)
	assert.Equal(t, 500.0, data["alert_every_km"])
	assert.Equal(t, float64(100), data["alert_every_hours"])
	metadata := env["metadata"].(map[string]any)
	assert.Equal(t, "reminder_created", metadata["type"])
}

func TestUpdateReminder(t *testing.T) {
	uc := newGearUC(&fakeGearAPI{
		updateGearReminder: func(_ context.Context, _ string, _ int, fields map[string]any) (*icu.GearReminder, error) {
			return &icu.GearReminder{ID: 7, Text: "Replace cassette", IsDue: bptr(false), DueTime: iptr(72000)}, nil
		},
	})

	env := decodeEnvelope(t, uc.UpdateReminder(context.Background(), testConfig(), "g1", 7, sptr("Replace cassette"), nil, nil))
	data := env["data"].(map[string]any)
	assert.Equal(t, "Replace cassette", data["text"])
	assert.Equal(t, false, data["is_due"])
	assert.Equal(t, float64(20), data["due_in_hours"])
	metadata := env["metadata"].(map[string]any)
	assert.Equal(t, "reminder_updated", metadata["type"])

	env = decodeEnvelope(t, uc.UpdateReminder(context.Background(), testConfig(), "g1", 7, nil, nil, nil))
	assert.Equal(t, "No fields provided to update", env["error"])
}
