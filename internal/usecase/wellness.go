package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"intervals-icu-mcp/configs"
	"intervals-icu-mcp/internal/domain"
)

// WellnessUseCase implements the daily wellness tools.
type WellnessUseCase struct {
	api    func(cfg *configs.Config) WellnessAPI
	logger *slog.Logger
}

func NewWellnessUseCase(api func(cfg *configs.Config) WellnessAPI, logger *slog.Logger) *WellnessUseCase {
	return &WellnessUseCase{api: api, logger: logger.With("component", "wellness_usecase")}
}

// GetRecent returns the wellness records of the last daysBack days, most
// recent first, with simple trends when more than one day has data.
func (uc *WellnessUseCase) GetRecent(ctx context.Context, cfg *configs.Config, daysBack int) string {
	oldest := timeNow().AddDate(0, 0, -daysBack).Format(dateLayout)
	newest := timeNow().Format(dateLayout)

	records, err := uc.api(cfg).GetWellness(ctx, oldest, newest)
	if err != nil {
		uc.logger.Warn("Failed to fetch wellness data", slog.Any("error", err))
		return apiErrorResponse(err)
	}

	if len(records) == 0 {
		return domain.Response{
			Data:     map[string]any{"wellness_data": []any{}, "count": 0},
			Metadata: map[string]any{"message": fmt.Sprintf("No wellness data found for the last %d days", daysBack)},
		}.Build()
	}

	// Record IDs are dates, so a reverse lexicographic sort is newest-first.
	sort.SliceStable(records, func(i, j int) bool { return records[i].ID > records[j].ID })

	days := make([]map[string]any, 0, len(records))
	for _, r := range records {
		day := map[string]any{"date": r.ID}

		sleep := map[string]any{}
		putI(sleep, "duration_seconds", r.SleepSecs)
		putI(sleep, "quality", r.SleepQuality)
		putF0(sleep, "score", r.SleepScore)
		putF0(sleep, "avg_sleeping_hr", r.AvgSleepingHR)
		if len(sleep) > 0 {
			day["sleep"] = sleep
		}

		heart := map[string]any{}
		putF1(heart, "hrv_rmssd", r.HRV)
		putF1(heart, "hrv_sdnn", r.HRVSDNN)
		putI(heart, "resting_hr", r.RestingHR)
		if len(heart) > 0 {
			day["heart"] = heart
		}

		subjective := map[string]any{}
		putI(subjective, "fatigue", r.Fatigue)
		putI(subjective, "soreness", r.Soreness)
		putI(subjective, "stress", r.Stress)
		putI(subjective, "mood", r.Mood)
		putI(subjective, "motivation", r.Motivation)
		if len(subjective) > 0 {
			day["subjective"] = subjective
		}

		body := map[string]any{}
		putF(body, "weight_kg", r.Weight)
		putF1(body, "body_fat_percent", r.BodyFat)
		if len(body) > 0 {
			day["body"] = body
		}

		training := map[string]any{}
		putF1(training, "ctl", r.CTL)
		putF1(training, "atl", r.ATL)
		putF1(training, "tsb", r.TSB)
		if len(training) > 0 {
			day["training"] = training
		}

		other := map[string]any{}
		putI(other, "steps", r.Steps)
		putI(other, "calories_consumed", r.KcalConsumed)
		putF1(other, "hydration_liters", r.HydrationVolume)
		putF0(other, "readiness", r.Readiness)
		if len(other) > 0 {
			day["other"] = other
		}

		putS(day, "comments", r.Comments)
		days = append(days, day)
	}

	trends := map[string]any{}
	if len(records) > 1 {
		var hrv, weight []float64
		var rhr []int
		var sleepQ []int
		for _, r := range records {
			if r.HRV != 0 {
				hrv = append(hrv, r.HRV)
			}
			if r.RestingHR != 0 {
				rhr = append(rhr, r.RestingHR)
			}
			if r.SleepQuality != 0 {
				sleepQ = append(sleepQ, r.SleepQuality)
			}
			if r.Weight != 0 {
				weight = append(weight, r.Weight)
			}
		}
		if len(hrv) >= 2 {
			trends["hrv"] = map[string]any{
				"current": round1(hrv[0]),
				"change":  round1(hrv[0] - hrv[len(hrv)-1]),
			}
		}
		if len(rhr) >= 2 {
			trends["resting_hr"] = map[string]any{
				"current": rhr[0],
				"change":  rhr[0] - rhr[len(rhr)-1],
			}
		}
		if len(sleepQ) >= 2 {
			sum := 0
			for _, q := range sleepQ {
				sum += q
			}
			trends["avg_sleep_quality"] = round1(float64(sum) / float64(len(sleepQ)))
		}
		if len(weight) >= 2 {
			trends["weight"] = map[string]any{
				"current": weight[0],
				"change":  round1(weight[0] - weight[len(weight)-1]),
			}
		}
	}

	data := map[string]any{
		"wellness_data": days,
		"count":         len(days),
	}
	if len(trends) > 0 {
		data["trends"] = trends
	}

	return domain.Response{Data: data, QueryType: "wellness_data"}.Build()
}

// ForDate returns the complete wellness record of one day.
func (uc *WellnessUseCase) ForDate(ctx context.Context, cfg *configs.Config, date string) string {
	if !validDate(date) {
		return validationError("Invalid date format. Please use YYYY-MM-DD format.")
	}

	r, err := uc.api(cfg).GetWellnessForDate(ctx, date)
	if err != nil {
		uc.logger.Warn("Failed to fetch wellness record", slog.String("date", date), slog.Any("error", err))
		return apiErrorResponse(err)
	}

	data := map[string]any{"date": date}

	sleep := map[string]any{}
	putI(sleep, "duration_seconds", r.SleepSecs)
	putI(sleep, "quality", r.SleepQuality)
	putF0(sleep, "score", r.SleepScore)
	putF0(sleep, "avg_sleeping_hr", r.AvgSleepingHR)
	if len(sleep) > 0 {
		data["sleep"] = sleep
	}

	heart := map[string]any{}
	putF1(heart, "hrv_rmssd", r.HRV)
	putF1(heart, "hrv_sdnn", r.HRVSDNN)
	putI(heart, "resting_hr", r.RestingHR)
	putF1(heart, "baevsky_si", r.BaevskySI)
	if len(heart) > 0 {
		data["heart"] = heart
	}

	subjective := map[string]any{}
	putI(subjective, "fatigue", r.Fatigue)
	putI(subjective, "soreness", r.Soreness)
	putI(subjective, "stress", r.Stress)
	putI(subjective, "mood", r.Mood)
	putI(subjective, "motivation", r.Motivation)
	putF0(subjective, "readiness", r.Readiness)
	putS(subjective, "injury", r.Injury)
	if len(subjective) > 0 {
		data["subjective"] = subjective
	}

	body := map[string]any{}
	putF(body, "weight_kg", r.Weight)
	putF1(body, "body_fat_percent", r.BodyFat)
	if len(body) > 0 {
		data["body"] = body
	}

	vitals := map[string]any{}
	putI(vitals, "systolic_mmhg", r.Systolic)
	putI(vitals, "diastolic_mmhg", r.Diastolic)
	putF1(vitals, "spo2_percent", r.SpO2)
	putF1(vitals, "respiration_rate", r.Respiration)
	if len(vitals) > 0 {
		data["vitals"] = vitals
	}

	activityNutrition := map[string]any{}
	putI(activityNutrition, "steps", r.Steps)
	putI(activityNutrition, "calories_consumed", r.KcalConsumed)
	putF1(activityNutrition, "hydration_liters", r.HydrationVolume)
	if len(activityNutrition) > 0 {
		data["activity_nutrition"] = activityNutrition
	}

	training := map[string]any{}
	putF1(training, "ctl", r.CTL)
	putF1(training, "atl", r.ATL)
	putF1(training, "tsb", r.TSB)
	putF1(training, "ramp_rate", r.RampRate)
	if len(training) > 0 {
		data["training"] = training
	}

	other := map[string]any{}
	putF1(other, "blood_glucose_mmol_per_l", r.BloodGlucose)
	putF1(other, "lactate_mmol_per_l", r.Lactate)
	putS(other, "menstrual_phase", r.MenstrualPhase)
	if len(other) > 0 {
		data["other"] = other
	}

	putS(data, "comments", r.Comments)

	return domain.Response{Data: data, QueryType: "wellness_for_date"}.Build()
}

// UpdateWellnessParams carries the optional metric updates; nil leaves a
// metric untouched.
type UpdateWellnessParams struct {
	Weight       *float64
	RestingHR    *int
	HRV          *float64
	SleepSecs    *int
	SleepQuality *int
	Fatigue      *int
	Soreness     *int
	Stress       *int
	Mood         *int
	Motivation   *int
	Readiness    *float64
	Comments     *string
}

// Update upserts the wellness record of one day.
func (uc *WellnessUseCase) Update(ctx context.Context, cfg *configs.Config, date string, params UpdateWellnessParams) string {
	if !validDate(date) {
		return validationError("Invalid date format. Please use YYYY-MM-DD format.")
	}

	// The API keys wellness records by date and expects camelCase fields.
	fields := map[string]any{"id": date}
	if params.Weight != nil {
		fields["weight"] = *params.Weight
	}
	if params.RestingHR != nil {
		fields["restingHR"] = *params.RestingHR
	}
	if params.HRV != nil {
		fields["hrv"] = *params.HRV
	}
	if params.SleepSecs != nil {
		fields["sleepSecs"] = *params.SleepSecs
	}
	if params.SleepQuality != nil {
		fields["sleepQuality"] = *params.SleepQuality
	}
	if params.Fatigue != nil {
		fields["fatigue"] = *params.Fatigue
	}
	if params.Soreness != nil {
		fields["soreness"] = *params.Soreness
	}
	if params.Stress != nil {
		fields["stress"] = *params.Stress
	}
	if params.Mood != nil {
		fields["mood"] = *params.Mood
	}
	if params.Motivation != nil {
		fields["motivation"] = *params.Motivation
	}
	if params.Readiness != nil {
		fields["readiness"] = *params.Readiness
	}
	if params.Comments != nil {
		fields["comments"] = *params.Comments
	}

	if len(fields) == 1 {
		return validationError("No wellness data provided. Please specify at least one metric to update.")
	}

	r, err := uc.api(cfg).UpdateWellness(ctx, fields)
	if err != nil {
		uc.logger.Warn("Failed to update wellness", slog.String("date", date), slog.Any("error", err))
		return apiErrorResponse(err)
	}

	result := map[string]any{"date": date}
	putF(result, "weight_kg", r.Weight)
	putI(result, "resting_hr", r.RestingHR)
	putF1(result, "hrv_rmssd", r.HRV)
	putI(result, "sleep_duration_seconds", r.SleepSecs)
	putI(result, "sleep_quality", r.SleepQuality)
	putI(result, "fatigue", r.Fatigue)
	putI(result, "soreness", r.Soreness)
	putI(result, "stress", r.Stress)
	putI(result, "mood", r.Mood)
	putI(result, "motivation", r.Motivation)
	putF0(result, "readiness", r.Readiness)
	putS(result, "comments", r.Comments)

	return domain.Response{
		Data:      result,
		QueryType: "update_wellness",
		Metadata:  map[string]any{"message": fmt.Sprintf("Successfully updated wellness for %s", date)},
	}.Build()
}
