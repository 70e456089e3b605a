package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"intervals-icu-mcp/configs"
	"intervals-icu-mcp/internal/domain"
)

// AthleteUseCase implements the profile and fitness summary tools. The api
// factory builds a client from the per-call config.
type AthleteUseCase struct {
	api    func(cfg *configs.Config) AthleteAPI
	logger *slog.Logger
}

func NewAthleteUseCase(api func(cfg *configs.Config) AthleteAPI, logger *slog.Logger) *AthleteUseCase {
	return &AthleteUseCase{api: api, logger: logger.With("component", "athlete_usecase")}
}

// GetProfile returns the athlete profile with per-sport thresholds and a form
// classification when training load numbers are present.
func (uc *AthleteUseCase) GetProfile(ctx context.Context, cfg *configs.Config) string {
	athlete, err := uc.api(cfg).GetAthlete(ctx)
	if err != nil {
		uc.logger.Warn("Failed to fetch athlete profile", slog.Any("error", err))
		return apiErrorResponse(err, "Check your API key and athlete ID configuration")
	}

	profile := map[string]any{
		"id":   athlete.ID,
		"name": athlete.Name,
	}
	putS(profile, "email", athlete.Email)
	putS(profile, "sex", athlete.Sex)
	putS(profile, "dob", athlete.DOB)
	putF(profile, "weight_kg", athlete.Weight)

	fitness := map[string]any{}
	if athlete.CTL != nil {
		fitness["ctl"] = round1(*athlete.CTL)
	}
	if athlete.ATL != nil {
		fitness["atl"] = round1(*athlete.ATL)
	}
	if athlete.TSB != nil {
		fitness["tsb"] = round1(*athlete.TSB)
	}
	if athlete.RampRate != nil {
		fitness["ramp_rate"] = round1(*athlete.RampRate)
	}

	var sports []map[string]any
	for _, sport := range athlete.SportSettings {
		sportData := map[string]any{}
		putS(sportData, "type", sport.Type)
		putI(sportData, "ftp", sport.FTP)
		putI(sportData, "fthr", sport.FTHR)
		if sport.PaceThreshold != 0 {
			sportData["pace_threshold_seconds"] = sport.PaceThreshold
			mins := int(sport.PaceThreshold) / 60
			secs := int(sport.PaceThreshold) % 60
			sportData["pace_threshold_formatted"] = fmt.Sprintf("%d:%02d /km", mins, secs)
		}
		putF(sportData, "swim_threshold", sport.SwimThreshold)
		sports = append(sports, sportData)
	}

	data := map[string]any{
		"profile": profile,
		"fitness": fitness,
	}
	if len(sports) > 0 {
		data["sports"] = sports
	}

	analysis := map[string]any{}
	if athlete.TSB != nil {
		status, desc := domain.ClassifyForm(*athlete.TSB)
		analysis["form_status"] = string(status)
		analysis["form_description"] = desc
	}
	if athlete.RampRate != nil {
		status, desc := domain.ClassifyRampRate(*athlete.RampRate)
		analysis["ramp_rate_status"] = string(status)
		// Rising-risk bands warn, the rest just describe.
		if status == domain.RampHighRisk || status == domain.RampCaution {
			analysis["ramp_rate_warning"] = desc
		} else {
			analysis["ramp_rate_description"] = desc
		}
	}

	return domain.Response{
		Data:      data,
		Analysis:  analysis,
		QueryType: "athlete_profile",
	}.Build()
}

var formInterpretations = map[domain.FormStatus]string{
	domain.FormVeryFresh:    "You're very fresh - good for racing!",
	domain.FormRecovered:    "You're recovered and ready for hard training",
	domain.FormOptimal:      "Optimal zone - productive training possible",
	domain.FormFatigued:     "You're accumulating fatigue - recovery may be needed",
	domain.FormVeryFatigued: "High fatigue - prioritize recovery",
}

// GetFitnessSummary returns CTL/ATL/TSB/ramp rate with interpretations and
// training recommendations.
func (uc *AthleteUseCase) GetFitnessSummary(ctx context.Context, cfg *configs.Config) string {
	athlete, err := uc.api(cfg).GetAthlete(ctx)
	if err != nil {
		uc.logger.Warn("Failed to fetch fitness summary", slog.Any("error", err))
		return apiErrorResponse(err)
	}

	if athlete.CTL == nil && athlete.ATL == nil {
		return domain.ErrorResponse{
			Message: "No fitness data available. Complete some activities to build your fitness history.",
			Kind:    domain.ErrNoData,
		}.Build()
	}

	fitness := map[string]any{}
	if athlete.CTL != nil {
		fitness["ctl"] = map[string]any{
			"value":       round1(*athlete.CTL),
			"description": "Chronic Training Load (Fitness)",
			"explanation": "Long-term training load (42-day weighted average)",
		}
	}
	if athlete.ATL != nil {
		fitness["atl"] = map[string]any{
			"value":       round1(*athlete.ATL),
			"description": "Acute Training Load (Fatigue)",
			"explanation": "Short-term training load (7-day weighted average)",
		}
	}
	if athlete.TSB != nil {
		fitness["tsb"] = map[string]any{
			"value":       round1(*athlete.TSB),
			"description": "Training Stress Balance (Form)",
			"explanation": "Fitness - Fatigue",
		}
	}
	if athlete.RampRate != nil {
		fitness["ramp_rate"] = map[string]any{
			"value":       round1(*athlete.RampRate),
			"description": "Rate of fitness change (CTL increase per week)",
		}
	}

	analysis := map[string]any{}
	if athlete.TSB != nil {
		status, _ := domain.ClassifyForm(*athlete.TSB)
		analysis["form_status"] = string(status)
		analysis["form_interpretation"] = formInterpretations[status]
	}
	if athlete.RampRate != nil {
		status, _ := domain.ClassifyRampRate(*athlete.RampRate)
		analysis["ramp_rate_status"] = string(status)
		switch status {
		case domain.RampHighRisk:
			analysis["ramp_rate_interpretation"] = "Fitness increasing too fast"
			analysis["ramp_rate_warning"] = "Reduce training load to avoid overtraining"
		case domain.RampCaution:
			analysis["ramp_rate_interpretation"] = "Fitness increasing rapidly"
			analysis["ramp_rate_warning"] = "Monitor fatigue and recovery closely"
		case domain.RampGood:
			analysis["ramp_rate_interpretation"] = "Sustainable fitness gain"
		case domain.RampDeclining:
			analysis["ramp_rate_interpretation"] = "Fitness slightly declining (taper/recovery)"
		default:
			analysis["ramp_rate_interpretation"] = "Fitness declining significantly"
		}
	}

	if athlete.TSB != nil && athlete.RampRate != nil {
		tsb, ramp := *athlete.TSB, *athlete.RampRate
		var recommendations []string
		switch {
		case tsb < -30:
			recommendations = []string{
				"Take an easy week or rest days",
				"Focus on recovery and low-intensity activities",
			}
		case tsb < -10 && ramp > 5:
			recommendations = []string{
				"Balance hard training with recovery",
				"Consider a recovery week soon",
			}
		case tsb > 5:
			if ramp < 0 {
				recommendations = []string{
					"Good time to increase training load",
					"Consider adding volume or intensity",
				}
			} else {
				recommendations = []string{
					"You're fresh and can handle hard workouts",
					"Good time for races or breakthrough sessions",
				}
			}
		default:
			recommendations = []string{
				"Continue current training approach",
				"Mix hard sessions with recovery days",
			}
		}
		analysis["recommendations"] = recommendations
	}

	return domain.Response{
		Data: map[string]any{
			"athlete_name":    athlete.Name,
			"fitness_metrics": fitness,
		},
		Analysis:  analysis,
		QueryType: "fitness_summary",
	}.Build()
}
