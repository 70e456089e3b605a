package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"intervals-icu-mcp/configs"
	"intervals-icu-mcp/internal/adapter/outbound/icu"
	"intervals-icu-mcp/internal/domain"
)

// Canonical durations highlighted in curve output. Power and HR share one
// set; pace uses race-oriented durations.
var powerHRDurations = []domain.DurationTarget{
	{Secs: 5, Label: "5_sec"},
	{Secs: 15, Label: "15_sec"},
	{Secs: 30, Label: "30_sec"},
	{Secs: 60, Label: "1_min"},
	{Secs: 120, Label: "2_min"},
	{Secs: 300, Label: "5_min"},
	{Secs: 600, Label: "10_min"},
	{Secs: 1200, Label: "20_min"},
	{Secs: 3600, Label: "1_hour"},
}

var paceDurations = []domain.DurationTarget{
	{Secs: 60, Label: "400m_equivalent"},
	{Secs: 180, Label: "1km_equivalent"},
	{Secs: 300, Label: "5_min"},
	{Secs: 600, Label: "10_min"},
	{Secs: 900, Label: "15_min"},
	{Secs: 1200, Label: "20_min"},
	{Secs: 1800, Label: "30_min"},
	{Secs: 3600, Label: "1_hour"},
}

// FTP is estimated as this fraction of 20-minute power.
const ftpFactor = 0.95

// The 20-minute point may deviate up to this many seconds and still anchor
// the FTP estimate.
const ftpDurationSlack = 120.0

type powerZone struct {
	name string
	low  float64
	high float64
}

var powerZones = []powerZone{
	{"recovery", 0, 0.55},
	{"endurance", 0.56, 0.75},
	{"tempo", 0.76, 0.90},
	{"threshold", 0.91, 1.05},
	{"vo2max", 1.06, 1.20},
	{"anaerobic", 1.21, 1.50},
}

type hrZone struct {
	name string
	low  float64
	high float64
}

var hrZones = []hrZone{
	{"zone_1_recovery", 0.50, 0.60},
	{"zone_2_endurance", 0.60, 0.70},
	{"zone_3_tempo", 0.70, 0.80},
	{"zone_4_threshold", 0.80, 0.90},
	{"zone_5_vo2max", 0.90, 1.00},
}

// CurvesUseCase implements the athlete-level best-effort curve tools.
type CurvesUseCase struct {
	api    func(cfg *configs.Config) CurvesAPI
	logger *slog.Logger
}

func NewCurvesUseCase(api func(cfg *configs.Config) CurvesAPI, logger *slog.Logger) *CurvesUseCase {
	return &CurvesUseCase{api: api, logger: logger.With("component", "curves_usecase")}
}

func curvePoints(entries []icu.CurveEntry, value func(icu.CurveEntry) float64) []domain.CurvePoint {
	points := make([]domain.CurvePoint, 0, len(entries))
	for _, e := range entries {
		points = append(points, domain.CurvePoint{
			Secs:       e.Secs,
			Value:      value(e),
			Date:       e.Date,
			ActivityID: e.SrcActivityID,
		})
	}
	return points
}

func durationRange(entries []icu.CurveEntry) map[string]any {
	minSecs, maxSecs := entries[0].Secs, entries[0].Secs
	for _, e := range entries[1:] {
		if e.Secs < minSecs {
			minSecs = e.Secs
		}
		if e.Secs > maxSecs {
			maxSecs = e.Secs
		}
	}
	return map[string]any{"min_seconds": minSecs, "max_seconds": maxSecs}
}

func effortDateRange(entries []icu.CurveEntry) map[string]any {
	var oldest, newest string
	for _, e := range entries {
		if e.Date == "" {
			continue
		}
		if oldest == "" || e.Date < oldest {
			oldest = e.Date
		}
		if newest == "" || e.Date > newest {
			newest = e.Date
		}
	}
	if oldest == "" {
		return nil
	}
	return map[string]any{"oldest": oldest, "newest": newest}
}

// PowerCurves returns peak power for canonical durations, summary statistics
// and an FTP estimate with power zones when a 20-minute effort exists.
func (uc *CurvesUseCase) PowerCurves(ctx context.Context, cfg *configs.Config, daysBack int, timePeriod string) string {
	oldest, label, ok := resolvePeriod(daysBack, timePeriod)
	if !ok {
		return validationError(invalidPeriodMessage)
	}

	entries, err := uc.api(cfg).GetPowerCurves(ctx, oldest)
	if err != nil {
		uc.logger.Warn("Failed to fetch power curves", slog.Any("error", err))
		return apiErrorResponse(err)
	}

	if len(entries) == 0 {
		return domain.Response{
			Data: map[string]any{"power_curve": []any{}, "period": label},
			Metadata: map[string]any{
				"message": fmt.Sprintf("No power curve data available for %s. Complete some rides with power to build your power curve.", label),
			},
		}.Build()
	}

	efforts := domain.PeakEfforts(curvePoints(entries, func(e icu.CurveEntry) float64 { return e.Watts }), powerHRDurations)
	peakEfforts := map[string]any{}
	for label, eff := range efforts {
		effort := map[string]any{
			"watts":            eff.Value,
			"duration_seconds": eff.Secs,
		}
		putS(effort, "date", eff.Date)
		putS(effort, "activity_id", eff.ActivityID)
		peakEfforts[label] = effort
	}

	maxPoint := entries[0]
	for _, e := range entries[1:] {
		if e.Watts > maxPoint.Watts {
			maxPoint = e
		}
	}
	summary := map[string]any{
		"total_data_points":         len(entries),
		"max_power_watts":           maxPoint.Watts,
		"max_power_duration_seconds": maxPoint.Secs,
		"duration_range":            durationRange(entries),
	}
	if dr := effortDateRange(entries); dr != nil {
		summary["effort_date_range"] = dr
	}

	data := map[string]any{
		"period":       label,
		"peak_efforts": peakEfforts,
		"summary":      summary,
	}

	if ftp := ftpAnalysis(entries); ftp != nil {
		data["ftp_analysis"] = ftp
	}

	return domain.Response{Data: data, QueryType: "power_curves"}.Build()
}

// ftpAnalysis estimates FTP from the curve point nearest to 20 minutes and
// derives classic power zones from it.
func ftpAnalysis(entries []icu.CurveEntry) map[string]any {
	best := entries[0]
	bestDist := math.Abs(entries[0].Secs - 1200)
	for _, e := range entries[1:] {
		if d := math.Abs(e.Secs - 1200); d < bestDist {
			best, bestDist = e, d
		}
	}
	if bestDist > ftpDurationSlack {
		return nil
	}
	estimatedFTP := int(best.Watts * ftpFactor)
	if estimatedFTP <= 0 {
		return nil
	}

	zones := map[string]any{}
	for _, z := range powerZones {
		zones[z.name] = map[string]any{
			"min_watts":       int(float64(estimatedFTP) * z.low),
			"max_watts":       int(float64(estimatedFTP) * z.high),
			"min_percent_ftp": int(z.low * 100),
			"max_percent_ftp": int(z.high * 100),
		}
	}
	return map[string]any{
		"twenty_min_power": best.Watts,
		"estimated_ftp":    estimatedFTP,
		"power_zones":      zones,
	}
}

// HRCurves returns peak heart rate for canonical durations plus HR zones
// derived from the observed maximum.
func (uc *CurvesUseCase) HRCurves(ctx context.Context, cfg *configs.Config, daysBack int, timePeriod string) string {
	oldest, label, ok := resolvePeriod(daysBack, timePeriod)
	if !ok {
		return validationError(invalidPeriodMessage)
	}

	entries, err := uc.api(cfg).GetHRCurves(ctx, oldest)
	if err != nil {
		uc.logger.Warn("Failed to fetch HR curves", slog.Any("error", err))
		return apiErrorResponse(err)
	}

	if len(entries) == 0 {
		return domain.Response{
			Data: map[string]any{"hr_curve": []any{}, "period": label},
			Metadata: map[string]any{
				"message": fmt.Sprintf("No HR curve data available for %s. Complete some activities with heart rate to build your HR curve.", label),
			},
		}.Build()
	}

	efforts := domain.PeakEfforts(curvePoints(entries, func(e icu.CurveEntry) float64 { return e.BPM }), powerHRDurations)
	peakEfforts := map[string]any{}
	for label, eff := range efforts {
		effort := map[string]any{
			"bpm":              eff.Value,
			"duration_seconds": eff.Secs,
		}
		putS(effort, "date", eff.Date)
		putS(effort, "activity_id", eff.ActivityID)
		peakEfforts[label] = effort
	}

	maxPoint := entries[0]
	for _, e := range entries[1:] {
		if e.BPM > maxPoint.BPM {
			maxPoint = e
		}
	}
	summary := map[string]any{
		"total_data_points":       len(entries),
		"max_hr_bpm":              maxPoint.BPM,
		"max_hr_duration_seconds": maxPoint.Secs,
		"duration_range":          durationRange(entries),
	}
	if dr := effortDateRange(entries); dr != nil {
		summary["effort_date_range"] = dr
	}

	data := map[string]any{
		"period":       label,
		"peak_efforts": peakEfforts,
		"summary":      summary,
	}

	if maxPoint.BPM != 0 {
		zones := map[string]any{}
		for _, z := range hrZones {
			zones[z.name] = map[string]any{
				"min_bpm":         int(maxPoint.BPM * z.low),
				"max_bpm":         int(maxPoint.BPM * z.high),
				"min_percent_max": int(z.low * 100),
				"max_percent_max": int(z.high * 100),
			}
		}
		data["hr_zones"] = zones
	}

	return domain.Response{Data: data, QueryType: "hr_curves"}.Build()
}

// PaceCurves returns best pace for canonical durations. With useGAP set the
// curve is grade adjusted.
func (uc *CurvesUseCase) PaceCurves(ctx context.Context, cfg *configs.Config, daysBack int, timePeriod string, useGAP bool) string {
	oldest, label, ok := resolvePeriod(daysBack, timePeriod)
	if !ok {
		return validationError(invalidPeriodMessage)
	}

	entries, err := uc.api(cfg).GetPaceCurves(ctx, oldest, useGAP)
	if err != nil {
		uc.logger.Warn("Failed to fetch pace curves", slog.Any("error", err))
		return apiErrorResponse(err)
	}

	if len(entries) == 0 {
		return domain.Response{
			Data: map[string]any{"pace_curve": []any{}, "period": label, "gap_enabled": useGAP},
			Metadata: map[string]any{
				"message": fmt.Sprintf("No pace curve data available for %s. Complete some runs/swims to build your pace curve.", label),
			},
		}.Build()
	}

	efforts := domain.PeakEfforts(curvePoints(entries, func(e icu.CurveEntry) float64 { return e.Pace }), paceDurations)
	peakEfforts := map[string]any{}
	for label, eff := range efforts {
		effort := map[string]any{
			"pace_min_per_km":  eff.Value,
			"duration_seconds": eff.Secs,
		}
		if eff.Value != 0 {
			effort["pace_formatted"] = domain.PaceString(eff.Value)
		}
		putS(effort, "date", eff.Date)
		putS(effort, "activity_id", eff.ActivityID)
		peakEfforts[label] = effort
	}

	// Fastest pace is the smallest value; zero means no pace recorded.
	var best *icu.CurveEntry
	for i := range entries {
		if entries[i].Pace == 0 {
			continue
		}
		if best == nil || entries[i].Pace < best.Pace {
			best = &entries[i]
		}
	}

	summary := map[string]any{
		"total_data_points": len(entries),
		"duration_range":    durationRange(entries),
		"gap_enabled":       useGAP,
	}
	if best != nil {
		summary["best_pace_min_per_km"] = best.Pace
		summary["best_pace_duration_seconds"] = best.Secs
		summary["best_pace_formatted"] = domain.PaceString(best.Pace)
	}
	if dr := effortDateRange(entries); dr != nil {
		summary["effort_date_range"] = dr
	}

	return domain.Response{
		Data: map[string]any{
			"period":       label,
			"peak_efforts": peakEfforts,
			"summary":      summary,
		},
		QueryType: "pace_curves",
	}.Build()
}
