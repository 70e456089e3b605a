package domain

// FormStatus buckets Training Stress Balance (TSB, fitness minus fatigue)
// into a coaching interpretation.
type FormStatus string

const (
	FormVeryFresh    FormStatus = "very_fresh"
	FormRecovered    FormStatus = "recovered"
	FormOptimal      FormStatus = "optimal"
	FormFatigued     FormStatus = "fatigued"
	FormVeryFatigued FormStatus = "very_fatigued"
)

// ClassifyForm maps a TSB value onto the five form bands. The bands are
// contiguous and cover the whole real line, so every input classifies.
// Callers with no TSB reading skip classification instead of passing a
// sentinel.
func ClassifyForm(tsb float64) (FormStatus, string) {
	switch {
	case tsb > 20:
		return FormVeryFresh, "Very fresh - good for racing"
	case tsb > 5:
		return FormRecovered, "Recovered and ready for hard training"
	case tsb > -10:
		return FormOptimal, "Optimal zone - productive training possible"
	case tsb > -30:
		return FormFatigued, "Accumulating fatigue - recovery may be needed"
	default:
		return FormVeryFatigued, "High fatigue - prioritize recovery"
	}
}

// RampStatus buckets the weekly CTL ramp rate into an injury-risk
// interpretation.
type RampStatus string

const (
	RampHighRisk               RampStatus = "high_risk"
	RampCaution                RampStatus = "caution"
	RampGood                   RampStatus = "good"
	RampDeclining              RampStatus = "declining"
	RampDecliningSignificantly RampStatus = "declining_significantly"
)

// ClassifyRampRate maps a ramp rate (CTL increase per week) onto the five
// risk bands, partitioned at 8, 5, 0 and -5.
func ClassifyRampRate(rate float64) (RampStatus, string) {
	switch {
	case rate > 8:
		return RampHighRisk, "Fitness increasing too fast - reduce training load"
	case rate > 5:
		return RampCaution, "Fitness increasing rapidly - monitor fatigue closely"
	case rate > 0:
		return RampGood, "Sustainable fitness gain"
	case rate > -5:
		return RampDeclining, "Fitness slightly declining (taper/recovery)"
	default:
		return RampDecliningSignificantly, "Fitness declining significantly"
	}
}
