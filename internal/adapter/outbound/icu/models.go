package icu

// API models for the Intervals.icu REST API. Optional numeric fields where a
// zero value is meaningless (distance, watts) are plain values; fields where
// zero is a legitimate reading (TSB, trainer flag, interval offsets) are
// pointers so absence survives decoding.

// SportSettings carries per-sport thresholds from the athlete profile.
type SportSettings struct {
	Type          string  `json:"type,omitempty"`
	FTP           int     `json:"ftp,omitempty"`
	FTHR          int     `json:"fthr,omitempty"`
	PaceThreshold float64 `json:"pace_threshold,omitempty"`
	SwimThreshold float64 `json:"swim_threshold,omitempty"`
}

// Athlete is the profile of the authenticated (or coached) athlete, including
// the current training load numbers.
type Athlete struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email,omitempty"`
	Sex    string   `json:"sex,omitempty"`
	DOB    string   `json:"dob,omitempty"`
	Weight float64  `json:"weight,omitempty"`
	CTL    *float64 `json:"ctl,omitempty"`
	ATL    *float64 `json:"atl,omitempty"`
	TSB    *float64 `json:"tsb,omitempty"`
	// CTL change per week.
	RampRate      *float64        `json:"ramp_rate,omitempty"`
	SportSettings []SportSettings `json:"sport_settings,omitempty"`
}

// Activity is a recorded activity. The summary endpoints return the same
// shape with most fields empty.
type Activity struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name,omitempty"`
	Type               string  `json:"type,omitempty"`
	StartDateLocal     string  `json:"start_date_local,omitempty"`
	Description        string  `json:"description,omitempty"`
	MovingTime         int     `json:"moving_time,omitempty"`
	ElapsedTime        int     `json:"elapsed_time,omitempty"`
	Distance           float64 `json:"distance,omitempty"`
	TotalElevationGain float64 `json:"total_elevation_gain,omitempty"`

	AverageSpeed float64 `json:"average_speed,omitempty"`
	MaxSpeed     float64 `json:"max_speed,omitempty"`

	AverageWatts         float64 `json:"average_watts,omitempty"`
	NormalizedPower      float64 `json:"normalized_power,omitempty"`
	WeightedAverageWatts float64 `json:"weighted_average_watts,omitempty"`
	MaxWatts             float64 `json:"max_watts,omitempty"`
	VariabilityIndex     float64 `json:"variability_index,omitempty"`
	EfficiencyFactor     float64 `json:"efficiency_factor,omitempty"`

	AverageHeartrate float64 `json:"average_heartrate,omitempty"`
	MaxHeartrate     float64 `json:"max_heartrate,omitempty"`
	AverageCadence   float64 `json:"average_cadence,omitempty"`
	MaxCadence       float64 `json:"max_cadence,omitempty"`

	ICUTrainingLoad float64 `json:"icu_training_load,omitempty"`
	ICUIntensity    float64 `json:"icu_intensity,omitempty"`
	TSS             float64 `json:"tss,omitempty"`
	HRSS            float64 `json:"hrss,omitempty"`
	TRIMP           float64 `json:"trimp,omitempty"`

	Feel               *int  `json:"feel,omitempty"`
	PerceivedExertion  *int  `json:"perceived_exertion,omitempty"`
	Trainer            *bool `json:"trainer,omitempty"`
	Commute            *bool `json:"commute,omitempty"`
	Indoor             bool  `json:"indoor,omitempty"`

	Calories   int    `json:"calories,omitempty"`
	DeviceName string `json:"device_name,omitempty"`
}

// Interval is one segment of a structured workout.
type Interval struct {
	ID       int    `json:"id"`
	Type     string `json:"type,omitempty"`
	Start    *int   `json:"start,omitempty"`
	End      *int   `json:"end,omitempty"`
	Duration *int   `json:"duration,omitempty"`

	AverageWatts     float64 `json:"average_watts,omitempty"`
	NormalizedPower  float64 `json:"normalized_power,omitempty"`
	AverageHeartrate float64 `json:"average_heartrate,omitempty"`
	MaxHeartrate     float64 `json:"max_heartrate,omitempty"`
	AverageCadence   float64 `json:"average_cadence,omitempty"`
	AverageSpeed     float64 `json:"average_speed,omitempty"`
	Distance         float64 `json:"distance,omitempty"`

	Target    string   `json:"target,omitempty"`
	TargetMin *float64 `json:"target_min,omitempty"`
	TargetMax *float64 `json:"target_max,omitempty"`
}

// BestEffort is one peak performance window inside a single activity.
type BestEffort struct {
	Name        string  `json:"name"`
	ElapsedTime int     `json:"elapsed_time"`
	MovingTime  int     `json:"moving_time,omitempty"`
	Distance    float64 `json:"distance,omitempty"`

	AverageWatts     float64 `json:"average_watts,omitempty"`
	NormalizedPower  float64 `json:"normalized_power,omitempty"`
	AverageHeartrate float64 `json:"average_heartrate,omitempty"`
	AverageCadence   float64 `json:"average_cadence,omitempty"`
	AverageSpeed     float64 `json:"average_speed,omitempty"`

	StartIndex *int `json:"start_index,omitempty"`
	EndIndex   *int `json:"end_index,omitempty"`
}

// Stream is one time-series channel of an activity. Data is kept raw because
// channel element types differ (numbers, booleans, lat/lng pairs).
type Stream struct {
	Type string `json:"type"`
	Data []any  `json:"data"`
}

// CurveEntry is one point of an athlete-level best-effort curve. Exactly one
// of Watts, BPM or Pace is populated depending on which curve was fetched.
type CurveEntry struct {
	Secs          float64 `json:"secs"`
	Watts         float64 `json:"watts,omitempty"`
	BPM           float64 `json:"bpm,omitempty"`
	Pace          float64 `json:"pace,omitempty"`
	Date          string  `json:"date,omitempty"`
	SrcActivityID string  `json:"activity_id,omitempty"`
}

// HistogramBin is one bucket of a distribution histogram.
type HistogramBin struct {
	Min   float64  `json:"min"`
	Max   float64  `json:"max"`
	Count int      `json:"count"`
	Secs  *float64 `json:"secs,omitempty"`
}

// Histogram is a full metric distribution for one activity.
type Histogram struct {
	Bins       []HistogramBin `json:"bins"`
	TotalCount int            `json:"total_count"`
	TotalSecs  *float64       `json:"total_secs,omitempty"`
}

// Wellness is one day of wellness data. The API keys these records by date
// and uses camelCase field names.
type Wellness struct {
	ID string `json:"id"`

	SleepSecs     int     `json:"sleepSecs,omitempty"`
	SleepQuality  int     `json:"sleepQuality,omitempty"`
	SleepScore    float64 `json:"sleepScore,omitempty"`
	AvgSleepingHR float64 `json:"avgSleepingHR,omitempty"`

	HRV       float64 `json:"hrv,omitempty"`
	HRVSDNN   float64 `json:"hrvSDNN,omitempty"`
	RestingHR int     `json:"restingHR,omitempty"`
	BaevskySI float64 `json:"baevskySI,omitempty"`

	Fatigue    int     `json:"fatigue,omitempty"`
	Soreness   int     `json:"soreness,omitempty"`
	Stress     int     `json:"stress,omitempty"`
	Mood       int     `json:"mood,omitempty"`
	Motivation int     `json:"motivation,omitempty"`
	Readiness  float64 `json:"readiness,omitempty"`
	Injury     string  `json:"injury,omitempty"`

	Weight  float64 `json:"weight,omitempty"`
	BodyFat float64 `json:"bodyFat,omitempty"`

	Systolic    int     `json:"systolic,omitempty"`
	Diastolic   int     `json:"diastolic,omitempty"`
	SpO2        float64 `json:"spO2,omitempty"`
	Respiration float64 `json:"respiration,omitempty"`

	Steps           int     `json:"steps,omitempty"`
	KcalConsumed    int     `json:"kcalConsumed,omitempty"`
	HydrationVolume float64 `json:"hydrationVolume,omitempty"`

	BloodGlucose   float64 `json:"bloodGlucose,omitempty"`
	Lactate        float64 `json:"lactate,omitempty"`
	MenstrualPhase string  `json:"menstrualPhase,omitempty"`

	CTL      float64 `json:"ctl,omitempty"`
	ATL      float64 `json:"atl,omitempty"`
	TSB      float64 `json:"tsb,omitempty"`
	RampRate float64 `json:"rampRate,omitempty"`

	Comments string `json:"comments,omitempty"`
}

// Event is a calendar entry: a planned workout, note, race or goal.
type Event struct {
	ID             int     `json:"id"`
	StartDateLocal string  `json:"start_date_local"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Description    string  `json:"description,omitempty"`
	Type           string  `json:"type,omitempty"`
	MovingTime     int     `json:"moving_time,omitempty"`
	Distance       float64 `json:"distance,omitempty"`
	ICUTrainingLoad int    `json:"icu_training_load,omitempty"`
}

// GearReminder is a maintenance reminder attached to a gear item. Distances
// are meters, times are seconds.
type GearReminder struct {
	ID            int      `json:"id"`
	Text          string   `json:"text"`
	DistanceAlert *float64 `json:"distance_alert,omitempty"`
	TimeAlert     *int     `json:"time_alert,omitempty"`
	IsDue         *bool    `json:"is_due,omitempty"`
	DueDistance   *float64 `json:"due_distance,omitempty"`
	DueTime       *int     `json:"due_time,omitempty"`
	SnoozedUntil  string   `json:"snoozed_until,omitempty"`
}

// Gear is an equipment item with accumulated usage.
type Gear struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	GearType      string         `json:"gear_type,omitempty"`
	Brand         string         `json:"brand,omitempty"`
	Model         string         `json:"model,omitempty"`
	Active        bool           `json:"active"`
	Primary       bool           `json:"primary,omitempty"`
	Distance      *float64       `json:"distance,omitempty"`
	MovingTime    *int           `json:"moving_time,omitempty"`
	ActivityCount *int           `json:"activity_count,omitempty"`
	Reminders     []GearReminder `json:"reminders,omitempty"`
}

// WorkoutFolder is a workout library folder; folders with DurationWeeks set
// are training plans.
type WorkoutFolder struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	NumWorkouts     int     `json:"num_workouts,omitempty"`
	StartDateLocal  string  `json:"start_date_local,omitempty"`
	DurationWeeks   *int    `json:"duration_weeks,omitempty"`
	HoursPerWeekMin float64 `json:"hours_per_week_min,omitempty"`
	HoursPerWeekMax float64 `json:"hours_per_week_max,omitempty"`
}

// Workout is one structured workout stored in the library.
type Workout struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Type            string  `json:"type,omitempty"`
	FolderID        int     `json:"folder_id,omitempty"`
	MovingTime      int     `json:"moving_time,omitempty"`
	Distance        float64 `json:"distance,omitempty"`
	ICUTrainingLoad float64 `json:"icu_training_load,omitempty"`
	ICUIntensity    float64 `json:"icu_intensity,omitempty"`
	Joules          float64 `json:"joules,omitempty"`
	JoulesAboveFTP  float64 `json:"joules_above_ftp,omitempty"`
	Indoor          *bool   `json:"indoor,omitempty"`
	Color           string  `json:"color,omitempty"`
}
