package domain

import (
	"fmt"
	"math"
)

// Unit selects how histogram bin bounds are rendered.
type Unit string

const (
	UnitPower Unit = "power"
	UnitHR    Unit = "hr"
	UnitPace  Unit = "pace"
	UnitGAP   Unit = "gap"
)

// Bin is one histogram bucket covering the half-open range [Min, Max).
// Bins arrive pre-sorted by Min from the API and are not re-sorted here.
type Bin struct {
	Min   float64
	Max   float64
	Count int
	Secs  *float64
}

// FormattedBin is a Bin prepared for output. For power and hr the bounds are
// truncated to whole watts/bpm; for pace and gap the raw min/km bounds are
// kept and MinLabel/MaxLabel carry the "M:SS /km" rendering.
type FormattedBin struct {
	Min      float64
	Max      float64
	MinLabel string
	MaxLabel string
	Count    int
	Secs     *float64
}

// FormatBins renders every bin according to the metric unit.
func FormatBins(bins []Bin, unit Unit) []FormattedBin {
	out := make([]FormattedBin, 0, len(bins))
	for _, b := range bins {
		f := FormattedBin{Min: b.Min, Max: b.Max, Count: b.Count, Secs: b.Secs}
		switch unit {
		case UnitPace, UnitGAP:
			f.MinLabel = PaceString(b.Min)
			f.MaxLabel = PaceString(b.Max)
		default:
			f.Min = math.Trunc(b.Min)
			f.Max = math.Trunc(b.Max)
		}
		out = append(out, f)
	}
	return out
}

// PaceString renders a pace in minutes per kilometer as "M:SS /km".
// The seconds component is truncated, not rounded: 3.999 min/km renders as
// "3:59", never "4:00".
func PaceString(minPerKM float64) string {
	mins := int(minPerKM)
	secs := int((minPerKM - float64(mins)) * 60)
	return fmt.Sprintf("%d:%02d /km", mins, secs)
}
