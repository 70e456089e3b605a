package domain

import "math"

// CurvePoint is one entry of a best-effort curve: the peak value (watts, bpm
// or min/km) the athlete held for Secs seconds anywhere in the queried
// history. Secs values are expected to be unique within a curve but this is
// not relied upon.
type CurvePoint struct {
	Secs       float64
	Value      float64
	Date       string
	ActivityID string
}

// DurationTarget pairs a canonical duration with the label it appears under
// in tool output (60 -> "1_min" and so on).
type DurationTarget struct {
	Secs  float64
	Label string
}

// Effort is the curve point matched to one target duration.
type Effort struct {
	Value      float64
	Secs       float64
	Date       string
	ActivityID string
}

// Matched curve points must lie within this fraction of the target duration.
const peakEffortTolerance = 0.1

// PeakEfforts selects, for every target, the curve point whose duration is
// closest to the target, and keeps it only when it lies within 10% of the
// target. Targets without a point in tolerance are simply absent from the
// result. Canonical targets are round numbers (5s, 60s, 1200s) that rarely
// occur verbatim in raw curves, hence nearest-neighbor rather than exact
// lookup.
//
// When two points are equidistant from a target the first one in input order
// wins; the upstream API does not guarantee curve ordering, so equidistant
// results depend on it.
func PeakEfforts(points []CurvePoint, targets []DurationTarget) map[string]Effort {
	out := make(map[string]Effort, len(targets))
	if len(points) == 0 {
		return out
	}
	for _, t := range targets {
		best := points[0]
		bestDist := math.Abs(points[0].Secs - t.Secs)
		for _, p := range points[1:] {
			if d := math.Abs(p.Secs - t.Secs); d < bestDist {
				best, bestDist = p, d
			}
		}
		if bestDist <= t.Secs*peakEffortTolerance {
			out[t.Label] = Effort{
				Value:      best.Value,
				Secs:       best.Secs,
				Date:       best.Date,
				ActivityID: best.ActivityID,
			}
		}
	}
	return out
}
