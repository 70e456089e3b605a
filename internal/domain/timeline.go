package domain

import "sort"

// ActivityRef is the minimal identity the timeline positioner needs.
// StartDateLocal is the ISO-8601 local start time as delivered by the API;
// lexicographic comparison of these strings is chronological, so no timezone
// normalization is done.
type ActivityRef struct {
	ID             string
	StartDateLocal string
}

// Positions an activity can take relative to the reference.
const (
	PositionBefore = "before"
	PositionAfter  = "after"
)

// Placement annotates one activity relative to the reference activity.
// Offset is the number of entries between this activity and the reference in
// the sorted timeline; it is zero for the reference itself and whenever no
// reference was found.
type Placement struct {
	ActivityRef
	IsReference bool
	Position    string
	Offset      int
}

// Timeline is the chronologically sorted, annotated result of PositionAround.
// RefIndex is -1 when the reference activity is not in the collection, in
// which case no entry carries a position annotation.
type Timeline struct {
	Placements []Placement
	RefIndex   int
	Before     int
	After      int
}

// PositionAround sorts the activities ascending by local start date and marks
// each one as before or after the activity with refID. The input is not
// mutated. A missing reference is not an error: all entries are returned
// unannotated.
func PositionAround(refs []ActivityRef, refID string) Timeline {
	sorted := make([]ActivityRef, len(refs))
	copy(sorted, refs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDateLocal < sorted[j].StartDateLocal
	})

	refIndex := -1
	for i, r := range sorted {
		if r.ID == refID {
			refIndex = i
			break
		}
	}

	tl := Timeline{Placements: make([]Placement, len(sorted)), RefIndex: refIndex}
	for i, r := range sorted {
		p := Placement{ActivityRef: r}
		switch {
		case refIndex < 0:
			// No reference to position against.
		case i == refIndex:
			p.IsReference = true
		case i < refIndex:
			p.Position = PositionBefore
			p.Offset = refIndex - i
		default:
			p.Position = PositionAfter
			p.Offset = i - refIndex
		}
		tl.Placements[i] = p
	}
	if refIndex >= 0 {
		tl.Before = refIndex
		tl.After = len(sorted) - refIndex - 1
	}
	return tl
}
