package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionAroundSortsAndAnnotates(t *testing.T) {
	refs := []ActivityRef{
		{ID: "c", StartDateLocal: "2024-06-03T08:00:00"},
		{ID: "a", StartDateLocal: "2024-06-01T08:00:00"},
		{ID: "b", StartDateLocal: "2024-06-02T08:00:00"},
	}

	tl := PositionAround(refs, "b")
	require.Len(t, tl.Placements, 3)
	assert.Equal(t, 1, tl.RefIndex)
	assert.Equal(t, 1, tl.Before)
	assert.Equal(t, 1, tl.After)

	assert.Equal(t, "a", tl.Placements[0].ID)
	assert.Equal(t, PositionBefore, tl.Placements[0].Position)
	assert.Equal(t, 1, tl.Placements[0].Offset)

	assert.True(t, tl.Placements[1].IsReference)
	assert.Empty(t, tl.Placements[1].Position)
	assert.Equal(t, 0, tl.Placements[1].Offset)

	assert.Equal(t, "c", tl.Placements[2].ID)
	assert.Equal(t, PositionAfter, tl.Placements[2].Position)
}

func TestPositionAroundOffsetsCountEntries(t *testing.T) {
	refs := []ActivityRef{
		{ID: "1", StartDateLocal: "2024-06-01T08:00:00"},
		{ID: "2", StartDateLocal: "2024-06-01T18:00:00"},
		{ID: "3", StartDateLocal: "2024-06-05T08:00:00"},
	}

	// Offsets count timeline entries, not calendar days.
	tl := PositionAround(refs, "3")
	assert.Equal(t, 2, tl.Placements[0].Offset)
	assert.Equal(t, 1, tl.Placements[1].Offset)
	assert.Equal(t, 2, tl.Before)
	assert.Equal(t, 0, tl.After)
}

func TestPositionAroundMissingReference(t *testing.T) {
	refs := []ActivityRef{
		{ID: "a", StartDateLocal: "2024-06-01T08:00:00"},
		{ID: "b", StartDateLocal: "2024-06-02T08:00:00"},
	}

	tl := PositionAround(refs, "missing")
	assert.Equal(t, -1, tl.RefIndex)
	assert.Equal(t, 0, tl.Before)
	assert.Equal(t, 0, tl.After)
	for _, p := range tl.Placements {
		assert.False(t, p.IsReference)
		assert.Empty(t, p.Position)
	}
}

func TestPositionAroundDoesNotMutateInput(t *testing.T) {
	refs := []ActivityRef{
		{ID: "late", StartDateLocal: "2024-06-09T08:00:00"},
		{ID: "early", StartDateLocal: "2024-06-01T08:00:00"},
	}
	PositionAround(refs, "early")
	assert.Equal(t, "late", refs[0].ID)
}
