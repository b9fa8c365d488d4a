package rank

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betterway/betterway/internal/extract"
)

func int64Ptr(v int64) *int64 { return &v }

func leg(id, mode string, startMs, endMs int64) extract.RouteRecord {
	return extract.RouteRecord{
		ID:        id,
		Mode:      mode,
		StartTime: int64Ptr(startMs),
		EndTime:   int64Ptr(endMs),
	}
}

func TestAggregates(t *testing.T) {
	records := []extract.RouteRecord{
		leg("a", "WALK", 0, 300_000),
		leg("a", "TRANSIT", 360_000, 900_000), // 60s wait after the walk
		leg("b", "WALK", 0, 200_000),
	}

	aggregates := Aggregates(records)
	require.Len(t, aggregates, 2)

	a := aggregates[0]
	assert.Equal(t, "a", a.ID)
	assert.Equal(t, time.UnixMilli(0), a.EarliestStart)
	assert.Equal(t, time.UnixMilli(900_000), a.LatestEnd)
	assert.Equal(t, 15*time.Minute, a.Elapsed)
	assert.Equal(t, 14*time.Minute, a.TravelTime)
	assert.Equal(t, 2, a.Legs)

	// Wall-clock span includes the wait, so it dominates travel time.
	assert.GreaterOrEqual(t, a.Elapsed, a.TravelTime)

	b := aggregates[1]
	assert.Equal(t, "b", b.ID)
	assert.Equal(t, 200*time.Second, b.Elapsed)
	assert.Equal(t, b.Elapsed, b.TravelTime)
}

func TestAggregates_SkipsLegsWithoutTimestamps(t *testing.T) {
	records := []extract.RouteRecord{
		leg("a", "WALK", 0, 300_000),
		{ID: "a", Mode: "TRANSIT"}, // no timestamps
		{ID: "b", Mode: "WALK", StartTime: int64Ptr(0)}, // end missing
	}

	aggregates := Aggregates(records)
	require.Len(t, aggregates, 1, "itinerary b has no rankable legs")
	assert.Equal(t, "a", aggregates[0].ID)
	assert.Equal(t, 1, aggregates[0].Legs)
}

func TestSelectBest_FastestElapsedWins(t *testing.T) {
	// Itinerary a: walk 0-300s, transit 300-900s -> elapsed 900s.
	// Itinerary b: walk 0-200s, transit 200-1000s -> elapsed 1000s.
	records := []extract.RouteRecord{
		leg("a", "WALK", 0, 300_000),
		leg("a", "TRANSIT", 300_000, 900_000),
		leg("b", "WALK", 0, 200_000),
		leg("b", "TRANSIT", 200_000, 1_000_000),
	}

	selection, err := SelectBest(records)
	require.NoError(t, err)

	assert.Equal(t, "a", selection.ID)
	assert.Equal(t, "WALK & TRANSIT", selection.Label)
	assert.Equal(t, []string{"WALK", "TRANSIT"}, selection.Modes)
	assert.Equal(t, 900*time.Second, selection.Elapsed)
}

func TestSelectBest_SingleItinerary(t *testing.T) {
	records := []extract.RouteRecord{
		leg("only", "WALK", 0, 120_000),
	}

	selection, err := SelectBest(records)
	require.NoError(t, err)
	assert.Equal(t, "only", selection.ID)
	assert.Equal(t, "WALK", selection.Label)
}

func TestSelectBest_TieIsDeterministic(t *testing.T) {
	records := []extract.RouteRecord{
		leg("first", "WALK", 0, 600_000),
		leg("second", "TRANSIT", 0, 600_000),
	}

	for i := 0; i < 10; i++ {
		selection, err := SelectBest(records)
		require.NoError(t, err)
		assert.Equal(t, "first", selection.ID, "ties break toward first appearance")
	}
}

func TestSelectBest_LabelPreservesFirstOccurrenceOrder(t *testing.T) {
	records := []extract.RouteRecord{
		leg("a", "TRANSIT", 0, 300_000),
		leg("a", "WALK", 300_000, 400_000),
		leg("a", "TRANSIT", 400_000, 700_000),
	}

	selection, err := SelectBest(records)
	require.NoError(t, err)
	assert.Equal(t, "TRANSIT & WALK", selection.Label)
}

func TestSelectBest_LabelIncludesUntimedLegs(t *testing.T) {
	records := []extract.RouteRecord{
		leg("a", "WALK", 0, 300_000),
		{ID: "a", Mode: "TRANSIT"}, // excluded from aggregation, still labeled
	}

	selection, err := SelectBest(records)
	require.NoError(t, err)
	assert.Equal(t, "WALK & TRANSIT", selection.Label)
}

func TestSelectBest_EmptyDataset(t *testing.T) {
	_, err := SelectBest(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyDataset))

	// All legs missing timestamps escalates to the same error.
	_, err = SelectBest([]extract.RouteRecord{
		{ID: "a", Mode: "WALK"},
		{ID: "b", Mode: "TRANSIT"},
	})
	assert.True(t, errors.Is(err, ErrEmptyDataset))
}
