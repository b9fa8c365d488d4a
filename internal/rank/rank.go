// Package rank aggregates flattened route records per itinerary and selects
// the fastest route by elapsed wall-clock time.
package rank

import (
	"errors"
	"strings"
	"time"

	"github.com/betterway/betterway/internal/extract"
)

// labelSeparator joins the winning itinerary's modes in the route label.
const labelSeparator = " & "

// ErrEmptyDataset indicates that no itinerary could be ranked: either the
// record set was empty, or every itinerary lost all of its legs to missing
// timestamps.
var ErrEmptyDataset = errors.New("no rankable itineraries in dataset")

// Aggregate is the per-itinerary time summary derived from its legs.
type Aggregate struct {
	// ID is the itinerary identifier shared by the aggregated legs.
	ID string

	// EarliestStart is the minimum leg start time.
	EarliestStart time.Time

	// LatestEnd is the maximum leg end time.
	LatestEnd time.Time

	// TravelTime is the sum of per-leg (end − start) durations: active
	// movement only, excluding waits and transfer gaps.
	TravelTime time.Duration

	// Elapsed is LatestEnd − EarliestStart: the real-world wall-clock span
	// including waits. For non-overlapping legs Elapsed >= TravelTime;
	// overlapping legs are tolerated and simply yield a smaller Elapsed.
	Elapsed time.Duration

	// Legs is the number of legs that contributed to the aggregation. Legs
	// missing either timestamp are excluded and not counted.
	Legs int
}

// Selection describes the winning itinerary.
type Selection struct {
	// ID is the winning itinerary identifier, kept for traceability.
	ID string

	// Modes are the distinct transport modes across all of the winner's
	// legs, in first-occurrence order. Legs without a mode are skipped.
	Modes []string

	// Label is Modes joined with " & ", e.g. "WALK & TRANSIT".
	Label string

	// Elapsed and TravelTime are the winner's aggregate times.
	Elapsed    time.Duration
	TravelTime time.Duration
}

// Aggregates computes per-itinerary time summaries from a flat record set.
// Results are ordered by the first appearance of each identifier in the
// input, which makes downstream tie-breaking deterministic.
//
// Legs missing a start or end timestamp cannot contribute to min/max/sum and
// are excluded; an itinerary whose legs are all excluded is dropped entirely.
func Aggregates(records []extract.RouteRecord) []Aggregate {
	byID := make(map[string]*Aggregate)
	var order []string

	for _, rec := range records {
		if rec.StartTime == nil || rec.EndTime == nil {
			continue
		}

		start := time.UnixMilli(*rec.StartTime)
		end := time.UnixMilli(*rec.EndTime)

		agg, ok := byID[rec.ID]
		if !ok {
			agg = &Aggregate{
				ID:            rec.ID,
				EarliestStart: start,
				LatestEnd:     end,
			}
			byID[rec.ID] = agg
			order = append(order, rec.ID)
		} else {
			if start.Before(agg.EarliestStart) {
				agg.EarliestStart = start
			}
			if end.After(agg.LatestEnd) {
				agg.LatestEnd = end
			}
		}

		agg.TravelTime += end.Sub(start)
		agg.Legs++
	}

	aggregates := make([]Aggregate, 0, len(order))
	for _, id := range order {
		agg := byID[id]
		agg.Elapsed = agg.LatestEnd.Sub(agg.EarliestStart)
		aggregates = append(aggregates, *agg)
	}
	return aggregates
}

// SelectBest picks the itinerary with the smallest elapsed wall-clock time
// and builds its human-readable mode label. Ties break toward the itinerary
// whose identifier appears first in the input: a later candidate must be
// strictly faster to displace the current winner, so repeated runs over the
// same input select the same itinerary.
//
// Returns ErrEmptyDataset when no itinerary can be ranked.
func SelectBest(records []extract.RouteRecord) (*Selection, error) {
	aggregates := Aggregates(records)
	if len(aggregates) == 0 {
		return nil, ErrEmptyDataset
	}

	best := aggregates[0]
	for _, agg := range aggregates[1:] {
		if agg.Elapsed < best.Elapsed {
			best = agg
		}
	}

	// The label covers every leg of the winner, including legs that were
	// excluded from time aggregation for lack of timestamps.
	var modes []string
	seen := make(map[string]struct{})
	for _, rec := range records {
		if rec.ID != best.ID || rec.Mode == "" {
			continue
		}
		if _, ok := seen[rec.Mode]; ok {
			continue
		}
		seen[rec.Mode] = struct{}{}
		modes = append(modes, rec.Mode)
	}

	return &Selection{
		ID:         best.ID,
		Modes:      modes,
		Label:      strings.Join(modes, labelSeparator),
		Elapsed:    best.Elapsed,
		TravelTime: best.TravelTime,
	}, nil
}
