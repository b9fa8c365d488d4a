// Package extract flattens journey plan documents into tabular route records,
// one row per itinerary leg.
package extract

import (
	"github.com/google/uuid"

	"github.com/betterway/betterway/internal/planner"
)

// RouteRecord is one flattened leg of an itinerary. Its ID groups it with the
// other legs of the same itinerary; the identifier is opaque, unique within
// one extraction run, and carries no ordering meaning.
//
// Pointer fields are nil when the source document omitted the value. Absent
// values serialize as empty CSV cells, never as fabricated defaults.
type RouteRecord struct {
	Mode      string   `csv:"mode"`
	StartTime *int64   `csv:"start_time,omitempty"`
	EndTime   *int64   `csv:"end_time,omitempty"`
	From      string   `csv:"from"`
	To        string   `csv:"to"`
	Route     string   `csv:"route"`
	Distance  *float64 `csv:"distance,omitempty"`
	Agency    string   `csv:"agency"`
	ID        string   `csv:"id"`
	Duration  *int64   `csv:"duration,omitempty"`
	Transfers *int     `csv:"transfers,omitempty"`
	Modes     ModeList `csv:"modes"`
}

// Records flattens a journey plan into route records, one per (itinerary,
// leg) pair in document order. Each itinerary gets a fresh identifier shared
// by all of its legs, plus copies of the itinerary's duration, transfer count
// and deduplicated mode set.
//
// A document without a plan or without itineraries yields an empty result.
// Itineraries without legs contribute no rows.
func Records(plan planner.JourneyPlan) []RouteRecord {
	if plan.Plan == nil || len(plan.Plan.Itineraries) == 0 {
		return nil
	}

	var records []RouteRecord
	for i := range plan.Plan.Itineraries {
		itinerary := &plan.Plan.Itineraries[i]
		id := uuid.NewString()
		modes := itineraryModes(itinerary.Legs)

		for _, leg := range itinerary.Legs {
			record := RouteRecord{
				Mode:      leg.Mode,
				StartTime: leg.StartTime,
				EndTime:   leg.EndTime,
				Route:     leg.Route,
				Distance:  leg.Distance,
				Agency:    leg.AgencyName,
				ID:        id,
				Duration:  itinerary.Duration,
				Transfers: itinerary.Transfers,
				Modes:     modes,
			}
			if leg.From != nil {
				record.From = leg.From.Name
			}
			if leg.To != nil {
				record.To = leg.To.Name
			}
			records = append(records, record)
		}
	}

	return records
}

// itineraryModes collects the distinct non-empty modes across an itinerary's
// legs. Legs without a mode contribute nothing to the set.
func itineraryModes(legs []planner.Leg) ModeList {
	var modes ModeList
	seen := make(map[string]struct{}, len(legs))
	for _, leg := range legs {
		if leg.Mode == "" {
			continue
		}
		if _, ok := seen[leg.Mode]; ok {
			continue
		}
		seen[leg.Mode] = struct{}{}
		modes = append(modes, leg.Mode)
	}
	return modes
}
