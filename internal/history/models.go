// Package history records each day's winning route selection for later
// analysis.
package history

import (
	"errors"
	"time"
)

// ErrSelectionNotFound indicates no selection matched the query.
var ErrSelectionNotFound = errors.New("selection not found")

// Selection is one recorded best-route decision.
type Selection struct {
	// ID is the record identifier.
	ID string

	// ItineraryID is the winning itinerary identifier from the route table.
	ItineraryID string

	// Label is the human-readable mode label, e.g. "WALK & TRANSIT".
	Label string

	// ElapsedSeconds is the winner's wall-clock span.
	ElapsedSeconds int64

	// TravelSeconds is the winner's summed active travel time.
	TravelSeconds int64

	// SourceKey is the CSV object the selection was computed from.
	SourceKey string

	// CreatedAt is when the selection was recorded.
	CreatedAt time.Time
}
