// Package planner provides journey planning against an external transit
// routing provider.
package planner

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for planner operations.
var (
	// ErrProviderUnavailable indicates the planner provider is down or the circuit breaker is open.
	ErrProviderUnavailable = errors.New("planner provider unavailable")
	// ErrUnauthorized indicates the API credentials were rejected.
	ErrUnauthorized = errors.New("planner credentials rejected")
	// ErrRateLimitExceeded indicates the API quota has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	// ErrInvalidCoordinates indicates the provided coordinates are invalid or out of range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Planner defines the interface for journey plan providers.
type Planner interface {
	// Plan retrieves candidate itineraries between two points.
	Plan(ctx context.Context, req PlanRequest) (*JourneyPlan, error)
	// Name returns the provider identifier for logging.
	Name() string
}

// Coordinate represents a geographic point.
type Coordinate struct {
	Lat float64
	Lon float64
}

// PlanRequest is the request for a journey plan.
type PlanRequest struct {
	Origin      Coordinate
	Destination Coordinate

	// Departure is the requested departure moment. Zero value means "now",
	// resolved by the provider client.
	Departure time.Time

	// Modes restricts the transport modes considered. Empty means the
	// provider default (transit plus walking).
	Modes []string
}

// JourneyPlan is the raw journey plan document returned by a provider.
// All nested fields are optional; absent fields stay nil rather than being
// defaulted, so downstream consumers can tell "missing" from "zero".
type JourneyPlan struct {
	Plan *Plan `json:"plan,omitempty"`
}

// Plan holds the ordered candidate itineraries of a journey plan.
type Plan struct {
	Itineraries []Itinerary `json:"itineraries,omitempty"`
}

// Itinerary is one candidate route from origin to destination.
type Itinerary struct {
	// Duration is the total itinerary duration in seconds.
	Duration *int64 `json:"duration,omitempty"`
	// Transfers is the number of transfers.
	Transfers *int `json:"transfers,omitempty"`
	// Legs are the ordered segments of the itinerary.
	Legs []Leg `json:"legs,omitempty"`
}

// Leg is one atomic segment of an itinerary.
type Leg struct {
	// Mode is the transport mode label (e.g. WALK, TRANSIT). Empty means unknown.
	Mode string `json:"mode,omitempty"`
	// StartTime and EndTime are epoch-millisecond timestamps.
	StartTime *int64 `json:"startTime,omitempty"`
	EndTime   *int64 `json:"endTime,omitempty"`
	From      *Place `json:"from,omitempty"`
	To        *Place `json:"to,omitempty"`
	// Route is the route or line identifier.
	Route string `json:"route,omitempty"`
	// Distance is the leg distance in meters.
	Distance *float64 `json:"distance,omitempty"`
	// AgencyName is the operating agency.
	AgencyName string `json:"agencyName,omitempty"`
}

// Place is a named endpoint of a leg.
type Place struct {
	Name string `json:"name,omitempty"`
}

// Error provides detailed error information from the planner provider.
type Error struct {
	Provider string // Provider that generated the error
	Code     string // Error code from the provider
	Message  string // Human-readable error message
	Err      error  // Underlying error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is transient and the request can be retried.
func (e *Error) IsRetryable() bool {
	return errors.Is(e.Err, ErrProviderUnavailable) || errors.Is(e.Err, ErrRateLimitExceeded)
}
