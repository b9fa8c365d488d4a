// Package pipeline wires the journey plan collaborators into the linear jobs
// the deployed functions run: fetch, transform, notify and journal.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/rs/zerolog"

	"github.com/betterway/betterway/internal/planner"
	"github.com/betterway/betterway/internal/storage"
)

// DefaultPlanPrefix is where raw journey plan snapshots are stored.
const DefaultPlanPrefix = "routes_from_api"

// FetchConfig holds configuration for the fetch job.
type FetchConfig struct {
	// Planner retrieves journey plans (required).
	Planner planner.Planner

	// Store persists plan snapshots (required).
	Store storage.ObjectStore

	// Origin and Destination are the commute endpoints (required).
	Origin      planner.Coordinate
	Destination planner.Coordinate

	// PlanPrefix is the storage prefix for snapshots. Default: routes_from_api.
	PlanPrefix string

	// Now returns the current time; overridable in tests. Defaults to time.Now.
	Now func() time.Time

	// Logger for job operations.
	Logger zerolog.Logger
}

// FetchJob retrieves a journey plan and stores it as a timestamped JSON
// snapshot.
type FetchJob struct {
	planner    planner.Planner
	store      storage.ObjectStore
	origin     planner.Coordinate
	dest       planner.Coordinate
	planPrefix string
	now        func() time.Time
	logger     zerolog.Logger
}

// NewFetchJob creates a fetch job.
func NewFetchJob(cfg FetchConfig) *FetchJob {
	planPrefix := cfg.PlanPrefix
	if planPrefix == "" {
		planPrefix = DefaultPlanPrefix
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &FetchJob{
		planner:    cfg.Planner,
		store:      cfg.Store,
		origin:     cfg.Origin,
		dest:       cfg.Destination,
		planPrefix: planPrefix,
		now:        now,
		logger:     cfg.Logger,
	}
}

// Run fetches a plan for the configured endpoints and stores it. Returns the
// object key of the stored snapshot.
func (j *FetchJob) Run(ctx context.Context) (string, error) {
	plan, err := j.planner.Plan(ctx, planner.PlanRequest{
		Origin:      j.origin,
		Destination: j.dest,
	})
	if err != nil {
		return "", fmt.Errorf("fetching journey plan: %w", err)
	}

	body, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("marshaling journey plan: %w", err)
	}

	key := path.Join(j.planPrefix, fmt.Sprintf("journey_plan_%s.json", j.now().Format("2006-01-02_15-04")))
	if err := j.store.Put(ctx, key, body); err != nil {
		return "", fmt.Errorf("storing journey plan: %w", err)
	}

	itineraries := 0
	if plan.Plan != nil {
		itineraries = len(plan.Plan.Itineraries)
	}
	j.logger.Info().
		Str("key", key).
		Str("provider", j.planner.Name()).
		Int("itinerary_count", itineraries).
		Msg("journey plan stored")
	return key, nil
}
