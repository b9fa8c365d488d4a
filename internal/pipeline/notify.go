package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/betterway/betterway/internal/extract"
	"github.com/betterway/betterway/internal/history"
	"github.com/betterway/betterway/internal/notify"
	"github.com/betterway/betterway/internal/rank"
	"github.com/betterway/betterway/internal/storage"
)

// NotifyConfig holds configuration for the notify job.
type NotifyConfig struct {
	// Store holds the CSV route tables (required).
	Store storage.ObjectStore

	// Publisher delivers the best-route notification (required).
	Publisher notify.Publisher

	// History records selections when configured (optional).
	History *history.Service

	// Logger for job operations.
	Logger zerolog.Logger
}

// NotifyJob ranks a stored route table and announces the fastest route.
type NotifyJob struct {
	store     storage.ObjectStore
	publisher notify.Publisher
	history   *history.Service
	logger    zerolog.Logger
}

// NewNotifyJob creates a notify job.
func NewNotifyJob(cfg NotifyConfig) *NotifyJob {
	return &NotifyJob{
		store:     cfg.Store,
		publisher: cfg.Publisher,
		history:   cfg.History,
		logger:    cfg.Logger,
	}
}

// Run loads the CSV at key, selects the fastest itinerary and publishes the
// notification. An empty or unrankable table surfaces rank.ErrEmptyDataset to
// the caller; the job never swallows it.
func (j *NotifyJob) Run(ctx context.Context, key string) (*rank.Selection, error) {
	body, err := j.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loading route table: %w", err)
	}

	records, err := extract.UnmarshalCSV(body)
	if err != nil {
		return nil, fmt.Errorf("parsing route table %q: %w", key, err)
	}

	selection, err := rank.SelectBest(records)
	if err != nil {
		return nil, fmt.Errorf("ranking route table %q: %w", key, err)
	}

	if err := j.publisher.Publish(ctx, notify.BestRouteMessage(selection.Label)); err != nil {
		return nil, fmt.Errorf("publishing best route: %w", err)
	}

	j.logger.Info().
		Str("csv_key", key).
		Str("itinerary_id", selection.ID).
		Str("label", selection.Label).
		Dur("elapsed", selection.Elapsed).
		Msg("best route published")

	if j.history != nil {
		_, err := j.history.Record(ctx, history.RecordInput{
			ItineraryID:    selection.ID,
			Label:          selection.Label,
			ElapsedSeconds: int64(selection.Elapsed.Seconds()),
			TravelSeconds:  int64(selection.TravelTime.Seconds()),
			SourceKey:      key,
		})
		if err != nil {
			// History is best-effort; the notification already went out.
			j.logger.Warn().Err(err).Msg("failed to record selection history")
		}
	}

	return selection, nil
}
