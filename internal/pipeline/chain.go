package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/betterway/betterway/internal/rank"
)

// ChainConfig holds configuration for the full pipeline chain.
type ChainConfig struct {
	// Fetch, Transform and Notify are the chained jobs (required).
	Fetch     *FetchJob
	Transform *TransformJob
	Notify    *NotifyJob

	// Journal records created objects when set (optional).
	Journal *JournalJob

	// Now returns the current time; overridable in tests. Defaults to time.Now.
	Now func() time.Time

	// Logger for chain operations.
	Logger zerolog.Logger
}

// Chain runs the whole pipeline in-process: fetch a journey plan, flatten it
// to CSV, select and announce the best route, and journal the created
// objects. In production each step runs as its own function on storage
// events; the chain exists for the dev server and end-to-end tests.
type Chain struct {
	fetch     *FetchJob
	transform *TransformJob
	notify    *NotifyJob
	journal   *JournalJob
	now       func() time.Time
	logger    zerolog.Logger
}

// ChainResult reports what one pipeline run produced.
type ChainResult struct {
	PlanKey   string
	CSVKey    string
	Selection *rank.Selection
}

// NewChain creates a pipeline chain.
func NewChain(cfg ChainConfig) *Chain {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Chain{
		fetch:     cfg.Fetch,
		transform: cfg.Transform,
		notify:    cfg.Notify,
		journal:   cfg.Journal,
		now:       now,
		logger:    cfg.Logger,
	}
}

// Run executes fetch, transform and notify in order, journaling each created
// object when a journal job is configured.
func (c *Chain) Run(ctx context.Context) (*ChainResult, error) {
	planKey, err := c.fetch.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch step: %w", err)
	}
	c.record(ctx, planKey)

	csvKey, err := c.transform.Run(ctx, planKey)
	if err != nil {
		return nil, fmt.Errorf("transform step: %w", err)
	}
	c.record(ctx, csvKey)

	selection, err := c.notify.Run(ctx, csvKey)
	if err != nil {
		return nil, fmt.Errorf("notify step: %w", err)
	}

	c.logger.Info().
		Str("plan_key", planKey).
		Str("csv_key", csvKey).
		Str("label", selection.Label).
		Msg("pipeline run completed")

	return &ChainResult{
		PlanKey:   planKey,
		CSVKey:    csvKey,
		Selection: selection,
	}, nil
}

// record journals one created object; journal failures do not abort the run.
func (c *Chain) record(ctx context.Context, key string) {
	if c.journal == nil {
		return
	}
	if err := c.journal.Run(ctx, key, c.now()); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to journal object creation")
	}
}
