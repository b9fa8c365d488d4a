package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/betterway/betterway/internal/journal"
)

// JournalConfig holds configuration for the journal job.
type JournalConfig struct {
	// Journal is the rolling journal to append to (required).
	Journal *journal.Journal

	// Logger for job operations.
	Logger zerolog.Logger
}

// JournalJob records object creations in the rolling journal.
type JournalJob struct {
	journal *journal.Journal
	logger  zerolog.Logger
}

// NewJournalJob creates a journal job.
func NewJournalJob(cfg JournalConfig) *JournalJob {
	return &JournalJob{
		journal: cfg.Journal,
		logger:  cfg.Logger,
	}
}

// Run appends one journal entry for the created object.
func (j *JournalJob) Run(ctx context.Context, key string, eventTime time.Time) error {
	if err := j.journal.Append(ctx, journal.Entry{Key: key, EventTime: eventTime}); err != nil {
		return fmt.Errorf("appending journal entry: %w", err)
	}

	j.logger.Info().
		Str("key", key).
		Time("event_time", eventTime).
		Msg("journal entry recorded")
	return nil
}
