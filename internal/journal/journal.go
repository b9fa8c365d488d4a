// Package journal maintains a rolling plain-text log of pipeline object
// creations in the object store.
package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/betterway/betterway/internal/storage"
)

const (
	// DefaultKey is the journal's location in the object store.
	DefaultKey = "logs/logs.txt"

	// DefaultMaxEntries caps the journal length; the oldest entry is dropped
	// once the cap is exceeded.
	DefaultMaxEntries = 100
)

// Config holds configuration for the journal.
type Config struct {
	// Store is the object store holding the journal (required).
	Store storage.ObjectStore

	// Key is the journal object key. Default: logs/logs.txt.
	Key string

	// MaxEntries caps the number of retained entries. Default: 100.
	MaxEntries int

	// Now returns the current time; overridable in tests. Defaults to time.Now.
	Now func() time.Time

	// Logger for journal operations.
	Logger zerolog.Logger
}

// Entry describes one object creation to record.
type Entry struct {
	// Key is the object key that was created.
	Key string

	// EventTime is when the storage event fired.
	EventTime time.Time
}

// Journal appends rolling log entries to a single object-store key. Writes go
// through a temporary key that is copied over the live key and then removed,
// so a failed write never truncates the existing journal.
type Journal struct {
	store      storage.ObjectStore
	key        string
	tempKey    string
	maxEntries int
	now        func() time.Time
	logger     zerolog.Logger
}

// New creates a journal from the given configuration.
func New(cfg Config) *Journal {
	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}

	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Journal{
		store:      cfg.Store,
		key:        key,
		tempKey:    tempKeyFor(key),
		maxEntries: maxEntries,
		now:        now,
		logger:     cfg.Logger,
	}
}

// Append records an entry, dropping the oldest once the cap is exceeded.
func (j *Journal) Append(ctx context.Context, entry Entry) error {
	entries, err := j.Entries(ctx)
	if err != nil {
		return err
	}

	line := fmt.Sprintf("New file created: %s at %s. Log entry added at %s",
		entry.Key,
		entry.EventTime.Format(time.RFC3339),
		j.now().Format(time.RFC3339),
	)
	entries = append(entries, line)

	if len(entries) > j.maxEntries {
		entries = entries[len(entries)-j.maxEntries:]
	}

	content := strings.Join(entries, "\n") + "\n"

	if err := j.store.Put(ctx, j.tempKey, []byte(content)); err != nil {
		return fmt.Errorf("writing temporary journal: %w", err)
	}
	if err := j.store.Copy(ctx, j.tempKey, j.key); err != nil {
		return fmt.Errorf("promoting journal: %w", err)
	}
	if err := j.store.Delete(ctx, j.tempKey); err != nil {
		return fmt.Errorf("removing temporary journal: %w", err)
	}

	j.logger.Debug().
		Str("key", j.key).
		Int("entries", len(entries)).
		Msg("journal updated")
	return nil
}

// Entries returns the current journal lines. A missing journal object yields
// an empty slice: the first append creates it.
func (j *Journal) Entries(ctx context.Context) ([]string, error) {
	body, err := j.store.Get(ctx, j.key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			j.logger.Debug().Str("key", j.key).Msg("journal does not exist yet")
			return nil, nil
		}
		return nil, fmt.Errorf("reading journal: %w", err)
	}

	var entries []string
	for _, line := range strings.Split(string(body), "\n") {
		if line != "" {
			entries = append(entries, line)
		}
	}
	return entries, nil
}

// tempKeyFor derives the temporary write key, e.g. logs/logs.txt ->
// logs/logs_temp.txt.
func tempKeyFor(key string) string {
	if idx := strings.LastIndex(key, "."); idx > 0 {
		return key[:idx] + "_temp" + key[idx:]
	}
	return key + "_temp"
}
