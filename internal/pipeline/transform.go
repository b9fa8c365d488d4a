package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/betterway/betterway/internal/extract"
	"github.com/betterway/betterway/internal/planner"
	"github.com/betterway/betterway/internal/storage"
)

// DefaultCSVPrefix is where flattened route tables are stored.
const DefaultCSVPrefix = "routes_csv"

// TransformConfig holds configuration for the transform job.
type TransformConfig struct {
	// Store holds plan snapshots and receives CSV exports (required).
	Store storage.ObjectStore

	// CSVPrefix is the storage prefix for CSV exports. Default: routes_csv.
	CSVPrefix string

	// Logger for job operations.
	Logger zerolog.Logger
}

// TransformJob flattens a stored journey plan snapshot into a CSV route table
// under the CSV prefix, keeping the snapshot's base filename.
type TransformJob struct {
	store     storage.ObjectStore
	csvPrefix string
	logger    zerolog.Logger
}

// NewTransformJob creates a transform job.
func NewTransformJob(cfg TransformConfig) *TransformJob {
	csvPrefix := cfg.CSVPrefix
	if csvPrefix == "" {
		csvPrefix = DefaultCSVPrefix
	}

	return &TransformJob{
		store:     cfg.Store,
		csvPrefix: csvPrefix,
		logger:    cfg.Logger,
	}
}

// Run loads the snapshot at key, extracts its route records and stores them
// as CSV. Returns the key of the CSV object.
func (j *TransformJob) Run(ctx context.Context, key string) (string, error) {
	body, err := j.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("loading journey plan: %w", err)
	}

	var plan planner.JourneyPlan
	if err := json.Unmarshal(body, &plan); err != nil {
		return "", fmt.Errorf("decoding journey plan %q: %w", key, err)
	}

	records := extract.Records(plan)

	data, err := extract.MarshalCSV(records)
	if err != nil {
		return "", err
	}

	csvKey := j.csvKeyFor(key)
	if err := j.store.Put(ctx, csvKey, data); err != nil {
		return "", fmt.Errorf("storing route table: %w", err)
	}

	j.logger.Info().
		Str("source_key", key).
		Str("csv_key", csvKey).
		Int("record_count", len(records)).
		Msg("route table stored")
	return csvKey, nil
}

// csvKeyFor mirrors the snapshot's base filename under the CSV prefix with a
// .csv extension: routes_from_api/journey_plan_X.json -> routes_csv/journey_plan_X.csv.
func (j *TransformJob) csvKeyFor(key string) string {
	base := strings.TrimSuffix(path.Base(key), ".json")
	return path.Join(j.csvPrefix, base+".csv")
}
