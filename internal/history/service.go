package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the history service.
type ServiceConfig struct {
	// Repo persists selections (required).
	Repo Repository

	// Now returns the current time; overridable in tests. Defaults to time.Now.
	Now func() time.Time

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service records route selections with generated identifiers.
type Service struct {
	repo   Repository
	now    func() time.Time
	logger zerolog.Logger
}

// NewService creates a history service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:   cfg.Repo,
		now:    now,
		logger: cfg.Logger,
	}
}

// RecordInput carries the fields of a selection to record.
type RecordInput struct {
	ItineraryID    string
	Label          string
	ElapsedSeconds int64
	TravelSeconds  int64
	SourceKey      string
}

// Record stores a new selection and returns it.
func (s *Service) Record(ctx context.Context, input RecordInput) (*Selection, error) {
	selection := &Selection{
		ID:             uuid.NewString(),
		ItineraryID:    input.ItineraryID,
		Label:          input.Label,
		ElapsedSeconds: input.ElapsedSeconds,
		TravelSeconds:  input.TravelSeconds,
		SourceKey:      input.SourceKey,
		CreatedAt:      s.now(),
	}

	if err := s.repo.Create(ctx, selection); err != nil {
		return nil, fmt.Errorf("recording selection: %w", err)
	}

	s.logger.Info().
		Str("selection_id", selection.ID).
		Str("itinerary_id", selection.ItineraryID).
		Str("label", selection.Label).
		Msg("route selection recorded")
	return selection, nil
}

// Recent returns the most recent selections, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]*Selection, error) {
	return s.repo.ListRecent(ctx, limit)
}
