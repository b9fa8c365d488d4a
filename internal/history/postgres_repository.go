package history

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL selection repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create stores a new selection.
func (r *PostgresRepository) Create(ctx context.Context, selection *Selection) error {
	query := `
		INSERT INTO route_selections (
			id, itinerary_id, label,
			elapsed_seconds, travel_seconds, source_key, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		selection.ID,
		selection.ItineraryID,
		selection.Label,
		selection.ElapsedSeconds,
		selection.TravelSeconds,
		selection.SourceKey,
		selection.CreatedAt,
	)
	return err
}

// ListRecent returns the most recent selections, newest first.
func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]*Selection, error) {
	if limit <= 0 {
		limit = 30
	}

	query := `
		SELECT
			id, itinerary_id, label,
			elapsed_seconds, travel_seconds, source_key, created_at
		FROM route_selections
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var selections []*Selection
	for rows.Next() {
		var selection Selection
		err := rows.Scan(
			&selection.ID,
			&selection.ItineraryID,
			&selection.Label,
			&selection.ElapsedSeconds,
			&selection.TravelSeconds,
			&selection.SourceKey,
			&selection.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		selections = append(selections, &selection)
	}
	return selections, rows.Err()
}
