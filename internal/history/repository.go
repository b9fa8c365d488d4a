package history

import "context"

// Repository persists route selections.
type Repository interface {
	// Create stores a new selection.
	Create(ctx context.Context, selection *Selection) error

	// ListRecent returns the most recent selections, newest first.
	ListRecent(ctx context.Context, limit int) ([]*Selection, error)
}
