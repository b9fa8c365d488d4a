package history

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-memory Repository for tests and the dev server.
type MemoryRepository struct {
	mu         sync.RWMutex
	selections []*Selection
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Create stores a new selection.
func (r *MemoryRepository) Create(ctx context.Context, selection *Selection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *selection
	r.selections = append(r.selections, &stored)
	return nil
}

// ListRecent returns the most recent selections, newest first.
func (r *MemoryRepository) ListRecent(ctx context.Context, limit int) ([]*Selection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 30
	}

	out := make([]*Selection, len(r.selections))
	for i, s := range r.selections {
		copied := *s
		out[i] = &copied
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
