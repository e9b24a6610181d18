package links

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	links map[string]Link // keyed by link id
}

// NewMemoryRepository builds an in-memory link store for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{links: make(map[string]Link)}
}

func (r *memoryRepository) Create(_ context.Context, l Link) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[l.LinkID] = l
	return nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID string) ([]Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []Link
	for _, l := range r.links {
		if l.UserID == userID {
			result = append(result, l)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
