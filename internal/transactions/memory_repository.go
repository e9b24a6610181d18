package transactions

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	entries map[string]Transaction // keyed by hash
}

// NewMemoryRepository builds an in-memory ledger store for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{entries: make(map[string]Transaction)}
}

func (r *memoryRepository) Create(_ context.Context, t Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[t.Hash]; exists {
		return ErrDuplicateHash
	}
	r.entries[t.Hash] = t
	return nil
}

func (r *memoryRepository) ListByAddress(_ context.Context, address string) ([]Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var entries []Transaction
	for _, t := range r.entries {
		if strings.EqualFold(t.From, address) || strings.EqualFold(t.To, address) {
			entries = append(entries, t)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}
