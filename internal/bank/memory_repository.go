package bank

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]Account // keyed by account id
}

// NewMemoryRepository builds an in-memory bank account store for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{accounts: make(map[string]Account)}
}

func (r *memoryRepository) Create(_ context.Context, a Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[a.ID] = a
	return nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID string) ([]Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var accounts []Account
	for _, a := range r.accounts {
		if a.UserID == userID {
			accounts = append(accounts, a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.After(accounts[j].CreatedAt)
	})
	return accounts, nil
}

func (r *memoryRepository) FindForUser(_ context.Context, id, userID string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok || a.UserID != userID {
		return Account{}, ErrAccountNotFound
	}
	return a, nil
}

func (r *memoryRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok || a.UserID != userID {
		return ErrAccountNotFound
	}
	delete(r.accounts, id)
	return nil
}
