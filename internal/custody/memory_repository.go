package custody

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	wallets map[string]Wallet // keyed by user id + type
}

// NewMemoryRepository builds an in-memory wallet store for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{wallets: make(map[string]Wallet)}
}

func (r *memoryRepository) Create(_ context.Context, w Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := w.UserID + ":" + w.Type
	if _, exists := r.wallets[key]; exists {
		return ErrWalletExists
	}
	r.wallets[key] = w
	return nil
}

func (r *memoryRepository) FindByUser(_ context.Context, userID string) (Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.UserID == userID {
			return w, nil
		}
	}
	return Wallet{}, ErrWalletNotFound
}
