package kyc

import (
	"context"
	"sync"

	"github.com/Cyberking99/WavePay/internal/user"
)

type memoryRepository struct {
	mu      sync.Mutex
	records map[string]Record // keyed by user id
	users   user.Repository
}

// NewMemoryRepository builds an in-memory submission store for tests. It
// mirrors the Postgres implementation by flipping the user to pending inside
// the same critical section as the record write.
func NewMemoryRepository(users user.Repository) Repository {
	return &memoryRepository{records: make(map[string]Record), users: users}
}

func (r *memoryRepository) Submit(ctx context.Context, record Record, replace bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[record.UserID]; exists && !replace {
		return ErrRecordExists
	}
	r.records[record.UserID] = record
	return r.users.SetKycStatus(ctx, record.UserID, user.KycPending)
}

func (r *memoryRepository) FindByUser(_ context.Context, userID string) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[userID]
	if !ok {
		return Record{}, ErrRecordNotFound
	}
	return rec, nil
}
