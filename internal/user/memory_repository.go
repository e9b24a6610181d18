package user

import (
	"context"
	"strings"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User // keyed by lowercased address
}

// NewMemoryRepository builds an in-memory user store for tests and dev runs.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(u.Address)
	if _, exists := r.users[key]; exists {
		return ErrExists
	}
	r.users[key] = u
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *memoryRepository) FindByAddress(_ context.Context, address string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[strings.ToLower(address)]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *memoryRepository) FindByUsername(_ context.Context, username string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *memoryRepository) Update(_ context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(u.Address)
	stored, ok := r.users[key]
	if !ok {
		return ErrNotFound
	}
	stored.FullName = u.FullName
	stored.Username = u.Username
	stored.Onboarded = u.Onboarded
	r.users[key] = stored
	return nil
}

func (r *memoryRepository) SetKycStatus(_ context.Context, id string, status KycStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, u := range r.users {
		if u.ID == id {
			u.KycStatus = status
			r.users[key] = u
			return nil
		}
	}
	return ErrNotFound
}

type memoryDetailsRepository struct {
	mu      sync.RWMutex
	details map[string]Details // keyed by user id
}

// NewMemoryDetailsRepository builds an in-memory details store for tests.
func NewMemoryDetailsRepository() DetailsRepository {
	return &memoryDetailsRepository{details: make(map[string]Details)}
}

func (r *memoryDetailsRepository) Create(_ context.Context, d Details) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.details[d.UserID]; exists {
		return ErrExists
	}
	r.details[d.UserID] = d
	return nil
}

func (r *memoryDetailsRepository) FindByUser(_ context.Context, userID string) (Details, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.details[userID]
	if !ok {
		return Details{}, ErrDetailsNotFound
	}
	return d, nil
}

func (r *memoryDetailsRepository) SetIdentityID(_ context.Context, id, identityID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID, d := range r.details {
		if d.ID == id {
			d.IdentityID = identityID
			r.details[userID] = d
			return nil
		}
	}
	return ErrDetailsNotFound
}
