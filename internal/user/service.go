package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrMissingFields indicates a required onboarding field is absent.
	ErrMissingFields = errors.New("missing required fields")
	// ErrUsernameTaken indicates the requested username belongs to another user.
	ErrUsernameTaken = errors.New("username already taken")
)

// Service manages the wallet-address user lifecycle.
type Service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Verify finds or creates the user behind a verified wallet address. The
// second return value reports whether the row was created on this call.
func (s *Service) Verify(ctx context.Context, address string) (User, bool, error) {
	if u, err := s.repo.FindByAddress(ctx, address); err == nil {
		return u, false, nil
	}

	u := User{
		ID:        uuid.New().String(),
		Address:   address,
		KycStatus: KycInactive,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrExists) {
			// Lost a concurrent create; the winner's row is authoritative.
			existing, findErr := s.repo.FindByAddress(ctx, address)
			if findErr != nil {
				return User{}, false, findErr
			}
			return existing, false, nil
		}
		return User{}, false, err
	}
	return u, true, nil
}

// Onboard records the profile fields collected after first login.
func (s *Service) Onboard(ctx context.Context, address, fullName, username string) (User, error) {
	if fullName == "" || username == "" {
		return User{}, ErrMissingFields
	}

	if existing, err := s.repo.FindByUsername(ctx, username); err == nil && existing.Address != address {
		return User{}, ErrUsernameTaken
	}

	u, err := s.repo.FindByAddress(ctx, address)
	if err != nil {
		return User{}, err
	}

	u.FullName = fullName
	u.Username = username
	u.Onboarded = true
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Lookup resolves a user by username for peer transfers.
func (s *Service) Lookup(ctx context.Context, username string) (User, error) {
	return s.repo.FindByUsername(ctx, username)
}

// ByAddress fetches the user owning a wallet address.
func (s *Service) ByAddress(ctx context.Context, address string) (User, error) {
	return s.repo.FindByAddress(ctx, address)
}
