package links

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrMissingFields indicates a required link field is absent.
var ErrMissingFields = errors.New("missing required fields")

// Service manages payment links.
type Service struct {
	repo Repository
}

// NewService builds a link service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures a new payment link request.
type CreateInput struct {
	Amount       string
	Description  string
	Type         string
	ExpiryDate   *time.Time
	CustomFields map[string]any
}

// Create mints an active payment link for the user.
func (s *Service) Create(ctx context.Context, userID, address string, input CreateInput) (Link, error) {
	if input.Amount == "" || input.Type == "" {
		return Link{}, ErrMissingFields
	}

	customFields := ""
	if len(input.CustomFields) > 0 {
		encoded, err := json.Marshal(input.CustomFields)
		if err != nil {
			return Link{}, err
		}
		customFields = string(encoded)
	}

	l := Link{
		ID:           uuid.New().String(),
		LinkID:       uuid.New().String(),
		UserID:       userID,
		Address:      address,
		Amount:       input.Amount,
		Description:  input.Description,
		Type:         input.Type,
		ExpiryDate:   input.ExpiryDate,
		CustomFields: customFields,
		Active:       true,
		Uses:         0,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return Link{}, err
	}
	return l, nil
}

// List fetches the user's links, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Link, error) {
	return s.repo.ListByUser(ctx, userID)
}
