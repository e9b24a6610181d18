package transactions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrMissingFields indicates a required ledger field is absent.
var ErrMissingFields = errors.New("missing required fields")

// Service records and lists ledger entries for on-chain activity reported by
// clients (peer transfers and link receipts). Off-ramp entries are written
// by the offramp coordinator directly.
type Service struct {
	repo Repository
}

// NewService builds a transaction service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordInput captures a client-reported transaction.
type RecordInput struct {
	Hash   string
	From   string
	To     string
	Amount string
	Token  string
	Type   string
	LinkID string
}

// Record persists a client-reported entry as confirmed.
func (s *Service) Record(ctx context.Context, input RecordInput) (Transaction, error) {
	if input.Hash == "" || input.From == "" || input.To == "" || input.Amount == "" || input.Token == "" || input.Type == "" {
		return Transaction{}, ErrMissingFields
	}
	t := Transaction{
		ID:        uuid.New().String(),
		Hash:      input.Hash,
		From:      input.From,
		To:        input.To,
		Amount:    input.Amount,
		Token:     input.Token,
		Type:      input.Type,
		Status:    StatusConfirmed,
		LinkID:    input.LinkID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// History lists entries touching an address, newest first.
func (s *Service) History(ctx context.Context, address string) ([]Transaction, error) {
	return s.repo.ListByAddress(ctx, address)
}
