package bank

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Cyberking99/WavePay/internal/gateway"
	"github.com/Cyberking99/WavePay/internal/user"
)

var (
	// ErrMissingFields indicates bank code or account number is absent.
	ErrMissingFields = errors.New("missing required fields")
	// ErrIdentityRequired indicates the user has no verified identity on
	// file; beneficiary registration needs one.
	ErrIdentityRequired = errors.New("identity verification required before linking a bank account")
)

// Service links bank accounts: verify the number with the rail, register a
// beneficiary against the identity on file, and only then persist.
type Service struct {
	accounts Repository
	details  user.DetailsRepository
	provider gateway.Provider
	logger   *slog.Logger
}

// NewService builds the bank account linking coordinator.
func NewService(accounts Repository, details user.DetailsRepository, provider gateway.Provider, logger *slog.Logger) *Service {
	return &Service{accounts: accounts, details: details, provider: provider, logger: logger}
}

// Add verifies and links a bank account. Both external calls run strictly in
// sequence; nothing is persisted unless both succeed.
func (s *Service) Add(ctx context.Context, userID, bankCode, accountNumber string) (Account, error) {
	if bankCode == "" || accountNumber == "" {
		return Account{}, ErrMissingFields
	}

	det, err := s.details.FindByUser(ctx, userID)
	if err != nil || det.IdentityID == "" {
		return Account{}, ErrIdentityRequired
	}

	// Verify first to fail fast on a bad account number.
	verification := s.provider.VerifyBankAccount(ctx, bankCode, accountNumber)
	if !verification.Success {
		return Account{}, gateway.Upstream(verification.Message)
	}

	beneficiary := s.provider.CreateBeneficiary(ctx, det.IdentityID, bankCode, accountNumber)
	if !beneficiary.Success {
		return Account{}, gateway.Upstream(beneficiary.Message)
	}

	account := Account{
		ID:            uuid.New().String(),
		UserID:        userID,
		BankCode:      bankCode,
		BankName:      verification.Account.BankName,
		AccountNumber: accountNumber,
		AccountName:   verification.Account.AccountName,
		BeneficiaryID: beneficiary.Beneficiary.ID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return Account{}, err
	}

	if s.logger != nil {
		s.logger.Info("bank account linked",
			slog.String("user_id", userID),
			slog.String("bank_code", bankCode),
			slog.String("beneficiary_id", account.BeneficiaryID),
		)
	}
	return account, nil
}

// List returns the user's linked accounts.
func (s *Service) List(ctx context.Context, userID string) ([]Account, error) {
	return s.accounts.ListByUser(ctx, userID)
}

// Delete removes a linked account. The rail keeps the beneficiary: the
// provider exposes no deregistration endpoint, so the orphaned id is logged
// for reconciliation.
func (s *Service) Delete(ctx context.Context, userID, accountID string) error {
	account, err := s.accounts.FindForUser(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if err := s.accounts.Delete(ctx, accountID, userID); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Warn("bank account deleted, beneficiary remains registered with the rail",
			slog.String("user_id", userID),
			slog.String("beneficiary_id", account.BeneficiaryID),
		)
	}
	return nil
}

// Banks lists the rail's supported payout institutions.
func (s *Service) Banks(ctx context.Context) ([]gateway.Bank, error) {
	res := s.provider.ListBanks(ctx)
	if !res.Success {
		return nil, gateway.Upstream(res.Message)
	}
	return res.Banks, nil
}
