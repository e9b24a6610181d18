package offramp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Cyberking99/WavePay/internal/bank"
	"github.com/Cyberking99/WavePay/internal/custody"
	"github.com/Cyberking99/WavePay/internal/gateway"
	"github.com/Cyberking99/WavePay/internal/notification"
	"github.com/Cyberking99/WavePay/internal/transactions"
)

// chain namespaces every off-ramp asset; wallets are provisioned on Base.
const chain = "base"

// fiatCurrency is the payout side of every rate pair.
const fiatCurrency = "ngn"

var (
	// ErrMissingFields indicates a required execution field is absent.
	ErrMissingFields = errors.New("missing required fields")
	// ErrNoWallet indicates the caller has no custodial wallet; off-ramp is
	// only possible after an approved verification.
	ErrNoWallet = errors.New("no custodial wallet found")
)

// Service coordinates fiat conversions: preconditions first, provider call
// second, ledger write last. The provider is never reached when a
// precondition fails.
type Service struct {
	provider gateway.Provider
	wallets  custody.Repository
	accounts bank.Repository
	ledger   transactions.Repository
	quotes   QuoteStore
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService builds the off-ramp coordinator.
func NewService(provider gateway.Provider, wallets custody.Repository, accounts bank.Repository, ledger transactions.Repository, quotes QuoteStore, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{
		provider: provider,
		wallets:  wallets,
		accounts: accounts,
		ledger:   ledger,
		quotes:   quotes,
		notifier: notifier,
		logger:   logger,
	}
}

// Rate fetches a fresh conversion quote and registers it in the quote store
// for its lifetime. A quote the provider hands back already expired is
// refused outright.
func (s *Service) Rate(ctx context.Context, token string) (Quote, error) {
	res := s.provider.GetRate(ctx, strings.ToLower(token), fiatCurrency)
	if !res.Success {
		return Quote{}, gateway.Upstream(res.Message)
	}
	if !res.Rate.ExpiresAt.After(time.Now()) {
		return Quote{}, ErrQuoteExpired
	}

	q := Quote{
		ID:        uuid.New().String(),
		Token:     strings.ToLower(token),
		Rate:      res.Rate.Rate,
		ExpiresAt: res.Rate.ExpiresAt,
	}
	if err := s.quotes.Save(ctx, q); err != nil {
		return Quote{}, err
	}
	return q, nil
}

// ExecuteInput captures an off-ramp execution request. QuoteID references a
// quote issued by Rate; expiry is enforced here, server-side, rather than
// trusting the client's timing.
type ExecuteInput struct {
	Token         string
	Amount        string
	BankAccountID string
	TxHash        string
	QuoteID       string
}

// Execute converts custodial balance to fiat against a linked bank account
// and records the resulting ledger entry.
func (s *Service) Execute(ctx context.Context, userID string, input ExecuteInput) (transactions.Transaction, error) {
	if input.Token == "" || input.Amount == "" || input.BankAccountID == "" || input.TxHash == "" || input.QuoteID == "" {
		return transactions.Transaction{}, ErrMissingFields
	}

	wallet, err := s.wallets.FindByUser(ctx, userID)
	if err != nil {
		return transactions.Transaction{}, ErrNoWallet
	}

	account, err := s.accounts.FindForUser(ctx, input.BankAccountID, userID)
	if err != nil {
		return transactions.Transaction{}, bank.ErrAccountNotFound
	}

	if _, err := s.quotes.Find(ctx, input.QuoteID); err != nil {
		return transactions.Transaction{}, err
	}

	asset := fmt.Sprintf("%s:%s", chain, strings.ToLower(input.Token))
	res := s.provider.CreateOfframp(ctx, gateway.TransferInput{
		Amount:        input.Amount,
		WalletID:      wallet.ProviderID,
		BeneficiaryID: account.BeneficiaryID,
		Asset:         asset,
	})
	if !res.Success {
		return transactions.Transaction{}, gateway.Upstream(res.Message)
	}

	payload, err := json.Marshal(res.Payload)
	if err != nil {
		payload = nil
	}

	entry := transactions.Transaction{
		ID:     uuid.New().String(),
		Hash:   input.TxHash,
		From:   wallet.Address,
		To:     wallet.Address, // funds leave the custodial wallet, not a peer
		Amount: input.Amount,
		Token:  strings.ToLower(input.Token),
		Type:   transactions.TypeOfframp,
		Status: transactions.StatusSuccess,

		Payload:   string(payload),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.ledger.Create(ctx, entry); err != nil {
		return transactions.Transaction{}, err
	}

	if s.logger != nil {
		s.logger.Info("offramp executed",
			slog.String("user_id", userID),
			slog.String("wallet_id", wallet.ProviderID),
			slog.String("beneficiary_id", account.BeneficiaryID),
			slog.String("asset", asset),
			slog.String("amount", input.Amount),
		)
	}
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindOfframpCompleted,
			Destination: wallet.Address,
			Body:        fmt.Sprintf("Converted %s %s to %s", input.Amount, strings.ToUpper(input.Token), strings.ToUpper(fiatCurrency)),
		})
	}
	return entry, nil
}
