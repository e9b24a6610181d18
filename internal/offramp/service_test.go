package offramp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Cyberking99/WavePay/internal/bank"
	"github.com/Cyberking99/WavePay/internal/custody"
	"github.com/Cyberking99/WavePay/internal/gateway"
	"github.com/Cyberking99/WavePay/internal/transactions"
)

type stubRail struct {
	gateway.Static

	rate     gateway.RateResult
	transfer gateway.TransferResult

	transferCalls int
	lastTransfer  gateway.TransferInput
}

func (s *stubRail) GetRate(_ context.Context, _, _ string) gateway.RateResult {
	return s.rate
}

func (s *stubRail) CreateOfframp(_ context.Context, input gateway.TransferInput) gateway.TransferResult {
	s.transferCalls++
	s.lastTransfer = input
	return s.transfer
}

type fixture struct {
	svc      *Service
	rail     *stubRail
	wallets  custody.Repository
	accounts bank.Repository
	ledger   transactions.Repository
	quotes   QuoteStore
	userID   string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	rail := &stubRail{
		rate:     gateway.RateResult{Success: true, Rate: gateway.Rate{Rate: 1528.50, ExpiresAt: time.Now().Add(30 * time.Second)}},
		transfer: gateway.TransferResult{Success: true, Payload: map[string]any{"id": "off_1", "status": "completed"}},
	}
	wallets := custody.NewMemoryRepository()
	accounts := bank.NewMemoryRepository()
	ledger := transactions.NewMemoryRepository()
	quotes := NewMemoryQuoteStore()
	svc := NewService(rail, wallets, accounts, ledger, quotes, nil, nil)

	return fixture{
		svc:      svc,
		rail:     rail,
		wallets:  wallets,
		accounts: accounts,
		ledger:   ledger,
		quotes:   quotes,
		userID:   uuid.NewString(),
	}
}

func (f fixture) seedWallet(t *testing.T) custody.Wallet {
	t.Helper()
	w := custody.Wallet{
		ID:         uuid.NewString(),
		UserID:     f.userID,
		Type:       custody.TypeEVM,
		Reference:  "wp-1",
		ProviderID: "wal_1",
		Address:    "0xCustodial",
		CreatedAt:  time.Now().UTC(),
	}
	if err := f.wallets.Create(context.Background(), w); err != nil {
		t.Fatalf("seed wallet: %v", err)
	}
	return w
}

func (f fixture) seedAccount(t *testing.T, userID string) bank.Account {
	t.Helper()
	a := bank.Account{
		ID:            uuid.NewString(),
		UserID:        userID,
		BankCode:      "058",
		BankName:      "Guaranty Trust Bank",
		AccountNumber: "0123456789",
		AccountName:   "JOHN DOE",
		BeneficiaryID: "ben_1",
		CreatedAt:     time.Now().UTC(),
	}
	if err := f.accounts.Create(context.Background(), a); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return a
}

func (f fixture) freshQuote(t *testing.T) Quote {
	t.Helper()
	q, err := f.svc.Rate(context.Background(), "USDC")
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	return q
}

func executeInput(accountID, quoteID string) ExecuteInput {
	return ExecuteInput{
		Token:         "usdc",
		Amount:        "150.00",
		BankAccountID: accountID,
		TxHash:        "0x" + strings.Repeat("ab", 32),
		QuoteID:       quoteID,
	}
}

func TestRateIssuesServerSideQuote(t *testing.T) {
	f := newFixture(t)

	q := f.freshQuote(t)
	if q.Rate != 1528.50 || q.Token != "usdc" {
		t.Fatalf("unexpected quote: %+v", q)
	}

	stored, err := f.quotes.Find(context.Background(), q.ID)
	if err != nil {
		t.Fatalf("quote not registered: %v", err)
	}
	if stored.Rate != q.Rate {
		t.Fatalf("stored quote differs: %+v", stored)
	}
}

func TestRateRefusesExpiredProviderQuote(t *testing.T) {
	f := newFixture(t)
	f.rail.rate = gateway.RateResult{Success: true, Rate: gateway.Rate{Rate: 1500, ExpiresAt: time.Now().Add(-time.Second)}}

	if _, err := f.svc.Rate(context.Background(), "usdc"); !errors.Is(err, ErrQuoteExpired) {
		t.Fatalf("expected ErrQuoteExpired, got %v", err)
	}
}

func TestExecuteRequiresWallet(t *testing.T) {
	f := newFixture(t)
	account := f.seedAccount(t, f.userID)
	quote := f.freshQuote(t)

	_, err := f.svc.Execute(context.Background(), f.userID, executeInput(account.ID, quote.ID))
	if !errors.Is(err, ErrNoWallet) {
		t.Fatalf("expected ErrNoWallet, got %v", err)
	}
	if f.rail.transferCalls != 0 {
		t.Fatalf("provider must not be called without a wallet")
	}
}

func TestExecuteRejectsForeignAccount(t *testing.T) {
	f := newFixture(t)
	f.seedWallet(t)
	foreign := f.seedAccount(t, uuid.NewString())
	quote := f.freshQuote(t)

	_, err := f.svc.Execute(context.Background(), f.userID, executeInput(foreign.ID, quote.ID))
	if !errors.Is(err, bank.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if f.rail.transferCalls != 0 {
		t.Fatalf("provider must not be called for a foreign account")
	}
}

func TestExecuteRejectsExpiredQuote(t *testing.T) {
	f := newFixture(t)
	f.seedWallet(t)
	account := f.seedAccount(t, f.userID)

	_, err := f.svc.Execute(context.Background(), f.userID, executeInput(account.ID, uuid.NewString()))
	if !errors.Is(err, ErrQuoteExpired) {
		t.Fatalf("expected ErrQuoteExpired, got %v", err)
	}
	if f.rail.transferCalls != 0 {
		t.Fatalf("provider must not be called without a live quote")
	}
}

func TestExecuteRecordsLedgerEntry(t *testing.T) {
	f := newFixture(t)
	wallet := f.seedWallet(t)
	account := f.seedAccount(t, f.userID)
	quote := f.freshQuote(t)

	entry, err := f.svc.Execute(context.Background(), f.userID, executeInput(account.ID, quote.ID))
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if entry.Type != transactions.TypeOfframp || entry.Status != transactions.StatusSuccess {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.From != wallet.Address || entry.To != wallet.Address {
		t.Fatalf("entry must reference the custodial wallet: %+v", entry)
	}
	if !strings.Contains(entry.Payload, "off_1") {
		t.Fatalf("provider payload not stored: %q", entry.Payload)
	}

	if f.rail.lastTransfer.Asset != "base:usdc" {
		t.Fatalf("expected chain-namespaced asset, got %q", f.rail.lastTransfer.Asset)
	}
	if f.rail.lastTransfer.WalletID != wallet.ProviderID || f.rail.lastTransfer.BeneficiaryID != account.BeneficiaryID {
		t.Fatalf("unexpected transfer input: %+v", f.rail.lastTransfer)
	}

	history, err := f.ledger.ListByAddress(context.Background(), wallet.Address)
	if err != nil || len(history) != 1 {
		t.Fatalf("expected one ledger entry, got %d err=%v", len(history), err)
	}
}

func TestExecuteRejectsReplayedHash(t *testing.T) {
	f := newFixture(t)
	f.seedWallet(t)
	account := f.seedAccount(t, f.userID)
	quote := f.freshQuote(t)

	input := executeInput(account.ID, quote.ID)
	if _, err := f.svc.Execute(context.Background(), f.userID, input); err != nil {
		t.Fatalf("first execute failed: %v", err)
	}
	if _, err := f.svc.Execute(context.Background(), f.userID, input); !errors.Is(err, transactions.ErrDuplicateHash) {
		t.Fatalf("expected ErrDuplicateHash, got %v", err)
	}
}
