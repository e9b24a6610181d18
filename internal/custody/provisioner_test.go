package custody

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Cyberking99/WavePay/internal/gateway"
	"github.com/Cyberking99/WavePay/internal/user"
)

type stubRail struct {
	gateway.Static

	wallet      gateway.WalletResult
	echoRef     bool
	walletCalls int
	lastRef     string
}

func (s *stubRail) CreateWallet(_ context.Context, reference string) gateway.WalletResult {
	s.walletCalls++
	s.lastRef = reference
	res := s.wallet
	if s.echoRef {
		res.Wallet.Reference = reference
	}
	return res
}

func successRail() *stubRail {
	return &stubRail{
		wallet:  gateway.WalletResult{Success: true, Wallet: gateway.Wallet{ID: "wal_1", Address: "0xCustodial"}},
		echoRef: true,
	}
}

func TestProvisionMintsReferenceOnFirstRun(t *testing.T) {
	rail := successRail()
	wallets := NewMemoryRepository()
	details := user.NewMemoryDetailsRepository()
	p := NewProvisioner(wallets, details, rail, nil)
	userID := uuid.NewString()

	w, err := p.Provision(context.Background(), userID, "idn_1")
	if err != nil {
		t.Fatalf("provision failed: %v", err)
	}
	if w.Type != TypeEVM || w.Address != "0xCustodial" || w.ProviderID != "wal_1" {
		t.Fatalf("unexpected wallet: %+v", w)
	}

	det, err := details.FindByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("details not created: %v", err)
	}
	if det.Reference == "" || det.Reference != rail.lastRef {
		t.Fatalf("reference mismatch: details=%q provider=%q", det.Reference, rail.lastRef)
	}
	if det.IdentityID != "idn_1" {
		t.Fatalf("identity id not stored: %+v", det)
	}
}

func TestProvisionReusesExistingReference(t *testing.T) {
	rail := successRail()
	wallets := NewMemoryRepository()
	details := user.NewMemoryDetailsRepository()
	p := NewProvisioner(wallets, details, rail, nil)
	userID := uuid.NewString()

	existing := user.Details{
		ID:         uuid.NewString(),
		UserID:     userID,
		Reference:  "wp-existing",
		IdentityID: "idn_old",
		CreatedAt:  time.Now().UTC(),
	}
	if err := details.Create(context.Background(), existing); err != nil {
		t.Fatalf("seed details: %v", err)
	}

	if _, err := p.Provision(context.Background(), userID, "idn_new"); err != nil {
		t.Fatalf("provision failed: %v", err)
	}
	if rail.lastRef != "wp-existing" {
		t.Fatalf("expected reference reuse, got %q", rail.lastRef)
	}

	det, _ := details.FindByUser(context.Background(), userID)
	if det.IdentityID != "idn_new" {
		t.Fatalf("identity id not refreshed: %+v", det)
	}
}

func TestProvisionProviderFailure(t *testing.T) {
	rail := &stubRail{wallet: gateway.WalletResult{Message: "wallet service unavailable"}}
	wallets := NewMemoryRepository()
	details := user.NewMemoryDetailsRepository()
	p := NewProvisioner(wallets, details, rail, nil)
	userID := uuid.NewString()

	_, err := p.Provision(context.Background(), userID, "idn_1")
	var upstream *gateway.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if _, err := wallets.FindByUser(context.Background(), userID); !errors.Is(err, ErrWalletNotFound) {
		t.Fatalf("expected no wallet, got %v", err)
	}
}

func TestProvisionReusesConcurrentWallet(t *testing.T) {
	rail := successRail()
	wallets := NewMemoryRepository()
	details := user.NewMemoryDetailsRepository()
	p := NewProvisioner(wallets, details, rail, nil)
	userID := uuid.NewString()

	first, err := p.Provision(context.Background(), userID, "idn_1")
	if err != nil {
		t.Fatalf("first provision failed: %v", err)
	}

	// A second run must not create a duplicate row.
	second, err := p.Provision(context.Background(), userID, "idn_1")
	if err != nil {
		t.Fatalf("second provision failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected existing wallet reuse, got %s and %s", first.ID, second.ID)
	}
}
