package custody

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Cyberking99/WavePay/internal/gateway"
	"github.com/Cyberking99/WavePay/internal/user"
)

// Provisioner ensures exactly one custodial wallet exists for a verified
// user. It runs only after a successful identity verification; its failure
// is fatal to the enclosing verification attempt.
type Provisioner struct {
	wallets  Repository
	details  user.DetailsRepository
	provider gateway.Provider
	logger   *slog.Logger
}

// NewProvisioner builds a wallet provisioning step.
func NewProvisioner(wallets Repository, details user.DetailsRepository, provider gateway.Provider, logger *slog.Logger) *Provisioner {
	return &Provisioner{wallets: wallets, details: details, provider: provider, logger: logger}
}

// Provision attaches the fresh identity id to the user's provider reference
// and creates a custodial wallet keyed by it. A user re-verifying after a
// rejection keeps their existing reference rather than minting a duplicate.
func (p *Provisioner) Provision(ctx context.Context, userID, identityID string) (Wallet, error) {
	reference, err := p.ensureReference(ctx, userID, identityID)
	if err != nil {
		return Wallet{}, err
	}

	res := p.provider.CreateWallet(ctx, reference)
	if !res.Success {
		return Wallet{}, gateway.Upstream(res.Message)
	}

	w := Wallet{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        TypeEVM,
		Reference:   res.Wallet.Reference,
		ProviderID:  res.Wallet.ID,
		Address:     res.Wallet.Address,
		AutoOfframp: false,
		CreatedAt:   time.Now().UTC(),
	}
	if err := p.wallets.Create(ctx, w); err != nil {
		if errors.Is(err, ErrWalletExists) {
			// A concurrent attempt already provisioned; reuse its row.
			return p.wallets.FindByUser(ctx, userID)
		}
		return Wallet{}, err
	}

	if p.logger != nil {
		p.logger.Info("custodial wallet provisioned",
			slog.String("user_id", userID),
			slog.String("wallet_id", w.ProviderID),
			slog.String("reference", w.Reference),
		)
	}
	return w, nil
}

// ensureReference reuses the existing provider reference when the user was
// verified before, or mints a fresh one on first verification.
func (p *Provisioner) ensureReference(ctx context.Context, userID, identityID string) (string, error) {
	det, err := p.details.FindByUser(ctx, userID)
	if err == nil {
		if err := p.details.SetIdentityID(ctx, det.ID, identityID); err != nil {
			return "", err
		}
		return det.Reference, nil
	}
	if !errors.Is(err, user.ErrDetailsNotFound) {
		return "", err
	}

	reference := newReference()
	det = user.Details{
		ID:         uuid.New().String(),
		UserID:     userID,
		Reference:  reference,
		IdentityID: identityID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := p.details.Create(ctx, det); err != nil {
		return "", err
	}
	return reference, nil
}

// newReference mints a process-unique provider-facing customer reference.
func newReference() string {
	return fmt.Sprintf("wp-%d", time.Now().UnixNano())
}
