package gateway

import (
	"context"
	"time"
)

// Provider is the boundary to the settlement provider backing identity
// verification, bank resolution, custodial wallets and off-ramp transfers.
// Every call returns a tagged result: transport faults, non-2xx statuses and
// malformed payloads all surface as Success=false with a message, never as a
// panic or raw error. The caller decides whether a failure is terminal.
type Provider interface {
	VerifyIdentity(ctx context.Context, input VerifyIdentityInput) IdentityResult
	ListBanks(ctx context.Context) BanksResult
	VerifyBankAccount(ctx context.Context, bankCode, accountNumber string) AccountResult
	CreateBeneficiary(ctx context.Context, identityID, bankCode, accountNumber string) BeneficiaryResult
	GetRate(ctx context.Context, from, to string) RateResult
	CreateWallet(ctx context.Context, reference string) WalletResult
	CreateOfframp(ctx context.Context, input TransferInput) TransferResult
}

// VerifyIdentityInput carries the document triple checked against the
// identity verifier.
type VerifyIdentityInput struct {
	Type   string // "bvn" or "nin"
	Name   string
	Number string
	DOB    string // YYYY-MM-DD
}

// TransferInput carries an off-ramp execution request.
type TransferInput struct {
	Amount        string
	WalletID      string
	BeneficiaryID string
	Asset         string // chain-namespaced, e.g. "base:usdc"
}

// Identity is the provider's record of a verified identity.
type Identity struct {
	ID string `json:"id"`
}

// Bank is a supported payout institution.
type Bank struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Account is the rail-resolved owner of a bank account number.
type Account struct {
	AccountName string `json:"account_name"`
	BankName    string `json:"bank_name"`
}

// Beneficiary identifies a registered payout destination.
type Beneficiary struct {
	ID string `json:"id"`
}

// Rate is a time-bound conversion quote. It must never be used past ExpiresAt.
type Rate struct {
	Rate      float64   `json:"rate"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Wallet is a custodial wallet created by the provider.
type Wallet struct {
	ID        string `json:"id"`
	Address   string `json:"address"`
	Reference string `json:"reference"`
}

// IdentityResult is the tagged outcome of an identity verification.
type IdentityResult struct {
	Success  bool
	Message  string
	Identity Identity
}

// BanksResult is the tagged outcome of a supported-bank listing.
type BanksResult struct {
	Success bool
	Message string
	Banks   []Bank
}

// AccountResult is the tagged outcome of a bank account lookup.
type AccountResult struct {
	Success bool
	Message string
	Account Account
}

// BeneficiaryResult is the tagged outcome of a beneficiary registration.
type BeneficiaryResult struct {
	Success     bool
	Message     string
	Beneficiary Beneficiary
}

// RateResult is the tagged outcome of a rate fetch.
type RateResult struct {
	Success bool
	Message string
	Rate    Rate
}

// WalletResult is the tagged outcome of a custodial wallet creation.
type WalletResult struct {
	Success bool
	Message string
	Wallet  Wallet
}

// TransferResult is the tagged outcome of an off-ramp execution. Payload holds
// the provider's raw response for audit storage.
type TransferResult struct {
	Success bool
	Message string
	Payload map[string]any
}

// UpstreamError carries a provider failure message verbatim to the caller.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return "provider request failed"
	}
	return e.Message
}

// Upstream wraps a provider message into an UpstreamError.
func Upstream(message string) *UpstreamError {
	return &UpstreamError{Message: message}
}
