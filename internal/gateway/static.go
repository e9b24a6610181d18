package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Static simulates a fully successful settlement provider. It backs local
// development runs where no Bread credentials are configured.
type Static struct{}

// NewStatic builds the simulated provider.
func NewStatic() Static {
	return Static{}
}

// VerifyIdentity approves every document with a synthetic identity id.
func (Static) VerifyIdentity(_ context.Context, _ VerifyIdentityInput) IdentityResult {
	return IdentityResult{
		Success:  true,
		Message:  "Identity verified successfully.",
		Identity: Identity{ID: "idn_" + uuid.NewString()},
	}
}

// ListBanks returns a fixed institution list.
func (Static) ListBanks(_ context.Context) BanksResult {
	return BanksResult{
		Success: true,
		Banks: []Bank{
			{Code: "058", Name: "Guaranty Trust Bank"},
			{Code: "044", Name: "Access Bank"},
			{Code: "057", Name: "Zenith Bank"},
		},
	}
}

// VerifyBankAccount resolves every account to a fixed holder name.
func (Static) VerifyBankAccount(_ context.Context, bankCode, _ string) AccountResult {
	return AccountResult{
		Success: true,
		Account: Account{AccountName: "DEV ACCOUNT", BankName: "Bank " + bankCode},
	}
}

// CreateBeneficiary registers a synthetic payout destination.
func (Static) CreateBeneficiary(_ context.Context, _, _, _ string) BeneficiaryResult {
	return BeneficiaryResult{
		Success:     true,
		Beneficiary: Beneficiary{ID: "ben_" + uuid.NewString()},
	}
}

// GetRate quotes a fixed rate valid for thirty seconds.
func (Static) GetRate(_ context.Context, _, _ string) RateResult {
	return RateResult{
		Success: true,
		Rate:    Rate{Rate: 1528.50, ExpiresAt: time.Now().Add(30 * time.Second)},
	}
}

// CreateWallet provisions a synthetic custodial wallet.
func (Static) CreateWallet(_ context.Context, reference string) WalletResult {
	return WalletResult{
		Success: true,
		Wallet: Wallet{
			ID:        "wal_" + uuid.NewString(),
			Address:   fmt.Sprintf("0x%032x", time.Now().UnixNano()),
			Reference: reference,
		},
	}
}

// CreateOfframp approves the transfer with a synthetic payload.
func (Static) CreateOfframp(_ context.Context, input TransferInput) TransferResult {
	return TransferResult{
		Success: true,
		Payload: map[string]any{
			"id":     "off_" + uuid.NewString(),
			"status": "completed",
			"amount": input.Amount,
			"asset":  strings.ToLower(input.Asset),
		},
	}
}
