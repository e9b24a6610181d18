package custody

import "time"

// TypeEVM tags wallets on EVM networks. Provisioning currently only creates
// these.
const TypeEVM = "evm"

// Wallet is a provider-custodied wallet descriptor. At most one exists per
// (user, network type).
type Wallet struct {
	ID          string
	UserID      string
	Type        string
	Reference   string // our provider-facing customer reference
	ProviderID  string // the custodian's wallet id
	Address     string // on-chain address
	AutoOfframp bool
	CreatedAt   time.Time
}
