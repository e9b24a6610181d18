package bank

import "time"

// Account is a linked payout destination. A row exists only after both the
// rail's account verification and the beneficiary registration succeeded;
// partial writes are forbidden.
type Account struct {
	ID            string
	UserID        string
	BankCode      string
	BankName      string
	AccountNumber string
	AccountName   string // rail-resolved holder name, never caller-supplied
	BeneficiaryID string
	CreatedAt     time.Time
}
