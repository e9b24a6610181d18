package user

import "time"

// KycStatus is the verification state persisted on the user row. Transitions
// are owned exclusively by the kyc coordinator.
type KycStatus string

const (
	KycInactive KycStatus = "inactive"
	KycPending  KycStatus = "pending"
	KycApproved KycStatus = "approved"
	KycRejected KycStatus = "rejected"
)

// User represents a wallet-address identity. The address is the immutable
// identity key; the row is created on first successful signature verification.
type User struct {
	ID        string
	Address   string
	FullName  string
	Username  string
	Onboarded bool
	KycStatus KycStatus
	CreatedAt time.Time
}

// Details holds the provider-facing customer reference and the externally
// issued identity-verification id. Created lazily on first KYC success;
// its presence distinguishes a first verification from a re-verification.
type Details struct {
	ID         string
	UserID     string
	Reference  string
	IdentityID string
	Email      string
	CreatedAt  time.Time
}
