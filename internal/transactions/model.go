package transactions

import "time"

// Transaction kinds. One ledger row shape covers all three kinds of money
// movement.
const (
	TypeTransfer = "transfer"
	TypeLink     = "link"
	TypeOfframp  = "offramp"
)

// Transaction statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusSuccess   = "success"
)

// Transaction is one ledger entry. Hash is the unique idempotency key;
// LinkID and Payload are set only for link receipts and off-ramp
// conversions respectively.
type Transaction struct {
	ID        string
	Hash      string
	From      string
	To        string
	Amount    string
	Token     string
	Type      string
	Status    string
	LinkID    string
	Payload   string // opaque serialized provider response, audit only
	CreatedAt time.Time
}
