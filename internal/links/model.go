package links

import "time"

// Link is a shareable payment request owned by a user.
type Link struct {
	ID           string
	LinkID       string // public identifier embedded in the shared URL
	UserID       string
	Address      string
	Amount       string
	Description  string
	Type         string
	ExpiryDate   *time.Time
	CustomFields string // JSON-encoded extra form fields
	Active       bool
	Uses         int
	CreatedAt    time.Time
}
