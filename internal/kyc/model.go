package kyc

import "time"

// IdentityType names the national document a user verifies with.
type IdentityType string

const (
	IdentityBVN IdentityType = "bvn"
	IdentityNIN IdentityType = "nin"
)

// Valid reports whether the identity type is one the verifier supports.
func (t IdentityType) Valid() bool {
	return t == IdentityBVN || t == IdentityNIN
}

// Record is the submitted document set, one per user. Exactly one of BVN or
// NIN is populated, matching IdentityType.
type Record struct {
	ID           string
	UserID       string
	DOB          string // YYYY-MM-DD
	IdentityType IdentityType
	BVN          string
	NIN          string
	CreatedAt    time.Time
}

// Number returns the document value under the field matching IdentityType.
func (r Record) Number() string {
	if r.IdentityType == IdentityBVN {
		return r.BVN
	}
	return r.NIN
}
