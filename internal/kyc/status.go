package kyc

import (
	"errors"
	"fmt"

	"github.com/Cyberking99/WavePay/internal/user"
)

// Event drives the verification state machine.
type Event string

const (
	// EventSubmit records a document submission.
	EventSubmit Event = "submit"
	// EventVerified records a successful provider verification plus wallet
	// provisioning.
	EventVerified Event = "verified"
	// EventRejected records a provider verification failure.
	EventRejected Event = "rejected"
	// EventWalletFailed rolls back an in-flight approval whose wallet
	// provisioning failed. An approved user without a wallet is meaningless,
	// so the rollback also applies after the approved flip.
	EventWalletFailed Event = "wallet_failed"
)

// ErrInvalidTransition indicates the event is not permitted from the
// current status.
var ErrInvalidTransition = errors.New("invalid kyc status transition")

// Transition returns the status reached by applying event to current. It is
// the single authority on permitted verification state changes.
func Transition(current user.KycStatus, event Event) (user.KycStatus, error) {
	switch event {
	case EventSubmit:
		// Rejected users may resubmit; pending and approved users may not.
		if current == user.KycInactive || current == user.KycRejected {
			return user.KycPending, nil
		}
	case EventVerified:
		if current == user.KycPending {
			return user.KycApproved, nil
		}
	case EventRejected:
		if current == user.KycPending {
			return user.KycRejected, nil
		}
	case EventWalletFailed:
		if current == user.KycPending || current == user.KycApproved {
			return user.KycRejected, nil
		}
	}
	return current, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, event, current)
}
