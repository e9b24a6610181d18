package kyc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Cyberking99/WavePay/internal/custody"
	"github.com/Cyberking99/WavePay/internal/gateway"
	"github.com/Cyberking99/WavePay/internal/notification"
	"github.com/Cyberking99/WavePay/internal/user"
)

var (
	// ErrMissingFields indicates the document triple is incomplete.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidIdentityType indicates an unsupported document type.
	ErrInvalidIdentityType = errors.New("identity type must be bvn or nin")
	// ErrAlreadySubmitted indicates a live submission blocks this user.
	ErrAlreadySubmitted = errors.New("KYC already submitted")
)

// Provisioner is the wallet step invoked on verification success.
type Provisioner interface {
	Provision(ctx context.Context, userID, identityID string) (custody.Wallet, error)
}

// Service owns the verification state machine: it is the only writer of
// users.kyc_status.
type Service struct {
	records  Repository
	users    user.Repository
	wallets  custody.Repository
	step     Provisioner
	provider gateway.Provider
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService builds the identity verification coordinator.
func NewService(records Repository, users user.Repository, wallets custody.Repository, step Provisioner, provider gateway.Provider, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{
		records:  records,
		users:    users,
		wallets:  wallets,
		step:     step,
		provider: provider,
		notifier: notifier,
		logger:   logger,
	}
}

// SubmitInput is the document triple a user verifies with.
type SubmitInput struct {
	DOB            string
	IdentityType   string
	IdentityNumber string
}

// SubmitResult reports the terminal state of one verification attempt.
// Message carries the provider's failure text verbatim when Status is
// rejected.
type SubmitResult struct {
	Status     user.KycStatus
	IdentityID string
	Message    string
}

// Submit runs one verification attempt end to end: persist the submission
// durably as pending, verify the document with the provider, provision the
// custodial wallet, and settle on approved or rejected. Rejection is an
// outcome, not an error; errors are reserved for validation, conflicts and
// persistence faults that leave the status untouched.
func (s *Service) Submit(ctx context.Context, userID string, input SubmitInput) (SubmitResult, error) {
	if input.DOB == "" || input.IdentityType == "" || input.IdentityNumber == "" {
		return SubmitResult{}, ErrMissingFields
	}
	identityType := IdentityType(input.IdentityType)
	if !identityType.Valid() {
		return SubmitResult{}, ErrInvalidIdentityType
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return SubmitResult{}, err
	}

	status, err := Transition(u.KycStatus, EventSubmit)
	if err != nil {
		return SubmitResult{}, ErrAlreadySubmitted
	}

	replace := false
	if _, err := s.records.FindByUser(ctx, u.ID); err == nil {
		if u.KycStatus != user.KycRejected {
			return SubmitResult{}, ErrAlreadySubmitted
		}
		// Resubmission after rejection replaces the stale record.
		replace = true
	}

	record := Record{
		ID:           uuid.New().String(),
		UserID:       u.ID,
		DOB:          input.DOB,
		IdentityType: identityType,
		CreatedAt:    time.Now().UTC(),
	}
	if identityType == IdentityBVN {
		record.BVN = input.IdentityNumber
	} else {
		record.NIN = input.IdentityNumber
	}

	// The pending state must be durable before the external call that might
	// outlive this request.
	if err := s.records.Submit(ctx, record, replace); err != nil {
		if errors.Is(err, ErrRecordExists) {
			return SubmitResult{}, ErrAlreadySubmitted
		}
		return SubmitResult{}, err
	}

	verification := s.provider.VerifyIdentity(ctx, gateway.VerifyIdentityInput{
		Type:   string(identityType),
		Name:   u.FullName,
		Number: input.IdentityNumber,
		DOB:    input.DOB,
	})
	if !verification.Success {
		return s.reject(ctx, u, status, EventRejected, verification.Message)
	}

	identityID := verification.Identity.ID
	wallet, err := s.step.Provision(ctx, u.ID, identityID)
	if err != nil {
		// Approval without a wallet is meaningless; roll the attempt back.
		return s.reject(ctx, u, status, EventWalletFailed, err.Error())
	}

	status, err = Transition(status, EventVerified)
	if err != nil {
		return SubmitResult{}, err
	}
	if err := s.users.SetKycStatus(ctx, u.ID, status); err != nil {
		return SubmitResult{}, err
	}

	if s.logger != nil {
		s.logger.Info("kyc approved",
			slog.String("user_id", u.ID),
			slog.String("identity_id", identityID),
			slog.String("wallet_address", wallet.Address),
		)
	}
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindKycApproved,
			Destination: u.Address,
			Body:        "Your identity has been verified and your wallet is ready.",
		})
	}

	return SubmitResult{Status: status, IdentityID: identityID}, nil
}

// reject settles a failed attempt on the rejected status and surfaces the
// provider's message to the caller.
func (s *Service) reject(ctx context.Context, u user.User, current user.KycStatus, event Event, message string) (SubmitResult, error) {
	status, err := Transition(current, event)
	if err != nil {
		return SubmitResult{}, err
	}
	if err := s.users.SetKycStatus(ctx, u.ID, status); err != nil {
		return SubmitResult{}, err
	}
	if s.logger != nil {
		s.logger.Warn("kyc rejected",
			slog.String("user_id", u.ID),
			slog.String("event", string(event)),
			slog.String("reason", message),
		)
	}
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindKycRejected,
			Destination: u.Address,
			Body:        fmt.Sprintf("Identity verification failed: %s", message),
		})
	}
	return SubmitResult{Status: status, Message: message}, nil
}

// StatusResult reports the persisted verification state, with the custodial
// wallet address once approved.
type StatusResult struct {
	Status        user.KycStatus
	WalletAddress string
}

// Status returns the user's verification state.
func (s *Service) Status(ctx context.Context, userID string) (StatusResult, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return StatusResult{}, err
	}
	result := StatusResult{Status: u.KycStatus}
	if u.KycStatus == user.KycApproved {
		if w, err := s.wallets.FindByUser(ctx, u.ID); err == nil {
			result.WalletAddress = w.Address
		}
	}
	return result, nil
}
