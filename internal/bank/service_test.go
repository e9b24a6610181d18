package bank

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Cyberking99/WavePay/internal/gateway"
	"github.com/Cyberking99/WavePay/internal/user"
)

type stubRail struct {
	gateway.Static

	account     gateway.AccountResult
	beneficiary gateway.BeneficiaryResult

	beneficiaryCalls int
}

func (s *stubRail) VerifyBankAccount(_ context.Context, _, _ string) gateway.AccountResult {
	return s.account
}

func (s *stubRail) CreateBeneficiary(_ context.Context, _, _, _ string) gateway.BeneficiaryResult {
	s.beneficiaryCalls++
	return s.beneficiary
}

func seedDetails(t *testing.T, details user.DetailsRepository, identityID string) string {
	t.Helper()
	userID := uuid.NewString()
	err := details.Create(context.Background(), user.Details{
		ID:         uuid.NewString(),
		UserID:     userID,
		Reference:  "wp-1",
		IdentityID: identityID,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed details: %v", err)
	}
	return userID
}

func TestAddLinksAccount(t *testing.T) {
	rail := &stubRail{
		account:     gateway.AccountResult{Success: true, Account: gateway.Account{AccountName: "JOHN DOE", BankName: "Guaranty Trust Bank"}},
		beneficiary: gateway.BeneficiaryResult{Success: true, Beneficiary: gateway.Beneficiary{ID: "ben_1"}},
	}
	accounts := NewMemoryRepository()
	details := user.NewMemoryDetailsRepository()
	svc := NewService(accounts, details, rail, nil)
	userID := seedDetails(t, details, "idn_1")

	account, err := svc.Add(context.Background(), userID, "058", "0123456789")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if account.AccountName != "JOHN DOE" || account.BankName != "Guaranty Trust Bank" {
		t.Fatalf("rail-resolved fields not stored: %+v", account)
	}
	if account.BeneficiaryID != "ben_1" {
		t.Fatalf("expected beneficiary ben_1, got %q", account.BeneficiaryID)
	}

	list, err := svc.List(context.Background(), userID)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one linked account, got %d err=%v", len(list), err)
	}
}

func TestAddVerificationFailurePersistsNothing(t *testing.T) {
	rail := &stubRail{account: gateway.AccountResult{Message: "Account not found"}}
	accounts := NewMemoryRepository()
	details := user.NewMemoryDetailsRepository()
	svc := NewService(accounts, details, rail, nil)
	userID := seedDetails(t, details, "idn_1")

	_, err := svc.Add(context.Background(), userID, "058", "0000000000")
	var upstream *gateway.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if upstream.Message != "Account not found" {
		t.Fatalf("provider message not carried verbatim: %q", upstream.Message)
	}
	if rail.beneficiaryCalls != 0 {
		t.Fatalf("beneficiary registration must not run after a failed verification")
	}

	list, _ := svc.List(context.Background(), userID)
	if len(list) != 0 {
		t.Fatalf("expected nothing persisted, got %d accounts", len(list))
	}
}

func TestAddBeneficiaryFailurePersistsNothing(t *testing.T) {
	rail := &stubRail{
		account:     gateway.AccountResult{Success: true, Account: gateway.Account{AccountName: "JOHN DOE"}},
		beneficiary: gateway.BeneficiaryResult{Message: "identity not eligible"},
	}
	accounts := NewMemoryRepository()
	details := user.NewMemoryDetailsRepository()
	svc := NewService(accounts, details, rail, nil)
	userID := seedDetails(t, details, "idn_1")

	_, err := svc.Add(context.Background(), userID, "058", "0123456789")
	var upstream *gateway.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}

	list, _ := svc.List(context.Background(), userID)
	if len(list) != 0 {
		t.Fatalf("expected nothing persisted, got %d accounts", len(list))
	}
}

func TestAddRequiresVerifiedIdentity(t *testing.T) {
	rail := &stubRail{}
	svc := NewService(NewMemoryRepository(), user.NewMemoryDetailsRepository(), rail, nil)

	if _, err := svc.Add(context.Background(), uuid.NewString(), "058", "0123456789"); !errors.Is(err, ErrIdentityRequired) {
		t.Fatalf("expected ErrIdentityRequired, got %v", err)
	}
}

func TestDeleteIsOwnerScoped(t *testing.T) {
	rail := &stubRail{
		account:     gateway.AccountResult{Success: true, Account: gateway.Account{AccountName: "JOHN DOE"}},
		beneficiary: gateway.BeneficiaryResult{Success: true, Beneficiary: gateway.Beneficiary{ID: "ben_1"}},
	}
	accounts := NewMemoryRepository()
	details := user.NewMemoryDetailsRepository()
	svc := NewService(accounts, details, rail, nil)
	owner := seedDetails(t, details, "idn_1")

	account, err := svc.Add(context.Background(), owner, "058", "0123456789")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := svc.Delete(context.Background(), uuid.NewString(), account.ID); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound for foreign user, got %v", err)
	}
	if err := svc.Delete(context.Background(), owner, account.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	list, _ := svc.List(context.Background(), owner)
	if len(list) != 0 {
		t.Fatalf("expected account removed, got %d", len(list))
	}
}
