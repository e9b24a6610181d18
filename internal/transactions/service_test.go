package transactions

import (
	"context"
	"errors"
	"testing"
)

func validRecord() RecordInput {
	return RecordInput{
		Hash:   "0xabc",
		From:   "0xAlice",
		To:     "0xBob",
		Amount: "25.00",
		Token:  "usdc",
		Type:   TypeTransfer,
	}
}

func TestRecordAndHistory(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	entry, err := svc.Record(ctx, validRecord())
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if entry.Status != StatusConfirmed {
		t.Fatalf("client-reported entries persist as confirmed, got %s", entry.Status)
	}

	for _, address := range []string{"0xAlice", "0xbob"} {
		history, err := svc.History(ctx, address)
		if err != nil || len(history) != 1 {
			t.Fatalf("expected one entry for %s, got %d err=%v", address, len(history), err)
		}
	}

	history, _ := svc.History(ctx, "0xStranger")
	if len(history) != 0 {
		t.Fatalf("unrelated address must see nothing, got %d", len(history))
	}
}

func TestRecordRejectsDuplicateHash(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Record(ctx, validRecord()); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if _, err := svc.Record(ctx, validRecord()); !errors.Is(err, ErrDuplicateHash) {
		t.Fatalf("expected ErrDuplicateHash, got %v", err)
	}
}

func TestRecordValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	input := validRecord()
	input.Amount = ""
	if _, err := svc.Record(context.Background(), input); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}
