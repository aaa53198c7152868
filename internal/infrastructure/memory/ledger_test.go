package memory

import (
	"context"
	"errors"
	"testing"

	domledger "cartpay/internal/domain/ledger"
)

func TestLedgerInsert(t *testing.T) {
	ledger := NewLedger()
	ctx := context.Background()

	rec := domledger.TransactionRecord{TransactionID: "txn-1"}
	if err := ledger.Insert(ctx, rec); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if !ledger.Has("txn-1") {
		t.Fatal("inserted record not found")
	}

	if err := ledger.Insert(ctx, rec); !errors.Is(err, domledger.ErrDuplicateTransaction) {
		t.Fatalf("expected ErrDuplicateTransaction, got %v", err)
	}
	if ledger.Len() != 1 {
		t.Fatalf("duplicate insert must not grow ledger, got %d records", ledger.Len())
	}
}

func TestLedgerRejectsEmptyID(t *testing.T) {
	ledger := NewLedger()
	if err := ledger.Insert(context.Background(), domledger.TransactionRecord{}); err == nil {
		t.Fatal("expected error for empty transaction id")
	}
}
