package memory

import (
	"context"
	"fmt"
	"sync"

	domledger "cartpay/internal/domain/ledger"
)

// Ledger is the in-memory transaction record store.
type Ledger struct {
	mu      sync.RWMutex
	records map[string]domledger.TransactionRecord
}

func NewLedger() *Ledger {
	return &Ledger{records: make(map[string]domledger.TransactionRecord)}
}

func (l *Ledger) Insert(ctx context.Context, rec domledger.TransactionRecord) error {
	_ = ctx
	if rec.TransactionID == "" {
		return fmt.Errorf("ledger: transaction id is required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.records[rec.TransactionID]; exists {
		return domledger.ErrDuplicateTransaction
	}
	l.records[rec.TransactionID] = rec
	return nil
}

// Has reports whether a record exists for the transaction id.
func (l *Ledger) Has(transactionID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.records[transactionID]
	return ok
}

// Len returns the number of committed records.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
