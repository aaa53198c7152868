package ledger

import (
	"context"
	"errors"
)

// ErrDuplicateTransaction reports an insert for a transaction id that is
// already recorded. Transaction ids are network-generated and unique, so
// this should not occur in normal operation.
var ErrDuplicateTransaction = errors.New("ledger: transaction already recorded")

// TransactionRecord is the durable proof that a charge happened. Records are
// append-only: created exactly once per successful charge, never mutated.
type TransactionRecord struct {
	TransactionID string `bson:"transaction_id" json:"transaction_id"`
}

// Ledger is the append-only record store. Insert must be atomic per
// transaction id.
type Ledger interface {
	Insert(ctx context.Context, rec TransactionRecord) error
}
