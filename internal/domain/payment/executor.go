package payment

import "context"

// Executor performs a single opaque charge against the card network.
// A nil error means money moved and the result's transaction id is final.
// Declines are reported via ErrCardDeclined; any other error is transient.
type Executor interface {
	Execute(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}
