package cart

import "context"

// Store is the per-customer list store behind the cart service. Every
// implementation must preserve append order on GetCart, return an empty cart
// (not an error) for unknown customers, and treat EmptyCart of a missing key
// as a no-op.
type Store interface {
	AddItem(ctx context.Context, customerID string, item Item) error
	GetCart(ctx context.Context, customerID string) (Cart, error)
	EmptyCart(ctx context.Context, customerID string) error
}
