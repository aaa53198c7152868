package memory

import (
	"context"
	"sync"

	domcart "cartpay/internal/domain/cart"
)

// CartStore keeps carts in process memory. Used by tests and local runs;
// per-key atomicity comes from the single mutex.
type CartStore struct {
	mu    sync.RWMutex
	items map[string][]domcart.Item
}

func NewCartStore() *CartStore {
	return &CartStore{items: make(map[string][]domcart.Item)}
}

func (s *CartStore) AddItem(ctx context.Context, customerID string, item domcart.Item) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[customerID] = append(s.items[customerID], item)
	return nil
}

func (s *CartStore) GetCart(ctx context.Context, customerID string) (domcart.Cart, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.items[customerID]
	out := make([]domcart.Item, len(stored))
	copy(out, stored)
	return domcart.Cart{CustomerID: customerID, Items: out}, nil
}

func (s *CartStore) EmptyCart(ctx context.Context, customerID string) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	// Clearing resets to an empty list rather than deleting the key, so a
	// later read sees an empty cart, never an absence.
	s.items[customerID] = nil
	return nil
}
