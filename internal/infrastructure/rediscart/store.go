// Package rediscart backs the cart store with a Redis list per customer.
package rediscart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	domcart "cartpay/internal/domain/cart"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cart:"

// Store implements cart.Store on Redis list commands. RPUSH preserves
// arrival order, LRANGE 0..-1 reads the whole cart, DEL clears it (a no-op
// on a missing key). Items are stored as one JSON document per list entry.
type Store struct {
	client *redis.Client
}

// New connects to addr ("host:port", port defaulted to 6379) and verifies
// the connection with a ping.
func New(ctx context.Context, addr string) (*Store, error) {
	if !strings.Contains(addr, ":") {
		addr += ":6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		MinIdleConns: 1,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("rediscart: ping %s: %w", addr, err)
	}

	return &Store{client: client}, nil
}

func (s *Store) AddItem(ctx context.Context, customerID string, item domcart.Item) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("rediscart: encode item: %w", err)
	}
	if err := s.client.RPush(ctx, key(customerID), payload).Err(); err != nil {
		return fmt.Errorf("rediscart: rpush: %w", err)
	}
	return nil
}

func (s *Store) GetCart(ctx context.Context, customerID string) (domcart.Cart, error) {
	entries, err := s.client.LRange(ctx, key(customerID), 0, -1).Result()
	if err != nil {
		return domcart.Cart{}, fmt.Errorf("rediscart: lrange: %w", err)
	}

	items := make([]domcart.Item, 0, len(entries))
	for _, entry := range entries {
		var item domcart.Item
		if err := json.Unmarshal([]byte(entry), &item); err != nil {
			return domcart.Cart{}, fmt.Errorf("rediscart: decode item: %w", err)
		}
		items = append(items, item)
	}

	return domcart.Cart{CustomerID: customerID, Items: items}, nil
}

func (s *Store) EmptyCart(ctx context.Context, customerID string) error {
	if err := s.client.Del(ctx, key(customerID)).Err(); err != nil {
		return fmt.Errorf("rediscart: del: %w", err)
	}
	return nil
}

// Close releases the client's connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

func key(customerID string) string {
	return keyPrefix + customerID
}
