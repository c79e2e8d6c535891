// README: Cart persistence backed by Redis, one JSON document per customer.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func cartKey(customerID string) string {
	return "cart:" + customerID
}

// Get returns the customer's cart, or an empty cart when none is stored.
func (s *Store) Get(ctx context.Context, customerID string) (Cart, error) {
	raw, err := s.rdb.Get(ctx, cartKey(customerID)).Result()
	if errors.Is(err, redis.Nil) {
		return Cart{CustomerID: customerID}, nil
	}
	if err != nil {
		return Cart{}, fmt.Errorf("cart get: %w", err)
	}

	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Cart{}, fmt.Errorf("cart decode: %w", err)
	}
	return c, nil
}

func (s *Store) Save(ctx context.Context, c Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("cart encode: %w", err)
	}
	if err := s.rdb.Set(ctx, cartKey(c.CustomerID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("cart save: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, customerID string) error {
	if err := s.rdb.Del(ctx, cartKey(customerID)).Err(); err != nil {
		return fmt.Errorf("cart delete: %w", err)
	}
	return nil
}
