package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"weedhaven-storefront/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// CartStore implements ports.CartStore on Redis. Carts are stored as JSON
// under a per-session key with a rolling TTL, so abandoned carts expire on
// their own.
type CartStore struct {
	client *goredis.Client
	prefix string
}

// NewCartStore creates a new Redis-backed cart store.
func NewCartStore(client *goredis.Client) *CartStore {
	return &CartStore{
		client: client,
		prefix: "cart:",
	}
}

// Get loads the session's cart. A missing key yields an empty cart.
func (s *CartStore) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := s.client.Get(ctx, s.prefix+sessionID).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return &domain.Cart{}, nil
		}
		return nil, fmt.Errorf("redis cart get: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshaling cart: %w", err)
	}
	return &cart, nil
}

// Save writes the session's cart, refreshing the TTL.
func (s *CartStore) Save(ctx context.Context, sessionID string, cart *domain.Cart, ttl time.Duration) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshaling cart: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+sessionID, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis cart set: %w", err)
	}
	return nil
}
