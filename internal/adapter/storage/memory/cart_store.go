package memory

import (
	"context"
	"sync"
	"time"

	"weedhaven-storefront/internal/core/domain"
)

// CartStore implements ports.CartStore in process memory. It is the default
// backend for single-instance demo deployments; entries expire lazily on
// read.
type CartStore struct {
	mu    sync.RWMutex
	carts map[string]cartEntry
	now   func() time.Time
}

type cartEntry struct {
	cart      domain.Cart
	expiresAt time.Time
}

// NewCartStore creates a new in-memory cart store.
func NewCartStore() *CartStore {
	return &CartStore{
		carts: make(map[string]cartEntry),
		now:   time.Now,
	}
}

// Get loads the session's cart. A missing or expired entry yields an empty
// cart.
func (s *CartStore) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	s.mu.RLock()
	entry, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if !ok || s.now().After(entry.expiresAt) {
		return &domain.Cart{}, nil
	}

	// Copy so callers cannot mutate the stored cart in place.
	cart := domain.Cart{Items: append([]domain.CartItem(nil), entry.cart.Items...)}
	return &cart, nil
}

// Save writes the session's cart, refreshing the TTL.
func (s *CartStore) Save(_ context.Context, sessionID string, cart *domain.Cart, ttl time.Duration) error {
	stored := domain.Cart{Items: append([]domain.CartItem(nil), cart.Items...)}
	s.mu.Lock()
	s.carts[sessionID] = cartEntry{cart: stored, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
	return nil
}
