package ports

import (
	"context"
	"time"

	"weedhaven-storefront/internal/core/domain"
)

// CartStore holds per-session carts. Get returns an empty cart (never nil)
// when the session has no cart yet.
type CartStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart *domain.Cart, ttl time.Duration) error
}

// SessionStore holds per-session wallet state. Get returns a zero-value
// session (never nil) when none is stored.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.UserSession, error)
	Save(ctx context.Context, sessionID string, session *domain.UserSession, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}
