package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"weedhaven-storefront/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// SessionStore implements ports.SessionStore on Redis. Wallet session state
// is ephemeral by design; a key expiring is equivalent to a disconnect.
type SessionStore struct {
	client *goredis.Client
	prefix string
}

// NewSessionStore creates a new Redis-backed session store.
func NewSessionStore(client *goredis.Client) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: "session:",
	}
}

// Get loads the session's wallet state. A missing key yields a zero-value
// (disconnected) session.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*domain.UserSession, error) {
	data, err := s.client.Get(ctx, s.prefix+sessionID).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return &domain.UserSession{}, nil
		}
		return nil, fmt.Errorf("redis session get: %w", err)
	}

	var session domain.UserSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshaling session: %w", err)
	}
	return &session, nil
}

// Save writes the session's wallet state, refreshing the TTL.
func (s *SessionStore) Save(ctx context.Context, sessionID string, session *domain.UserSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+sessionID, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis session set: %w", err)
	}
	return nil
}

// Delete removes the session's wallet state. Deleting an absent session is
// a no-op.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.prefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis session delete: %w", err)
	}
	return nil
}
