package memory

import (
	"context"
	"sync"
	"time"

	"weedhaven-storefront/internal/core/domain"
)

// SessionStore implements ports.SessionStore in process memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
	now      func() time.Time
}

type sessionEntry struct {
	session   domain.UserSession
	expiresAt time.Time
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]sessionEntry),
		now:      time.Now,
	}
}

// Get loads the session's wallet state. A missing or expired entry yields a
// zero-value (disconnected) session.
func (s *SessionStore) Get(_ context.Context, sessionID string) (*domain.UserSession, error) {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok || s.now().After(entry.expiresAt) {
		return &domain.UserSession{}, nil
	}
	session := entry.session
	return &session, nil
}

// Save writes the session's wallet state, refreshing the TTL.
func (s *SessionStore) Save(_ context.Context, sessionID string, session *domain.UserSession, ttl time.Duration) error {
	s.mu.Lock()
	s.sessions[sessionID] = sessionEntry{session: *session, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

// Delete removes the session's wallet state.
func (s *SessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}
