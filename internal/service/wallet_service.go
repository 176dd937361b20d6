package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"weedhaven-storefront/internal/core/domain"
	"weedhaven-storefront/internal/core/ports"
	"weedhaven-storefront/pkg/apperror"

	"github.com/rs/zerolog"
)

// WalletServiceImpl implements ports.WalletService. provider may be nil when
// no wallet extension/node is configured; every interactive operation then
// fails with ProviderUnavailable instead of crashing.
type WalletServiceImpl struct {
	provider ports.WalletProvider
	store    ports.SessionStore
	ttl      time.Duration
	log      zerolog.Logger

	mu       sync.Mutex
	inflight map[string]struct{} // session ids with a pending connect
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	provider ports.WalletProvider,
	store ports.SessionStore,
	ttl time.Duration,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		provider: provider,
		store:    store,
		ttl:      ttl,
		log:      log,
		inflight: make(map[string]struct{}),
	}
}

// Connect requests account access from the wallet provider and stores the
// resulting address and balance in the session. Rapid repeated connects for
// the same session are rejected while one is pending.
func (s *WalletServiceImpl) Connect(ctx context.Context, sessionID string) (*domain.UserSession, error) {
	if s.provider == nil {
		return nil, apperror.ErrProviderUnavailable()
	}

	if !s.acquireConnect(sessionID) {
		return nil, apperror.ErrConnectInProgress()
	}
	defer s.releaseConnect(sessionID)

	accounts, err := s.provider.RequestAccounts(ctx)
	if err != nil {
		if errors.Is(err, ports.ErrUserRejected) {
			return nil, apperror.ErrUserRejected()
		}
		return nil, apperror.InternalError(fmt.Errorf("request accounts: %w", err))
	}
	if len(accounts) == 0 {
		return nil, apperror.ErrProviderUnavailable()
	}

	address := accounts[0]
	balance, err := s.provider.Balance(ctx, address)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("query balance: %w", err))
	}

	now := time.Now().UTC()
	session := &domain.UserSession{
		Address:       &address,
		NativeBalance: &balance,
		ConnectedAt:   &now,
	}

	if err := s.store.Save(ctx, sessionID, session, s.ttl); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save session: %w", err))
	}

	s.log.Info().
		Str("session_id", sessionID).
		Str("address", address).
		Msg("wallet connected")

	return session, nil
}

// Disconnect clears local session state. The wallet keeps whatever page
// permission it granted; providers expose no revoke primitive.
func (s *WalletServiceImpl) Disconnect(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return apperror.InternalError(fmt.Errorf("delete session: %w", err))
	}

	s.log.Info().Str("session_id", sessionID).Msg("wallet disconnected (local reset)")
	return nil
}

// CheckExistingConnection passively probes the provider for an
// already-authorized account, without prompting. Transient provider failures
// degrade to "not connected" rather than surfacing an error.
func (s *WalletServiceImpl) CheckExistingConnection(ctx context.Context, sessionID string) (*domain.UserSession, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load session: %w", err))
	}
	if session.Connected() {
		return session, nil
	}

	if s.provider == nil {
		return session, nil
	}

	accounts, err := s.provider.Accounts(ctx)
	if err != nil {
		s.log.Debug().Err(err).Str("session_id", sessionID).Msg("passive wallet probe failed, treating as not connected")
		return session, nil
	}
	if len(accounts) == 0 {
		return session, nil
	}

	address := accounts[0]
	now := time.Now().UTC()
	session.Address = &address
	session.ConnectedAt = &now

	if balance, err := s.provider.Balance(ctx, address); err != nil {
		s.log.Debug().Err(err).Str("address", address).Msg("balance query failed during passive probe")
	} else {
		session.NativeBalance = &balance
	}

	if err := s.store.Save(ctx, sessionID, session, s.ttl); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save session: %w", err))
	}

	s.log.Info().
		Str("session_id", sessionID).
		Str("address", address).
		Msg("restored existing wallet connection")

	return session, nil
}

func (s *WalletServiceImpl) acquireConnect(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, pending := s.inflight[sessionID]; pending {
		return false
	}
	s.inflight[sessionID] = struct{}{}
	return true
}

func (s *WalletServiceImpl) releaseConnect(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, sessionID)
}
