package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserSession tracks the wallet state of one guest session. All fields are
// nil while disconnected. Disconnect is a local reset only; the wallet side
// keeps whatever authorization it granted.
type UserSession struct {
	Address       *string          `json:"address"`
	NativeBalance *decimal.Decimal `json:"native_balance"`
	TokenBalance  *decimal.Decimal `json:"token_balance,omitempty"`
	ConnectedAt   *time.Time       `json:"connected_at,omitempty"`
}

// Connected reports whether a wallet account is attached to the session.
func (s *UserSession) Connected() bool {
	return s.Address != nil && *s.Address != ""
}

// Reset clears all wallet fields, returning the session to its
// disconnected zero state.
func (s *UserSession) Reset() {
	s.Address = nil
	s.NativeBalance = nil
	s.TokenBalance = nil
	s.ConnectedAt = nil
}
