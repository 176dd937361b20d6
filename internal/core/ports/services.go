package ports

import (
	"context"
	"time"

	"weedhaven-storefront/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartView is a cart snapshot with its computed totals. Subtotal excludes
// the service fee; Total = Subtotal + Fee and is what checkout charges.
type CartView struct {
	Items    []domain.CartItem
	Subtotal decimal.Decimal
	Fee      decimal.Decimal
	Total    decimal.Decimal
}

// CartService defines cart business logic.
type CartService interface {
	AddItem(ctx context.Context, sessionID string, productID int64) (*CartView, error)
	RemoveItem(ctx context.Context, sessionID string, productID int64) (*CartView, error)
	GetCart(ctx context.Context, sessionID string) (*CartView, error)
}

// WalletService defines wallet session logic.
type WalletService interface {
	// Connect prompts the provider for account access. Overlapping connects
	// for the same session are rejected until the pending one resolves.
	Connect(ctx context.Context, sessionID string) (*domain.UserSession, error)
	// Disconnect clears local session state only; wallet-side permission is
	// not revoked.
	Disconnect(ctx context.Context, sessionID string) error
	// CheckExistingConnection passively probes for an already-authorized
	// account. Provider failures degrade to "not connected", never an error.
	CheckExistingConnection(ctx context.Context, sessionID string) (*domain.UserSession, error)
}

// CheckoutRequest holds validated input for one checkout attempt.
type CheckoutRequest struct {
	SessionID    string
	Method       domain.PaymentMethod
	DispensaryID int64
	Card         *CardDetails // card flow only
}

// CheckoutService is the payment orchestrator: it drives one of the two
// payment flows to a terminal state and reports a structured result.
type CheckoutService interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*domain.PaymentResult, error)
}

// TokenService issues and validates guest session tokens.
type TokenService interface {
	Generate(sessionID uuid.UUID) (string, time.Time, error)
	Validate(tokenString string) (uuid.UUID, error)
}
