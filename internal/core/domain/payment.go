package domain

import "github.com/shopspring/decimal"

// PaymentMethod selects one of the two checkout flows.
type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodCrypto PaymentMethod = "crypto"
)

// Valid reports whether the method is one of the known flows.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCard || m == PaymentMethodCrypto
}

// CheckoutState is the orchestrator's flow state. Succeeded and Failed are
// terminal; there is no automatic retry.
type CheckoutState string

const (
	CheckoutStateIdle       CheckoutState = "IDLE"
	CheckoutStateSubmitting CheckoutState = "SUBMITTING"
	CheckoutStateSucceeded  CheckoutState = "SUCCEEDED"
	CheckoutStateFailed     CheckoutState = "FAILED"
)

// IsTerminal reports whether the state ends a checkout attempt.
func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutStateSucceeded || s == CheckoutStateFailed
}

// PaymentResult is produced once per checkout attempt. TxHash is set only by
// the crypto flow; card payments never produce an on-chain reference.
type PaymentResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Amount  decimal.Decimal `json:"amount"`
	TxHash  *string         `json:"transaction_hash,omitempty"`
}
