package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// CardDetails is the card input collected by the payment form.
type CardDetails struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
	Holder   string
}

// CardDeclineError carries the processor's human-readable decline reason.
type CardDeclineError struct {
	Reason string
}

func (e *CardDeclineError) Error() string {
	return "card declined: " + e.Reason
}

// CardProcessor is the external card-payment capability. Tokenize exchanges
// card details for a payment-method token; Confirm charges the token. Card
// validation itself is the processor's job, not ours.
type CardProcessor interface {
	Tokenize(ctx context.Context, card CardDetails) (string, error)
	Confirm(ctx context.Context, token string, amount decimal.Decimal, currency string) error
}

// ErrUserRejected is returned by a WalletProvider when the user declines the
// transaction in the wallet UI (EIP-1193 code 4001).
var ErrUserRejected = errors.New("user rejected the request")

// WalletProvider is the injected wallet capability. It mirrors the browser
// provider surface: RequestAccounts prompts the user, Accounts queries
// already-authorized accounts without prompting.
//
// SendTransfer suspends until the user approves or rejects and the transfer
// confirms; after broadcast the transfer cannot be cancelled, so any caller
// deadline must cover only the approval wait.
type WalletProvider interface {
	RequestAccounts(ctx context.Context) ([]string, error)
	Accounts(ctx context.Context) ([]string, error)
	Balance(ctx context.Context, address string) (decimal.Decimal, error)
	SendTransfer(ctx context.Context, from, to string, amount decimal.Decimal) (string, error)
}

// PriceOracle converts a fiat checkout total into the settlement token
// amount. The default implementation is a 1:1 placeholder.
type PriceOracle interface {
	Quote(ctx context.Context, fiatAmount decimal.Decimal) (decimal.Decimal, error)
}

// LedgerRejectionError is returned when the settlement ledger refuses to
// record a transfer that already confirmed on chain.
type LedgerRejectionError struct {
	Reason string
}

func (e *LedgerRejectionError) Error() string {
	return "ledger rejected transfer: " + e.Reason
}

// TransferRecord describes a confirmed on-chain transfer for the ledger.
type TransferRecord struct {
	SessionID    string
	DispensaryID int64
	FromAddress  string
	ToAddress    string
	TxHash       string
	Amount       decimal.Decimal
}

// SettlementLedger is the external order-recording service notified after a
// confirmed crypto transfer.
type SettlementLedger interface {
	RecordTransfer(ctx context.Context, record TransferRecord) error
}
