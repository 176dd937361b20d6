package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Checkout & Payment (CHK) ----

func ErrFormNotReady() *AppError {
	return New("CHK_001", "Card form is not initialized", http.StatusBadRequest)
}

// ErrCardDeclined carries the processor's human-readable decline reason.
func ErrCardDeclined(reason string) *AppError {
	if reason == "" {
		reason = "Card was declined"
	}
	return New("CHK_002", reason, http.StatusPaymentRequired)
}

func ErrNoWalletOrDestination() *AppError {
	return New("CHK_003", "Connect a wallet and select a dispensary before paying with crypto", http.StatusBadRequest)
}

func ErrInsufficientFunds() *AppError {
	return New("CHK_004", "Insufficient wallet balance for this purchase", http.StatusPaymentRequired)
}

func ErrUserRejected() *AppError {
	return New("CHK_005", "Request was rejected in the wallet", http.StatusConflict)
}

func ErrTransferFailed(err error) *AppError {
	return Wrap("CHK_006", "On-chain transfer failed", http.StatusBadGateway, err)
}

// ErrLedgerRejected is returned when the settlement ledger refuses a transfer
// that already confirmed on chain. The tx hash is included so the user can
// trace funds that have left the wallet without a recorded order.
func ErrLedgerRejected(txHash string) *AppError {
	return New("CHK_007", fmt.Sprintf("Order could not be recorded; on-chain transfer %s already completed", txHash), http.StatusBadGateway)
}

func ErrEmptyCart() *AppError {
	return New("CHK_008", "Cart is empty", http.StatusBadRequest)
}

func ErrCheckoutInProgress() *AppError {
	return New("CHK_009", "A checkout attempt is already in progress", http.StatusConflict)
}

// ---- Cart & Catalog (CRT / CAT) ----

func ErrProductNotFound() *AppError {
	return New("CRT_001", "Product not found", http.StatusNotFound)
}

func ErrDispensaryNotFound() *AppError {
	return New("CAT_001", "Dispensary not found", http.StatusNotFound)
}

// ---- Wallet Session (WAL) ----

func ErrProviderUnavailable() *AppError {
	return New("WAL_001", "No wallet provider available. Please install a wallet extension", http.StatusServiceUnavailable)
}

func ErrConnectInProgress() *AppError {
	return New("WAL_002", "A wallet connect request is already pending", http.StatusConflict)
}

func ErrWalletNotConnected() *AppError {
	return New("WAL_003", "Wallet is not connected", http.StatusBadRequest)
}

// ---- Session (SES) ----

func ErrInvalidSession() *AppError {
	return New("SES_001", "Invalid or expired session", http.StatusUnauthorized)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request-validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
