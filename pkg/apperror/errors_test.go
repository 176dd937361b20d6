package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("CHK_004", "Insufficient funds", http.StatusPaymentRequired),
			expected: "[CHK_004] Insufficient funds",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "store error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] store error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("CHK_008", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestCheckoutErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"FormNotReady", ErrFormNotReady(), "CHK_001", 400},
		{"CardDeclined", ErrCardDeclined("Your card has expired"), "CHK_002", 402},
		{"NoWalletOrDestination", ErrNoWalletOrDestination(), "CHK_003", 400},
		{"InsufficientFunds", ErrInsufficientFunds(), "CHK_004", 402},
		{"UserRejected", ErrUserRejected(), "CHK_005", 409},
		{"TransferFailed", ErrTransferFailed(fmt.Errorf("nonce too low")), "CHK_006", 502},
		{"LedgerRejected", ErrLedgerRejected("0xabc"), "CHK_007", 502},
		{"EmptyCart", ErrEmptyCart(), "CHK_008", 400},
		{"CheckoutInProgress", ErrCheckoutInProgress(), "CHK_009", 409},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestCardDeclined_DefaultReason(t *testing.T) {
	err := ErrCardDeclined("")
	assert.Equal(t, "Card was declined", err.Message)

	err = ErrCardDeclined("Insufficient card funds")
	assert.Equal(t, "Insufficient card funds", err.Message)
}

func TestLedgerRejected_CarriesTxHash(t *testing.T) {
	err := ErrLedgerRejected("0xdeadbeef")
	assert.Contains(t, err.Message, "0xdeadbeef")
}

func TestWalletAndCatalogErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"ProviderUnavailable", ErrProviderUnavailable(), "WAL_001", 503},
		{"ConnectInProgress", ErrConnectInProgress(), "WAL_002", 409},
		{"WalletNotConnected", ErrWalletNotConnected(), "WAL_003", 400},
		{"ProductNotFound", ErrProductNotFound(), "CRT_001", 404},
		{"DispensaryNotFound", ErrDispensaryNotFound(), "CAT_001", 404},
		{"InvalidSession", ErrInvalidSession(), "SES_001", 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestProviderUnavailable_InstructsInstall(t *testing.T) {
	err := ErrProviderUnavailable()
	assert.Contains(t, err.Message, "install a wallet extension")
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("redis: connection closed")
	sysErr := InternalError(inner)
	assert.Equal(t, "SYS_001", sysErr.Code)
	assert.Equal(t, 500, sysErr.HTTPStatus)
	assert.True(t, errors.Is(sysErr, inner))

	valErr := Validation("product_id is required")
	assert.Equal(t, "VAL_001", valErr.Code)
	assert.Equal(t, 400, valErr.HTTPStatus)
}
