package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"weedhaven-storefront/config"
	"weedhaven-storefront/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord() ports.TransferRecord {
	return ports.TransferRecord{
		SessionID:    "sess-1",
		DispensaryID: 1,
		FromAddress:  "0x1234567890123456789012345678901234567890",
		ToAddress:    "0x2345678901234567890123456789012345678901",
		TxHash:       "0xabc123",
		Amount:       decimal.RequireFromString("29.00"),
	}
}

func newTestClient(url string) *Client {
	return NewClient(config.LedgerConfig{BaseURL: url, Timeout: 5 * time.Second})
}

func TestRecordTransfer_Accepted(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/transfers", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "0xabc123", req["tx_hash"])
		assert.Equal(t, "29.00", req["amount"])
		assert.Equal(t, float64(1), req["dispensary_id"])

		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	assert.NoError(t, newTestClient(ts.URL).RecordTransfer(context.Background(), testRecord()))
}

func TestRecordTransfer_Rejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "order window closed"},
		})
	}))
	defer ts.Close()

	err := newTestClient(ts.URL).RecordTransfer(context.Background(), testRecord())
	var rejection *ports.LedgerRejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "order window closed", rejection.Reason)
}

func TestRecordTransfer_Rejected_NoBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	err := newTestClient(ts.URL).RecordTransfer(context.Background(), testRecord())
	var rejection *ports.LedgerRejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "transfer not accepted", rejection.Reason)
}

func TestRecordTransfer_ServerError_NotARejection(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	err := newTestClient(ts.URL).RecordTransfer(context.Background(), testRecord())
	require.Error(t, err)
	var rejection *ports.LedgerRejectionError
	assert.False(t, errors.As(err, &rejection))
}
