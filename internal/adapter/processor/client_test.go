package processor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
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

func testCard() ports.CardDetails {
	return ports.CardDetails{
		Number:   "4242424242424242",
		ExpMonth: 12,
		ExpYear:  2030,
		CVC:      "123",
		Holder:   "Jane Doe",
	}
}

func newTestClient(url string) *Client {
	return NewClient(config.ProcessorConfig{
		BaseURL: url,
		APIKey:  "pk_test_123",
		Timeout: 5 * time.Second,
	})
}

func TestTokenize_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/tokens", r.URL.Path)
		assert.Equal(t, "Bearer pk_test_123", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "4242424242424242", req["number"])

		json.NewEncoder(w).Encode(map[string]string{"token": "pm_tok_1"})
	}))
	defer ts.Close()

	token, err := newTestClient(ts.URL).Tokenize(context.Background(), testCard())
	require.NoError(t, err)
	assert.Equal(t, "pm_tok_1", token)
}

func TestTokenize_Declined(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"code": "card_expired", "message": "Your card has expired"},
		})
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL).Tokenize(context.Background(), testCard())
	var decline *ports.CardDeclineError
	require.ErrorAs(t, err, &decline)
	assert.Equal(t, "Your card has expired", decline.Reason)
}

func TestConfirm_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/charges", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "pm_tok_1", req["token"])
		assert.Equal(t, "29.00", req["amount"])
		assert.Equal(t, "USD", req["currency"])

		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	err := newTestClient(ts.URL).Confirm(context.Background(), "pm_tok_1", decimal.RequireFromString("29.00"), "USD")
	assert.NoError(t, err)
}

func TestConfirm_Declined_UnparseableBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte("not json"))
	}))
	defer ts.Close()

	err := newTestClient(ts.URL).Confirm(context.Background(), "pm_tok_1", decimal.RequireFromString("29.00"), "USD")
	var decline *ports.CardDeclineError
	require.ErrorAs(t, err, &decline)
	assert.Equal(t, "Card was declined", decline.Reason)
}

func TestConfirm_ServerError_NotADecline(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	err := newTestClient(ts.URL).Confirm(context.Background(), "pm_tok_1", decimal.RequireFromString("29.00"), "USD")
	require.Error(t, err)
	var decline *ports.CardDeclineError
	assert.False(t, errors.As(err, &decline))
}

func TestTokenize_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server can observe the client disconnect
		// and cancel the request context; otherwise Close deadlocks.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(ts.URL).Tokenize(ctx, testCard())
	assert.Error(t, err)
}
