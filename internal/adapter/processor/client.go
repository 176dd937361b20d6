// Package processor is the HTTP client for the external card-payment
// service. The service owns card validation and settlement; this adapter
// only moves the form data across and maps decline responses onto
// ports.CardDeclineError.
package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"weedhaven-storefront/config"
	"weedhaven-storefront/internal/core/ports"

	"github.com/shopspring/decimal"
)

// Client implements ports.CardProcessor over the processor's REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a processor client from configuration.
func NewClient(cfg config.ProcessorConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
	}
}

type tokenizeRequest struct {
	Number   string `json:"number"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
	CVC      string `json:"cvc"`
	Holder   string `json:"holder"`
}

type tokenizeResponse struct {
	Token string `json:"token"`
}

type confirmRequest struct {
	Token    string `json:"token"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Tokenize exchanges card details for a single-use payment-method token.
func (c *Client) Tokenize(ctx context.Context, card ports.CardDetails) (string, error) {
	body := tokenizeRequest{
		Number:   card.Number,
		ExpMonth: card.ExpMonth,
		ExpYear:  card.ExpYear,
		CVC:      card.CVC,
		Holder:   card.Holder,
	}

	var resp tokenizeResponse
	if err := c.post(ctx, "/v1/tokens", body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("processor returned empty token")
	}
	return resp.Token, nil
}

// Confirm charges the tokenized card for the given amount.
func (c *Client) Confirm(ctx context.Context, token string, amount decimal.Decimal, currency string) error {
	body := confirmRequest{
		Token:    token,
		Amount:   amount.StringFixed(2),
		Currency: currency,
	}
	return c.post(ctx, "/v1/charges", body, nil)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling processor: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading processor response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out != nil {
			if err := json.Unmarshal(data, out); err != nil {
				return fmt.Errorf("unmarshaling processor response: %w", err)
			}
		}
		return nil
	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusUnprocessableEntity:
		// Declines come back as structured errors; anything unparseable
		// still surfaces as a decline with a generic reason.
		var errResp errorResponse
		reason := "Card was declined"
		if json.Unmarshal(data, &errResp) == nil && errResp.Error.Message != "" {
			reason = errResp.Error.Message
		}
		return &ports.CardDeclineError{Reason: reason}
	default:
		return fmt.Errorf("processor returned status %d: %s", resp.StatusCode, string(data))
	}
}
