// Package ledger is the HTTP client for the external settlement ledger,
// the order-of-record service notified after a confirmed on-chain transfer.
// A rejection here arrives after funds have moved, so the caller decides
// what to do with it; this adapter only classifies the response.
package ledger

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
)

// Client implements ports.SettlementLedger over the ledger's REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a ledger client from configuration.
func NewClient(cfg config.LedgerConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
	}
}

type transferRequest struct {
	SessionID    string `json:"session_id"`
	DispensaryID int64  `json:"dispensary_id"`
	FromAddress  string `json:"from_address"`
	ToAddress    string `json:"to_address"`
	TxHash       string `json:"tx_hash"`
	Amount       string `json:"amount"`
}

type rejectionResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// RecordTransfer submits a confirmed transfer for recording. A 4xx response
// is a rejection (ports.LedgerRejectionError); other failures are transport
// errors.
func (c *Client) RecordTransfer(ctx context.Context, record ports.TransferRecord) error {
	body := transferRequest{
		SessionID:    record.SessionID,
		DispensaryID: record.DispensaryID,
		FromAddress:  record.FromAddress,
		ToAddress:    record.ToAddress,
		TxHash:       record.TxHash,
		Amount:       record.Amount.StringFixed(2),
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling transfer record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/transfers", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling ledger: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading ledger response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var rejection rejectionResponse
		reason := "transfer not accepted"
		if json.Unmarshal(data, &rejection) == nil && rejection.Error.Message != "" {
			reason = rejection.Error.Message
		}
		return &ports.LedgerRejectionError{Reason: reason}
	default:
		return fmt.Errorf("ledger returned status %d: %s", resp.StatusCode, string(data))
	}
}
