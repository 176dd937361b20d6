// Package wallet adapts a JSON-RPC wallet endpoint to ports.WalletProvider.
// The endpoint speaks the browser-provider surface (EIP-1193 style methods
// over JSON-RPC): account requests prompt the user on the wallet side, and
// a code-4001 error means the user clicked reject.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"weedhaven-storefront/config"
	"weedhaven-storefront/internal/core/ports"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// codeUserRejected is the EIP-1193 error code for a user-rejected request.
const codeUserRejected = 4001

const receiptPollInterval = time.Second

// EthereumProvider implements ports.WalletProvider over an rpc.Client.
type EthereumProvider struct {
	client         *rpc.Client
	approveTimeout time.Duration
	log            zerolog.Logger
}

// Dial connects to the wallet RPC endpoint.
func Dial(ctx context.Context, cfg config.WalletConfig, log zerolog.Logger) (*EthereumProvider, error) {
	client, err := rpc.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("wallet rpc dial: %w", err)
	}

	log.Info().Str("rpc_url", cfg.RPCURL).Msg("wallet provider connected")
	return NewEthereumProvider(client, cfg.ApproveTimeout, log), nil
}

// NewEthereumProvider wraps an existing RPC client.
func NewEthereumProvider(client *rpc.Client, approveTimeout time.Duration, log zerolog.Logger) *EthereumProvider {
	if approveTimeout <= 0 {
		approveTimeout = 2 * time.Minute
	}
	return &EthereumProvider{
		client:         client,
		approveTimeout: approveTimeout,
		log:            log,
	}
}

// Close releases the underlying RPC connection.
func (p *EthereumProvider) Close() {
	p.client.Close()
}

// RequestAccounts prompts the user to authorize accounts for this origin.
func (p *EthereumProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := p.client.CallContext(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, mapRPCError(err, "requesting accounts")
	}
	return accounts, nil
}

// Accounts returns already-authorized accounts without prompting.
func (p *EthereumProvider) Accounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := p.client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, mapRPCError(err, "querying accounts")
	}
	return accounts, nil
}

// Balance returns the address's native balance in whole tokens.
func (p *EthereumProvider) Balance(ctx context.Context, address string) (decimal.Decimal, error) {
	var wei hexutil.Big
	if err := p.client.CallContext(ctx, &wei, "eth_getBalance", address, "latest"); err != nil {
		return decimal.Zero, mapRPCError(err, "querying balance")
	}
	return decimal.NewFromBigInt(wei.ToInt(), -18), nil
}

// SendTransfer asks the wallet to sign and broadcast a native transfer, then
// waits for the transaction to confirm. The approve timeout covers only the
// wallet-approval wait; once broadcast, the transfer cannot be cancelled, so
// the receipt wait deliberately ignores the caller's deadline.
func (p *EthereumProvider) SendTransfer(ctx context.Context, from, to string, amount decimal.Decimal) (string, error) {
	tx := map[string]any{
		"from":  from,
		"to":    to,
		"value": (*hexutil.Big)(tokensToWei(amount)),
	}

	approveCtx, cancel := context.WithTimeout(ctx, p.approveTimeout)
	defer cancel()

	var txHash string
	if err := p.client.CallContext(approveCtx, &txHash, "eth_sendTransaction", tx); err != nil {
		return "", mapRPCError(err, "sending transfer")
	}
	p.log.Debug().Str("tx_hash", txHash).Msg("transfer broadcast, waiting for confirmation")

	if err := p.waitForReceipt(context.WithoutCancel(ctx), txHash); err != nil {
		return "", err
	}
	return txHash, nil
}

// waitForReceipt polls until the transaction is mined. The wait has its own
// cap independent of the caller's context.
func (p *EthereumProvider) waitForReceipt(ctx context.Context, txHash string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		var receipt map[string]any
		if err := p.client.CallContext(ctx, &receipt, "eth_getTransactionReceipt", txHash); err != nil {
			return mapRPCError(err, "querying receipt")
		}
		if receipt != nil {
			if status, ok := receipt["status"].(string); ok && status == "0x0" {
				return fmt.Errorf("transfer %s reverted", txHash)
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for transfer %s: %w", txHash, ctx.Err())
		case <-ticker.C:
		}
	}
}

// tokensToWei converts a whole-token amount to wei.
func tokensToWei(amount decimal.Decimal) *big.Int {
	return amount.Mul(decimal.New(1, 18)).BigInt()
}

// mapRPCError translates wallet RPC failures, surfacing user rejections as
// the ports sentinel.
func mapRPCError(err error, op string) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == codeUserRejected {
		return fmt.Errorf("%s: %w", op, ports.ErrUserRejected)
	}
	return fmt.Errorf("%s: %w", op, err)
}
