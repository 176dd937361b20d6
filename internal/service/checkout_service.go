package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"weedhaven-storefront/internal/core/domain"
	"weedhaven-storefront/internal/core/ports"
	"weedhaven-storefront/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// settlementCurrency is the fiat currency all catalog prices are quoted in.
const settlementCurrency = "USD"

// CheckoutServiceImpl implements ports.CheckoutService: the two-branch
// payment orchestrator. A checkout attempt moves Idle -> Submitting ->
// {Succeeded, Failed}; terminal results are returned to the caller and never
// retried automatically.
//
// On terminal flow failures the failed PaymentResult is returned alongside
// the AppError so callers can still see a transaction reference when the
// on-chain transfer succeeded but the ledger rejected it.
type CheckoutServiceImpl struct {
	cartSvc   ports.CartService
	sessions  ports.SessionStore
	catalog   ports.Catalog
	processor ports.CardProcessor
	provider  ports.WalletProvider
	oracle    ports.PriceOracle
	ledger    ports.SettlementLedger
	log       zerolog.Logger

	mu       sync.Mutex
	inflight map[string]struct{} // session ids with a submitting attempt
}

// NewCheckoutService creates a new CheckoutServiceImpl. processor, provider
// and ledger may be nil when the corresponding capability is not configured;
// the affected flow then fails its precondition instead of crashing.
func NewCheckoutService(
	cartSvc ports.CartService,
	sessions ports.SessionStore,
	catalog ports.Catalog,
	processor ports.CardProcessor,
	provider ports.WalletProvider,
	oracle ports.PriceOracle,
	ledger ports.SettlementLedger,
	log zerolog.Logger,
) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		cartSvc:   cartSvc,
		sessions:  sessions,
		catalog:   catalog,
		processor: processor,
		provider:  provider,
		oracle:    oracle,
		ledger:    ledger,
		log:       log,
		inflight:  make(map[string]struct{}),
	}
}

// Checkout drives one payment attempt to a terminal state. Preconditions
// (known method, non-empty cart, known dispensary) are checked before any
// external call is made.
func (s *CheckoutServiceImpl) Checkout(ctx context.Context, req ports.CheckoutRequest) (*domain.PaymentResult, error) {
	if !req.Method.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown payment method %q", req.Method))
	}

	if !s.acquire(req.SessionID) {
		return nil, apperror.ErrCheckoutInProgress()
	}
	defer s.release(req.SessionID)

	attemptID := uuid.New()
	log := s.log.With().
		Str("attempt_id", attemptID.String()).
		Str("session_id", req.SessionID).
		Str("method", string(req.Method)).
		Logger()
	log.Debug().Str("state", string(domain.CheckoutStateSubmitting)).Msg("checkout attempt started")

	view, err := s.cartSvc.GetCart(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, apperror.ErrEmptyCart()
	}

	dispensary, err := s.catalog.GetDispensary(ctx, req.DispensaryID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lookup dispensary: %w", err))
	}
	if dispensary == nil {
		return nil, apperror.ErrDispensaryNotFound()
	}

	var result *domain.PaymentResult
	switch req.Method {
	case domain.PaymentMethodCard:
		result, err = s.payWithCard(ctx, log, req, view.Total)
	case domain.PaymentMethodCrypto:
		result, err = s.payWithCrypto(ctx, log, req, dispensary, view.Total)
	}

	state := domain.CheckoutStateFailed
	if err == nil {
		state = domain.CheckoutStateSucceeded
	}
	log.Info().
		Str("state", string(state)).
		Str("total", view.Total.String()).
		Msg("checkout attempt finished")

	return result, err
}

// payWithCard submits the card to the processor for tokenization, then
// confirms the charge. Card flows never produce a transaction hash.
func (s *CheckoutServiceImpl) payWithCard(ctx context.Context, log zerolog.Logger, req ports.CheckoutRequest, total decimal.Decimal) (*domain.PaymentResult, error) {
	if s.processor == nil || req.Card == nil {
		return nil, apperror.ErrFormNotReady()
	}

	token, err := s.processor.Tokenize(ctx, *req.Card)
	if err != nil {
		var decline *ports.CardDeclineError
		if errors.As(err, &decline) {
			return s.failed(total, decline.Reason, nil), apperror.ErrCardDeclined(decline.Reason)
		}
		return nil, apperror.InternalError(fmt.Errorf("tokenize card: %w", err))
	}

	if err := s.processor.Confirm(ctx, token, total, settlementCurrency); err != nil {
		var decline *ports.CardDeclineError
		if errors.As(err, &decline) {
			return s.failed(total, decline.Reason, nil), apperror.ErrCardDeclined(decline.Reason)
		}
		return nil, apperror.InternalError(fmt.Errorf("confirm payment: %w", err))
	}

	log.Info().Str("total", total.String()).Msg("card payment confirmed")
	return &domain.PaymentResult{
		Success: true,
		Message: "Payment successful",
		Amount:  total,
	}, nil
}

// payWithCrypto converts the fiat total to the settlement token amount,
// verifies the wallet balance, submits the transfer, and notifies the
// settlement ledger. Once the transfer is broadcast it cannot be cancelled;
// a ledger rejection after that point still fails the checkout, with the
// transaction hash carried in the result.
func (s *CheckoutServiceImpl) payWithCrypto(ctx context.Context, log zerolog.Logger, req ports.CheckoutRequest, dispensary *domain.Dispensary, total decimal.Decimal) (*domain.PaymentResult, error) {
	session, err := s.sessions.Get(ctx, req.SessionID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load session: %w", err))
	}
	if s.provider == nil || !session.Connected() || !dispensary.CanReceiveCrypto() {
		return nil, apperror.ErrNoWalletOrDestination()
	}

	tokenAmount, err := s.oracle.Quote(ctx, total)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("quote settlement amount: %w", err))
	}

	balance, err := s.provider.Balance(ctx, *session.Address)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("query wallet balance: %w", err))
	}
	if balance.LessThan(tokenAmount) {
		return nil, apperror.ErrInsufficientFunds()
	}

	txHash, err := s.provider.SendTransfer(ctx, *session.Address, dispensary.PayoutAddress, tokenAmount)
	if err != nil {
		if errors.Is(err, ports.ErrUserRejected) {
			return s.failed(total, "Transaction rejected in wallet", nil), apperror.ErrUserRejected()
		}
		appErr := apperror.ErrTransferFailed(err)
		return s.failed(total, appErr.Message, nil), appErr
	}
	log.Info().Str("tx_hash", txHash).Msg("on-chain transfer confirmed")

	if s.ledger != nil {
		record := ports.TransferRecord{
			SessionID:    req.SessionID,
			DispensaryID: dispensary.ID,
			FromAddress:  *session.Address,
			ToAddress:    dispensary.PayoutAddress,
			TxHash:       txHash,
			Amount:       tokenAmount,
		}
		if err := s.ledger.RecordTransfer(ctx, record); err != nil {
			// Funds have already left the wallet here; there is no
			// compensating refund. The result carries the hash so the
			// transfer stays traceable.
			var rejection *ports.LedgerRejectionError
			if errors.As(err, &rejection) {
				log.Warn().
					Str("tx_hash", txHash).
					Str("reason", rejection.Reason).
					Msg("ledger rejected a confirmed transfer")
				appErr := apperror.ErrLedgerRejected(txHash)
				return s.failed(total, appErr.Message, &txHash), appErr
			}
			appErr := apperror.InternalError(fmt.Errorf("record transfer: %w", err))
			return s.failed(total, appErr.Message, &txHash), appErr
		}
	}

	// Local, non-durable vendor balance update; best-effort.
	if err := s.catalog.CreditDispensary(ctx, dispensary.ID, tokenAmount); err != nil {
		log.Warn().Err(err).Int64("dispensary_id", dispensary.ID).Msg("failed to credit dispensary balance")
	}

	return &domain.PaymentResult{
		Success: true,
		Message: "Crypto payment successful",
		Amount:  total,
		TxHash:  &txHash,
	}, nil
}

func (s *CheckoutServiceImpl) failed(total decimal.Decimal, message string, txHash *string) *domain.PaymentResult {
	return &domain.PaymentResult{
		Success: false,
		Message: message,
		Amount:  total,
		TxHash:  txHash,
	}
}

func (s *CheckoutServiceImpl) acquire(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, pending := s.inflight[sessionID]; pending {
		return false
	}
	s.inflight[sessionID] = struct{}{}
	return true
}

func (s *CheckoutServiceImpl) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, sessionID)
}
