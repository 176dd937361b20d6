package integration

import (
	"context"
	"fmt"
	"sync"

	"weedhaven-storefront/internal/core/ports"

	"github.com/shopspring/decimal"
)

// --- Fake card processor ---

type fakeProcessor struct {
	mu          sync.Mutex
	declineWith string        // non-empty = decline every charge with this reason
	confirms    int
	barrier     chan struct{} // when set, Confirm blocks until the channel closes
	entered     chan struct{} // closed when the first Confirm reaches the barrier
}

func newFakeProcessor() *fakeProcessor {
	return &fakeProcessor{}
}

// holdConfirms makes the next Confirm block until the returned release func
// is called; the returned entered channel closes once a Confirm is inside.
func (p *fakeProcessor) holdConfirms() (entered <-chan struct{}, release func()) {
	barrier := make(chan struct{})
	enteredCh := make(chan struct{})
	p.mu.Lock()
	p.barrier = barrier
	p.entered = enteredCh
	p.mu.Unlock()
	return enteredCh, func() {
		p.mu.Lock()
		p.barrier = nil
		p.entered = nil
		p.mu.Unlock()
		close(barrier)
	}
}

func (p *fakeProcessor) Tokenize(_ context.Context, card ports.CardDetails) (string, error) {
	return "pm_tok_" + card.Number[len(card.Number)-4:], nil
}

func (p *fakeProcessor) Confirm(_ context.Context, token string, amount decimal.Decimal, currency string) error {
	p.mu.Lock()
	declineWith := p.declineWith
	barrier := p.barrier
	entered := p.entered
	p.entered = nil // signal at most once
	p.mu.Unlock()

	if barrier != nil {
		if entered != nil {
			close(entered)
		}
		<-barrier
	}
	if declineWith != "" {
		return &ports.CardDeclineError{Reason: declineWith}
	}

	p.mu.Lock()
	p.confirms++
	p.mu.Unlock()
	return nil
}

func (p *fakeProcessor) confirmCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.confirms
}

// --- Fake wallet provider ---

type fakeWalletProvider struct {
	mu         sync.Mutex
	accounts   []string
	balances   map[string]decimal.Decimal
	rejectNext bool
	txCounter  int
	transfers  []fakeTransfer
}

type fakeTransfer struct {
	from, to string
	amount   decimal.Decimal
}

func newFakeWalletProvider(account string, balance decimal.Decimal) *fakeWalletProvider {
	return &fakeWalletProvider{
		accounts: []string{account},
		balances: map[string]decimal.Decimal{account: balance},
	}
}

func (w *fakeWalletProvider) RequestAccounts(_ context.Context) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.rejectNext {
		w.rejectNext = false
		return nil, ports.ErrUserRejected
	}
	return append([]string(nil), w.accounts...), nil
}

func (w *fakeWalletProvider) Accounts(_ context.Context) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.accounts...), nil
}

func (w *fakeWalletProvider) Balance(_ context.Context, address string) (decimal.Decimal, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balances[address], nil
}

func (w *fakeWalletProvider) SendTransfer(_ context.Context, from, to string, amount decimal.Decimal) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.rejectNext {
		w.rejectNext = false
		return "", ports.ErrUserRejected
	}
	if w.balances[from].LessThan(amount) {
		return "", fmt.Errorf("insufficient funds for gas * price + value")
	}
	w.balances[from] = w.balances[from].Sub(amount)
	w.txCounter++
	w.transfers = append(w.transfers, fakeTransfer{from: from, to: to, amount: amount})
	return fmt.Sprintf("0xfake%06d", w.txCounter), nil
}

func (w *fakeWalletProvider) transferCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.transfers)
}

// --- Fake settlement ledger ---

type fakeLedger struct {
	mu           sync.Mutex
	rejectReason string // non-empty = reject every record with this reason
	records      []ports.TransferRecord
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{}
}

func (l *fakeLedger) RecordTransfer(_ context.Context, record ports.TransferRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.rejectReason != "" {
		return &ports.LedgerRejectionError{Reason: l.rejectReason}
	}
	l.records = append(l.records, record)
	return nil
}

func (l *fakeLedger) recordCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
