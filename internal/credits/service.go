package credits

import "context"

type store interface {
	Get(ctx context.Context, accountID string) (Account, error)
	Debit(ctx context.Context, accountID string) (Account, error)
	Refund(ctx context.Context, accountID string) (Account, error)
}

// Ledger manages credit balances via an underlying store. Debit and Refund
// are the only shared-mutable-state operations in the pipeline; the store
// serializes them per account.
type Ledger struct {
	store store
}

// NewLedger constructs a Ledger with an in-memory store.
func NewLedger() *Ledger {
	return &Ledger{store: NewMemoryStore()}
}

// NewLedgerWithStore constructs a Ledger over the given store.
func NewLedgerWithStore(s store) *Ledger {
	return &Ledger{store: s}
}

// Get returns the current balance, initializing defaults if absent.
func (l *Ledger) Get(ctx context.Context, accountID string) (Account, error) {
	return l.store.Get(ctx, accountID)
}

// Debit consumes one credit atomically. Unlimited accounts succeed without
// touching the balance. Returns ErrInsufficientCredit when the balance is
// exhausted; no partial effect occurs then.
func (l *Ledger) Debit(ctx context.Context, accountID string) (Account, error) {
	return l.store.Debit(ctx, accountID)
}

// Refund restores exactly one credit. Callers own at-most-once semantics:
// the saga has a single refund path per debit.
func (l *Ledger) Refund(ctx context.Context, accountID string) (Account, error) {
	return l.store.Refund(ctx, accountID)
}
