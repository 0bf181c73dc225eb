package credits

import (
	"context"
	"sync"
)

// DefaultCredits seeds accounts the store has never seen.
const DefaultCredits = 5

// MemoryStore keeps balances in memory and is safe for concurrent use.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]Account
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]Account)}
}

// Put seeds or replaces an account. Intended for wiring and tests.
func (s *MemoryStore) Put(ctx context.Context, account Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[account.AccountID] = account
	return nil
}

// Get returns the account, creating it with default credits if absent.
func (s *MemoryStore) Get(ctx context.Context, accountID string) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLocked(accountID), nil
}

// Debit decrements the balance if positive. The whole check-and-decrement
// holds the store lock, so two concurrent debits against a balance of one
// yield exactly one success.
func (s *MemoryStore) Debit(ctx context.Context, accountID string) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.ensureLocked(accountID)
	if a.IsUnlimited {
		return a, nil
	}
	if a.CreditsLeft <= 0 {
		return Account{}, ErrInsufficientCredit
	}
	a.CreditsLeft--
	s.data[accountID] = a
	return a, nil
}

// Refund restores one credit. Unlimited accounts are untouched.
func (s *MemoryStore) Refund(ctx context.Context, accountID string) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.ensureLocked(accountID)
	if a.IsUnlimited {
		return a, nil
	}
	a.CreditsLeft++
	s.data[accountID] = a
	return a, nil
}

func (s *MemoryStore) ensureLocked(accountID string) Account {
	a, ok := s.data[accountID]
	if !ok {
		a = Account{AccountID: accountID, CreditsLeft: DefaultCredits}
		s.data[accountID] = a
	}
	return a
}
