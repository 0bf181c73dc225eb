package credits

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestGetSeedsDefaultCredits(t *testing.T) {
	ledger := NewLedger()
	a, err := ledger.Get(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if a.CreditsLeft != DefaultCredits {
		t.Fatalf("creditsLeft = %d, want %d", a.CreditsLeft, DefaultCredits)
	}
	if !a.HasCredit() {
		t.Fatal("fresh account must have credit")
	}
}

func TestDebitConsumesOneCredit(t *testing.T) {
	ledger := NewLedger()
	ctx := context.Background()

	for want := DefaultCredits - 1; want >= 0; want-- {
		a, err := ledger.Debit(ctx, "acct-1")
		if err != nil {
			t.Fatalf("Debit: %v", err)
		}
		if a.CreditsLeft != want {
			t.Fatalf("creditsLeft = %d, want %d", a.CreditsLeft, want)
		}
	}

	if _, err := ledger.Debit(ctx, "acct-1"); !errors.Is(err, ErrInsufficientCredit) {
		t.Fatalf("err = %v, want ErrInsufficientCredit", err)
	}
	a, _ := ledger.Get(ctx, "acct-1")
	if a.CreditsLeft != 0 {
		t.Fatalf("failed debit changed balance: %d", a.CreditsLeft)
	}
}

func TestRefundRestoresOneCredit(t *testing.T) {
	ledger := NewLedger()
	ctx := context.Background()

	if _, err := ledger.Debit(ctx, "acct-1"); err != nil {
		t.Fatalf("Debit: %v", err)
	}
	a, err := ledger.Refund(ctx, "acct-1")
	if err != nil {
		t.Fatalf("Refund: %v", err)
	}
	if a.CreditsLeft != DefaultCredits {
		t.Fatalf("creditsLeft = %d, want %d", a.CreditsLeft, DefaultCredits)
	}
}

func TestUnlimitedAccountBypassesBalance(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	if err := store.Put(ctx, Account{AccountID: "vip", CreditsLeft: 0, IsUnlimited: true}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	ledger := NewLedgerWithStore(store)

	for i := 0; i < 10; i++ {
		a, err := ledger.Debit(ctx, "vip")
		if err != nil {
			t.Fatalf("Debit: %v", err)
		}
		if a.CreditsLeft != 0 {
			t.Fatalf("unlimited debit touched balance: %d", a.CreditsLeft)
		}
	}
	if a, _ := ledger.Refund(ctx, "vip"); a.CreditsLeft != 0 {
		t.Fatalf("unlimited refund touched balance: %d", a.CreditsLeft)
	}
}

func TestConcurrentDebitsSingleCredit(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	if err := store.Put(ctx, Account{AccountID: "acct-1", CreditsLeft: 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	ledger := NewLedgerWithStore(store)

	const workers = 32
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Debit(ctx, "acct-1")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrInsufficientCredit):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("successes = %d, want exactly 1", successes)
	}
	a, _ := ledger.Get(ctx, "acct-1")
	if a.CreditsLeft != 0 {
		t.Fatalf("creditsLeft = %d, want 0", a.CreditsLeft)
	}
}

func TestStoreRejectsCancelledContext(t *testing.T) {
	ledger := NewLedger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ledger.Get(ctx, "acct-1"); err == nil {
		t.Fatal("Get must fail with a cancelled context")
	}
	if _, err := ledger.Debit(ctx, "acct-1"); err == nil {
		t.Fatal("Debit must fail with a cancelled context")
	}
}
