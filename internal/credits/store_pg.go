package credits

import (
	"context"
	"database/sql"
	"errors"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed credit store.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db}
}

func (s *pgStore) Get(ctx context.Context, accountID string) (Account, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Account{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	a, err := s.lockAndEnsure(ctx, tx, accountID)
	if err != nil {
		return Account{}, err
	}
	if err = tx.Commit(); err != nil {
		return Account{}, err
	}
	return a, nil
}

func (s *pgStore) Debit(ctx context.Context, accountID string) (Account, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Account{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	a, err := s.lockAndEnsure(ctx, tx, accountID)
	if err != nil {
		return Account{}, err
	}
	if a.IsUnlimited {
		if err = tx.Commit(); err != nil {
			return Account{}, err
		}
		return a, nil
	}
	if a.CreditsLeft <= 0 {
		err = ErrInsufficientCredit
		return Account{}, err
	}
	a.CreditsLeft--
	if _, err = tx.ExecContext(ctx, `
UPDATE credit_accounts SET credits_left = $1 WHERE account_id = $2`, a.CreditsLeft, accountID); err != nil {
		return Account{}, err
	}
	if err = tx.Commit(); err != nil {
		return Account{}, err
	}
	return a, nil
}

func (s *pgStore) Refund(ctx context.Context, accountID string) (Account, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Account{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	a, err := s.lockAndEnsure(ctx, tx, accountID)
	if err != nil {
		return Account{}, err
	}
	if a.IsUnlimited {
		if err = tx.Commit(); err != nil {
			return Account{}, err
		}
		return a, nil
	}
	a.CreditsLeft++
	if _, err = tx.ExecContext(ctx, `
UPDATE credit_accounts SET credits_left = $1 WHERE account_id = $2`, a.CreditsLeft, accountID); err != nil {
		return Account{}, err
	}
	if err = tx.Commit(); err != nil {
		return Account{}, err
	}
	return a, nil
}

func (s *pgStore) lockAndEnsure(ctx context.Context, tx *sql.Tx, accountID string) (Account, error) {
	a := Account{AccountID: accountID}
	row := tx.QueryRowContext(ctx, `
SELECT credits_left, is_unlimited FROM credit_accounts WHERE account_id = $1 FOR UPDATE`, accountID)
	err := row.Scan(&a.CreditsLeft, &a.IsUnlimited)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			a.CreditsLeft = DefaultCredits
			if _, err = tx.ExecContext(ctx, `
INSERT INTO credit_accounts (account_id, credits_left, is_unlimited) VALUES ($1, $2, $3)`,
				accountID, a.CreditsLeft, a.IsUnlimited); err != nil {
				return Account{}, err
			}
			return a, nil
		}
		return Account{}, err
	}
	return a, nil
}
