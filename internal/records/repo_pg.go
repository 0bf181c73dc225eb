package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo persists records in Postgres. The structured profile is stored as
// a jsonb column alongside the raw model output.
type PGRepo struct {
	DB *sql.DB
}

// NewPGRepo constructs a PGRepo.
func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{DB: db}
}

// Create inserts the record. Records are append-only; there is no update.
func (r *PGRepo) Create(ctx context.Context, record Record) error {
	payload, err := json.Marshal(record.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, `
INSERT INTO analysis_records
  (id, account_id, plan_ref, source_uri, attempt_id, profile, raw_model_output, used_fallback, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		record.ID, record.AccountID, record.PlanRef, record.SourceURI, record.AttemptID,
		payload, record.RawModelOutput, record.UsedFallback, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert analysis record: %w", err)
	}
	return nil
}

// GetByID returns a record by its ID.
func (r *PGRepo) GetByID(ctx context.Context, recordID string) (Record, error) {
	row := r.DB.QueryRowContext(ctx, `
SELECT id, account_id, plan_ref, source_uri, attempt_id, profile, raw_model_output, used_fallback, created_at
FROM analysis_records WHERE id = $1`, recordID)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return record, nil
}

// ListByAccount returns records for an account, newest first.
func (r *PGRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.DB.QueryContext(ctx, `
SELECT id, account_id, plan_ref, source_uri, attempt_id, profile, raw_model_output, used_fallback, created_at
FROM analysis_records WHERE account_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var record Record
	var payload []byte
	if err := row.Scan(
		&record.ID, &record.AccountID, &record.PlanRef, &record.SourceURI, &record.AttemptID,
		&payload, &record.RawModelOutput, &record.UsedFallback, &record.CreatedAt,
	); err != nil {
		return Record{}, err
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &record.Profile); err != nil {
			return Record{}, fmt.Errorf("unmarshal profile: %w", err)
		}
	}
	record.Profile.Normalize()
	return record, nil
}

var _ Repo = (*PGRepo)(nil)
