package records

import (
	"context"
	"errors"
)

// ErrNotFound indicates the record does not exist.
var ErrNotFound = errors.New("not found")

// Repo defines persistence operations for analysis records.
type Repo interface {
	Create(ctx context.Context, record Record) error
	GetByID(ctx context.Context, recordID string) (Record, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]Record, error)
}
