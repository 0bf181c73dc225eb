package records

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores records in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu        sync.RWMutex
	byID      map[string]Record
	byAccount map[string][]Record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:      make(map[string]Record),
		byAccount: make(map[string][]Record),
	}
}

// Create stores the record.
func (r *MemoryRepo) Create(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[record.ID] = record
	r.byAccount[record.AccountID] = append(r.byAccount[record.AccountID], record)
	return nil
}

// GetByID returns a record by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, recordID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.byID[recordID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return record, nil
}

// ListByAccount returns records for an account, newest first, with
// limit/offset.
func (r *MemoryRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	accountRecords := r.byAccount[accountID]
	r.mu.RUnlock()

	if len(accountRecords) == 0 || offset >= len(accountRecords) {
		return []Record{}, nil
	}

	out := make([]Record, len(accountRecords))
	copy(out, accountRecords)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}
