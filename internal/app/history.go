package app

import (
	"context"
	"fmt"
	"time"

	"osdi-survey/internal/domain"
)

// DefaultHistoryLimit is how many score records are retained.
const DefaultHistoryLimit = 5

// HistoryTable abstracts the durable record table (sqlite, Postgres, Redis, in-memory).
type HistoryTable interface {
	Insert(ctx context.Context, record domain.ScoreRecord) error
	// OldestFirst lists every record ordered by date, ties broken by insertion order.
	OldestFirst(ctx context.Context) ([]domain.StoredRecord, error)
	Delete(ctx context.Context, id string) error
}

// HistoryStore appends score records and keeps only the most recent ones.
type HistoryStore struct {
	table HistoryTable
	limit int
	now   func() time.Time
}

func NewHistoryStore(table HistoryTable, limit int) *HistoryStore {
	return NewHistoryStoreWithClock(table, limit, time.Now)
}

// NewHistoryStoreWithClock is used by tests for deterministic timestamps.
func NewHistoryStoreWithClock(table HistoryTable, limit int, now func() time.Time) *HistoryStore {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryStore{table: table, limit: limit, now: now}
}

// Append stamps the record with the current time, inserts it and trims the
// table to the limit by deleting the oldest records.
func (h *HistoryStore) Append(ctx context.Context, record domain.ScoreRecord) (domain.ScoreRecord, error) {
	record, err := h.Record(ctx, record)
	if err != nil {
		return record, err
	}
	return record, h.Trim(ctx)
}

// Record stamps the record with the current time and inserts it without trimming.
func (h *HistoryStore) Record(ctx context.Context, record domain.ScoreRecord) (domain.ScoreRecord, error) {
	record.Date = h.now().Truncate(time.Second)
	if err := h.table.Insert(ctx, record); err != nil {
		return record, fmt.Errorf("%w: insert record: %w", domain.ErrStorageUnavailable, err)
	}
	return record, nil
}

// Recent returns the retained records, oldest first.
func (h *HistoryStore) Recent(ctx context.Context) ([]domain.StoredRecord, error) {
	records, err := h.table.OldestFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list records: %w", domain.ErrStorageUnavailable, err)
	}
	return records, nil
}

// Trim deletes the oldest records until at most limit remain.
func (h *HistoryStore) Trim(ctx context.Context) error {
	records, err := h.table.OldestFirst(ctx)
	if err != nil {
		return fmt.Errorf("%w: list records: %w", domain.ErrStorageUnavailable, err)
	}
	for _, victim := range Overflow(records, h.limit) {
		if err := h.table.Delete(ctx, victim.ID); err != nil {
			return fmt.Errorf("%w: evict record %s: %w", domain.ErrStorageUnavailable, victim.ID, err)
		}
	}
	return nil
}

// Overflow returns the records that must go so that at most limit remain.
// records must be ordered oldest first.
func Overflow(records []domain.StoredRecord, limit int) []domain.StoredRecord {
	if len(records) <= limit {
		return nil
	}
	return records[:len(records)-limit]
}
