package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"osdi-survey/internal/domain"
)

// HistoryTable is an in-memory implementation of app.HistoryTable.
// Records are lost on exit; use it for tests and throwaway runs.
type HistoryTable struct {
	mu      sync.RWMutex
	seq     int64
	records []entry
}

type entry struct {
	seq    int64
	record domain.ScoreRecord
}

func NewHistoryTable() *HistoryTable {
	return &HistoryTable{}
}

func (t *HistoryTable) Insert(_ context.Context, record domain.ScoreRecord) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.records = append(t.records, entry{seq: t.seq, record: record})
	return nil
}

func (t *HistoryTable) OldestFirst(_ context.Context) ([]domain.StoredRecord, error) {
	t.mu.RLock()
	snapshot := make([]entry, len(t.records))
	copy(snapshot, t.records)
	t.mu.RUnlock()

	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].record.Date.Before(snapshot[j].record.Date)
	})
	out := make([]domain.StoredRecord, 0, len(snapshot))
	for _, e := range snapshot {
		out = append(out, domain.StoredRecord{ID: strconv.FormatInt(e.seq, 10), ScoreRecord: e.record})
	}
	return out, nil
}

func (t *HistoryTable) Delete(_ context.Context, id string) error {
	seq, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, e := range t.records {
		if e.seq == seq {
			t.records = append(t.records[:i], t.records[i+1:]...)
			return nil
		}
	}
	return nil
}

// Len reports how many records are held.
func (t *HistoryTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}
