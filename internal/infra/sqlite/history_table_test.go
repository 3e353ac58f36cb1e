package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"osdi-survey/internal/app"
	"osdi-survey/internal/domain"
)

func TestHistorySurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "scores.db")

	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	table := NewHistoryTable(db)
	date := time.Date(2024, 6, 2, 10, 11, 12, 0, time.Local)
	if err := table.Insert(ctx, domain.ScoreRecord{Name: "Park", Age: 52, Gender: domain.GenderMale, Date: date, Score: 37.5}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	db.Close()

	// schema setup must be idempotent
	db, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	records, err := NewHistoryTable(db).OldestFirst(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.Name != "Park" || got.Age != 52 || got.Gender != domain.GenderMale || got.Score != 37.5 || !got.Date.Equal(date) {
		t.Fatalf("unexpected record %+v", got)
	}

	var raw string
	if err := db.QueryRowContext(ctx, "SELECT date FROM history").Scan(&raw); err != nil {
		t.Fatalf("raw date: %v", err)
	}
	if raw != "2024-06-02 10:11:12" {
		t.Fatalf("expected text timestamp, got %q", raw)
	}
}

func TestHistoryStoreCapsSQLiteTable(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	// a fixed clock forces same-second ties; insertion order must still decide eviction
	fixed := time.Date(2024, 6, 2, 10, 0, 0, 0, time.Local)
	store := app.NewHistoryStoreWithClock(NewHistoryTable(db), 5, func() time.Time { return fixed })
	for i := 0; i < 7; i++ {
		if _, err := store.Append(ctx, domain.ScoreRecord{Name: fmt.Sprintf("r%d", i)}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	records, err := store.Recent(ctx)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 5 || records[0].Name != "r2" || records[4].Name != "r6" {
		t.Fatalf("unexpected retained records %+v", records)
	}
}

func TestClosedDatabaseReportsStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.Close()

	store := app.NewHistoryStore(NewHistoryTable(db), 5)
	if _, err := store.Append(ctx, domain.ScoreRecord{}); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected storage unavailable, got %v", err)
	}
}
