// Package sqlite stores score history in an embedded sqlite file through bun.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"osdi-survey/internal/domain"
	"osdi-survey/internal/infra/migrations"
)

type historyRow struct {
	bun.BaseModel `bun:"table:history"`

	ID     int64   `bun:"id,pk,autoincrement"`
	Name   string  `bun:"name"`
	Age    int     `bun:"age"`
	Gender string  `bun:"gender"`
	Date   string  `bun:"date"`
	Score  float64 `bun:"score"`
}

// Open opens (creating if needed) the sqlite file at path and applies migrations.
func Open(ctx context.Context, path string) (*bun.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	sqldb, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// one writer; also keeps ":memory:" databases on a single connection
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := migrations.Apply(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return db, nil
}

// HistoryTable is the sqlite implementation of app.HistoryTable.
type HistoryTable struct {
	db *bun.DB
}

func NewHistoryTable(db *bun.DB) *HistoryTable {
	return &HistoryTable{db: db}
}

func (t *HistoryTable) Insert(ctx context.Context, record domain.ScoreRecord) error {
	row := &historyRow{
		Name:   record.Name,
		Age:    record.Age,
		Gender: string(record.Gender),
		Date:   record.Date.Format(domain.DateLayout),
		Score:  record.Score,
	}
	_, err := t.db.NewInsert().Model(row).Exec(ctx)
	return err
}

func (t *HistoryTable) OldestFirst(ctx context.Context) ([]domain.StoredRecord, error) {
	var rows []historyRow
	if err := t.db.NewSelect().Model(&rows).OrderExpr("date ASC, id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.StoredRecord, 0, len(rows))
	for _, row := range rows {
		date, err := time.ParseInLocation(domain.DateLayout, row.Date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse date of record %d: %w", row.ID, err)
		}
		out = append(out, domain.StoredRecord{
			ID: strconv.FormatInt(row.ID, 10),
			ScoreRecord: domain.ScoreRecord{
				Name:   row.Name,
				Age:    row.Age,
				Gender: domain.Gender(row.Gender),
				Date:   date,
				Score:  row.Score,
			},
		})
	}
	return out, nil
}

func (t *HistoryTable) Delete(ctx context.Context, id string) error {
	rowID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return err
	}
	_, err = t.db.NewDelete().Model((*historyRow)(nil)).Where("id = ?", rowID).Exec(ctx)
	return err
}
