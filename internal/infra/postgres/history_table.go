package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"osdi-survey/internal/domain"
)

// HistoryTable keeps score history in the Postgres "history" table.
// The schema is created by the migrations package.
type HistoryTable struct {
	pool *pgxpool.Pool
}

func NewHistoryTable(pool *pgxpool.Pool) *HistoryTable {
	return &HistoryTable{pool: pool}
}

func (t *HistoryTable) Insert(ctx context.Context, record domain.ScoreRecord) error {
	_, err := t.pool.Exec(ctx,
		`INSERT INTO history (name, age, gender, date, score) VALUES ($1, $2, $3, $4, $5)`,
		record.Name, record.Age, string(record.Gender), record.Date.Format(domain.DateLayout), record.Score,
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

func (t *HistoryTable) OldestFirst(ctx context.Context) ([]domain.StoredRecord, error) {
	rows, err := t.pool.Query(ctx, `SELECT id, name, age, gender, date, score FROM history ORDER BY date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []domain.StoredRecord
	for rows.Next() {
		var (
			id     int64
			gender string
			date   string
			rec    domain.ScoreRecord
		)
		if err := rows.Scan(&id, &rec.Name, &rec.Age, &gender, &date, &rec.Score); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		rec.Gender = domain.Gender(gender)
		if rec.Date, err = time.ParseInLocation(domain.DateLayout, date, time.Local); err != nil {
			return nil, fmt.Errorf("parse date of record %d: %w", id, err)
		}
		out = append(out, domain.StoredRecord{ID: strconv.FormatInt(id, 10), ScoreRecord: rec})
	}
	return out, rows.Err()
}

func (t *HistoryTable) Delete(ctx context.Context, id string) error {
	rowID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return err
	}
	if _, err := t.pool.Exec(ctx, `DELETE FROM history WHERE id=$1`, rowID); err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	return nil
}
