package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"osdi-survey/internal/domain"
)

// DefaultPrefix namespaces the history keys.
const DefaultPrefix = "osdi:history"

// HistoryTable keeps score history in Redis:
//
//	ZADD {prefix}:index {unix seconds} {id}   ordering
//	HSET {prefix}:records {id} {json}         payload
//	INCR {prefix}:seq                         id source
//
// Ids are zero-padded sequence numbers so members sharing a second sort by insertion.
type HistoryTable struct {
	client *redis.Client
	prefix string
}

type storedRecord struct {
	Name   string  `json:"name"`
	Age    int     `json:"age"`
	Gender string  `json:"gender"`
	Date   string  `json:"date"`
	Score  float64 `json:"score"`
}

func NewHistoryTable(client *redis.Client, prefix string) *HistoryTable {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &HistoryTable{client: client, prefix: prefix}
}

func (t *HistoryTable) Insert(ctx context.Context, record domain.ScoreRecord) error {
	seq, err := t.client.Incr(ctx, t.seqKey()).Result()
	if err != nil {
		return fmt.Errorf("next history id: %w", err)
	}
	id := fmt.Sprintf("%020d", seq)
	payload, err := json.Marshal(storedRecord{
		Name:   record.Name,
		Age:    record.Age,
		Gender: string(record.Gender),
		Date:   record.Date.Format(domain.DateLayout),
		Score:  record.Score,
	})
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	_, err = t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, t.recordsKey(), id, payload)
		pipe.ZAdd(ctx, t.indexKey(), redis.Z{Score: float64(record.Date.Unix()), Member: id})
		return nil
	})
	return err
}

func (t *HistoryTable) OldestFirst(ctx context.Context) ([]domain.StoredRecord, error) {
	ids, err := t.client.ZRange(ctx, t.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read history index: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	payloads, err := t.client.HMGet(ctx, t.recordsKey(), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("read history records: %w", err)
	}

	out := make([]domain.StoredRecord, 0, len(ids))
	var orphans []interface{}
	for i, raw := range payloads {
		s, ok := raw.(string)
		if !ok {
			orphans = append(orphans, ids[i])
			continue
		}
		var rec storedRecord
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			return nil, fmt.Errorf("unmarshal record %s: %w", ids[i], err)
		}
		date, err := time.ParseInLocation(domain.DateLayout, rec.Date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse date of record %s: %w", ids[i], err)
		}
		out = append(out, domain.StoredRecord{
			ID: ids[i],
			ScoreRecord: domain.ScoreRecord{
				Name:   rec.Name,
				Age:    rec.Age,
				Gender: domain.Gender(rec.Gender),
				Date:   date,
				Score:  rec.Score,
			},
		})
	}
	if len(orphans) > 0 {
		// index members whose payload is gone would otherwise never be evicted
		if err := t.client.ZRem(ctx, t.indexKey(), orphans...).Err(); err != nil {
			return nil, fmt.Errorf("drop orphaned history ids: %w", err)
		}
	}
	return out, nil
}

func (t *HistoryTable) Delete(ctx context.Context, id string) error {
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRem(ctx, t.indexKey(), id)
		pipe.HDel(ctx, t.recordsKey(), id)
		return nil
	})
	return err
}

func (t *HistoryTable) indexKey() string   { return t.prefix + ":index" }
func (t *HistoryTable) recordsKey() string { return t.prefix + ":records" }
func (t *HistoryTable) seqKey() string     { return t.prefix + ":seq" }
