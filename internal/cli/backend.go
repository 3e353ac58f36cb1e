package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"osdi-survey/internal/app"
	"osdi-survey/internal/config"
	"osdi-survey/internal/domain"
	"osdi-survey/internal/filelock"
	"osdi-survey/internal/infra/memory"
	pghistory "osdi-survey/internal/infra/postgres"
	redishistory "osdi-survey/internal/infra/redis"
	"osdi-survey/internal/infra/sqlite"
)

// historyBackend is an opened HistoryTable plus whatever must be released with it.
type historyBackend struct {
	table   app.HistoryTable
	closers []func() error
}

func (b *historyBackend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func openHistory(ctx context.Context, cfg config.Config) (*historyBackend, error) {
	switch cfg.History.Driver {
	case config.DriverSQLite:
		lock := filelock.ForFile(cfg.SQLite.Path)
		if err := lock.Acquire(); err != nil {
			return nil, err
		}
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			_ = lock.Release()
			return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
		}
		return &historyBackend{
			table:   sqlite.NewHistoryTable(db),
			closers: []func() error{lock.Release, db.Close},
		}, nil

	case config.DriverPostgres:
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
		}
		return &historyBackend{
			table:   pghistory.NewHistoryTable(pool),
			closers: []func() error{func() error { pool.Close(); return nil }},
		}, nil

	case config.DriverRedis:
		if cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("redis addr not configured")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
		}
		return &historyBackend{
			table:   redishistory.NewHistoryTable(client, cfg.Redis.Prefix),
			closers: []func() error{client.Close},
		}, nil

	case config.DriverMemory:
		return &historyBackend{table: memory.NewHistoryTable()}, nil

	default:
		return nil, fmt.Errorf("unknown history driver %q", cfg.History.Driver)
	}
}
