package migrations

import (
	"context"
	_ "embed"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/migrate"
)

//go:embed 0001_create_history.sqlite.sql
var createHistorySQLite string

//go:embed 0001_create_history.pg.sql
var createHistoryPG string

var Migrations = migrate.NewMigrations()

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			stmt := createHistorySQLite
			if db.Dialect().Name() == dialect.PG {
				stmt = createHistoryPG
			}
			_, err := db.ExecContext(ctx, stmt)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS history`)
			return err
		},
	)
}

// Apply creates the migration bookkeeping tables and runs every pending migration.
// It is safe to call on every start.
func Apply(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, Migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}
	_, err := migrator.Migrate(ctx)
	return err
}
