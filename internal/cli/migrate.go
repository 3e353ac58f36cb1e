package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"osdi-survey/internal/config"
	"osdi-survey/internal/infra/migrations"
	"osdi-survey/internal/infra/sqlite"
)

// NewMigrateCmd applies database migrations.
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the history table if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *configPath)
		},
	}
}

func runMigrations(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	switch cfg.History.Driver {
	case config.DriverPostgres:
		err = runMigrationsWithConfig(ctx, cfg)
	case config.DriverSQLite:
		// Open applies pending migrations itself.
		var db *bun.DB
		if db, err = sqlite.Open(ctx, cfg.SQLite.Path); err == nil {
			err = db.Close()
		}
	default:
		log.Printf("history driver %s has no schema", cfg.History.Driver)
		return nil
	}
	if err != nil {
		return err
	}
	log.Printf("migrations applied")
	return nil
}

func runMigrationsWithConfig(ctx context.Context, cfg config.Config) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	return migrations.Apply(ctx, db)
}
