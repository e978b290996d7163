package system

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"

	"routinely/internal/cli"
	"routinely/internal/migration"
	"routinely/internal/storage/postgres"
	"routinely/internal/storage/sqlite"
	"routinely/migrations"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing SQLite database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		sqliteStore, ok := ctx.Store.(*sqlite.Store)
		if !ok {
			return fmt.Errorf("--force only applies to SQLite storage")
		}
		dbPath := sqliteStore.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized routinely storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}

// migrationRunner builds a migration runner for whichever backend the context
// is configured with.
func migrationRunner(ctx *cli.Context) (*migration.Runner, error) {
	var dialect string
	var db *sql.DB
	switch s := ctx.Store.(type) {
	case *sqlite.Store:
		dialect = "sqlite"
		db = s.GetDB()
	case *postgres.Store:
		dialect = "postgres"
		db = s.GetDB()
	default:
		return nil, fmt.Errorf("unsupported storage backend")
	}
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s migrations: %w", dialect, err)
	}
	return migration.NewRunner(db, subFS), nil
}
