package system

import (
	"fmt"
	"io/fs"

	"github.com/rizqapp/rizq/internal/cli"
	"github.com/rizqapp/rizq/internal/migration"
	"github.com/rizqapp/rizq/internal/storage"
	"github.com/rizqapp/rizq/migrations"
)

type MigrateCmd struct {
	Catalog bool `help:"Migrate the remote catalog schema instead of local storage (self-hosted catalogs only)."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if c.Catalog {
		if ctx.Client == nil {
			return fmt.Errorf("no catalog connection configured; set one with 'rizq keyring set' or %s", "RIZQ_DB_CONNECTION")
		}
		return ctx.Client.Migrate(func(msg string) {
			fmt.Println(msg)
		})
	}

	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	defer ctx.Store.Close()

	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		return fmt.Errorf("migrate command only supports SQLite storage")
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access migrations: %w", err)
	}

	runner := migration.NewRunner(db, subFS)
	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Storage is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}
