package system

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/rizqapp/rizq/internal/cli"
	"github.com/rizqapp/rizq/internal/migration"
	"github.com/rizqapp/rizq/internal/storage"
	"github.com/rizqapp/rizq/internal/utils"
	"github.com/rizqapp/rizq/internal/validation"
	"github.com/rizqapp/rizq/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	// Check 1: storage reachable
	if err := checkStorageReachable(ctx); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
		storeReachable = true
	}

	// Check 2: schema version valid (only if storage is reachable)
	if storeReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (storage not reachable)\n")
	}

	// Check 3: migrations complete (only if storage is reachable)
	if storeReachable {
		if err := checkMigrationsComplete(ctx); err != nil {
			fmt.Printf("❌ Migrations complete: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Migrations complete: OK\n")
		}
	} else {
		fmt.Printf("⊘ Migrations complete: SKIPPED (storage not reachable)\n")
	}

	// Check 4: catalog cache present (warning only)
	if err := checkCatalogCache(ctx); err != nil {
		fmt.Printf("⚠ Catalog cache: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Catalog cache: OK\n")
	}

	// Check 5: catalog consistency
	if err := checkCatalogConsistency(ctx); err != nil {
		fmt.Printf("⚠ Catalog consistency: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Catalog consistency: OK\n")
	}

	// Check 6: state integrity (only if storage is reachable)
	if storeReachable {
		if err := checkStateIntegrity(ctx); err != nil {
			fmt.Printf("❌ State integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ State integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ State integrity: SKIPPED (storage not reachable)\n")
	}

	// Check 7: clock/timezone sanity
	if err := checkClockTimezone(ctx); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 8: concurrent instance
	if pid, running := utils.RunningInstance(filepath.Dir(ctx.Store.GetConfigPath())); running {
		fmt.Printf("⚠ Concurrent instance: WARNING\n")
		fmt.Printf("   Another rizq process (pid %d) appears to be running\n", pid)
	} else {
		fmt.Printf("✓ Concurrent instance: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		// JSON store doesn't have schema version
		return nil
	}

	runner, err := sqliteRunner(sqliteStore)
	if err != nil {
		return err
	}

	currentVersion, err := runner.CurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latestVersion, err := runner.LatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if currentVersion > latestVersion {
		return fmt.Errorf("storage schema version (%d) is newer than supported version (%d)", currentVersion, latestVersion)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		return nil
	}

	runner, err := sqliteRunner(sqliteStore)
	if err != nil {
		return err
	}

	currentVersion, err := runner.CurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latestVersion, err := runner.LatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if currentVersion < latestVersion {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'rizq migrate')", currentVersion, latestVersion)
	}
	return nil
}

func sqliteRunner(s *storage.SQLiteStore) (*migration.Runner, error) {
	db := s.GetDB()
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access migrations: %w", err)
	}
	return migration.NewRunner(db, subFS), nil
}

func checkCatalogCache(ctx *cli.Context) error {
	age, ok := ctx.Cache.Age()
	if !ok {
		return fmt.Errorf("no cached catalog - run 'rizq refresh' to fetch one")
	}
	settings, err := ctx.Store.GetSettings()
	if err == nil {
		ttl := time.Duration(settings.CacheTTLMin) * time.Minute
		if age > ttl {
			return fmt.Errorf("cached catalog is stale (%s old, TTL %s) - run 'rizq refresh'", age.Round(time.Minute), ttl)
		}
	}
	return nil
}

func checkCatalogConsistency(ctx *cli.Context) error {
	cat, err := ctx.Catalog(context.Background())
	if err != nil {
		return fmt.Errorf("catalog unavailable: %v", err)
	}

	validator := validation.New()
	result := validator.ValidateCatalog(cat)
	if result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkStateIntegrity(ctx *cli.Context) error {
	state, err := ctx.Tracker.State()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	// Day keys must be well-formed and unique
	seenDays := make(map[string]bool)
	for _, c := range state.HabitCompletions {
		if err := utils.ValidateDayKey(c.Day); err != nil {
			return fmt.Errorf("completion record has invalid day key %q", c.Day)
		}
		if seenDays[c.Day] {
			return fmt.Errorf("found multiple completion records for day %s", c.Day)
		}
		seenDays[c.Day] = true

		seenDuas := make(map[int]bool)
		for _, id := range c.CompletedDuaIDs {
			if seenDuas[id] {
				return fmt.Errorf("day %s records dua %d more than once", c.Day, id)
			}
			seenDuas[id] = true
		}
	}

	seenJourneys := make(map[string]bool)
	for _, id := range state.ActiveJourneyIDs {
		if seenJourneys[id] {
			return fmt.Errorf("journey %q appears twice in subscriptions", id)
		}
		seenJourneys[id] = true
	}

	seenCustom := make(map[int]bool)
	for _, h := range state.CustomHabits {
		if seenCustom[h.DuaID] {
			return fmt.Errorf("dua %d appears twice in custom habits", h.DuaID)
		}
		seenCustom[h.DuaID] = true
	}

	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return nil // storage checks report this separately
	}
	if err := utils.ValidateTimezone(settings.Timezone); err != nil {
		return fmt.Errorf("configured timezone is invalid: %w", err)
	}
	return nil
}
