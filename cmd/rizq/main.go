package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/rizqapp/rizq/internal/catalog"
	"github.com/rizqapp/rizq/internal/cli"
	"github.com/rizqapp/rizq/internal/cli/habits"
	"github.com/rizqapp/rizq/internal/cli/journeys"
	"github.com/rizqapp/rizq/internal/cli/settings"
	"github.com/rizqapp/rizq/internal/cli/system"
	"github.com/rizqapp/rizq/internal/constants"
	apperrors "github.com/rizqapp/rizq/internal/errors"
	"github.com/rizqapp/rizq/internal/keyring"
	"github.com/rizqapp/rizq/internal/logger"
	"github.com/rizqapp/rizq/internal/models"
	"github.com/rizqapp/rizq/internal/storage"
	"github.com/rizqapp/rizq/internal/tracker"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path (.json or .db)." type:"string" default:"~/.config/rizq/rizq.json"`
	Debug   bool   `help:"Enable debug logging."`

	Init     system.InitCmd    `cmd:"" help:"Initialize rizq storage."`
	Migrate  system.MigrateCmd `cmd:"" help:"Run storage migrations."`
	Doctor   system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Today    cli.TodayCmd      `cmd:"" help:"Show today's habits."`
	Done     cli.DoneCmd       `cmd:"" help:"Mark a habit complete."`
	Progress cli.ProgressCmd   `cmd:"" help:"Show progress, streak, and level."`
	Log      cli.LogCmd        `cmd:"" help:"Show the completion log."`
	Refresh  system.RefreshCmd `cmd:"" help:"Fetch a fresh catalog snapshot."`
	Debug2   system.DebugCmd   `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Journey  struct {
		List        journeys.JourneyListCmd        `cmd:"" help:"List catalog journeys." default:"1"`
		Subscribe   journeys.JourneySubscribeCmd   `cmd:"" help:"Subscribe to a journey."`
		Unsubscribe journeys.JourneyUnsubscribeCmd `cmd:"" help:"Unsubscribe from a journey."`
		Show        journeys.JourneyShowCmd        `cmd:"" help:"Show a journey's duas."`
	} `cmd:"" help:"Manage journey subscriptions."`
	Habit struct {
		Add    habits.HabitAddCmd    `cmd:"" help:"Add a custom habit."`
		Remove habits.HabitRemoveCmd `cmd:"" help:"Remove a custom habit."`
		List   habits.HabitListCmd   `cmd:"" help:"List custom habits." default:"1"`
	} `cmd:"" help:"Manage custom habits."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the catalog connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Delete the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
		Login  system.KeyringLoginCmd  `cmd:"" help:"Store the user id for completion sync."`
		Logout system.KeyringLogoutCmd `cmd:"" help:"Remove the stored user id."`
	} `cmd:"" help:"Manage keyring-stored credentials."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily dua habit companion"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := expandPath(CLI.Config)
	configDir := filepath.Dir(configPath)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	var store storage.Provider
	if strings.HasSuffix(configPath, ".db") || strings.HasSuffix(configPath, ".sqlite") {
		store = storage.NewSQLiteStore(configPath)
	} else {
		store = storage.NewJSONStore(configPath)
	}

	// The catalog connection string is resolved from the environment first,
	// then the OS keyring. It is never taken from --config.
	var client *catalog.Client
	connStr := os.Getenv(constants.EnvCatalogConnection)
	if connStr == "" {
		if stored, err := keyring.GetConnectionString(); err == nil {
			connStr = stored
		}
	}
	if connStr != "" {
		client = catalog.NewClient(connStr)
	}

	userID := ""
	if id, err := keyring.GetUserID(); err == nil {
		userID = id
	}

	// Load the store before running the command; init handles its own setup.
	loaded := false
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		loaded = true
	}

	ttl := time.Duration(constants.DefaultCacheTTLMin) * time.Minute
	if loaded {
		if cfg, err := store.GetSettings(); err == nil && cfg.CacheTTLMin > 0 {
			ttl = time.Duration(cfg.CacheTTLMin) * time.Minute
		}
	}

	var fetcher catalog.Fetcher
	if client != nil {
		fetcher = client
	} else {
		fetcher = unavailableFetcher{}
	}
	cache := catalog.NewCache(configDir, fetcher, ttl)

	trk := tracker.New(store)
	if client != nil && userID != "" {
		trk.WithRecorder(client, userID)
	}

	appCtx := &cli.Context{
		Store:   store,
		Tracker: trk,
		Cache:   cache,
		Client:  client,
		UserID:  userID,
	}

	err := ctx.Run(appCtx)

	// Let in-flight completion syncs finish before the process exits.
	trk.Wait()
	if client != nil {
		client.Close()
	}
	store.Close()

	if err != nil {
		apperrors.Fatal(err)
	}
}

// unavailableFetcher stands in when no catalog connection is configured. The
// cache still serves any previously fetched snapshot.
type unavailableFetcher struct{}

var errNoCatalog = errors.New("no catalog connection configured; set one with 'rizq keyring set' or " + constants.EnvCatalogConnection)

func (unavailableFetcher) FetchAllDuas(context.Context) ([]models.Dua, error) {
	return nil, errNoCatalog
}

func (unavailableFetcher) FetchJourneyWithDuas(context.Context, string) (models.JourneyWithDuas, error) {
	return models.JourneyWithDuas{}, errNoCatalog
}

func (unavailableFetcher) FetchJourneysWithDuas(context.Context, []string) ([]models.JourneyWithDuas, error) {
	return nil, errNoCatalog
}

func (unavailableFetcher) FetchCatalog(context.Context) (models.Catalog, error) {
	return models.Catalog{}, errNoCatalog
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
