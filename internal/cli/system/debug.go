package system

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rizqapp/rizq/internal/cli"
	"github.com/rizqapp/rizq/internal/utils"
)

type DebugCmd struct {
	Path         *DebugPathCmd         `cmd:"" help:"Show storage path."`
	DumpState    *DebugDumpStateCmd    `cmd:"" help:"Dump habit state as JSON."`
	DumpDay      *DebugDumpDayCmd      `cmd:"" help:"Dump a day's completion record as JSON."`
	DumpCatalog  *DebugDumpCatalogCmd  `cmd:"" help:"Dump the cached catalog as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
}

type DebugPathCmd struct{}

func (cmd *DebugPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}
	return printJSON(output)
}

type DebugDumpStateCmd struct{}

func (cmd *DebugDumpStateCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Tracker.State()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	return printJSON(state)
}

type DebugDumpDayCmd struct {
	Day string `arg:"" help:"Day to dump (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpDayCmd) Run(ctx *cli.Context) error {
	day := cmd.Day
	if day == "today" {
		today, err := ctx.Today()
		if err != nil {
			return err
		}
		day = today
	}
	if err := utils.ValidateDayKey(day); err != nil {
		return fmt.Errorf("invalid day: %s (expected YYYY-MM-DD or 'today')", cmd.Day)
	}

	state, err := ctx.Tracker.State()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	completion, ok := state.CompletionForDay(day)
	if !ok {
		return fmt.Errorf("no completion record for day: %s", day)
	}
	return printJSON(completion)
}

type DebugDumpCatalogCmd struct{}

func (cmd *DebugDumpCatalogCmd) Run(ctx *cli.Context) error {
	cat, err := ctx.Catalog(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	return printJSON(cat)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(settings)
}

func printJSON(v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
