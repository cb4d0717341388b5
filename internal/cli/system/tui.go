package system

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rizqapp/rizq/internal/cli"
	"github.com/rizqapp/rizq/internal/logger"
	"github.com/rizqapp/rizq/internal/tui"
	"github.com/rizqapp/rizq/internal/utils"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	configDir := filepath.Dir(ctx.Store.GetConfigPath())
	if pid, running := utils.RunningInstance(configDir); running {
		return fmt.Errorf("another rizq instance (pid %d) is already running", pid)
	}
	if err := utils.WritePIDFile(configDir); err != nil {
		logger.Warn("Failed to write pid file", "error", err)
	}
	defer func() {
		if err := utils.RemovePIDFile(configDir); err != nil {
			logger.Warn("Failed to remove pid file", "error", err)
		}
	}()

	p := tea.NewProgram(tui.NewModel(ctx.Store, ctx.Tracker, ctx.Cache), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}

	// Flush any in-flight completion syncs before exit
	ctx.Tracker.Wait()
	return nil
}
