package system

import (
	"context"
	"fmt"
	"time"

	"github.com/rizqapp/rizq/internal/cli"
)

type RefreshCmd struct{}

func (cmd *RefreshCmd) Run(ctx *cli.Context) error {
	if ctx.Client == nil {
		return fmt.Errorf("no catalog connection configured; set one with 'rizq keyring set' or RIZQ_DB_CONNECTION")
	}

	fmt.Println("Fetching catalog...")
	refreshCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cat, err := ctx.Cache.Refresh(refreshCtx)
	if err != nil {
		return err
	}

	fmt.Printf("Fetched %d duas and %d journeys.\n", len(cat.Duas), len(cat.Journeys))
	return nil
}
