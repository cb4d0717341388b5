package cli

import (
	"context"
	"fmt"

	"github.com/rizqapp/rizq/internal/habits"
)

type DoneCmd struct {
	Dua  string `arg:"" optional:"" help:"Dua id or title prefix to mark complete."`
	Next bool   `help:"Mark the recommended next habit complete."`
	All  bool   `help:"Mark every remaining habit complete."`
}

func (cmd *DoneCmd) Validate() error {
	set := 0
	if cmd.Dua != "" {
		set++
	}
	if cmd.Next {
		set++
	}
	if cmd.All {
		set++
	}
	if set != 1 {
		return fmt.Errorf("specify exactly one of a dua, --next, or --all")
	}
	return nil
}

func (cmd *DoneCmd) Run(ctx *Context) error {
	day, err := ctx.Today()
	if err != nil {
		return err
	}
	cat, err := ctx.Catalog(context.Background())
	if err != nil {
		return err
	}
	state, err := ctx.Tracker.State()
	if err != nil {
		return err
	}

	todays := habits.ComputeTodaysHabits(cat, state, day)

	switch {
	case cmd.All:
		marked := 0
		for _, h := range todays {
			if h.IsCompletedToday {
				continue
			}
			recorded, err := ctx.Tracker.MarkCompleted(context.Background(), h.Dua.ID, h.Dua.XPValue, day)
			if err != nil {
				return err
			}
			if recorded {
				marked++
			}
		}
		fmt.Printf("Marked %d habit(s) complete.\n", marked)

	case cmd.Next:
		next := habits.NextUncompleted(todays)
		if next == nil {
			fmt.Println("All done for today!")
			return nil
		}
		if _, err := ctx.Tracker.MarkCompleted(context.Background(), next.Dua.ID, next.Dua.XPValue, day); err != nil {
			return err
		}
		fmt.Printf("✓ %s (+%d XP)\n", next.Dua.Title, next.Dua.XPValue)

	default:
		dua, err := ResolveDua(cat, cmd.Dua)
		if err != nil {
			return err
		}
		inToday := false
		for _, h := range todays {
			if h.Dua.ID == dua.ID {
				inToday = true
				break
			}
		}
		if !inToday {
			fmt.Printf("Note: %q is not on today's list; recording anyway.\n", dua.Title)
		}
		recorded, err := ctx.Tracker.MarkCompleted(context.Background(), dua.ID, dua.XPValue, day)
		if err != nil {
			return err
		}
		if !recorded {
			fmt.Printf("%s was already complete for %s.\n", dua.Title, day)
			return nil
		}
		fmt.Printf("✓ %s (+%d XP)\n", dua.Title, dua.XPValue)
	}

	// Refresh the snapshot for the summary line.
	state, err = ctx.Tracker.State()
	if err != nil {
		return err
	}
	p := habits.ComputeProgress(habits.ComputeTodaysHabits(cat, state, day))
	fmt.Printf("Progress: %d/%d (%d%%)\n", p.Completed, p.Total, p.Percentage)
	return nil
}
