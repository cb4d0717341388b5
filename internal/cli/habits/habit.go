package habits

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/rizqapp/rizq/internal/cli"
	"github.com/rizqapp/rizq/internal/models"
)

type HabitAddCmd struct {
	Dua  string `arg:"" optional:"" help:"Dua id or title prefix."`
	Slot string `help:"Time slot (morning, anytime, evening)." enum:",morning,anytime,evening" default:""`
}

func (cmd *HabitAddCmd) Run(ctx *cli.Context) error {
	cat, err := ctx.Catalog(context.Background())
	if err != nil {
		return err
	}

	var dua models.Dua
	slot := models.TimeSlot(cmd.Slot)

	if cmd.Dua != "" {
		dua, err = cli.ResolveDua(cat, cmd.Dua)
		if err != nil {
			return err
		}
		if slot == "" {
			slot = dua.RecommendedTime
			if !slot.Valid() {
				slot = models.SlotAnytime
			}
		}
	} else {
		dua, slot, err = pickDua(cat)
		if err != nil {
			return err
		}
	}

	habit, err := ctx.Tracker.AddCustomHabit(dua.ID, slot)
	if err != nil {
		return err
	}
	fmt.Printf("Added %q to your %s habits.\n", dua.Title, cli.FormatSlot(habit.TimeSlot))
	return nil
}

func pickDua(cat models.Catalog) (models.Dua, models.TimeSlot, error) {
	if len(cat.Duas) == 0 {
		return models.Dua{}, "", fmt.Errorf("catalog is empty, try 'rizq refresh'")
	}

	var options []huh.Option[int]
	for _, d := range cat.Duas {
		label := d.Title
		if d.XPValue > 0 {
			label += fmt.Sprintf(" (+%d XP)", d.XPValue)
		}
		options = append(options, huh.NewOption(label, d.ID))
	}

	var duaID int
	var slot string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Choose a dua").
				Options(options...).
				Value(&duaID),
			huh.NewSelect[string]().
				Title("Time slot").
				Options(
					huh.NewOption("Morning", string(models.SlotMorning)),
					huh.NewOption("Anytime", string(models.SlotAnytime)),
					huh.NewOption("Evening", string(models.SlotEvening)),
				).
				Value(&slot),
		),
	)
	if err := form.Run(); err != nil {
		return models.Dua{}, "", err
	}

	dua, ok := cat.DuaByID(duaID)
	if !ok {
		return models.Dua{}, "", fmt.Errorf("no dua with id %d", duaID)
	}
	return dua, models.TimeSlot(slot), nil
}

type HabitRemoveCmd struct {
	Dua string `arg:"" help:"Dua id or title prefix."`
}

func (cmd *HabitRemoveCmd) Run(ctx *cli.Context) error {
	cat, err := ctx.Catalog(context.Background())
	if err != nil {
		return err
	}
	dua, err := cli.ResolveDua(cat, cmd.Dua)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.RemoveCustomHabit(dua.ID); err != nil {
		return err
	}
	fmt.Printf("Removed %q from your habits. Completion history is kept.\n", dua.Title)
	return nil
}

type HabitListCmd struct{}

func (cmd *HabitListCmd) Run(ctx *cli.Context) error {
	cat, err := ctx.Catalog(context.Background())
	if err != nil {
		return err
	}
	state, err := ctx.Tracker.State()
	if err != nil {
		return err
	}

	if len(state.CustomHabits) == 0 {
		fmt.Println("No custom habits. Add one with 'rizq habit add'.")
		return nil
	}

	for _, h := range state.CustomHabits {
		title := fmt.Sprintf("dua %d", h.DuaID)
		if dua, ok := cat.DuaByID(h.DuaID); ok {
			title = dua.Title
		}
		fmt.Printf("  %4d  %-8s %s\n", h.DuaID, cli.FormatSlot(h.TimeSlot), title)
	}
	return nil
}
