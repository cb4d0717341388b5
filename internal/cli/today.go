package cli

import (
	"context"
	"fmt"

	"github.com/rizqapp/rizq/internal/habits"
	"github.com/rizqapp/rizq/internal/models"
)

type TodayCmd struct {
	Slot string `help:"Show only one slot (morning, anytime, evening)." enum:",morning,anytime,evening" default:""`
	Next bool   `help:"Show only the recommended next habit."`
}

func (cmd *TodayCmd) Run(ctx *Context) error {
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
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	todays := habits.ComputeTodaysHabits(cat, state, day)
	if len(todays) == 0 {
		fmt.Println("No habits for today. Subscribe to a journey with 'rizq journey subscribe' or add one with 'rizq habit add'.")
		return nil
	}

	if cmd.Next {
		next := habits.NextUncompleted(todays)
		if next == nil {
			fmt.Println("All done for today!")
			return nil
		}
		fmt.Printf("Next up (%s):\n", FormatSlot(next.TimeSlot))
		printHabit(*next, settings)
		return nil
	}

	grouped := habits.GroupByTimeSlot(todays)
	sections := []struct {
		name string
		slot models.TimeSlot
		list []models.HabitWithDua
	}{
		{"Morning", models.SlotMorning, grouped.Morning},
		{"Anytime", models.SlotAnytime, grouped.Anytime},
		{"Evening", models.SlotEvening, grouped.Evening},
	}

	fmt.Printf("Today (%s)\n\n", day)
	for _, sec := range sections {
		if cmd.Slot != "" && cmd.Slot != string(sec.slot) {
			continue
		}
		if len(sec.list) == 0 {
			continue
		}
		fmt.Printf("%s\n", sec.name)
		for _, h := range sec.list {
			fmt.Printf("  %s\n", FormatHabitLine(h, settings.ShowArabic))
			if settings.ShowBenefits && h.Dua.Benefit != "" {
				fmt.Printf("         %s\n", h.Dua.Benefit)
			}
		}
		fmt.Println()
	}

	p := habits.ComputeProgress(todays)
	fmt.Printf("Progress: %d/%d (%d%%), %d/%d XP\n",
		p.Completed, p.Total, p.Percentage, p.EarnedXP, p.TotalXP)
	return nil
}

func printHabit(h models.HabitWithDua, settings models.Settings) {
	fmt.Printf("  %s\n", FormatHabitLine(h, settings.ShowArabic))
	if h.Dua.Translation != "" {
		fmt.Printf("         %s\n", h.Dua.Translation)
	}
	if settings.ShowBenefits && h.Dua.Benefit != "" {
		fmt.Printf("         %s\n", h.Dua.Benefit)
	}
}
