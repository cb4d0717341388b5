package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rizqapp/rizq/internal/habits"
	"github.com/rizqapp/rizq/internal/utils"
)

type ProgressCmd struct{}

func (cmd *ProgressCmd) Run(ctx *Context) error {
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
	p := habits.ComputeProgress(todays)
	streak := habits.CalculateStreak(state.HabitCompletions, day)
	xp := habits.LifetimeXP(state.HabitCompletions, cat)
	level := habits.LevelForXP(xp)
	into, span := habits.XPIntoLevel(xp)

	fmt.Printf("Today (%s): %d/%d habits (%d%%), %d/%d XP\n",
		day, p.Completed, p.Total, p.Percentage, p.EarnedXP, p.TotalXP)
	fmt.Printf("Streak: %d day(s)\n", streak)
	fmt.Printf("Level %d (%d/%d XP), %d lifetime XP\n", level, into, span, xp)
	return nil
}

type LogCmd struct {
	Days int `help:"Number of days to show." default:"14"`
}

func (cmd *LogCmd) Run(ctx *Context) error {
	if cmd.Days < 1 {
		return fmt.Errorf("days must be at least 1")
	}

	day, err := ctx.Today()
	if err != nil {
		return err
	}
	state, err := ctx.Tracker.State()
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, c := range state.HabitCompletions {
		counts[c.Day] = len(c.CompletedDuaIDs)
	}

	days := make([]string, 0, cmd.Days)
	cursor := day
	for i := 0; i < cmd.Days; i++ {
		days = append(days, cursor)
		prev, err := utils.DayBefore(cursor)
		if err != nil {
			break
		}
		cursor = prev
	}
	sort.Strings(days)

	fmt.Printf("Completion log (last %d days)\n\n", len(days))
	for _, d := range days {
		n := counts[d]
		bar := strings.Repeat("■", n)
		if n == 0 {
			bar = "·"
		}
		fmt.Printf("  %s  %-3d %s\n", d, n, bar)
	}
	return nil
}
