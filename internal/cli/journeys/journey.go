package journeys

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/rizqapp/rizq/internal/cli"
	"github.com/rizqapp/rizq/internal/models"
)

type JourneyListCmd struct {
	All bool `help:"Include premium journeys."`
}

func (cmd *JourneyListCmd) Run(ctx *cli.Context) error {
	cat, err := ctx.Catalog(context.Background())
	if err != nil {
		return err
	}
	state, err := ctx.Tracker.State()
	if err != nil {
		return err
	}

	subscribed := make(map[string]bool)
	for _, id := range state.ActiveJourneyIDs {
		subscribed[id] = true
	}

	if len(cat.Journeys) == 0 {
		fmt.Println("No journeys in the catalog. Try 'rizq refresh'.")
		return nil
	}

	for _, j := range cat.Journeys {
		if j.IsPremium && !cmd.All {
			continue
		}
		mark := " "
		if subscribed[j.ID] {
			mark = "*"
		}
		line := fmt.Sprintf("%s %s %s", mark, j.Emoji, j.Name)
		if j.IsFeatured {
			line += "  (featured)"
		}
		if j.IsPremium {
			line += "  (premium)"
		}
		fmt.Println(line)
		fmt.Printf("    %s: %d duas, %d XP/day, ~%d min  [%s]\n",
			j.Description, len(j.Duas), j.DailyXP, j.DurationMin, j.ID)
	}
	fmt.Println("\n* = subscribed")
	return nil
}

type JourneySubscribeCmd struct {
	Journey string `arg:"" optional:"" help:"Journey id, slug, or name prefix."`
}

func (cmd *JourneySubscribeCmd) Run(ctx *cli.Context) error {
	cat, err := ctx.Catalog(context.Background())
	if err != nil {
		return err
	}

	var journey models.JourneyWithDuas
	if cmd.Journey != "" {
		journey, err = cli.ResolveJourney(cat, cmd.Journey)
		if err != nil {
			return err
		}
	} else {
		journey, err = pickJourney(cat, ctx)
		if err != nil {
			return err
		}
	}

	if err := ctx.Tracker.Subscribe(journey.ID); err != nil {
		return err
	}
	fmt.Printf("Subscribed to %s %s (%d duas).\n", journey.Emoji, journey.Name, len(journey.Duas))
	return nil
}

func pickJourney(cat models.Catalog, ctx *cli.Context) (models.JourneyWithDuas, error) {
	state, err := ctx.Tracker.State()
	if err != nil {
		return models.JourneyWithDuas{}, err
	}
	subscribed := make(map[string]bool)
	for _, id := range state.ActiveJourneyIDs {
		subscribed[id] = true
	}

	var options []huh.Option[string]
	for _, j := range cat.Journeys {
		if subscribed[j.ID] {
			continue
		}
		label := fmt.Sprintf("%s %s (%d duas, %d XP/day)", j.Emoji, j.Name, len(j.Duas), j.DailyXP)
		options = append(options, huh.NewOption(label, j.ID))
	}
	if len(options) == 0 {
		return models.JourneyWithDuas{}, fmt.Errorf("already subscribed to every journey")
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose a journey").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return models.JourneyWithDuas{}, err
	}
	return cli.ResolveJourney(cat, selected)
}

type JourneyUnsubscribeCmd struct {
	Journey string `arg:"" help:"Journey id, slug, or name prefix."`
}

func (cmd *JourneyUnsubscribeCmd) Run(ctx *cli.Context) error {
	cat, err := ctx.Catalog(context.Background())
	if err != nil {
		return err
	}
	journey, err := cli.ResolveJourney(cat, cmd.Journey)
	if err != nil {
		// The id may refer to a journey no longer in the catalog; fall back
		// to the raw argument so stale subscriptions can still be removed.
		if uerr := ctx.Tracker.Unsubscribe(cmd.Journey); uerr == nil {
			fmt.Printf("Unsubscribed from %s.\n", cmd.Journey)
			return nil
		}
		return err
	}

	if err := ctx.Tracker.Unsubscribe(journey.ID); err != nil {
		return err
	}
	fmt.Printf("Unsubscribed from %s. Completion history is kept.\n", journey.Name)
	return nil
}

type JourneyShowCmd struct {
	Journey string `arg:"" help:"Journey id, slug, or name prefix."`
}

func (cmd *JourneyShowCmd) Run(ctx *cli.Context) error {
	cat, err := ctx.Catalog(context.Background())
	if err != nil {
		return err
	}
	journey, err := cli.ResolveJourney(cat, cmd.Journey)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s [%s]\n", journey.Emoji, journey.Name, journey.ID)
	if journey.Description != "" {
		fmt.Printf("%s\n", journey.Description)
	}
	fmt.Printf("%d duas, %d XP/day, ~%d min/day\n\n", len(journey.Duas), journey.DailyXP, journey.DurationMin)

	for _, member := range journey.Duas {
		dua, ok := cat.DuaByID(member.DuaID)
		if !ok {
			fmt.Printf("  %4d  (not in catalog)\n", member.DuaID)
			continue
		}
		reps := ""
		if dua.Repetitions > 1 {
			reps = fmt.Sprintf(" x%d", dua.Repetitions)
		}
		fmt.Printf("  %4d  %-8s %s%s (+%d XP)\n",
			dua.ID, cli.FormatSlot(member.TimeSlot), dua.Title, reps, dua.XPValue)
	}
	return nil
}
