package habits

import (
	"time"

	"github.com/rizqapp/rizq/internal/constants"
	"github.com/rizqapp/rizq/internal/models"
)

// CalculateStreak counts consecutive days with at least one completion,
// ending at today or yesterday. A user who has not yet practiced today
// keeps yesterday's streak; missing a full day resets it to zero. Records
// with unparseable or empty day keys are ignored.
func CalculateStreak(completions []models.HabitCompletion, today string) int {
	todayT, err := time.Parse(constants.DateFormat, today)
	if err != nil {
		return 0
	}

	days := make(map[string]bool)
	for _, c := range completions {
		if len(c.CompletedDuaIDs) > 0 {
			days[c.Day] = true
		}
	}

	cursor := todayT
	if !days[today] {
		cursor = todayT.AddDate(0, 0, -1)
	}

	streak := 0
	for days[cursor.Format(constants.DateFormat)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// LifetimeXP sums XP earned across all recorded completions, resolving each
// dua against the catalog. Completions for duas no longer in the catalog
// contribute nothing.
func LifetimeXP(completions []models.HabitCompletion, cat models.Catalog) int {
	total := 0
	for _, c := range completions {
		for _, id := range c.CompletedDuaIDs {
			if dua, ok := cat.DuaByID(id); ok {
				total += dua.XPValue
			}
		}
	}
	return total
}

// LevelForXP maps lifetime XP onto a level. Levels are linear: each level
// spans LevelXPStep XP, starting at level 1.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/constants.LevelXPStep + 1
}

// XPIntoLevel returns how far into the current level the given XP is, and
// the level's span, for rendering a progress bar.
func XPIntoLevel(xp int) (into, span int) {
	if xp < 0 {
		return 0, constants.LevelXPStep
	}
	return xp % constants.LevelXPStep, constants.LevelXPStep
}
