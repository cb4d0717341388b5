package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rizqapp/rizq/internal/catalog"
	"github.com/rizqapp/rizq/internal/models"
	"github.com/rizqapp/rizq/internal/storage"
	"github.com/rizqapp/rizq/internal/tracker"
	"github.com/rizqapp/rizq/internal/utils"
)

type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
	Cache   *catalog.Cache
	Client  *catalog.Client
	UserID  string
}

// Today returns the current day key in the user's configured timezone.
func (c *Context) Today() (string, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return "", err
	}
	return utils.TodayFromSettings(settings)
}

// Catalog returns the catalog snapshot via the cache.
func (c *Context) Catalog(ctx context.Context) (models.Catalog, error) {
	return c.Cache.Get(ctx)
}

// ResolveDua looks up a dua by numeric id or by title prefix, matching
// case-insensitively. A title prefix must identify exactly one dua.
func ResolveDua(cat models.Catalog, ref string) (models.Dua, error) {
	if id, err := strconv.Atoi(ref); err == nil {
		if d, ok := cat.DuaByID(id); ok {
			return d, nil
		}
		return models.Dua{}, fmt.Errorf("no dua with id %d", id)
	}

	needle := strings.ToLower(ref)
	var matches []models.Dua
	for _, d := range cat.Duas {
		if strings.HasPrefix(strings.ToLower(d.Title), needle) {
			matches = append(matches, d)
		}
	}
	switch len(matches) {
	case 0:
		return models.Dua{}, fmt.Errorf("no dua matching %q", ref)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, d := range matches {
			names[i] = fmt.Sprintf("%d: %s", d.ID, d.Title)
		}
		return models.Dua{}, fmt.Errorf("ambiguous dua %q, matches: %s", ref, strings.Join(names, "; "))
	}
}

// ResolveJourney looks up a journey by id, slug, or name prefix.
func ResolveJourney(cat models.Catalog, ref string) (models.JourneyWithDuas, error) {
	if j, ok := cat.JourneyByID(ref); ok {
		return j, nil
	}

	needle := strings.ToLower(ref)
	var matches []models.JourneyWithDuas
	for _, j := range cat.Journeys {
		if strings.ToLower(j.Slug) == needle {
			return j, nil
		}
		if strings.HasPrefix(strings.ToLower(j.Name), needle) {
			matches = append(matches, j)
		}
	}
	switch len(matches) {
	case 0:
		return models.JourneyWithDuas{}, fmt.Errorf("no journey matching %q", ref)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, j := range matches {
			names[i] = fmt.Sprintf("%s (%s)", j.Name, j.ID)
		}
		return models.JourneyWithDuas{}, fmt.Errorf("ambiguous journey %q, matches: %s", ref, strings.Join(names, "; "))
	}
}

// FormatSlot returns the display label for a time slot.
func FormatSlot(slot models.TimeSlot) string {
	switch slot {
	case models.SlotMorning:
		return "Morning"
	case models.SlotEvening:
		return "Evening"
	default:
		return "Anytime"
	}
}

// FormatHabitLine renders one habit row for list output.
func FormatHabitLine(h models.HabitWithDua, showArabic bool) string {
	mark := "[ ]"
	if h.IsCompletedToday {
		mark = "[x]"
	}
	line := fmt.Sprintf("%s %4d  %s", mark, h.Dua.ID, h.Dua.Title)
	if showArabic && h.Dua.TitleArabic != "" {
		line += fmt.Sprintf("  %s", h.Dua.TitleArabic)
	}
	if h.Dua.Repetitions > 1 {
		line += fmt.Sprintf("  x%d", h.Dua.Repetitions)
	}
	if h.Source == models.SourceCustom {
		line += "  (custom)"
	} else if h.JourneyID != "" {
		line += fmt.Sprintf("  (%s)", h.JourneyID)
	}
	return line
}
