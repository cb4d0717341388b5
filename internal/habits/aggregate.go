package habits

import (
	"sort"

	"github.com/rizqapp/rizq/internal/logger"
	"github.com/rizqapp/rizq/internal/models"
)

// ComputeTodaysHabits merges the catalog with the user's subscriptions and
// custom habits into a single deduplicated list of today's practice items.
//
// Active journeys are walked in stored subscription order, each journey's
// member duas in ascending sort order. The first journey to reference a dua
// wins; later journeys and custom habits never override it. Journey ids
// missing from the catalog are skipped silently (removed or unpublished
// content). Dua ids that cannot be resolved are dropped with a diagnostic,
// never a failure. Completion status is annotated from the record for the
// given day key (YYYY-MM-DD).
//
// The output order is insertion order: journey-derived habits first, then
// custom. An empty result is the valid "no habits configured" state.
func ComputeTodaysHabits(cat models.Catalog, st models.UserHabitsStorage, today string) []models.HabitWithDua {
	completion, _ := st.CompletionForDay(today)

	out := []models.HabitWithDua{}
	seen := make(map[int]bool)

	for _, journeyID := range st.ActiveJourneyIDs {
		journey, ok := cat.JourneyByID(journeyID)
		if !ok {
			continue
		}

		members := append([]models.JourneyDua{}, journey.Duas...)
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].SortOrder < members[j].SortOrder
		})

		for _, jd := range members {
			if seen[jd.DuaID] {
				continue
			}
			dua, ok := cat.DuaByID(jd.DuaID)
			if !ok {
				logger.Warn("Journey references unknown dua, skipping",
					"journey", journeyID, "dua", jd.DuaID)
				continue
			}
			seen[jd.DuaID] = true
			out = append(out, models.HabitWithDua{
				Dua:              dua,
				TimeSlot:         jd.TimeSlot,
				SortOrder:        jd.SortOrder,
				Source:           models.SourceJourney,
				JourneyID:        journeyID,
				IsCompletedToday: completion.Contains(jd.DuaID),
			})
		}
	}

	for _, h := range st.CustomHabits {
		if seen[h.DuaID] {
			continue
		}
		dua, ok := cat.DuaByID(h.DuaID)
		if !ok {
			logger.Warn("Custom habit references unknown dua, skipping", "dua", h.DuaID)
			continue
		}
		seen[h.DuaID] = true
		out = append(out, models.HabitWithDua{
			Dua:              dua,
			TimeSlot:         h.TimeSlot,
			SortOrder:        h.SortOrder,
			Source:           models.SourceCustom,
			IsCompletedToday: completion.Contains(h.DuaID),
		})
	}

	return out
}

// Grouped is the slot-partitioned view of a day's habits.
type Grouped struct {
	Morning []models.HabitWithDua
	Anytime []models.HabitWithDua
	Evening []models.HabitWithDua
}

// GroupByTimeSlot partitions habits into the three slot buckets. The
// partition is exact and stable: every habit lands in exactly one bucket,
// and within a bucket habits are ordered by ascending sort order with ties
// keeping the input order. Habits carrying an unknown slot value are placed
// in the anytime bucket so nothing is lost.
func GroupByTimeSlot(hs []models.HabitWithDua) Grouped {
	var g Grouped
	for _, h := range hs {
		switch h.TimeSlot {
		case models.SlotMorning:
			g.Morning = append(g.Morning, h)
		case models.SlotEvening:
			g.Evening = append(g.Evening, h)
		default:
			g.Anytime = append(g.Anytime, h)
		}
	}
	sortBySortOrder(g.Morning)
	sortBySortOrder(g.Anytime)
	sortBySortOrder(g.Evening)
	return g
}

func sortBySortOrder(hs []models.HabitWithDua) {
	sort.SliceStable(hs, func(i, j int) bool {
		return hs[i].SortOrder < hs[j].SortOrder
	})
}
