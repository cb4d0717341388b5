package habits

import (
	"math"

	"github.com/rizqapp/rizq/internal/models"
)

// Progress is the summary view over a day's habit list.
type Progress struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
	TotalXP    int `json:"total_xp"`
	EarnedXP   int `json:"earned_xp"`
}

// ComputeProgress derives completion counts and XP totals from the
// aggregator's output. An empty list yields zero percent, not an error.
func ComputeProgress(hs []models.HabitWithDua) Progress {
	p := Progress{Total: len(hs)}
	for _, h := range hs {
		p.TotalXP += h.Dua.XPValue
		if h.IsCompletedToday {
			p.Completed++
			p.EarnedXP += h.Dua.XPValue
		}
	}
	if p.Total > 0 {
		p.Percentage = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
	}
	return p
}

// NextUncompleted selects the single recommended next habit: the incomplete
// habit with the lowest (slot priority, sort order), morning before anytime
// before evening. Ties keep the aggregator's insertion order. Returns nil
// when everything is done.
func NextUncompleted(hs []models.HabitWithDua) *models.HabitWithDua {
	var best *models.HabitWithDua
	for i := range hs {
		h := &hs[i]
		if h.IsCompletedToday {
			continue
		}
		if best == nil {
			best = h
			continue
		}
		if h.TimeSlot.Priority() < best.TimeSlot.Priority() ||
			(h.TimeSlot.Priority() == best.TimeSlot.Priority() && h.SortOrder < best.SortOrder) {
			best = h
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}
