package habits

import (
	"testing"

	"github.com/rizqapp/rizq/internal/constants"
	"github.com/rizqapp/rizq/internal/models"
)

func TestCalculateStreak(t *testing.T) {
	tests := []struct {
		name        string
		completions []models.HabitCompletion
		today       string
		want        int
	}{
		{
			name:        "no completions",
			completions: nil,
			today:       "2026-08-30",
			want:        0,
		},
		{
			name: "three consecutive days ending today",
			completions: []models.HabitCompletion{
				{Day: "2026-08-28", CompletedDuaIDs: []int{1}},
				{Day: "2026-08-29", CompletedDuaIDs: []int{1}},
				{Day: "2026-08-30", CompletedDuaIDs: []int{1}},
			},
			today: "2026-08-30",
			want:  3,
		},
		{
			name: "not yet practiced today keeps yesterday's streak",
			completions: []models.HabitCompletion{
				{Day: "2026-08-28", CompletedDuaIDs: []int{1}},
				{Day: "2026-08-29", CompletedDuaIDs: []int{1}},
			},
			today: "2026-08-30",
			want:  2,
		},
		{
			name: "missed a full day resets",
			completions: []models.HabitCompletion{
				{Day: "2026-08-27", CompletedDuaIDs: []int{1}},
				{Day: "2026-08-28", CompletedDuaIDs: []int{1}},
			},
			today: "2026-08-30",
			want:  0,
		},
		{
			name: "gap breaks the run",
			completions: []models.HabitCompletion{
				{Day: "2026-08-26", CompletedDuaIDs: []int{1}},
				{Day: "2026-08-29", CompletedDuaIDs: []int{1}},
				{Day: "2026-08-30", CompletedDuaIDs: []int{1}},
			},
			today: "2026-08-30",
			want:  2,
		},
		{
			name: "empty records do not count",
			completions: []models.HabitCompletion{
				{Day: "2026-08-30", CompletedDuaIDs: []int{}},
			},
			today: "2026-08-30",
			want:  0,
		},
		{
			name: "invalid today yields zero",
			completions: []models.HabitCompletion{
				{Day: "2026-08-30", CompletedDuaIDs: []int{1}},
			},
			today: "not-a-day",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateStreak(tt.completions, tt.today)
			if got != tt.want {
				t.Errorf("CalculateStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLifetimeXP(t *testing.T) {
	cat := models.Catalog{
		Duas: []models.Dua{
			{ID: 1, XPValue: 10},
			{ID: 2, XPValue: 25},
		},
	}
	completions := []models.HabitCompletion{
		{Day: "2026-08-29", CompletedDuaIDs: []int{1, 2}},
		{Day: "2026-08-30", CompletedDuaIDs: []int{1, 999}}, // 999 no longer in catalog
	}

	if got := LifetimeXP(completions, cat); got != 45 {
		t.Errorf("LifetimeXP() = %d, want 45", got)
	}
}

func TestLevelForXP(t *testing.T) {
	step := constants.LevelXPStep
	tests := []struct {
		xp   int
		want int
	}{
		{-5, 1},
		{0, 1},
		{step - 1, 1},
		{step, 2},
		{step*3 + 1, 4},
	}

	for _, tt := range tests {
		if got := LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestXPIntoLevel(t *testing.T) {
	step := constants.LevelXPStep
	into, span := XPIntoLevel(step + 40)
	if into != 40 || span != step {
		t.Errorf("XPIntoLevel() = (%d, %d), want (40, %d)", into, span, step)
	}

	into, span = XPIntoLevel(-1)
	if into != 0 || span != step {
		t.Errorf("XPIntoLevel(-1) = (%d, %d), want (0, %d)", into, span, step)
	}
}
