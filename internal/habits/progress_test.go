package habits

import (
	"testing"

	"github.com/rizqapp/rizq/internal/models"
)

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name           string
		habits         []models.HabitWithDua
		wantCompleted  int
		wantPercentage int
		wantEarnedXP   int
	}{
		{
			name:           "empty list is zero percent",
			habits:         nil,
			wantCompleted:  0,
			wantPercentage: 0,
			wantEarnedXP:   0,
		},
		{
			name: "one of three rounds to 33",
			habits: []models.HabitWithDua{
				{Dua: models.Dua{ID: 1, XPValue: 10}, IsCompletedToday: true},
				{Dua: models.Dua{ID: 2, XPValue: 10}},
				{Dua: models.Dua{ID: 3, XPValue: 10}},
			},
			wantCompleted:  1,
			wantPercentage: 33,
			wantEarnedXP:   10,
		},
		{
			name: "two of three rounds to 67",
			habits: []models.HabitWithDua{
				{Dua: models.Dua{ID: 1, XPValue: 10}, IsCompletedToday: true},
				{Dua: models.Dua{ID: 2, XPValue: 15}, IsCompletedToday: true},
				{Dua: models.Dua{ID: 3, XPValue: 10}},
			},
			wantCompleted:  2,
			wantPercentage: 67,
			wantEarnedXP:   25,
		},
		{
			name: "all complete is 100",
			habits: []models.HabitWithDua{
				{Dua: models.Dua{ID: 1, XPValue: 10}, IsCompletedToday: true},
				{Dua: models.Dua{ID: 2, XPValue: 10}, IsCompletedToday: true},
			},
			wantCompleted:  2,
			wantPercentage: 100,
			wantEarnedXP:   20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ComputeProgress(tt.habits)
			if p.Completed != tt.wantCompleted {
				t.Errorf("Completed = %d, want %d", p.Completed, tt.wantCompleted)
			}
			if p.Percentage != tt.wantPercentage {
				t.Errorf("Percentage = %d, want %d", p.Percentage, tt.wantPercentage)
			}
			if p.EarnedXP != tt.wantEarnedXP {
				t.Errorf("EarnedXP = %d, want %d", p.EarnedXP, tt.wantEarnedXP)
			}
		})
	}
}

func TestNextUncompleted_SlotPriority(t *testing.T) {
	hs := []models.HabitWithDua{
		{Dua: models.Dua{ID: 1}, TimeSlot: models.SlotEvening, SortOrder: 0},
		{Dua: models.Dua{ID: 2}, TimeSlot: models.SlotAnytime, SortOrder: 0},
		{Dua: models.Dua{ID: 3}, TimeSlot: models.SlotMorning, SortOrder: 5},
	}

	next := NextUncompleted(hs)
	if next == nil {
		t.Fatal("expected a next habit")
	}
	if next.Dua.ID != 3 {
		t.Errorf("morning should win over anytime and evening, got dua %d", next.Dua.ID)
	}
}

func TestNextUncompleted_SortOrderWithinSlot(t *testing.T) {
	hs := []models.HabitWithDua{
		{Dua: models.Dua{ID: 1}, TimeSlot: models.SlotMorning, SortOrder: 3},
		{Dua: models.Dua{ID: 2}, TimeSlot: models.SlotMorning, SortOrder: 1, IsCompletedToday: true},
		{Dua: models.Dua{ID: 3}, TimeSlot: models.SlotMorning, SortOrder: 2},
	}

	next := NextUncompleted(hs)
	if next == nil {
		t.Fatal("expected a next habit")
	}
	if next.Dua.ID != 3 {
		t.Errorf("expected lowest uncompleted sort order, got dua %d", next.Dua.ID)
	}
}

func TestNextUncompleted_TieKeepsInsertionOrder(t *testing.T) {
	hs := []models.HabitWithDua{
		{Dua: models.Dua{ID: 7}, TimeSlot: models.SlotAnytime, SortOrder: 0},
		{Dua: models.Dua{ID: 8}, TimeSlot: models.SlotAnytime, SortOrder: 0},
	}

	next := NextUncompleted(hs)
	if next == nil || next.Dua.ID != 7 {
		t.Errorf("expected first-inserted habit on tie, got %+v", next)
	}
}

func TestNextUncompleted_AllDone(t *testing.T) {
	hs := []models.HabitWithDua{
		{Dua: models.Dua{ID: 1}, TimeSlot: models.SlotMorning, IsCompletedToday: true},
	}
	if next := NextUncompleted(hs); next != nil {
		t.Errorf("expected nil when everything is complete, got %+v", next)
	}
}

func TestNextUncompleted_ReturnsCopy(t *testing.T) {
	hs := []models.HabitWithDua{
		{Dua: models.Dua{ID: 1}, TimeSlot: models.SlotMorning},
	}
	next := NextUncompleted(hs)
	next.Dua.ID = 99
	if hs[0].Dua.ID != 1 {
		t.Error("NextUncompleted must not alias the input slice")
	}
}
