package validation

import (
	"testing"

	"github.com/rizqapp/rizq/internal/models"
)

func validCatalog() models.Catalog {
	return models.Catalog{
		Duas: []models.Dua{
			{ID: 1, Slug: "morning-protection", Title: "Morning Protection", XPValue: 10, RecommendedTime: models.SlotMorning},
			{ID: 2, Slug: "evening-gratitude", Title: "Evening Gratitude", XPValue: 15, RecommendedTime: models.SlotEvening},
		},
		Journeys: []models.JourneyWithDuas{
			{
				Journey: models.Journey{ID: "j1", Slug: "daily-shield", Name: "Daily Shield", DailyXP: 25},
				Duas: []models.JourneyDua{
					{DuaID: 1, TimeSlot: models.SlotMorning},
					{DuaID: 2, TimeSlot: models.SlotEvening, SortOrder: 1},
				},
			},
		},
	}
}

func conflictTypes(r ValidationResult) map[ConflictType]int {
	counts := make(map[ConflictType]int)
	for _, c := range r.Conflicts {
		counts[c.Type]++
	}
	return counts
}

func TestValidateCatalog_CleanCatalog(t *testing.T) {
	result := New().ValidateCatalog(validCatalog())
	if result.HasConflicts() {
		t.Errorf("expected no conflicts, got %s", result.FormatReport())
	}
}

func TestValidateCatalog_DanglingDuaRef(t *testing.T) {
	cat := validCatalog()
	cat.Journeys[0].Duas = append(cat.Journeys[0].Duas, models.JourneyDua{DuaID: 99})
	cat.Journeys[0].DailyXP = 0

	result := New().ValidateCatalog(cat)
	if conflictTypes(result)[ConflictDanglingDuaRef] != 1 {
		t.Errorf("expected one dangling ref conflict, got %s", result.FormatReport())
	}
}

func TestValidateCatalog_DuplicateJourneyID(t *testing.T) {
	cat := validCatalog()
	dup := cat.Journeys[0]
	dup.Slug = "other-slug"
	cat.Journeys = append(cat.Journeys, dup)

	result := New().ValidateCatalog(cat)
	if conflictTypes(result)[ConflictDuplicateJourneyID] != 1 {
		t.Errorf("expected duplicate id conflict, got %s", result.FormatReport())
	}
}

func TestValidateCatalog_DuplicateSlug(t *testing.T) {
	cat := validCatalog()
	cat.Journeys = append(cat.Journeys, models.JourneyWithDuas{
		Journey: models.Journey{ID: "j2", Slug: "daily-shield", Name: "Copycat"},
	})

	result := New().ValidateCatalog(cat)
	if conflictTypes(result)[ConflictDuplicateSlug] != 1 {
		t.Errorf("expected duplicate slug conflict, got %s", result.FormatReport())
	}
}

func TestValidateCatalog_DuplicateMember(t *testing.T) {
	cat := validCatalog()
	cat.Journeys[0].Duas = append(cat.Journeys[0].Duas, models.JourneyDua{DuaID: 1})
	cat.Journeys[0].DailyXP = 0

	result := New().ValidateCatalog(cat)
	if conflictTypes(result)[ConflictDuplicateMember] != 1 {
		t.Errorf("expected duplicate member conflict, got %s", result.FormatReport())
	}
}

func TestValidateCatalog_InvalidTimeSlots(t *testing.T) {
	cat := validCatalog()
	cat.Duas[0].RecommendedTime = models.TimeSlot("dawn")
	cat.Journeys[0].Duas[0].TimeSlot = models.TimeSlot("dawn")

	result := New().ValidateCatalog(cat)
	if conflictTypes(result)[ConflictInvalidTimeSlot] != 2 {
		t.Errorf("expected two invalid slot conflicts, got %s", result.FormatReport())
	}
}

func TestValidateCatalog_XPMismatch(t *testing.T) {
	cat := validCatalog()
	cat.Journeys[0].DailyXP = 100

	result := New().ValidateCatalog(cat)
	if conflictTypes(result)[ConflictXPMismatch] != 1 {
		t.Errorf("expected xp mismatch conflict, got %s", result.FormatReport())
	}
}

func TestValidateCatalog_ZeroDailyXPSkipsCheck(t *testing.T) {
	cat := validCatalog()
	cat.Journeys[0].DailyXP = 0

	result := New().ValidateCatalog(cat)
	if result.HasConflicts() {
		t.Errorf("unadvertised daily XP must not be checked, got %s", result.FormatReport())
	}
}

func TestValidateState_Clean(t *testing.T) {
	st := models.NewUserHabitsStorage()
	st.ActiveJourneyIDs = []string{"j1"}
	st.CustomHabits = []models.UserHabit{
		{ID: "c1", DuaID: 2, TimeSlot: models.SlotAnytime},
	}
	st.HabitCompletions = []models.HabitCompletion{
		{Day: "2026-08-30", CompletedDuaIDs: []int{1}},
	}

	result := New().ValidateState(st, validCatalog())
	if result.HasConflicts() {
		t.Errorf("expected no conflicts, got %s", result.FormatReport())
	}
}

func TestValidateState_UnknownJourney(t *testing.T) {
	st := models.NewUserHabitsStorage()
	st.ActiveJourneyIDs = []string{"j1", "ghost"}

	result := New().ValidateState(st, validCatalog())
	if conflictTypes(result)[ConflictUnknownJourney] != 1 {
		t.Errorf("expected unknown journey conflict, got %s", result.FormatReport())
	}
}

func TestValidateState_DanglingCustomHabit(t *testing.T) {
	st := models.NewUserHabitsStorage()
	st.CustomHabits = []models.UserHabit{
		{ID: "c1", DuaID: 99, TimeSlot: models.SlotMorning},
	}

	result := New().ValidateState(st, validCatalog())
	if conflictTypes(result)[ConflictDanglingDuaRef] != 1 {
		t.Errorf("expected dangling custom habit conflict, got %s", result.FormatReport())
	}
}

func TestValidateState_InvalidSlotAndDay(t *testing.T) {
	st := models.NewUserHabitsStorage()
	st.CustomHabits = []models.UserHabit{
		{ID: "c1", DuaID: 1, TimeSlot: models.TimeSlot("brunch")},
	}
	st.HabitCompletions = []models.HabitCompletion{
		{Day: "Aug 30", CompletedDuaIDs: []int{1}},
	}

	result := New().ValidateState(st, validCatalog())
	types := conflictTypes(result)
	if types[ConflictInvalidTimeSlot] != 1 {
		t.Errorf("expected invalid slot conflict, got %s", result.FormatReport())
	}
	if types[ConflictInvalidDay] != 1 {
		t.Errorf("expected invalid day conflict, got %s", result.FormatReport())
	}
}

func TestFormatReport(t *testing.T) {
	empty := ValidationResult{}
	if empty.FormatReport() != "No conflicts detected." {
		t.Errorf("unexpected empty report: %q", empty.FormatReport())
	}

	r := ValidationResult{Conflicts: []Conflict{
		{Type: ConflictUnknownJourney, Description: "Subscribed journey \"ghost\" is not in the catalog"},
	}}
	if !r.HasConflicts() {
		t.Error("expected HasConflicts to be true")
	}
	report := r.FormatReport()
	if report == "" || report == "No conflicts detected." {
		t.Errorf("unexpected report: %q", report)
	}
}
