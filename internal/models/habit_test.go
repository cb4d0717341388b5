package models

import (
	"encoding/json"
	"testing"
)

func TestMigrate_LegacySingleJourney(t *testing.T) {
	legacy := "5"
	s := UserHabitsStorage{ActiveJourneyID: &legacy}

	migrated := s.Migrate()

	if migrated.ActiveJourneyID != nil {
		t.Error("legacy field should be cleared after migration")
	}
	if len(migrated.ActiveJourneyIDs) != 1 || migrated.ActiveJourneyIDs[0] != "5" {
		t.Errorf("expected [5], got %v", migrated.ActiveJourneyIDs)
	}
}

func TestMigrate_NullLegacyJourney(t *testing.T) {
	s := UserHabitsStorage{}
	migrated := s.Migrate()

	if migrated.ActiveJourneyIDs == nil || len(migrated.ActiveJourneyIDs) != 0 {
		t.Errorf("expected empty list, got %v", migrated.ActiveJourneyIDs)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	legacy := "5"
	s := UserHabitsStorage{ActiveJourneyID: &legacy}

	once := s.Migrate()
	twice := once.Migrate()

	if len(twice.ActiveJourneyIDs) != 1 {
		t.Errorf("double migration must not duplicate: %v", twice.ActiveJourneyIDs)
	}
}

func TestMigrate_LegacyAlreadyInList(t *testing.T) {
	legacy := "5"
	s := UserHabitsStorage{
		ActiveJourneyID:  &legacy,
		ActiveJourneyIDs: []string{"5", "7"},
	}

	migrated := s.Migrate()

	if len(migrated.ActiveJourneyIDs) != 2 {
		t.Errorf("expected no duplicate insertion, got %v", migrated.ActiveJourneyIDs)
	}
}

func TestMigrate_FillsNilCollections(t *testing.T) {
	migrated := UserHabitsStorage{}.Migrate()

	if migrated.CustomHabits == nil {
		t.Error("CustomHabits should be initialized")
	}
	if migrated.HabitCompletions == nil {
		t.Error("HabitCompletions should be initialized")
	}
	if migrated.DuaProgress == nil {
		t.Error("DuaProgress should be initialized")
	}
}

func TestMigrate_FromLegacyJSON(t *testing.T) {
	// Documents written by older versions carry a scalar active_journey_id
	raw := `{"active_journey_id": "5", "custom_habits": null}`

	var s UserHabitsStorage
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	migrated := s.Migrate()
	if len(migrated.ActiveJourneyIDs) != 1 || migrated.ActiveJourneyIDs[0] != "5" {
		t.Errorf("expected [5], got %v", migrated.ActiveJourneyIDs)
	}
}

func TestCompletionForDay(t *testing.T) {
	s := UserHabitsStorage{
		HabitCompletions: []HabitCompletion{
			{Day: "2026-08-29", CompletedDuaIDs: []int{1}},
			{Day: "2026-08-30", CompletedDuaIDs: []int{2, 3}},
		},
	}

	c, ok := s.CompletionForDay("2026-08-30")
	if !ok {
		t.Fatal("expected a record for 2026-08-30")
	}
	if !c.Contains(2) || !c.Contains(3) || c.Contains(1) {
		t.Errorf("wrong record returned: %+v", c)
	}

	if _, ok := s.CompletionForDay("2026-01-01"); ok {
		t.Error("expected no record for an unrecorded day")
	}
}

func TestClone_DeepCopy(t *testing.T) {
	s := NewUserHabitsStorage()
	s.ActiveJourneyIDs = []string{"j1"}
	s.HabitCompletions = []HabitCompletion{
		{Day: "2026-08-30", CompletedDuaIDs: []int{1}},
	}
	s.DuaProgress[1] = DuaProgress{CompletedCount: 1}

	clone := s.Clone()
	clone.ActiveJourneyIDs[0] = "changed"
	clone.HabitCompletions[0].CompletedDuaIDs[0] = 99
	clone.DuaProgress[1] = DuaProgress{CompletedCount: 42}

	if s.ActiveJourneyIDs[0] != "j1" {
		t.Error("clone shares ActiveJourneyIDs with original")
	}
	if s.HabitCompletions[0].CompletedDuaIDs[0] != 1 {
		t.Error("clone shares completion slices with original")
	}
	if s.DuaProgress[1].CompletedCount != 1 {
		t.Error("clone shares DuaProgress map with original")
	}
}
