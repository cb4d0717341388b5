package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rizqapp/rizq/internal/models"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rizq.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	return store
}

func TestJSONStore_InitTwiceFails(t *testing.T) {
	store := newTestStore(t)
	if err := store.Init(); err == nil {
		t.Error("expected error initializing over existing storage")
	}
}

func TestJSONStore_LoadWithoutInit(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Error("expected error loading uninitialized storage")
	}
}

func TestJSONStore_StateRoundTrip(t *testing.T) {
	store := newTestStore(t)

	state, err := store.State()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	state.ActiveJourneyIDs = append(state.ActiveJourneyIDs, "j1")
	state.HabitCompletions = append(state.HabitCompletions, models.HabitCompletion{
		Day:             "2026-08-30",
		CompletedDuaIDs: []int{1, 2},
	})
	if err := store.SaveState(state); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Reload from disk through a fresh store
	reloaded := NewJSONStore(store.GetConfigPath())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, err := reloaded.State()
	if err != nil {
		t.Fatalf("state: %v", err)
	}

	if len(got.ActiveJourneyIDs) != 1 || got.ActiveJourneyIDs[0] != "j1" {
		t.Errorf("journeys not persisted: %v", got.ActiveJourneyIDs)
	}
	if len(got.HabitCompletions) != 1 || !got.HabitCompletions[0].Contains(2) {
		t.Errorf("completions not persisted: %+v", got.HabitCompletions)
	}
}

func TestJSONStore_StateReturnsCopy(t *testing.T) {
	store := newTestStore(t)

	state, _ := store.State()
	state.ActiveJourneyIDs = append(state.ActiveJourneyIDs, "mutation")

	again, _ := store.State()
	if len(again.ActiveJourneyIDs) != 0 {
		t.Error("State() must hand out copies, not the live document")
	}
}

func TestJSONStore_CorruptDocumentFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rizq.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("corrupt storage must not fail load: %v", err)
	}

	state, err := store.State()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if len(state.ActiveJourneyIDs) != 0 || len(state.HabitCompletions) != 0 {
		t.Errorf("expected empty default state, got %+v", state)
	}

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if settings.Timezone != models.DefaultSettings().Timezone {
		t.Errorf("expected default settings, got %+v", settings)
	}
}

func TestJSONStore_LegacyDocumentMigratedOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rizq.json")
	legacy := `{"version":1,"settings":{"timezone":"Local"},"state":{"active_journey_id":"5"}}`
	if err := os.WriteFile(path, []byte(legacy), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	state, err := store.State()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if len(state.ActiveJourneyIDs) != 1 || state.ActiveJourneyIDs[0] != "5" {
		t.Errorf("legacy journey not migrated: %v", state.ActiveJourneyIDs)
	}
	if state.ActiveJourneyID != nil {
		t.Error("legacy field should be cleared")
	}
}

func TestJSONStore_SettingsRoundTrip(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	settings.CacheTTLMin = 60
	settings.ShowBenefits = true
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	reloaded := NewJSONStore(store.GetConfigPath())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, err := reloaded.GetSettings()
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if got.CacheTTLMin != 60 || !got.ShowBenefits {
		t.Errorf("settings not persisted: %+v", got)
	}
}
