package cli

import (
	"strings"
	"testing"

	"github.com/rizqapp/rizq/internal/models"
)

func resolveCatalog() models.Catalog {
	return models.Catalog{
		Duas: []models.Dua{
			{ID: 1, Slug: "morning-protection", Title: "Morning Protection"},
			{ID: 2, Slug: "morning-light", Title: "Morning Light"},
			{ID: 3, Slug: "travel", Title: "Travel Dua"},
		},
		Journeys: []models.JourneyWithDuas{
			{Journey: models.Journey{ID: "j1", Slug: "daily-shield", Name: "Daily Shield"}},
			{Journey: models.Journey{ID: "j2", Slug: "gratitude", Name: "Daily Gratitude"}},
		},
	}
}

func TestResolveDua_ByID(t *testing.T) {
	d, err := ResolveDua(resolveCatalog(), "3")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.Slug != "travel" {
		t.Errorf("resolved wrong dua: %+v", d)
	}

	if _, err := ResolveDua(resolveCatalog(), "99"); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestResolveDua_ByTitlePrefix(t *testing.T) {
	d, err := ResolveDua(resolveCatalog(), "travel")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.ID != 3 {
		t.Errorf("resolved wrong dua: %+v", d)
	}
}

func TestResolveDua_AmbiguousPrefix(t *testing.T) {
	_, err := ResolveDua(resolveCatalog(), "morning")
	if err == nil {
		t.Fatal("expected ambiguity error")
	}
	if !strings.Contains(err.Error(), "Morning Protection") || !strings.Contains(err.Error(), "Morning Light") {
		t.Errorf("ambiguity error should list candidates: %v", err)
	}
}

func TestResolveDua_NoMatch(t *testing.T) {
	if _, err := ResolveDua(resolveCatalog(), "fasting"); err == nil {
		t.Error("expected error for unmatched title")
	}
}

func TestResolveJourney(t *testing.T) {
	tests := []struct {
		ref    string
		wantID string
	}{
		{"j2", "j2"},
		{"daily-shield", "j1"},
		{"gratitude", "j2"}, // slug match beats name-prefix ambiguity
	}

	for _, tt := range tests {
		j, err := ResolveJourney(resolveCatalog(), tt.ref)
		if err != nil {
			t.Errorf("ResolveJourney(%q): %v", tt.ref, err)
			continue
		}
		if j.ID != tt.wantID {
			t.Errorf("ResolveJourney(%q) = %s, want %s", tt.ref, j.ID, tt.wantID)
		}
	}

	if _, err := ResolveJourney(resolveCatalog(), "daily"); err == nil {
		t.Error("expected ambiguity error for shared name prefix")
	}
	if _, err := ResolveJourney(resolveCatalog(), "nothing"); err == nil {
		t.Error("expected error for unmatched journey")
	}
}

func TestFormatHabitLine(t *testing.T) {
	h := models.HabitWithDua{
		Dua:       models.Dua{ID: 7, Title: "Morning Protection", TitleArabic: "أذكار الصباح", Repetitions: 3},
		Source:    models.SourceJourney,
		JourneyID: "j1",
	}

	line := FormatHabitLine(h, false)
	if !strings.Contains(line, "[ ]") || !strings.Contains(line, "Morning Protection") {
		t.Errorf("unexpected line: %q", line)
	}
	if strings.Contains(line, "أذكار") {
		t.Error("arabic title shown despite showArabic=false")
	}
	if !strings.Contains(line, "x3") {
		t.Errorf("repetitions missing: %q", line)
	}
	if !strings.Contains(line, "(j1)") {
		t.Errorf("journey attribution missing: %q", line)
	}

	h.IsCompletedToday = true
	h.Source = models.SourceCustom
	line = FormatHabitLine(h, true)
	if !strings.Contains(line, "[x]") {
		t.Errorf("completed mark missing: %q", line)
	}
	if !strings.Contains(line, "أذكار") {
		t.Errorf("arabic title missing with showArabic=true: %q", line)
	}
	if !strings.Contains(line, "(custom)") {
		t.Errorf("custom attribution missing: %q", line)
	}
}
