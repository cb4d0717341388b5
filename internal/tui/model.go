package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/rizqapp/rizq/internal/catalog"
	"github.com/rizqapp/rizq/internal/constants"
	"github.com/rizqapp/rizq/internal/habits"
	"github.com/rizqapp/rizq/internal/models"
	"github.com/rizqapp/rizq/internal/storage"
	"github.com/rizqapp/rizq/internal/tracker"
	journeyscomp "github.com/rizqapp/rizq/internal/tui/components/journeys"
	"github.com/rizqapp/rizq/internal/tui/components/stats"
	todaycomp "github.com/rizqapp/rizq/internal/tui/components/today"
	"github.com/rizqapp/rizq/internal/utils"
)

// HabitFormModel backs the add-habit form.
type HabitFormModel struct {
	DuaID int
	Slot  string
}

type Model struct {
	store   storage.Provider
	tracker *tracker.Tracker
	cache   *catalog.Cache

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model

	catalog models.Catalog
	day     string

	todayModel    todaycomp.Model
	journeysModel journeyscomp.Model
	statsModel    stats.Model

	form      *huh.Form
	habitForm *HabitFormModel

	statusMsg string
	formError string
	quitting  bool
	width     int
	height    int
}

func NewModel(store storage.Provider, trk *tracker.Tracker, cache *catalog.Cache) Model {
	m := Model{
		store:   store,
		tracker: trk,
		cache:   cache,
		state:   constants.StateToday,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}

	cat, err := cache.Get(context.Background())
	if err != nil {
		m.formError = err.Error()
	}
	m.catalog = cat

	settings, err := store.GetSettings()
	if err == nil {
		m.day, _ = utils.TodayFromSettings(settings)
	}
	if m.day == "" {
		m.day, _ = utils.TodayInTimezone("Local")
	}

	todays, journeys, subscribed, summary := m.buildViews()
	m.todayModel = todaycomp.New(todays, 0, 0)
	m.journeysModel = journeyscomp.New(journeys, subscribed, 0, 0)
	m.statsModel = stats.New(summary, 0)

	return m
}

// buildViews derives all tab contents from the current state snapshot.
func (m *Model) buildViews() (todays []models.HabitWithDua, journeys []models.JourneyWithDuas, subscribed map[string]bool, summary stats.Summary) {
	subscribed = make(map[string]bool)

	state, err := m.tracker.State()
	if err != nil {
		m.formError = err.Error()
		return nil, m.catalog.Journeys, subscribed, stats.Summary{Day: m.day}
	}

	for _, id := range state.ActiveJourneyIDs {
		subscribed[id] = true
	}

	todays = habits.ComputeTodaysHabits(m.catalog, state, m.day)
	grouped := habits.GroupByTimeSlot(todays)
	ordered := append(append(append([]models.HabitWithDua{}, grouped.Morning...), grouped.Anytime...), grouped.Evening...)

	p := habits.ComputeProgress(todays)
	xp := habits.LifetimeXP(state.HabitCompletions, m.catalog)
	into, span := habits.XPIntoLevel(xp)
	summary = stats.Summary{
		Day:        m.day,
		Completed:  p.Completed,
		Total:      p.Total,
		Percentage: p.Percentage,
		EarnedXP:   p.EarnedXP,
		TotalXP:    p.TotalXP,
		Streak:     habits.CalculateStreak(state.HabitCompletions, m.day),
		Level:      habits.LevelForXP(xp),
		LevelInto:  into,
		LevelSpan:  span,
		LifetimeXP: xp,
	}

	return ordered, m.catalog.Journeys, subscribed, summary
}

// refreshViews pushes a fresh snapshot into every component.
func (m *Model) refreshViews() {
	todays, journeys, subscribed, summary := m.buildViews()
	m.todayModel.SetHabits(todays)
	m.journeysModel.SetJourneys(journeys, subscribed)
	m.statsModel.SetSummary(summary)
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Refresh, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}
	return [][]key.Binding{global, navigation}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func newHabitForm(cat models.Catalog, fm *HabitFormModel) *huh.Form {
	var options []huh.Option[int]
	for _, d := range cat.Duas {
		options = append(options, huh.NewOption(d.Title, d.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Dua").
				Options(options...).
				Value(&fm.DuaID),
			huh.NewSelect[string]().
				Title("Time slot").
				Options(
					huh.NewOption("Morning", string(models.SlotMorning)),
					huh.NewOption("Anytime", string(models.SlotAnytime)),
					huh.NewOption("Evening", string(models.SlotEvening)),
				).
				Value(&fm.Slot),
		),
	)
}
