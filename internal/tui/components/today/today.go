package today

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rizqapp/rizq/internal/models"
)

type MarkDoneMsg struct {
	DuaID int
	XP    int
}

type AddHabitMsg struct{}

type Item struct {
	Habit models.HabitWithDua
}

func (i Item) Title() string {
	title := i.Habit.Dua.Title
	if i.Habit.IsCompletedToday {
		title = "✓ " + title
	} else {
		title = "○ " + title
	}
	if i.Habit.Dua.Repetitions > 1 {
		title += fmt.Sprintf(" x%d", i.Habit.Dua.Repetitions)
	}
	return title
}

func (i Item) Description() string {
	slot := slotLabel(i.Habit.TimeSlot)
	if i.Habit.Source == models.SourceCustom {
		return fmt.Sprintf("%s · custom · +%d XP", slot, i.Habit.Dua.XPValue)
	}
	return fmt.Sprintf("%s · %s · +%d XP", slot, i.Habit.JourneyID, i.Habit.Dua.XPValue)
}

func (i Item) FilterValue() string { return i.Habit.Dua.Title }

func slotLabel(slot models.TimeSlot) string {
	switch slot {
	case models.SlotMorning:
		return "morning"
	case models.SlotEvening:
		return "evening"
	default:
		return "anytime"
	}
}

type KeyMap struct {
	Mark key.Binding
	Add  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Mark: key.NewBinding(
			key.WithKeys("m", "enter"),
			key.WithHelp("m", "mark done"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add habit"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

// New builds the today list. Habits are expected in slot-grouped display
// order; the component does not reorder them.
func New(habits []models.HabitWithDua, width, height int) Model {
	l := list.New(toItems(habits), list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Mark, keys.Add}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Mark, keys.Add}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func (m *Model) SetHabits(habits []models.HabitWithDua) {
	m.list.SetItems(toItems(habits))
}

func toItems(habits []models.HabitWithDua) []list.Item {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = Item{Habit: h}
	}
	return items
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Mark):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.Habit.IsCompletedToday {
					return m, func() tea.Msg {
						return MarkDoneMsg{DuaID: i.Habit.Dua.ID, XP: i.Habit.Dua.XPValue}
					}
				}
			}
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits for today.\n  Subscribe to a journey in the Journeys tab, or press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
