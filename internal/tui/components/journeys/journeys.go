package journeys

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rizqapp/rizq/internal/models"
)

type SubscribeMsg struct {
	ID string
}

type UnsubscribeMsg struct {
	ID string
}

type Item struct {
	Journey    models.JourneyWithDuas
	Subscribed bool
}

func (i Item) Title() string {
	title := i.Journey.Name
	if i.Journey.Emoji != "" {
		title = i.Journey.Emoji + " " + title
	}
	if i.Subscribed {
		title = "★ " + title
	}
	return title
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%d duas · %d XP/day · ~%d min", len(i.Journey.Duas), i.Journey.DailyXP, i.Journey.DurationMin)
	if i.Journey.IsPremium {
		desc += " · premium"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Journey.Name }

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("s", "enter"),
			key.WithHelp("s", "subscribe/unsubscribe"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(journeys []models.JourneyWithDuas, subscribed map[string]bool, width, height int) Model {
	l := list.New(toItems(journeys, subscribed), list.NewDefaultDelegate(), width, height)
	l.Title = "Journeys"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func (m *Model) SetJourneys(journeys []models.JourneyWithDuas, subscribed map[string]bool) {
	m.list.SetItems(toItems(journeys, subscribed))
}

func toItems(journeys []models.JourneyWithDuas, subscribed map[string]bool) []list.Item {
	items := make([]list.Item, len(journeys))
	for i, j := range journeys {
		items[i] = Item{
			Journey:    j,
			Subscribed: subscribed[j.ID],
		}
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
		if key.Matches(msg, m.keys.Toggle) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				if i.Subscribed {
					return m, func() tea.Msg { return UnsubscribeMsg{ID: i.Journey.ID} }
				}
				return m, func() tea.Msg { return SubscribeMsg{ID: i.Journey.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No journeys in the catalog.\n  Run 'rizq refresh' to fetch the catalog."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
