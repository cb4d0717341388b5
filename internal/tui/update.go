package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/rizqapp/rizq/internal/constants"
	"github.com/rizqapp/rizq/internal/models"
	journeyscomp "github.com/rizqapp/rizq/internal/tui/components/journeys"
	todaycomp "github.com/rizqapp/rizq/internal/tui/components/today"
)

type catalogRefreshedMsg struct {
	catalog models.Catalog
	err     error
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := msg.Height - 6
		m.todayModel.SetSize(msg.Width-4, contentHeight)
		m.journeysModel.SetSize(msg.Width-4, contentHeight)
		m.statsModel.SetSize(msg.Width - 4)
		return m, nil

	case todaycomp.MarkDoneMsg:
		if _, err := m.tracker.MarkCompleted(context.Background(), msg.DuaID, msg.XP, m.day); err != nil {
			m.formError = err.Error()
		} else {
			m.formError = ""
			m.statusMsg = fmt.Sprintf("✓ +%d XP", msg.XP)
		}
		m.refreshViews()
		return m, nil

	case todaycomp.AddHabitMsg:
		if len(m.catalog.Duas) == 0 {
			m.formError = "catalog is empty, run 'rizq refresh' first"
			return m, nil
		}
		m.previousState = m.state
		m.state = constants.StateAddHabit
		m.habitForm = &HabitFormModel{Slot: string(models.SlotAnytime)}
		m.form = newHabitForm(m.catalog, m.habitForm)
		return m, m.form.Init()

	case journeyscomp.SubscribeMsg:
		if err := m.tracker.Subscribe(msg.ID); err != nil {
			m.formError = err.Error()
		} else {
			m.formError = ""
			m.statusMsg = "Subscribed"
		}
		m.refreshViews()
		return m, nil

	case journeyscomp.UnsubscribeMsg:
		if err := m.tracker.Unsubscribe(msg.ID); err != nil {
			m.formError = err.Error()
		} else {
			m.formError = ""
			m.statusMsg = "Unsubscribed"
		}
		m.refreshViews()
		return m, nil

	case catalogRefreshedMsg:
		if msg.err != nil {
			m.formError = msg.err.Error()
			return m, nil
		}
		m.catalog = msg.catalog
		m.formError = ""
		m.statusMsg = fmt.Sprintf("Catalog refreshed: %d duas, %d journeys", len(msg.catalog.Duas), len(msg.catalog.Journeys))
		m.refreshViews()
		return m, nil
	}

	if m.state == constants.StateAddHabit {
		return m.updateAddHabit(msg)
	}
	if m.state == constants.StateConfirmQuit {
		return m.updateConfirmQuit(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			m.previousState = m.state
			m.state = constants.StateConfirmQuit
			return m, nil
		case key.Matches(keyMsg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(keyMsg, m.keys.Tab):
			m.state = nextTab(m.state)
			m.statusMsg = ""
			return m, nil
		case key.Matches(keyMsg, m.keys.ShiftTab):
			m.state = prevTab(m.state)
			m.statusMsg = ""
			return m, nil
		case key.Matches(keyMsg, m.keys.Refresh):
			cache := m.cache
			return m, func() tea.Msg {
				cat, err := cache.Refresh(context.Background())
				return catalogRefreshedMsg{catalog: cat, err: err}
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateToday:
		m.todayModel, cmd = m.todayModel.Update(msg)
	case constants.StateJourneys:
		m.journeysModel, cmd = m.journeysModel.Update(msg)
	case constants.StateProgress:
		m.statsModel, cmd = m.statsModel.Update(msg)
	}
	return m, cmd
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		_, err := m.tracker.AddCustomHabit(m.habitForm.DuaID, models.TimeSlot(m.habitForm.Slot))
		if err != nil {
			m.formError = err.Error()
		} else {
			m.formError = ""
			m.statusMsg = "Habit added"
		}
		m.state = m.previousState
		m.form = nil
		m.habitForm = nil
		m.refreshViews()
		return m, nil
	case huh.StateAborted:
		m.state = m.previousState
		m.form = nil
		m.habitForm = nil
		return m, nil
	}

	return m, cmd
}

func (m Model) updateConfirmQuit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y", "Y", "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "n", "N", "esc":
			m.state = m.previousState
			return m, nil
		}
	}
	return m, nil
}

func nextTab(state constants.SessionState) constants.SessionState {
	switch state {
	case constants.StateToday:
		return constants.StateJourneys
	case constants.StateJourneys:
		return constants.StateProgress
	default:
		return constants.StateToday
	}
}

func prevTab(state constants.SessionState) constants.SessionState {
	switch state {
	case constants.StateToday:
		return constants.StateProgress
	case constants.StateJourneys:
		return constants.StateToday
	default:
		return constants.StateJourneys
	}
}
