package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rizqapp/rizq/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateToday:
		content = docStyle.Render(m.todayModel.View())
	case constants.StateJourneys:
		content = docStyle.Render(m.journeysModel.View())
	case constants.StateProgress:
		content = docStyle.Render(m.statsModel.View())
	case constants.StateAddHabit:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmQuit:
		content = m.viewConfirmQuit()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	tabStates := []constants.SessionState{
		constants.StateToday,
		constants.StateJourneys,
		constants.StateProgress,
	}
	tabTitles := []string{"Today", "Journeys", "Progress"}

	var tabs []string
	for i, title := range tabTitles {
		if m.state == tabStates[i] {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.formError != "" {
		return errorStyle.Render("  " + m.formError)
	}
	if m.statusMsg != "" {
		return statusStyle.Render("  " + m.statusMsg)
	}
	return ""
}

func (m Model) viewConfirmQuit() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Quit rizq?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
