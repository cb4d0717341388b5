package stats

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Summary holds the numbers the progress tab renders.
type Summary struct {
	Day        string
	Completed  int
	Total      int
	Percentage int
	EarnedXP   int
	TotalXP    int
	Streak     int
	Level      int
	LevelInto  int
	LevelSpan  int
	LifetimeXP int
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type Model struct {
	summary  Summary
	dayBar   progress.Model
	levelBar progress.Model
	width    int
}

func New(summary Summary, width int) Model {
	dayBar := progress.New(progress.WithDefaultGradient())
	levelBar := progress.New(progress.WithDefaultGradient())
	if width > 0 {
		dayBar.Width = width - 4
		levelBar.Width = width - 4
	}
	return Model{
		summary:  summary,
		dayBar:   dayBar,
		levelBar: levelBar,
		width:    width,
	}
}

func (m *Model) SetSummary(summary Summary) {
	m.summary = summary
}

func (m *Model) SetSize(width int) {
	m.width = width
	if width > 4 {
		m.dayBar.Width = width - 4
		m.levelBar.Width = width - 4
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	s := m.summary

	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("Today (%s)", s.Day)) + "\n")
	b.WriteString(fmt.Sprintf("  %d/%d habits complete (%d%%), %d/%d XP\n",
		s.Completed, s.Total, s.Percentage, s.EarnedXP, s.TotalXP))

	dayRatio := 0.0
	if s.Total > 0 {
		dayRatio = float64(s.Completed) / float64(s.Total)
	}
	b.WriteString("  " + m.dayBar.ViewAs(dayRatio) + "\n\n")

	b.WriteString(headingStyle.Render("Streak") + "\n")
	b.WriteString(fmt.Sprintf("  %d day(s)\n\n", s.Streak))

	b.WriteString(headingStyle.Render(fmt.Sprintf("Level %d", s.Level)) + "\n")
	b.WriteString(fmt.Sprintf("  %d/%d XP into this level, %d lifetime XP\n",
		s.LevelInto, s.LevelSpan, s.LifetimeXP))

	levelRatio := 0.0
	if s.LevelSpan > 0 {
		levelRatio = float64(s.LevelInto) / float64(s.LevelSpan)
	}
	b.WriteString("  " + m.levelBar.ViewAs(levelRatio) + "\n\n")

	b.WriteString(labelStyle.Render("  Consistency beats intensity."))
	return b.String()
}
