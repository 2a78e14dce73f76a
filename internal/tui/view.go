package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mgurlek/hybit/internal/constants"
	"github.com/mgurlek/hybit/internal/logicalday"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case constants.StateDetail:
		content = docStyle.Render(m.calendarModel.View())
	case constants.StateAddHabit:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirm("Delete this habit? It can be restored later.")
	case constants.StateConfirmPurge:
		content = m.viewConfirm("Permanently remove this habit and its whole history?")
	}

	parts := []string{m.viewHeader(), content}
	if m.status != "" {
		style := subtleStyle
		if strings.HasPrefix(m.status, "Error") {
			style = warningStyle
		}
		parts = append(parts, style.Render(m.status))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewHeader() string {
	today := m.tracker.Today()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render(constants.AppName),
		subtleStyle.Render(fmt.Sprintf("%s %s", today.In(time.UTC).Weekday(), today)),
	)
}

func (m Model) viewConfirm(question string) string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(question),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

// shiftMonth returns the first day of the month n months away from d.
func shiftMonth(d logicalday.Date, n int) logicalday.Date {
	return logicalday.DateOf(time.Date(d.Year, d.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC))
}
