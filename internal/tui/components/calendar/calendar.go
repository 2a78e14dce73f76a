package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mgurlek/hybit/internal/logicalday"
	"github.com/mgurlek/hybit/internal/models"
	"github.com/mgurlek/hybit/internal/streak"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	missStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	todayStyle = lipgloss.NewStyle().
			Underline(true)

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model shows one month of a habit's history.
type Model struct {
	viewport viewport.Model
	Habit    *models.Habit
	Summary  streak.Summary
	Marks    []streak.DayMark
	Today    logicalday.Date
	// Month is the first day of the displayed month.
	Month logicalday.Date
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

// MonthRange returns the first and last day of the month containing d.
func MonthRange(d logicalday.Date) (logicalday.Date, logicalday.Date) {
	first := logicalday.Date{Year: d.Year, Month: d.Month, Day: 1}
	last := logicalday.DateOf(time.Date(d.Year, d.Month+1, 0, 0, 0, 0, 0, time.UTC))
	return first, last
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Habit == nil {
		return "No habit selected."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// Set shows marks, which must cover exactly the month starting at month.
func (m *Model) Set(habit models.Habit, summary streak.Summary, month, today logicalday.Date, marks []streak.DayMark) {
	m.Habit = &habit
	m.Summary = summary
	m.Month = month
	m.Today = today
	m.Marks = marks
	m.Render()
}

func (m *Model) Render() {
	if m.Habit == nil {
		m.viewport.SetContent("No habit selected.")
		return
	}
	m.viewport.SetContent(RenderMonth(*m.Habit, m.Summary, m.Month, m.Today, m.Marks))
}

// RenderMonth draws a Monday-first month grid with completed days filled
// in the habit color.
func RenderMonth(habit models.Habit, summary streak.Summary, month, today logicalday.Date, marks []streak.DayMark) string {
	doneStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(habit.Color))

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  %s %d", habit.Name, time.Month(month.Month), month.Year)))
	b.WriteString("\n\n")
	b.WriteString(weekdayStyle.Render(" Mo Tu We Th Fr Sa Su"))
	b.WriteString("\n")

	// Monday is column 0.
	offset := (int(month.In(time.UTC).Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("   ", offset))
	col := offset
	for _, mark := range marks {
		cell := fmt.Sprintf("%2d", mark.Day.Day)
		switch {
		case mark.Done:
			cell = doneStyle.Render(cell)
		case mark.Day.After(today):
			cell = missStyle.Faint(true).Render(cell)
		default:
			cell = missStyle.Render(cell)
		}
		if mark.Day.Equal(today) {
			cell = todayStyle.Render(cell)
		}
		b.WriteString(" ")
		b.WriteString(cell)
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statStyle.Render(fmt.Sprintf("Current %d | Longest %d | Target %d (%d%%)",
		summary.Current, summary.Longest, summary.Target, summary.Percent)))
	b.WriteString("\n")
	return b.String()
}
