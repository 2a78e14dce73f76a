// Package widget builds the compact "today" snapshot shown by status bar and
// home screen widgets.
package widget

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mgurlek/hybit/internal/constants"
	"github.com/mgurlek/hybit/internal/tracker"
)

// Habit is one row of the widget.
type Habit struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	DoneToday bool   `json:"done_today"`
	Streak    int    `json:"streak"`
}

// Snapshot is what a widget renders until RefreshAfter.
type Snapshot struct {
	GeneratedAt  time.Time `json:"generated_at"`
	RefreshAfter time.Time `json:"refresh_after"`
	Habits       []Habit   `json:"habits"`
	// Total counts all active habits, including those not shown.
	Total int `json:"total"`
}

// Build keeps the first constants.WidgetMaxHabits statuses, which callers
// pass in creation order.
func Build(statuses []tracker.HabitStatus, now time.Time) Snapshot {
	s := Snapshot{
		GeneratedAt:  now,
		RefreshAfter: now.Add(constants.WidgetRefreshAfter),
		Habits:       []Habit{},
		Total:        len(statuses),
	}
	for _, st := range statuses {
		if len(s.Habits) == constants.WidgetMaxHabits {
			break
		}
		s.Habits = append(s.Habits, Habit{
			ID:        st.Habit.ID,
			Name:      st.Habit.Name,
			Color:     st.Habit.Color,
			DoneToday: st.Summary.DoneToday,
			Streak:    st.Summary.Current,
		})
	}
	return s
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	todoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Render draws the snapshot as a few terminal lines.
func Render(s Snapshot) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Today"))
	b.WriteString("\n")
	if len(s.Habits) == 0 {
		b.WriteString(headerStyle.Italic(true).Render("No habits"))
		b.WriteString("\n")
		return b.String()
	}
	for _, h := range s.Habits {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(h.Color)).Render("●")
		mark := todoStyle.Render("○")
		if h.DoneToday {
			mark = doneStyle.Render("✓")
		}
		fmt.Fprintf(&b, "%s %s %s %d\n", dot, h.Name, mark, h.Streak)
	}
	if more := s.Total - len(s.Habits); more > 0 {
		b.WriteString(headerStyle.Render(fmt.Sprintf("+%d more", more)))
		b.WriteString("\n")
	}
	return b.String()
}
