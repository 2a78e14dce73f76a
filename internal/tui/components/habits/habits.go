package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mgurlek/hybit/internal/models"
	"github.com/mgurlek/hybit/internal/tracker"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type ShowDetailMsg struct {
	ID string
}

type ArchiveHabitMsg struct {
	ID       string
	Archived bool
}

type DeleteHabitMsg struct {
	ID string
}

type RestoreHabitMsg struct {
	ID string
}

type PurgeHabitMsg struct {
	ID string
}

type Item struct {
	Status tracker.HabitStatus
}

func (i Item) deleted() bool { return i.Status.Habit.DeletedAt != nil }

func (i Item) Title() string {
	h := i.Status.Habit
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(h.Color)).Render("●")
	switch {
	case i.deleted():
		return dot + " [DELETED] " + h.Name
	case h.ArchivedAt != nil:
		return dot + " [ARCHIVED] " + h.Name
	case i.Status.Summary.DoneToday:
		return dot + " ✓ " + h.Name
	default:
		return dot + " ○ " + h.Name
	}
}

func (i Item) Description() string {
	if i.deleted() {
		return "can restore with 'r'"
	}
	s := i.Status.Summary
	desc := fmt.Sprintf("🔥 %d/%d days | best %d", s.Current, s.Target, s.Longest)
	if s.Reached {
		desc += " | target reached"
	}
	if i.Status.Habit.ReminderTime != "" {
		desc += " | ⏰ " + i.Status.Habit.ReminderTime
	}
	return desc
}

func (i Item) FilterValue() string { return i.Status.Habit.Name }

type KeyMap struct {
	Add     key.Binding
	Toggle  key.Binding
	Detail  key.Binding
	Archive key.Binding
	Delete  key.Binding
	Restore key.Binding
	Purge   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "m"),
			key.WithHelp("space", "done/undo"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "history"),
		),
		Archive: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "archive"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
		Purge: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "purge"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(statuses []tracker.HabitStatus, width, height int) Model {
	l := list.New(items(statuses), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Detail}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Detail, keys.Archive, keys.Delete, keys.Restore, keys.Purge}
	}

	return Model{list: l, keys: keys}
}

func items(statuses []tracker.HabitStatus) []list.Item {
	out := make([]list.Item, len(statuses))
	for i, st := range statuses {
		out[i] = Item{Status: st}
	}
	return out
}

func (m *Model) SetHabits(statuses []tracker.HabitStatus) {
	m.list.SetItems(items(statuses))
}

// Selected returns the highlighted habit.
func (m Model) Selected() (models.Habit, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.Habit{}, false
	}
	return i.Status.Habit, true
}

// HelpKeys lists the bindings the list acts on.
func (m Model) HelpKeys() []key.Binding {
	return []key.Binding{m.keys.Add, m.keys.Toggle, m.keys.Detail, m.keys.Archive, m.keys.Delete, m.keys.Restore, m.keys.Purge}
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
		if key.Matches(msg, m.keys.Add) {
			return m, func() tea.Msg { return AddHabitMsg{} }
		}
		i, ok := m.list.SelectedItem().(Item)
		if !ok {
			break
		}
		h := i.Status.Habit
		switch {
		case key.Matches(msg, m.keys.Toggle):
			if h.IsActive() {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: h.ID} }
			}
		case key.Matches(msg, m.keys.Detail):
			return m, func() tea.Msg { return ShowDetailMsg{ID: h.ID} }
		case key.Matches(msg, m.keys.Archive):
			if !i.deleted() {
				return m, func() tea.Msg { return ArchiveHabitMsg{ID: h.ID, Archived: h.ArchivedAt != nil} }
			}
		case key.Matches(msg, m.keys.Delete):
			if !i.deleted() {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: h.ID} }
			}
		case key.Matches(msg, m.keys.Restore):
			if i.deleted() {
				return m, func() tea.Msg { return RestoreHabitMsg{ID: h.ID} }
			}
		case key.Matches(msg, m.keys.Purge):
			return m, func() tea.Msg { return PurgeHabitMsg{ID: h.ID} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
