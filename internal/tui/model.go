package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mgurlek/hybit/internal/constants"
	"github.com/mgurlek/hybit/internal/logicalday"
	"github.com/mgurlek/hybit/internal/models"
	"github.com/mgurlek/hybit/internal/storage"
	"github.com/mgurlek/hybit/internal/tracker"
	"github.com/mgurlek/hybit/internal/tui/components/calendar"
	"github.com/mgurlek/hybit/internal/tui/components/habits"
	"github.com/mgurlek/hybit/internal/utils"
)

// refreshInterval re-reads habits so the list rolls over at the day cutoff.
const refreshInterval = time.Minute

type HabitFormModel struct {
	Name     string
	Color    string
	Target   string
	Reminder string
	Random   bool
}

type Model struct {
	tracker       *tracker.Tracker
	store         storage.Provider
	state         constants.SessionState
	keys          KeyMap
	help          help.Model
	habitsModel   habits.Model
	calendarModel calendar.Model
	form          *huh.Form
	habitForm     *HabitFormModel
	changes       <-chan struct{}
	detailID      string
	month         logicalday.Date
	pendingID     string // habit awaiting delete or purge confirmation
	status        string
	quitting      bool
	width         int
	height        int
}

type tickMsg time.Time

type storeChangedMsg struct{}

func NewModel(tr *tracker.Tracker, store storage.Provider) Model {
	m := Model{
		tracker:       tr,
		store:         store,
		state:         constants.StateHabits,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		habitsModel:   habits.New(nil, 0, 0),
		calendarModel: calendar.New(0, 0),
	}
	m.reload()
	return m
}

// WithChanges makes the model reload whenever ch receives.
func (m Model) WithChanges(ch <-chan struct{}) Model {
	m.changes = ch
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), waitForChange(m.changes))
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// reload re-reads every habit, deleted ones included so they can be
// restored.
func (m *Model) reload() {
	statuses, err := m.tracker.Statuses(true)
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	all, err := m.store.GetAllHabits(true, true)
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	for _, h := range all {
		if h.DeletedAt != nil {
			statuses = append(statuses, tracker.HabitStatus{Habit: h})
		}
	}
	m.habitsModel.SetHabits(statuses)
	if m.state == constants.StateDetail {
		m.loadDetail()
	}
}

func (m *Model) loadDetail() {
	habit, err := m.tracker.FindAnyHabit(m.detailID)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.state = constants.StateHabits
		return
	}
	st, err := m.tracker.Status(habit)
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	first, last := calendar.MonthRange(m.month)
	marks, err := m.tracker.History(habit.ID, first, last)
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.calendarModel.Set(habit, st.Summary, first, m.tracker.Today(), marks)
}

func (m *Model) newHabitForm() {
	m.habitForm = &HabitFormModel{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&m.habitForm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					if len(strings.TrimSpace(s)) > constants.MaxHabitNameLen {
						return fmt.Errorf("at most %d characters", constants.MaxHabitNameLen)
					}
					return nil
				}),
			huh.NewInput().
				Title("Color").
				Placeholder(constants.DefaultHabitColor).
				Value(&m.habitForm.Color).
				Validate(func(s string) error {
					if s != "" && !models.ValidColor(s) {
						return fmt.Errorf("use #RRGGBB")
					}
					return nil
				}),
			huh.NewInput().
				Title("Target streak (days)").
				Placeholder("default").
				Value(&m.habitForm.Target).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if n, err := strconv.Atoi(s); err != nil || n < 1 {
						return fmt.Errorf("enter a positive number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Reminder (HH:MM, optional)").
				Value(&m.habitForm.Reminder).
				Validate(func(s string) error {
					if s != "" && !utils.ValidateTimeFormat(s) {
						return fmt.Errorf("use HH:MM")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Surprise reminder too?").
				Value(&m.habitForm.Random),
		),
	)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateHabits:
		keys = append(keys, m.habitsModel.HelpKeys()[:3]...)
	case constants.StateDetail:
		keys = append(keys, m.keys.Back, m.keys.PrevMonth, m.keys.NextMonth, m.keys.Toggle)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Quit, m.keys.Help, m.keys.Back}
	var actions []key.Binding
	switch m.state {
	case constants.StateHabits:
		actions = m.habitsModel.HelpKeys()
	case constants.StateDetail:
		actions = []key.Binding{m.keys.PrevMonth, m.keys.NextMonth, m.keys.Toggle}
	}
	return [][]key.Binding{global, actions}
}
