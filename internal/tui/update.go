package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mgurlek/hybit/internal/constants"
	"github.com/mgurlek/hybit/internal/tracker"
	"github.com/mgurlek/hybit/internal/tui/components/habits"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habitsModel.SetSize(msg.Width-4, msg.Height-6)
		m.calendarModel.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tickMsg:
		m.reload()
		return m, tick()

	case storeChangedMsg:
		m.reload()
		return m, waitForChange(m.changes)

	case habits.AddHabitMsg:
		m.newHabitForm()
		m.state = constants.StateAddHabit
		return m, m.form.Init()

	case habits.ToggleHabitMsg:
		m.toggle(msg.ID)
		return m, nil

	case habits.ShowDetailMsg:
		m.detailID = msg.ID
		m.month = m.tracker.Today()
		m.state = constants.StateDetail
		m.loadDetail()
		return m, nil

	case habits.ArchiveHabitMsg:
		var err error
		if msg.Archived {
			err = m.tracker.UnarchiveHabit(msg.ID)
		} else {
			err = m.tracker.ArchiveHabit(msg.ID)
		}
		m.afterAction(err, "")
		return m, nil

	case habits.DeleteHabitMsg:
		m.pendingID = msg.ID
		m.state = constants.StateConfirmDelete
		return m, nil

	case habits.RestoreHabitMsg:
		m.afterAction(m.tracker.RestoreHabit(msg.ID), "Habit restored")
		return m, nil

	case habits.PurgeHabitMsg:
		m.pendingID = msg.ID
		m.state = constants.StateConfirmPurge
		return m, nil
	}

	switch m.state {
	case constants.StateAddHabit:
		return m.updateForm(msg)
	case constants.StateConfirmDelete, constants.StateConfirmPurge:
		return m.updateConfirm(msg)
	case constants.StateDetail:
		return m.updateDetail(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		m.status = ""
	}

	var cmd tea.Cmd
	m.habitsModel, cmd = m.habitsModel.Update(msg)
	return m, cmd
}

func (m *Model) toggle(id string) {
	result, err := m.tracker.ToggleToday(id)
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.status = ""
	if result == tracker.Added {
		m.status = "Nice! Marked done for today"
	}
	m.reload()
}

func (m *Model) afterAction(err error, ok string) {
	if err != nil {
		m.status = "Error: " + err.Error()
	} else {
		m.status = ok
	}
	m.reload()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = constants.StateHabits
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		target, _ := strconv.Atoi(strings.TrimSpace(m.habitForm.Target))
		habit, err := m.tracker.CreateHabit(tracker.NewHabit{
			Name:             m.habitForm.Name,
			Color:            strings.TrimSpace(m.habitForm.Color),
			TargetStreakDays: target,
			ReminderTime:     strings.TrimSpace(m.habitForm.Reminder),
			RandomReminders:  m.habitForm.Random,
		})
		if err != nil {
			m.status = "Error: " + err.Error()
		} else {
			m.status = "Added " + habit.Name
		}
		m.state = constants.StateHabits
		m.reload()
	case huh.StateAborted:
		m.state = constants.StateHabits
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		var err error
		if m.state == constants.StateConfirmPurge {
			err = m.tracker.PurgeHabit(m.pendingID)
		} else {
			err = m.tracker.DeleteHabit(m.pendingID)
		}
		m.pendingID = ""
		m.state = constants.StateHabits
		m.afterAction(err, "")
	case key.Matches(keyMsg, m.keys.Cancel):
		m.pendingID = ""
		m.state = constants.StateHabits
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(keyMsg, m.keys.Back):
			m.state = constants.StateHabits
			return m, nil
		case key.Matches(keyMsg, m.keys.PrevMonth):
			m.month = shiftMonth(m.month, -1)
			m.loadDetail()
			return m, nil
		case key.Matches(keyMsg, m.keys.NextMonth):
			if next := shiftMonth(m.month, 1); !next.After(m.tracker.Today()) {
				m.month = next
				m.loadDetail()
			}
			return m, nil
		case key.Matches(keyMsg, m.keys.Toggle):
			m.toggle(m.detailID)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.calendarModel, cmd = m.calendarModel.Update(msg)
	return m, cmd
}
