// Package tracker is the application service shared by the CLI, the TUI and
// the widget. All completion writes go through Tracker.Toggle.
package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mgurlek/hybit/internal/logger"
	"github.com/mgurlek/hybit/internal/logicalday"
	"github.com/mgurlek/hybit/internal/models"
	"github.com/mgurlek/hybit/internal/storage"
	"github.com/mgurlek/hybit/internal/streak"
)

var (
	// ErrHabitInactive is returned when toggling an archived or deleted habit.
	ErrHabitInactive = errors.New("habit is archived or deleted")
	// ErrFutureDay is returned when a completion would land on a logical day
	// after today.
	ErrFutureDay = errors.New("cannot complete a habit for a future day")
)

// ToggleResult tells whether Toggle added or removed a completion.
type ToggleResult int

const (
	Added ToggleResult = iota + 1
	Removed
)

func (r ToggleResult) String() string {
	switch r {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// NewHabit holds the user supplied fields of a habit being created.
type NewHabit struct {
	Name             string
	Color            string
	Icon             string
	TargetStreakDays int
	ReminderTime     string
	RandomReminders  bool
}

// HabitStatus is a habit with its streak state.
type HabitStatus struct {
	Habit    models.Habit
	Summary  streak.Summary
	LastDone *time.Time
}

// Tracker is the habit service shared by the CLI, the TUI and the widget.
type Tracker struct {
	store storage.Provider
	cal   logicalday.Calendar
	now   func() time.Time
}

// New returns a Tracker over a loaded store.
func New(store storage.Provider, cal logicalday.Calendar) *Tracker {
	return &Tracker{store: store, cal: cal, now: time.Now}
}

// WithClock replaces the time source.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// Calendar returns the logical-day calendar the tracker works in.
func (t *Tracker) Calendar() logicalday.Calendar { return t.cal }

// Now returns the current instant in the calendar's location.
func (t *Tracker) Now() time.Time {
	loc := t.cal.Location
	if loc == nil {
		loc = time.Local
	}
	return t.now().In(loc)
}

// Today returns the current logical day.
func (t *Tracker) Today() logicalday.Date {
	return t.cal.LogicalDate(t.now())
}

// CreateHabit validates and stores a new habit. Unset fields take the
// defaults from settings.
func (t *Tracker) CreateHabit(in NewHabit) (models.Habit, error) {
	settings, err := t.store.GetSettings()
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to load settings: %w", err)
	}

	habit := models.Habit{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Color:            strings.ToUpper(in.Color),
		Icon:             in.Icon,
		TargetStreakDays: in.TargetStreakDays,
		ReminderTime:     in.ReminderTime,
		RandomReminders:  in.RandomReminders,
		CreatedAt:        t.now().UTC(),
	}
	habit.ApplyDefaults(settings.DefaultTargetStreak)
	if err := habit.Validate(); err != nil {
		return models.Habit{}, err
	}
	if err := t.checkNameFree(habit.Name, ""); err != nil {
		return models.Habit{}, err
	}

	if err := t.store.AddHabit(habit); err != nil {
		return models.Habit{}, err
	}
	logger.Info("Habit created", "id", habit.ID, "name", habit.Name)
	return habit, nil
}

// UpdateHabit validates and saves changes to an existing habit.
func (t *Tracker) UpdateHabit(habit models.Habit) error {
	habit.Name = strings.TrimSpace(habit.Name)
	habit.Color = strings.ToUpper(habit.Color)
	if err := habit.Validate(); err != nil {
		return err
	}
	if err := t.checkNameFree(habit.Name, habit.ID); err != nil {
		return err
	}
	if err := t.store.UpdateHabit(habit); err != nil {
		return err
	}
	logger.Debug("Habit updated", "id", habit.ID)
	return nil
}

func (t *Tracker) checkNameFree(name, selfID string) error {
	existing, err := t.store.GetHabitByName(name)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return fmt.Errorf("%w: %q", storage.ErrHabitExists, name)
	}
	return nil
}

// habitAnyState looks a habit up by ID including deleted ones, which
// GetHabit hides.
func (t *Tracker) habitAnyState(id string) (models.Habit, error) {
	habit, err := t.store.GetHabit(id)
	if !errors.Is(err, storage.ErrNotFound) {
		return habit, err
	}
	all, err := t.store.GetAllHabits(true, true)
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range all {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
}

// FindHabit resolves a habit by name, falling back to its ID.
func (t *Tracker) FindHabit(nameOrID string) (models.Habit, error) {
	habit, err := t.store.GetHabitByName(strings.TrimSpace(nameOrID))
	if err == nil {
		return habit, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.Habit{}, err
	}
	habit, err = t.store.GetHabit(nameOrID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Habit{}, fmt.Errorf("habit %q: %w", nameOrID, storage.ErrNotFound)
	}
	return habit, err
}

// FindAnyHabit is FindHabit over archived and deleted habits too. A live
// habit wins over a deleted one with the same name.
func (t *Tracker) FindAnyHabit(nameOrID string) (models.Habit, error) {
	if habit, err := t.FindHabit(nameOrID); err == nil || !errors.Is(err, storage.ErrNotFound) {
		return habit, err
	}
	all, err := t.store.GetAllHabits(true, true)
	if err != nil {
		return models.Habit{}, err
	}
	name := strings.TrimSpace(nameOrID)
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].ID == nameOrID || strings.EqualFold(all[i].Name, name) {
			return all[i], nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q: %w", nameOrID, storage.ErrNotFound)
}

// Toggle completes the habit for the logical day of at, or undoes that
// day's completion if one exists.
func (t *Tracker) Toggle(habitID string, at time.Time) (ToggleResult, error) {
	habit, err := t.habitAnyState(habitID)
	if err != nil {
		return 0, err
	}
	if !habit.IsActive() {
		return 0, fmt.Errorf("%w: %s", ErrHabitInactive, habit.Name)
	}

	day := t.cal.LogicalDate(at)
	if day.After(t.Today()) {
		return 0, fmt.Errorf("%w: %s", ErrFutureDay, day)
	}

	completions, err := t.store.GetCompletionsForHabit(habitID)
	if err != nil {
		return 0, err
	}
	// Match on the timestamp rather than the stored day so a changed cutoff
	// or timezone agrees with the streak calculation.
	for _, c := range completions {
		if t.cal.LogicalDate(c.Timestamp) == day {
			if err := t.store.DeleteCompletion(c.ID); err != nil {
				return 0, err
			}
			logger.Debug("Completion removed", "habit", habit.Name, "day", day)
			return Removed, nil
		}
	}
	if err := t.rekeyStale(habit, day); err != nil {
		return 0, err
	}

	c := models.Completion{
		ID:        uuid.New().String(),
		HabitID:   habitID,
		Timestamp: at.UTC(),
		Day:       day.String(),
		CreatedAt: t.now().UTC(),
	}
	if err := t.store.AddCompletion(c); err != nil {
		return 0, err
	}
	logger.Debug("Completion added", "habit", habit.Name, "day", day)
	return Added, nil
}

// rekeyStale frees the (habit, day) key when a completion written under an
// older cutoff or timezone still holds it although its timestamp now falls on
// another logical day. The row moves to that day, or is dropped when that day
// already has a completion of its own.
func (t *Tracker) rekeyStale(habit models.Habit, day logicalday.Date) error {
	stale, err := t.store.GetCompletionForDay(habit.ID, day.String())
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	actual := t.cal.LogicalDate(stale.Timestamp).String()
	err = t.store.UpdateCompletionDay(stale.ID, actual)
	if errors.Is(err, storage.ErrDuplicateCompletion) {
		err = t.store.DeleteCompletion(stale.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to re-key completion %s: %w", stale.ID, err)
	}
	logger.Debug("Completion re-keyed", "habit", habit.Name, "from", stale.Day, "to", actual)
	return nil
}

// ToggleToday toggles the habit for the current logical day.
func (t *Tracker) ToggleToday(habitID string) (ToggleResult, error) {
	return t.Toggle(habitID, t.now())
}

// ToggleDay toggles the habit for a given logical day. Past days are
// recorded at the midpoint of the day.
func (t *Tracker) ToggleDay(habitID string, day logicalday.Date) (ToggleResult, error) {
	if day == t.Today() {
		return t.ToggleToday(habitID)
	}
	start, end := t.cal.Bounds(day)
	return t.Toggle(habitID, start.Add(end.Sub(start)/2))
}

func timestamps(completions []models.Completion) []time.Time {
	out := make([]time.Time, len(completions))
	for i, c := range completions {
		out[i] = c.Timestamp
	}
	return out
}

// Status returns the streak state of one habit.
func (t *Tracker) Status(habit models.Habit) (HabitStatus, error) {
	completions, err := t.store.GetCompletionsForHabit(habit.ID)
	if err != nil {
		return HabitStatus{}, err
	}
	return t.status(habit, completions), nil
}

func (t *Tracker) status(habit models.Habit, completions []models.Completion) HabitStatus {
	st := HabitStatus{
		Habit:   habit,
		Summary: streak.Summarize(timestamps(completions), t.now(), habit.TargetStreakDays, t.cal),
	}
	for _, c := range completions {
		if st.LastDone == nil || c.Timestamp.After(*st.LastDone) {
			ts := c.Timestamp
			st.LastDone = &ts
		}
	}
	return st
}

// Statuses returns the state of all non-deleted habits in creation order.
func (t *Tracker) Statuses(includeArchived bool) ([]HabitStatus, error) {
	habits, err := t.store.GetAllHabits(includeArchived, false)
	if err != nil {
		return nil, err
	}
	all, err := t.store.GetAllCompletions()
	if err != nil {
		return nil, err
	}
	byHabit := make(map[string][]models.Completion)
	for _, c := range all {
		byHabit[c.HabitID] = append(byHabit[c.HabitID], c)
	}

	out := make([]HabitStatus, 0, len(habits))
	for _, h := range habits {
		out = append(out, t.status(h, byHabit[h.ID]))
	}
	return out, nil
}

// History returns per-day marks for a habit between from and to inclusive.
func (t *Tracker) History(habitID string, from, to logicalday.Date) ([]streak.DayMark, error) {
	completions, err := t.store.GetCompletionsForHabit(habitID)
	if err != nil {
		return nil, err
	}
	return streak.History(timestamps(completions), from, to, t.cal), nil
}

// DeleteHabit soft deletes a habit. Its completions are kept for RestoreHabit.
func (t *Tracker) DeleteHabit(id string) error {
	if err := t.store.DeleteHabit(id); err != nil {
		return err
	}
	logger.Info("Habit deleted", "id", id)
	return nil
}

// RestoreHabit undoes DeleteHabit. It fails if another live habit took the
// name in the meantime.
func (t *Tracker) RestoreHabit(id string) error {
	habit, err := t.habitAnyState(id)
	if err != nil {
		return err
	}
	if err := t.checkNameFree(habit.Name, habit.ID); err != nil {
		return err
	}
	if err := t.store.RestoreHabit(id); err != nil {
		return err
	}
	logger.Info("Habit restored", "id", id)
	return nil
}

// ArchiveHabit hides a habit from the daily list while keeping its history.
func (t *Tracker) ArchiveHabit(id string) error {
	return t.store.ArchiveHabit(id)
}

// UnarchiveHabit undoes ArchiveHabit.
func (t *Tracker) UnarchiveHabit(id string) error {
	return t.store.UnarchiveHabit(id)
}

// PurgeHabit permanently removes a habit and its completions.
func (t *Tracker) PurgeHabit(id string) error {
	if err := t.store.PurgeHabit(id); err != nil {
		return err
	}
	logger.Info("Habit purged", "id", id)
	return nil
}
