package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mgurlek/hybit/internal/constants"
)

// Habit represents a daily practice whose completions are tracked per logical day
type Habit struct {
	ID               string     `json:"id" yaml:"id"`
	Name             string     `json:"name" yaml:"name"`
	Color            string     `json:"color" yaml:"color"`
	Icon             string     `json:"icon" yaml:"icon"`
	TargetStreakDays int        `json:"target_streak_days" yaml:"target_streak_days"`
	ReminderTime     string     `json:"reminder_time,omitempty" yaml:"reminder_time,omitempty"` // HH:MM format
	RandomReminders  bool       `json:"random_reminders" yaml:"random_reminders"`
	CreatedAt        time.Time  `json:"created_at" yaml:"created_at"`
	ArchivedAt       *time.Time `json:"archived_at,omitempty" yaml:"archived_at,omitempty"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty" yaml:"deleted_at,omitempty"`
}

// Completion marks a habit as done at an instant. Day holds the logical date
// the instant belonged to when it was written.
type Completion struct {
	ID        string    `json:"id" yaml:"id"`
	HabitID   string    `json:"habit_id" yaml:"habit_id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Day       string    `json:"day" yaml:"day"` // YYYY-MM-DD format
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// IsActive reports whether the habit is neither archived nor deleted.
func (h Habit) IsActive() bool {
	return h.ArchivedAt == nil && h.DeletedAt == nil
}

// ApplyDefaults fills unset presentation fields.
func (h *Habit) ApplyDefaults(defaultTarget int) {
	h.Name = strings.TrimSpace(h.Name)
	if h.Color == "" {
		h.Color = constants.DefaultHabitColor
	}
	if h.Icon == "" {
		h.Icon = constants.DefaultHabitIcon
	}
	if h.TargetStreakDays == 0 {
		h.TargetStreakDays = defaultTarget
	}
}

func (h *Habit) Validate() error {
	name := strings.TrimSpace(h.Name)
	if name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if len(name) > constants.MaxHabitNameLen {
		return fmt.Errorf("habit name cannot be longer than %d characters", constants.MaxHabitNameLen)
	}

	if !ValidColor(h.Color) {
		return fmt.Errorf("invalid color %q (expected #RRGGBB)", h.Color)
	}

	if h.TargetStreakDays < 1 {
		return fmt.Errorf("target streak must be at least 1 day")
	}

	if h.ReminderTime != "" {
		if _, err := time.Parse(constants.TimeFormat, h.ReminderTime); err != nil {
			return fmt.Errorf("invalid reminder time (expected HH:MM): %w", err)
		}
	}

	return nil
}

// ValidColor reports whether s is a #RRGGBB hex color.
func ValidColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}
