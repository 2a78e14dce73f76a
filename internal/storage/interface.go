package storage

import (
	"errors"

	"github.com/mgurlek/hybit/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrHabitExists is returned when a non-deleted habit already uses the name.
	ErrHabitExists = errors.New("a habit with this name already exists")
	// ErrUsernameTaken is returned when a profile username is already in use.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrDuplicateCompletion is returned when a habit already has a completion
	// on the logical day.
	ErrDuplicateCompletion = errors.New("habit already completed for this day")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	// GetAllHabits returns habits ordered by creation time.
	GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	ArchiveHabit(id string) error
	UnarchiveHabit(id string) error
	DeleteHabit(id string) error
	RestoreHabit(id string) error
	// PurgeHabit removes a habit and all of its completions permanently.
	PurgeHabit(id string) error

	// Completions
	AddCompletion(models.Completion) error
	GetCompletionForDay(habitID, day string) (models.Completion, error)
	GetCompletionsForHabit(habitID string) ([]models.Completion, error)
	// UpdateCompletionDay moves a completion to another logical day key.
	UpdateCompletionDay(id, day string) error
	DeleteCompletion(id string) error

	// Profiles
	AddProfile(models.Profile) error
	GetProfile(id string) (models.Profile, error)
	GetProfileByUsername(username string) (models.Profile, error)
	GetAllProfiles() ([]models.Profile, error)
	DeleteProfile(id string) error

	// Reminder deliveries
	// RecordDelivery stores a delivery and reports false if the reminder was
	// already delivered for that day.
	RecordDelivery(models.ReminderDelivery) (bool, error)
	HasDelivery(reminderID, day string) (bool, error)

	// Bulk Retrieval for Migration
	GetAllCompletions() ([]models.Completion, error)

	// Utils
	GetConfigPath() string
}
