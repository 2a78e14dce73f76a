package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mgurlek/hybit/internal/models"
	"github.com/mgurlek/hybit/internal/storage"
)

const habitColumns = `id, name, color, icon, target_streak_days, reminder_time, random_reminders, created_at, archived_at, deleted_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var createdAt string
	var reminderTime, archivedAt, deletedAt sql.NullString

	err := row.Scan(&h.ID, &h.Name, &h.Color, &h.Icon, &h.TargetStreakDays,
		&reminderTime, &h.RandomReminders, &createdAt, &archivedAt, &deletedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.ReminderTime = reminderTime.String
	if h.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return models.Habit{}, err
	}
	if h.ArchivedAt, err = parseNullTime(archivedAt, "archived_at"); err != nil {
		return models.Habit{}, err
	}
	if h.DeletedAt, err = parseNullTime(deletedAt, "deleted_at"); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

func (s *Store) AddHabit(habit models.Habit) error {
	var reminderTime sql.NullString
	if habit.ReminderTime != "" {
		reminderTime = sql.NullString{String: habit.ReminderTime, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.Name, habit.Color, habit.Icon, habit.TargetStreakDays,
		reminderTime, habit.RandomReminders, formatTime(habit.CreatedAt),
		nullTime(habit.ArchivedAt), nullTime(habit.DeletedAt))
	if isUniqueViolation(err) {
		return fmt.Errorf("%q: %w", habit.Name, storage.ErrHabitExists)
	}
	return err
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ? AND deleted_at IS NULL`, id)
	h, err := scanHabit(row)
	if err != nil {
		return models.Habit{}, notFound(err, "habit "+id)
	}
	return h, nil
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE name = ? AND deleted_at IS NULL`, name)
	h, err := scanHabit(row)
	if err != nil {
		return models.Habit{}, notFound(err, fmt.Sprintf("habit %q", name))
	}
	return h, nil
}

func (s *Store) GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error) {
	query := "SELECT " + habitColumns + " FROM habits WHERE 1=1"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	if !includeArchived {
		query += " AND archived_at IS NULL"
	}
	query += " ORDER BY created_at, name"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// UpdateHabit rewrites the editable fields of a habit. Lifecycle timestamps
// are changed through Archive/Delete and their inverses.
func (s *Store) UpdateHabit(habit models.Habit) error {
	var reminderTime sql.NullString
	if habit.ReminderTime != "" {
		reminderTime = sql.NullString{String: habit.ReminderTime, Valid: true}
	}

	result, err := s.db.Exec(`
		UPDATE habits SET name = ?, color = ?, icon = ?, target_streak_days = ?,
			reminder_time = ?, random_reminders = ?
		WHERE id = ? AND deleted_at IS NULL`,
		habit.Name, habit.Color, habit.Icon, habit.TargetStreakDays,
		reminderTime, habit.RandomReminders, habit.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("%q: %w", habit.Name, storage.ErrHabitExists)
	}
	if err != nil {
		return err
	}
	return expectOneRow(result, "habit "+habit.ID)
}

func (s *Store) ArchiveHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET archived_at = ? WHERE id = ? AND deleted_at IS NULL AND archived_at IS NULL`,
		formatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return expectOneRow(result, "active habit "+id)
}

func (s *Store) UnarchiveHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET archived_at = NULL WHERE id = ? AND deleted_at IS NULL AND archived_at IS NOT NULL`,
		id)
	if err != nil {
		return err
	}
	return expectOneRow(result, "archived habit "+id)
}

func (s *Store) DeleteHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		formatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return expectOneRow(result, "habit "+id)
}

func (s *Store) RestoreHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL`,
		id)
	if isUniqueViolation(err) {
		return fmt.Errorf("restoring habit %s: %w", id, storage.ErrHabitExists)
	}
	if err != nil {
		return err
	}
	return expectOneRow(result, "deleted habit "+id)
}

func (s *Store) PurgeHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM completions WHERE habit_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete completions: %w", err)
	}
	result, err := tx.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err := expectOneRow(result, "habit "+id); err != nil {
		return err
	}
	return tx.Commit()
}

func expectOneRow(result sql.Result, what string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", what, storage.ErrNotFound)
	}
	return nil
}
