package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mgurlek/hybit/internal/models"
	"github.com/mgurlek/hybit/internal/storage"
)

const habitColumns = `id, name, color, icon, target_streak_days, reminder_time, random_reminders, created_at, archived_at, deleted_at`

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var reminderTime sql.NullString
	var archivedAt, deletedAt sql.NullTime

	err := row.Scan(&h.ID, &h.Name, &h.Color, &h.Icon, &h.TargetStreakDays,
		&reminderTime, &h.RandomReminders, &h.CreatedAt, &archivedAt, &deletedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.ReminderTime = reminderTime.String
	if archivedAt.Valid {
		h.ArchivedAt = &archivedAt.Time
	}
	if deletedAt.Valid {
		h.DeletedAt = &deletedAt.Time
	}
	return h, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func (s *Store) AddHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		habit.ID, habit.Name, habit.Color, habit.Icon, habit.TargetStreakDays,
		nullString(habit.ReminderTime), habit.RandomReminders, habit.CreatedAt,
		nullTime(habit.ArchivedAt), nullTime(habit.DeletedAt))
	if isUniqueViolation(err) {
		return fmt.Errorf("%q: %w", habit.Name, storage.ErrHabitExists)
	}
	return err
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	h, err := scanHabit(s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		return models.Habit{}, notFound(err, "habit "+id)
	}
	return h, nil
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	h, err := scanHabit(s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE name = $1 AND deleted_at IS NULL`, name))
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

func (s *Store) UpdateHabit(habit models.Habit) error {
	result, err := s.db.Exec(`
		UPDATE habits SET name = $1, color = $2, icon = $3, target_streak_days = $4,
			reminder_time = $5, random_reminders = $6
		WHERE id = $7 AND deleted_at IS NULL`,
		habit.Name, habit.Color, habit.Icon, habit.TargetStreakDays,
		nullString(habit.ReminderTime), habit.RandomReminders, habit.ID)
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
		UPDATE habits SET archived_at = $1 WHERE id = $2 AND deleted_at IS NULL AND archived_at IS NULL`,
		time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return expectOneRow(result, "active habit "+id)
}

func (s *Store) UnarchiveHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET archived_at = NULL WHERE id = $1 AND deleted_at IS NULL AND archived_at IS NOT NULL`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result, "archived habit "+id)
}

func (s *Store) DeleteHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return expectOneRow(result, "habit "+id)
}

func (s *Store) RestoreHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, id)
	if isUniqueViolation(err) {
		return fmt.Errorf("restoring habit %s: %w", id, storage.ErrHabitExists)
	}
	if err != nil {
		return err
	}
	return expectOneRow(result, "deleted habit "+id)
}

// PurgeHabit relies on ON DELETE CASCADE to remove completions.
func (s *Store) PurgeHabit(id string) error {
	result, err := s.db.Exec(`DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result, "habit "+id)
}
