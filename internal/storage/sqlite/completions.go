package sqlite

import (
	"fmt"

	"github.com/mgurlek/hybit/internal/models"
	"github.com/mgurlek/hybit/internal/storage"
)

const completionColumns = `id, habit_id, timestamp, day, created_at`

func scanCompletion(row rowScanner) (models.Completion, error) {
	var c models.Completion
	var timestamp, createdAt string
	if err := row.Scan(&c.ID, &c.HabitID, &timestamp, &c.Day, &createdAt); err != nil {
		return models.Completion{}, err
	}

	var err error
	if c.Timestamp, err = parseTime(timestamp, "timestamp"); err != nil {
		return models.Completion{}, err
	}
	if c.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return models.Completion{}, err
	}
	return c, nil
}

func (s *Store) queryCompletions(query string, args ...interface{}) ([]models.Completion, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

func (s *Store) AddCompletion(c models.Completion) error {
	_, err := s.db.Exec(`
		INSERT INTO completions (`+completionColumns+`)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.HabitID, formatTime(c.Timestamp), c.Day, formatTime(c.CreatedAt))
	if isUniqueViolation(err) {
		return fmt.Errorf("habit %s on %s: %w", c.HabitID, c.Day, storage.ErrDuplicateCompletion)
	}
	return err
}

func (s *Store) GetCompletionForDay(habitID, day string) (models.Completion, error) {
	row := s.db.QueryRow(`SELECT `+completionColumns+` FROM completions WHERE habit_id = ? AND day = ?`, habitID, day)
	c, err := scanCompletion(row)
	if err != nil {
		return models.Completion{}, notFound(err, fmt.Sprintf("completion for habit %s on %s", habitID, day))
	}
	return c, nil
}

func (s *Store) GetCompletionsForHabit(habitID string) ([]models.Completion, error) {
	return s.queryCompletions(`SELECT `+completionColumns+` FROM completions WHERE habit_id = ? ORDER BY timestamp`, habitID)
}

func (s *Store) UpdateCompletionDay(id, day string) error {
	result, err := s.db.Exec(`UPDATE completions SET day = ? WHERE id = ?`, day, id)
	if isUniqueViolation(err) {
		return fmt.Errorf("completion %s on %s: %w", id, day, storage.ErrDuplicateCompletion)
	}
	if err != nil {
		return err
	}
	return expectOneRow(result, "completion "+id)
}

func (s *Store) GetAllCompletions() ([]models.Completion, error) {
	return s.queryCompletions(`SELECT ` + completionColumns + ` FROM completions ORDER BY day, habit_id`)
}

func (s *Store) DeleteCompletion(id string) error {
	result, err := s.db.Exec(`DELETE FROM completions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result, "completion "+id)
}
