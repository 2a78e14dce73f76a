package postgres

import (
	"fmt"

	"github.com/mgurlek/hybit/internal/models"
	"github.com/mgurlek/hybit/internal/storage"
)

const completionColumns = `id, habit_id, timestamp, day, created_at`

func scanCompletion(row rowScanner) (models.Completion, error) {
	var c models.Completion
	if err := row.Scan(&c.ID, &c.HabitID, &c.Timestamp, &c.Day, &c.CreatedAt); err != nil {
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
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.HabitID, c.Timestamp.UTC(), c.Day, c.CreatedAt.UTC())
	if isUniqueViolation(err) {
		return fmt.Errorf("habit %s on %s: %w", c.HabitID, c.Day, storage.ErrDuplicateCompletion)
	}
	return err
}

func (s *Store) GetCompletionForDay(habitID, day string) (models.Completion, error) {
	c, err := scanCompletion(s.db.QueryRow(`SELECT `+completionColumns+` FROM completions WHERE habit_id = $1 AND day = $2`, habitID, day))
	if err != nil {
		return models.Completion{}, notFound(err, fmt.Sprintf("completion for habit %s on %s", habitID, day))
	}
	return c, nil
}

func (s *Store) GetCompletionsForHabit(habitID string) ([]models.Completion, error) {
	return s.queryCompletions(`SELECT `+completionColumns+` FROM completions WHERE habit_id = $1 ORDER BY timestamp`, habitID)
}

func (s *Store) UpdateCompletionDay(id, day string) error {
	result, err := s.db.Exec(`UPDATE completions SET day = $1 WHERE id = $2`, day, id)
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
	result, err := s.db.Exec(`DELETE FROM completions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result, "completion "+id)
}
