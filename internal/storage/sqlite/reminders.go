package sqlite

import (
	"github.com/mgurlek/hybit/internal/models"
)

func (s *Store) RecordDelivery(d models.ReminderDelivery) (bool, error) {
	result, err := s.db.Exec(`
		INSERT INTO reminder_deliveries (reminder_id, day, delivered_at)
		VALUES (?, ?, ?)
		ON CONFLICT(reminder_id, day) DO NOTHING`,
		d.ReminderID, d.Day, formatTime(d.DeliveredAt))
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (s *Store) HasDelivery(reminderID, day string) (bool, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM reminder_deliveries WHERE reminder_id = ? AND day = ?`, reminderID, day).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
