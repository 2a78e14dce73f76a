package postgres

import "github.com/mgurlek/hybit/internal/models"

func (s *Store) RecordDelivery(d models.ReminderDelivery) (bool, error) {
	result, err := s.db.Exec(`
		INSERT INTO reminder_deliveries (reminder_id, day, delivered_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (reminder_id, day) DO NOTHING`,
		d.ReminderID, d.Day, d.DeliveredAt.UTC())
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
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM reminder_deliveries WHERE reminder_id = $1 AND day = $2)`, reminderID, day).Scan(&exists)
	return exists, err
}
