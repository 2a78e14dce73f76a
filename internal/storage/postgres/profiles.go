package postgres

import (
	"database/sql"
	"fmt"

	"github.com/mgurlek/hybit/internal/models"
	"github.com/mgurlek/hybit/internal/storage"
)

const profileColumns = `id, first_name, last_name, username, phone_number, age, nationality, created_at`

func scanProfile(row rowScanner) (models.Profile, error) {
	var p models.Profile
	var age sql.NullInt64
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Username, &p.PhoneNumber, &age, &p.Nationality, &p.CreatedAt); err != nil {
		return models.Profile{}, err
	}
	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	return p, nil
}

func (s *Store) AddProfile(p models.Profile) error {
	var age sql.NullInt64
	if p.Age != nil {
		age = sql.NullInt64{Int64: int64(*p.Age), Valid: true}
	}
	_, err := s.db.Exec(`
		INSERT INTO profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.FirstName, p.LastName, p.Username, p.PhoneNumber, age, p.Nationality, p.CreatedAt.UTC())
	if isUniqueViolation(err) {
		return fmt.Errorf("%q: %w", p.Username, storage.ErrUsernameTaken)
	}
	return err
}

func (s *Store) GetProfile(id string) (models.Profile, error) {
	p, err := scanProfile(s.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
	if err != nil {
		return models.Profile{}, notFound(err, "profile "+id)
	}
	return p, nil
}

func (s *Store) GetProfileByUsername(username string) (models.Profile, error) {
	p, err := scanProfile(s.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE username = $1`, username))
	if err != nil {
		return models.Profile{}, notFound(err, fmt.Sprintf("profile %q", username))
	}
	return p, nil
}

func (s *Store) GetAllProfiles() ([]models.Profile, error) {
	rows, err := s.db.Query(`SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (s *Store) DeleteProfile(id string) error {
	result, err := s.db.Exec(`DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result, "profile "+id)
}
