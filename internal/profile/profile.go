// Package profile validates and stores the local user profile.
package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/mgurlek/hybit/internal/constants"
	"github.com/mgurlek/hybit/internal/logger"
	"github.com/mgurlek/hybit/internal/models"
	"github.com/mgurlek/hybit/internal/storage"
)

// Input holds the onboarding answers.
type Input struct {
	FirstName   string
	LastName    string
	Username    string
	Phone       string
	Age         *int
	Nationality string
}

// NormalizeUsername trims and lowercases a username.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidateUsername checks an already normalized username.
func ValidateUsername(username string) error {
	if n := len(username); n < constants.MinUsernameLen || n > constants.MaxUsernameLen {
		return fmt.Errorf("username must be %d to %d characters", constants.MinUsernameLen, constants.MaxUsernameLen)
	}
	for _, r := range username {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '.' && r != '_' {
			return fmt.Errorf("username may only contain a-z, 0-9, '.' and '_'")
		}
	}
	return nil
}

// ValidateProfile checks every field of p.
func ValidateProfile(p models.Profile) error {
	if strings.TrimSpace(p.FirstName) == "" {
		return errors.New("first name cannot be empty")
	}
	if strings.TrimSpace(p.LastName) == "" {
		return errors.New("last name cannot be empty")
	}
	if err := ValidateUsername(p.Username); err != nil {
		return err
	}
	if p.PhoneNumber != "" {
		digits := strings.TrimPrefix(p.PhoneNumber, constants.PhoneCountryPrefix)
		if len(digits) != constants.PhoneDigits || strings.IndexFunc(digits, notDigit) >= 0 {
			return fmt.Errorf("phone number must be %s followed by %d digits", constants.PhoneCountryPrefix, constants.PhoneDigits)
		}
	}
	if p.Age != nil && (*p.Age < 1 || *p.Age > 130) {
		return fmt.Errorf("invalid age %d", *p.Age)
	}
	return nil
}

func notDigit(r rune) bool { return !unicode.IsDigit(r) }

func digitsOf(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// FormatPhone masks up to ten digits of s as "XXX XXX XX XX". Non-digits
// are dropped.
func FormatPhone(s string) string {
	digits := digitsOf(s)
	if len(digits) > constants.PhoneDigits {
		digits = digits[:constants.PhoneDigits]
	}
	var b strings.Builder
	for i, r := range digits {
		if i == 3 || i == 6 || i == 8 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// UnformatPhone returns the E.164 form of a masked national number.
func UnformatPhone(s string) string {
	return constants.PhoneCountryPrefix + digitsOf(s)
}

// FullName joins the first and last name.
func FullName(p models.Profile) string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// Available reports whether username is free in store.
func Available(store storage.Provider, username string) (bool, error) {
	username = NormalizeUsername(username)
	if ValidateUsername(username) != nil {
		return false, nil
	}
	_, err := store.GetProfileByUsername(username)
	if errors.Is(err, storage.ErrNotFound) {
		return true, nil
	}
	return false, err
}

// Create stores a new profile built from in and makes it the active one.
func Create(store storage.Provider, in Input, now time.Time) (models.Profile, error) {
	p := models.Profile{
		ID:          uuid.New().String(),
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Username:    NormalizeUsername(in.Username),
		Age:         in.Age,
		Nationality: strings.TrimSpace(in.Nationality),
		CreatedAt:   now.UTC(),
	}
	if in.Phone != "" {
		p.PhoneNumber = UnformatPhone(in.Phone)
	}
	if err := ValidateProfile(p); err != nil {
		return models.Profile{}, err
	}
	if err := store.AddProfile(p); err != nil {
		return models.Profile{}, err
	}

	settings, err := store.GetSettings()
	if err != nil {
		return p, err
	}
	settings.ActiveProfileID = p.ID
	if err := store.SaveSettings(settings); err != nil {
		return p, fmt.Errorf("failed to activate profile: %w", err)
	}
	logger.Info("Profile created", "username", p.Username)
	return p, nil
}

// Active returns the profile selected in settings.
func Active(store storage.Provider) (models.Profile, error) {
	settings, err := store.GetSettings()
	if err != nil {
		return models.Profile{}, err
	}
	if settings.ActiveProfileID == "" {
		return models.Profile{}, fmt.Errorf("no profile: %w", storage.ErrNotFound)
	}
	return store.GetProfile(settings.ActiveProfileID)
}

// Delete removes a profile and clears it from settings if it was active.
func Delete(store storage.Provider, id string) error {
	if err := store.DeleteProfile(id); err != nil {
		return err
	}
	settings, err := store.GetSettings()
	if err != nil {
		return err
	}
	if settings.ActiveProfileID == id {
		settings.ActiveProfileID = ""
		return store.SaveSettings(settings)
	}
	return nil
}
