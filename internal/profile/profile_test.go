package profile

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mgurlek/hybit/internal/models"
	"github.com/mgurlek/hybit/internal/storage"
	"github.com/mgurlek/hybit/internal/storage/sqlite"
)

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"555", "555"},
		{"5551", "555 1"},
		{"555123", "555 123"},
		{"5551234", "555 123 4"},
		{"555123456", "555 123 45 6"},
		{"5551234567", "555 123 45 67"},
		{"555-123-45-67-89", "555 123 45 67"},
		{"(555) 123 45 67", "555 123 45 67"},
	}
	for _, tt := range tests {
		if got := FormatPhone(tt.in); got != tt.want {
			t.Errorf("FormatPhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnformatPhone(t *testing.T) {
	if got := UnformatPhone("555 123 45 67"); got != "+905551234567" {
		t.Errorf("UnformatPhone = %q", got)
	}
	if got := UnformatPhone(FormatPhone("5551234567")); got != "+905551234567" {
		t.Errorf("round trip = %q", got)
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"mert", false},
		{"m.gurlek_42", false},
		{"ab", true},
		{"Mert", true},
		{"mert gurlek", true},
		{"mert-g", true},
		{"abcdefghijklmnopqrstuvwxyz0123456789", true},
	}
	for _, tt := range tests {
		err := ValidateUsername(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
	if got := NormalizeUsername("  Mert.G "); got != "mert.g" {
		t.Errorf("NormalizeUsername = %q", got)
	}
}

func TestValidateProfile(t *testing.T) {
	age := 29
	bad := 0
	valid := models.Profile{FirstName: "Mert", LastName: "Gurlek", Username: "mert", PhoneNumber: "+905551234567", Age: &age}
	if err := ValidateProfile(valid); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*models.Profile)
	}{
		{"missing first name", func(p *models.Profile) { p.FirstName = " " }},
		{"missing last name", func(p *models.Profile) { p.LastName = "" }},
		{"short username", func(p *models.Profile) { p.Username = "me" }},
		{"short phone", func(p *models.Profile) { p.PhoneNumber = "+90555" }},
		{"foreign prefix", func(p *models.Profile) { p.PhoneNumber = "+445551234567" }},
		{"zero age", func(p *models.Profile) { p.Age = &bad }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			if err := ValidateProfile(p); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestFullName(t *testing.T) {
	if got := FullName(models.Profile{FirstName: " Mert ", LastName: "Gurlek"}); got != "Mert Gurlek" {
		t.Errorf("FullName = %q", got)
	}
	if got := FullName(models.Profile{FirstName: "Mert"}); got != "Mert" {
		t.Errorf("FullName = %q", got)
	}
}

func setupStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "hybit.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreateActivateDelete(t *testing.T) {
	store := setupStore(t)
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	ok, err := Available(store, "Mert")
	if err != nil || !ok {
		t.Fatalf("Available = %v, %v", ok, err)
	}

	p, err := Create(store, Input{FirstName: "Mert", LastName: "Gurlek", Username: " Mert ", Phone: "555 123 45 67"}, now)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.Username != "mert" || p.PhoneNumber != "+905551234567" {
		t.Errorf("unexpected profile: %+v", p)
	}

	active, err := Active(store)
	if err != nil {
		t.Fatalf("Active failed: %v", err)
	}
	if active.ID != p.ID {
		t.Errorf("active profile = %s, want %s", active.ID, p.ID)
	}

	if ok, _ := Available(store, "MERT"); ok {
		t.Error("username should be taken")
	}
	if ok, _ := Available(store, "me"); ok {
		t.Error("too short username should never be available")
	}
	_, err = Create(store, Input{FirstName: "Other", LastName: "Person", Username: "mert"}, now)
	if !errors.Is(err, storage.ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}

	if err := Delete(store, p.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := Active(store); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
