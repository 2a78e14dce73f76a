package models

import (
	"testing"
	"time"
)

func TestHabit_Validate(t *testing.T) {
	tests := []struct {
		name    string
		habit   Habit
		wantErr bool
	}{
		{
			name: "valid habit",
			habit: Habit{
				ID:               "test-id",
				Name:             "Read",
				Color:            "#4F8EF7",
				TargetStreakDays: 30,
				CreatedAt:        time.Now(),
			},
			wantErr: false,
		},
		{
			name: "valid habit with reminder",
			habit: Habit{
				Name:             "Stretch",
				Color:            "#00aa00",
				TargetStreakDays: 7,
				ReminderTime:     "21:30",
			},
			wantErr: false,
		},
		{
			name:    "empty name",
			habit:   Habit{Name: "   ", Color: "#4F8EF7", TargetStreakDays: 30},
			wantErr: true,
		},
		{
			name:    "name too long",
			habit:   Habit{Name: string(make([]byte, 65)), Color: "#4F8EF7", TargetStreakDays: 30},
			wantErr: true,
		},
		{
			name:    "bad color",
			habit:   Habit{Name: "Read", Color: "blue", TargetStreakDays: 30},
			wantErr: true,
		},
		{
			name:    "zero target",
			habit:   Habit{Name: "Read", Color: "#4F8EF7", TargetStreakDays: 0},
			wantErr: true,
		},
		{
			name:    "bad reminder time",
			habit:   Habit{Name: "Read", Color: "#4F8EF7", TargetStreakDays: 30, ReminderTime: "9pm"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.habit.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHabit_ApplyDefaults(t *testing.T) {
	h := Habit{Name: "  Read  "}
	h.ApplyDefaults(21)

	if h.Name != "Read" {
		t.Errorf("Name = %q, want trimmed", h.Name)
	}
	if h.Color != "#4F8EF7" || h.Icon != "star.fill" {
		t.Errorf("unexpected defaults: color=%s icon=%s", h.Color, h.Icon)
	}
	if h.TargetStreakDays != 21 {
		t.Errorf("TargetStreakDays = %d, want 21", h.TargetStreakDays)
	}
	if err := h.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestHabit_IsActive(t *testing.T) {
	now := time.Now()
	if !(Habit{}).IsActive() {
		t.Error("fresh habit should be active")
	}
	if (Habit{ArchivedAt: &now}).IsActive() {
		t.Error("archived habit should not be active")
	}
	if (Habit{DeletedAt: &now}).IsActive() {
		t.Error("deleted habit should not be active")
	}
}

func TestValidColor(t *testing.T) {
	for _, c := range []string{"#000000", "#FFFFFF", "#4f8ef7"} {
		if !ValidColor(c) {
			t.Errorf("ValidColor(%q) = false", c)
		}
	}
	for _, c := range []string{"", "000000", "#FFF", "#GGGGGG", "#+12345", "#1234567"} {
		if ValidColor(c) {
			t.Errorf("ValidColor(%q) = true", c)
		}
	}
}
