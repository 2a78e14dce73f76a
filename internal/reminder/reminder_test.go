package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgurlek/hybit/internal/logicalday"
	"github.com/mgurlek/hybit/internal/models"
)

var day = logicalday.Date{Year: 2026, Month: time.March, Day: 20}

func utcSettings() models.Settings {
	s := models.DefaultSettings()
	s.Timezone = "UTC"
	return s
}

func habit(id, reminderTime string, random bool) models.Habit {
	return models.Habit{
		ID:              id,
		Name:            "Read",
		ReminderTime:    reminderTime,
		RandomReminders: random,
	}
}

func TestPlanDaily(t *testing.T) {
	rs, err := Plan(habit("h1", "08:30", false), utcSettings(), day)
	require.NoError(t, err)
	require.Len(t, rs, 1)

	r := rs[0]
	assert.Equal(t, "h1", r.ID)
	assert.Equal(t, Daily, r.Kind)
	assert.Equal(t, "Hybit: Read", r.Title)
	assert.Contains(t, motivations, r.Body)
	assert.Equal(t, day, r.Day)
	assert.True(t, r.At.Equal(time.Date(2026, 3, 20, 8, 30, 0, 0, time.UTC)), "At = %v", r.At)
	assert.Contains(t, r.Rule(), "FREQ=DAILY")

	next := r.Next(r.At)
	assert.True(t, next.Equal(time.Date(2026, 3, 21, 8, 30, 0, 0, time.UTC)), "Next = %v", next)
}

func TestPlanAfterMidnightBelongsToPreviousEvening(t *testing.T) {
	rs, err := Plan(habit("h1", "01:30", false), utcSettings(), day)
	require.NoError(t, err)
	require.Len(t, rs, 1)

	// 01:30 on the 21st is still logical day 20.
	assert.True(t, rs[0].At.Equal(time.Date(2026, 3, 21, 1, 30, 0, 0, time.UTC)), "At = %v", rs[0].At)
}

func TestPlanUsesSettingsTimezone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("timezone unavailable: %v", err)
	}
	s := models.DefaultSettings()
	s.Timezone = "Asia/Tokyo"

	rs, err := Plan(habit("h1", "09:00", false), s, day)
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.True(t, rs[0].At.Equal(time.Date(2026, 3, 20, 9, 0, 0, 0, tokyo)))
}

func TestPlanSkipsHabits(t *testing.T) {
	archivedAt := time.Now()

	tests := []struct {
		name  string
		habit models.Habit
	}{
		{"no reminder time", habit("h1", "", true)},
		{"archived", func() models.Habit {
			h := habit("h2", "08:00", false)
			h.ArchivedAt = &archivedAt
			return h
		}()},
		{"deleted", func() models.Habit {
			h := habit("h3", "08:00", false)
			h.DeletedAt = &archivedAt
			return h
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := Plan(tt.habit, utcSettings(), day)
			require.NoError(t, err)
			assert.Empty(t, rs)
		})
	}
}

func TestPlanRandomWithinWindowAndDeterministic(t *testing.T) {
	s := utcSettings()
	windowStart := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 3, 20, 21, 59, 0, 0, time.UTC)

	for _, id := range []string{"a", "b", "c", "habit-42", "5f0c"} {
		rs, err := Plan(habit(id, "07:00", true), s, day)
		require.NoError(t, err)
		require.Len(t, rs, 2)

		r := rs[1]
		assert.Equal(t, id+RandomSuffix, r.ID)
		assert.Equal(t, Random, r.Kind)
		assert.Equal(t, "Surprise: Read", r.Title)
		assert.False(t, r.At.Before(windowStart), "%s fires at %v", id, r.At)
		assert.False(t, r.At.After(windowEnd), "%s fires at %v", id, r.At)
		assert.True(t, r.Next(r.At).IsZero(), "surprise reminders fire once")

		again, err := Plan(habit(id, "07:00", true), s, day)
		require.NoError(t, err)
		assert.True(t, again[1].At.Equal(r.At), "planning twice must agree")
	}
}

func TestPlanRejectsBadWindow(t *testing.T) {
	s := utcSettings()
	s.RandomWindowStart = "9am"
	_, err := Plan(habit("h1", "07:00", true), s, day)
	assert.Error(t, err)

	s = utcSettings()
	s.Timezone = "Mars/Olympus"
	_, err = Plan(habit("h1", "07:00", false), s, day)
	assert.Error(t, err)
}

func TestPlanAll(t *testing.T) {
	habits := []models.Habit{
		habit("late", "20:00", false),
		habit("early", "06:00", false),
		habit("done", "07:00", false),
		habit("none", "", false),
	}
	rs, err := PlanAll(habits, map[string]bool{"done": true}, utcSettings(), day)
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, "early", rs[0].ID)
	assert.Equal(t, "late", rs[1].ID)
}

func TestDue(t *testing.T) {
	rs, err := PlanAll([]models.Habit{
		habit("a", "08:00", false),
		habit("b", "08:05", false),
		habit("c", "08:20", false),
	}, nil, utcSettings(), day)
	require.NoError(t, err)

	now := time.Date(2026, 3, 20, 8, 10, 0, 0, time.UTC)
	due := Due(rs, now, 10*time.Minute)
	require.Len(t, due, 2)
	assert.Equal(t, "a", due[0].ID)
	assert.Equal(t, "b", due[1].ID)

	// Exactly at the boundary still counts.
	due = Due(rs, time.Date(2026, 3, 20, 8, 20, 0, 0, time.UTC), 15*time.Minute)
	ids := []string{}
	for _, r := range due {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"b", "c"}, ids)

	assert.Empty(t, Due(rs, time.Date(2026, 3, 20, 7, 0, 0, 0, time.UTC), time.Hour-time.Second))
}

func TestDelivery(t *testing.T) {
	rs, err := Plan(habit("h1", "08:30", false), utcSettings(), day)
	require.NoError(t, err)
	at := time.Date(2026, 3, 20, 8, 31, 0, 0, time.UTC)

	d := rs[0].Delivery(at)
	assert.Equal(t, "h1", d.ReminderID)
	assert.Equal(t, "2026-03-20", d.Day)
	assert.True(t, d.DeliveredAt.Equal(at))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "daily", Daily.String())
	assert.Equal(t, "random", Random.String())
}
