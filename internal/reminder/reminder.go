// Package reminder plans the daily and surprise reminders of habits for a
// logical day. Reminders are pure values; delivery lives in the notifier.
package reminder

import (
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/mgurlek/hybit/internal/logicalday"
	"github.com/mgurlek/hybit/internal/models"
	"github.com/mgurlek/hybit/internal/utils"
)

// RandomSuffix is appended to a habit ID to form its surprise reminder ID.
const RandomSuffix = "-random"

// Kind distinguishes the fixed daily reminder from the surprise reminder.
type Kind int

const (
	Daily Kind = iota
	Random
)

func (k Kind) String() string {
	if k == Random {
		return "random"
	}
	return "daily"
}

var motivations = []string{
	"Don't break the chain, today is your day!",
	"A small step, a big result.",
	"Time to keep the promise you made yourself.",
	"It only takes five minutes, let's go!",
	"Future you will thank you for this.",
}

const surpriseBody = "An unexpected moment! Keep the streak alive."

// Reminder is one planned notification for a habit on a logical day.
type Reminder struct {
	ID      string
	HabitID string
	Kind    Kind
	Title   string
	Body    string
	Day     logicalday.Date
	At      time.Time

	rule *rrule.RRule
}

// Rule returns the RFC 5545 recurrence of the reminder.
func (r Reminder) Rule() string {
	if r.rule == nil {
		return ""
	}
	return r.rule.String()
}

// Next returns the first occurrence strictly after after, or the zero time
// when the rule has no further occurrence.
func (r Reminder) Next(after time.Time) time.Time {
	if r.rule == nil {
		return time.Time{}
	}
	return r.rule.After(after, false)
}

// Delivery returns the record that marks this reminder as sent.
func (r Reminder) Delivery(at time.Time) models.ReminderDelivery {
	return models.ReminderDelivery{ReminderID: r.ID, Day: r.Day.String(), DeliveredAt: at}
}

// Plan returns the reminders of habit for the logical day. Inactive habits
// and habits without a reminder time get none. Each reminder fires at the
// first matching wall clock time on or after the start of the logical day,
// so an 01:30 reminder belongs to the evening before.
func Plan(habit models.Habit, settings models.Settings, day logicalday.Date) ([]Reminder, error) {
	if !habit.IsActive() || habit.ReminderTime == "" {
		return nil, nil
	}
	cal, err := utils.CalendarFromSettings(settings)
	if err != nil {
		return nil, err
	}
	start, _ := cal.Bounds(day)

	minutes, err := utils.ParseTimeToMinutes(habit.ReminderTime)
	if err != nil {
		return nil, fmt.Errorf("habit %q: invalid reminder time %q: %w", habit.Name, habit.ReminderTime, err)
	}
	daily, err := dailyRule(start, minutes)
	if err != nil {
		return nil, err
	}
	reminders := []Reminder{{
		ID:      habit.ID,
		HabitID: habit.ID,
		Kind:    Daily,
		Title:   "Hybit: " + habit.Name,
		Body:    pick(motivations, habit.ID, day),
		Day:     day,
		At:      daily.After(start, true),
		rule:    daily,
	}}

	if habit.RandomReminders {
		r, err := surprise(habit, settings, day, start)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, nil
}

// dailyRule repeats every day at minutes past midnight in start's location.
func dailyRule(start time.Time, minutes int) (*rrule.RRule, error) {
	return rrule.NewRRule(rrule.ROption{
		Freq:     rrule.DAILY,
		Dtstart:  start,
		Byhour:   []int{minutes / 60},
		Byminute: []int{minutes % 60},
		Bysecond: []int{0},
	})
}

// surprise fires once at a minute inside the settings window picked from a
// hash of the habit and day, so every planning run of the day agrees.
func surprise(habit models.Habit, settings models.Settings, day logicalday.Date, start time.Time) (Reminder, error) {
	from, err := utils.ParseTimeToMinutes(settings.RandomWindowStart)
	if err != nil {
		return Reminder{}, fmt.Errorf("invalid random window start: %w", err)
	}
	to, err := utils.ParseTimeToMinutes(settings.RandomWindowEnd)
	if err != nil {
		return Reminder{}, fmt.Errorf("invalid random window end: %w", err)
	}
	if to < from {
		from, to = to, from
	}
	minute := from + int(hash(habit.ID, day)%uint32(to-from+1))

	daily, err := dailyRule(start, minute)
	if err != nil {
		return Reminder{}, err
	}
	at := daily.After(start, true)
	once, err := rrule.NewRRule(rrule.ROption{Freq: rrule.DAILY, Dtstart: at, Count: 1})
	if err != nil {
		return Reminder{}, err
	}
	return Reminder{
		ID:      habit.ID + RandomSuffix,
		HabitID: habit.ID,
		Kind:    Random,
		Title:   "Surprise: " + habit.Name,
		Body:    surpriseBody,
		Day:     day,
		At:      at,
		rule:    once,
	}, nil
}

func hash(habitID string, day logicalday.Date) uint32 {
	h := fnv.New32a()
	h.Write([]byte(habitID))
	h.Write([]byte(day.String()))
	return h.Sum32()
}

func pick(options []string, habitID string, day logicalday.Date) string {
	return options[hash(habitID, day)%uint32(len(options))]
}

// PlanAll plans reminders for every habit that is not yet done today,
// ordered by firing time.
func PlanAll(habits []models.Habit, doneToday map[string]bool, settings models.Settings, day logicalday.Date) ([]Reminder, error) {
	var all []Reminder
	for _, h := range habits {
		if doneToday[h.ID] {
			continue
		}
		rs, err := Plan(h, settings, day)
		if err != nil {
			return nil, err
		}
		all = append(all, rs...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].At.Before(all[j].At) })
	return all, nil
}

// Due returns the reminders whose firing time lies in [now-grace, now].
func Due(reminders []Reminder, now time.Time, grace time.Duration) []Reminder {
	var due []Reminder
	earliest := now.Add(-grace)
	for _, r := range reminders {
		if r.At.IsZero() || r.At.After(now) || r.At.Before(earliest) {
			continue
		}
		due = append(due, r)
	}
	return due
}
