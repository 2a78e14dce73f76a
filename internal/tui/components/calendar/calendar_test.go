package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mgurlek/hybit/internal/logicalday"
	"github.com/mgurlek/hybit/internal/models"
	"github.com/mgurlek/hybit/internal/streak"
)

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(logicalday.Date{Year: 2024, Month: time.February, Day: 17})
	assert.Equal(t, "2024-02-01", first.String())
	assert.Equal(t, "2024-02-29", last.String())

	first, last = MonthRange(logicalday.Date{Year: 2026, Month: time.December, Day: 31})
	assert.Equal(t, "2026-12-01", first.String())
	assert.Equal(t, "2026-12-31", last.String())
}

func TestRenderMonth(t *testing.T) {
	habit := models.Habit{Name: "Read", Color: "#4F8EF7"}
	first, last := MonthRange(logicalday.Date{Year: 2026, Month: time.March, Day: 1})
	var marks []streak.DayMark
	for d := first; !d.After(last); d = d.AddDays(1) {
		marks = append(marks, streak.DayMark{Day: d, Done: d.Day%2 == 0})
	}

	out := RenderMonth(habit, streak.Summary{Current: 1, Longest: 3, Target: 30, Percent: 3}, first,
		logicalday.Date{Year: 2026, Month: time.March, Day: 20}, marks)

	assert.Contains(t, out, "Read")
	assert.Contains(t, out, "March 2026")
	assert.Contains(t, out, "Mo Tu We Th Fr Sa Su")
	assert.Contains(t, out, "31")
	assert.Contains(t, out, "Longest 3")

	// March 1st 2026 is a Sunday, so the first week has a single day.
	lines := strings.Split(out, "\n")
	var firstWeek string
	for i, l := range lines {
		if strings.Contains(l, "Mo Tu") {
			firstWeek = lines[i+1]
			break
		}
	}
	assert.Equal(t, 1, len(strings.Fields(firstWeek)))
}
