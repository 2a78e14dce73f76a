// Package logicalday maps instants to "logical days": calendar dates whose
// boundary sits at a cutoff hour (04:00 by default) instead of midnight, so
// activity shortly after midnight still belongs to the previous day.
package logicalday

import (
	"time"

	"github.com/mgurlek/hybit/internal/constants"
)

// Calendar assigns logical dates in a fixed location.
type Calendar struct {
	// Location is the zone whose wall clock decides the hour of a timestamp.
	// Nil means time.Local.
	Location *time.Location
	// CutoffHour is the hour at which a new logical day begins.
	CutoffHour int
}

// New returns a Calendar for loc. A cutoff outside [0, 23] falls back to
// constants.DefaultDayCutoffHour.
func New(loc *time.Location, cutoffHour int) Calendar {
	if cutoffHour < 0 || cutoffHour > 23 {
		cutoffHour = constants.DefaultDayCutoffHour
	}
	return Calendar{Location: loc, CutoffHour: cutoffHour}
}

// Default returns the system-local calendar with the 04:00 cutoff.
func Default() Calendar {
	return New(time.Local, constants.DefaultDayCutoffHour)
}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c Calendar) cutoff() int {
	if c.CutoffHour < 0 || c.CutoffHour > 23 {
		return constants.DefaultDayCutoffHour
	}
	return c.CutoffHour
}

// LogicalDate returns the logical date of t. Timestamps whose local hour is
// before the cutoff belong to the previous calendar date.
func (c Calendar) LogicalDate(t time.Time) Date {
	local := t.In(c.location())
	d := DateOf(local)
	if local.Hour() < c.cutoff() {
		return d.AddDays(-1)
	}
	return d
}

// IsSameLogicalDay reports whether a and b fall on the same logical date.
func (c Calendar) IsSameLogicalDay(a, b time.Time) bool {
	return c.LogicalDate(a) == c.LogicalDate(b)
}

// Today is the logical date of now.
func (c Calendar) Today(now time.Time) Date {
	return c.LogicalDate(now)
}

// Bounds returns the half-open instant range [start, end) covered by the
// logical day d.
func (c Calendar) Bounds(d Date) (time.Time, time.Time) {
	loc := c.location()
	start := time.Date(d.Year, d.Month, d.Day, c.cutoff(), 0, 0, 0, loc)
	next := d.AddDays(1)
	end := time.Date(next.Year, next.Month, next.Day, c.cutoff(), 0, 0, 0, loc)
	return start, end
}
