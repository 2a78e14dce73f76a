package streak

import (
	"time"

	"github.com/mgurlek/hybit/internal/logicalday"
)

// Summary is the streak state of a single habit at a point in time.
type Summary struct {
	Current   int  `json:"current" yaml:"current"`
	Longest   int  `json:"longest" yaml:"longest"`
	DoneToday bool `json:"done_today" yaml:"done_today"`
	Target    int  `json:"target" yaml:"target"`
	Remaining int  `json:"remaining" yaml:"remaining"`
	Reached   bool `json:"reached" yaml:"reached"`
	Percent   int  `json:"percent" yaml:"percent"`
}

// Summarize builds a Summary for completions as seen at now. A target below
// 1 is treated as 1.
func Summarize(completions []time.Time, now time.Time, target int, cal logicalday.Calendar) Summary {
	if target < 1 {
		target = 1
	}
	s := Summary{
		Current:   Current(completions, now, cal),
		Longest:   Longest(completions, cal),
		DoneToday: DoneOn(completions, cal.LogicalDate(now), cal),
		Target:    target,
	}
	s.Remaining = target - s.Current
	if s.Remaining <= 0 {
		s.Remaining = 0
		s.Reached = true
	}
	s.Percent = s.Current * 100 / target
	if s.Percent > 100 {
		s.Percent = 100
	}
	return s
}

// DayMark marks whether a logical day had a completion.
type DayMark struct {
	Day  logicalday.Date
	Done bool
}

// History returns one mark per logical day in [from, to], oldest first.
// An inverted range yields nil.
func History(completions []time.Time, from, to logicalday.Date, cal logicalday.Calendar) []DayMark {
	if to.Before(from) {
		return nil
	}
	days := Days(completions, cal)
	marks := make([]DayMark, 0, to.Sub(from)+1)
	for d := from; !d.After(to); d = d.AddDays(1) {
		_, done := days[d]
		marks = append(marks, DayMark{Day: d, Done: done})
	}
	return marks
}
