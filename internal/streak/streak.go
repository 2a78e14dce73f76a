// Package streak computes consecutive-day streaks over habit completions
// using logical days.
package streak

import (
	"time"

	"github.com/mgurlek/hybit/internal/logicalday"
)

// Days returns the set of logical dates that contain at least one completion.
func Days(completions []time.Time, cal logicalday.Calendar) map[logicalday.Date]struct{} {
	days := make(map[logicalday.Date]struct{}, len(completions))
	for _, c := range completions {
		days[cal.LogicalDate(c)] = struct{}{}
	}
	return days
}

// DoneOn reports whether any completion falls on the logical date day.
func DoneOn(completions []time.Time, day logicalday.Date, cal logicalday.Calendar) bool {
	for _, c := range completions {
		if cal.LogicalDate(c) == day {
			return true
		}
	}
	return false
}

// Current returns the number of consecutive logical days, ending today, that
// contain a completion. If today has no completion yet the count ends
// yesterday instead, because an unfinished day does not break the streak.
// When neither today nor yesterday is completed the streak is 0.
//
// Completions after now are not filtered out.
func Current(completions []time.Time, now time.Time, cal logicalday.Calendar) int {
	if len(completions) == 0 {
		return 0
	}
	days := Days(completions, cal)
	today := cal.LogicalDate(now)

	check := today
	if _, ok := days[today]; !ok {
		check = today.AddDays(-1)
		if _, ok := days[check]; !ok {
			return 0
		}
	}

	count := 0
	for {
		if _, ok := days[check]; !ok {
			break
		}
		count++
		check = check.AddDays(-1)
	}
	return count
}

// Longest returns the longest run of consecutive logical days ever recorded.
func Longest(completions []time.Time, cal logicalday.Calendar) int {
	days := Days(completions, cal)
	longest := 0
	for d := range days {
		// Only start counting at the first day of a run.
		if _, ok := days[d.AddDays(-1)]; ok {
			continue
		}
		run := 0
		for next := d; ; next = next.AddDays(1) {
			if _, ok := days[next]; !ok {
				break
			}
			run++
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
