// Package rotation assigns a food to every calendar day by cycling through a
// child's ordered catalog, anchored to a fixed epoch so the assignment is
// stable across sessions.
package rotation

import (
	"time"

	"babymenu/internal/calendar"
)

// Epoch anchors the rotation. Day offsets are counted from the Sunday that
// opens the epoch's week, so 2024-01-01 has week 0, day 1.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

var epochWeekStart = calendar.WeekStart(Epoch)

// Offset splits the day count of date into its rotation week and the day
// within that week. Both use floor semantics, so dayInWeek is in [0, 6] for
// dates before the epoch too.
func Offset(date time.Time) (week, dayInWeek int) {
	days := calendar.DaysBetween(epochWeekStart, date)
	return floorDiv(days, 7), floorMod(days, 7)
}

// Index returns the catalog position used on date for a catalog of n foods.
func Index(date time.Time, n int) int {
	if n <= 1 {
		return 0
	}
	week, dayInWeek := Offset(date)
	return floorMod(week*7+dayInWeek, n)
}

// Resolve picks the food for date. It returns "" for an empty catalog;
// callers are expected to handle that case before asking.
func Resolve(date time.Time, foods []string) string {
	switch len(foods) {
	case 0:
		return ""
	case 1:
		return foods[0]
	}
	return foods[Index(date, len(foods))]
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
