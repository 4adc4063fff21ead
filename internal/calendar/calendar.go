// Package calendar holds the date math shared by the planner: civil day
// counting, Sunday-start weeks and the short labels shown next to each day.
package calendar

import (
	"fmt"
	"time"
)

// ISODate is the layout used for every persisted date key.
const ISODate = "2006-01-02"

// Day truncates t to midnight of its calendar day in t's location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseISO parses a YYYY-MM-DD string as midnight in loc.
func ParseISO(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(ISODate, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatISO formats the calendar day of t as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return t.Format(ISODate)
}

// civil maps the calendar day of t onto UTC so day arithmetic never sees a
// DST transition.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from "from" to "to".
// It is negative when "to" is before "from". Unix seconds are used because
// a time.Duration saturates about 292 years out.
func DaysBetween(from, to time.Time) int {
	return int((civil(to).Unix() - civil(from).Unix()) / 86400)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// WeekStart returns midnight of the Sunday that opens the week containing t.
func WeekStart(t time.Time) time.Time {
	d := Day(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// WeekDays returns the seven days, Sunday first, of the week containing t.
func WeekDays(t time.Time) []time.Time {
	start := WeekStart(t)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// DayName returns the English weekday name, e.g. "Sunday".
func DayName(t time.Time) string {
	return t.Weekday().String()
}

// FormatShort renders a day as "Jan 2".
func FormatShort(t time.Time) string {
	return t.Format("Jan 2")
}

// WeekLabel renders the week starting at start as "Week of Jan 2 - Jan 8".
func WeekLabel(start time.Time) string {
	return fmt.Sprintf("Week of %s - %s", FormatShort(start), FormatShort(start.AddDate(0, 0, 6)))
}

// AgeInMonths counts whole calendar months between birth and today,
// ignoring the day of month. Future birth dates yield 0.
func AgeInMonths(birth, today time.Time) int {
	months := (today.Year()-birth.Year())*12 + int(today.Month()-birth.Month())
	if months < 0 {
		return 0
	}
	return months
}

// FormatAge renders an age in months as "7 mo", "2 yr" or "1 yr 3 mo".
func FormatAge(months int) string {
	if months < 12 {
		return fmt.Sprintf("%d mo", months)
	}
	years, rest := months/12, months%12
	if rest == 0 {
		return fmt.Sprintf("%d yr", years)
	}
	return fmt.Sprintf("%d yr %d mo", years, rest)
}
