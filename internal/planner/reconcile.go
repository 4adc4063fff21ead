package planner

import (
	"time"

	"babymenu/internal/calendar"
	"babymenu/internal/rotation"
)

// Confirm asks the user for consent. The policies below never prompt
// themselves; the caller injects the answer.
type Confirm func() bool

// AlwaysConfirm and NeverConfirm are fixed answers for non-interactive callers.
var (
	AlwaysConfirm Confirm = func() bool { return true }
	NeverConfirm  Confirm = func() bool { return false }
)

// futureDaysOfWeek returns the days of today's Sunday-start week that are
// strictly after today.
func futureDaysOfWeek(today time.Time) []time.Time {
	var out []time.Time
	for _, d := range calendar.WeekDays(today) {
		if calendar.DaysBetween(today, d) > 0 {
			out = append(out, d)
		}
	}
	return out
}

// ReconcileOnAdd rewrites the overrides of the rest of today's week with the
// rotation over foods, the catalog after the addition. Today and earlier
// days are left as they are.
func ReconcileOnAdd(overrides map[string]string, foods []string, today time.Time) {
	if len(foods) == 0 {
		return
	}
	for _, d := range futureDaysOfWeek(today) {
		overrides[calendar.FormatISO(d)] = rotation.Resolve(d, foods)
	}
}

// ReconcileOnRemove is ReconcileOnAdd for a removal: with an empty catalog
// the future entries are deleted instead of pointing at a removed food.
func ReconcileOnRemove(overrides map[string]string, foods []string, today time.Time) {
	for _, d := range futureDaysOfWeek(today) {
		key := calendar.FormatISO(d)
		if len(foods) > 0 {
			overrides[key] = rotation.Resolve(d, foods)
		} else {
			delete(overrides, key)
		}
	}
}

// FillWeek replaces every override of the child with the rotation result
// for all seven days of today's week. It reports false for an empty catalog
// and leaves the state untouched in that case.
func FillWeek(st *State, childID string, today time.Time) bool {
	foods := st.Foods[childID]
	if len(foods) == 0 {
		return false
	}
	delete(st.Overrides, childID)
	overrides := st.overridesFor(childID, true)
	for _, d := range calendar.WeekDays(today) {
		overrides[calendar.FormatISO(d)] = rotation.Resolve(d, foods)
	}
	return true
}

// ResetToAutomatic drops every override of the child.
func ResetToAutomatic(st *State, childID string) {
	delete(st.Overrides, childID)
}
