package planner

import (
	"time"

	"babymenu/internal/calendar"
	"babymenu/internal/catalog"
	"babymenu/internal/rotation"
)

// NoFoodsLabel is what front ends show for a day without any food.
const NoFoodsLabel = "No products added"

// Resolution is the effective food of one day.
type Resolution struct {
	Date     string
	Food     string
	Manual   bool
	Category catalog.Category
}

// HasFood is false when the child has neither an override nor a catalog.
func (r Resolution) HasFood() bool {
	return r.Food != ""
}

// Label returns the food, or NoFoodsLabel when there is none.
func (r Resolution) Label() string {
	if r.Food == "" {
		return NoFoodsLabel
	}
	return r.Food
}

// DayPlan is a Resolution placed in a week grid.
type DayPlan struct {
	Resolution
	Day     time.Time
	IsToday bool
}

// WeekPlan is the seven-day grid of a Sunday-start week.
type WeekPlan struct {
	Start time.Time
	Days  []DayPlan
}

// Label renders the week as "Week of Jan 2 - Jan 8".
func (w WeekPlan) Label() string {
	return calendar.WeekLabel(w.Start)
}

// ResolveDay applies override > rotation > nothing for date.
func ResolveDay(st *State, childID string, date time.Time) Resolution {
	key := calendar.FormatISO(date)
	res := Resolution{Date: key, Category: catalog.Other}

	if food, ok := st.Overrides[childID][key]; ok {
		res.Food = food
		res.Manual = true
	} else if foods := st.Foods[childID]; len(foods) > 0 {
		res.Food = rotation.Resolve(date, foods)
	}

	if res.Food != "" {
		res.Category = st.categoryOf(childID, res.Food)
	}
	return res
}

// ResolveWeek resolves the seven days of the week containing day.
func ResolveWeek(st *State, childID string, day, today time.Time) WeekPlan {
	days := calendar.WeekDays(day)
	plan := WeekPlan{Start: days[0], Days: make([]DayPlan, 0, len(days))}
	for _, d := range days {
		plan.Days = append(plan.Days, DayPlan{
			Resolution: ResolveDay(st, childID, d),
			Day:        d,
			IsToday:    calendar.SameDay(d, today),
		})
	}
	return plan
}
