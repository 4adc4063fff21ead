package main

import (
	"fmt"
	"strings"

	"babymenu/internal/calendar"
	"babymenu/internal/catalog"
	"babymenu/internal/metrics"
	"babymenu/internal/planner"
)

// formatResolution renders "🍌 Banana", "🍌 Banana (manual)" or the
// placeholder when nothing is planned.
func formatResolution(res planner.Resolution, categories *catalog.Table) string {
	if !res.HasFood() {
		return res.Label()
	}
	s := categories.Info(res.Category).Icon + " " + res.Food
	if res.Manual {
		s += " (manual)"
	}
	return s
}

func formatWeek(child planner.Child, plan planner.WeekPlan, categories *catalog.Table) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s\n", child.Name, plan.Label()))
	for _, d := range plan.Days {
		marker := " "
		if d.IsToday {
			marker = ">"
		}
		sb.WriteString(fmt.Sprintf("%s %-3s %-6s %s\n", marker, d.Day.Format("Mon"), calendar.FormatShort(d.Day), formatResolution(d.Resolution, categories)))
	}
	return sb.String()
}

func formatFoods(foods []planner.CatalogEntry, categories *catalog.Table) string {
	if len(foods) == 0 {
		return "No foods yet. Add one with 'babymenu food add CATEGORY NAME'.\n"
	}
	var sb strings.Builder
	for i, f := range foods {
		info := categories.Info(f.Category)
		sb.WriteString(fmt.Sprintf("%2d. %s %s (%s)\n", i+1, info.Icon, f.Name, info.Name))
	}
	return sb.String()
}

func formatChildren(children []planner.Child, selectedID string, ages func(planner.Child) int) string {
	if len(children) == 0 {
		return "No children yet. Add one with 'babymenu child add NAME boy|girl YYYY-MM-DD'.\n"
	}
	var sb strings.Builder
	for i, c := range children {
		marker := " "
		if c.ID == selectedID {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %d. %s, %s, born %s\n", marker, i+1, c.Name, calendar.FormatAge(ages(c)), c.BirthDate))
	}
	return sb.String()
}

func formatStats(child planner.Child, s metrics.Summary) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Feeding stats for %s\n", child.Name))
	sb.WriteString(fmt.Sprintf("  Total feedings: %d over %d days\n", s.TotalFeedings, s.DaysWithFeeds))

	if len(s.Daily) > 0 {
		sb.WriteString("\nDaily\n")
		for _, d := range s.Daily {
			sb.WriteString(fmt.Sprintf("  %s  %s %d\n", d.Date, strings.Repeat("#", d.Count), d.Count))
		}
	}

	sb.WriteString("\nFoods\n")
	if len(s.Foods) == 0 {
		sb.WriteString("  no feedings recorded\n")
	}
	for _, f := range s.Foods {
		sb.WriteString(fmt.Sprintf("  %-20s %d\n", f.Food, f.Count))
	}
	return sb.String()
}
