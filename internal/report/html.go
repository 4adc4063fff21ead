// Package report renders planner data for people: an HTML week grid and
// an XLSX feeding workbook.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"babymenu/internal/calendar"
	"babymenu/internal/catalog"
	"babymenu/internal/planner"
)

//go:embed templates/week.html
var templatesFS embed.FS

var weekTemplate = template.Must(template.ParseFS(templatesFS, "templates/week.html"))

type weekCard struct {
	DayName  string
	Date     string
	Food     string
	Icon     string
	Color    string
	Category string
	Manual   bool
	Today    bool
	Empty    bool
}

type weekPage struct {
	Title  string
	Child  string
	Age    string
	Theme  string
	Label  string
	Cards  []weekCard
	Manual int
}

// WriteWeekHTML renders plan as a standalone HTML page. ageMonths is shown
// next to the child's name.
func WriteWeekHTML(w io.Writer, child planner.Child, ageMonths int, plan planner.WeekPlan, categories *catalog.Table) error {
	page := weekPage{
		Title: fmt.Sprintf("%s - %s", child.Name, plan.Label()),
		Child: child.Name,
		Age:   calendar.FormatAge(ageMonths),
		Theme: string(child.Gender),
		Label: plan.Label(),
	}
	for _, d := range plan.Days {
		info := categories.Info(d.Category)
		card := weekCard{
			DayName:  calendar.DayName(d.Day),
			Date:     calendar.FormatShort(d.Day),
			Food:     d.Label(),
			Icon:     info.Icon,
			Color:    info.Color,
			Category: info.Name,
			Manual:   d.Manual,
			Today:    d.IsToday,
			Empty:    !d.HasFood(),
		}
		if d.Manual {
			page.Manual++
		}
		page.Cards = append(page.Cards, card)
	}

	if err := weekTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render week: %w", err)
	}
	return nil
}
