package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"babymenu/internal/calendar"
	"babymenu/internal/catalog"
	"babymenu/internal/metrics"
	"babymenu/internal/planner"
)

const helpText = `👶 *Baby Menu*

/today - today's food
/week - this week's plan
/foods - the catalog
/addfood <category> <name> - add a food
/removefood <name> - remove a food
/fed <food> - record a feeding, today's food when omitted
/stats - feeding statistics
/fill - pin the whole week to the rotation
/reset - drop all manual picks
/children - list children
/select <number> - switch child
/addchild <name> <boy|girl> <YYYY-MM-DD> - add a child`

const noChildText = "👶 No child selected. Add one with /addchild <name> <boy|girl> <YYYY-MM-DD>."

func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func foodLabel(res planner.Resolution, categories *catalog.Table) string {
	if !res.HasFood() {
		return "_" + planner.NoFoodsLabel + "_"
	}
	label := categories.Info(res.Category).Icon + " " + esc(res.Food)
	if res.Manual {
		label += " ✏️"
	}
	return label
}

func formatToday(child planner.Child, res planner.Resolution, categories *catalog.Table) string {
	return fmt.Sprintf("🍽 *Today for %s*\n\n%s", esc(child.Name), foodLabel(res, categories))
}

func formatWeek(child planner.Child, plan planner.WeekPlan, categories *catalog.Table) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 *%s* · %s\n\n", esc(child.Name), plan.Label()))
	for _, d := range plan.Days {
		prefix := "•"
		if d.IsToday {
			prefix = "👉"
		}
		sb.WriteString(fmt.Sprintf("%s %s %s: %s\n", prefix, d.Day.Format("Mon"), calendar.FormatShort(d.Day), foodLabel(d.Resolution, categories)))
	}
	return sb.String()
}

func weekKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Previous", callbackWeekPrev),
			tgbotapi.NewInlineKeyboardButtonData("Today", callbackWeekToday),
			tgbotapi.NewInlineKeyboardButtonData("Next ▶️", callbackWeekNext),
		),
	)
}

func recalcKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Recalculate", callbackRecalcYes),
			tgbotapi.NewInlineKeyboardButtonData("Keep my picks", callbackRecalcNo),
		),
	)
}

func formatFoods(child planner.Child, foods []planner.CatalogEntry, categories *catalog.Table) string {
	if len(foods) == 0 {
		return fmt.Sprintf("🥄 *%s* has no foods yet. Add one with /addfood <category> <name>.", esc(child.Name))
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🥄 *Foods for %s*\n\n", esc(child.Name)))
	for i, f := range foods {
		info := categories.Info(f.Category)
		sb.WriteString(fmt.Sprintf("%d. %s %s (%s)\n", i+1, info.Icon, esc(f.Name), info.Name))
	}
	return sb.String()
}

func formatChildren(children []planner.Child, selectedID string, ages func(planner.Child) int) string {
	if len(children) == 0 {
		return noChildText
	}
	var sb strings.Builder
	sb.WriteString("👶 *Children*\n\n")
	for i, c := range children {
		mark := ""
		if c.ID == selectedID {
			mark = " ✅"
		}
		sb.WriteString(fmt.Sprintf("%d. %s, %s%s\n", i+1, esc(c.Name), calendar.FormatAge(ages(c)), mark))
	}
	return sb.String()
}

func formatStats(child planner.Child, s metrics.Summary) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *Feeding stats for %s*\n\n", esc(child.Name)))
	sb.WriteString(fmt.Sprintf("Total feedings: %d over %d days\n", s.TotalFeedings, s.DaysWithFeeds))

	sb.WriteString("\n*Last days*\n")
	for _, d := range s.Daily {
		sb.WriteString(fmt.Sprintf("• %s: %d\n", d.Date, d.Count))
	}

	sb.WriteString("\n*Most fed*\n")
	if len(s.Foods) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for i, f := range s.Foods {
		if i == 5 {
			break
		}
		sb.WriteString(fmt.Sprintf("• %s: %d\n", esc(f.Food), f.Count))
	}
	return sb.String()
}

func formatCategories(categories *catalog.Table) string {
	var names []string
	for _, c := range categories.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

// parseCommand splits "/addfood@BabyMenuBot fruits Kiwi" into "addfood"
// and "fruits Kiwi". Text that is not a command yields an empty command.
func parseCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	cmd, args, _ := strings.Cut(text[1:], " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return strings.ToLower(cmd), strings.TrimSpace(args)
}
