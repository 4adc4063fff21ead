package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"babymenu/internal/calendar"
	"babymenu/internal/planner"
	"babymenu/internal/report"
)

var (
	weekOffset int
	weekHTML   string
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's food",
	Args:  cobra.NoArgs,
	Run:   runToday,
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the week plan",
	Long: `Show the Sunday to Saturday plan.

Examples:
  babymenu week
  babymenu week --offset=1
  babymenu week --html=week.html`,
	Args: cobra.NoArgs,
	Run:  runWeek,
}

var fillWeekCmd = &cobra.Command{
	Use:   "fill-week",
	Short: "Pin every day of this week to the rotation's pick",
	Args:  cobra.NoArgs,
	Run:   runFillWeek,
}

var overrideCmd = &cobra.Command{
	Use:   "override",
	Short: "Pin days to foods",
}

var overrideSetCmd = &cobra.Command{
	Use:   "set DATE FOOD|NUMBER",
	Short: "Pin DATE (YYYY-MM-DD or today) to a food or its catalog number",
	Long: `Pin DATE to a food given by name or by its number in 'food list'.
A food whose name is a number is matched by name first.`,
	Args:  cobra.MinimumNArgs(2),
	Run:   runOverrideSet,
}

var overrideClearCmd = &cobra.Command{
	Use:   "clear DATE",
	Short: "Return DATE to the rotation",
	Args:  cobra.ExactArgs(1),
	Run:   runOverrideClear,
}

var overrideResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop every manual pick",
	Args:  cobra.NoArgs,
	Run:   runOverrideReset,
}

func init() {
	weekCmd.Flags().IntVar(&weekOffset, "offset", 0, "Weeks from the current one (negative for past weeks)")
	weekCmd.Flags().StringVar(&weekHTML, "html", "", "Also write the week as an HTML page to this file")
	overrideCmd.AddCommand(overrideSetCmd, overrideClearCmd, overrideResetCmd)
	rootCmd.AddCommand(todayCmd, weekCmd, fillWeekCmd, overrideCmd)
}

func parseDay(s string) time.Time {
	switch strings.ToLower(s) {
	case "today":
		return calendar.Day(time.Now())
	case "tomorrow":
		return calendar.Day(time.Now()).AddDate(0, 0, 1)
	}
	d, err := calendar.ParseISO(s, time.Local)
	if err != nil {
		fatalf("%v", err)
	}
	return d
}

// catalogNumber reports whether value is a 1-based catalog number rather
// than a food name. A food literally named value wins over the number.
func catalogNumber(foods []planner.CatalogEntry, value string) (int, bool) {
	for _, f := range foods {
		if f.Name == value {
			return 0, false
		}
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}

func runToday(cmd *cobra.Command, args []string) {
	a := mustGetApp()
	defer a.Close()
	ctx := newContext()
	child := mustGetChild(ctx, a.Service)

	res, err := a.Service.Today(ctx, child.ID)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s, %s: %s\n", child.Name, res.Date, formatResolution(res, a.Service.Categories()))
}

func runWeek(cmd *cobra.Command, args []string) {
	a := mustGetApp()
	defer a.Close()
	ctx := newContext()
	child := mustGetChild(ctx, a.Service)

	plan, err := a.Service.Week(ctx, child.ID, weekOffset)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatWeek(child, plan, a.Service.Categories()))

	if weekHTML == "" {
		return
	}
	f, err := os.Create(weekHTML)
	if err != nil {
		fatalf("failed to create %s: %v", weekHTML, err)
	}
	defer f.Close()
	if err := report.WriteWeekHTML(f, child, a.Service.AgeInMonths(child), plan, a.Service.Categories()); err != nil {
		fatalf("%v", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", weekHTML)
}

func runFillWeek(cmd *cobra.Command, args []string) {
	a := mustGetApp()
	defer a.Close()
	ctx := newContext()
	child := mustGetChild(ctx, a.Service)

	if err := a.Service.FillWeekAutomatically(ctx, child.ID); err != nil {
		fatalf("%v", err)
	}
	plan, err := a.Service.Week(ctx, child.ID, 0)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatWeek(child, plan, a.Service.Categories()))
}

func runOverrideSet(cmd *cobra.Command, args []string) {
	a := mustGetApp()
	defer a.Close()
	ctx := newContext()
	child := mustGetChild(ctx, a.Service)
	day := parseDay(args[0])
	value := strings.Join(args[1:], " ")

	foods, err := a.Service.Foods(ctx, child.ID)
	if err != nil {
		fatalf("%v", err)
	}

	food := value
	if n, ok := catalogNumber(foods, value); ok {
		food, err = a.Service.SetOverrideChoice(ctx, child.ID, day, n)
		if err != nil {
			fatalf("%v", err)
		}
	} else if err := a.Service.SetOverride(ctx, child.ID, day, value); err != nil {
		fatalf("%v", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s (manual)\n", calendar.DayName(day), calendar.FormatISO(day), food)
}

func runOverrideClear(cmd *cobra.Command, args []string) {
	a := mustGetApp()
	defer a.Close()
	ctx := newContext()
	child := mustGetChild(ctx, a.Service)
	day := parseDay(args[0])

	if err := a.Service.ClearOverride(ctx, child.ID, day); err != nil {
		fatalf("%v", err)
	}
	res, err := a.Service.ResolveDay(ctx, child.ID, day)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", calendar.DayName(day), res.Date, formatResolution(res, a.Service.Categories()))
}

func runOverrideReset(cmd *cobra.Command, args []string) {
	a := mustGetApp()
	defer a.Close()
	ctx := newContext()
	child := mustGetChild(ctx, a.Service)

	if !confirmer(cmd.InOrStdin(), cmd.OutOrStdout(), "Drop every manual pick?")() {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return
	}
	if err := a.Service.ResetToAutomatic(ctx, child.ID); err != nil {
		fatalf("%v", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Manual picks cleared.")
}
