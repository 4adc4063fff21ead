package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"babymenu/internal/metrics"
	"babymenu/internal/report"
)

var (
	historyResetAll bool
	statsDays       int
	exportXLSX      string
)

var feedCmd = &cobra.Command{
	Use:   "feed [FOOD...]",
	Short: "Record a feeding, today's food when FOOD is omitted",
	Run:   runFeed,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the feeding history",
}

var historyResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the feeding history of the child, or of everyone with --all",
	Args:  cobra.NoArgs,
	Run:   runHistoryReset,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show feeding statistics",
	Args:  cobra.NoArgs,
	Run:   runStats,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the feeding history as an XLSX workbook",
	Args:  cobra.NoArgs,
	Run:   runExport,
}

func init() {
	historyResetCmd.Flags().BoolVar(&historyResetAll, "all", false, "Reset the history of every child")
	statsCmd.Flags().IntVar(&statsDays, "days", 7, "Number of days in the daily view")
	exportCmd.Flags().StringVar(&exportXLSX, "xlsx", "", "Workbook file to write")
	_ = exportCmd.MarkFlagRequired("xlsx")
	historyCmd.AddCommand(historyResetCmd)
	rootCmd.AddCommand(feedCmd, historyCmd, statsCmd, exportCmd)
}

func runFeed(cmd *cobra.Command, args []string) {
	a := mustGetApp()
	defer a.Close()
	ctx := newContext()
	child := mustGetChild(ctx, a.Service)

	food := strings.Join(args, " ")
	if food == "" {
		res, err := a.Service.Today(ctx, child.ID)
		if err != nil {
			fatalf("%v", err)
		}
		if !res.HasFood() {
			fatalf("nothing is planned today; name the food")
		}
		food = res.Food
	}

	day, err := a.Service.RecordFeeding(ctx, child.ID, food)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s for %s. Feedings today: %d.\n", food, child.Name, day.Count)
}

func runHistoryReset(cmd *cobra.Command, args []string) {
	a := mustGetApp()
	defer a.Close()
	ctx := newContext()

	if historyResetAll {
		if !confirmer(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete the feeding history of every child?")() {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return
		}
		if err := a.Service.ResetAllHistory(ctx); err != nil {
			fatalf("%v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All feeding history deleted.")
		return
	}

	child := mustGetChild(ctx, a.Service)
	if !confirmer(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete %s's feeding history?", child.Name))() {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return
	}
	if err := a.Service.ResetHistory(ctx, child.ID); err != nil {
		fatalf("%v", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Feeding history of %s deleted.\n", child.Name)
}

func runStats(cmd *cobra.Command, args []string) {
	a := mustGetApp()
	defer a.Close()
	ctx := newContext()
	child := mustGetChild(ctx, a.Service)

	history, err := a.Service.History(ctx, child.ID)
	if err != nil {
		fatalf("%v", err)
	}
	summary := metrics.Summarize(history, a.Service.CurrentDate(), statsDays)
	fmt.Fprint(cmd.OutOrStdout(), formatStats(child, summary))
}

func runExport(cmd *cobra.Command, args []string) {
	a := mustGetApp()
	defer a.Close()
	ctx := newContext()
	child := mustGetChild(ctx, a.Service)

	history, err := a.Service.History(ctx, child.ID)
	if err != nil {
		fatalf("%v", err)
	}
	f, err := os.Create(exportXLSX)
	if err != nil {
		fatalf("failed to create %s: %v", exportXLSX, err)
	}
	defer f.Close()
	if err := report.WriteHistoryXLSX(f, child, history); err != nil {
		fatalf("%v", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d days of history to %s\n", len(history), exportXLSX)
}
