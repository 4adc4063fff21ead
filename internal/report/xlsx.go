package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"babymenu/internal/metrics"
	"babymenu/internal/planner"
)

// Sheet names of the history workbook.
const (
	HistorySheet = "History"
	FoodsSheet   = "Foods"
)

// WriteHistoryXLSX writes the feeding history as a workbook with one row
// per day on HistorySheet and the per-food totals on FoodsSheet.
func WriteHistoryXLSX(w io.Writer, child planner.Child, history map[string]planner.FeedingDay) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", HistorySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := wb.NewSheet(FoodsSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", FoodsSheet, err)
	}

	header, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeHistorySheet(wb, header, history); err != nil {
		return err
	}
	if err := writeFoodsSheet(wb, header, metrics.FoodTotals(history)); err != nil {
		return err
	}
	if err := wb.SetDocProps(&excelize.DocProperties{
		Title:   fmt.Sprintf("%s feeding history", child.Name),
		Creator: "babymenu",
	}); err != nil {
		return fmt.Errorf("failed to set document properties: %w", err)
	}

	if _, err := wb.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeHistorySheet(wb *excelize.File, header int, history map[string]planner.FeedingDay) error {
	dates := make([]string, 0, len(history))
	for d := range history {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	if err := writeRow(wb, HistorySheet, 1, []interface{}{"Date", "Count", "Items"}); err != nil {
		return err
	}
	for i, d := range dates {
		day := history[d]
		if err := writeRow(wb, HistorySheet, i+2, []interface{}{d, day.Count, strings.Join(day.Items, ", ")}); err != nil {
			return err
		}
	}
	return styleSheet(wb, HistorySheet, header, "C", 40)
}

func writeFoodsSheet(wb *excelize.File, header int, totals []metrics.FoodTotal) error {
	if err := writeRow(wb, FoodsSheet, 1, []interface{}{"Food", "Times fed"}); err != nil {
		return err
	}
	for i, t := range totals {
		if err := writeRow(wb, FoodsSheet, i+2, []interface{}{t.Food, t.Count}); err != nil {
			return err
		}
	}
	return styleSheet(wb, FoodsSheet, header, "B", 12)
}

func writeRow(wb *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := wb.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func styleSheet(wb *excelize.File, sheet string, header int, lastCol string, lastWidth float64) error {
	if err := wb.SetCellStyle(sheet, "A1", lastCol+"1", header); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	if err := wb.SetColWidth(sheet, "A", "A", 14); err != nil {
		return err
	}
	return wb.SetColWidth(sheet, lastCol, lastCol, lastWidth)
}
