package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mmynk/mokkicalc/internal/calculator"
	"github.com/mmynk/mokkicalc/internal/models"
)

const (
	SheetSummary  = "Summary"
	SheetExpenses = "Expenses"
	SheetDays     = "Days"
	SheetPeople   = "People"
)

// workbook wraps an excelize file and keeps the first error.
type workbook struct {
	f      *excelize.File
	header int
	err    error
}

func (wb *workbook) row(sheet string, row int, values ...any) {
	if wb.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		wb.err = err
		return
	}
	wb.err = wb.f.SetSheetRow(sheet, cell, &values)
}

func (wb *workbook) headerRow(sheet string, values ...any) {
	wb.row(sheet, 1, values...)
	if wb.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(values), 1)
	if err != nil {
		wb.err = err
		return
	}
	wb.err = wb.f.SetCellStyle(sheet, "A1", last, wb.header)
}

func (wb *workbook) widths(sheet string, widths ...float64) {
	for i, w := range widths {
		if wb.err != nil {
			return
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			wb.err = err
			return
		}
		wb.err = wb.f.SetColWidth(sheet, col, col, w)
	}
}

// WriteXLSX writes a workbook with a Summary, Expenses, Days and People sheet.
// The trip must have been recomputed.
func WriteXLSX(w io.Writer, t *models.Trip, summary calculator.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetExpenses, SheetDays, SheetPeople} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	wb := &workbook{f: f, header: header}
	writeSummary(wb, t, summary)
	writeExpenses(wb, t)
	writeDays(wb, t)
	writePeople(wb, t)
	if wb.err != nil {
		return fmt.Errorf("write workbook: %w", wb.err)
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(wb *workbook, t *models.Trip, s calculator.Summary) {
	wb.headerRow(SheetSummary, "Trip", t.Name)
	wb.row(SheetSummary, 2, "Total", s.Total.InexactFloat64())
	wb.row(SheetSummary, 3, "Covered", s.Covered.InexactFloat64())
	wb.row(SheetSummary, 4, "Unallocated", s.Unallocated.InexactFloat64())
	wb.row(SheetSummary, 5, "Balanced", yesNo(s.Balanced))

	row := 7
	for _, m := range models.AllMeals {
		wb.row(SheetSummary, row, titleCase(m.String()), t.Totals.Meals.Get(m).InexactFloat64())
		row++
	}

	if len(s.Warnings) > 0 {
		row++
		wb.row(SheetSummary, row, "Warnings")
		for _, w := range s.Warnings {
			row++
			wb.row(SheetSummary, row, string(w.Kind), w.Message)
		}
	}
	wb.widths(SheetSummary, 28, 60)
}

func writeExpenses(wb *workbook, t *models.Trip) {
	wb.headerRow(SheetExpenses, "Expense", "Price", "Meals", "Day")
	for i, e := range t.Expenses {
		day := "all"
		if idx := t.DayIndex(e.DayID); idx >= 0 {
			day = t.Days[idx].Name
		}
		wb.row(SheetExpenses, i+2, e.Name, e.Price.InexactFloat64(), e.Servings.String(), day)
	}
	wb.widths(SheetExpenses, 30, 12, 30, 16)
}

func writeDays(wb *workbook, t *models.Trip) {
	headers := mealHeaders("Day", "Serves")
	for _, m := range models.AllMeals {
		headers = append(headers, titleCase(m.String())+" eaters")
	}
	headers = append(headers, "Total")
	wb.headerRow(SheetDays, headers...)

	for i, d := range t.Days {
		values := []any{d.Name, d.Servings.String()}
		values = append(values, mealCells(d.Rates)...)
		for _, m := range models.AllMeals {
			values = append(values, d.AttendanceCounts.Get(m))
		}
		values = append(values, d.TotalRate.InexactFloat64())
		wb.row(SheetDays, i+2, values...)
	}
	wb.widths(SheetDays, 16, 30)
}

func writePeople(wb *workbook, t *models.Trip) {
	headers := []any{"Person", "Cost"}
	for _, d := range t.Days {
		headers = append(headers, d.Name)
	}
	wb.headerRow(SheetPeople, headers...)

	for i, p := range t.People {
		values := []any{p.Name, p.Cost.InexactFloat64()}
		for _, a := range p.Attendance {
			if a.Present {
				values = append(values, a.Servings.String())
			} else {
				values = append(values, "-")
			}
		}
		wb.row(SheetPeople, i+2, values...)
	}
	wb.widths(SheetPeople, 20, 12)
}
