// Package export renders a date range of bookings and expenses into an
// Excel workbook for offline bookkeeping.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"daybook/internal/models"
	"daybook/internal/money"
	"daybook/internal/stats"

	"github.com/xuri/excelize/v2"
)

const (
	sheetBookings = "Bookings"
	sheetExpenses = "Expenses"
	sheetSummary  = "Summary"
)

// WriteReport builds the workbook for [from, to] and saves it under dir.
// It returns the saved file path.
func WriteReport(dir string, bookings []models.Booking, expenses []models.Expense, from, to models.Date, formatter *money.Formatter) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	inRange := func(d models.Date) bool {
		return d.String() >= from.String() && d.String() <= to.String()
	}

	if err := writeBookingsSheet(f, bookings, inRange); err != nil {
		return "", err
	}
	if err := writeExpensesSheet(f, expenses, inRange); err != nil {
		return "", err
	}
	if err := writeSummarySheet(f, bookings, expenses, from, to, formatter, inRange); err != nil {
		return "", err
	}

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("daybook_%s_to_%s.xlsx", from.String(), to.String())
	path := filepath.Join(dir, fileName)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

func writeBookingsSheet(f *excelize.File, bookings []models.Booking, inRange func(models.Date) bool) error {
	index, err := f.NewSheet(sheetBookings)
	if err != nil {
		return fmt.Errorf("create bookings sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"Date", "Period", "Customer", "Phone", "Address", "Notes", "Total", "Paid", "Remaining"}
	writeHeaderRow(f, sheetBookings, headers)

	row := 2
	for _, b := range bookings {
		if !inRange(b.Date) {
			continue
		}
		values := []interface{}{
			b.Date.String(), b.Period.String(), b.CustomerName, b.PhoneNumber,
			b.Address, b.Notes, b.TotalAmount, b.PaidAmount, b.RemainingAmount,
		}
		writeRow(f, sheetBookings, row, values)
		row++
	}

	_ = f.SetColWidth(sheetBookings, "A", "F", 18)
	return nil
}

func writeExpensesSheet(f *excelize.File, expenses []models.Expense, inRange func(models.Date) bool) error {
	if _, err := f.NewSheet(sheetExpenses); err != nil {
		return fmt.Errorf("create expenses sheet: %w", err)
	}

	writeHeaderRow(f, sheetExpenses, []string{"Date", "Name", "Amount"})

	row := 2
	for _, e := range expenses {
		if !inRange(e.Date) {
			continue
		}
		writeRow(f, sheetExpenses, row, []interface{}{e.Date.String(), e.Name, e.Amount})
		row++
	}

	_ = f.SetColWidth(sheetExpenses, "A", "C", 18)
	return nil
}

func writeSummarySheet(f *excelize.File, bookings []models.Booking, expenses []models.Expense, from, to models.Date, formatter *money.Formatter, inRange func(models.Date) bool) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	totals := stats.Aggregate(bookings, expenses, inRange)

	_ = f.SetCellValue(sheetSummary, "A1", fmt.Sprintf("Period: %s - %s", from.String(), to.String()))
	_ = f.MergeCell(sheetSummary, "A1", "B1")

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetSummary, "A1", "A1", style)

	rows := []struct {
		label string
		value string
	}{
		{"Total paid", formatter.Format(totals.TotalPaid)},
		{"Total remaining", formatter.Format(totals.TotalRemaining)},
		{"Total expenses", formatter.Format(totals.TotalExpenses)},
		{"Profit", formatter.Format(totals.Profit)},
		{"Bookings", fmt.Sprintf("%d", totals.BookingsCount)},
		{"Expenses", fmt.Sprintf("%d", totals.ExpensesCount)},
	}
	for i, r := range rows {
		cellA, _ := excelize.CoordinatesToCellName(1, i+3)
		cellB, _ := excelize.CoordinatesToCellName(2, i+3)
		_ = f.SetCellValue(sheetSummary, cellA, r.label)
		_ = f.SetCellValue(sheetSummary, cellB, r.value)
	}

	_ = f.SetColWidth(sheetSummary, "A", "B", 22)
	return nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) {
	style, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, style)
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}
