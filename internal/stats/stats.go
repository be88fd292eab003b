// Package stats derives financial aggregates from the booking and expense
// collections. Everything here is a pure function of its inputs.
package stats

import (
	"time"

	"daybook/internal/models"
)

// DatePredicate selects which records fall inside the reporting period.
type DatePredicate func(models.Date) bool

// Aggregate filters both collections by the predicate and totals them up.
// Profit counts collected money only: remaining amounts are receivables and
// never feed into it. Empty inputs produce all-zero stats.
func Aggregate(bookings []models.Booking, expenses []models.Expense, pred DatePredicate) models.Stats {
	var s models.Stats

	for _, b := range bookings {
		if !pred(b.Date) {
			continue
		}
		s.TotalPaid += b.PaidAmount
		s.TotalRemaining += b.RemainingAmount
		s.BookingsCount++
	}

	for _, e := range expenses {
		if !pred(e.Date) {
			continue
		}
		s.TotalExpenses += e.Amount
		s.ExpensesCount++
	}

	s.Profit = s.TotalPaid - s.TotalExpenses
	return s
}

// Monthly aggregates records whose date falls in the given month.
func Monthly(bookings []models.Booking, expenses []models.Expense, year int, month time.Month) models.Stats {
	return Aggregate(bookings, expenses, func(d models.Date) bool {
		return d.SameMonth(year, month)
	})
}

// Yearly aggregates records whose date falls in the given year.
func Yearly(bookings []models.Booking, expenses []models.Expense, year int) models.Stats {
	return Aggregate(bookings, expenses, func(d models.Date) bool {
		return d.Year == year
	})
}
