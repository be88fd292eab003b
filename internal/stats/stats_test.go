package stats

import (
	"testing"
	"time"

	"daybook/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	t.Run("EmptyCollectionsAreAllZero", func(t *testing.T) {
		s := Aggregate(nil, nil, func(models.Date) bool { return true })
		assert.Equal(t, models.Stats{}, s)
	})

	t.Run("ProfitCountsCollectedMoneyOnly", func(t *testing.T) {
		bookings := []models.Booking{
			{Date: models.NewDate(2025, time.May, 1), PaidAmount: 100, RemainingAmount: 900},
		}
		expenses := []models.Expense{
			{Date: models.NewDate(2025, time.May, 2), Amount: 30},
		}

		s := Aggregate(bookings, expenses, func(models.Date) bool { return true })
		assert.Equal(t, 100.0, s.TotalPaid)
		assert.Equal(t, 900.0, s.TotalRemaining)
		assert.Equal(t, 30.0, s.TotalExpenses)
		assert.Equal(t, 70.0, s.Profit)
	})

	t.Run("NegativeProfit", func(t *testing.T) {
		expenses := []models.Expense{{Date: models.NewDate(2025, time.May, 2), Amount: 50}}
		s := Aggregate(nil, expenses, func(models.Date) bool { return true })
		assert.Equal(t, -50.0, s.Profit)
		assert.Equal(t, 1, s.ExpensesCount)
		assert.Equal(t, 0, s.BookingsCount)
	})
}

func TestMonthly(t *testing.T) {
	bookings := []models.Booking{
		{Date: models.NewDate(2025, time.May, 10), PaidAmount: 100, RemainingAmount: 20},
		{Date: models.NewDate(2025, time.May, 20), PaidAmount: 50},
		{Date: models.NewDate(2025, time.June, 1), PaidAmount: 999},
		{Date: models.NewDate(2024, time.May, 1), PaidAmount: 999},
	}
	expenses := []models.Expense{
		{Date: models.NewDate(2025, time.May, 5), Amount: 40},
		{Date: models.NewDate(2025, time.April, 30), Amount: 999},
	}

	s := Monthly(bookings, expenses, 2025, time.May)
	assert.Equal(t, 150.0, s.TotalPaid)
	assert.Equal(t, 20.0, s.TotalRemaining)
	assert.Equal(t, 40.0, s.TotalExpenses)
	assert.Equal(t, 110.0, s.Profit)
	assert.Equal(t, 2, s.BookingsCount)
	assert.Equal(t, 1, s.ExpensesCount)
}

func TestYearly(t *testing.T) {
	bookings := []models.Booking{
		{Date: models.NewDate(2025, time.January, 1), PaidAmount: 10},
		{Date: models.NewDate(2025, time.December, 31), PaidAmount: 20},
		{Date: models.NewDate(2026, time.January, 1), PaidAmount: 999},
	}
	expenses := []models.Expense{
		{Date: models.NewDate(2025, time.July, 1), Amount: 5},
	}

	s := Yearly(bookings, expenses, 2025)
	assert.Equal(t, 30.0, s.TotalPaid)
	assert.Equal(t, 5.0, s.TotalExpenses)
	assert.Equal(t, 25.0, s.Profit)
	assert.Equal(t, 2, s.BookingsCount)
}
