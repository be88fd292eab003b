package service

import (
	"time"

	"daybook/internal/export"
	"daybook/internal/models"
	"daybook/internal/money"
	"daybook/internal/schedule"
	"daybook/internal/stats"
)

// CalendarMonth is the month view: grid geometry plus the resolved slot
// occupancy for every date that has bookings.
type CalendarMonth struct {
	Year         int                        `json:"year"`
	Month        time.Month                 `json:"month"`
	DaysInMonth  int                        `json:"daysInMonth"`
	FirstWeekday time.Weekday               `json:"firstWeekday"`
	Days         map[string]models.DaySlots `json:"days"`
}

// MonthCalendar resolves the occupancy of every day of the month.
func (s *DaybookService) MonthCalendar(year int, month time.Month) CalendarMonth {
	s.mu.Lock()
	resolved := schedule.ResolveMonth(s.bookings, year, month)
	s.mu.Unlock()

	days := make(map[string]models.DaySlots, len(resolved))
	for date, slots := range resolved {
		days[date.String()] = copySlots(slots)
	}

	return CalendarMonth{
		Year:         year,
		Month:        month,
		DaysInMonth:  money.DaysInMonth(year, month),
		FirstWeekday: money.FirstWeekday(year, month),
		Days:         days,
	}
}

// DaySlots resolves one date's occupancy.
func (s *DaybookService) DaySlots(date models.Date) models.DaySlots {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySlots(schedule.ResolveDay(s.bookings, date))
}

// MonthlyStats aggregates the selected month.
func (s *DaybookService) MonthlyStats(year int, month time.Month) models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.Monthly(s.bookings, s.expenses, year, month)
}

// YearlyStats aggregates the selected year.
func (s *DaybookService) YearlyStats(year int) models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.Yearly(s.bookings, s.expenses, year)
}

// BookingMessage renders the shareable confirmation text for a booking.
func (s *DaybookService) BookingMessage(id string) (string, error) {
	booking, err := s.BookingByID(id)
	if err != nil {
		return "", err
	}
	return money.ComposeBookingMessage(*booking, s.formatter, s.labels), nil
}

// ExportRange writes the Excel report for [from, to] into the configured
// exports directory and returns the file path.
func (s *DaybookService) ExportRange(from, to models.Date) (string, error) {
	bookings := s.Bookings()
	expenses := s.Expenses()

	path, err := export.WriteReport(s.exportsDir, bookings, expenses, from, to, s.formatter)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("path", path).Msg("export written")
	return path, nil
}

// copySlots detaches the resolved pointers from the service-owned slice so
// callers cannot observe later mutations.
func copySlots(slots models.DaySlots) models.DaySlots {
	var out models.DaySlots
	if slots.Morning != nil {
		m := *slots.Morning
		out.Morning = &m
		if slots.Evening == slots.Morning {
			out.Evening = &m
			return out
		}
	}
	if slots.Evening != nil {
		e := *slots.Evening
		out.Evening = &e
	}
	return out
}
