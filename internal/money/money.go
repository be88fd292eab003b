// Package money bundles the money and calendar presentation helpers the
// booking flows share: amount rounding, currency display, month geometry
// and the shareable booking summary text.
package money

import (
	"math"
	"time"

	gomoney "github.com/Rhymond/go-money"
)

// Round2 rounds to 2 decimal places, half away from zero on the scaled
// integer. Remaining amounts are always stored through this so repeated
// edits do not accumulate floating-point drift.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Formatter renders amounts for display. Amounts are shown with zero
// fractional digits regardless of the currency's native exponent, matching
// how the operator quotes prices. Display only, never used in arithmetic.
type Formatter struct {
	inner *gomoney.Formatter
}

// NewFormatter builds a display formatter for an ISO currency code.
// Unknown codes fall back to IQD.
func NewFormatter(code string) *Formatter {
	cur := gomoney.GetCurrency(code)
	if cur == nil {
		cur = gomoney.GetCurrency(gomoney.IQD)
	}
	return &Formatter{
		inner: gomoney.NewFormatter(0, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template),
	}
}

// Format renders an amount rounded to whole currency units.
func (f *Formatter) Format(amount float64) string {
	return f.inner.Format(int64(math.Round(amount)))
}

// DaysInMonth returns the number of days in a Gregorian month,
// leap years included.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the first day of the month
// (Sunday == 0).
func FirstWeekday(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}
