package models

// Stats aggregates the financial totals for a month or a year.
// Profit counts only collected money: TotalPaid - TotalExpenses.
// Remaining amounts are receivables and stay out of profit.
type Stats struct {
	TotalPaid      float64 `json:"totalPaid"`
	TotalRemaining float64 `json:"totalRemaining"`
	TotalExpenses  float64 `json:"totalExpenses"`
	Profit         float64 `json:"profit"`
	BookingsCount  int     `json:"bookingsCount"`
	ExpensesCount  int     `json:"expensesCount"`
}
