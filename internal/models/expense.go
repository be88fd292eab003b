package models

import "time"

// Expense is a dated business cost counted against profit.
type Expense struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Date      Date      `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}
