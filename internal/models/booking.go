package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Period says which part of a day a booking covers.
type Period string

const (
	PeriodMorning Period = "morning"
	PeriodEvening Period = "evening"
	PeriodFullDay Period = "full-day"
)

// ParsePeriod validates the closed set of period tags. Anything else is
// rejected at the boundary.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodMorning, PeriodEvening, PeriodFullDay:
		return Period(s), nil
	}
	return "", fmt.Errorf("invalid period %q", s)
}

func (p Period) Valid() bool {
	_, err := ParsePeriod(string(p))
	return err == nil
}

func (p Period) String() string { return string(p) }

func (p *Period) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParsePeriod(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Booking is a reservation of a morning, evening or full-day slot on a
// calendar date, together with the customer and payment details.
// RemainingAmount is maintained as round2(TotalAmount - PaidAmount) by the
// service layer on every create and update; it is stored, not re-derived.
type Booking struct {
	ID              string    `json:"id"`
	Date            Date      `json:"date"`
	Period          Period    `json:"period"`
	CustomerName    string    `json:"customerName"`
	PhoneNumber     string    `json:"phoneNumber"`
	Address         string    `json:"address"`
	Notes           string    `json:"notes,omitempty"`
	TotalAmount     float64   `json:"totalAmount"`
	PaidAmount      float64   `json:"paidAmount"`
	RemainingAmount float64   `json:"remainingAmount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// DaySlots is the derived occupancy of one calendar date. A full-day booking
// appears as the same instance in both slots. Nil means the slot is vacant.
type DaySlots struct {
	Morning *Booking `json:"morning,omitempty"`
	Evening *Booking `json:"evening,omitempty"`
}

// FullyBooked reports whether both slots are taken.
func (d DaySlots) FullyBooked() bool {
	return d.Morning != nil && d.Evening != nil
}

// Empty reports whether neither slot is taken.
func (d DaySlots) Empty() bool {
	return d.Morning == nil && d.Evening == nil
}
