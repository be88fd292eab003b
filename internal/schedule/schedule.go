// Package schedule decides how bookings occupy the morning and evening
// slots of a calendar date, and what has to happen before a new booking
// may take an already occupied slot.
package schedule

import (
	"time"

	"daybook/internal/models"
)

// ResolveDay classifies the occupancy of one date. A full-day booking fills
// both slots with the same instance and takes precedence over single-period
// bookings for that date. Each slot holds at most one booking.
func ResolveDay(bookings []models.Booking, date models.Date) models.DaySlots {
	var slots models.DaySlots
	for i := range bookings {
		b := &bookings[i]
		if b.Date != date {
			continue
		}
		switch b.Period {
		case models.PeriodFullDay:
			// Full-day wins: reported identically in both slots.
			return models.DaySlots{Morning: b, Evening: b}
		case models.PeriodMorning:
			if slots.Morning == nil {
				slots.Morning = b
			}
		case models.PeriodEvening:
			if slots.Evening == nil {
				slots.Evening = b
			}
		}
	}
	return slots
}

// ResolveMonth builds the occupancy map for every date of a month that has
// at least one booking.
func ResolveMonth(bookings []models.Booking, year int, month time.Month) map[models.Date]models.DaySlots {
	out := make(map[models.Date]models.DaySlots)
	for _, b := range bookings {
		if !b.Date.SameMonth(year, month) {
			continue
		}
		if _, done := out[b.Date]; done {
			continue
		}
		out[b.Date] = ResolveDay(bookings, b.Date)
	}
	return out
}

// Plan is the first half of the two-phase slot-change protocol: it states
// whether the targeted (date, period) pair can be taken and which existing
// bookings must be deleted first. Computing a plan has no side effects; the
// caller obtains the user's confirmation and then applies it.
type Plan struct {
	Allowed              bool     `json:"allowed"`
	RequiresConfirmation bool     `json:"requiresConfirmation"`
	ToDelete             []string `json:"toDelete,omitempty"`
}

// PlanSlotChange determines what a new booking targeting targetPeriod on an
// occupied day would displace. editingID, when non-empty, marks an in-place
// edit of an existing booking: the edited booking is never displaced.
//
// A full-day target is refused outright when the morning and the evening are
// held by two distinct single-period bookings; every other occupied target
// needs confirmation and lists the occupants to delete, deduplicated by
// identifier so a full-day occupant is deleted once even though it shows up
// in both slots.
func PlanSlotChange(slots models.DaySlots, targetPeriod models.Period, editingID string) Plan {
	if editingID != "" {
		// In-place edit: identifier-matched replacement, nothing is deleted.
		return Plan{Allowed: true}
	}

	switch targetPeriod {
	case models.PeriodMorning:
		return planSingleSlot(slots.Morning)
	case models.PeriodEvening:
		return planSingleSlot(slots.Evening)
	case models.PeriodFullDay:
		return planFullDay(slots)
	}
	return Plan{}
}

func planSingleSlot(occupant *models.Booking) Plan {
	if occupant == nil {
		return Plan{Allowed: true}
	}
	// Deleting a full-day occupant vacates both slots; that is acceptable
	// collateral since it is a single entity.
	return Plan{
		Allowed:              true,
		RequiresConfirmation: true,
		ToDelete:             []string{occupant.ID},
	}
}

func planFullDay(slots models.DaySlots) Plan {
	if slots.Empty() {
		return Plan{Allowed: true}
	}

	if slots.FullyBooked() && slots.Morning.ID != slots.Evening.ID {
		// Two distinct bookings cover the whole day: refuse, the operator
		// has to edit or remove them explicitly.
		return Plan{Allowed: false}
	}

	var toDelete []string
	seen := make(map[string]bool)
	for _, b := range []*models.Booking{slots.Morning, slots.Evening} {
		if b == nil || seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		toDelete = append(toDelete, b.ID)
	}

	return Plan{Allowed: true, RequiresConfirmation: true, ToDelete: toDelete}
}

// BookingToEdit resolves which booking a direct click on a slot opens for
// editing. Morning and evening clicks open only single-period occupants; a
// full-day click opens the occupying full-day booking if there is one.
func BookingToEdit(slots models.DaySlots, targetPeriod models.Period) *models.Booking {
	switch targetPeriod {
	case models.PeriodMorning:
		if slots.Morning != nil && slots.Morning.Period == models.PeriodMorning {
			return slots.Morning
		}
	case models.PeriodEvening:
		if slots.Evening != nil && slots.Evening.Period == models.PeriodEvening {
			return slots.Evening
		}
	case models.PeriodFullDay:
		if slots.Morning != nil && slots.Morning.Period == models.PeriodFullDay {
			return slots.Morning
		}
	}
	return nil
}
