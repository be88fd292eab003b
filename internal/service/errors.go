package service

import "errors"

var (
	// ErrDayFullyBooked means the target date already has distinct morning
	// and evening bookings, so a full-day booking cannot be placed.
	ErrDayFullyBooked = errors.New("day is fully booked")

	// ErrConfirmationRequired means the slot change would delete existing
	// bookings and the caller must confirm the returned plan first.
	ErrConfirmationRequired = errors.New("slot change requires confirmation")

	// ErrPlanNotFound means the supplied plan id is unknown or expired.
	ErrPlanNotFound = errors.New("pending plan not found or expired")

	// ErrPlanMismatch means the supplied plan was made for a different
	// date or period than the booking being created.
	ErrPlanMismatch = errors.New("pending plan does not match the requested slot")

	// ErrSlotOccupied rejects an edit that would move a booking onto a
	// slot another booking already holds.
	ErrSlotOccupied = errors.New("target slot is already booked")

	// ErrBookingNotFound is returned for identifier-matched operations on
	// a missing booking.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrExpenseNotFound is returned for identifier-matched operations on
	// a missing expense.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrInvalidInput rejects malformed input at the service boundary.
	ErrInvalidInput = errors.New("invalid input")
)
