package service

import (
	"context"
	"fmt"
	"time"

	"daybook/internal/events"
	"daybook/internal/metrics"
	"daybook/internal/models"
	"daybook/internal/money"
	"daybook/internal/repository"
	"daybook/internal/schedule"

	"github.com/google/uuid"
)

// BookingInput carries the operator-entered fields of a booking. Identifier,
// creation timestamp and remaining amount are assigned by the service.
type BookingInput struct {
	Date         models.Date   `json:"date"`
	Period       models.Period `json:"period"`
	CustomerName string        `json:"customerName"`
	PhoneNumber  string        `json:"phoneNumber"`
	Address      string        `json:"address"`
	Notes        string        `json:"notes"`
	TotalAmount  float64       `json:"totalAmount"`
	PaidAmount   float64       `json:"paidAmount"`
}

func (in BookingInput) validate() error {
	if in.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !in.Period.Valid() {
		return fmt.Errorf("%w: period must be morning, evening or full-day", ErrInvalidInput)
	}
	if in.CustomerName == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if in.TotalAmount < 0 || in.PaidAmount < 0 {
		return fmt.Errorf("%w: amounts must be non-negative", ErrInvalidInput)
	}
	return nil
}

// SlotDecision is handed back when a create needs the operator's
// confirmation: the plan says what would be deleted, PlanID replays it.
type SlotDecision struct {
	Plan   schedule.Plan `json:"plan"`
	PlanID string        `json:"planId,omitempty"`
}

// PlanSlot computes the slot-change plan for a (date, period) target without
// touching any state. When the plan needs confirmation it is parked in the
// plan repository and its id returned for the follow-up create call.
func (s *DaybookService) PlanSlot(ctx context.Context, date models.Date, period models.Period, editingID string) (*SlotDecision, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("%w: period must be morning, evening or full-day", ErrInvalidInput)
	}

	s.mu.Lock()
	slots := schedule.ResolveDay(s.bookings, date)
	s.mu.Unlock()

	plan := schedule.PlanSlotChange(slots, period, editingID)
	decision := &SlotDecision{Plan: plan}

	if !plan.Allowed {
		metrics.IncSlotConflict()
		s.publish(events.EventSlotConflict, map[string]string{
			"date":   date.String(),
			"period": period.String(),
		})
		return decision, nil
	}

	if plan.RequiresConfirmation {
		return s.parkPlan(ctx, date, period, plan)
	}

	return decision, nil
}

// BookingToEdit resolves which booking a direct click on a (date, period)
// slot opens for editing, or nil when the click starts a new booking.
func (s *DaybookService) BookingToEdit(date models.Date, period models.Period) *models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := schedule.ResolveDay(s.bookings, date)
	if b := schedule.BookingToEdit(slots, period); b != nil {
		copied := *b
		return &copied
	}
	return nil
}

// CreateBooking adds a new booking. When the target slot is occupied the
// call fails with ErrConfirmationRequired and a SlotDecision; retrying with
// the decision's confirmed planID deletes the displaced bookings and creates
// the new one in the same synchronous step. A declined plan is simply never
// replayed and expires.
func (s *DaybookService) CreateBooking(ctx context.Context, in BookingInput, planID string) (*models.Booking, *SlotDecision, error) {
	if err := in.validate(); err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slots := schedule.ResolveDay(s.bookings, in.Date)
	plan := schedule.PlanSlotChange(slots, in.Period, "")

	if !plan.Allowed {
		metrics.IncSlotConflict()
		s.publish(events.EventSlotConflict, map[string]string{
			"date":   in.Date.String(),
			"period": in.Period.String(),
		})
		return nil, &SlotDecision{Plan: plan}, ErrDayFullyBooked
	}

	if plan.RequiresConfirmation {
		if planID == "" {
			decision, err := s.parkPlan(ctx, in.Date, in.Period, plan)
			if err != nil {
				return nil, nil, err
			}
			return nil, decision, ErrConfirmationRequired
		}

		pending, err := s.plans.Get(ctx, planID)
		if err != nil {
			return nil, nil, fmt.Errorf("load pending plan: %w", err)
		}
		if pending == nil {
			return nil, nil, ErrPlanNotFound
		}
		if pending.Date != in.Date || pending.Period != in.Period {
			return nil, nil, ErrPlanMismatch
		}

		// Occupancy may have changed between plan and confirm. The
		// operator only confirmed the occupants listed at plan time, so
		// every current occupant must appear there.
		for _, occupant := range plan.ToDelete {
			if !containsID(pending.ToDelete, occupant) {
				return nil, nil, ErrPlanMismatch
			}
		}

		s.deleteBookingsLocked(plan.ToDelete)
		_ = s.plans.Delete(ctx, planID)
		s.publish(events.EventPlanConfirmed, pending)
	}

	booking := models.Booking{
		ID:              uuid.NewString(),
		Date:            in.Date,
		Period:          in.Period,
		CustomerName:    in.CustomerName,
		PhoneNumber:     in.PhoneNumber,
		Address:         in.Address,
		Notes:           in.Notes,
		TotalAmount:     in.TotalAmount,
		PaidAmount:      in.PaidAmount,
		RemainingAmount: money.Round2(in.TotalAmount - in.PaidAmount),
		CreatedAt:       time.Now(),
	}

	s.bookings = append(s.bookings, booking)
	if err := s.saveLocked(ctx); err != nil {
		return nil, nil, err
	}

	metrics.IncBookingOp("create")
	s.publish(events.EventBookingCreated, bookingPayload(booking))
	s.logger.Info().Str("id", booking.ID).Str("date", booking.Date.String()).
		Str("period", booking.Period.String()).Msg("booking created")

	return &booking, nil, nil
}

// UpdateBooking replaces the identifier-matched booking in place. The
// existing booking is updated, never deleted and recreated, so no slot plan
// applies here.
func (s *DaybookService) UpdateBooking(ctx context.Context, id string, in BookingInput) (*models.Booking, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findBookingLocked(id)
	if idx < 0 {
		return nil, ErrBookingNotFound
	}

	// An edit may move the booking to another date or period, but never
	// onto a slot another booking holds. The edited booking itself is
	// excluded from the occupancy check.
	others := make([]models.Booking, 0, len(s.bookings))
	for i := range s.bookings {
		if s.bookings[i].ID != id {
			others = append(others, s.bookings[i])
		}
	}
	slots := schedule.ResolveDay(others, in.Date)
	if plan := schedule.PlanSlotChange(slots, in.Period, ""); !plan.Allowed || plan.RequiresConfirmation {
		metrics.IncSlotConflict()
		s.publish(events.EventSlotConflict, map[string]string{
			"date":   in.Date.String(),
			"period": in.Period.String(),
		})
		return nil, ErrSlotOccupied
	}

	updated := s.bookings[idx]
	updated.Date = in.Date
	updated.Period = in.Period
	updated.CustomerName = in.CustomerName
	updated.PhoneNumber = in.PhoneNumber
	updated.Address = in.Address
	updated.Notes = in.Notes
	updated.TotalAmount = in.TotalAmount
	updated.PaidAmount = in.PaidAmount
	updated.RemainingAmount = money.Round2(in.TotalAmount - in.PaidAmount)

	s.bookings[idx] = updated
	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}

	metrics.IncBookingOp("update")
	s.publish(events.EventBookingUpdated, bookingPayload(updated))

	return &updated, nil
}

// DeleteBooking removes a booking by identifier. Deleting a full-day booking
// vacates both slots of its date.
func (s *DaybookService) DeleteBooking(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findBookingLocked(id)
	if idx < 0 {
		return ErrBookingNotFound
	}

	deleted := s.bookings[idx]
	s.bookings = append(s.bookings[:idx], s.bookings[idx+1:]...)
	if err := s.saveLocked(ctx); err != nil {
		return err
	}

	metrics.IncBookingOp("delete")
	s.publish(events.EventBookingDeleted, bookingPayload(deleted))
	s.logger.Info().Str("id", id).Msg("booking deleted")

	return nil
}

// BookingByID returns a copy of the identifier-matched booking.
func (s *DaybookService) BookingByID(id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findBookingLocked(id)
	if idx < 0 {
		return nil, ErrBookingNotFound
	}
	b := s.bookings[idx]
	return &b, nil
}

// parkPlan stashes a confirmation-pending plan; the repository carries its
// own synchronization, so this is safe with or without the service mutex.
func (s *DaybookService) parkPlan(ctx context.Context, date models.Date, period models.Period, plan schedule.Plan) (*SlotDecision, error) {
	pending := &repository.PendingPlan{
		ID:        uuid.NewString(),
		Date:      date,
		Period:    period,
		ToDelete:  plan.ToDelete,
		CreatedAt: time.Now(),
	}
	if err := s.plans.Put(ctx, pending); err != nil {
		return nil, fmt.Errorf("store pending plan: %w", err)
	}
	return &SlotDecision{Plan: plan, PlanID: pending.ID}, nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (s *DaybookService) findBookingLocked(id string) int {
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *DaybookService) deleteBookingsLocked(ids []string) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := s.bookings[:0]
	for _, b := range s.bookings {
		if !drop[b.ID] {
			kept = append(kept, b)
		}
	}
	s.bookings = kept
}

func bookingPayload(b models.Booking) events.BookingEventPayload {
	return events.BookingEventPayload{
		BookingID:    b.ID,
		Date:         b.Date.String(),
		Period:       b.Period.String(),
		CustomerName: b.CustomerName,
		TotalAmount:  b.TotalAmount,
		PaidAmount:   b.PaidAmount,
	}
}
