package schedule

import (
	"testing"
	"time"

	"daybook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(day int) models.Date {
	return models.NewDate(2025, time.August, day)
}

func booking(id string, day int, period models.Period) models.Booking {
	return models.Booking{ID: id, Date: date(day), Period: period}
}

func TestResolveDay(t *testing.T) {
	t.Run("EmptyDay", func(t *testing.T) {
		slots := ResolveDay(nil, date(1))
		assert.True(t, slots.Empty())
	})

	t.Run("SinglePeriods", func(t *testing.T) {
		bookings := []models.Booking{
			booking("m", 1, models.PeriodMorning),
			booking("e", 1, models.PeriodEvening),
			booking("other", 2, models.PeriodMorning),
		}
		slots := ResolveDay(bookings, date(1))
		require.NotNil(t, slots.Morning)
		require.NotNil(t, slots.Evening)
		assert.Equal(t, "m", slots.Morning.ID)
		assert.Equal(t, "e", slots.Evening.ID)
		assert.True(t, slots.FullyBooked())
	})

	t.Run("FullDayFillsBothSlotsWithSameInstance", func(t *testing.T) {
		bookings := []models.Booking{booking("f", 1, models.PeriodFullDay)}
		slots := ResolveDay(bookings, date(1))
		require.NotNil(t, slots.Morning)
		assert.Same(t, slots.Morning, slots.Evening)
		assert.Equal(t, "f", slots.Morning.ID)
	})

	t.Run("FullDayWinsOverSinglePeriods", func(t *testing.T) {
		bookings := []models.Booking{
			booking("m", 1, models.PeriodMorning),
			booking("f", 1, models.PeriodFullDay),
		}
		slots := ResolveDay(bookings, date(1))
		assert.Equal(t, "f", slots.Morning.ID)
		assert.Equal(t, "f", slots.Evening.ID)
	})

	t.Run("FirstBookingWinsPerSlot", func(t *testing.T) {
		bookings := []models.Booking{
			booking("first", 1, models.PeriodMorning),
			booking("second", 1, models.PeriodMorning),
		}
		slots := ResolveDay(bookings, date(1))
		assert.Equal(t, "first", slots.Morning.ID)
	})
}

func TestResolveMonth(t *testing.T) {
	bookings := []models.Booking{
		booking("a", 1, models.PeriodMorning),
		booking("b", 1, models.PeriodEvening),
		booking("c", 15, models.PeriodFullDay),
		{ID: "other-month", Date: models.NewDate(2025, time.September, 1), Period: models.PeriodMorning},
	}

	out := ResolveMonth(bookings, 2025, time.August)
	require.Len(t, out, 2)
	assert.True(t, out[date(1)].FullyBooked())
	assert.Equal(t, "c", out[date(15)].Morning.ID)
	assert.NotContains(t, out, models.NewDate(2025, time.September, 1))
}

func TestPlanSlotChange(t *testing.T) {
	morning := &models.Booking{ID: "m", Period: models.PeriodMorning}
	evening := &models.Booking{ID: "e", Period: models.PeriodEvening}
	fullDay := &models.Booking{ID: "f", Period: models.PeriodFullDay}

	t.Run("VacantSlotIsFree", func(t *testing.T) {
		plan := PlanSlotChange(models.DaySlots{}, models.PeriodMorning, "")
		assert.Equal(t, Plan{Allowed: true}, plan)
	})

	t.Run("EditingNeverDisplaces", func(t *testing.T) {
		slots := models.DaySlots{Morning: morning, Evening: evening}
		plan := PlanSlotChange(slots, models.PeriodFullDay, "m")
		assert.Equal(t, Plan{Allowed: true}, plan)
	})

	t.Run("OccupiedSingleSlotNeedsConfirmation", func(t *testing.T) {
		slots := models.DaySlots{Morning: morning}
		plan := PlanSlotChange(slots, models.PeriodMorning, "")
		assert.True(t, plan.Allowed)
		assert.True(t, plan.RequiresConfirmation)
		assert.Equal(t, []string{"m"}, plan.ToDelete)
	})

	t.Run("MorningTargetIgnoresEveningOccupant", func(t *testing.T) {
		slots := models.DaySlots{Evening: evening}
		plan := PlanSlotChange(slots, models.PeriodMorning, "")
		assert.Equal(t, Plan{Allowed: true}, plan)
	})

	t.Run("SingleSlotOverFullDayDeletesTheFullDay", func(t *testing.T) {
		slots := models.DaySlots{Morning: fullDay, Evening: fullDay}
		plan := PlanSlotChange(slots, models.PeriodEvening, "")
		assert.True(t, plan.Allowed)
		assert.True(t, plan.RequiresConfirmation)
		assert.Equal(t, []string{"f"}, plan.ToDelete)
	})

	t.Run("FullDayOverEmptyDayIsFree", func(t *testing.T) {
		plan := PlanSlotChange(models.DaySlots{}, models.PeriodFullDay, "")
		assert.Equal(t, Plan{Allowed: true}, plan)
	})

	t.Run("FullDayOverOneOccupantNeedsConfirmation", func(t *testing.T) {
		slots := models.DaySlots{Evening: evening}
		plan := PlanSlotChange(slots, models.PeriodFullDay, "")
		assert.True(t, plan.Allowed)
		assert.True(t, plan.RequiresConfirmation)
		assert.Equal(t, []string{"e"}, plan.ToDelete)
	})

	t.Run("FullDayOverExistingFullDayDeletesItOnce", func(t *testing.T) {
		slots := models.DaySlots{Morning: fullDay, Evening: fullDay}
		plan := PlanSlotChange(slots, models.PeriodFullDay, "")
		assert.True(t, plan.Allowed)
		assert.True(t, plan.RequiresConfirmation)
		assert.Equal(t, []string{"f"}, plan.ToDelete)
	})

	t.Run("FullDayOverTwoDistinctBookingsIsRefused", func(t *testing.T) {
		slots := models.DaySlots{Morning: morning, Evening: evening}
		plan := PlanSlotChange(slots, models.PeriodFullDay, "")
		assert.False(t, plan.Allowed)
		assert.Empty(t, plan.ToDelete)
	})
}

func TestBookingToEdit(t *testing.T) {
	morning := &models.Booking{ID: "m", Period: models.PeriodMorning}
	fullDay := &models.Booking{ID: "f", Period: models.PeriodFullDay}

	t.Run("MorningClickOpensMorningBooking", func(t *testing.T) {
		slots := models.DaySlots{Morning: morning}
		assert.Same(t, morning, BookingToEdit(slots, models.PeriodMorning))
	})

	t.Run("MorningClickOnFullDayOccupantOpensNothing", func(t *testing.T) {
		slots := models.DaySlots{Morning: fullDay, Evening: fullDay}
		assert.Nil(t, BookingToEdit(slots, models.PeriodMorning))
	})

	t.Run("FullDayClickOpensFullDayBooking", func(t *testing.T) {
		slots := models.DaySlots{Morning: fullDay, Evening: fullDay}
		assert.Same(t, fullDay, BookingToEdit(slots, models.PeriodFullDay))
	})

	t.Run("FullDayClickOnSinglePeriodDayOpensNothing", func(t *testing.T) {
		slots := models.DaySlots{Morning: morning}
		assert.Nil(t, BookingToEdit(slots, models.PeriodFullDay))
	})

	t.Run("VacantSlotOpensNothing", func(t *testing.T) {
		assert.Nil(t, BookingToEdit(models.DaySlots{}, models.PeriodEvening))
	})
}
