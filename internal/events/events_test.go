package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	t.Run("SubscribersReceivePublishedEvents", func(t *testing.T) {
		bus := NewEventBus()

		var received []*Event
		bus.Subscribe(EventBookingCreated, func(e *Event) error {
			received = append(received, e)
			return nil
		})

		bus.Publish(&Event{Type: EventBookingCreated, Payload: []byte(`{}`)})
		bus.Publish(&Event{Type: EventBookingDeleted, Payload: []byte(`{}`)})

		require.Len(t, received, 1)
		assert.Equal(t, EventBookingCreated, received[0].Type)
		assert.False(t, received[0].CreatedAt.IsZero())
	})

	t.Run("PublishJSONSerializesPayload", func(t *testing.T) {
		bus := NewEventBus()

		var got BookingEventPayload
		bus.Subscribe(EventBookingCreated, func(e *Event) error {
			return json.Unmarshal(e.Payload, &got)
		})

		payload := BookingEventPayload{BookingID: "b1", Date: "2025-05-01", Period: "morning"}
		require.NoError(t, bus.PublishJSON(EventBookingCreated, payload))
		assert.Equal(t, payload, got)
	})

	t.Run("NilBusIsSafe", func(t *testing.T) {
		var bus *EventBus
		assert.NoError(t, bus.PublishJSON(EventBookingCreated, "x"))
	})

	t.Run("MultipleSubscribers", func(t *testing.T) {
		bus := NewEventBus()
		count := 0
		bus.Subscribe(EventExpenseCreated, func(*Event) error { count++; return nil })
		bus.Subscribe(EventExpenseCreated, func(*Event) error { count++; return nil })

		require.NoError(t, bus.PublishJSON(EventExpenseCreated, nil))
		assert.Equal(t, 2, count)
	})
}
