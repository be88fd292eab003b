package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "daybook",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)

	bookingOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "daybook",
			Name:      "booking_operations_total",
			Help:      "Booking mutations by operation (create, update, delete).",
		},
		[]string{"operation"},
	)

	expenseOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "daybook",
			Name:      "expense_operations_total",
			Help:      "Expense mutations by operation (create, update, delete).",
		},
		[]string{"operation"},
	)

	slotConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "daybook",
			Name:      "slot_conflicts_total",
			Help:      "Slot-change attempts refused because the day was fully booked.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingOps, expenseOps, slotConflicts)
	})
}

// IncHTTP increments the request counter for an endpoint/status pair.
func IncHTTP(endpoint, status string) {
	httpRequests.WithLabelValues(endpoint, status).Inc()
}

// IncBookingOp counts a booking mutation.
func IncBookingOp(operation string) {
	bookingOps.WithLabelValues(operation).Inc()
}

// IncExpenseOp counts an expense mutation.
func IncExpenseOp(operation string) {
	expenseOps.WithLabelValues(operation).Inc()
}

// IncSlotConflict counts a refused slot change.
func IncSlotConflict() {
	slotConflicts.Inc()
}
