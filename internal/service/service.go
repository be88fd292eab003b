// Package service owns the in-memory booking and expense collections and
// every mutation on them. The collections are the single source of truth;
// each mutation is a collection transform followed by a full save through
// the persistence gateway, executed as one synchronous step under the
// service mutex.
package service

import (
	"context"
	"sync"

	"daybook/internal/config"
	"daybook/internal/events"
	"daybook/internal/models"
	"daybook/internal/money"
	"daybook/internal/repository"
	"daybook/internal/store"

	"github.com/rs/zerolog"
)

type DaybookService struct {
	mu       sync.Mutex
	bookings []models.Booking
	expenses []models.Expense

	store      store.Store
	plans      repository.PlanRepository
	eventBus   *events.EventBus
	formatter  *money.Formatter
	labels     models.MessageLabels
	exportsDir string
	logger     *zerolog.Logger
}

// New loads the persisted collections and wires the service. A store that
// cannot produce prior state starts the service empty; that is the normal
// first-run path, not an error.
func New(ctx context.Context, st store.Store, plans repository.PlanRepository, bus *events.EventBus, cfg *config.Config, logger *zerolog.Logger) (*DaybookService, error) {
	s := &DaybookService{
		store:      st,
		plans:      plans,
		eventBus:   bus,
		formatter:  money.NewFormatter(cfg.Currency.Code),
		labels:     cfg.Labels,
		exportsDir: cfg.Exports.Path,
		logger:     logger,
	}

	collections, err := st.Load(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("loading persisted state failed, starting empty")
		collections = &store.Collections{}
	}
	s.bookings = collections.Bookings
	s.expenses = collections.Expenses

	logger.Info().
		Int("bookings", len(s.bookings)).
		Int("expenses", len(s.expenses)).
		Msg("collections loaded")

	return s, nil
}

// saveLocked mirrors the in-memory collections to the store. Callers hold
// the service mutex.
func (s *DaybookService) saveLocked(ctx context.Context) error {
	c := &store.Collections{Bookings: s.bookings, Expenses: s.expenses}
	if err := s.store.Save(ctx, c); err != nil {
		s.logger.Error().Err(err).Msg("persisting collections failed")
		return err
	}
	return nil
}

// Bookings returns a copy of the booking collection in stored order.
func (s *DaybookService) Bookings() []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

// Expenses returns a copy of the expense collection in stored order.
func (s *DaybookService) Expenses() []models.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

func (s *DaybookService) publish(eventType string, payload interface{}) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("publish event failed")
	}
}
