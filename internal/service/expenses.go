package service

import (
	"context"
	"fmt"
	"time"

	"daybook/internal/events"
	"daybook/internal/metrics"
	"daybook/internal/models"

	"github.com/google/uuid"
)

// ExpenseInput carries the operator-entered fields of an expense.
type ExpenseInput struct {
	Name   string      `json:"name"`
	Amount float64     `json:"amount"`
	Date   models.Date `json:"date"`
}

func (in ExpenseInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: expense name is required", ErrInvalidInput)
	}
	if in.Amount < 0 {
		return fmt.Errorf("%w: amount must be non-negative", ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// CreateExpense appends a new expense and persists the collections.
func (s *DaybookService) CreateExpense(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expense := models.Expense{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Amount:    in.Amount,
		Date:      in.Date,
		CreatedAt: time.Now(),
	}

	s.expenses = append(s.expenses, expense)
	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}

	metrics.IncExpenseOp("create")
	s.publish(events.EventExpenseCreated, expensePayload(expense))

	return &expense, nil
}

// UpdateExpense replaces the identifier-matched expense in place.
func (s *DaybookService) UpdateExpense(ctx context.Context, id string, in ExpenseInput) (*models.Expense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findExpenseLocked(id)
	if idx < 0 {
		return nil, ErrExpenseNotFound
	}

	updated := s.expenses[idx]
	updated.Name = in.Name
	updated.Amount = in.Amount
	updated.Date = in.Date

	s.expenses[idx] = updated
	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}

	metrics.IncExpenseOp("update")
	s.publish(events.EventExpenseUpdated, expensePayload(updated))

	return &updated, nil
}

// DeleteExpense removes an expense by identifier.
func (s *DaybookService) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findExpenseLocked(id)
	if idx < 0 {
		return ErrExpenseNotFound
	}

	deleted := s.expenses[idx]
	s.expenses = append(s.expenses[:idx], s.expenses[idx+1:]...)
	if err := s.saveLocked(ctx); err != nil {
		return err
	}

	metrics.IncExpenseOp("delete")
	s.publish(events.EventExpenseDeleted, expensePayload(deleted))

	return nil
}

func (s *DaybookService) findExpenseLocked(id string) int {
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			return i
		}
	}
	return -1
}

func expensePayload(e models.Expense) events.ExpenseEventPayload {
	return events.ExpenseEventPayload{
		ExpenseID: e.ID,
		Name:      e.Name,
		Amount:    e.Amount,
		Date:      e.Date.String(),
	}
}
