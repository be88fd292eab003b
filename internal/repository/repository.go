// Package repository holds pending slot-change plans between the plan call
// and the confirmed apply call. Plans are short-lived: an unconfirmed plan
// simply expires and nothing in the collections changes.
package repository

import (
	"context"
	"time"

	"daybook/internal/models"
)

// PendingPlan is a slot-change plan waiting for the operator's confirmation.
// ToDelete lists the bookings that will be removed when the plan is applied.
type PendingPlan struct {
	ID        string        `json:"id"`
	Date      models.Date   `json:"date"`
	Period    models.Period `json:"period"`
	ToDelete  []string      `json:"toDelete"`
	CreatedAt time.Time     `json:"createdAt"`
}

// PlanRepository stores pending plans with a TTL.
type PlanRepository interface {
	Get(ctx context.Context, id string) (*PendingPlan, error)
	Put(ctx context.Context, plan *PendingPlan) error
	Delete(ctx context.Context, id string) error
}
