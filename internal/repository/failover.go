package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// FailoverPlanRepository prefers the primary backend and falls back to the
// secondary when the primary errors. After a minute it probes the primary
// again.
type FailoverPlanRepository struct {
	primary   PlanRepository
	fallback  PlanRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverPlanRepository(primary, fallback PlanRepository, logger *zerolog.Logger) *FailoverPlanRepository {
	return &FailoverPlanRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverPlanRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("primary plan repository failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck.Store(time.Now().UnixNano())
}

func (r *FailoverPlanRepository) shouldRetryPrimary() bool {
	return time.Since(time.Unix(0, r.lastCheck.Load())) > time.Minute
}

func (r *FailoverPlanRepository) Get(ctx context.Context, id string) (*PendingPlan, error) {
	if !r.isDown.Load() || r.shouldRetryPrimary() {
		plan, err := r.primary.Get(ctx, id)
		if err == nil {
			r.isDown.Store(false)
			return plan, nil
		}
		r.markDown(err)
	}
	return r.fallback.Get(ctx, id)
}

func (r *FailoverPlanRepository) Put(ctx context.Context, plan *PendingPlan) error {
	if !r.isDown.Load() || r.shouldRetryPrimary() {
		err := r.primary.Put(ctx, plan)
		if err == nil {
			r.isDown.Store(false)
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.Put(ctx, plan)
}

func (r *FailoverPlanRepository) Delete(ctx context.Context, id string) error {
	if !r.isDown.Load() || r.shouldRetryPrimary() {
		err := r.primary.Delete(ctx, id)
		if err == nil {
			r.isDown.Store(false)
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.Delete(ctx, id)
}
