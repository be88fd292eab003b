package repository

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	plan      *PendingPlan
	expiresAt time.Time
}

// MemoryPlanRepository keeps pending plans in process memory. Entries are
// dropped lazily once their TTL passes.
type MemoryPlanRepository struct {
	plans sync.Map
	ttl   time.Duration
}

func NewMemoryPlanRepository(ttl time.Duration) *MemoryPlanRepository {
	return &MemoryPlanRepository{ttl: ttl}
}

func (r *MemoryPlanRepository) Get(ctx context.Context, id string) (*PendingPlan, error) {
	val, ok := r.plans.Load(id)
	if !ok {
		return nil, nil
	}
	entry := val.(memoryEntry)
	if time.Now().After(entry.expiresAt) {
		r.plans.Delete(id)
		return nil, nil
	}
	return entry.plan, nil
}

func (r *MemoryPlanRepository) Put(ctx context.Context, plan *PendingPlan) error {
	r.plans.Store(plan.ID, memoryEntry{plan: plan, expiresAt: time.Now().Add(r.ttl)})
	return nil
}

func (r *MemoryPlanRepository) Delete(ctx context.Context, id string) error {
	r.plans.Delete(id)
	return nil
}
