package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyRepository struct {
	inner *MemoryPlanRepository
	fail  bool
	calls int
}

func (f *flakyRepository) Get(ctx context.Context, id string) (*PendingPlan, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("backend down")
	}
	return f.inner.Get(ctx, id)
}

func (f *flakyRepository) Put(ctx context.Context, plan *PendingPlan) error {
	f.calls++
	if f.fail {
		return errors.New("backend down")
	}
	return f.inner.Put(ctx, plan)
}

func (f *flakyRepository) Delete(ctx context.Context, id string) error {
	f.calls++
	if f.fail {
		return errors.New("backend down")
	}
	return f.inner.Delete(ctx, id)
}

func TestFailoverPlanRepository(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("HealthyPrimaryIsUsed", func(t *testing.T) {
		primary := &flakyRepository{inner: NewMemoryPlanRepository(time.Hour)}
		fallback := NewMemoryPlanRepository(time.Hour)
		repo := NewFailoverPlanRepository(primary, fallback, &logger)

		plan := samplePlan("p1")
		require.NoError(t, repo.Put(ctx, plan))

		got, err := repo.Get(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, plan, got)

		// Fallback never saw the plan.
		fromFallback, _ := fallback.Get(ctx, "p1")
		assert.Nil(t, fromFallback)
	})

	t.Run("FailingPrimaryFallsBack", func(t *testing.T) {
		primary := &flakyRepository{inner: NewMemoryPlanRepository(time.Hour), fail: true}
		fallback := NewMemoryPlanRepository(time.Hour)
		repo := NewFailoverPlanRepository(primary, fallback, &logger)

		plan := samplePlan("p2")
		require.NoError(t, repo.Put(ctx, plan))

		got, err := repo.Get(ctx, "p2")
		require.NoError(t, err)
		assert.Equal(t, plan, got)
	})

	t.Run("PrimaryIsNotHammeredWhileDown", func(t *testing.T) {
		primary := &flakyRepository{inner: NewMemoryPlanRepository(time.Hour), fail: true}
		fallback := NewMemoryPlanRepository(time.Hour)
		repo := NewFailoverPlanRepository(primary, fallback, &logger)

		require.NoError(t, repo.Put(ctx, samplePlan("p3")))
		callsAfterFirstFailure := primary.calls

		_, err := repo.Get(ctx, "p3")
		require.NoError(t, err)
		assert.Equal(t, callsAfterFirstFailure, primary.calls)
	})

	t.Run("RecoveredPrimaryIsUsedAgain", func(t *testing.T) {
		primary := &flakyRepository{inner: NewMemoryPlanRepository(time.Hour), fail: true}
		fallback := NewMemoryPlanRepository(time.Hour)
		repo := NewFailoverPlanRepository(primary, fallback, &logger)

		require.NoError(t, repo.Put(ctx, samplePlan("p4")))

		primary.fail = false
		repo.lastCheck.Store(time.Now().Add(-2 * time.Minute).UnixNano())

		require.NoError(t, repo.Put(ctx, samplePlan("p5")))
		got, err := primary.inner.Get(ctx, "p5")
		require.NoError(t, err)
		assert.NotNil(t, got)
	})
}
