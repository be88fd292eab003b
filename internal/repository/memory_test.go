package repository

import (
	"context"
	"testing"
	"time"

	"daybook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan(id string) *PendingPlan {
	return &PendingPlan{
		ID:        id,
		Date:      models.NewDate(2025, time.August, 15),
		Period:    models.PeriodFullDay,
		ToDelete:  []string{"b1", "b2"},
		CreatedAt: time.Now(),
	}
}

func TestMemoryPlanRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("PutAndGet", func(t *testing.T) {
		repo := NewMemoryPlanRepository(time.Hour)
		plan := samplePlan("p1")
		require.NoError(t, repo.Put(ctx, plan))

		got, err := repo.Get(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, plan, got)
	})

	t.Run("GetMissingReturnsNil", func(t *testing.T) {
		repo := NewMemoryPlanRepository(time.Hour)
		got, err := repo.Get(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Delete", func(t *testing.T) {
		repo := NewMemoryPlanRepository(time.Hour)
		require.NoError(t, repo.Put(ctx, samplePlan("p2")))
		require.NoError(t, repo.Delete(ctx, "p2"))

		got, err := repo.Get(ctx, "p2")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ExpiredPlanIsGone", func(t *testing.T) {
		repo := NewMemoryPlanRepository(10 * time.Millisecond)
		require.NoError(t, repo.Put(ctx, samplePlan("p3")))

		time.Sleep(20 * time.Millisecond)

		got, err := repo.Get(ctx, "p3")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
