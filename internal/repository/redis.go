package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"daybook/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a client from config.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// RedisPlanRepository stores pending plans in Redis so an operator restart
// does not drop a plan that is mid-confirmation.
type RedisPlanRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPlanRepository(client *redis.Client, ttl time.Duration) *RedisPlanRepository {
	return &RedisPlanRepository{client: client, ttl: ttl}
}

func planKey(id string) string {
	return "pending_plan:" + id
}

func (r *RedisPlanRepository) Get(ctx context.Context, id string) (*PendingPlan, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	val, err := r.client.Get(ctx, planKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get plan from redis: %w", err)
	}

	var plan PendingPlan
	if err := json.Unmarshal([]byte(val), &plan); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	return &plan, nil
}

func (r *RedisPlanRepository) Put(ctx context.Context, plan *PendingPlan) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	if err := r.client.Set(ctx, planKey(plan.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("set plan in redis: %w", err)
	}
	return nil
}

func (r *RedisPlanRepository) Delete(ctx context.Context, id string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, planKey(id)).Err(); err != nil {
		return fmt.Errorf("delete plan from redis: %w", err)
	}
	return nil
}

// Ping verifies the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}
