package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var _ domain.HabitRepository = (*CachedHabitRepository)(nil)

const (
	habitListKey = "habits:list"
	habitListTTL = 30 * time.Minute
)

// CachedHabitRepository caches the habit list in Redis. Completions and
// streaks always go to the underlying store.
type CachedHabitRepository struct {
	next  domain.HabitRepository
	cache *redis.Client
	log   *zap.Logger
}

func NewCachedHabitRepository(next domain.HabitRepository, cache *redis.Client, log *zap.Logger) *CachedHabitRepository {
	return &CachedHabitRepository{
		next:  next,
		cache: cache,
		log:   log,
	}
}

func (r *CachedHabitRepository) invalidate(ctx context.Context) {
	if err := r.cache.Del(ctx, habitListKey).Err(); err != nil {
		r.log.Warn("[CACHE] Failed to invalidate habit list", zap.Error(err))
	}
}

func (r *CachedHabitRepository) List(ctx context.Context) ([]*domain.Habit, error) {
	val, err := r.cache.Get(ctx, habitListKey).Result()
	if err == nil {
		var habits []*domain.Habit
		if err := json.Unmarshal([]byte(val), &habits); err == nil {
			return habits, nil
		}

		r.log.Warn("[CACHE] Corrupted habit list, cleaning up key")
		r.cache.Del(ctx, habitListKey)
	} else if !errors.Is(err, redis.Nil) {
		r.log.Warn("[CACHE] Redis read error", zap.Error(err))
	}

	habits, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(habits); err == nil {
		if setErr := r.cache.Set(ctx, habitListKey, data, habitListTTL).Err(); setErr != nil {
			r.log.Warn("[CACHE] Redis set error", zap.Error(setErr))
		}
	}

	return habits, nil
}

func (r *CachedHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	if err := r.next.Create(ctx, habit); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedHabitRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}
