package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

type StoreConfig struct {
	Driver string
	Path   string
	// Redis, when set, caches the habit list.
	Redis *redis.Client
}

type Stores struct {
	Habits      domain.HabitRepository
	Completions domain.CompletionRepository

	ping  func(ctx context.Context) error
	close func() error
}

func OpenStores(ctx context.Context, cfg StoreConfig, log *zap.Logger) (*Stores, error) {
	stores := &Stores{
		ping:  func(context.Context) error { return nil },
		close: func() error { return nil },
	}

	switch cfg.Driver {
	case DriverMemory:
		stores.Habits = NewInMemoryHabitRepository()
		stores.Completions = NewInMemoryCompletionRepository()

	case DriverFile:
		fs := NewFileStore(cfg.Path, log)
		if err := fs.Ping(ctx); err != nil {
			return nil, err
		}
		stores.Habits = fs
		stores.Completions = fs
		stores.ping = fs.Ping

	case DriverSQLite:
		db, err := OpenSQLite(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		stores.Habits = NewSQLHabitRepository(db)
		stores.Completions = NewSQLCompletionRepository(db)
		stores.ping = db.PingContext
		stores.close = db.Close

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}

	if cfg.Redis != nil {
		stores.Habits = NewCachedHabitRepository(stores.Habits, cfg.Redis, log)
	}

	log.Info("Store ready", zap.String("driver", cfg.Driver), zap.String("path", cfg.Path))
	return stores, nil
}

func (s *Stores) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *Stores) Close() error {
	return s.close()
}
