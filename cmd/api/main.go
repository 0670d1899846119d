package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habits/internal/config"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
	"github.com/comitanigiacomo/kanso-habits/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("Critical server error", zap.Error(err))
	}
}

type app struct {
	router *gin.Engine
	stores *repository.Stores
	redis  *redis.Client
}

func (a *app) Close() {
	if a.redis != nil {
		a.redis.Close()
	}
	a.stores.Close()
}

// newApp wires stores, services and handlers. Redis is optional: when it
// is configured but unreachable the server runs without cache and rate limit.
func newApp(ctx context.Context, cfg config.Config, log *zap.Logger) (*app, error) {
	a := &app{}

	if cfg.RedisEnabled() {
		rdb, err := cache.NewRedisClient(ctx, cache.Options{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		} else {
			log.Info("Redis connected", zap.String("host", cfg.RedisHost))
			a.redis = rdb
		}
	}

	stores, err := repository.OpenStores(ctx, repository.StoreConfig{
		Driver: cfg.StoreDriver,
		Path:   cfg.StorePath,
		Redis:  a.redis,
	}, log)
	if err != nil {
		if a.redis != nil {
			a.redis.Close()
		}
		return nil, err
	}
	a.stores = stores

	habitService := services.NewHabitService(stores.Habits, stores.Completions)
	completionService := services.NewCompletionService(stores.Completions, stores.Habits)
	statsService := services.NewStatsService(stores.Habits, stores.Completions)

	a.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		HabitHandler:      adapterHTTP.NewHabitHandler(habitService, log),
		CompletionHandler: adapterHTTP.NewCompletionHandler(completionService, log),
		StatsHandler:      adapterHTTP.NewStatsHandler(statsService, log),
		Store:             stores,
		Redis:             a.redis,
		RateLimit:         cfg.RateLimit,
		StartTime:         time.Now(),
		Logger:            log,
	})

	return a, nil
}

func run(cfg config.Config, log *zap.Logger) error {
	gin.SetMode(gin.ReleaseMode)

	a, err := newApp(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	// Local-only: the view API is not meant to be exposed.
	srv := &http.Server{
		Addr:         "127.0.0.1:" + cfg.Port,
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Habit tracker running", zap.String("addr", "http://"+srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}

	log.Info("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Info("Server stopped gracefully.")
	return nil
}
