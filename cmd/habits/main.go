package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/cli"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habits/internal/config"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
	"github.com/comitanigiacomo/kanso-habits/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.NewCLI(cfg.LogLevel == "debug")
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The CLI reads straight from the store; Redis only fronts the HTTP API.
	stores, err := repository.OpenStores(ctx, repository.StoreConfig{
		Driver: cfg.StoreDriver,
		Path:   cfg.StorePath,
	}, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Warn("Failed to close store", zap.Error(err))
		}
	}()

	root := cli.NewRootCommand(cli.Dependencies{
		Habits:      services.NewHabitService(stores.Habits, stores.Completions),
		Completions: services.NewCompletionService(stores.Completions, stores.Habits),
		Stats:       services.NewStatsService(stores.Habits, stores.Completions),
	})
	return root.ExecuteContext(ctx)
}
