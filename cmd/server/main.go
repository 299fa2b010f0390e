package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/config"
	"github.com/Pgy24/Hungry-Games-26-Bot/internal/database"
	"github.com/Pgy24/Hungry-Games-26-Bot/internal/game"
	"github.com/Pgy24/Hungry-Games-26-Bot/internal/mirror"
	"github.com/Pgy24/Hungry-Games-26-Bot/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	logger.Info("catalog loaded", "path", cfg.CatalogPath, "questions", catalog.Len())

	// --- Mirror store (SQLite) ---
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating db directory: %w", err)
		}
	}
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	store, err := mirror.NewStore(ctx, db)
	if err != nil {
		return fmt.Errorf("initializing mirror store: %w", err)
	}
	logger.Info("connected to mirror store", "path", cfg.DBPath)

	notifier := mirror.NewNotifier(store, logger, cfg.SyncQueueSize)

	// --- Game engine ---
	eng := game.New(catalog, game.Config{
		AttemptsPerQuestion: cfg.AttemptsPerQuestion,
		HintPenalty:         cfg.HintPenalty,
		UseGeofence:         cfg.UseGeofence,
	}, notifier)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Logger: logger,
		Engine: eng,
		Broker: server.NewBroker(),
		Admin:  server.NewAdminAuth(cfg.AdminIDs, cfg.AdminPasswordHash),
		DB:     db,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		return notifier.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
