// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Manabase HTTP API server.
//
// # Startup Sequence
//
//  1. Load configuration from environment variables.
//  2. Initialize structured logger.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis when configured.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/manabase/internal/api"
	"github.com/taibuivan/manabase/internal/core/card"
	"github.com/taibuivan/manabase/internal/core/deck"
	"github.com/taibuivan/manabase/internal/platform/config"
	"github.com/taibuivan/manabase/internal/platform/constants"
	"github.com/taibuivan/manabase/internal/platform/logging"
	"github.com/taibuivan/manabase/internal/platform/migration"
	pgstore "github.com/taibuivan/manabase/internal/platform/postgres"
	redisstore "github.com/taibuivan/manabase/internal/platform/redis"
	"github.com/taibuivan/manabase/internal/platform/scryfall"
)

func main() {
	// ── 1. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		slog.Error("startup failure", slog.String("context", "load configuration"), slog.Any("error", err))
		os.Exit(1)
	}

	// ── 2. Logger ─────────────────────────────────────────────────────────
	log, logCloser := logging.New(cfg.Log, cfg.Debug)
	defer logCloser.Close()
	slog.SetDefault(log)

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("import_receipts", cfg.RedisURL != ""),
	)

	// Root context for background workers (rate limiter cleanup).
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup deadline so misconfiguration is caught quickly rather than hanging.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Health handlers ────────────────────────────────────────────────
	healthDeps := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}
	if rdb != nil {
		healthDeps.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	}
	liveness, readiness := api.NewHealthHandlers(healthDeps, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	source := scryfall.NewClient(cfg.Scryfall, log)

	cardRepository := card.NewPostgresRepository(pool)
	resolver := card.NewResolver(cardRepository, source, log)
	cardService := card.NewService(cardRepository, resolver, log)

	var receipts deck.ReceiptStore
	if rdb != nil {
		receipts = deck.NewRedisReceiptStore(rdb, cfg.ImportReceiptTTL)
	}

	deckRepository := deck.NewPostgresRepository(pool)
	importer := deck.NewImporter(deckRepository, resolver, receipts, cfg.ImportConcurrency, log)
	deckService := deck.NewService(deckRepository, importer, receipts, log)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Card:      card.NewHandler(cardService),
		Deck:      deck.NewHandler(deckService),
	})

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
