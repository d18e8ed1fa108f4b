// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/manabase/internal/core/card"
	"github.com/taibuivan/manabase/internal/core/deck"
	"github.com/taibuivan/manabase/internal/platform/config"
	"github.com/taibuivan/manabase/internal/platform/logging"
	pgstore "github.com/taibuivan/manabase/internal/platform/postgres"
	redisstore "github.com/taibuivan/manabase/internal/platform/redis"
	"github.com/taibuivan/manabase/internal/platform/scryfall"
)

// runtime holds the connections and services used by the online commands.
type runtime struct {
	cfg    *config.Config
	log    *slog.Logger
	pool   *pgxpool.Pool
	rdb    *redis.Client
	closer io.Closer

	decks *deck.Service
}

// openRuntime connects to PostgreSQL, and to Redis when configured, and wires
// the deck service the same way the API server does.
func openRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	log, closer := logging.New(cfg.Log, cfg.Debug)
	rt := &runtime{cfg: cfg, log: log, closer: closer}

	if rt.pool, err = pgstore.NewPool(ctx, cfg.DatabaseURL, log); err != nil {
		rt.Close()
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	var receipts deck.ReceiptStore
	if cfg.RedisURL != "" {
		if rt.rdb, err = redisstore.NewClient(ctx, cfg.RedisURL, log); err != nil {
			rt.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		receipts = deck.NewRedisReceiptStore(rt.rdb, cfg.ImportReceiptTTL)
	}

	cardRepository := card.NewPostgresRepository(rt.pool)
	resolver := card.NewResolver(cardRepository, scryfall.NewClient(cfg.Scryfall, log), log)

	deckRepository := deck.NewPostgresRepository(rt.pool)
	importer := deck.NewImporter(deckRepository, resolver, receipts, cfg.ImportConcurrency, log)
	rt.decks = deck.NewService(deckRepository, importer, receipts, log)

	return rt, nil
}

// Close releases every connection that was opened.
func (rt *runtime) Close() {
	if rt.rdb != nil {
		_ = rt.rdb.Close()
	}
	if rt.pool != nil {
		rt.pool.Close()
	}
	_ = rt.closer.Close()
}
