package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonathan/jobmatch/internal/cache"
	"github.com/jonathan/jobmatch/internal/config"
	"github.com/jonathan/jobmatch/internal/db"
	"github.com/jonathan/jobmatch/internal/matching"
)

// deps holds the wired collaborators shared by all subcommands.
type deps struct {
	cfg     *config.Config
	db      *db.DB
	cache   *cache.Redis
	matches *matching.Service
}

// buildDeps loads config and connects the store, the cache, and the engine.
// The cache is optional: if Redis is unreachable the engine runs uncached.
func buildDeps(ctx context.Context) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var engineCache matching.Cache
	redisCache, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		slog.Warn("redis unavailable, stats caching disabled", "err", err)
	} else {
		engineCache = redisCache
	}

	svc := matching.NewService(database, engineCache, matching.Config{
		ScoreThreshold:     cfg.ScoreThreshold,
		HighMatchThreshold: cfg.HighMatchThreshold,
		RefreshBatchSize:   cfg.RefreshBatchSize,
		SkillGapLimit:      cfg.SkillGapLimit,
		StatsCacheTTL:      cfg.StatsCacheTTL,
	})

	return &deps{cfg: cfg, db: database, cache: redisCache, matches: svc}, nil
}

// close releases the wired connections.
func (d *deps) close() {
	d.db.Close()
	if d.cache != nil {
		_ = d.cache.Close()
	}
}
