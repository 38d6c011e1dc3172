// Package config provides configuration loading and validation for the
// jobmatch services. Fail-fast: a missing required variable is an error at
// startup, not at first use.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration.
type Config struct {
	Port        int
	DatabaseURL string
	RedisURL    string

	// Engine tunables. Zero values fall back to the engine defaults.
	ScoreThreshold     int
	HighMatchThreshold int
	RefreshBatchSize   int
	SkillGapLimit      int
	StatsCacheTTL      time.Duration
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL environment variable is required")
	}

	cfg := &Config{
		Port:               envInt("PORT", 8080),
		DatabaseURL:        dbURL,
		RedisURL:           redisURL,
		ScoreThreshold:     envInt("MATCH_SCORE_THRESHOLD", 0),
		HighMatchThreshold: envInt("MATCH_HIGH_THRESHOLD", 0),
		RefreshBatchSize:   envInt("MATCH_REFRESH_BATCH", 0),
		SkillGapLimit:      envInt("MATCH_SKILL_GAP_LIMIT", 0),
		StatsCacheTTL:      envDuration("MATCH_STATS_CACHE_TTL", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: port %d out of range", c.Port)
	}
	if c.ScoreThreshold < 0 || c.ScoreThreshold > 100 {
		return fmt.Errorf("config error: MATCH_SCORE_THRESHOLD must be within [0, 100]")
	}
	if c.HighMatchThreshold < 0 || c.HighMatchThreshold > 100 {
		return fmt.Errorf("config error: MATCH_HIGH_THRESHOLD must be within [0, 100]")
	}
	if c.RefreshBatchSize < 0 {
		return fmt.Errorf("config error: MATCH_REFRESH_BATCH must be non-negative")
	}
	if c.SkillGapLimit < 0 {
		return fmt.Errorf("config error: MATCH_SKILL_GAP_LIMIT must be non-negative")
	}
	return nil
}

func envInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultValue
	}
	return val
}

func envDuration(key string, defaultValue time.Duration) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := time.ParseDuration(valStr)
	if err != nil {
		return defaultValue
	}
	return val
}
