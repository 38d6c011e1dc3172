package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobmatch_test")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
}

func TestLoad_RequiredVariables(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost/jobmatch_test")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Zero(t, cfg.ScoreThreshold, "engine defaults apply downstream")
	assert.Zero(t, cfg.StatsCacheTTL)
}

func TestLoad_Tunables(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("MATCH_SCORE_THRESHOLD", "40")
	t.Setenv("MATCH_HIGH_THRESHOLD", "75")
	t.Setenv("MATCH_REFRESH_BATCH", "200")
	t.Setenv("MATCH_SKILL_GAP_LIMIT", "10")
	t.Setenv("MATCH_STATS_CACHE_TTL", "90s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 40, cfg.ScoreThreshold)
	assert.Equal(t, 75, cfg.HighMatchThreshold)
	assert.Equal(t, 200, cfg.RefreshBatchSize)
	assert.Equal(t, 10, cfg.SkillGapLimit)
	assert.Equal(t, 90*time.Second, cfg.StatsCacheTTL)
}

func TestLoad_InvalidTunableRejected(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MATCH_SCORE_THRESHOLD", "120")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MATCH_SCORE_THRESHOLD")
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "not-a-number")
	t.Setenv("MATCH_STATS_CACHE_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Zero(t, cfg.StatsCacheTTL)
}
