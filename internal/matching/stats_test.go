package matching

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobmatch/internal/types"
)

func seedScoredMatch(store *fakeStore, userID uuid.UUID, score int, status types.Status, missing ...string) {
	store.matches = append(store.matches, &types.JobMatch{
		ID: uuid.New(), UserID: userID, JobID: uuid.New(),
		CompatibilityScore: score, Status: status,
		MissingSkills: missing,
		CreatedAt:     store.tick(),
	})
}

func TestStats_AveragesAndHighMatches(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	seedScoredMatch(store, userID, 80, types.StatusNew)
	seedScoredMatch(store, userID, 60, types.StatusSaved)
	seedScoredMatch(store, userID, 90, types.StatusApplied)

	svc := NewService(store, nil, Config{})
	stats, err := svc.Stats(context.Background(), userID, StatsOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.New)
	assert.Equal(t, 1, stats.Saved)
	assert.Equal(t, 1, stats.Applied)
	assert.InDelta(t, 76.67, stats.AverageScore, 0.001)
	assert.Equal(t, 2, stats.HighMatchCount)
}

func TestStats_EmptyMatchSet(t *testing.T) {
	svc := NewService(newFakeStore(), nil, Config{})
	stats, err := svc.Stats(context.Background(), uuid.New(), StatsOptions{})
	require.NoError(t, err)

	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.AverageScore)
	assert.Zero(t, stats.HighMatchCount)
	assert.Empty(t, stats.TopSkillGaps)
}

func TestStats_TopSkillGaps(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	seedScoredMatch(store, userID, 50, types.StatusNew, "kubernetes", "terraform")
	seedScoredMatch(store, userID, 55, types.StatusNew, "kubernetes", "rust")
	seedScoredMatch(store, userID, 60, types.StatusNew, "kubernetes", "terraform", "go")

	svc := NewService(store, nil, Config{})
	stats, err := svc.Stats(context.Background(), userID, StatsOptions{SkillGapLimit: 2})
	require.NoError(t, err)

	require.Len(t, stats.TopSkillGaps, 2)
	assert.Equal(t, types.SkillGap{Skill: "kubernetes", Count: 3}, stats.TopSkillGaps[0])
	assert.Equal(t, types.SkillGap{Skill: "terraform", Count: 2}, stats.TopSkillGaps[1])
}

func TestStats_MemoizedInCache(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	userID := uuid.New()
	seedScoredMatch(store, userID, 80, types.StatusNew)

	svc := NewService(store, cache, Config{})

	first, err := svc.Stats(context.Background(), userID, StatsOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// Mutate the store behind the cache's back: the memoized value wins.
	seedScoredMatch(store, userID, 90, types.StatusNew)

	second, err := svc.Stats(context.Background(), userID, StatsOptions{})
	require.NoError(t, err)
	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, 1, cache.sets, "stats should be served from cache")
}

func TestStats_NonDefaultSkillGapLimitBypassesCache(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	userID := uuid.New()
	seedScoredMatch(store, userID, 80, types.StatusNew, "kubernetes")

	svc := NewService(store, cache, Config{})
	_, err := svc.Stats(context.Background(), userID, StatsOptions{SkillGapLimit: 2})
	require.NoError(t, err)

	assert.Zero(t, cache.gets)
	assert.Zero(t, cache.sets)
}

func TestStats_CacheFailuresFallThrough(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	cache.getErr = errStoreDown
	cache.setErr = errStoreDown
	userID := uuid.New()
	seedScoredMatch(store, userID, 80, types.StatusNew)

	svc := NewService(store, cache, Config{})
	stats, err := svc.Stats(context.Background(), userID, StatsOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
}

func TestStats_ConfigurableHighMatchThreshold(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	seedScoredMatch(store, userID, 80, types.StatusNew)
	seedScoredMatch(store, userID, 60, types.StatusNew)

	svc := NewService(store, nil, Config{HighMatchThreshold: 60})
	stats, err := svc.Stats(context.Background(), userID, StatsOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.HighMatchCount)
}
