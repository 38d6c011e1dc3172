package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/jonathan/jobmatch/internal/types"
)

// StatsOptions tunes one stats read.
type StatsOptions struct {
	// SkillGapLimit caps the top-skill-gaps list. Zero means the configured
	// default.
	SkillGapLimit int
}

// Stats summarizes a user's match set: counts by status, average score,
// high-match count, and the most frequent missing skills. Results are
// memoized per user in the cache; a cache read or write failure falls
// through to recomputation and is never surfaced.
func (s *Service) Stats(ctx context.Context, userID uuid.UUID, opts StatsOptions) (*types.MatchStats, error) {
	limit := opts.SkillGapLimit
	if limit <= 0 {
		limit = s.cfg.SkillGapLimit
	}

	key := statsCacheKey(userID)
	useCache := s.cache != nil && limit == s.cfg.SkillGapLimit
	if useCache {
		if data, ok, err := s.cache.Get(ctx, key); err != nil {
			slog.Warn("stats cache read failed", "userId", userID, "err", err)
		} else if ok {
			var cached types.MatchStats
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	counts, err := s.store.CountsByStatus(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count matches by status: %w", err)
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	stats := &types.MatchStats{
		Total:        total,
		New:          counts[types.StatusNew],
		Saved:        counts[types.StatusSaved],
		Applied:      counts[types.StatusApplied],
		TopSkillGaps: []types.SkillGap{},
	}

	if total > 0 {
		avg, err := s.store.AverageScore(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to average scores: %w", err)
		}
		stats.AverageScore = math.Round(avg*100) / 100

		high, err := s.countHighMatches(ctx, userID)
		if err != nil {
			return nil, err
		}
		stats.HighMatchCount = high

		gaps, err := s.store.MissingSkillFrequencies(ctx, userID, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate skill gaps: %w", err)
		}
		if gaps != nil {
			stats.TopSkillGaps = gaps
		}
	}

	if useCache {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, key, data, s.cfg.StatsCacheTTL); err != nil {
				slog.Warn("stats cache write failed", "userId", userID, "err", err)
			}
		}
	}

	return stats, nil
}

// countHighMatches counts the user's matches at or above the high-match
// threshold.
func (s *Service) countHighMatches(ctx context.Context, userID uuid.UUID) (int, error) {
	matches, err := s.store.ListMatches(ctx, userID, ListOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to list matches: %w", err)
	}
	high := 0
	for _, m := range matches {
		if m.CompatibilityScore >= s.cfg.HighMatchThreshold {
			high++
		}
	}
	return high, nil
}
