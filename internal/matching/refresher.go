package matching

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobmatch/internal/types"
)

// scoreConcurrency bounds the goroutines scoring candidates in one refresh.
const scoreConcurrency = 8

// Refresh runs one match refresh cycle for a user: it scores every active
// listing the user does not already have a match for and persists the ones
// that clear the score threshold.
//
// Jobs with an existing match are skipped before scoring, so preference
// changes never rescore old matches — refresh cost stays O(unmatched jobs)
// and match history stays stable. An insert conflict (a concurrent refresh
// racing on the same pair) is counted as not-new rather than aborting the
// batch.
func (s *Service) Refresh(ctx context.Context, userID uuid.UUID) (types.RefreshResult, error) {
	prefs, err := s.store.GetUserPreferences(ctx, userID)
	if err != nil {
		return types.RefreshResult{}, fmt.Errorf("failed to load preferences: %w", err)
	}

	listings, err := s.store.ListActiveListings(ctx, s.cfg.RefreshBatchSize)
	if err != nil {
		return types.RefreshResult{}, fmt.Errorf("failed to load listings: %w", err)
	}
	if len(listings) == 0 {
		total, err := s.store.CountMatches(ctx, userID)
		if err != nil {
			return types.RefreshResult{}, fmt.Errorf("failed to count matches: %w", err)
		}
		return types.RefreshResult{TotalMatches: total}, nil
	}

	matched, err := s.store.MatchedJobIDs(ctx, userID)
	if err != nil {
		return types.RefreshResult{}, fmt.Errorf("failed to load matched job ids: %w", err)
	}

	candidates := make([]types.JobListing, 0, len(listings))
	for _, job := range listings {
		if !matched[job.ID] {
			candidates = append(candidates, job)
		}
	}

	// Scoring is pure, so candidates score in parallel; persistence below
	// stays sequential in listing order.
	scores := make([]types.ScoreBreakdown, len(candidates))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(scoreConcurrency)
	for i := range candidates {
		g.Go(func() error {
			scores[i] = Score(&candidates[i], prefs)
			return nil
		})
	}
	_ = g.Wait() // scoring never fails

	newMatches := 0
	for i, job := range candidates {
		breakdown := scores[i]
		if breakdown.Overall < s.cfg.ScoreThreshold {
			continue
		}

		m := &types.JobMatch{
			ID:                 uuid.New(),
			UserID:             userID,
			JobID:              job.ID,
			CompatibilityScore: breakdown.Overall,
			SkillsScore:        breakdown.Skills,
			KeywordsScore:      breakdown.Keywords,
			ExperienceScore:    breakdown.Experience,
			EducationScore:     breakdown.Education,
			MatchedSkills:      breakdown.MatchedSkills,
			MissingSkills:      breakdown.MissingSkills,
			MatchedKeywords:    breakdown.MatchedKeywords,
			MissingKeywords:    breakdown.MissingKeywords,
			Status:             types.StatusNew,
		}

		inserted, err := s.store.InsertMatch(ctx, m)
		if err != nil {
			return types.RefreshResult{}, fmt.Errorf("failed to insert match for job %s: %w", job.ID, err)
		}
		if inserted {
			newMatches++
		}
	}

	if newMatches > 0 {
		s.invalidateStats(ctx, userID)
	}

	total, err := s.store.CountMatches(ctx, userID)
	if err != nil {
		return types.RefreshResult{}, fmt.Errorf("failed to count matches: %w", err)
	}

	return types.RefreshResult{NewMatches: newMatches, TotalMatches: total}, nil
}

// invalidateStats drops the user's memoized stats. Best-effort: a cache
// failure is logged, never surfaced.
func (s *Service) invalidateStats(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsCacheKey(userID)); err != nil {
		slog.Warn("stats cache invalidation failed", "userId", userID, "err", err)
	}
}
