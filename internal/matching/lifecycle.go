package matching

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/jobmatch/internal/types"
)

// Transition moves a match to the target review status. The first transition
// into a status stamps its timestamp; moving to a status the match has
// already been through leaves the original timestamp untouched.
//
// The HTTP boundary validates the raw status string before calling in; the
// engine still parses it so an unvalidated caller can never persist an
// unknown status.
func (s *Service) Transition(ctx context.Context, matchID uuid.UUID, status string) (*types.JobMatch, error) {
	target, err := types.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	m, err := s.store.UpdateMatchStatus(ctx, matchID, target)
	if err != nil {
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}

	s.invalidateStats(ctx, m.UserID)
	return m, nil
}

// GetMatch returns a match by id.
func (s *Service) GetMatch(ctx context.Context, matchID uuid.UUID) (*types.JobMatch, error) {
	m, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}
	return m, nil
}

// ListMatches returns a user's matches, newest first, optionally filtered
// by status.
func (s *Service) ListMatches(ctx context.Context, userID uuid.UUID, opts ListOptions) ([]types.JobMatch, error) {
	matches, err := s.store.ListMatches(ctx, userID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}
