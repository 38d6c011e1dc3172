package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/jobmatch/internal/types"
)

// GetUserPreferences retrieves a user's job preference profile. Returns
// (nil, nil) when the user has no preferences record — that is not an error;
// scoring falls back to neutral defaults.
func (db *DB) GetUserPreferences(ctx context.Context, userID uuid.UUID) (*types.UserPreferences, error) {
	var p types.UserPreferences
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, skills, resume_keywords, years_experience, prefers_remote, updated_at
		 FROM user_preferences WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.Skills, &p.ResumeKeywords, &p.YearsExperience, &p.PrefersRemote, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user preferences: %w", err)
	}
	return &p, nil
}
