package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/jobmatch/internal/matching"
	"github.com/jonathan/jobmatch/internal/types"
)

const matchColumns = `id, user_id, job_id, compatibility_score, skills_score,
	keywords_score, experience_score, education_score,
	matched_skills, missing_skills, matched_keywords, missing_keywords,
	status, viewed_at, saved_at, applied_at, dismissed_at, created_at`

func scanMatch(row pgx.Row) (*types.JobMatch, error) {
	var m types.JobMatch
	err := row.Scan(&m.ID, &m.UserID, &m.JobID, &m.CompatibilityScore, &m.SkillsScore,
		&m.KeywordsScore, &m.ExperienceScore, &m.EducationScore,
		&m.MatchedSkills, &m.MissingSkills, &m.MatchedKeywords, &m.MissingKeywords,
		&m.Status, &m.ViewedAt, &m.SavedAt, &m.AppliedAt, &m.DismissedAt, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// InsertMatch persists a new match. The (user_id, job_id) pair is unique;
// a conflicting insert reports (false, nil) so concurrent refreshes racing
// on the same pair stay best-effort instead of failing the batch.
func (db *DB) InsertMatch(ctx context.Context, m *types.JobMatch) (bool, error) {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_matches (id, user_id, job_id, compatibility_score, skills_score,
		                          keywords_score, experience_score, education_score,
		                          matched_skills, missing_skills, matched_keywords, missing_keywords,
		                          status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (user_id, job_id) DO NOTHING
		 RETURNING created_at`,
		m.ID, m.UserID, m.JobID, m.CompatibilityScore, m.SkillsScore,
		m.KeywordsScore, m.ExperienceScore, m.EducationScore,
		m.MatchedSkills, m.MissingSkills, m.MatchedKeywords, m.MissingKeywords,
		m.Status,
	).Scan(&m.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil // pair already matched
		}
		return false, fmt.Errorf("failed to insert match: %w", err)
	}
	return true, nil
}

// MatchedJobIDs returns the set of job ids the user already has matches for.
func (db *DB) MatchedJobIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT job_id FROM job_matches WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matched job ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan job id: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// CountMatches returns the user's total match count.
func (db *DB) CountMatches(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM job_matches WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}

// GetMatch retrieves a match by id. Returns (nil, nil) when it does not exist.
func (db *DB) GetMatch(ctx context.Context, id uuid.UUID) (*types.JobMatch, error) {
	m, err := scanMatch(db.pool.QueryRow(ctx,
		`SELECT `+matchColumns+` FROM job_matches WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return m, nil
}

// UpdateMatchStatus sets the match's status. The status timestamp column is
// stamped only if it is currently unset, so re-entering a status never
// re-stamps it. Returns (nil, nil) when the match does not exist.
func (db *DB) UpdateMatchStatus(ctx context.Context, id uuid.UUID, status types.Status) (*types.JobMatch, error) {
	set := `status = $2`
	// Column name comes from the closed Status enum, never from the caller.
	if col := status.TimestampColumn(); col != "" {
		set += fmt.Sprintf(`, %s = COALESCE(%s, NOW())`, col, col)
	}

	m, err := scanMatch(db.pool.QueryRow(ctx,
		`UPDATE job_matches SET `+set+` WHERE id = $1 RETURNING `+matchColumns,
		id, status))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}
	return m, nil
}

// ListMatches retrieves a user's matches, newest first, with an optional
// status filter and pagination.
func (db *DB) ListMatches(ctx context.Context, userID uuid.UUID, opts matching.ListOptions) ([]types.JobMatch, error) {
	query := `SELECT ` + matchColumns + ` FROM job_matches WHERE user_id = $1`
	args := []any{userID}
	argNum := 2

	if opts.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, *opts.Status)
		argNum++
	}

	query += " ORDER BY created_at DESC"
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, opts.Limit)
		argNum++
	}
	if opts.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, opts.Offset)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []types.JobMatch
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

// CountsByStatus returns the user's match counts grouped by status.
func (db *DB) CountsByStatus(ctx context.Context, userID uuid.UUID) (map[types.Status]int, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM job_matches WHERE user_id = $1 GROUP BY status`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count matches by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.Status]int)
	for rows.Next() {
		var status types.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// AverageScore returns the mean compatibility score across the user's
// matches, or 0 when the user has none.
func (db *DB) AverageScore(ctx context.Context, userID uuid.UUID) (float64, error) {
	var avg float64
	err := db.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(compatibility_score), 0) FROM job_matches WHERE user_id = $1`,
		userID).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to average scores: %w", err)
	}
	return avg, nil
}

// MissingSkillFrequencies returns the most frequent entries across the user's
// missing-skills lists, ordered by count descending (ties alphabetical).
func (db *DB) MissingSkillFrequencies(ctx context.Context, userID uuid.UUID, limit int) ([]types.SkillGap, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT skill, COUNT(*) AS cnt
		 FROM job_matches, unnest(missing_skills) AS skill
		 WHERE user_id = $1
		 GROUP BY skill
		 ORDER BY cnt DESC, skill ASC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query skill gaps: %w", err)
	}
	defer rows.Close()

	var gaps []types.SkillGap
	for rows.Next() {
		var g types.SkillGap
		if err := rows.Scan(&g.Skill, &g.Count); err != nil {
			return nil, fmt.Errorf("failed to scan skill gap: %w", err)
		}
		gaps = append(gaps, g)
	}
	return gaps, rows.Err()
}
