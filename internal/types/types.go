// Package types provides type definitions for structured data used throughout the jobmatch system.
package types

import (
	"time"

	"github.com/google/uuid"
)

// JobListing represents a job opening imported by the ingestion pipeline.
// The matching engine treats listings as read-only.
type JobListing struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location,omitempty"`
	Remote          bool      `json:"remote"`
	RequiredSkills  []string  `json:"required_skills"`
	PreferredSkills []string  `json:"preferred_skills,omitempty"`
	Keywords        []string  `json:"keywords,omitempty"`
	MinYears        *int      `json:"min_years,omitempty"`
	MaxYears        *int      `json:"max_years,omitempty"`
	Active          bool      `json:"active"`
	PostedAt        time.Time `json:"posted_at"`
}

// UserPreferences holds a user's matching profile: the skills they want to
// work with, keywords extracted from their resume, and basic constraints.
// A user may have no preferences record at all.
type UserPreferences struct {
	UserID          uuid.UUID `json:"user_id"`
	Skills          []string  `json:"skills"`
	ResumeKeywords  []string  `json:"resume_keywords,omitempty"`
	YearsExperience *int      `json:"years_experience,omitempty"`
	PrefersRemote   bool      `json:"prefers_remote"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ScoreBreakdown is the result of scoring one job against one user's
// preferences. All scores are integers in [0, 100].
type ScoreBreakdown struct {
	Overall         int      `json:"overall"`
	Skills          int      `json:"skills"`
	Keywords        int      `json:"keywords"`
	Experience      int      `json:"experience"`
	Education       int      `json:"education"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
}

// JobMatch is a persisted (user, job) pairing with its score breakdown,
// evidence lists, and review status. A match is created once and never
// re-scored; only its status (and status timestamps) change afterwards.
type JobMatch struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             uuid.UUID  `json:"user_id"`
	JobID              uuid.UUID  `json:"job_id"`
	CompatibilityScore int        `json:"compatibility_score"`
	SkillsScore        int        `json:"skills_score"`
	KeywordsScore      int        `json:"keywords_score"`
	ExperienceScore    int        `json:"experience_score"`
	EducationScore     int        `json:"education_score"`
	MatchedSkills      []string   `json:"matched_skills"`
	MissingSkills      []string   `json:"missing_skills"`
	MatchedKeywords    []string   `json:"matched_keywords"`
	MissingKeywords    []string   `json:"missing_keywords"`
	Status             Status     `json:"status"`
	ViewedAt           *time.Time `json:"viewed_at,omitempty"`
	SavedAt            *time.Time `json:"saved_at,omitempty"`
	AppliedAt          *time.Time `json:"applied_at,omitempty"`
	DismissedAt        *time.Time `json:"dismissed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// RefreshResult summarizes one refresh cycle for a user.
type RefreshResult struct {
	NewMatches   int `json:"new_matches"`
	TotalMatches int `json:"total_matches"`
}

// SkillGap is a missing skill and how many of the user's matches list it.
type SkillGap struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// MatchStats summarizes a user's match set.
type MatchStats struct {
	Total          int        `json:"total"`
	New            int        `json:"new"`
	Saved          int        `json:"saved"`
	Applied        int        `json:"applied"`
	AverageScore   float64    `json:"average_score"`
	HighMatchCount int        `json:"high_match_count"`
	TopSkillGaps   []SkillGap `json:"top_skill_gaps"`
}
