package matching

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobmatch/internal/types"
)

// ErrMatchNotFound is returned when a match is missing.
var ErrMatchNotFound = errors.New("match not found")

// ListingSource provides read access to active job listings.
type ListingSource interface {
	// ListActiveListings returns up to limit active listings, most recently
	// posted first.
	ListActiveListings(ctx context.Context, limit int) ([]types.JobListing, error)
}

// PreferenceSource provides read access to user preference profiles.
type PreferenceSource interface {
	// GetUserPreferences returns the user's preferences, or (nil, nil) when
	// the user has no preferences record.
	GetUserPreferences(ctx context.Context, userID uuid.UUID) (*types.UserPreferences, error)
}

// MatchStore persists and queries job matches.
type MatchStore interface {
	// InsertMatch persists a new match. It reports false, without error, when
	// a match for the same (user, job) pair already exists.
	InsertMatch(ctx context.Context, m *types.JobMatch) (bool, error)
	// MatchedJobIDs returns the set of job ids the user already has matches for.
	MatchedJobIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error)
	// CountMatches returns the user's total match count.
	CountMatches(ctx context.Context, userID uuid.UUID) (int, error)
	// GetMatch returns a match by id, or (nil, nil) when it does not exist.
	GetMatch(ctx context.Context, id uuid.UUID) (*types.JobMatch, error)
	// UpdateMatchStatus sets the match's status, stamping the status timestamp
	// if it is not already set. Returns (nil, nil) when the match is missing.
	UpdateMatchStatus(ctx context.Context, id uuid.UUID, status types.Status) (*types.JobMatch, error)
	// ListMatches returns the user's matches, newest first.
	ListMatches(ctx context.Context, userID uuid.UUID, opts ListOptions) ([]types.JobMatch, error)
	// CountsByStatus returns the user's match counts grouped by status.
	CountsByStatus(ctx context.Context, userID uuid.UUID) (map[types.Status]int, error)
	// AverageScore returns the mean compatibility score across the user's
	// matches, or 0 when the user has none.
	AverageScore(ctx context.Context, userID uuid.UUID) (float64, error)
	// MissingSkillFrequencies returns the most frequent entries across the
	// user's missing-skills lists, ordered by count descending.
	MissingSkillFrequencies(ctx context.Context, userID uuid.UUID, limit int) ([]types.SkillGap, error)
}

// Store groups the collaborator interfaces the engine needs.
type Store interface {
	ListingSource
	PreferenceSource
	MatchStore
}

// Cache is a generic key-value store with per-key TTL, used to memoize
// aggregate reads. All cache failures are treated as best-effort by callers.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// ListOptions filters and pages a match listing.
type ListOptions struct {
	Status *types.Status
	Limit  int
	Offset int
}

// Config holds the engine's tunables.
type Config struct {
	// ScoreThreshold is the minimum overall score required for a match to be
	// persisted during refresh.
	ScoreThreshold int
	// HighMatchThreshold is the minimum overall score counted as a high match
	// in stats.
	HighMatchThreshold int
	// RefreshBatchSize caps the number of candidate listings per refresh cycle.
	RefreshBatchSize int
	// SkillGapLimit is the default cap on the top-skill-gaps list.
	SkillGapLimit int
	// StatsCacheTTL bounds the staleness of memoized stats.
	StatsCacheTTL time.Duration
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		ScoreThreshold:     30,
		HighMatchThreshold: 70,
		RefreshBatchSize:   100,
		SkillGapLimit:      5,
		StatsCacheTTL:      5 * time.Minute,
	}
}

// Service encapsulates the matching engine's business logic. It has no
// dependency on net/http — it can be used by any transport layer.
type Service struct {
	store Store
	cache Cache
	cfg   Config
}

// NewService returns a configured Service. Zero-valued Config fields fall
// back to the defaults.
func NewService(store Store, cache Cache, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.ScoreThreshold == 0 {
		cfg.ScoreThreshold = def.ScoreThreshold
	}
	if cfg.HighMatchThreshold == 0 {
		cfg.HighMatchThreshold = def.HighMatchThreshold
	}
	if cfg.RefreshBatchSize == 0 {
		cfg.RefreshBatchSize = def.RefreshBatchSize
	}
	if cfg.SkillGapLimit == 0 {
		cfg.SkillGapLimit = def.SkillGapLimit
	}
	if cfg.StatsCacheTTL == 0 {
		cfg.StatsCacheTTL = def.StatsCacheTTL
	}
	return &Service{store: store, cache: cache, cfg: cfg}
}

// statsCacheKey is the cache key for a user's memoized stats. All match
// mutations for the user must invalidate it.
func statsCacheKey(userID uuid.UUID) string {
	return "match_stats:" + userID.String()
}
