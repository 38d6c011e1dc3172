package matching

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobmatch/internal/types"
)

// fakeStore is an in-memory Store for engine tests. It honors the documented
// contracts: insert-if-absent on (user, job), stamp-once status timestamps,
// newest-first listing.
type fakeStore struct {
	listings []types.JobListing
	prefs    map[uuid.UUID]*types.UserPreferences
	matches  []*types.JobMatch

	now time.Time

	insertErr error
	listErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		prefs: make(map[uuid.UUID]*types.UserPreferences),
		now:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) ListActiveListings(_ context.Context, limit int) ([]types.JobListing, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	active := make([]types.JobListing, 0, len(f.listings))
	for _, l := range f.listings {
		if l.Active {
			active = append(active, l)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].PostedAt.After(active[j].PostedAt) })
	if len(active) > limit {
		active = active[:limit]
	}
	return active, nil
}

func (f *fakeStore) GetUserPreferences(_ context.Context, userID uuid.UUID) (*types.UserPreferences, error) {
	return f.prefs[userID], nil
}

func (f *fakeStore) InsertMatch(_ context.Context, m *types.JobMatch) (bool, error) {
	if f.insertErr != nil {
		return false, f.insertErr
	}
	for _, existing := range f.matches {
		if existing.UserID == m.UserID && existing.JobID == m.JobID {
			return false, nil
		}
	}
	stored := *m
	stored.CreatedAt = f.tick()
	m.CreatedAt = stored.CreatedAt
	f.matches = append(f.matches, &stored)
	return true, nil
}

func (f *fakeStore) MatchedJobIDs(_ context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	ids := make(map[uuid.UUID]bool)
	for _, m := range f.matches {
		if m.UserID == userID {
			ids[m.JobID] = true
		}
	}
	return ids, nil
}

func (f *fakeStore) CountMatches(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, m := range f.matches {
		if m.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) GetMatch(_ context.Context, id uuid.UUID) (*types.JobMatch, error) {
	for _, m := range f.matches {
		if m.ID == id {
			copy := *m
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) UpdateMatchStatus(_ context.Context, id uuid.UUID, status types.Status) (*types.JobMatch, error) {
	for _, m := range f.matches {
		if m.ID != id {
			continue
		}
		m.Status = status
		now := f.tick()
		switch status {
		case types.StatusViewed:
			if m.ViewedAt == nil {
				m.ViewedAt = &now
			}
		case types.StatusSaved:
			if m.SavedAt == nil {
				m.SavedAt = &now
			}
		case types.StatusApplied:
			if m.AppliedAt == nil {
				m.AppliedAt = &now
			}
		case types.StatusDismissed:
			if m.DismissedAt == nil {
				m.DismissedAt = &now
			}
		}
		copy := *m
		return &copy, nil
	}
	return nil, nil
}

func (f *fakeStore) ListMatches(_ context.Context, userID uuid.UUID, opts ListOptions) ([]types.JobMatch, error) {
	var out []types.JobMatch
	for _, m := range f.matches {
		if m.UserID != userID {
			continue
		}
		if opts.Status != nil && m.Status != *opts.Status {
			continue
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return nil, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (f *fakeStore) CountsByStatus(_ context.Context, userID uuid.UUID) (map[types.Status]int, error) {
	counts := make(map[types.Status]int)
	for _, m := range f.matches {
		if m.UserID == userID {
			counts[m.Status]++
		}
	}
	return counts, nil
}

func (f *fakeStore) AverageScore(_ context.Context, userID uuid.UUID) (float64, error) {
	sum, count := 0, 0
	for _, m := range f.matches {
		if m.UserID == userID {
			sum += m.CompatibilityScore
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

func (f *fakeStore) MissingSkillFrequencies(_ context.Context, userID uuid.UUID, limit int) ([]types.SkillGap, error) {
	freq := make(map[string]int)
	for _, m := range f.matches {
		if m.UserID != userID {
			continue
		}
		for _, skill := range m.MissingSkills {
			freq[skill]++
		}
	}
	gaps := make([]types.SkillGap, 0, len(freq))
	for skill, count := range freq {
		gaps = append(gaps, types.SkillGap{Skill: skill, Count: count})
	}
	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].Count != gaps[j].Count {
			return gaps[i].Count > gaps[j].Count
		}
		return gaps[i].Skill < gaps[j].Skill
	})
	if len(gaps) > limit {
		gaps = gaps[:limit]
	}
	return gaps, nil
}

// tick advances the fake clock so created/stamped timestamps stay ordered.
func (f *fakeStore) tick() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

// fakeCache is an in-memory Cache recording operations for assertions.
// Errors are injectable to exercise the best-effort paths.
type fakeCache struct {
	data map[string][]byte

	getErr error
	setErr error
	delErr error

	gets, sets, deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	data, ok := c.data[key]
	return data, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.deletes++
	if c.delErr != nil {
		return c.delErr
	}
	delete(c.data, key)
	return nil
}

func (c *fakeCache) DeleteByPrefix(_ context.Context, prefix string) error {
	for key := range c.data {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.data, key)
		}
	}
	return nil
}

var errStoreDown = errors.New("store unavailable")
