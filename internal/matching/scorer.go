// Package matching implements the job compatibility matching engine: scoring
// job listings against user preferences, refreshing a user's match set,
// moving matches through their review lifecycle, and aggregating match
// statistics.
package matching

import (
	"math"
	"strings"

	"github.com/jonathan/jobmatch/internal/types"
)

// Weights for the overall compatibility score.
const (
	skillsWeight     = 0.35
	keywordsWeight   = 0.25
	experienceWeight = 0.25
	educationWeight  = 0.15
)

const (
	// neutralScore is used whenever a signal is missing: no preferences
	// record, a job with no listed skills or keywords, unknown experience.
	neutralScore = 50

	// remoteBonus is added to the skills score when the user prefers remote
	// work and the job is remote.
	remoteBonus = 10

	// missingListCap bounds the missing-skills and missing-keywords evidence
	// lists so match records stay small. Matched lists are not capped.
	missingListCap = 10
)

// Score computes the compatibility breakdown for one job against one user's
// preferences. It is pure and deterministic: no I/O, no clock, no randomness.
// A nil prefs means the user has no preferences record; every component
// falls back to the neutral default and the evidence lists stay empty.
func Score(job *types.JobListing, prefs *types.UserPreferences) types.ScoreBreakdown {
	b := types.ScoreBreakdown{
		Skills:     neutralScore,
		Keywords:   neutralScore,
		Experience: neutralScore,
		// Education has no underlying signal in the data model. It stays at
		// the neutral default as a documented placeholder.
		Education: neutralScore,
	}

	if prefs != nil {
		jobSkills := dedupLower(append(append([]string{}, job.RequiredSkills...), job.PreferredSkills...))
		if len(jobSkills) > 0 {
			matched, missing := overlap(jobSkills, prefs.Skills)
			b.Skills = roundRatio(len(matched), len(jobSkills))
			b.MatchedSkills = matched
			b.MissingSkills = capList(missing, missingListCap)
		}
		if prefs.PrefersRemote && job.Remote {
			b.Skills += remoteBonus
		}

		jobKeywords := dedupLower(job.Keywords)
		if len(jobKeywords) > 0 {
			matched, missing := overlap(jobKeywords, prefs.ResumeKeywords)
			b.Keywords = roundRatio(len(matched), len(jobKeywords))
			b.MatchedKeywords = matched
			b.MissingKeywords = capList(missing, missingListCap)
		}

		if prefs.YearsExperience != nil && job.MinYears != nil {
			userYears, minYears := *prefs.YearsExperience, *job.MinYears
			if userYears >= minYears {
				b.Experience = 100
			} else {
				b.Experience = roundRatio(userYears, minYears)
			}
		}
	}

	b.Skills = clampScore(b.Skills)
	b.Keywords = clampScore(b.Keywords)
	b.Experience = clampScore(b.Experience)
	b.Education = clampScore(b.Education)

	overall := skillsWeight*float64(b.Skills) +
		keywordsWeight*float64(b.Keywords) +
		experienceWeight*float64(b.Experience) +
		educationWeight*float64(b.Education)
	b.Overall = clampScore(int(math.Round(overall)))

	return b
}

// overlap splits jobTerms into matched and missing against userTerms.
// Matching is case-insensitive and substring-tolerant: a user term matches a
// job term when either string contains the other ("golang" matches "go").
// Returned entries are the lowercased job-side terms in listing order.
func overlap(jobTerms, userTerms []string) (matched, missing []string) {
	lowered := make([]string, 0, len(userTerms))
	for _, t := range userTerms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			lowered = append(lowered, t)
		}
	}

	for _, jt := range jobTerms {
		found := false
		for _, ut := range lowered {
			if strings.Contains(jt, ut) || strings.Contains(ut, jt) {
				found = true
				break
			}
		}
		if found {
			matched = append(matched, jt)
		} else {
			missing = append(missing, jt)
		}
	}
	return matched, missing
}

// dedupLower lowercases and trims terms, dropping empties and duplicates
// while preserving the listing's order.
func dedupLower(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func roundRatio(part, total int) int {
	if total <= 0 {
		return neutralScore
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func capList(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
