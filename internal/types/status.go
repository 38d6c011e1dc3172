package types

import "fmt"

// Status is the review state of a job match.
//
// Valid status graph:
//
//	new ──► viewed ──► saved ──► applied
//	 │         │          │          │
//	 └─────────┴──────────┴──────────┴──► dismissed
//
// The graph is advisory: any status may be set from any other, matching the
// loose review flow the UI exposes. What the engine does guarantee is that
// each status timestamp is stamped exactly once, the first time that status
// is reached.
type Status string

const (
	StatusNew       Status = "new"
	StatusViewed    Status = "viewed"
	StatusSaved     Status = "saved"
	StatusApplied   Status = "applied"
	StatusDismissed Status = "dismissed"
)

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusNew, StatusViewed, StatusSaved, StatusApplied, StatusDismissed:
		return st, nil
	}
	return "", fmt.Errorf("unknown match status %q", s)
}

// TimestampColumn returns the job_matches column stamped on the first
// transition into this status. StatusNew has no timestamp of its own:
// created_at covers it.
func (s Status) TimestampColumn() string {
	switch s {
	case StatusViewed:
		return "viewed_at"
	case StatusSaved:
		return "saved_at"
	case StatusApplied:
		return "applied_at"
	case StatusDismissed:
		return "dismissed_at"
	}
	return ""
}
