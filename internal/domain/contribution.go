// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"strings"
	"time"
)

// Kind is the normalized contribution category.
type Kind string

const (
	KindCommit      Kind = "commit"
	KindPullRequest Kind = "pull_request"
	KindIssue       Kind = "issue"
	KindReview      Kind = "review"
	KindOther       Kind = "other"
)

// Kinds lists every category in report order.
var Kinds = []Kind{KindCommit, KindPullRequest, KindIssue, KindReview, KindOther}

// Valid reports whether k is one of the fixed contribution categories.
func (k Kind) Valid() bool {
	switch k {
	case KindCommit, KindPullRequest, KindIssue, KindReview, KindOther:
		return true
	}
	return false
}

// NormalizeKind maps a raw GitHub event type onto a fixed Kind.
// Unrecognized types fold into KindOther so that new event kinds never
// break a run; the caller keeps the raw string for diagnostics.
func NormalizeKind(raw string) Kind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pushevent", "commit":
		return KindCommit
	case "pullrequestevent", "pull_request":
		return KindPullRequest
	case "issuesevent", "issue":
		return KindIssue
	case "pullrequestreviewevent", "pullrequestreviewcommentevent", "review":
		return KindReview
	default:
		return KindOther
	}
}

// Day truncates t to midnight UTC. All per-day bucketing uses this key.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ContributionRecord is one observed activity event. Records are created
// once per fetch and never mutated afterwards.
type ContributionRecord struct {
	Date       time.Time `json:"date"`
	Kind       Kind      `json:"type"`
	RawType    string    `json:"-"`
	Repository string    `json:"repository"`
	Count      int       `json:"count"`
}

// DateRange is the inclusive span of dates covered by a record set.
type DateRange struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

// AggregatedStats is an immutable snapshot computed from a complete record
// sequence. It is never updated incrementally.
type AggregatedStats struct {
	TotalContributions int               `json:"total_contributions"`
	ByKind             map[Kind]int      `json:"by_type"`
	ByRepository       map[string]int    `json:"by_repository"`
	DailyTotals        map[time.Time]int `json:"daily_totals"`
	RawTypeTally       map[string]int    `json:"raw_type_tally,omitempty"`
	ActiveDays         int               `json:"active_days"`
	DateRange          *DateRange        `json:"date_range,omitempty"`
	DailyAverage       float64           `json:"daily_average"`
	MedianPerActiveDay float64           `json:"median_per_active_day"`
	MaxPerDay          int               `json:"max_per_day"`
	LongestStreak      int               `json:"longest_streak"`
	CurrentStreak      int               `json:"current_streak"`
	SkippedRecords     int               `json:"skipped_records"`
}
