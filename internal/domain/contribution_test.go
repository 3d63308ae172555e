package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKind(t *testing.T) {
	testCases := []struct {
		raw      string
		expected Kind
	}{
		{"PushEvent", KindCommit},
		{"commit", KindCommit},
		{"PullRequestEvent", KindPullRequest},
		{"pull_request", KindPullRequest},
		{"IssuesEvent", KindIssue},
		{"PullRequestReviewEvent", KindReview},
		{"PullRequestReviewCommentEvent", KindReview},
		{" pushevent ", KindCommit},
		{"WatchEvent", KindOther},
		{"ForkEvent", KindOther},
		{"SomeFutureEvent", KindOther},
		{"", KindOther},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeKind(tc.raw))
		})
	}
}

func TestKind_Valid(t *testing.T) {
	for _, kind := range Kinds {
		assert.True(t, kind.Valid())
	}
	assert.False(t, Kind("DeploymentEvent").Valid())
	assert.False(t, Kind("").Valid())
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("JST", 9*60*60)
	in := time.Date(2024, 5, 10, 3, 30, 0, 0, loc) // 2024-05-09T18:30Z
	assert.Equal(t, time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC), Day(in))

	utc := time.Date(2024, 5, 10, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), Day(utc))
}
