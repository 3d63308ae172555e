package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kei-arima/github-contrib-tracker/internal/domain"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It lets us exercise the aggregator without real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchEvents(ctx context.Context, user string, since, until time.Time) ([]domain.ContributionRecord, error) {
	args := m.Called(ctx, user, since, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContributionRecord), args.Error(1)
}

func (m *mockFetcher) FetchReviewedPRs(ctx context.Context, user string, since, until time.Time) ([]domain.ContributionRecord, error) {
	args := m.Called(ctx, user, since, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContributionRecord), args.Error(1)
}

func TestAggregator_Aggregate(t *testing.T) {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		mockEvents     []domain.ContributionRecord
		mockReviews    []domain.ContributionRecord
		mockEventsErr  error
		mockReviewsErr error
		expectedTotal  int
		expectedOrder  []string // repository order of the returned records
		expectError    bool
		expectInvalid  bool
	}{
		{
			name: "happy path - merges both record sources",
			mockEvents: []domain.ContributionRecord{
				rec(t, "2024-01-02", domain.KindCommit, "org/repo-b", 2),
				rec(t, "2024-01-01", domain.KindCommit, "org/repo-a", 3),
			},
			mockReviews: []domain.ContributionRecord{
				rec(t, "2024-01-01", domain.KindReview, "org/repo-a", 1),
			},
			expectedTotal: 6,
			expectedOrder: []string{"org/repo-a", "org/repo-a", "org/repo-b"},
			expectError:   false,
		},
		{
			name:        "empty case - no activity at all",
			mockEvents:  []domain.ContributionRecord{},
			mockReviews: []domain.ContributionRecord{},
			expectError: false,
		},
		{
			name:          "error case - event fetch fails",
			mockEventsErr: errors.New("github api error"),
			mockReviews:   []domain.ContributionRecord{},
			expectError:   true,
		},
		{
			name:          "contract violation - nil records without an error",
			mockEvents:    nil,
			mockReviews:   []domain.ContributionRecord{},
			expectError:   true,
			expectInvalid: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			logger := log.New(io.Discard, "", 0)
			fetcher := new(mockFetcher)

			fetcher.On("FetchEvents", mock.Anything, "any-user", since, until).Return(tc.mockEvents, tc.mockEventsErr)
			fetcher.On("FetchReviewedPRs", mock.Anything, "any-user", since, until).Return(tc.mockReviews, tc.mockReviewsErr)

			aggregator := NewAggregator(fetcher, logger)

			statsResult, records, err := aggregator.Aggregate(ctx, "any-user", since, until)

			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, statsResult)
				assert.Nil(t, records)
				if tc.expectInvalid {
					assert.ErrorIs(t, err, domain.ErrInvalidInput)
				}
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expectedTotal, statsResult.TotalContributions)

			var order []string
			for _, r := range records {
				order = append(order, r.Repository)
			}
			assert.Equal(t, tc.expectedOrder, order)

			// Records are sorted by date first.
			for i := 1; i < len(records); i++ {
				assert.False(t, records[i].Date.Before(records[i-1].Date))
			}
		})
	}
}

func TestAggregator_Aggregate_StatsMatchSummarize(t *testing.T) {
	ctx := context.Background()
	logger := log.New(io.Discard, "", 0)
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	events := []domain.ContributionRecord{
		rec(t, "2024-03-01", domain.KindCommit, "org/repo-a", 2),
		rec(t, "2024-03-02", domain.KindIssue, "org/repo-b", 1),
	}
	reviews := []domain.ContributionRecord{
		rec(t, "2024-03-02", domain.KindReview, "org/repo-a", 1),
	}

	fetcher := new(mockFetcher)
	fetcher.On("FetchEvents", mock.Anything, "any-user", since, until).Return(events, nil)
	fetcher.On("FetchReviewedPRs", mock.Anything, "any-user", since, until).Return(reviews, nil)

	aggregator := NewAggregator(fetcher, logger)
	statsResult, records, err := aggregator.Aggregate(ctx, "any-user", since, until)

	assert.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, 4, statsResult.TotalContributions)
	assert.Equal(t, 2, statsResult.ActiveDays)
	assert.Equal(t, 2, statsResult.LongestStreak)
	fetcher.AssertExpectations(t)
}
