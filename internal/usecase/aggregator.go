// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kei-arima/github-contrib-tracker/internal/domain"
	"github.com/kei-arima/github-contrib-tracker/internal/gateway"
)

// Aggregator is the use case for turning a user's raw contribution records
// into an AggregatedStats snapshot.
type Aggregator struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
	now     func() time.Time
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
}

// Aggregate fetches both record sources concurrently, checks the fetcher
// contract, and reduces the combined sequence with Summarize. It returns the
// stats together with the sorted record sequence they were computed from, so
// the caller can persist both.
func (a *Aggregator) Aggregate(ctx context.Context, user string, since, until time.Time) (*domain.AggregatedStats, []domain.ContributionRecord, error) {
	a.logger.Println("Usecase: Starting data aggregation...")

	var eventRecords, reviewRecords []domain.ContributionRecord

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		eventRecords, err = a.fetcher.FetchEvents(egCtx, user, since, until)
		return err
	})

	eg.Go(func() error {
		var err error
		reviewRecords, err = a.fetcher.FetchReviewedPRs(egCtx, user, since, until)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	// A fetcher that reports success must return a record sequence, even an
	// empty one. A nil sequence is a contract violation.
	if eventRecords == nil || reviewRecords == nil {
		return nil, nil, fmt.Errorf("fetcher returned no record sequence: %w", domain.ErrInvalidInput)
	}
	a.logger.Println("Usecase: All data fetched successfully.")

	records := make([]domain.ContributionRecord, 0, len(eventRecords)+len(reviewRecords))
	records = append(records, eventRecords...)
	records = append(records, reviewRecords...)

	// Sort for deterministic CSV output across runs with identical input.
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		if records[i].Kind != records[j].Kind {
			return records[i].Kind < records[j].Kind
		}
		return records[i].Repository < records[j].Repository
	})

	stats := Summarize(records, a.now())
	a.logger.Printf("Usecase: Aggregation complete (%d records, %d skipped).", len(records), stats.SkippedRecords)
	return &stats, records, nil
}
