package usecase

import (
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/kei-arima/github-contrib-tracker/internal/domain"
)

// Summarize reduces a finite record sequence to an immutable statistics
// snapshot. It is a pure function: no I/O, deterministic for a given input
// and reference time. Malformed records (non-positive count, zero date, or
// a date after now) are skipped and tallied, never fatal.
func Summarize(records []domain.ContributionRecord, now time.Time) domain.AggregatedStats {
	out := domain.AggregatedStats{
		ByKind:       make(map[domain.Kind]int, len(domain.Kinds)),
		ByRepository: make(map[string]int),
		DailyTotals:  make(map[time.Time]int),
		RawTypeTally: make(map[string]int),
	}
	for _, k := range domain.Kinds {
		out.ByKind[k] = 0
	}

	today := domain.Day(now)
	for _, rec := range records {
		day := domain.Day(rec.Date)
		if rec.Count < 1 || rec.Date.IsZero() || day.After(today) {
			out.SkippedRecords++
			continue
		}

		kind := rec.Kind
		if !kind.Valid() {
			kind = domain.KindOther
		}
		repo := rec.Repository
		if repo == "" {
			repo = "unknown"
		}
		raw := rec.RawType
		if raw == "" {
			raw = string(rec.Kind)
		}

		out.TotalContributions += rec.Count
		out.ByKind[kind] += rec.Count
		out.ByRepository[repo] += rec.Count
		out.DailyTotals[day] += rec.Count
		out.RawTypeTally[raw] += rec.Count
	}

	active := activeDays(out.DailyTotals)
	out.ActiveDays = len(active)
	if len(active) == 0 {
		return out
	}

	out.DateRange = &domain.DateRange{
		Earliest: active[0],
		Latest:   active[len(active)-1],
	}
	out.DailyAverage = roundHalfEven2(float64(out.TotalContributions) / float64(out.ActiveDays))
	out.LongestStreak, out.CurrentStreak = streaks(active)

	data := make(stats.Float64Data, 0, len(active))
	for _, day := range active {
		data = append(data, float64(out.DailyTotals[day]))
	}
	if median, err := stats.Median(data); err == nil {
		out.MedianPerActiveDay = roundHalfEven2(median)
	}
	if max, err := stats.Max(data); err == nil {
		out.MaxPerDay = int(max)
	}

	return out
}

// activeDays returns the dates with a strictly positive total, sorted
// ascending. A zero-count placeholder never makes a day active.
func activeDays(dailyTotals map[time.Time]int) []time.Time {
	days := make([]time.Time, 0, len(dailyTotals))
	for day, total := range dailyTotals {
		if total > 0 {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	return days
}

// streaks scans the sorted active dates for consecutive-day runs. The
// current streak is the run ending at the most recent active date.
func streaks(days []time.Time) (longest, current int) {
	if len(days) == 0 {
		return 0, 0
	}
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest, run
}

// roundHalfEven2 rounds to two decimal places with banker's rounding so
// report output is stable across runs with identical input.
func roundHalfEven2(x float64) float64 {
	return math.RoundToEven(x*100) / 100
}
