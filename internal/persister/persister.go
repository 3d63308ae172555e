// Package persister writes run outputs to disk. Every file is written to a
// temporary sibling first and renamed into place, so a failed run never
// leaves a partial file behind.
package persister

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/kei-arima/github-contrib-tracker/internal/domain"
)

// timestampLayout is fixed and sortable; every file of one run shares it.
const timestampLayout = "20060102_150405"

// Persister writes the CSV and report files for a single run.
type Persister struct {
	dir    string
	stamp  string
	logger *log.Logger
}

// New creates a Persister rooted at dir. startedAt stamps every file name
// produced by this run.
func New(dir string, startedAt time.Time, logger *log.Logger) *Persister {
	return &Persister{
		dir:    dir,
		stamp:  startedAt.Format(timestampLayout),
		logger: logger,
	}
}

// WriteCSV stores the raw records as contributions_<timestamp>.csv with
// columns date, type, repository, count.
func (p *Persister) WriteCSV(records []domain.ContributionRecord) (string, error) {
	path := filepath.Join(p.dir, fmt.Sprintf("contributions_%s.csv", p.stamp))
	err := p.writeAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"date", "type", "repository", "count"}); err != nil {
			return err
		}
		for _, rec := range records {
			row := []string{
				rec.Date.Format("2006-01-02"),
				string(rec.Kind),
				rec.Repository,
				strconv.Itoa(rec.Count),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return "", fmt.Errorf("failed to write contribution CSV: %w", err)
	}
	p.logger.Printf("Saved contribution data to %s", path)
	return path, nil
}

// WriteReport stores a human-readable rendering of the stats as
// analysis_<timestamp>.txt.
func (p *Persister) WriteReport(s *domain.AggregatedStats) (string, error) {
	path := filepath.Join(p.dir, fmt.Sprintf("analysis_%s.txt", p.stamp))
	err := p.writeAtomic(path, func(w io.Writer) error {
		return renderReport(w, s)
	})
	if err != nil {
		return "", fmt.Errorf("failed to write analysis report: %w", err)
	}
	p.logger.Printf("Saved analysis to %s", path)
	return path, nil
}

func renderReport(w io.Writer, s *domain.AggregatedStats) error {
	dateRange := "none"
	if s.DateRange != nil {
		dateRange = fmt.Sprintf("%s .. %s",
			s.DateRange.Earliest.Format("2006-01-02"),
			s.DateRange.Latest.Format("2006-01-02"))
	}

	if _, err := fmt.Fprintf(w,
		"total_contributions: %d\nactive_days: %d\ndaily_average: %.2f\nmedian_per_active_day: %.2f\nmax_per_day: %d\nlongest_streak: %d\ncurrent_streak: %d\nskipped_records: %d\ndate_range: %s\n",
		s.TotalContributions, s.ActiveDays, s.DailyAverage, s.MedianPerActiveDay,
		s.MaxPerDay, s.LongestStreak, s.CurrentStreak, s.SkippedRecords, dateRange,
	); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "by_type:"); err != nil {
		return err
	}
	for _, kind := range domain.Kinds {
		if _, err := fmt.Fprintf(w, "  %s: %d\n", kind, s.ByKind[kind]); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "by_repository:"); err != nil {
		return err
	}
	for _, repo := range sortedRepos(s.ByRepository) {
		if _, err := fmt.Fprintf(w, "  %s: %d\n", repo, s.ByRepository[repo]); err != nil {
			return err
		}
	}
	return nil
}

// sortedRepos orders repositories by descending total, then name, so the
// report is stable across runs.
func sortedRepos(byRepository map[string]int) []string {
	repos := make([]string, 0, len(byRepository))
	for repo := range byRepository {
		repos = append(repos, repo)
	}
	sort.Slice(repos, func(i, j int) bool {
		if byRepository[repos[i]] != byRepository[repos[j]] {
			return byRepository[repos[i]] > byRepository[repos[j]]
		}
		return repos[i] < repos[j]
	})
	return repos
}

func (p *Persister) writeAtomic(path string, fill func(io.Writer) error) error {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(p.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := fill(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
