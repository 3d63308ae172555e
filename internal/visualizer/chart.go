// Package visualizer renders per-day contribution totals as a PNG
// time-series chart.
package visualizer

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

const fileName = "contribution_graph.png"

// Visualizer draws the contribution chart into an output directory.
type Visualizer struct {
	dir    string
	logger *log.Logger
}

// New creates a Visualizer rooted at dir.
func New(dir string, logger *log.Logger) *Visualizer {
	return &Visualizer{dir: dir, logger: logger}
}

// RenderChart draws the daily totals as a time series and writes
// contribution_graph.png atomically. Empty input is not an error: nothing
// is written and the returned path is empty.
func (v *Visualizer) RenderChart(dailyTotals map[time.Time]int) (string, error) {
	if len(dailyTotals) == 0 {
		v.logger.Println("No data to visualize, skipping chart.")
		return "", nil
	}

	days := make([]time.Time, 0, len(dailyTotals))
	for day := range dailyTotals {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	xs := make([]time.Time, 0, len(days))
	ys := make([]float64, 0, len(days))
	for _, day := range days {
		xs = append(xs, day)
		ys = append(ys, float64(dailyTotals[day]))
	}
	if len(xs) == 1 {
		// A single point has no x-range to plot; widen it by one day.
		xs = append(xs, xs[0].AddDate(0, 0, 1))
		ys = append(ys, 0)
	}

	graph := chart.Chart{
		Title:  "GitHub Contributions Over Time",
		Width:  1200,
		Height: 600,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "contributions",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					FillColor:   chart.ColorBlue.WithAlpha(64),
				},
			},
		},
	}

	if err := os.MkdirAll(v.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(v.dir, fileName)
	tmp, err := os.CreateTemp(v.dir, fileName+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := graph.Render(chart.PNG, tmp); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to render chart: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	v.logger.Printf("Saved visualization to %s", path)
	return path, nil
}
