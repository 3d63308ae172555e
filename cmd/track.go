// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kei-arima/github-contrib-tracker/internal/config"
	"github.com/kei-arima/github-contrib-tracker/internal/gateway"
	"github.com/kei-arima/github-contrib-tracker/internal/persister"
	"github.com/kei-arima/github-contrib-tracker/internal/usecase"
	"github.com/kei-arima/github-contrib-tracker/internal/visualizer"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Fetches and analyzes contribution data for one GitHub user",
	Long: `Fetches contribution events for the configured GitHub user over a bounded
historical window, computes summary statistics, and writes a timestamped CSV,
a timestamped analysis report, and a contribution chart to the output
directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		days, _ := cmd.Flags().GetInt("days")
		outDir, _ := cmd.Flags().GetString("out-dir")
		userFlag, _ := cmd.Flags().GetString("user")

		if days <= 0 {
			fmt.Fprintln(os.Stderr, "Error: --days must be a positive integer.")
			os.Exit(1)
		}

		// Configuration is validated before any fetch is attempted.
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		user := cfg.Username
		if userFlag != "" {
			user = userFlag
		}

		startedAt := time.Now()
		until := startedAt
		since := until.AddDate(0, 0, -days)

		// Inject dependencies and run the pipeline.
		githubGateway, err := gateway.NewGitHubGateway(cfg.Token, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		aggregator := usecase.NewAggregator(githubGateway, logger)

		stats, records, err := aggregator.Aggregate(ctx, user, since, until)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to aggregate contributions: %v\n", err)
			os.Exit(1)
		}

		p := persister.New(outDir, startedAt, logger)
		csvPath, err := p.WriteCSV(records)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save contribution data: %v\n", err)
			os.Exit(1)
		}
		reportPath, err := p.WriteReport(stats)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save analysis report: %v\n", err)
			os.Exit(1)
		}

		viz := visualizer.New(outDir, logger)
		chartPath, err := viz.RenderChart(stats.DailyTotals)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render chart: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("\nSummary for %s (last %d days):\n", user, days)
		fmt.Printf("  total_contributions: %d\n", stats.TotalContributions)
		fmt.Printf("  active_days: %d\n", stats.ActiveDays)
		fmt.Printf("  daily_average: %.2f\n", stats.DailyAverage)
		fmt.Printf("  longest_streak: %d\n", stats.LongestStreak)
		fmt.Printf("  current_streak: %d\n", stats.CurrentStreak)
		fmt.Printf("  skipped_records: %d\n", stats.SkippedRecords)

		fmt.Printf("\nOutputs:\n  %s\n  %s\n", csvPath, reportPath)
		if chartPath != "" {
			fmt.Printf("  %s\n", chartPath)
		}
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.Flags().Int("days", 365, "Number of days of history to fetch")
	trackCmd.Flags().String("out-dir", "data", "Directory for CSV, report, and chart output")
	trackCmd.Flags().String("user", "", "GitHub user to analyze (defaults to GITHUB_USERNAME)")
}
