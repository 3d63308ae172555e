// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "contrib-tracker",
	Short: "A CLI tool to track and analyze a GitHub user's contributions.",
	Long: `contrib-tracker fetches a GitHub user's recent contribution events
(commits, pull requests, issues, reviews), reduces them to daily and
per-type statistics including streaks, and writes a CSV file, a text
report, and a chart image under a data directory.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
