package main

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "snapcheck",
	Short: "Snapcheck - pattern-directed snapshot matching",
	Long: `Snapcheck compares freshly produced output against recorded snapshots
under a pattern grammar richer than byte equality: placeholder redaction for
non-deterministic values, inline wildcards ([..]), line and value elision
(... and {...}), and order-insensitive comparison.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
