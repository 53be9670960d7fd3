// Package cli provides the command-line interface for perfsum.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/perfsum/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	opts := &commands.GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "perfsum",
		Short: "Summarize pricing and fare display performance runs",
		Long: `perfsum turns the logs of a performance test into spreadsheet-ready CSV.

It pairs the server's per-transaction metrics with the timings recorded
by the Hammer test harness:
  pricing  pnr-list + metrics + Hammer output -> performance.csv
  hammer   pnr-list + Hammer output           -> performance.csv
  metrics  metrics only                       -> performance.csv
  fd       fare display metrics + Hammer      -> fd_performance.csv

Settings come from defaults, then --config, then PERFSUM_* environment
variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	opts.Bind(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(commands.NewPricingCommand(opts))
	rootCmd.AddCommand(commands.NewHammerCommand(opts))
	rootCmd.AddCommand(commands.NewMetricsCommand(opts))
	rootCmd.AddCommand(commands.NewFdCommand(opts))
	rootCmd.AddCommand(commands.NewValidateCommand(opts))
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
