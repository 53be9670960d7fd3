package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/perfsum/pkg/analyzer"
	"github.com/ccollicutt/perfsum/pkg/output"
)

// NewFdCommand creates the fd command.
func NewFdCommand(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fd <metrics-file> <hammer-file>",
		Short: "Correlate fare display metrics with Hammer timings",
		Long: `Build fd_performance.csv from a fare display test run.

Metrics are sorted by start time and assigned to the Hammer entries in
order. Sign-in entries (AAA...) never reach the server and get an empty
metric.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFd(cmd, g, args)
		},
	}
}

func runFd(cmd *cobra.Command, g *GlobalOptions, args []string) error {
	r, err := g.setup(cmd)
	if err != nil {
		return err
	}
	metricsFile, hammerFile := args[0], args[1]

	stats := analyzer.NewFdStats(r.analyzerOptions()...)
	if err := stats.ExtractHammerOut(r.ctx, r.source(hammerFile)); err != nil {
		return err
	}
	if err := stats.ExtractMetrics(r.ctx, r.source(metricsFile)); err != nil {
		return err
	}
	merged := stats.MergeMetrics()
	r.logger.Debug("fare display metrics merged", "entries", merged)

	if err := r.write(r.cfg.Files.FareDisplay, func(w io.Writer) error {
		return output.WriteFdCSV(w, stats)
	}); err != nil {
		return err
	}

	return r.finish("fd", stats.Summary(), nil)
}
