package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/perfsum/pkg/analyzer"
	"github.com/ccollicutt/perfsum/pkg/output"
)

// NewPricingCommand creates the pricing command.
func NewPricingCommand(g *GlobalOptions) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "pricing <pnr-file> <metrics-file> <hammer-file> <lniata>",
		Short: "Correlate pricing metrics with Hammer timings",
		Long: `Build performance.csv from a pricing test run.

The pnr-file lists the PNRs under test. Server metrics for terminal
<lniata> are paired with the Hammer timings for the same PNR, one row
per PNR for each run. The metrics file may be a glob such as
'logs/metrics.log*' to read rotated logs. A hammer file ending in
"dmp" is read as a terminal dump.

Exit codes:
  0 - Report written
  1 - Report written, but some PNRs had unequal metric and hammer counts
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPricing(cmd, g, args, dump)
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "Also write the per-PNR text dump")

	return cmd
}

func runPricing(cmd *cobra.Command, g *GlobalOptions, args []string, dump bool) error {
	r, err := g.setup(cmd)
	if err != nil {
		return err
	}
	pnrFile, metricsArg, hammerFile, lniata := args[0], args[1], args[2], args[3]

	stats := analyzer.NewStats(r.analyzerOptions()...)
	if err := stats.ExtractPnrList(r.ctx, r.source(pnrFile)); err != nil {
		return err
	}

	metricFiles, err := r.expand(metricsArg)
	if err != nil {
		return err
	}
	for _, f := range metricFiles {
		if err := stats.ExtractMetrics(r.ctx, f, lniata); err != nil {
			return err
		}
	}

	if err := extractHammer(r.ctx, stats, r.source(hammerFile)); err != nil {
		return err
	}
	if err := stats.CleanUp(); err != nil {
		return fmt.Errorf("correlating %s: %w", pnrFile, err)
	}

	if err := r.write(r.cfg.Files.Pricing, func(w io.Writer) error {
		return output.WritePricingCSV(w, stats)
	}); err != nil {
		return err
	}
	if dump {
		if err := r.write(r.cfg.Files.Dump, func(w io.Writer) error {
			return output.WriteDump(w, stats)
		}); err != nil {
			return err
		}
	}

	return r.finish("pricing", stats.Summary(), stats.MismatchedPNRs())
}
