package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/perfsum/pkg/analyzer"
	"github.com/ccollicutt/perfsum/pkg/output"
)

// NewMetricsCommand creates the metrics command.
func NewMetricsCommand(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <metrics-file> [lniata]",
		Short: "List pricing metrics without Hammer timings",
		Long: `Build performance.csv with one row per server metric record.

Without <lniata> the configured default is used; when that is empty too,
every terminal is included. The metrics file may be a glob.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMetrics(cmd, g, args)
		},
	}
}

func runMetrics(cmd *cobra.Command, g *GlobalOptions, args []string) error {
	r, err := g.setup(cmd)
	if err != nil {
		return err
	}

	lniata := r.cfg.LNIATA
	if len(args) == 2 {
		lniata = args[1]
	}

	stats := analyzer.NewMetricsOnly(lniata, r.analyzerOptions()...)
	files, err := r.expand(args[0])
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := stats.ExtractMetrics(r.ctx, f); err != nil {
			return err
		}
	}

	if err := r.write(r.cfg.Files.Pricing, func(w io.Writer) error {
		return output.WriteMetricsCSV(w, stats)
	}); err != nil {
		return err
	}

	return r.finish("metrics", stats.Summary(), nil)
}
