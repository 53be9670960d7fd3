package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/perfsum/pkg/analyzer"
	"github.com/ccollicutt/perfsum/pkg/output"
)

// NewHammerCommand creates the hammer command.
func NewHammerCommand(g *GlobalOptions) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "hammer <pnr-file> <hammer-file>",
		Short: "Summarize Hammer timings when no metrics file is available",
		Long: `Build performance.csv from the pnr-file and Hammer output alone.

Each run block lists the legacy and current entry times per PNR.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHammer(cmd, g, args, dump)
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "Also write the per-PNR text dump")

	return cmd
}

func runHammer(cmd *cobra.Command, g *GlobalOptions, args []string, dump bool) error {
	r, err := g.setup(cmd)
	if err != nil {
		return err
	}

	stats := analyzer.NewStats(r.analyzerOptions()...)
	if err := stats.ExtractPnrList(r.ctx, r.source(args[0])); err != nil {
		return err
	}
	if err := extractHammer(r.ctx, stats, r.source(args[1])); err != nil {
		return err
	}

	if err := r.write(r.cfg.Files.Pricing, func(w io.Writer) error {
		return output.WriteHammerCSV(w, stats)
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

	return r.finish("hammer", stats.Summary(), nil)
}
