package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/perfsum/internal/logging"
	"github.com/ccollicutt/perfsum/pkg/analyzer"
	"github.com/ccollicutt/perfsum/pkg/config"
	"github.com/ccollicutt/perfsum/pkg/metrics"
	"github.com/ccollicutt/perfsum/pkg/output"
	"github.com/ccollicutt/perfsum/pkg/parser"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// GlobalOptions holds the flags shared by every report command.
type GlobalOptions struct {
	ConfigFile      string
	OutputDir       string
	Strict          bool
	Summary         string
	MetricsTextfile string
	Verbose         bool
	Quiet           bool
	LogFormat       string
}

// Bind registers the shared flags as persistent flags of cmd.
func (g *GlobalOptions) Bind(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringVarP(&g.ConfigFile, "config", "c", "", "Configuration file (YAML)")
	fs.StringVarP(&g.OutputDir, "output-dir", "d", "", "Directory for report files")
	fs.BoolVar(&g.Strict, "strict", false, "Fail on metric/hammer count mismatches and illegal dump sequences")
	fs.StringVarP(&g.Summary, "summary", "s", "", "Summary format (text|json)")
	fs.StringVar(&g.MetricsTextfile, "metrics-textfile", "", "Write run gauges to this Prometheus textfile")
	fs.BoolVarP(&g.Verbose, "verbose", "v", false, "Debug logging and run metadata in the summary")
	fs.BoolVarP(&g.Quiet, "quiet", "q", false, "One-line summary")
	fs.StringVar(&g.LogFormat, "log-format", "text", "Log format (text|json)")
}

// run is the state shared by one invocation of a report command.
type run struct {
	ctx     context.Context
	cmd     *cobra.Command
	cfg     *config.Config
	logger  *slog.Logger
	verbose bool
	quiet   bool
	started time.Time

	sources []string
	outputs []string
}

// setup loads configuration, applies flag overrides and builds the logger.
// Precedence is defaults, file, environment, then flags.
func (g *GlobalOptions) setup(cmd *cobra.Command) (*run, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, g.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.OutputDir = g.OutputDir
	}
	if flags.Changed("strict") {
		cfg.Strict = g.Strict
	}
	if flags.Changed("summary") {
		cfg.SummaryFormat = g.Summary
	}
	if flags.Changed("metrics-textfile") {
		cfg.MetricsTextfile = g.MetricsTextfile
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	var json bool
	switch g.LogFormat {
	case "", "text":
	case "json":
		json = true
	default:
		return nil, fmt.Errorf("unknown log format %q (use text or json)", g.LogFormat)
	}
	level := "info"
	if g.Verbose {
		level = "debug"
	}

	return &run{
		ctx:     ctx,
		cmd:     cmd,
		cfg:     cfg,
		logger:  logging.NewLogger(level, json, cmd.ErrOrStderr()),
		verbose: g.Verbose,
		quiet:   g.Quiet,
		started: time.Now(),
	}, nil
}

func (r *run) analyzerOptions() []analyzer.Option {
	return []analyzer.Option{
		analyzer.WithStrict(r.cfg.Strict),
		analyzer.WithLogger(r.logger),
	}
}

// expand resolves a metrics argument that may be a glob.
func (r *run) expand(pattern string) ([]string, error) {
	files, err := parser.ExpandGlobs([]string{pattern})
	if err != nil {
		return nil, fmt.Errorf("expanding %q: %w", pattern, err)
	}
	r.sources = append(r.sources, files...)
	return files, nil
}

func (r *run) source(path string) string {
	r.sources = append(r.sources, path)
	return path
}

// write creates the named report file in the output directory.
func (r *run) write(name string, fn func(io.Writer) error) error {
	path := r.cfg.OutputPath(name)
	f, err := os.Create(path) // #nosec G304 -- output path comes from config or flags
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	r.outputs = append(r.outputs, path)
	r.logger.Debug("report written", "file", path)
	return nil
}

// finish prints the summary and writes the metrics textfile.
func (r *run) finish(mode string, sum analyzer.Summary, mismatched []string) error {
	report := output.NewReport(mode, sum, r.started)
	report.Metadata.Sources = r.sources
	report.Metadata.Outputs = r.outputs
	report.Metadata.Mismatched = mismatched

	formatter, err := output.NewFormatter(r.cfg.SummaryFormat, output.FormatOptions{
		Verbose: r.verbose,
		Quiet:   r.quiet,
	})
	if err != nil {
		return err
	}
	if err := formatter.Format(r.ctx, report, r.cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting summary: %w", err)
	}

	if r.cfg.MetricsTextfile != "" {
		rec := metrics.NewRecorder()
		rec.Observe(mode, sum, report.Metadata.Duration, report.Metadata.GeneratedAt)
		if err := rec.WriteTextfile(r.cfg.MetricsTextfile); err != nil {
			return fmt.Errorf("writing metrics textfile: %w", err)
		}
	}

	if report.HasMismatches() {
		ExitCode = 1
	}
	return nil
}

// extractHammer picks the dump parser for files ending in dmp.
func extractHammer(ctx context.Context, stats *analyzer.Stats, path string) error {
	if strings.HasSuffix(path, "dmp") {
		return stats.ExtractHammerDump(ctx, path)
	}
	return stats.ExtractHammerOut(ctx, path)
}
