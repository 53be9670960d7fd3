package output

import (
	"context"
	"fmt"
	"io"
	"strings"
)

const statsBanner = "********************"

// TextFormatter prints the data statistics block.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	s := report.Summary
	_, err := fmt.Fprintf(w, "perfsum %s: %d PNRs, %d hammer entries, %d metrics, %d unrecognized\n",
		report.Metadata.Mode, s.PNRs, s.HammerEntries, s.Metrics, s.Unrecognized)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	s := report.Summary

	fmt.Fprintln(w)
	fmt.Fprintln(w, statsBanner)
	fmt.Fprintln(w, "Data Statistics")
	fmt.Fprintln(w, statsBanner)
	fmt.Fprintf(w, "Num PNRs: %d\n", s.PNRs)
	fmt.Fprintf(w, "Num expected runs: %d\n", s.ExpectedRuns)
	fmt.Fprintf(w, "Num hammer entries: %d\n", s.HammerEntries)
	fmt.Fprintf(w, "Num metrics: %d\n", s.Metrics)
	fmt.Fprintf(w, "Num unrecognized metrics: %d\n", s.Unrecognized)

	if report.HasMismatches() {
		fmt.Fprintf(w, "Mismatched PNRs: %s\n", strings.Join(report.Metadata.Mismatched, ", "))
	}

	if f.opts.Verbose {
		md := report.Metadata
		fmt.Fprintf(w, "Mode: %s\n", md.Mode)
		if len(md.Sources) > 0 {
			fmt.Fprintf(w, "Sources: %s\n", strings.Join(md.Sources, ", "))
		}
		if len(md.Outputs) > 0 {
			fmt.Fprintf(w, "Outputs: %s\n", strings.Join(md.Outputs, ", "))
		}
		fmt.Fprintf(w, "Duration: %s\n", md.Duration.Round(1e6))
	}

	return nil
}
