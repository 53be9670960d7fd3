// Package output renders report files and the run summary.
package output

import (
	"time"

	"github.com/ccollicutt/perfsum/pkg/analyzer"
)

// Report is the run summary printed after the CSV is written.
type Report struct {
	// Summary holds the data statistics.
	Summary Summary `json:"summary"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Summary holds the data statistics of a run.
type Summary struct {
	PNRs          int `json:"pnrs"`
	ExpectedRuns  int `json:"expected_runs"`
	HammerEntries int `json:"hammer_entries"`
	Metrics       int `json:"metrics"`
	Unrecognized  int `json:"unrecognized"`
}

// Metadata provides context about the run.
type Metadata struct {
	// Mode is the subcommand that produced the report.
	Mode string `json:"mode"`

	// Sources lists the input files that were read.
	Sources []string `json:"sources"`

	// Outputs lists the files that were written.
	Outputs []string `json:"outputs"`

	// Mismatched lists PNRs whose metric and hammer counts differ.
	Mismatched []string `json:"mismatched,omitempty"`

	// GeneratedAt is when the run finished.
	GeneratedAt time.Time `json:"generated_at"`

	// Duration is how long the run took.
	Duration time.Duration `json:"duration"`
}

// NewReport creates a Report from a collector's counters.
func NewReport(mode string, sum analyzer.Summary, started time.Time) *Report {
	now := time.Now()
	return &Report{
		Summary: Summary{
			PNRs:          sum.PNRs,
			ExpectedRuns:  sum.ExpectedRuns,
			HammerEntries: sum.HammerEntries,
			Metrics:       sum.Metrics,
			Unrecognized:  sum.Unrecognized,
		},
		Metadata: Metadata{
			Mode:        mode,
			GeneratedAt: now,
			Duration:    now.Sub(started),
		},
	}
}

// HasMismatches returns true if any PNR could not be paired cleanly.
func (r *Report) HasMismatches() bool {
	return len(r.Metadata.Mismatched) > 0
}
