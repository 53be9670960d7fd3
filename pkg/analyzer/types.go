// Package analyzer correlates server metrics with Hammer timings and holds
// the aggregate state of one report run.
package analyzer

import (
	"errors"
	"io"
	"log/slog"
	"regexp"
)

var (
	// ErrEntryArity is returned when a fare display entry is not exactly
	// entry text plus begin and end times.
	ErrEntryArity = errors.New("fare display entry needs entry, begin and end")

	// ErrIllegalTransition is returned in strict mode when a dump file
	// shows a time or entry line out of sequence.
	ErrIllegalTransition = errors.New("illegal dump transition")

	// ErrCountMismatch is returned in strict mode when a PNR's metric and
	// hammer counts differ, which would shift every later pairing.
	ErrCountMismatch = errors.New("metric and hammer counts differ")
)

// UnknownPNR is the key given to a pnr-list record without a key line.
const UnknownPNR = "******"

// Input file patterns.
var (
	recordHeaderPattern = regexp.MustCompile(`^-+(\d+)-+`)
	pnrKeyPattern       = regexp.MustCompile(`^\*([A-Z]{6})`)
	intlEntryPattern    = regexp.MustCompile(`^(WPB.*)`)

	metricsFirstPattern  = regexp.MustCompile(`^\d\d\d\d-.+Metrics - .?$`)
	metricsSecondPattern = regexp.MustCompile(`\*{58}`)

	hammerOutPNRPattern   = regexp.MustCompile(`^\*([A-Z]{6}),`)
	hammerOutEntryPattern = regexp.MustCompile(`^(WP.*),.*?(\d+:\d+:\d+),(\d+:\d+:\d+)`)

	fdMeasurementPattern = regexp.MustCompile(`TRANSACTION MEASUREMENTS`)
	fdEntryPattern       = regexp.MustCompile(`^([AFR][^,]+).*,(\d+:\d\d:\d\d),(\d+:\d\d:\d\d)`)
)

// Summary counts what a run extracted. It is printed after every run.
type Summary struct {
	// PNRs is the number of distinct keys from the pnr-list file.
	PNRs int

	// ExpectedRuns is the total run count declared across all PNRs.
	ExpectedRuns int

	// HammerEntries is the number of hammer entries attached to a record.
	HammerEntries int

	// Metrics is the number of metric records attached to a record.
	Metrics int

	// Unrecognized is the number of metric or hammer records dropped
	// because their key (or LNIATA) was not expected.
	Unrecognized int
}

// Option configures a stats collector.
type Option func(*settings)

type settings struct {
	strict bool
	logger *slog.Logger
}

// WithStrict turns correlation problems into errors instead of warnings.
func WithStrict(strict bool) Option {
	return func(s *settings) {
		s.strict = strict
	}
}

// WithLogger sets the logger used for warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
