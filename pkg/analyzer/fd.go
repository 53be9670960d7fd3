package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ccollicutt/perfsum/pkg/parser"
	"github.com/ccollicutt/perfsum/pkg/record"
)

// FdEntryRecord is one fare display entry from the Hammer file and the
// server metric assigned to it.
type FdEntryRecord struct {
	Entry    string
	Duration float64
	Metrics  *record.FdMetric
}

// NewFdEntryRecord builds a record from [entry, begin, end]. A malformed
// time still yields a record, with zero duration, alongside an error
// wrapping parser.ErrMalformedTime.
func NewFdEntryRecord(items []string) (*FdEntryRecord, error) {
	if len(items) != 3 {
		return nil, fmt.Errorf("%w: got %d items", ErrEntryArity, len(items))
	}
	r := &FdEntryRecord{
		Entry:   items[0],
		Metrics: record.NewFdMetric(),
	}
	duration, err := parser.TimeSpan(items[1], items[2], false)
	if err != nil {
		return r, err
	}
	r.Duration = duration
	return r, nil
}

// Row returns the fd_performance.csv row.
func (r *FdEntryRecord) Row() []string {
	row := make([]string, 0, 27)
	row = append(row, r.Entry, record.FormatSeconds(r.Duration))
	return append(row, r.Metrics.Columns()...)
}

// FdStats pairs fare display entries with metrics by order.
type FdStats struct {
	settings

	entries []*FdEntryRecord
	metrics []*record.FdMetric
	merged  int
}

// NewFdStats creates an empty FdStats.
func NewFdStats(opts ...Option) *FdStats {
	return &FdStats{settings: newSettings(opts)}
}

// Entries returns the entries in file order.
func (s *FdStats) Entries() []*FdEntryRecord { return s.entries }

// ExtractHammerOut reads a fare display Hammer file. The first line is a
// header and is skipped.
func (s *FdStats) ExtractHammerOut(ctx context.Context, path string) error {
	src, err := parser.OpenLineSource(path)
	if err != nil {
		return fmt.Errorf("extracting fare display entries: %w", err)
	}
	defer src.Close()

	if _, err := src.Next(ctx); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	for {
		line, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		m := fdEntryPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		r, err := NewFdEntryRecord(m[1:])
		if errors.Is(err, parser.ErrMalformedTime) {
			s.logger.Warn("bad time in fare display entry", "entry", m[1], "line", src.LineNum(), "error", err)
		} else if err != nil {
			return fmt.Errorf("%s:%d: %w", path, src.LineNum(), err)
		}
		s.entries = append(s.entries, r)
	}
	return nil
}

// ExtractMetrics reads a fare display metrics file. Records are split on
// TRANSACTION MEASUREMENTS.
func (s *FdStats) ExtractMetrics(ctx context.Context, path string) error {
	err := parser.SplitFile(ctx, path, fdMeasurementPattern, func(lines parser.Record) error {
		if len(lines) == 0 {
			return nil
		}
		s.metrics = append(s.metrics, record.ParseFdMetric(lines))
		return nil
	})
	if err != nil {
		return fmt.Errorf("extracting fare display metrics from %s: %w", path, err)
	}
	return nil
}

// MergeMetrics sorts the metrics by start time and hands them out to the
// entries in order. Entries starting with AAA never reach the server, so
// they get a placeholder and are skipped. Metrics left over once every
// entry is filled are dropped. It returns the number of entries assigned.
func (s *FdStats) MergeMetrics() int {
	sort.SliceStable(s.metrics, func(i, j int) bool {
		return s.metrics[i].StartTime < s.metrics[j].StartTime
	})

	index := 0
	for _, m := range s.metrics {
		for index < len(s.entries) && isAgentSignIn(s.entries[index].Entry) {
			s.entries[index].Metrics = record.NewFdMetric()
			index++
		}
		if index >= len(s.entries) {
			break
		}
		s.entries[index].Metrics = m
		index++
	}
	s.merged = index
	if dropped := len(s.metrics) - s.assigned(); dropped > 0 {
		s.logger.Warn("fare display metrics left unassigned", "count", dropped)
	}
	return index
}

func (s *FdStats) assigned() int {
	n := 0
	for _, e := range s.entries[:s.merged] {
		if !isAgentSignIn(e.Entry) {
			n++
		}
	}
	return n
}

func isAgentSignIn(entry string) bool {
	return strings.HasPrefix(entry, "AAA")
}

// Summary returns the run counters.
func (s *FdStats) Summary() Summary {
	return Summary{
		HammerEntries: len(s.entries),
		Metrics:       s.assigned(),
		Unrecognized:  len(s.metrics) - s.assigned(),
	}
}
