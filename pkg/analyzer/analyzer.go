package analyzer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ccollicutt/perfsum/pkg/parser"
	"github.com/ccollicutt/perfsum/pkg/record"
)

// Stats is the aggregate state for a pricing or hammer-only run: one
// PnrRecord per PNR from the pnr-list file, plus counters.
//
// The pnr-list pass must run first. Only keys it registers are accepted
// by the metrics and hammer passes; everything else is counted as
// unrecognized and dropped.
type Stats struct {
	settings

	index   []string
	records map[string]*PnrRecord

	numHammers      int
	numMetrics      int
	numUnrecognized int
}

// NewStats creates an empty Stats.
func NewStats(opts ...Option) *Stats {
	return &Stats{
		settings: newSettings(opts),
		records:  make(map[string]*PnrRecord),
	}
}

// register returns the record for pnr, creating it in file order.
func (s *Stats) register(pnr string) *PnrRecord {
	if r, ok := s.records[pnr]; ok {
		return r
	}
	r := NewPnrRecord(pnr)
	s.records[pnr] = r
	s.index = append(s.index, pnr)
	return r
}

// Record returns the record for pnr, or nil.
func (s *Stats) Record(pnr string) *PnrRecord {
	return s.records[pnr]
}

// Records returns all records in pnr-list order.
func (s *Stats) Records() []*PnrRecord {
	out := make([]*PnrRecord, 0, len(s.index))
	for _, pnr := range s.index {
		out = append(out, s.records[pnr])
	}
	return out
}

// ExtractPnrList reads the pnr-list file. Each "---N---" record registers
// its PNR and adds one expected run per WPB line.
func (s *Stats) ExtractPnrList(ctx context.Context, path string) error {
	err := parser.SplitFile(ctx, path, recordHeaderPattern, func(lines parser.Record) error {
		if len(lines) == 0 {
			return nil
		}
		pnr := parser.FirstString(lines, pnrKeyPattern, UnknownPNR)
		entries := parser.AllStrings(lines, intlEntryPattern)
		s.register(pnr).AddRuns(len(entries))
		return nil
	})
	if err != nil {
		return fmt.Errorf("extracting pnr list: %w", err)
	}
	s.logger.Debug("pnr list extracted", "file", path, "pnrs", len(s.index))
	return nil
}

// ExtractMetrics reads a server metrics file. Metrics from a terminal
// other than lniata, or for an unregistered PNR, are counted as
// unrecognized.
func (s *Stats) ExtractMetrics(ctx context.Context, path, lniata string) error {
	err := parser.SplitFileDual(ctx, path, metricsFirstPattern, metricsSecondPattern, func(lines parser.Record) error {
		if len(lines) == 0 {
			return nil
		}
		m := record.ParseMetric(lines)
		r, ok := s.records[m.PNR]
		if !ok || m.LNIATA != lniata {
			s.numUnrecognized++
			return nil
		}
		r.AddMetric(m)
		s.numMetrics++
		return nil
	})
	if err != nil {
		return fmt.Errorf("extracting metrics from %s: %w", path, err)
	}
	return nil
}

// ExtractHammerOut reads a Hammer .out file, where each entry line carries
// its own begin and end times.
func (s *Stats) ExtractHammerOut(ctx context.Context, path string) error {
	err := parser.SplitFile(ctx, path, recordHeaderPattern, func(lines parser.Record) error {
		if len(lines) == 0 {
			return nil
		}
		pnr := parser.FirstString(lines, hammerOutPNRPattern, UnknownPNR)

		var entries []*record.HammerEntry
		for _, m := range parser.AllMatches(lines, hammerOutEntryPattern) {
			duration, err := parser.TimeSpan(m[2], m[3], false)
			if err != nil {
				return fmt.Errorf("PNR %s entry %q: %w", pnr, m[1], err)
			}
			entries = append(entries, record.NewHammerEntry(pnr, m[1], m[2], duration))
		}
		s.addHammers(entries)
		return nil
	})
	if err != nil {
		return fmt.Errorf("extracting hammer entries from %s: %w", path, err)
	}
	return nil
}

// addHammers attaches each entry to the record for its own PNR.
func (s *Stats) addHammers(entries []*record.HammerEntry) {
	for _, h := range entries {
		r, ok := s.records[h.PNR]
		if !ok {
			s.logger.Warn("no record found for PNR", "pnr", h.PNR, "entry", h.Entry)
			s.numUnrecognized++
			continue
		}
		r.AddHammer(h)
		s.numHammers++
	}
}

// CleanUp sorts each record's metrics by time stamp and checks that every
// record pairs up. In strict mode a mismatch is an error; otherwise it is
// logged and rows past the shorter list are skipped.
func (s *Stats) CleanUp() error {
	var mismatched []string
	for _, pnr := range s.index {
		r := s.records[pnr]
		r.SortMetrics()
		if r.Mismatch() {
			mismatched = append(mismatched, pnr)
			s.logger.Warn("metric and hammer counts differ",
				"pnr", pnr, "metrics", len(r.metrics), "hammers", len(r.hammers))
		}
	}
	if s.strict && len(mismatched) > 0 {
		return fmt.Errorf("%w: %s", ErrCountMismatch, strings.Join(mismatched, ", "))
	}
	return nil
}

// CalcMaxRuns returns the largest run count of any record.
func (s *Stats) CalcMaxRuns() int {
	most := 0
	for _, r := range s.records {
		if r.runCount > most {
			most = r.runCount
		}
	}
	return most
}

// Summary returns the run counters.
func (s *Stats) Summary() Summary {
	sum := Summary{
		PNRs:          len(s.index),
		HammerEntries: s.numHammers,
		Metrics:       s.numMetrics,
		Unrecognized:  s.numUnrecognized,
	}
	for _, r := range s.records {
		sum.ExpectedRuns += r.runCount
	}
	return sum
}

// MismatchedPNRs lists the PNRs whose metric and hammer counts differ,
// sorted.
func (s *Stats) MismatchedPNRs() []string {
	var out []string
	for pnr, r := range s.records {
		if r.Mismatch() {
			out = append(out, pnr)
		}
	}
	sort.Strings(out)
	return out
}
