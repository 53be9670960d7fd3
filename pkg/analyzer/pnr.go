package analyzer

import (
	"sort"

	"github.com/ccollicutt/perfsum/pkg/record"
)

// PnrRecord holds every metric and hammer entry seen for one PNR.
//
// Metrics and hammers are paired by index only: the i-th metric (after
// SortMetrics) is assumed to belong to the i-th non-legacy hammer entry.
// Nothing else links them, so a missing or extra entry shifts every later
// pairing. See Stats.CleanUp for how that is surfaced.
type PnrRecord struct {
	PNR string

	metrics  []*record.Metric
	hammers  []*record.HammerEntry
	legacy   *record.HammerEntry
	runCount int
}

// NewPnrRecord creates an empty record for pnr.
func NewPnrRecord(pnr string) *PnrRecord {
	return &PnrRecord{
		PNR:    pnr,
		legacy: record.DefaultHammerEntry(),
	}
}

// AddRuns adds to the expected run count.
func (r *PnrRecord) AddRuns(count int) {
	r.runCount += count
}

// AddMetric appends a metric.
func (r *PnrRecord) AddMetric(m *record.Metric) {
	r.metrics = append(r.metrics, m)
}

// AddHammer appends h, or stores it in the legacy slot when it is a
// legacy entry. A later legacy entry replaces an earlier one.
func (r *PnrRecord) AddHammer(h *record.HammerEntry) {
	if h.Legacy {
		r.legacy = h
		return
	}
	r.hammers = append(r.hammers, h)
}

// RunCount returns the expected number of runs.
func (r *PnrRecord) RunCount() int { return r.runCount }

// Metrics returns the metrics in their current order.
func (r *PnrRecord) Metrics() []*record.Metric { return r.metrics }

// Hammers returns the non-legacy hammer entries in file order.
func (r *PnrRecord) Hammers() []*record.HammerEntry { return r.hammers }

// Legacy returns the legacy entry, or a zero-duration placeholder.
func (r *PnrRecord) Legacy() *record.HammerEntry { return r.legacy }

// SortMetrics orders metrics by time stamp. Hammer order is left alone.
func (r *PnrRecord) SortMetrics() {
	sort.SliceStable(r.metrics, func(i, j int) bool {
		return r.metrics[i].TimeStamp < r.metrics[j].TimeStamp
	})
}

// Mismatch reports whether metric and hammer counts differ.
func (r *PnrRecord) Mismatch() bool {
	return len(r.metrics) != len(r.hammers)
}

// Row returns the pricing CSV row for run idx. ok is false when either the
// metric or the hammer entry for that run is missing.
func (r *PnrRecord) Row(idx int) (row []string, ok bool) {
	if idx < 0 || idx >= len(r.metrics) || idx >= len(r.hammers) {
		return nil, false
	}
	m := r.metrics[idx]
	h := r.hammers[idx]

	failInd := ""
	if m.Failed() {
		failInd = "FAIL"
	}
	tpfAtse := record.Read(h.Duration).Sub(m.ATSE.Elapsed)

	row = make([]string, 0, 32)
	row = append(row, "", r.PNR, record.FormatSeconds(r.legacy.Duration))
	row = append(row, m.VolumeColumns()...)
	row = append(row, record.FormatSeconds(h.Duration), tpfAtse.String())
	row = append(row, m.TimeColumns()...)
	row = append(row, failInd, h.NC)
	row = append(row, m.ServiceColumns()...)
	return row, true
}

// HammerRow returns the CSV row for run idx when no metrics file was used.
func (r *PnrRecord) HammerRow(idx int) (row []string, ok bool) {
	if idx < 0 || idx >= len(r.hammers) {
		return nil, false
	}
	h := r.hammers[idx]
	return []string{"", r.PNR, record.FormatSeconds(r.legacy.Duration), record.FormatSeconds(h.Duration), h.NC}, true
}

// Lines returns the one-line text form of every metric then every hammer.
func (r *PnrRecord) Lines() []string {
	lines := make([]string, 0, len(r.metrics)+len(r.hammers))
	for _, m := range r.metrics {
		lines = append(lines, m.String())
	}
	for _, h := range r.hammers {
		lines = append(lines, h.String())
	}
	return lines
}
