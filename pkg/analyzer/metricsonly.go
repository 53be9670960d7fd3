package analyzer

import (
	"context"
	"fmt"

	"github.com/ccollicutt/perfsum/pkg/parser"
	"github.com/ccollicutt/perfsum/pkg/record"
)

// MetricsOnly collects pricing metrics without a pnr-list or Hammer file.
type MetricsOnly struct {
	settings

	lniata       string
	metrics      []*record.Metric
	unrecognized int
}

// NewMetricsOnly creates a collector. An empty lniata accepts every
// terminal.
func NewMetricsOnly(lniata string, opts ...Option) *MetricsOnly {
	return &MetricsOnly{
		settings: newSettings(opts),
		lniata:   lniata,
	}
}

// ExtractMetrics reads one metrics file. It may be called once per file
// when several rotated logs make up a run.
func (s *MetricsOnly) ExtractMetrics(ctx context.Context, path string) error {
	err := parser.SplitFileDual(ctx, path, metricsFirstPattern, metricsSecondPattern, func(lines parser.Record) error {
		if len(lines) == 0 {
			return nil
		}
		m := record.ParseMetric(lines)
		if s.lniata != "" && m.LNIATA != s.lniata {
			s.unrecognized++
			return nil
		}
		s.metrics = append(s.metrics, m)
		return nil
	})
	if err != nil {
		return fmt.Errorf("extracting metrics from %s: %w", path, err)
	}
	s.logger.Debug("metrics extracted", "file", path, "total", len(s.metrics))
	return nil
}

// Metrics returns the metrics in file order.
func (s *MetricsOnly) Metrics() []*record.Metric { return s.metrics }

// Rows returns one performance.csv row per metric.
func (s *MetricsOnly) Rows() [][]string {
	rows := make([][]string, 0, len(s.metrics))
	for _, m := range s.metrics {
		rows = append(rows, MetricRow(m))
	}
	return rows
}

// MetricRow renders m in the metrics-only column layout. The hammer
// columns are zero and the Fail and NC columns are left empty.
func MetricRow(m *record.Metric) []string {
	row := make([]string, 0, 34)
	row = append(row, m.PCC, m.PNR, m.Entry)
	row = append(row, m.VolumeColumns()...)
	row = append(row, "0", "0")
	row = append(row, m.TimeColumns()...)
	row = append(row, "", "")
	row = append(row, m.ServiceColumns()...)
	return append(row, m.LNIATA, m.DateTime)
}

// Summary returns the run counters.
func (s *MetricsOnly) Summary() Summary {
	return Summary{
		Metrics:      len(s.metrics),
		Unrecognized: s.unrecognized,
	}
}
