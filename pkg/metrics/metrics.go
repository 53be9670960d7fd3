// Package metrics exposes the counters of a report run as Prometheus
// gauges, written to a node_exporter textfile.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ccollicutt/perfsum/pkg/analyzer"
)

const namespace = "perfsum"

// Recorder holds the run gauges in a private registry so nothing else in
// the process leaks into the textfile.
type Recorder struct {
	registry *prometheus.Registry

	pnrs          *prometheus.GaugeVec
	expectedRuns  *prometheus.GaugeVec
	hammerEntries *prometheus.GaugeVec
	metrics       *prometheus.GaugeVec
	unrecognized  *prometheus.GaugeVec
	duration      *prometheus.GaugeVec
	lastRun       *prometheus.GaugeVec
}

func gauge(name, help string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		[]string{"mode"},
	)
}

// NewRecorder creates a Recorder with every gauge registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry:      prometheus.NewRegistry(),
		pnrs:          gauge("pnrs", "PNRs listed in the pnr-list file."),
		expectedRuns:  gauge("expected_runs", "Runs declared across all PNRs."),
		hammerEntries: gauge("hammer_entries", "Hammer entries attached to a PNR."),
		metrics:       gauge("metrics", "Server metric records attached to an entry."),
		unrecognized:  gauge("unrecognized_records", "Metric or hammer records dropped as unrecognized."),
		duration:      gauge("run_duration_seconds", "Wall time of the last report run."),
		lastRun:       gauge("last_run_timestamp_seconds", "Unix time the last report run finished."),
	}
	r.registry.MustRegister(
		r.pnrs, r.expectedRuns, r.hammerEntries, r.metrics,
		r.unrecognized, r.duration, r.lastRun,
	)
	return r
}

// Observe records the outcome of one run.
func (r *Recorder) Observe(mode string, sum analyzer.Summary, took time.Duration, finished time.Time) {
	r.pnrs.WithLabelValues(mode).Set(float64(sum.PNRs))
	r.expectedRuns.WithLabelValues(mode).Set(float64(sum.ExpectedRuns))
	r.hammerEntries.WithLabelValues(mode).Set(float64(sum.HammerEntries))
	r.metrics.WithLabelValues(mode).Set(float64(sum.Metrics))
	r.unrecognized.WithLabelValues(mode).Set(float64(sum.Unrecognized))
	r.duration.WithLabelValues(mode).Set(took.Seconds())
	r.lastRun.WithLabelValues(mode).Set(float64(finished.Unix()))
}

// Gatherer returns the private registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the gauges to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
