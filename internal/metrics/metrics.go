// Package metrics exposes benchmark results as Prometheus metrics written
// to a node_exporter textfile.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"jsonbench/internal/runner"
	"jsonbench/internal/summary"
)

// Recorder implements runner.Observer so it can be fed while a run is in
// progress.
type Recorder struct {
	Registry *prometheus.Registry

	Throughput    *prometheus.GaugeVec
	ParseSeconds  *prometheus.HistogramVec
	SerializeMs   *prometheus.GaugeVec
	Failures      *prometheus.CounterVec
	FilesTotal    prometheus.Counter
	FilesSkipped  prometheus.Counter
	AverageMBs    *prometheus.GaugeVec
	SpeedupVsBase *prometheus.GaugeVec
}

func NewRecorder() *Recorder {
	m := &Recorder{Registry: prometheus.NewRegistry()}

	m.Throughput = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "jsonbench_throughput_mb_per_second",
			Help: "Parse throughput per library and corpus file",
		},
		[]string{"library", "file"},
	)

	m.ParseSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jsonbench_parse_seconds",
			Help:    "Mean parse time per corpus file",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		},
		[]string{"library"},
	)

	m.SerializeMs = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "jsonbench_serialize_milliseconds",
			Help: "Mean serialize time per library and corpus file",
		},
		[]string{"library", "file"},
	)

	m.Failures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jsonbench_failures_total",
			Help: "Aborted measurements per library and operation",
		},
		[]string{"library", "op"},
	)

	m.FilesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jsonbench_files_total",
			Help: "Corpus files benchmarked",
		},
	)

	m.FilesSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jsonbench_files_skipped_total",
			Help: "Corpus files skipped for exceeding the size limit",
		},
	)

	m.AverageMBs = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "jsonbench_average_throughput_mb_per_second",
			Help: "Mean parse throughput per library across the corpus",
		},
		[]string{"library"},
	)

	m.SpeedupVsBase = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "jsonbench_speedup_ratio",
			Help: "Average throughput relative to the baseline library",
		},
		[]string{"library", "baseline"},
	)

	m.Registry.MustRegister(
		m.Throughput,
		m.ParseSeconds,
		m.SerializeMs,
		m.Failures,
		m.FilesTotal,
		m.FilesSkipped,
		m.AverageMBs,
		m.SpeedupVsBase,
	)
	return m
}

func (m *Recorder) OnFile(string, int64) {
	m.FilesTotal.Inc()
}

func (m *Recorder) OnSkip(string, int64) {
	m.FilesSkipped.Inc()
}

func (m *Recorder) OnResult(r runner.Result) {
	if !r.Measured() {
		return
	}
	m.Throughput.WithLabelValues(r.Library, r.File).Set(r.ThroughputMBs)
	m.SerializeMs.WithLabelValues(r.Library, r.File).Set(r.SerializeTimeMs)
	m.ParseSeconds.WithLabelValues(r.Library).Observe(r.ParseTimeMs / 1000)
}

func (m *Recorder) OnDiagnostic(d runner.Diagnostic) {
	m.Failures.WithLabelValues(d.Library, d.Op).Inc()
}

// ObserveSummary records per-library averages and speedups.
func (m *Recorder) ObserveSummary(s summary.Summary) {
	for _, e := range s.Entries {
		m.AverageMBs.WithLabelValues(e.Library).Set(e.AverageThroughputMBs)
		if e.SpeedupVsBaseline != nil {
			m.SpeedupVsBase.WithLabelValues(e.Library, s.Baseline).Set(*e.SpeedupVsBaseline)
		}
	}
}

// WriteTextfile writes every metric to filename in the Prometheus text
// format.
func (m *Recorder) WriteTextfile(filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	return prometheus.WriteToTextfile(filename, m.Registry)
}
