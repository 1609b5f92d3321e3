package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SweepMetrics groups the Prometheus collectors updated during a sweep.
// A nil *SweepMetrics is valid and records nothing.
type SweepMetrics struct {
	registry *prometheus.Registry

	recordsTotal     *prometheus.CounterVec
	analyzeDuration  prometheus.Histogram
	sweepDuration    prometheus.Gauge
	maxN             prometheus.Gauge
	cacheEntries     prometheus.Gauge
	minKAggregated   prometheus.Gauge
	lastCompletedRun prometheus.Gauge
}

// NewSweepMetrics creates the sweep collectors in a fresh registry.
func NewSweepMetrics() *SweepMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &SweepMetrics{
		registry: reg,
		recordsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bincross_records_total",
			Help: "Number of n analyzed, by outcome.",
		}, []string{"status"}),
		analyzeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bincross_analyze_duration_seconds",
			Help:    "Duration of a single threshold-crossing analysis.",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
		sweepDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bincross_sweep_duration_seconds",
			Help: "Wall-clock duration of the last sweep.",
		}),
		maxN: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bincross_sweep_max_n",
			Help: "Upper bound of the last sweep.",
		}),
		cacheEntries: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bincross_factorial_cache_entries",
			Help: "Number of cached factorials after the last sweep.",
		}),
		minKAggregated: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bincross_last_min_k_aggregated",
			Help: "Aggregated crossing point of the last analyzed n.",
		}),
		lastCompletedRun: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bincross_last_completed_timestamp_seconds",
			Help: "Unix time of the last successful sweep.",
		}),
	}
}

// ObserveAnalysis records one analysis outcome.
func (m *SweepMetrics) ObserveAnalysis(d time.Duration, minKAgg uint64, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.recordsTotal.WithLabelValues("error").Inc()
		return
	}
	m.recordsTotal.WithLabelValues("success").Inc()
	m.analyzeDuration.Observe(d.Seconds())
	m.minKAggregated.Set(float64(minKAgg))
}

// ObserveSweep records the end of a sweep.
func (m *SweepMetrics) ObserveSweep(maxN uint64, d time.Duration, cacheEntries int, err error) {
	if m == nil {
		return
	}
	m.maxN.Set(float64(maxN))
	m.sweepDuration.Set(d.Seconds())
	m.cacheEntries.Set(float64(cacheEntries))
	if err == nil {
		m.lastCompletedRun.SetToCurrentTime()
	}
}

// Gatherer exposes the underlying registry.
func (m *SweepMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the metrics in the Prometheus text format to path,
// atomically, for the node-exporter textfile collector.
func (m *SweepMetrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics: writing %s: %w", path, err)
	}
	return nil
}
