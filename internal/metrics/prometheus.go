// Package metrics records vocoder runs in a private Prometheus registry and
// writes them as a node-exporter textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vocoder"

// Metrics holds the collectors for one process. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	reg *prometheus.Registry

	Runs            *prometheus.CounterVec
	StageDuration   *prometheus.HistogramVec
	FramesProcessed prometheus.Counter
	DroppedFrames   prometheus.Counter
	ClippedSamples  prometheus.Counter
	PeakDBFS        prometheus.Gauge
	LastRun         prometheus.Gauge
}

// New creates and registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Pipeline runs by outcome and, for failures, the failing stage.",
		}, []string{"outcome", "stage"}),
		StageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Time spent in each pipeline stage.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4 minutes
		}, []string{"stage"}),
		FramesProcessed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_processed_total",
			Help:      "Sample frames passed through the vocoder.",
		}),
		DroppedFrames: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_frames_total",
			Help:      "Frames cut from the longer input during reconciliation.",
		}),
		ClippedSamples: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clipped_samples_total",
			Help:      "Output samples hard-clipped to full scale.",
		}),
		PeakDBFS: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "output_peak_dbfs",
			Help:      "Output peak before clipping of the last run, in dBFS.",
		}),
		LastRun: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
	}
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}

	return m.reg
}

// ObserveStage records the time spent in stage.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}

	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RunSucceeded counts a successful run.
func (m *Metrics) RunSucceeded(now time.Time) {
	if m == nil {
		return
	}

	m.Runs.WithLabelValues("success", "").Inc()
	m.LastRun.Set(float64(now.Unix()))
}

// RunFailed counts a run that failed in stage.
func (m *Metrics) RunFailed(stage string, now time.Time) {
	if m == nil {
		return
	}

	m.Runs.WithLabelValues("failed", stage).Inc()
	m.LastRun.Set(float64(now.Unix()))
}

// AddFrames counts processed frames.
func (m *Metrics) AddFrames(n int) {
	if m == nil || n <= 0 {
		return
	}

	m.FramesProcessed.Add(float64(n))
}

// AddDropped counts frames removed by truncation.
func (m *Metrics) AddDropped(n int) {
	if m == nil || n <= 0 {
		return
	}

	m.DroppedFrames.Add(float64(n))
}

// AddClipped counts clipped samples.
func (m *Metrics) AddClipped(n int) {
	if m == nil || n <= 0 {
		return
	}

	m.ClippedSamples.Add(float64(n))
}

// SetPeak records the pre-clip output peak.
func (m *Metrics) SetPeak(dbfs float64) {
	if m == nil {
		return
	}

	m.PeakDBFS.Set(dbfs)
}

// WriteTextfile writes all metrics to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}

	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("metrics: writing textfile %s: %w", path, err)
	}

	return nil
}
