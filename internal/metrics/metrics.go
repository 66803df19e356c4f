// Package metrics exposes Prometheus instrumentation for the computation
// engine.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector bundles the engine metrics. A nil *Collector records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	Requests    *prometheus.CounterVec
	Durations   *prometheus.HistogramVec
	ReportLines *prometheus.HistogramVec
	Truncated   *prometheus.CounterVec
}

// NewCollector registers the engine metrics against reg, defaulting to the
// global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "optics_requests_total",
		Help: "Total number of processed requests, labeled by mode and outcome code.",
	}, []string{"mode", "code"}), "optics_requests_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "optics_request_duration_seconds",
		Help:    "Request computation time in seconds.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"mode"}), "optics_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	lines, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "optics_report_lines",
		Help:    "Number of text lines per report.",
		Buckets: []float64{1, 5, 10, 15, 20, 30, 50},
	}, []string{"mode"}), "optics_report_lines")
	if err != nil {
		return nil, err
	}

	truncated, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "optics_reports_truncated_total",
		Help: "Reports that hit the sample cap before the end of the ephemeris.",
	}, []string{"mode"}), "optics_reports_truncated_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:    gatherer,
		Requests:    requests,
		Durations:   durations,
		ReportLines: lines,
		Truncated:   truncated,
	}, nil
}

// Gatherer returns the gatherer the collector was registered with.
func (c *Collector) Gatherer() prometheus.Gatherer {
	if c == nil || c.gatherer == nil {
		return prometheus.DefaultGatherer
	}
	return c.gatherer
}

// ObserveRequest records one completed request.
func (c *Collector) ObserveRequest(mode, code string, elapsed time.Duration, lines int, truncated bool) {
	if c == nil {
		return
	}
	if code == "" {
		code = "ok"
	}
	if c.Requests != nil {
		c.Requests.WithLabelValues(mode, code).Inc()
	}
	if c.Durations != nil {
		c.Durations.WithLabelValues(mode).Observe(elapsed.Seconds())
	}
	if c.ReportLines != nil {
		c.ReportLines.WithLabelValues(mode).Observe(float64(lines))
	}
	if truncated && c.Truncated != nil {
		c.Truncated.WithLabelValues(mode).Inc()
	}
}

// WriteTextfile writes the gathered metrics to path in the text exposition
// format, for the node exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.Gatherer()); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
