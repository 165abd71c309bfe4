// Package metrics exposes engine activity as Prometheus metrics. A run's
// metrics can be written to a node-exporter textfile with WriteTextfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yaklabco/gotslint/pkg/lint"
)

// Metrics implements lint.Observer.
type Metrics struct {
	registry *prometheus.Registry

	RuleRunsTotal        *prometheus.CounterVec
	RuleDuration         *prometheus.HistogramVec
	DiagnosticsTotal     *prometheus.CounterVec
	SuppressedTotal      prometheus.Counter
	FixesAcceptedTotal   prometheus.Counter
	FixesConflictedTotal prometheus.Counter
	FixesInvalidTotal    prometheus.Counter
	FixPasses            *prometheus.HistogramVec
	FilesTotal           *prometheus.CounterVec
}

var _ lint.Observer = (*Metrics)(nil)

// New creates the metrics and registers them with a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RuleRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotslint_rule_runs_total",
				Help: "Total number of rule runs",
			},
			[]string{"rule", "status"},
		),
		RuleDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gotslint_rule_duration_seconds",
				Help:    "Rule run duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"rule"},
		),
		DiagnosticsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotslint_diagnostics_total",
				Help: "Total number of diagnostics reported by rules before suppression",
			},
			[]string{"rule"},
		),
		SuppressedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gotslint_diagnostics_suppressed_total",
			Help: "Total number of diagnostics dropped by suppression directives",
		}),
		FixesAcceptedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gotslint_fixes_accepted_total",
			Help: "Total number of fixes applied",
		}),
		FixesConflictedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gotslint_fixes_conflicted_total",
			Help: "Total number of fixes deferred because they overlapped an accepted fix",
		}),
		FixesInvalidTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gotslint_fixes_invalid_total",
			Help: "Total number of fixes dropped by validation",
		}),
		FixPasses: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gotslint_fix_passes",
				Help:    "Parse and lint cycles used by the fix loop",
				Buckets: prometheus.LinearBuckets(1, 1, 10),
			},
			[]string{"state"},
		),
		FilesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotslint_files_total",
				Help: "Total number of files processed",
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(
		m.RuleRunsTotal,
		m.RuleDuration,
		m.DiagnosticsTotal,
		m.SuppressedTotal,
		m.FixesAcceptedTotal,
		m.FixesConflictedTotal,
		m.FixesInvalidTotal,
		m.FixPasses,
		m.FilesTotal,
	)
	return m
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RuleDone records one rule run.
func (m *Metrics) RuleDone(rule string, elapsed time.Duration, diagnostics int, failed bool) {
	m.RuleRunsTotal.WithLabelValues(rule, status(failed)).Inc()
	m.RuleDuration.WithLabelValues(rule).Observe(elapsed.Seconds())
	if diagnostics > 0 {
		m.DiagnosticsTotal.WithLabelValues(rule).Add(float64(diagnostics))
	}
}

// Suppressed records diagnostics dropped in one pass.
func (m *Metrics) Suppressed(count int) {
	if count > 0 {
		m.SuppressedTotal.Add(float64(count))
	}
}

// PassDone records the resolver outcome of one fix pass.
func (m *Metrics) PassDone(accepted, rejected, invalid int) {
	m.FixesAcceptedTotal.Add(float64(accepted))
	m.FixesConflictedTotal.Add(float64(rejected))
	m.FixesInvalidTotal.Add(float64(invalid))
}

// FixDone records how the fix loop stopped.
func (m *Metrics) FixDone(state lint.State, passes int) {
	m.FixPasses.WithLabelValues(state.String()).Observe(float64(passes))
}

// FileDone records one processed file. status is a short label such as
// "ok", "issues", "fixed", "skipped" or "error".
func (m *Metrics) FileDone(status string) {
	m.FilesTotal.WithLabelValues(status).Inc()
}

// WriteTextfile writes all metrics in the Prometheus text format to path.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}

func status(failed bool) string {
	if failed {
		return "failed"
	}
	return "ok"
}
