// SPDX-License-Identifier: MIT

// Package telemetry exposes Prometheus collectors for solver, shuffle and
// pipeline activity. Collectors register on a caller-supplied registry; a
// nil *Metrics is a valid no-op recorder, so hooks can be wired
// unconditionally.
package telemetry

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/kec/cg"
	"github.com/katalvlaran/kec/kec"
	"github.com/katalvlaran/kec/kecerr"
	"github.com/katalvlaran/kec/lsq"
	"github.com/katalvlaran/kec/nullmodel"
)

const namespace = "kec"

// Metrics groups the KEC collectors.
type Metrics struct {
	solves          *prometheus.CounterVec
	solveResidual   *prometheus.HistogramVec
	cgIterations    *prometheus.HistogramVec
	cgUnconverged   *prometheus.CounterVec
	shuffles        *prometheus.CounterVec
	shuffleAttempts prometheus.Histogram
	metricSeconds   *prometheus.HistogramVec
	stageSeconds    *prometheus.HistogramVec
	stageFailures   *prometheus.CounterVec
}

// New registers the collectors on reg. A nil reg uses a fresh private
// registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		solves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "lsq", Name: "solves_total",
			Help: "Dense least-squares solves by method.",
		}, []string{"method"}),
		solveResidual: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "lsq", Name: "residual_norm",
			Help:    "Residual norm of dense solves.",
			Buckets: prometheus.ExponentialBuckets(1e-14, 10, 16),
		}, []string{"method"}),
		cgIterations: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "cg", Name: "iterations",
			Help:    "Conjugate gradient iterations per solve.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14),
		}, []string{"preconditioner"}),
		cgUnconverged: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cg", Name: "unconverged_total",
			Help: "Conjugate gradient solves that stopped before the tolerance.",
		}, []string{"preconditioner"}),
		shuffles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "nullmodel", Name: "shuffles_total",
			Help: "Degree-preserving shuffles by outcome.",
		}, []string{"outcome"}),
		shuffleAttempts: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "nullmodel", Name: "attempts_per_swap",
			Help:    "Swap attempts divided by successful swaps.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}),
		metricSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "metric", Name: "duration_seconds",
			Help:    "Metric evaluation time by kind and beta.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
		}, []string{"kind", "beta"}),
		stageSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "pipeline", Name: "stage_duration_seconds",
			Help:    "Pipeline stage time.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 12),
		}, []string{"stage"}),
		stageFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "pipeline", Name: "stage_failures_total",
			Help: "Failed pipeline stages.",
		}, []string{"stage"}),
	}
}

// ObserveSolve records one dense solve; shaped for lsq.WithObserver.
func (m *Metrics) ObserveSolve(d lsq.Diagnostics) {
	if m == nil {
		return
	}
	method := string(d.Method)
	m.solves.WithLabelValues(method).Inc()
	m.solveResidual.WithLabelValues(method).Observe(d.ResidualNorm)
}

// ObserveCG records one CG solve; shaped for cg.WithObserver.
func (m *Metrics) ObserveCG(r *cg.Result) {
	if m == nil || r == nil {
		return
	}
	m.cgIterations.WithLabelValues(r.Preconditioner).Observe(float64(r.Iterations))
	if !r.Converged {
		m.cgUnconverged.WithLabelValues(r.Preconditioner).Inc()
	}
}

// ObserveShuffle records one shuffle; shaped for nullmodel.WithObserver.
func (m *Metrics) ObserveShuffle(s nullmodel.ShuffleStats) {
	if m == nil {
		return
	}
	outcome := "ok"
	switch {
	case errors.Is(s.Err, kecerr.ErrCancelled):
		outcome = "cancelled"
	case errors.Is(s.Err, kecerr.ErrDegenerateGraph):
		outcome = "degenerate"
	case s.Err != nil:
		outcome = "error"
	}
	m.shuffles.WithLabelValues(outcome).Inc()
	if s.Swaps > 0 {
		m.shuffleAttempts.Observe(float64(s.Attempts) / float64(s.Swaps))
	}
}

// ObserveMetric records one metric evaluation; shaped for kec.WithObserver.
func (m *Metrics) ObserveMetric(kind kec.Kind, beta float64, elapsed time.Duration, err error) {
	if m == nil || err != nil {
		return
	}
	b := strconv.FormatFloat(beta, 'g', -1, 64)
	if kind == kec.KindCoherence {
		b = ""
	}
	m.metricSeconds.WithLabelValues(string(kind), b).Observe(elapsed.Seconds())
}

// ObserveStage records one pipeline stage.
func (m *Metrics) ObserveStage(stage string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.stageSeconds.WithLabelValues(stage).Observe(elapsed.Seconds())
	if err != nil {
		m.stageFailures.WithLabelValues(stage).Inc()
	}
}
