// SPDX-License-Identifier: MIT
// Package: kec/pipeline
//
// types.go - stages, errors, options and results.

package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/katalvlaran/kec/kec"
	"github.com/katalvlaran/kec/nullmodel"
	"github.com/katalvlaran/kec/stats"
	"github.com/katalvlaran/kec/telemetry"
)

// Stage names.
const (
	StageConfig     = "config"
	StageMetrics    = "metrics"
	StageNulls      = "nulls"
	StageValidation = "validation"
	StageOutcomes   = "outcomes"
	StageWrite      = "write"
)

// Error locates a pipeline failure.
type Error struct {
	Stage   string
	Metric  string // empty when not metric-specific
	Beta    float64
	HasBeta bool
	GraphID uint64
	Seed    int64
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pipeline: %s", e.Stage)
	if e.Metric != "" {
		fmt.Fprintf(&b, " metric=%s", e.Metric)
	}
	if e.HasBeta {
		fmt.Fprintf(&b, " beta=%g", e.Beta)
	}
	fmt.Fprintf(&b, " graph=%016x seed=%d: %v", e.GraphID, e.Seed, e.Err)
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Options configures Run.
type Options struct {
	Logger  *slog.Logger
	Metrics *telemetry.Metrics // nil records nothing
	Null    []nullmodel.Option // applied after the configured null options
}

// Option mutates Options.
type Option func(*Options)

// WithLogger sets the logger (default discards).
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTelemetry records stage, metric, shuffle and solver activity.
func WithTelemetry(m *telemetry.Metrics) Option { return func(o *Options) { o.Metrics = m } }

// WithNullOptions appends null-model options, such as a smaller
// nullmodel.WithMinSize for exploratory runs.
func WithNullOptions(opts ...nullmodel.Option) Option {
	return func(o *Options) { o.Null = append(o.Null, opts...) }
}

func defaultOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Validation compares one observed graph-level metric with its null.
type Validation struct {
	Kind    kec.Kind
	Beta    float64
	HasBeta bool
	Null    stats.NullComparison
	Q       float64 // BH q-value across every Validation of the run
	// Nodes is the bootstrap CI of the mean over finite node values.
	Nodes stats.CI
}

// NullRun is one metric's ensemble.
type NullRun struct {
	Kind     kec.Kind
	Beta     float64
	HasBeta  bool
	Ensemble *nullmodel.Ensemble
}

// Result is the outcome of Run.
type Result struct {
	Report     *kec.Report
	Nulls      []NullRun
	Validation []Validation
	Outcomes   []*OutcomeFit

	metrics *telemetry.Metrics
}
