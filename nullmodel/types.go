// SPDX-License-Identifier: MIT
// Package: kec/nullmodel
//
// types.go - options, ensemble containers and error types.

package nullmodel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/kec/core"
)

const (
	// DefaultSwapsPerEdge sets the swap target to 10·m.
	DefaultSwapsPerEdge = 10

	// DefaultAttemptsPerSwap bounds the attempts at 100 per target swap.
	DefaultAttemptsPerSwap = 100

	// MinEnsembleSize is the smallest ensemble BuildEnsemble accepts by default.
	MinEnsembleSize = 1000

	cancelCheckEvery = 1024
)

var (
	// ErrGraphNil indicates a nil graph.
	ErrGraphNil = errors.New("nullmodel: graph is nil")

	// ErrEnsembleTooSmall indicates n below the configured minimum.
	ErrEnsembleTooSmall = errors.New("nullmodel: ensemble too small")

	// ErrNilMetric indicates a nil MetricFunc.
	ErrNilMetric = errors.New("nullmodel: metric function is nil")

	// ErrBadOption indicates an invalid option value.
	ErrBadOption = errors.New("nullmodel: invalid option")
)

// MetricFunc evaluates one scalar metric on a shuffled graph.
type MetricFunc func(ctx context.Context, g *core.Graph) (float64, error)

// ShuffleStats describes one completed or failed shuffle.
type ShuffleStats struct {
	Seed     int64
	Swaps    int
	Target   int
	Attempts int
	Elapsed  time.Duration
	Err      error
}

// Options configures Shuffle and BuildEnsemble.
type Options struct {
	SwapsPerEdge    int
	AttemptsPerSwap int
	Workers         int // ≤ 0 selects GOMAXPROCS
	MinSize         int
	Logger          *slog.Logger
	Observer        func(ShuffleStats)
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns 10 swaps per edge, 100 attempts per swap and the
// default minimum ensemble size.
func DefaultOptions() Options {
	return Options{
		SwapsPerEdge:    DefaultSwapsPerEdge,
		AttemptsPerSwap: DefaultAttemptsPerSwap,
		MinSize:         MinEnsembleSize,
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithSwapsPerEdge sets the swap target multiplier.
func WithSwapsPerEdge(k int) Option { return func(o *Options) { o.SwapsPerEdge = k } }

// WithAttemptsPerSwap sets the attempt budget multiplier.
func WithAttemptsPerSwap(k int) Option { return func(o *Options) { o.AttemptsPerSwap = k } }

// WithWorkers bounds concurrent shuffles.
func WithWorkers(n int) Option { return func(o *Options) { o.Workers = n } }

// WithMinSize overrides MinEnsembleSize.
func WithMinSize(n int) Option { return func(o *Options) { o.MinSize = n } }

// WithLogger sets the structured logger; nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver is called after every shuffle, possibly concurrently.
func WithObserver(fn func(ShuffleStats)) Option { return func(o *Options) { o.Observer = fn } }

func (o *Options) validate(op string) error {
	if o.SwapsPerEdge < 1 || o.AttemptsPerSwap < 1 || o.MinSize < 1 {
		return fmt.Errorf("%s: swaps/edge=%d attempts/swap=%d min=%d: %w",
			op, o.SwapsPerEdge, o.AttemptsPerSwap, o.MinSize, ErrBadOption)
	}
	return nil
}

// Shuffled is one randomized graph.
type Shuffled struct {
	Graph    *core.Graph
	Seed     int64
	Swaps    int
	Attempts int
}

// Sample is one ensemble value with the seed of the shuffle that produced it.
type Sample struct {
	Index int
	Seed  int64
	Value float64
}

// Ensemble is an ordered, fixed-length collection of null samples.
type Ensemble struct {
	seed    int64
	samples []Sample
}

// Seed returns the ensemble seed.
func (e *Ensemble) Seed() int64 { return e.seed }

// Len returns the number of samples.
func (e *Ensemble) Len() int { return len(e.samples) }

// Samples returns a copy of the samples ordered by shuffle index.
func (e *Ensemble) Samples() []Sample {
	return append([]Sample(nil), e.samples...)
}

// Values returns a copy of the sample values ordered by shuffle index.
func (e *Ensemble) Values() []float64 {
	out := make([]float64, len(e.samples))
	for i, s := range e.samples {
		out[i] = s.Value
	}
	return out
}

// EnsembleError reports the first failing shuffle of an ensemble.
type EnsembleError struct {
	Index  int
	Seed   int64
	Metric int // position in the metric list, -1 when the shuffle failed
	Err    error
}

func (e *EnsembleError) Error() string {
	if e.Metric < 0 {
		return fmt.Sprintf("nullmodel: shuffle %d (seed=%d): %v", e.Index, e.Seed, e.Err)
	}
	return fmt.Sprintf("nullmodel: shuffle %d (seed=%d) metric %d: %v", e.Index, e.Seed, e.Metric, e.Err)
}

func (e *EnsembleError) Unwrap() error { return e.Err }
