// SPDX-License-Identifier: MIT
// Package: kec/nullmodel
//
// ensemble.go - parallel null ensembles.

package nullmodel

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/kec/core"
	"github.com/katalvlaran/kec/kecerr"
)

// BuildEnsemble evaluates fn on n shuffles of g. See BuildEnsembles.
func BuildEnsemble(ctx context.Context, g *core.Graph, fn MetricFunc, n int, seed int64, opts ...Option) (*Ensemble, error) {
	out, err := BuildEnsembles(ctx, g, []MetricFunc{fn}, n, seed, opts...)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// BuildEnsembles evaluates every fn on the same n shuffles of g and returns
// one Ensemble per fn. Shuffle i uses DeriveSeed(seed, i). The first failure
// cancels the remaining work and is returned as *EnsembleError.
//
// Errors: ErrGraphNil, ErrNilMetric, ErrEnsembleTooSmall, option errors,
// *kecerr.DegenerateGraphError (checked before any shuffle runs),
// *EnsembleError, *kecerr.CancelledError.
func BuildEnsembles(ctx context.Context, g *core.Graph, fns []MetricFunc, n int, seed int64, opts ...Option) ([]*Ensemble, error) {
	const op = "nullmodel.BuildEnsembles"
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(op); err != nil {
		return nil, err
	}
	if len(fns) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNilMetric)
	}
	for _, fn := range fns {
		if fn == nil {
			return nil, fmt.Errorf("%s: %w", op, ErrNilMetric)
		}
	}
	if n < o.MinSize {
		return nil, fmt.Errorf("%s: n=%d < %d: %w", op, n, o.MinSize, ErrEnsembleTooSmall)
	}
	t, err := prepare(op, g, seed)
	if err != nil {
		return nil, err
	}
	if iso := g.IsolatedVertices(); len(iso) > 0 {
		return nil, &kecerr.DegenerateGraphError{Op: op, Reason: "isolated vertex", Vertex: iso[0], Seed: seed}
	}
	workers := o.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	values := make([][]float64, len(fns))
	for j := range values {
		values[j] = make([]float64, n)
	}
	seeds := make([]int64, n)
	var done atomic.Int64

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		if gctx.Err() != nil {
			break
		}
		grp.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			s := deriveSeed(seed, uint64(i))
			seeds[i] = s
			sh, err := t.shuffle(gctx, s, o)
			if err != nil {
				if gctx.Err() != nil && ctx.Err() == nil {
					return nil // another shuffle failed first
				}
				return &EnsembleError{Index: i, Seed: s, Metric: -1, Err: err}
			}
			for j, fn := range fns {
				v, err := fn(gctx, sh.Graph)
				if err != nil {
					if gctx.Err() != nil && ctx.Err() == nil {
						return nil
					}
					return &EnsembleError{Index: i, Seed: s, Metric: j, Err: err}
				}
				values[j][i] = v
			}
			done.Add(1)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		o.Logger.LogAttrs(ctx, slog.LevelWarn, "nullmodel: ensemble failed",
			slog.Int64("seed", seed), slog.Int("n", n), slog.Any("error", err))
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &kecerr.CancelledError{Op: op, Progress: int(done.Load()), Cause: err}
	}

	out := make([]*Ensemble, len(fns))
	for j := range fns {
		e := &Ensemble{seed: seed, samples: make([]Sample, n)}
		for i := range e.samples {
			e.samples[i] = Sample{Index: i, Seed: seeds[i], Value: values[j][i]}
		}
		out[j] = e
	}
	o.Logger.LogAttrs(ctx, slog.LevelInfo, "nullmodel: ensemble built",
		slog.Int64("seed", seed), slog.Int("n", n), slog.Int("metrics", len(fns)),
		slog.Int("workers", workers), slog.Duration("elapsed", time.Since(start)))
	return out, nil
}
