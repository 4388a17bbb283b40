// SPDX-License-Identifier: MIT
// Package: kec/kec
//
// engine.go - per-β orchestration of the three metrics.

package kec

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/kec/core"
	"github.com/katalvlaran/kec/spectral"
)

// Engine computes KEC metrics. The zero value is not usable; call NewEngine.
type Engine struct {
	workers  int
	logger   *slog.Logger
	spectral []spectral.Option
	observer func(kind Kind, beta float64, elapsed time.Duration, err error)
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithWorkers bounds the number of β values evaluated concurrently
// (n ≤ 0 selects GOMAXPROCS).
func WithWorkers(n int) EngineOption { return func(e *Engine) { e.workers = n } }

// WithLogger sets the structured logger (default discards).
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSpectralOptions configures the embedding used by coherence.
func WithSpectralOptions(opts ...spectral.Option) EngineOption {
	return func(e *Engine) { e.spectral = append(e.spectral, opts...) }
}

// WithObserver is called after every metric evaluation.
func WithObserver(fn func(kind Kind, beta float64, elapsed time.Duration, err error)) EngineOption {
	return func(e *Engine) { e.observer = fn }
}

// NewEngine returns an Engine with the given options.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers <= 0 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	return e
}

// Request selects what Compute evaluates.
type Request struct {
	Betas      []float64
	Curvature  CurvatureOptions // Beta is overridden per β
	Partition  Partition        // nil selects FiedlerPartition
	Dimensions int              // embedding dimensions for coherence
	Regime     string
	// SkipCoherence omits the embedding and coherence.
	SkipCoherence bool
}

// DefaultRequest evaluates β = 1 with default curvature options and a
// two-dimensional embedding.
func DefaultRequest() Request {
	return Request{Betas: []float64{1}, Curvature: DefaultCurvatureOptions(), Dimensions: 2}
}

// BetaReport holds the β-dependent metrics.
type BetaReport struct {
	Beta      float64
	Entropy   *EntropyResult
	Curvature *CurvatureResult
}

// Report is the outcome of Compute. Betas follows the request order.
type Report struct {
	GraphID   uint64
	Regime    string
	IDs       []string
	Betas     []BetaReport
	Coherence *CoherenceResult
	Embedding *spectral.Embedding
}

// NodeRow is one vertex at one β.
type NodeRow struct {
	ID        string
	Beta      float64
	Entropy   float64
	Curvature float64
	Coherence float64
	Community int
}

// Samples returns the graph-level MetricSample values: entropy and
// curvature per β, then coherence once.
func (r *Report) Samples() []MetricSample {
	out := make([]MetricSample, 0, 2*len(r.Betas)+1)
	for _, b := range r.Betas {
		if b.Entropy != nil {
			out = append(out, MetricSample{Kind: KindEntropy, Value: b.Entropy.Mean, GraphID: r.GraphID, Regime: r.Regime, Beta: b.Beta, HasBeta: true})
		}
		if b.Curvature != nil {
			out = append(out, MetricSample{Kind: KindCurvature, Value: b.Curvature.Mean, GraphID: r.GraphID, Regime: r.Regime, Beta: b.Beta, HasBeta: true})
		}
	}
	if r.Coherence != nil {
		out = append(out, MetricSample{Kind: KindCoherence, Value: r.Coherence.Score, GraphID: r.GraphID, Regime: r.Regime})
	}
	return out
}

// NodeRows returns one row per (vertex, β), vertices ascending.
func (r *Report) NodeRows() []NodeRow {
	rows := make([]NodeRow, 0, len(r.IDs)*len(r.Betas))
	for _, b := range r.Betas {
		for i, id := range r.IDs {
			row := NodeRow{ID: id, Beta: b.Beta, Entropy: math.NaN(), Curvature: math.NaN(), Coherence: math.NaN(), Community: -1}
			if b.Entropy != nil {
				row.Entropy = b.Entropy.Entropy[i]
			}
			if b.Curvature != nil {
				row.Curvature, _ = b.Curvature.Of(id)
			}
			if r.Coherence != nil {
				row.Coherence = r.Coherence.Node[i]
				row.Community = r.Coherence.Community[i]
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// Validate reports request errors without evaluating a graph.
func (req Request) Validate() error { return req.validate("kec.Request") }

func (req *Request) validate(op string) error {
	if len(req.Betas) == 0 {
		return fmt.Errorf("%s: no beta values: %w", op, ErrBadOption)
	}
	for _, b := range req.Betas {
		if err := checkBeta(op, b); err != nil {
			return err
		}
	}
	if !req.SkipCoherence && req.Dimensions < 1 {
		return fmt.Errorf("%s: dimensions=%d: %w", op, req.Dimensions, ErrBadOption)
	}
	return req.Curvature.validate(op)
}

// Compute evaluates entropy and curvature for every β in parallel and
// coherence once. On failure the partially filled Report is returned with
// the first error.
//
// Errors: ErrGraphNil, *kecerr.EmptyGraphError, request validation errors,
// *kecerr.CancelledError, metric errors.
func (e *Engine) Compute(ctx context.Context, g *core.Graph, req Request) (*Report, error) {
	const op = "kec.Compute"
	if err := checkGraph(op, g); err != nil {
		return nil, err
	}
	if err := req.validate(op); err != nil {
		return nil, err
	}
	rep := &Report{GraphID: g.Fingerprint(), Regime: req.Regime, IDs: g.Vertices(), Betas: make([]BetaReport, len(req.Betas))}
	cache := req.Curvature.Cache
	if cache == nil {
		cache = NewDistanceCache(0)
	}
	graphAttr := slog.String("graph", fmt.Sprintf("%016x", rep.GraphID))

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(e.workers)
	for i, beta := range req.Betas {
		i, beta := i, beta
		rep.Betas[i].Beta = beta
		grp.Go(func() error {
			start := time.Now()
			ent, err := TransitionEntropy(g, beta)
			e.observe(KindEntropy, beta, start, err)
			if err != nil {
				return err
			}
			rep.Betas[i].Entropy = ent

			start = time.Now()
			o := req.Curvature
			o.Beta, o.Cache = beta, cache
			var curv *CurvatureResult
			if o.Method == MethodForman {
				curv, err = formanRicci(g, o)
			} else {
				curv, err = ollivierRicci(gctx, g, o)
			}
			e.observe(KindCurvature, beta, start, err)
			rep.Betas[i].Curvature = curv
			if err != nil {
				return err
			}
			e.logger.LogAttrs(gctx, slog.LevelInfo, "kec: beta computed", graphAttr,
				slog.Float64("beta", beta), slog.Float64("entropy", ent.Mean),
				slog.Float64("curvature", curv.Mean), slog.String("method", string(o.Method)),
				slog.Duration("elapsed", time.Since(start)))
			return nil
		})
	}
	if !req.SkipCoherence {
		grp.Go(func() error {
			start := time.Now()
			coh, emb, err := e.coherence(g, req.Partition, req.Dimensions)
			e.observe(KindCoherence, 0, start, err)
			if err != nil {
				return err
			}
			rep.Coherence, rep.Embedding = coh, emb
			e.logger.LogAttrs(gctx, slog.LevelInfo, "kec: coherence computed", graphAttr,
				slog.Float64("score", coh.Score), slog.Float64("modularity", coh.Modularity),
				slog.Duration("elapsed", time.Since(start)))
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "kec: compute failed", graphAttr, slog.Any("error", err))
		return rep, err
	}
	return rep, nil
}

func (e *Engine) coherence(g *core.Graph, part Partition, dims int) (*CoherenceResult, *spectral.Embedding, error) {
	if n := g.VertexCount(); dims >= n {
		dims = n - 1
	}
	if part == nil {
		var err error
		if part, err = FiedlerPartition(g, e.spectral...); err != nil {
			return nil, nil, err
		}
	}
	emb, err := spectral.Embed(g, dims, e.spectral...)
	if err != nil {
		return nil, nil, fmt.Errorf("kec.Coherence: %w", err)
	}
	coh, err := Coherence(g, part, emb)
	if err != nil {
		return nil, nil, err
	}
	return coh, emb, nil
}

func (e *Engine) observe(kind Kind, beta float64, start time.Time, err error) {
	if e.observer != nil {
		e.observer(kind, beta, time.Since(start), err)
	}
}

// MetricFunc returns a function evaluating one graph-level metric, shaped
// for nullmodel.BuildEnsemble. Coherence ignores beta; a nil req.Partition
// recomputes the Fiedler split for every graph.
//
// Errors: ErrUnknownKind, request validation errors.
func (e *Engine) MetricFunc(kind Kind, beta float64, req Request) (func(context.Context, *core.Graph) (float64, error), error) {
	const op = "kec.MetricFunc"
	if err := checkBeta(op, beta); err != nil {
		return nil, err
	}
	switch kind {
	case KindEntropy:
		return func(_ context.Context, g *core.Graph) (float64, error) {
			r, err := TransitionEntropy(g, beta)
			if err != nil {
				return math.NaN(), err
			}
			return r.Mean, nil
		}, nil
	case KindCurvature:
		o := req.Curvature
		o.Beta, o.Cache = beta, nil
		if err := o.validate(op); err != nil {
			return nil, err
		}
		return func(ctx context.Context, g *core.Graph) (float64, error) {
			var r *CurvatureResult
			var err error
			if o.Method == MethodForman {
				r, err = formanRicci(g, o)
			} else {
				r, err = ollivierRicci(ctx, g, o)
			}
			if err != nil {
				return math.NaN(), err
			}
			return r.Mean, nil
		}, nil
	case KindCoherence:
		dims := req.Dimensions
		if dims < 1 {
			return nil, fmt.Errorf("%s: dimensions=%d: %w", op, dims, ErrBadOption)
		}
		return func(_ context.Context, g *core.Graph) (float64, error) {
			c, _, err := e.coherence(g, req.Partition, dims)
			if err != nil {
				return math.NaN(), err
			}
			return c.Score, nil
		}, nil
	}
	return nil, fmt.Errorf("%s: %q: %w", op, kind, ErrUnknownKind)
}
