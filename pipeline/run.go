// SPDX-License-Identifier: MIT
// Package: kec/pipeline
//
// run.go - the staged analysis.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/kec/config"
	"github.com/katalvlaran/kec/core"
	"github.com/katalvlaran/kec/kec"
	"github.com/katalvlaran/kec/nullmodel"
	"github.com/katalvlaran/kec/stats"
)

// Run executes the metric, null and validation stages. A configuration with
// randomness.null_graphs.n = 0 or no null metrics stops after the metrics.
//
// Errors: *Error wrapping the stage failure.
func Run(ctx context.Context, g *core.Graph, cfg *config.Config, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	var gid uint64
	if g != nil {
		gid = g.Fingerprint()
	}
	if cfg == nil {
		return nil, &Error{Stage: StageConfig, GraphID: gid, Err: errors.New("nil config")}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &Error{Stage: StageConfig, GraphID: gid, Err: err}
	}
	r := &runner{ctx: ctx, g: g, gid: gid, cfg: cfg, o: o}
	r.log = o.Logger.With(slog.String("graph", fmt.Sprintf("%016x", gid)), slog.String("regime", cfg.Regime))

	res := &Result{metrics: o.Metrics}
	if err := r.stage(StageMetrics, func() error { return r.metrics(res) }); err != nil {
		return res, err
	}
	if cfg.Randomness.NullGraphs.N == 0 || len(cfg.NullKinds()) == 0 {
		return res, nil
	}
	if err := r.stage(StageNulls, func() error { return r.nulls(res) }); err != nil {
		return res, err
	}
	if err := r.stage(StageValidation, func() error { return r.validate(res) }); err != nil {
		return res, err
	}
	return res, nil
}

type runner struct {
	ctx    context.Context
	g      *core.Graph
	gid    uint64
	cfg    *config.Config
	o      Options
	log    *slog.Logger
	engine *kec.Engine
}

func (r *runner) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	r.o.Metrics.ObserveStage(name, elapsed, err)
	if err != nil {
		r.log.LogAttrs(r.ctx, slog.LevelError, "pipeline: stage failed",
			slog.String("stage", name), slog.Duration("elapsed", elapsed), slog.Any("error", err))
		return err
	}
	r.log.LogAttrs(r.ctx, slog.LevelInfo, "pipeline: stage done",
		slog.String("stage", name), slog.Duration("elapsed", elapsed))
	return nil
}

func (r *runner) metrics(res *Result) error {
	r.engine = kec.NewEngine(
		kec.WithWorkers(r.cfg.Workers),
		kec.WithLogger(r.log),
		kec.WithObserver(r.o.Metrics.ObserveMetric),
	)
	rep, err := r.engine.Compute(r.ctx, r.g, r.cfg.Request())
	res.Report = rep
	if err != nil {
		return &Error{Stage: StageMetrics, GraphID: r.gid, Seed: r.cfg.Request().Curvature.SampleSeed, Err: err}
	}
	return nil
}

// target is one (kind, β) evaluated over the null ensemble.
type target struct {
	kind    kec.Kind
	beta    float64
	hasBeta bool
}

func (t target) name() string {
	if !t.hasBeta {
		return string(t.kind)
	}
	return fmt.Sprintf("%s@%g", t.kind, t.beta)
}

func (r *runner) targets() []target {
	var out []target
	for _, k := range r.cfg.NullKinds() {
		if k == kec.KindCoherence {
			out = append(out, target{kind: k})
			continue
		}
		for _, b := range r.cfg.Metrics.Betas {
			out = append(out, target{kind: k, beta: b, hasBeta: true})
		}
	}
	return out
}

func (r *runner) nulls(res *Result) error {
	seed := *r.cfg.Randomness.NullGraphs.Seed
	req := r.cfg.Request()
	if c := res.Report.Coherence; c != nil {
		// the null coherence keeps the observed communities
		req.Partition = make(kec.Partition, len(c.IDs))
		for i, id := range c.IDs {
			req.Partition[id] = c.Community[i]
		}
	}
	tg := r.targets()
	fns := make([]nullmodel.MetricFunc, len(tg))
	for i, t := range tg {
		fn, err := r.engine.MetricFunc(t.kind, t.beta, req)
		if err != nil {
			return &Error{Stage: StageNulls, Metric: t.name(), Beta: t.beta, HasBeta: t.hasBeta, GraphID: r.gid, Seed: seed, Err: err}
		}
		fns[i] = fn
	}
	opts := append(r.cfg.NullOptions(),
		nullmodel.WithLogger(r.log),
		nullmodel.WithObserver(r.o.Metrics.ObserveShuffle),
	)
	opts = append(opts, r.o.Null...)
	ens, err := nullmodel.BuildEnsembles(r.ctx, r.g, fns, r.cfg.Randomness.NullGraphs.N, seed, opts...)
	if err != nil {
		perr := &Error{Stage: StageNulls, GraphID: r.gid, Seed: seed, Err: err}
		var ee *nullmodel.EnsembleError
		if errors.As(err, &ee) {
			perr.Seed = ee.Seed
			if ee.Metric >= 0 {
				t := tg[ee.Metric]
				perr.Metric, perr.Beta, perr.HasBeta = t.name(), t.beta, t.hasBeta
			}
		}
		return perr
	}
	for i, t := range tg {
		res.Nulls = append(res.Nulls, NullRun{Kind: t.kind, Beta: t.beta, HasBeta: t.hasBeta, Ensemble: ens[i]})
	}
	return nil
}

func observed(rep *kec.Report, t target) (float64, bool) {
	for _, s := range rep.Samples() {
		if s.Kind == t.kind && (!t.hasBeta || s.Beta == t.beta) {
			return s.Value, true
		}
	}
	return 0, false
}

func nodeValues(rep *kec.Report, t target) []float64 {
	if t.kind == kec.KindCoherence {
		if rep.Coherence == nil {
			return nil
		}
		return rep.Coherence.Node
	}
	for _, b := range rep.Betas {
		if b.Beta != t.beta {
			continue
		}
		if t.kind == kec.KindEntropy && b.Entropy != nil {
			return b.Entropy.Entropy
		}
		if t.kind == kec.KindCurvature && b.Curvature != nil {
			return b.Curvature.Node
		}
	}
	return nil
}

func (r *runner) validate(res *Result) error {
	boot := r.cfg.Randomness.Bootstrap
	pvals := make([]float64, 0, len(res.Nulls))
	for _, n := range res.Nulls {
		t := target{kind: n.Kind, beta: n.Beta, hasBeta: n.HasBeta}
		fail := func(err error) error {
			return &Error{Stage: StageValidation, Metric: t.name(), Beta: t.beta, HasBeta: t.hasBeta, GraphID: r.gid, Seed: *boot.Seed, Err: err}
		}
		obs, ok := observed(res.Report, t)
		if !ok {
			return fail(errors.New("no observed sample"))
		}
		cmp, err := stats.CompareToNull(obs, n.Ensemble.Values(), stats.WithAlpha(boot.Alpha))
		if err != nil {
			return fail(err)
		}
		v := Validation{Kind: n.Kind, Beta: n.Beta, HasBeta: n.HasBeta, Null: cmp}
		v.Nodes, err = stats.BootstrapCI(nodeValues(res.Report, t), boot.N, boot.Alpha, *boot.Seed)
		if err != nil && !errors.Is(err, stats.ErrEmptySample) {
			return fail(err)
		}
		res.Validation = append(res.Validation, v)
		pvals = append(pvals, cmp.P)
	}
	q, err := stats.BHFDR(pvals)
	if err != nil {
		return &Error{Stage: StageValidation, GraphID: r.gid, Seed: *boot.Seed, Err: err}
	}
	for i := range res.Validation {
		res.Validation[i].Q = q[i]
		v := res.Validation[i]
		r.log.LogAttrs(r.ctx, slog.LevelInfo, "pipeline: validated",
			slog.String("metric", string(v.Kind)), slog.Float64("beta", v.Beta),
			slog.Float64("observed", v.Null.Observed), slog.Float64("z", v.Null.Z),
			slog.Float64("p", v.Null.P), slog.Float64("q", v.Q))
	}
	return nil
}
