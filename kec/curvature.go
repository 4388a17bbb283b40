// SPDX-License-Identifier: MIT
// Package: kec/kec
//
// curvature.go - curvature options, Forman-Ricci and node aggregation.

package kec

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/kec/core"
	"github.com/katalvlaran/kec/kahan"
	"github.com/katalvlaran/kec/matrix"
)

// Curvature defaults.
const (
	DefaultAlpha       = 0.5
	DefaultSampleEdges = 500
	DefaultSampleSeed  = 42
	DefaultCacheSize   = 4096
)

// CurvatureOptions configures FormanRicci and OllivierRicci.
type CurvatureOptions struct {
	Method   CurvatureMethod
	Mode     CurvatureMode
	Beta     float64
	Alpha    float64  // Ollivier laziness
	Distance Distance // Ollivier ground metric

	// SampleEdges bounds the Ollivier edges evaluated (0 = all).
	SampleEdges int
	SampleSeed  int64
	// MaxSupport keeps only the heaviest neighbours of each measure (0 = all).
	MaxSupport int

	Cache  *DistanceCache // shared distance rows; nil allocates one per call
	Logger *slog.Logger
}

// CurvatureOption mutates CurvatureOptions.
type CurvatureOption func(*CurvatureOptions)

// DefaultCurvatureOptions returns undirected Ollivier curvature at β = 1,
// α = 0.5, hop distance and 500 sampled edges (seed 42).
func DefaultCurvatureOptions() CurvatureOptions {
	return CurvatureOptions{
		Method:      MethodOllivier,
		Mode:        ModeUndirected,
		Beta:        1,
		Alpha:       DefaultAlpha,
		Distance:    DistanceHop,
		SampleEdges: DefaultSampleEdges,
		SampleSeed:  DefaultSampleSeed,
	}
}

// WithMethod selects the curvature method.
func WithMethod(m CurvatureMethod) CurvatureOption {
	return func(o *CurvatureOptions) { o.Method = m }
}

// WithMode selects directed or symmetrized evaluation.
func WithMode(m CurvatureMode) CurvatureOption { return func(o *CurvatureOptions) { o.Mode = m } }

// WithBeta sets the kernel exponent.
func WithBeta(beta float64) CurvatureOption { return func(o *CurvatureOptions) { o.Beta = beta } }

// WithAlpha sets the Ollivier laziness α.
func WithAlpha(alpha float64) CurvatureOption { return func(o *CurvatureOptions) { o.Alpha = alpha } }

// WithDistance selects the Ollivier ground metric.
func WithDistance(d Distance) CurvatureOption { return func(o *CurvatureOptions) { o.Distance = d } }

// WithSampling sets the number of Ollivier edges (0 = all) and the seed.
func WithSampling(edges int, seed int64) CurvatureOption {
	return func(o *CurvatureOptions) { o.SampleEdges, o.SampleSeed = edges, seed }
}

// WithMaxSupport truncates each measure to its n heaviest neighbours.
func WithMaxSupport(n int) CurvatureOption { return func(o *CurvatureOptions) { o.MaxSupport = n } }

// WithDistanceCache shares distance rows across calls on the same graph.
func WithDistanceCache(c *DistanceCache) CurvatureOption {
	return func(o *CurvatureOptions) { o.Cache = c }
}

// WithCurvatureLogger emits one debug record per call.
func WithCurvatureLogger(l *slog.Logger) CurvatureOption {
	return func(o *CurvatureOptions) { o.Logger = l }
}

// Validate reports option errors without evaluating a graph.
func (o CurvatureOptions) Validate() error { return o.validate("kec.CurvatureOptions") }

func (o *CurvatureOptions) validate(op string) error {
	if err := checkBeta(op, o.Beta); err != nil {
		return err
	}
	switch o.Method {
	case MethodOllivier, MethodForman:
	default:
		return fmt.Errorf("%s: %q: %w", op, o.Method, ErrUnknownMethod)
	}
	switch o.Mode {
	case ModeUndirected, ModeDirected:
	default:
		return fmt.Errorf("%s: %q: %w", op, o.Mode, ErrUnknownMode)
	}
	switch o.Distance {
	case DistanceHop, DistanceWeighted:
	default:
		return fmt.Errorf("%s: %q: %w", op, o.Distance, ErrUnknownDistance)
	}
	if !(o.Alpha >= 0 && o.Alpha < 1) {
		return fmt.Errorf("%s: alpha=%g: %w", op, o.Alpha, ErrBadAlpha)
	}
	if o.SampleEdges < 0 || o.MaxSupport < 0 {
		return fmt.Errorf("%s: sample=%d support=%d: %w", op, o.SampleEdges, o.MaxSupport, ErrBadOption)
	}
	return nil
}

// workingGraph applies the mode: undirected mode symmetrizes.
func workingGraph(g *core.Graph, mode CurvatureMode) *core.Graph {
	if mode == ModeUndirected && g.Directed() {
		return g.Symmetrized()
	}
	return g
}

// Curvature dispatches on o.Method.
func Curvature(ctx context.Context, g *core.Graph, opts ...CurvatureOption) (*CurvatureResult, error) {
	o := DefaultCurvatureOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Method == MethodForman {
		return formanRicci(g, o)
	}
	return ollivierRicci(ctx, g, o)
}

// FormanRicci computes, for every edge e = (u, v),
//
//	F(e) = 2 − Σ_{e' ∋ u, e' ≠ e} √(w_e/w_e') − Σ_{e'' ∋ v, e'' ≠ e} √(w_e/w_e'')
//
// with w = max(weight, WeightFloor)^β, formed as ratios in log space. In
// directed mode e' ranges over the in-edges of u and e'' over the out-edges
// of v. With unit weights this is 4 − deg(u) − deg(v).
//
// Errors: ErrGraphNil, *kecerr.EmptyGraphError, option errors.
//
// Complexity: O(Σ_e (deg u + deg v)).
func FormanRicci(g *core.Graph, opts ...CurvatureOption) (*CurvatureResult, error) {
	o := DefaultCurvatureOptions()
	o.Method = MethodForman
	for _, opt := range opts {
		opt(&o)
	}
	o.Method = MethodForman
	return formanRicci(g, o)
}

func formanRicci(g *core.Graph, o CurvatureOptions) (*CurvatureResult, error) {
	const op = "kec.FormanRicci"
	if err := checkGraph(op, g); err != nil {
		return nil, err
	}
	if err := o.validate(op); err != nil {
		return nil, err
	}
	h := workingGraph(g, o.Mode)
	edges := h.Edges()
	res := &CurvatureResult{Method: MethodForman, Mode: o.Mode, Beta: o.Beta, TotalEdges: len(edges)}

	for _, e := range edges {
		var into, outOf []core.Neighbor
		var err error
		if h.Directed() {
			if into, err = h.Predecessors(e.From); err != nil {
				return nil, err
			}
		} else if into, err = h.Neighbors(e.From); err != nil {
			return nil, err
		}
		if outOf, err = h.Neighbors(e.To); err != nil {
			return nil, err
		}

		var f kahan.Accumulator
		f.Add(2)
		for _, nb := range into {
			if !h.Directed() && nb.ID == e.To {
				continue
			}
			f.Add(-math.Sqrt(weightRatio(e.Weight, nb.Weight, o.Beta)))
		}
		for _, nb := range outOf {
			if !h.Directed() && nb.ID == e.From {
				continue
			}
			f.Add(-math.Sqrt(weightRatio(e.Weight, nb.Weight, o.Beta)))
		}
		res.Edges = append(res.Edges, EdgeCurvature{From: e.From, To: e.To, Weight: e.Weight, Value: f.Sum()})
	}
	aggregate(h, res)
	logCurvature(o, res)
	return res, nil
}

// aggregate fills Node and Mean from res.Edges.
func aggregate(h *core.Graph, res *CurvatureResult) {
	idx := matrix.IndexOf(h)
	res.IDs = idx.IDs()
	sums := make([]kahan.Accumulator, idx.Len())
	counts := make([]int, idx.Len())
	var total kahan.Accumulator
	finite := 0
	for _, e := range res.Edges {
		if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
			continue
		}
		for _, id := range [2]string{e.From, e.To} {
			i, _ := idx.Pos(id)
			sums[i].Add(e.Value)
			counts[i]++
		}
		total.Add(e.Value)
		finite++
	}
	res.Node = make([]float64, idx.Len())
	for i := range res.Node {
		if counts[i] == 0 {
			res.Node[i] = math.NaN()
			continue
		}
		res.Node[i] = sums[i].Sum() / float64(counts[i])
	}
	res.Mean = math.NaN()
	if finite > 0 {
		res.Mean = total.Sum() / float64(finite)
	}
}

func logCurvature(o CurvatureOptions, res *CurvatureResult) {
	if o.Logger == nil {
		return
	}
	o.Logger.Debug("kec: curvature",
		"method", string(res.Method), "mode", string(res.Mode), "beta", res.Beta,
		"edges", len(res.Edges), "total", res.TotalEdges, "mean", res.Mean)
}
