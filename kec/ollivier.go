// SPDX-License-Identifier: MIT
// Package: kec/kec
//
// ollivier.go - Ollivier-Ricci curvature with exact transport, seeded edge
// sampling and cached ground-metric rows.

package kec

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/katalvlaran/kec/bfs"
	"github.com/katalvlaran/kec/core"
	"github.com/katalvlaran/kec/dijkstra"
	"github.com/katalvlaran/kec/kecerr"
	"github.com/katalvlaran/kec/matrix"
)

// DistanceCache holds single-source ground-metric rows keyed by graph
// fingerprint, metric and source. Rows are laid out along the sorted vertex
// IDs of the graph. Safe for concurrent use.
type DistanceCache struct {
	rows *lru.Cache[string, []float64]
}

// NewDistanceCache returns a cache of at most size rows (size ≤ 0 selects
// DefaultCacheSize).
func NewDistanceCache(size int) *DistanceCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, _ := lru.New[string, []float64](size) // only fails for size ≤ 0
	return &DistanceCache{rows: c}
}

// Len returns the number of cached rows.
func (c *DistanceCache) Len() int { return c.rows.Len() }

// groundMetric serves d(x, ·) over the symmetrized topology. Hop rows stop
// at bfs.CurvatureRadius: transport only compares the closed
// neighbourhoods of adjacent vertices.
type groundMetric struct {
	ctx    context.Context
	g      *core.Graph
	idx    *matrix.Index
	prefix string
	kind   Distance
	cache  *DistanceCache
}

func (m *groundMetric) row(src int) ([]float64, error) {
	id := m.idx.ID(src)
	key := m.prefix + id
	if r, ok := m.cache.rows.Get(key); ok {
		return r, nil
	}
	var r []float64
	switch m.kind {
	case DistanceHop:
		hops, err := bfs.Distances(m.ctx, m.g, m.idx, id, bfs.WithMaxDepth(bfs.CurvatureRadius))
		if err != nil {
			return nil, err
		}
		r = hops.Floats()
	case DistanceWeighted:
		d, _, err := dijkstra.Dijkstra(m.g, dijkstra.Source(id), dijkstra.WithLength(dijkstra.InverseWeight))
		if err != nil {
			return nil, err
		}
		r = make([]float64, m.idx.Len())
		for i := range r {
			v, ok := d[m.idx.ID(i)]
			if !ok {
				v = math.Inf(1)
			}
			r[i] = v
		}
	}
	m.cache.rows.Add(key, r)
	return r, nil
}

func (m *groundMetric) dist(from, to int) (float64, error) {
	r, err := m.row(from)
	if err != nil {
		return 0, err
	}
	return r[to], nil
}

// measure is a sparse probability vector over kernel positions.
type measure struct {
	pos  []int
	mass []float64
}

// lazyMeasure returns α δ_x + (1−α) P(x,·), optionally keeping only the
// maxSupport heaviest transitions (renormalized).
func lazyMeasure(k *kernel, x int, alpha float64, maxSupport int) measure {
	succ, prob := k.succ[x], k.prob[x]
	order := make([]int, len(succ))
	for i := range order {
		order[i] = i
	}
	if maxSupport > 0 && len(order) > maxSupport {
		sort.SliceStable(order, func(a, b int) bool { return prob[order[a]] > prob[order[b]] })
		order = order[:maxSupport]
		sort.Ints(order)
	}
	var kept float64
	for _, j := range order {
		kept += prob[j]
	}
	weights := make(map[int]float64, len(order)+1)
	weights[x] += alpha
	for _, j := range order {
		weights[succ[j]] += (1 - alpha) * prob[j] / kept
	}
	keys := make([]int, 0, len(weights))
	for v, w := range weights {
		if w > 0 {
			keys = append(keys, v)
		}
	}
	sort.Ints(keys)
	m := measure{pos: keys, mass: make([]float64, len(keys))}
	for i, v := range keys {
		m.mass[i] = weights[v]
	}
	return m
}

// OllivierRicci computes κ(u,v) = 1 − W₁(m_u, m_v)/d(u,v) for the sampled
// edges of g. Measures follow the β-kernel of the working graph (direction
// kept in ModeDirected); the ground metric is always taken over the
// symmetrized topology so every pair of support points is at finite distance.
//
// Sampling: when SampleEdges > 0 and smaller than m, a seeded partial
// Fisher–Yates shuffle over the canonically ordered edge list picks the
// evaluated subset. Vertices without an evaluated edge get NaN.
//
// Cancellation is checked before every edge; the partial result is returned
// with a *kecerr.CancelledError.
//
// Errors: ErrGraphNil, *kecerr.EmptyGraphError, option errors.
//
// Complexity: O(s·(p+q)·p·q) for s sampled edges with support sizes p, q,
// plus one BFS or Dijkstra per distinct support vertex (cached).
func OllivierRicci(ctx context.Context, g *core.Graph, opts ...CurvatureOption) (*CurvatureResult, error) {
	o := DefaultCurvatureOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.Method = MethodOllivier
	return ollivierRicci(ctx, g, o)
}

func ollivierRicci(ctx context.Context, g *core.Graph, o CurvatureOptions) (*CurvatureResult, error) {
	const op = "kec.OllivierRicci"
	if err := checkGraph(op, g); err != nil {
		return nil, err
	}
	if err := o.validate(op); err != nil {
		return nil, err
	}
	h := workingGraph(g, o.Mode)
	k, err := newKernel(h, o.Beta)
	if err != nil {
		return nil, err
	}
	topo := h
	if h.Directed() {
		topo = h.Symmetrized()
	}
	cache := o.Cache
	if cache == nil {
		cache = NewDistanceCache(0)
	}
	metric := &groundMetric{
		ctx:    ctx,
		g:      topo,
		idx:    k.idx,
		prefix: strconv.FormatUint(topo.Fingerprint(), 16) + "/" + string(o.Distance) + "/",
		kind:   o.Distance,
		cache:  cache,
	}

	edges := h.Edges()
	res := &CurvatureResult{Method: MethodOllivier, Mode: o.Mode, Beta: o.Beta, TotalEdges: len(edges)}
	picked := sampleEdges(edges, o.SampleEdges, o.SampleSeed)

	for done, e := range picked {
		if err := ctx.Err(); err != nil {
			aggregate(h, res)
			return res, &kecerr.CancelledError{Op: op, Progress: done, Cause: err}
		}
		kappa, err := edgeCurvature(k, metric, e, o)
		if err != nil {
			if ctx.Err() != nil {
				aggregate(h, res)
				return res, &kecerr.CancelledError{Op: op, Progress: done, Cause: ctx.Err()}
			}
			return nil, fmt.Errorf("%s: edge %s→%s: %w", op, e.From, e.To, err)
		}
		res.Edges = append(res.Edges, EdgeCurvature{From: e.From, To: e.To, Weight: e.Weight, Value: kappa})
	}
	aggregate(h, res)
	logCurvature(o, res)
	return res, nil
}

func edgeCurvature(k *kernel, metric *groundMetric, e core.Edge, o CurvatureOptions) (float64, error) {
	u, _ := k.idx.Pos(e.From)
	v, _ := k.idx.Pos(e.To)
	duv, err := metric.dist(u, v)
	if err != nil {
		return 0, err
	}
	if !(duv > 0) || math.IsInf(duv, 1) {
		return math.NaN(), nil
	}
	mu := lazyMeasure(k, u, o.Alpha, o.MaxSupport)
	mv := lazyMeasure(k, v, o.Alpha, o.MaxSupport)
	cost := make([][]float64, len(mu.pos))
	for i, x := range mu.pos {
		cost[i] = make([]float64, len(mv.pos))
		for j, y := range mv.pos {
			if cost[i][j], err = metric.dist(x, y); err != nil {
				return 0, err
			}
		}
	}
	return 1 - transport(mu.mass, mv.mass, cost)/duv, nil
}

// sampleEdges returns all edges, or a seeded subset of size n in canonical
// order.
func sampleEdges(edges []core.Edge, n int, seed int64) []core.Edge {
	if n == 0 || n >= len(edges) {
		return edges
	}
	perm := make([]int, len(edges))
	for i := range perm {
		perm[i] = i
	}
	r := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		j := i + r.Intn(len(perm)-i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	chosen := append([]int(nil), perm[:n]...)
	sort.Ints(chosen)
	out := make([]core.Edge, n)
	for i, p := range chosen {
		out[i] = edges[p]
	}
	return out
}
