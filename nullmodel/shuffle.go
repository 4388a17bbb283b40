// SPDX-License-Identifier: MIT
// Package: kec/nullmodel
//
// shuffle.go - degree-preserving edge swaps.

package nullmodel

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/katalvlaran/kec/core"
	"github.com/katalvlaran/kec/kecerr"
)

type arc struct {
	u, v int
	w    float64
}

// template is the read-only edge list every shuffle starts from.
type template struct {
	directed bool
	ids      []string
	arcs     []arc
}

func prepare(op string, g *core.Graph, seed int64) (*template, error) {
	if g == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrGraphNil)
	}
	edges := g.Edges()
	if len(edges) < 2 {
		return nil, &kecerr.DegenerateGraphError{Op: op, Reason: fmt.Sprintf("%d edges, need at least 2", len(edges)), Seed: seed}
	}
	t := &template{directed: g.Directed(), ids: g.Vertices(), arcs: make([]arc, len(edges))}
	pos := make(map[string]int, len(t.ids))
	for i, id := range t.ids {
		pos[id] = i
	}
	for i, e := range edges {
		t.arcs[i] = arc{u: pos[e.From], v: pos[e.To], w: e.Weight}
	}
	return t, nil
}

func (t *template) key(u, v int) [2]int {
	if !t.directed && u > v {
		u, v = v, u
	}
	return [2]int{u, v}
}

// Shuffle returns a degree-preserving randomization of g driven by seed.
// Isolated vertices are kept with degree 0.
//
// Errors: ErrGraphNil, option errors, *kecerr.DegenerateGraphError,
// *kecerr.CancelledError.
//
// Complexity: O(AttemptsPerSwap·SwapsPerEdge·m) worst case, O(n + m) memory.
func Shuffle(ctx context.Context, g *core.Graph, seed int64, opts ...Option) (*Shuffled, error) {
	const op = "nullmodel.Shuffle"
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(op); err != nil {
		return nil, err
	}
	t, err := prepare(op, g, seed)
	if err != nil {
		return nil, err
	}
	return t.shuffle(ctx, seed, o)
}

func (t *template) shuffle(ctx context.Context, seed int64, o Options) (*Shuffled, error) {
	const op = "nullmodel.Shuffle"
	start := time.Now()
	m := len(t.arcs)
	target := o.SwapsPerEdge * m
	budget := o.AttemptsPerSwap * target

	arcs := append([]arc(nil), t.arcs...)
	present := make(map[[2]int]struct{}, m)
	for _, a := range arcs {
		present[t.key(a.u, a.v)] = struct{}{}
	}
	rng := rand.New(rand.NewSource(seed))

	swaps, attempts := 0, 0
	for swaps < target && attempts < budget {
		if attempts%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				cerr := &kecerr.CancelledError{Op: op, Progress: swaps, Cause: err}
				t.observe(o, seed, swaps, target, attempts, start, cerr)
				return nil, cerr
			}
		}
		attempts++
		i, j := rng.Intn(m), rng.Intn(m)
		if i == j {
			continue
		}
		a, b := arcs[i].u, arcs[i].v
		c, d := arcs[j].u, arcs[j].v
		if !t.directed && rng.Intn(2) == 1 {
			c, d = d, c
		}
		// (a,b),(c,d) → (a,d),(c,b)
		if a == d || c == b {
			continue
		}
		k1, k2 := t.key(a, d), t.key(c, b)
		if k1 == k2 {
			continue
		}
		if _, dup := present[k1]; dup {
			continue
		}
		if _, dup := present[k2]; dup {
			continue
		}
		delete(present, t.key(a, b))
		delete(present, t.key(c, d))
		present[k1] = struct{}{}
		present[k2] = struct{}{}
		arcs[i] = arc{u: a, v: d, w: arcs[i].w}
		arcs[j] = arc{u: c, v: b, w: arcs[j].w}
		swaps++
	}
	if swaps < target {
		derr := &kecerr.DegenerateGraphError{
			Op: op, Reason: "swap budget exhausted", Seed: seed,
			Swaps: swaps, Target: target, Attempts: attempts,
		}
		t.observe(o, seed, swaps, target, attempts, start, derr)
		return nil, derr
	}

	h := core.NewGraph(core.WithDirected(t.directed))
	for _, id := range t.ids {
		if err := h.AddVertex(id); err != nil {
			return nil, fmt.Errorf("%s: AddVertex(%s): %w", op, id, err)
		}
	}
	for _, a := range arcs {
		if _, err := h.AddEdge(t.ids[a.u], t.ids[a.v], a.w); err != nil {
			return nil, fmt.Errorf("%s: AddEdge(%s, %s): %w", op, t.ids[a.u], t.ids[a.v], err)
		}
	}
	t.observe(o, seed, swaps, target, attempts, start, nil)
	return &Shuffled{Graph: h, Seed: seed, Swaps: swaps, Attempts: attempts}, nil
}

func (t *template) observe(o Options, seed int64, swaps, target, attempts int, start time.Time, err error) {
	if o.Observer == nil {
		return
	}
	o.Observer(ShuffleStats{Seed: seed, Swaps: swaps, Target: target, Attempts: attempts, Elapsed: time.Since(start), Err: err})
}
