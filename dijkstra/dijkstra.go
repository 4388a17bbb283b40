// SPDX-License-Identifier: MIT
// Package: kec/dijkstra
//
// dijkstra.go - the settle/relax loop over a gods binary heap.
//
// Notes on implementation choices:
//   - All lengths are computed and checked once up front; a negative or NaN
//     length fails fast with ErrNegativeWeight.
//   - Lazy decrease-key: improved distances push duplicates; stale entries
//     are skipped when popped.

package dijkstra

import (
	"fmt"
	"math"

	"github.com/emirpasic/gods/trees/binaryheap"

	"github.com/katalvlaran/kec/core"
)

// Dijkstra computes shortest distances from Options.Source to every vertex
// of g. Directed graphs are followed along edge direction.
//
// Returns:
//   - dist: vertex ID → distance (+Inf if unreachable or beyond MaxDistance).
//   - prev: predecessor map when ReturnPath is set (nil otherwise);
//     prev[v] == "" for the source and unreached vertices.
//
// Complexity: O((V + E) log V) time, O(V + E) space.
func Dijkstra(g *core.Graph, opts ...Option) (map[string]float64, map[string]string, error) {
	cfg := DefaultOptions("")
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, nil, cfg.err
	}
	if cfg.Source == "" {
		return nil, nil, ErrEmptySource
	}
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if !g.HasVertex(cfg.Source) {
		return nil, nil, fmt.Errorf("Dijkstra(%s): %w", cfg.Source, ErrVertexNotFound)
	}

	// adjacency with lengths, sorted by neighbor ID
	vertices := g.Vertices()
	adj := make(map[string][]arc, len(vertices))
	for _, u := range vertices {
		nbrs, err := g.Neighbors(u)
		if err != nil {
			return nil, nil, fmt.Errorf("dijkstra: neighbors of %q: %w", u, err)
		}
		arcs := make([]arc, 0, len(nbrs))
		for _, nb := range nbrs {
			l := cfg.Length(nb.Weight)
			if !(l >= 0) {
				return nil, nil, fmt.Errorf("%w: edge %s→%s length=%g", ErrNegativeWeight, u, nb.ID, l)
			}
			if l >= cfg.InfEdgeThreshold {
				continue
			}
			arcs = append(arcs, arc{to: nb.ID, length: l})
		}
		adj[u] = arcs
	}

	r := &runner{
		options: cfg,
		adj:     adj,
		dist:    make(map[string]float64, len(vertices)),
		visited: make(map[string]bool, len(vertices)),
		pq:      binaryheap.NewWith(byDistance),
	}
	if cfg.ReturnPath {
		r.prev = make(map[string]string, len(vertices))
	}
	r.init(vertices)
	r.process()
	return r.dist, r.prev, nil
}

type arc struct {
	to     string
	length float64
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	options Options
	adj     map[string][]arc
	dist    map[string]float64
	prev    map[string]string
	visited map[string]bool
	pq      *binaryheap.Heap
}

// init sets every distance to +Inf and queues the source at 0.
func (r *runner) init(vertices []string) {
	for _, v := range vertices {
		r.dist[v] = math.Inf(1)
		if r.prev != nil {
			r.prev[v] = ""
		}
	}
	r.dist[r.options.Source] = 0
	r.pq.Push(&nodeItem{id: r.options.Source, dist: 0})
}

// process settles vertices until the heap is empty or the closest entry is
// beyond MaxDistance.
func (r *runner) process() {
	for !r.pq.Empty() {
		v, _ := r.pq.Pop()
		item := v.(*nodeItem)
		if r.visited[item.id] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[item.id] = true
		r.relax(item.id)
	}
}

// relax improves the distances of u's successors.
func (r *runner) relax(u string) {
	du := r.dist[u]
	for _, a := range r.adj[u] {
		nd := du + a.length
		if nd > r.options.MaxDistance || nd >= r.dist[a.to] {
			continue
		}
		r.dist[a.to] = nd
		if r.prev != nil {
			r.prev[a.to] = u
		}
		r.pq.Push(&nodeItem{id: a.to, dist: nd})
	}
}

// nodeItem is a heap entry.
type nodeItem struct {
	id   string
	dist float64
}

// byDistance orders heap entries by distance, then ID.
func byDistance(a, b interface{}) int {
	x, y := a.(*nodeItem), b.(*nodeItem)
	switch {
	case x.dist < y.dist:
		return -1
	case x.dist > y.dist:
		return 1
	case x.id < y.id:
		return -1
	case x.id > y.id:
		return 1
	}
	return 0
}
