// SPDX-License-Identifier: MIT
// Package: kec/core
//
// methods.go - vertex and edge mutation plus read-only queries.

package core

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync/atomic"
)

// AddVertex registers id. Adding an existing vertex is a no-op.
//
// Errors: ErrEmptyVertexID.
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}
	g.muVert.Lock()
	g.vertices[id] = struct{}{}
	g.muVert.Unlock()
	return nil
}

// HasVertex reports whether id is present.
func (g *Graph) HasVertex(id string) bool {
	g.muVert.RLock()
	_, ok := g.vertices[id]
	g.muVert.RUnlock()
	return ok
}

// AddEdge inserts from→to (or {from,to} when undirected) with weight and
// returns the new edge ID. Missing endpoints are created.
//
// A zero weight registers both endpoints and returns ("", nil): absence and
// weight 0 are the same graph.
//
// Errors: ErrEmptyVertexID, ErrLoopNotAllowed, ErrBadWeight,
// ErrMultiEdgeNotAllowed.
func (g *Graph) AddEdge(from, to string, weight float64) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if from == to {
		return "", fmt.Errorf("AddEdge(%s→%s): %w", from, to, ErrLoopNotAllowed)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return "", fmt.Errorf("AddEdge(%s→%s, w=%g): %w", from, to, weight, ErrBadWeight)
	}

	g.muVert.Lock()
	g.vertices[from] = struct{}{}
	g.vertices[to] = struct{}{}
	g.muVert.Unlock()

	if weight == 0 {
		return "", nil
	}

	if !g.directed && to < from {
		from, to = to, from
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if _, dup := g.out[from][to]; dup {
		return "", fmt.Errorf("AddEdge(%s→%s): %w", from, to, ErrMultiEdgeNotAllowed)
	}
	eid := "e" + strconv.FormatUint(atomic.AddUint64(&g.nextEdgeID, 1), 10)
	g.edges[eid] = &Edge{ID: eid, From: from, To: to, Weight: weight}
	link(g.out, from, to, eid)
	if g.directed {
		link(g.in, to, from, eid)
	} else {
		link(g.out, to, from, eid)
	}
	return eid, nil
}

func link(adj map[string]map[string]string, a, b, eid string) {
	row, ok := adj[a]
	if !ok {
		row = make(map[string]string)
		adj[a] = row
	}
	row[b] = eid
}

// HasEdge reports whether from→to exists (either direction when undirected).
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.Weight(from, to)
	return ok
}

// Weight returns the weight of from→to and whether the edge exists.
func (g *Graph) Weight(from, to string) (float64, bool) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	eid, ok := g.out[from][to]
	if !ok {
		return 0, false
	}
	return g.edges[eid].Weight, true
}

// Vertices returns all vertex IDs in ascending order.
func (g *Graph) Vertices() []string {
	g.muVert.RLock()
	ids := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	g.muVert.RUnlock()
	sort.Strings(ids)
	return ids
}

// VertexCount returns |V|.
func (g *Graph) VertexCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	return len(g.vertices)
}

// EdgeCount returns |E| (undirected edges count once).
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	return len(g.edges)
}

// Edges returns snapshots of all edges sorted by (From, To).
func (g *Graph) Edges() []Edge {
	g.muEdgeAdj.RLock()
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, *e)
	}
	g.muEdgeAdj.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// Neighbors returns the successors of id (all neighbors when undirected),
// sorted by ID.
//
// Errors: ErrVertexNotFound.
func (g *Graph) Neighbors(id string) ([]Neighbor, error) {
	if !g.HasVertex(id) {
		return nil, fmt.Errorf("Neighbors(%s): %w", id, ErrVertexNotFound)
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	return g.collect(g.out[id]), nil
}

// Predecessors returns the vertices with an edge into id, sorted by ID.
// For undirected graphs it equals Neighbors.
//
// Errors: ErrVertexNotFound.
func (g *Graph) Predecessors(id string) ([]Neighbor, error) {
	if !g.directed {
		return g.Neighbors(id)
	}
	if !g.HasVertex(id) {
		return nil, fmt.Errorf("Predecessors(%s): %w", id, ErrVertexNotFound)
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	return g.collect(g.in[id]), nil
}

// collect expects muEdgeAdj held.
func (g *Graph) collect(row map[string]string) []Neighbor {
	nbrs := make([]Neighbor, 0, len(row))
	for other, eid := range row {
		nbrs = append(nbrs, Neighbor{ID: other, Weight: g.edges[eid].Weight})
	}
	sort.Slice(nbrs, func(i, j int) bool { return nbrs[i].ID < nbrs[j].ID })
	return nbrs
}

// NeighborIDs is Neighbors without weights.
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	nbrs, err := g.Neighbors(id)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(nbrs))
	for i, nb := range nbrs {
		ids[i] = nb.ID
	}
	return ids, nil
}

// Degree returns in- and out-degree of id. For undirected graphs both equal
// the number of incident edges.
//
// Errors: ErrVertexNotFound.
func (g *Graph) Degree(id string) (in, out int, err error) {
	if !g.HasVertex(id) {
		return 0, 0, fmt.Errorf("Degree(%s): %w", id, ErrVertexNotFound)
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	out = len(g.out[id])
	if g.directed {
		return len(g.in[id]), out, nil
	}
	return out, out, nil
}

// DegreeSequence returns the total degree (in+out for directed graphs) of
// every vertex, sorted ascending.
func (g *Graph) DegreeSequence() []int {
	ids := g.Vertices()
	seq := make([]int, 0, len(ids))
	g.muEdgeAdj.RLock()
	for _, id := range ids {
		d := len(g.out[id])
		if g.directed {
			d += len(g.in[id])
		}
		seq = append(seq, d)
	}
	g.muEdgeAdj.RUnlock()
	sort.Ints(seq)
	return seq
}

// IsolatedVertices returns the sorted IDs of vertices with no incident edge.
func (g *Graph) IsolatedVertices() []string {
	ids := g.Vertices()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	var iso []string
	for _, id := range ids {
		if len(g.out[id]) == 0 && len(g.in[id]) == 0 {
			iso = append(iso, id)
		}
	}
	return iso
}
