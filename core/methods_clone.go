// SPDX-License-Identifier: MIT
// Package: kec/core
//
// methods_clone.go - derived graphs (Clone, CloneEmpty, Symmetrized).
//
// Every derived graph is a fresh value: edge IDs are reissued in sorted
// edge order, so two clones of the same graph are identical.

package core

import "sort"

// CloneEmpty returns a graph with the same vertices and orientation and no edges.
func (g *Graph) CloneEmpty() *Graph {
	c := NewGraph(WithDirected(g.directed))
	for _, id := range g.Vertices() {
		c.vertices[id] = struct{}{}
	}
	return c
}

// Clone returns a deep copy of g.
func (g *Graph) Clone() *Graph {
	c := g.CloneEmpty()
	for _, e := range g.Edges() {
		// endpoints exist and the source graph held no duplicates
		_, _ = c.AddEdge(e.From, e.To, e.Weight)
	}
	return c
}

// Symmetrized returns an undirected copy. For directed graphs the weight of
// {u,v} is (w(u→v) + w(v→u)) / 2 with a missing direction counted as 0, the
// same symmetrization the Laplacian uses. Undirected graphs are cloned.
func (g *Graph) Symmetrized() *Graph {
	if !g.directed {
		return g.Clone()
	}
	type pair struct{ a, b string }
	sum := make(map[pair]float64)
	for _, e := range g.Edges() {
		a, b := e.From, e.To
		if b < a {
			a, b = b, a
		}
		sum[pair{a, b}] += e.Weight
	}
	keys := make([]pair, 0, len(sum))
	for k := range sum {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		return keys[i].b < keys[j].b
	})

	u := NewGraph(WithDirected(false))
	for _, id := range g.Vertices() {
		u.vertices[id] = struct{}{}
	}
	for _, k := range keys {
		_, _ = u.AddEdge(k.a, k.b, sum[k]/2)
	}
	return u
}
