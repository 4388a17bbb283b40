// SPDX-License-Identifier: MIT
// Package: kec/matrix
//
// adjacency.go - weighted adjacency and degree extraction from core.Graph.

package matrix

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/kec/core"
	"github.com/katalvlaran/kec/kahan"
)

// Adjacency returns the weighted adjacency W (rows follow idx). For directed
// graphs W[i][j] is the weight of i→j; undirected graphs are symmetric.
//
// Errors: ErrGraphNil, ErrBadShape (no vertices).
func Adjacency(g *core.Graph) (*mat.Dense, *Index, error) {
	const tag = "Adjacency"
	if g == nil {
		return nil, nil, matrixErrorf(tag, ErrGraphNil)
	}
	idx := IndexOf(g)
	n := idx.Len()
	if n == 0 {
		return nil, nil, matrixErrorf(tag, ErrBadShape)
	}
	w := mat.NewDense(n, n, nil)
	for _, e := range g.Edges() {
		i, _ := idx.Pos(e.From)
		j, _ := idx.Pos(e.To)
		w.Set(i, j, e.Weight)
		if !g.Directed() {
			w.Set(j, i, e.Weight)
		}
	}
	return w, idx, nil
}

// SymmetricTriplets returns the entries of (W + Wᵀ)/2 for directed graphs and
// of W for undirected graphs, indexed by idx.
func SymmetricTriplets(g *core.Graph, idx *Index) []Triplet {
	edges := g.Edges()
	ts := make([]Triplet, 0, 2*len(edges))
	scale := 1.0
	if g.Directed() {
		scale = 0.5
	}
	for _, e := range edges {
		i, _ := idx.Pos(e.From)
		j, _ := idx.Pos(e.To)
		ts = append(ts, Triplet{Row: i, Col: j, Value: scale * e.Weight}, Triplet{Row: j, Col: i, Value: scale * e.Weight})
	}
	return ts
}

// Degrees returns the row sums of the symmetrized adjacency, in idx order.
func Degrees(g *core.Graph, idx *Index) []float64 {
	acc := make([]kahan.Accumulator, idx.Len())
	for _, t := range SymmetricTriplets(g, idx) {
		acc[t.Row].Add(t.Value)
	}
	d := make([]float64, len(acc))
	for i := range acc {
		d[i] = acc[i].Sum()
	}
	return d
}
