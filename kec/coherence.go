// SPDX-License-Identifier: MIT
// Package: kec/kec
//
// coherence.go - community-aware embedding proximity and modularity.

package kec

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/kec/core"
	"github.com/katalvlaran/kec/kahan"
	"github.com/katalvlaran/kec/matrix"
	"github.com/katalvlaran/kec/spectral"
)

// Coherence scores how much closer each vertex sits to its own community
// than to the rest in the embedding:
//
//	C_i = mean_{j∈c(i), j≠i} prox(i,j) − mean_{j∉c(i)} prox(i,j)
//	prox(i,j) = 1 / (1 + ‖y_i − y_j‖₂)
//
// A side with no members yields NaN. Score is the mean of finite C_i;
// Modularity is the weighted Newman modularity of part on the symmetrized
// graph.
//
// Errors: ErrGraphNil, *kecerr.EmptyGraphError, ErrPartitionIncomplete,
// ErrEmbeddingMismatch.
//
// Complexity: O(n²·k).
func Coherence(g *core.Graph, part Partition, emb *spectral.Embedding) (*CoherenceResult, error) {
	const op = "kec.Coherence"
	if err := checkGraph(op, g); err != nil {
		return nil, err
	}
	if emb == nil {
		return nil, fmt.Errorf("%s: nil embedding: %w", op, ErrEmbeddingMismatch)
	}
	ids := g.Vertices()
	n := len(ids)
	labels := make([]int, n)
	coords := make([][]float64, n)
	for i, id := range ids {
		c, ok := part[id]
		if !ok {
			return nil, fmt.Errorf("%s: vertex %q: %w", op, id, ErrPartitionIncomplete)
		}
		labels[i] = c
		y, ok := emb.Vector(id)
		if !ok {
			return nil, fmt.Errorf("%s: vertex %q: %w", op, id, ErrEmbeddingMismatch)
		}
		coords[i] = y
	}

	res := &CoherenceResult{IDs: ids, Node: make([]float64, n), Community: labels}
	var score kahan.Accumulator
	finite := 0
	for i := 0; i < n; i++ {
		var intra, inter kahan.Accumulator
		ni, no := 0, 0
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			prox := 1 / (1 + floats.Distance(coords[i], coords[j], 2))
			if labels[j] == labels[i] {
				intra.Add(prox)
				ni++
			} else {
				inter.Add(prox)
				no++
			}
		}
		if ni == 0 || no == 0 {
			res.Node[i] = math.NaN()
			continue
		}
		res.Node[i] = intra.Sum()/float64(ni) - inter.Sum()/float64(no)
		score.Add(res.Node[i])
		finite++
	}
	res.Score = math.NaN()
	if finite > 0 {
		res.Score = score.Sum() / float64(finite)
	}
	q, err := Modularity(g, part)
	if err != nil {
		return nil, err
	}
	res.Modularity = q
	return res, nil
}

// Modularity returns Q = Σ_c [ L_c/m − (d_c/2m)² ] over the symmetrized
// weights, where L_c is the intra-community weight and d_c the community
// strength.
//
// Errors: ErrGraphNil, *kecerr.EmptyGraphError, ErrPartitionIncomplete.
func Modularity(g *core.Graph, part Partition) (float64, error) {
	const op = "kec.Modularity"
	if err := checkGraph(op, g); err != nil {
		return 0, err
	}
	for _, id := range g.Vertices() {
		if _, ok := part[id]; !ok {
			return 0, fmt.Errorf("%s: vertex %q: %w", op, id, ErrPartitionIncomplete)
		}
	}
	h := g
	if g.Directed() {
		h = g.Symmetrized()
	}
	intra := map[int]*kahan.Accumulator{}
	strength := map[int]*kahan.Accumulator{}
	acc := func(m map[int]*kahan.Accumulator, c int) *kahan.Accumulator {
		if m[c] == nil {
			m[c] = &kahan.Accumulator{}
		}
		return m[c]
	}
	var total kahan.Accumulator
	for _, e := range h.Edges() {
		cu, cv := part[e.From], part[e.To]
		total.Add(e.Weight)
		acc(strength, cu).Add(e.Weight)
		acc(strength, cv).Add(e.Weight)
		if cu == cv {
			acc(intra, cu).Add(e.Weight)
		}
	}
	m := total.Sum()
	if m == 0 {
		return math.NaN(), nil
	}
	var q kahan.Accumulator
	for c, s := range strength {
		l := 0.0
		if a := intra[c]; a != nil {
			l = a.Sum()
		}
		d := s.Sum() / (2 * m)
		q.Add(l/m - d*d)
	}
	return q.Sum(), nil
}

// FiedlerPartition splits g by the sign of its Fiedler vector (symmetric
// Laplacian). Labels are 0 and 1; a zero entry joins label 0. It is the
// default partition when the caller supplies none.
//
// Errors: spectral errors (empty graph, fewer than two vertices).
func FiedlerPartition(g *core.Graph, opts ...spectral.Option) (Partition, error) {
	if err := checkGraph("kec.FiedlerPartition", g); err != nil {
		return nil, err
	}
	defaults := []spectral.Option{spectral.WithNormalization(matrix.Symmetric)}
	f, err := spectral.Fiedler(g, append(defaults, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("kec.FiedlerPartition: %w", err)
	}
	part := make(Partition, len(f.IDs))
	for i, id := range f.IDs {
		if f.Vector[i] > 0 {
			part[id] = 1
		} else {
			part[id] = 0
		}
	}
	return part, nil
}
