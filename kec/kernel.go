// SPDX-License-Identifier: MIT
// Package: kec/kec
//
// kernel.go - the β-scaled transition kernel shared by every metric.

package kec

import (
	"fmt"
	"math"

	"github.com/katalvlaran/kec/core"
	"github.com/katalvlaran/kec/kahan"
	"github.com/katalvlaran/kec/kecerr"
	"github.com/katalvlaran/kec/matrix"
)

// kernel is a row-stochastic transition matrix in adjacency form.
type kernel struct {
	idx   *matrix.Index
	succ  [][]int     // successor rows, ascending
	prob  [][]float64 // P(u→succ)
	sink  []bool      // no successors; modelled as a self-loop
	// logStrength is log Σ_v w_uv^β, −Inf for sinks.
	logStrength []float64
}

func checkGraph(op string, g *core.Graph) error {
	if g == nil {
		return fmt.Errorf("%s: %w", op, ErrGraphNil)
	}
	if n, m := g.VertexCount(), g.EdgeCount(); n == 0 || m == 0 {
		return &kecerr.EmptyGraphError{Op: op, Vertices: n, Edges: m}
	}
	return nil
}

func checkBeta(op string, beta float64) error {
	if !(beta >= 0) || math.IsInf(beta, 1) {
		return fmt.Errorf("%s: beta=%g: %w", op, beta, ErrBadBeta)
	}
	return nil
}

// weightRatio returns (w1/w2)^β over floored weights without forming w^β.
func weightRatio(w1, w2, beta float64) float64 {
	return math.Exp(beta * (math.Log(math.Max(w1, WeightFloor)) - math.Log(math.Max(w2, WeightFloor))))
}

// newKernel builds P for g at β. Rows are normalized in log space so
// large β does not overflow.
func newKernel(g *core.Graph, beta float64) (*kernel, error) {
	idx := matrix.IndexOf(g)
	n := idx.Len()
	k := &kernel{
		idx:   idx,
		succ:  make([][]int, n),
		prob:  make([][]float64, n),
		sink:  make([]bool, n),

		logStrength: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		nbrs, err := g.Neighbors(idx.ID(i))
		if err != nil {
			return nil, err
		}
		if len(nbrs) == 0 {
			k.sink[i] = true
			k.succ[i] = []int{i}
			k.prob[i] = []float64{1}
			k.logStrength[i] = math.Inf(-1)
			continue
		}
		logs := make([]float64, len(nbrs))
		top := math.Inf(-1)
		for j, nb := range nbrs {
			pos, _ := idx.Pos(nb.ID)
			k.succ[i] = append(k.succ[i], pos)
			logs[j] = beta * math.Log(math.Max(nb.Weight, WeightFloor))
			top = math.Max(top, logs[j])
		}
		row := make([]float64, len(nbrs))
		var z kahan.Accumulator
		for j := range row {
			row[j] = math.Exp(logs[j] - top)
			z.Add(row[j])
		}
		total := z.Sum()
		k.logStrength[i] = top + math.Log(total)
		for j := range row {
			row[j] /= total
		}
		k.prob[i] = row
	}
	return k, nil
}

// n returns the number of states.
func (k *kernel) n() int { return k.idx.Len() }

// stepTo computes dst = src·P.
func (k *kernel) stepTo(dst, src []float64) {
	acc := make([]kahan.Accumulator, len(dst))
	for u, row := range k.prob {
		if src[u] == 0 {
			continue
		}
		for j, v := range k.succ[u] {
			acc[v].Add(src[u] * row[j])
		}
	}
	for i := range dst {
		dst[i] = acc[i].Sum()
	}
}
