// SPDX-License-Identifier: MIT
// Package: kec/kec
//
// entropy.go - transition entropy and the stationary distribution.

package kec

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/kec/core"
	"github.com/katalvlaran/kec/kahan"
)

const (
	stationaryMaxIter = 200
	stationaryTol     = 1e-10
)

// TransitionEntropy computes H_u = −Σ_v P(u→v) log P(u→v) for every vertex,
// the stationary distribution π and the entropy rate Σ π_u H_u.
//
// Undirected graphs use the closed form π_u ∝ Σ_v w_uv^β. Directed graphs run
// the lazy power iteration π ← (π + πP)/2 from the uniform vector for at most
// 200 steps (L1 tolerance 1e-10).
//
// Errors: ErrGraphNil, *kecerr.EmptyGraphError, ErrBadBeta.
//
// Complexity: O(n + m) undirected, O(200·(n + m)) directed.
func TransitionEntropy(g *core.Graph, beta float64) (*EntropyResult, error) {
	const op = "kec.TransitionEntropy"
	if err := checkGraph(op, g); err != nil {
		return nil, err
	}
	if err := checkBeta(op, beta); err != nil {
		return nil, err
	}
	k, err := newKernel(g, beta)
	if err != nil {
		return nil, err
	}
	n := k.n()
	res := &EntropyResult{Beta: beta, IDs: k.idx.IDs(), Entropy: make([]float64, n)}

	var mean kahan.Accumulator
	for u, row := range k.prob {
		var h kahan.Accumulator
		for _, p := range row {
			if p > 0 {
				h.Add(-p * math.Log(p))
			}
		}
		res.Entropy[u] = h.Sum()
		mean.Add(res.Entropy[u])
	}
	res.Mean = mean.Sum() / float64(n)

	if g.Directed() {
		res.Stationary, res.StationaryIterations, res.StationaryConverged = powerStationary(k)
	} else {
		res.Stationary, res.StationaryConverged = strengthStationary(k), true
	}
	var rate kahan.Accumulator
	for u, pi := range res.Stationary {
		rate.AddProduct(pi, res.Entropy[u])
	}
	res.Rate = rate.Sum()
	return res, nil
}

// strengthStationary is π_u ∝ Σ_v w_uv^β, exact for reversible walks.
// Strengths are shifted by their maximum in log space.
func strengthStationary(k *kernel) []float64 {
	top := floats.Max(k.logStrength)
	pi := make([]float64, k.n())
	for u, ls := range k.logStrength {
		pi[u] = math.Exp(ls - top)
	}
	normalize(pi)
	return pi
}

// powerStationary iterates the lazy chain; laziness removes periodicity.
func powerStationary(k *kernel) ([]float64, int, bool) {
	n := k.n()
	pi := make([]float64, n)
	for i := range pi {
		pi[i] = 1 / float64(n)
	}
	next := make([]float64, n)
	for it := 1; it <= stationaryMaxIter; it++ {
		k.stepTo(next, pi)
		var diff kahan.Accumulator
		for i := range next {
			next[i] = 0.5 * (pi[i] + next[i])
			diff.Add(math.Abs(next[i] - pi[i]))
		}
		normalize(next)
		pi, next = next, pi
		if diff.Sum() <= stationaryTol {
			return pi, it, true
		}
	}
	return pi, stationaryMaxIter, false
}

func normalize(v []float64) {
	if s := kahan.Sum(v); s > 0 {
		for i := range v {
			v[i] /= s
		}
	}
}
