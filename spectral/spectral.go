// SPDX-License-Identifier: MIT
// Package: kec/spectral
//
// spectral.go - Embed and Fiedler entry points.

package spectral

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/kec/core"
	"github.com/katalvlaran/kec/kahan"
	"github.com/katalvlaran/kec/kecerr"
	"github.com/katalvlaran/kec/matrix"
)

// Embed returns the k-dimensional spectral embedding of g.
//
// Errors: matrix.ErrGraphNil, *kecerr.EmptyGraphError, ErrBadDimension,
// ErrBadOption, ErrEigenFailed.
//
// Complexity: dense O(n³); sparse O(m·(nnz + m·n)) for a Krylov basis of m.
func Embed(g *core.Graph, k int, opts ...Option) (*Embedding, error) {
	const tag = "spectral.Embed"
	start := time.Now()
	if g == nil {
		return nil, fmt.Errorf("%s: %w", tag, matrix.ErrGraphNil)
	}
	n, edges := g.VertexCount(), g.EdgeCount()
	if n == 0 || edges == 0 {
		return nil, &kecerr.EmptyGraphError{Op: tag, Vertices: n, Edges: edges}
	}
	if k < 1 || k >= n {
		return nil, fmt.Errorf("%s: k=%d n=%d: %w", tag, k, n, ErrBadDimension)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.KrylovDim < 0 || o.Backend < BackendAuto || o.Backend > BackendSparse {
		return nil, fmt.Errorf("%s: backend=%v krylov=%d: %w", tag, o.Backend, o.KrylovDim, ErrBadOption)
	}

	backend := o.Backend
	if backend == BackendAuto {
		backend = BackendDense
		if n > DenseMaxN {
			backend = BackendSparse
		}
	}
	solveNorm := o.Normalization
	if solveNorm == matrix.RandomWalk {
		solveNorm = matrix.Symmetric
	}
	storage := matrix.BackendDense
	if backend == BackendSparse {
		storage = matrix.BackendSparse
	}
	l, err := matrix.NewLaplacian(g, solveNorm, storage)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}

	// one eigenpair past k decides whether the last column is unique
	q := k + 2
	if q > n {
		q = n
	}
	var ep *eigenpairs
	if backend == BackendDense {
		ep, err = denseSmallest(l, q)
	} else {
		ep, err = lanczosSmallest(l.Sparse(), q, krylovDim(n, q, o.KrylovDim))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}

	if o.Normalization == matrix.RandomWalk {
		deg := l.Degrees()
		for _, v := range ep.vectors {
			for i := range v {
				v[i] /= math.Sqrt(deg[i])
			}
		}
	}
	coords := mat.NewDense(n, k, nil)
	for j := 0; j < k; j++ {
		coords.SetCol(j, orient(ep.vectors[j+1]))
	}

	diag := diagnose(ep, k)
	diag.Backend = backend
	diag.Normalization = o.Normalization
	diag.Elapsed = time.Since(start)
	if o.Logger != nil {
		o.Logger.LogAttrs(context.Background(), slog.LevelDebug, "spectral: embed",
			slog.Int("n", n), slog.Int("k", k), slog.String("backend", backend.String()),
			slog.String("normalization", o.Normalization.String()),
			slog.Bool("degenerate", diag.Degenerate), slog.Int("components", diag.Components),
			slog.Duration("elapsed", diag.Elapsed))
	}
	return &Embedding{idx: l.Index(), coords: coords, graphID: l.GraphID(), Diag: diag}, nil
}

// Fiedler returns the second-smallest eigenpair of g's Laplacian.
func Fiedler(g *core.Graph, opts ...Option) (*FiedlerResult, error) {
	emb, err := Embed(g, 1, opts...)
	if err != nil {
		return nil, err
	}
	return &FiedlerResult{
		Value:  emb.Diag.Eigenvalues[0],
		Vector: emb.Column(0),
		IDs:    emb.IDs(),
		Diag:   emb.Diag,
	}, nil
}

func krylovDim(n, q, requested int) int {
	m := requested
	if m == 0 {
		m = n
		if m > DefaultKrylovCap {
			m = DefaultKrylovCap
		}
	}
	if m < q {
		m = q
	}
	if m > n {
		m = n
	}
	return m
}

// orient scales v to unit length and makes its largest-magnitude entry
// positive; the first index wins ties.
func orient(v []float64) []float64 {
	out := append([]float64(nil), v...)
	if nrm := kahan.Norm(out); nrm > 0 {
		floats.Scale(1/nrm, out)
	}
	best := 0
	for i, x := range out {
		if math.Abs(x) > math.Abs(out[best]) {
			best = i
		}
	}
	if out[best] < 0 {
		floats.Scale(-1, out)
	}
	return out
}

// diagnose fills the spectrum-derived fields.
func diagnose(ep *eigenpairs, k int) Diagnostics {
	d := Diagnostics{
		Spectrum:      append([]float64(nil), ep.values...),
		Eigenvalues:   append([]float64(nil), ep.values[1:k+1]...),
		KrylovDim:     ep.krylov,
		RitzResiduals: append([]float64(nil), ep.residuals...),
	}
	for i, v := range ep.values {
		if i > 0 {
			d.Gaps = append(d.Gaps, v-ep.values[i-1])
		}
		if math.Abs(v) <= ZeroTol {
			d.Components++
		}
	}
	// pairs touching a used column: (λ₀,λ₁) .. (λ_k,λ_{k+1})
	for i := 0; i < len(d.Gaps) && i <= k; i++ {
		if coincide(ep.values[i], ep.values[i+1]) {
			d.Degenerate = true
		}
	}
	return d
}

// coincide reports a relative gap below DegeneracyTol, or two values in
// the numerical zero cluster.
func coincide(a, b float64) bool {
	if math.Abs(a) <= ZeroTol && math.Abs(b) <= ZeroTol {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(b-a) <= DegeneracyTol*scale
}
