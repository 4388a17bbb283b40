// SPDX-License-Identifier: MIT
// Package: kec/matrix
//
// laplacian.go - immutable graph Laplacian views.
//
// Contract:
//   - Built from a graph snapshot; carries the snapshot fingerprint so stale
//     views can be detected (Laplacian.Matches).
//   - Directed graphs are symmetrized (W + Wᵀ)/2.
//   - Degrees floored at machine epsilon; an isolated vertex gets a zero row in
//     the Unnormalized variant and an identity row in the normalized variants.
//   - Backend selects storage only; both backends hold identical values.

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/kec/core"
)

// Normalization selects a Laplacian variant.
type Normalization int

const (
	// Unnormalized is L = D − W.
	Unnormalized Normalization = iota
	// Symmetric is L = I − D^{-1/2} W D^{-1/2}.
	Symmetric
	// RandomWalk is L = I − D^{-1} W.
	RandomWalk
)

// String returns the variant name used in diagnostics and config files.
func (n Normalization) String() string {
	switch n {
	case Unnormalized:
		return "none"
	case Symmetric:
		return "sym"
	case RandomWalk:
		return "rw"
	default:
		return fmt.Sprintf("Normalization(%d)", int(n))
	}
}

// ParseNormalization maps "none" | "sym" | "rw" to a Normalization.
func ParseNormalization(s string) (Normalization, error) {
	switch s {
	case "none", "unnormalized":
		return Unnormalized, nil
	case "sym", "symmetric":
		return Symmetric, nil
	case "rw", "random_walk":
		return RandomWalk, nil
	}
	return 0, matrixErrorf("ParseNormalization", fmt.Errorf("%q: %w", s, ErrUnknownNormalization))
}

// Backend selects dense or CSR storage.
type Backend int

const (
	// BackendDense stores a *mat.Dense.
	BackendDense Backend = iota
	// BackendSparse stores a *CSR.
	BackendSparse
)

// String returns "dense" or "sparse".
func (b Backend) String() string {
	if b == BackendSparse {
		return "sparse"
	}
	return "dense"
}

// Laplacian is an immutable Laplacian of one graph snapshot.
type Laplacian struct {
	norm    Normalization
	backend Backend
	idx     *Index
	degrees []float64 // floored symmetrized degrees
	graphID uint64
	dense   *mat.Dense
	sparse  *CSR
}

// NewLaplacian builds the requested variant of g's Laplacian.
//
// Errors: ErrGraphNil, ErrBadShape (no vertices), ErrUnknownNormalization.
//
// Complexity: O(n²) for BackendDense, O(n + m log m) for BackendSparse.
func NewLaplacian(g *core.Graph, norm Normalization, backend Backend) (*Laplacian, error) {
	const tag = "NewLaplacian"
	if g == nil {
		return nil, matrixErrorf(tag, ErrGraphNil)
	}
	if norm < Unnormalized || norm > RandomWalk {
		return nil, matrixErrorf(tag, ErrUnknownNormalization)
	}
	idx := IndexOf(g)
	n := idx.Len()
	if n == 0 {
		return nil, matrixErrorf(tag, ErrBadShape)
	}

	w := SymmetricTriplets(g, idx)
	deg := Degrees(g, idx)
	eps := math.Nextafter(1, 2) - 1
	for i := range deg {
		deg[i] = math.Max(deg[i], eps)
	}

	ts := make([]Triplet, 0, len(w)+n)
	for i := 0; i < n; i++ {
		switch norm {
		case Unnormalized:
			if deg[i] > eps {
				ts = append(ts, Triplet{Row: i, Col: i, Value: deg[i]})
			}
		default:
			ts = append(ts, Triplet{Row: i, Col: i, Value: 1})
		}
	}
	for _, t := range w {
		var v float64
		switch norm {
		case Unnormalized:
			v = -t.Value
		case Symmetric:
			v = -t.Value / math.Sqrt(deg[t.Row]*deg[t.Col])
		case RandomWalk:
			v = -t.Value / deg[t.Row]
		}
		ts = append(ts, Triplet{Row: t.Row, Col: t.Col, Value: v})
	}
	sp, err := NewCSR(n, n, ts)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}

	l := &Laplacian{norm: norm, backend: backend, idx: idx, degrees: deg, graphID: g.Fingerprint()}
	if backend == BackendSparse {
		l.sparse = sp
	} else {
		l.dense = sp.ToDense()
	}
	return l, nil
}

// Normalization returns the variant.
func (l *Laplacian) Normalization() Normalization { return l.norm }

// Backend returns the storage backend.
func (l *Laplacian) Backend() Backend { return l.backend }

// Index returns the vertex index of rows and columns.
func (l *Laplacian) Index() *Index { return l.idx }

// Degrees returns a copy of the floored degrees.
func (l *Laplacian) Degrees() []float64 { return append([]float64(nil), l.degrees...) }

// GraphID returns the fingerprint of the source graph.
func (l *Laplacian) GraphID() uint64 { return l.graphID }

// Matches reports whether l was built from a graph equal to g.
func (l *Laplacian) Matches(g *core.Graph) bool { return g != nil && g.Fingerprint() == l.graphID }

// Dim returns n.
func (l *Laplacian) Dim() int { return l.idx.Len() }

// Dense returns a fresh dense copy of the Laplacian.
func (l *Laplacian) Dense() *mat.Dense {
	if l.dense != nil {
		return mat.DenseCopyOf(l.dense)
	}
	return l.sparse.ToDense()
}

// Sparse returns the CSR form (converted on demand for the dense backend).
func (l *Laplacian) Sparse() *CSR {
	if l.sparse != nil {
		return l.sparse
	}
	return CSRFromDense(l.dense, 0)
}

// Operator returns the Laplacian as an Operator without copying.
func (l *Laplacian) Operator() Operator {
	if l.sparse != nil {
		return l.sparse
	}
	return DenseOperator{M: l.dense}
}

// At returns entry (i, j).
func (l *Laplacian) At(i, j int) float64 {
	if l.sparse != nil {
		return l.sparse.At(i, j)
	}
	return l.dense.At(i, j)
}
