// SPDX-License-Identifier: MIT
// Package: kec/spectral
//
// types.go - options, diagnostics and result types.

package spectral

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/kec/matrix"
)

const (
	// DenseMaxN is the largest n for which BackendAuto picks the dense solver.
	DenseMaxN = 1500

	// DegeneracyTol is the relative eigenvalue gap below which two
	// eigenvalues are treated as one eigenspace.
	DegeneracyTol = 1e-8

	// ZeroTol bounds the eigenvalues counted as zero (one per component).
	ZeroTol = 1e-9

	// DefaultKrylovCap bounds the Lanczos basis when n is large.
	DefaultKrylovCap = 400
)

var (
	// ErrBadDimension indicates k < 1 or k ≥ n.
	ErrBadDimension = errors.New("spectral: embedding dimension must satisfy 1 ≤ k < n")

	// ErrEigenFailed indicates a failed dense eigendecomposition.
	ErrEigenFailed = errors.New("spectral: eigendecomposition failed")

	// ErrBadOption indicates an invalid backend or Krylov dimension.
	ErrBadOption = errors.New("spectral: invalid option")
)

// Backend selects the eigensolver.
type Backend int

const (
	BackendAuto Backend = iota
	BackendDense
	BackendSparse
)

// String returns "auto", "dense" or "sparse".
func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendDense:
		return "dense"
	case BackendSparse:
		return "sparse"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// Options configures Embed and Fiedler.
type Options struct {
	Normalization matrix.Normalization
	Backend       Backend
	KrylovDim     int // Lanczos basis size; 0 selects n, capped at DefaultKrylovCap for large n
	Logger        *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns Symmetric normalization with the auto backend.
func DefaultOptions() Options {
	return Options{Normalization: matrix.Symmetric, Backend: BackendAuto}
}

// WithNormalization selects the Laplacian variant.
func WithNormalization(n matrix.Normalization) Option {
	return func(o *Options) { o.Normalization = n }
}

// WithBackend selects the eigensolver.
func WithBackend(b Backend) Option { return func(o *Options) { o.Backend = b } }

// WithKrylovDim sets the Lanczos basis size.
func WithKrylovDim(m int) Option { return func(o *Options) { o.KrylovDim = m } }

// WithLogger emits one debug record per decomposition.
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }

// Diagnostics describes one decomposition.
type Diagnostics struct {
	Backend       Backend
	Normalization matrix.Normalization
	Eigenvalues   []float64 // λ₁..λ_k, the values behind the returned columns
	Spectrum      []float64 // smallest computed eigenvalues, ascending, λ₀ first
	Gaps          []float64 // Spectrum[i+1] − Spectrum[i]
	Degenerate    bool
	Components    int // eigenvalues ≤ ZeroTol among Spectrum (a lower bound if all are)
	KrylovDim     int // sparse backend only
	RitzResiduals []float64
	Elapsed       time.Duration
}

// Embedding holds n×k spectral coordinates.
type Embedding struct {
	idx     *matrix.Index
	coords  *mat.Dense
	graphID uint64
	Diag    Diagnostics
}

// Len returns the number of embedded vertices.
func (e *Embedding) Len() int { return e.idx.Len() }

// Dim returns k.
func (e *Embedding) Dim() int {
	_, k := e.coords.Dims()
	return k
}

// IDs returns the vertex IDs in row order.
func (e *Embedding) IDs() []string { return e.idx.IDs() }

// GraphID returns the fingerprint of the embedded graph.
func (e *Embedding) GraphID() uint64 { return e.graphID }

// Coords returns a copy of the coordinate matrix.
func (e *Embedding) Coords() *mat.Dense { return mat.DenseCopyOf(e.coords) }

// Vector returns a copy of the coordinates of id.
func (e *Embedding) Vector(id string) ([]float64, bool) {
	i, ok := e.idx.Pos(id)
	if !ok {
		return nil, false
	}
	return mat.Row(nil, i, e.coords), true
}

// Column returns a copy of dimension j.
func (e *Embedding) Column(j int) []float64 { return mat.Col(nil, j, e.coords) }

// FiedlerResult is the second-smallest eigenpair.
type FiedlerResult struct {
	Value  float64 // algebraic connectivity in the chosen normalization
	Vector []float64
	IDs    []string
	Diag   Diagnostics
}
