// SPDX-License-Identifier: MIT
// Package: kec/cg
//
// precond.go - Jacobi, IC(0) and SSOR preconditioners and the auto policy.
//
// All preconditioners are immutable after construction and safe for
// concurrent Apply calls.

package cg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/kec/kahan"
	"github.com/katalvlaran/kec/matrix"
)

// Preconditioner applies z = M⁻¹ r.
type Preconditioner interface {
	Apply(dst, r []float64)
	Name() string
}

// Identity is the trivial preconditioner.
type Identity struct{}

// Apply copies r into dst.
func (Identity) Apply(dst, r []float64) { copy(dst, r) }

// Name returns "identity".
func (Identity) Name() string { return "identity" }

// Jacobi scales by the inverse diagonal.
type Jacobi struct {
	inv []float64
}

// NewJacobi builds a Jacobi preconditioner; zero diagonal entries scale by 1.
func NewJacobi(a *matrix.CSR) *Jacobi {
	d := a.Diagonal()
	inv := make([]float64, len(d))
	for i, v := range d {
		if math.Abs(v) < eps {
			inv[i] = 1
		} else {
			inv[i] = 1 / v
		}
	}
	return &Jacobi{inv: inv}
}

// Apply computes dst = D⁻¹ r.
func (j *Jacobi) Apply(dst, r []float64) {
	for i, v := range r {
		dst[i] = j.inv[i] * v
	}
}

// Name returns "jacobi".
func (*Jacobi) Name() string { return "jacobi" }

var eps = math.Nextafter(1, 2) - 1

// ApproxCholesky is the zero fill-in incomplete Cholesky factor L with
// A ≈ L Lᵀ on the lower-triangular sparsity pattern of A.
type ApproxCholesky struct {
	n    int
	cols [][]int     // strictly lower columns per row, ascending
	vals [][]float64 // matching L entries
	diag []float64
}

// NewApproxCholesky computes IC(0) of the symmetric matrix a.
//
// Errors: ErrNonSquare, ErrFactorizationBreakdown.
//
// Complexity: O(Σ_i nnz_i²) with sorted-row merges.
func NewApproxCholesky(a *matrix.CSR) (*ApproxCholesky, error) {
	const tag = "NewApproxCholesky"
	n, c := a.Dims()
	if n != c {
		return nil, fmt.Errorf("%s: %w", tag, ErrNonSquare)
	}
	ic := &ApproxCholesky{n: n, cols: make([][]int, n), vals: make([][]float64, n), diag: make([]float64, n)}
	for i := 0; i < n; i++ {
		cols, vals := a.Row(i)
		aii := 0.0
		for k, j := range cols {
			switch {
			case j < i:
				ic.cols[i] = append(ic.cols[i], j)
				ic.vals[i] = append(ic.vals[i], vals[k])
			case j == i:
				aii = vals[k]
			}
		}
		// L_ij = (A_ij − Σ_{k<j} L_ik L_jk) / L_jj for j in pattern(i)
		for p, j := range ic.cols[i] {
			s := ic.vals[i][p] - sparseDot(ic.cols[i][:p], ic.vals[i][:p], ic.cols[j], ic.vals[j])
			ic.vals[i][p] = s / ic.diag[j]
		}
		var sq kahan.Accumulator
		sq.Add(aii)
		for _, v := range ic.vals[i] {
			sq.Add(-v * v)
		}
		piv := sq.Sum()
		if !(piv > 0) {
			return nil, fmt.Errorf("%s: row %d pivot %.3g: %w", tag, i, piv, ErrFactorizationBreakdown)
		}
		ic.diag[i] = math.Sqrt(piv)
	}
	return ic, nil
}

// sparseDot merges two ascending index lists.
func sparseDot(ci []int, vi []float64, cj []int, vj []float64) float64 {
	var acc kahan.Accumulator
	p, q := 0, 0
	for p < len(ci) && q < len(cj) {
		switch {
		case ci[p] == cj[q]:
			acc.Add(vi[p] * vj[q])
			p++
			q++
		case ci[p] < cj[q]:
			p++
		default:
			q++
		}
	}
	return acc.Sum()
}

// Apply solves L y = r then Lᵀ dst = y.
func (ic *ApproxCholesky) Apply(dst, r []float64) {
	for i := 0; i < ic.n; i++ {
		var acc kahan.Accumulator
		acc.Add(r[i])
		for p, j := range ic.cols[i] {
			acc.Add(-ic.vals[i][p] * dst[j])
		}
		dst[i] = acc.Sum() / ic.diag[i]
	}
	for i := ic.n - 1; i >= 0; i-- {
		dst[i] /= ic.diag[i]
		for p, j := range ic.cols[i] {
			dst[j] -= ic.vals[i][p] * dst[i]
		}
	}
}

// Name returns "ichol0".
func (*ApproxCholesky) Name() string { return "ichol0" }

// SSOR is the symmetric successive over-relaxation preconditioner
// M = (D + ωL) D⁻¹ (D + ωU) / (ω(2 − ω)).
type SSOR struct {
	a     *matrix.CSR
	diag  []float64
	omega float64
}

// NewSSOR builds SSOR(ω). Zero diagonal entries are treated as 1.
//
// Errors: ErrNonSquare, ErrBadOmega.
func NewSSOR(a *matrix.CSR, omega float64) (*SSOR, error) {
	n, c := a.Dims()
	if n != c {
		return nil, fmt.Errorf("NewSSOR: %w", ErrNonSquare)
	}
	if !(omega > 0 && omega < 2) {
		return nil, fmt.Errorf("NewSSOR: omega=%g: %w", omega, ErrBadOmega)
	}
	d := a.Diagonal()
	for i, v := range d {
		if math.Abs(v) < eps {
			d[i] = 1
		}
	}
	return &SSOR{a: a, diag: d, omega: omega}, nil
}

// Apply computes dst = ω(2−ω) (D+ωU)⁻¹ D (D+ωL)⁻¹ r.
func (s *SSOR) Apply(dst, r []float64) {
	n := len(s.diag)
	w := s.omega
	for i := 0; i < n; i++ {
		cols, vals := s.a.Row(i)
		var acc kahan.Accumulator
		acc.Add(r[i])
		for k, j := range cols {
			if j < i {
				acc.Add(-w * vals[k] * dst[j])
			}
		}
		dst[i] = acc.Sum() / s.diag[i]
	}
	scale := w * (2 - w)
	for i := range dst {
		dst[i] *= scale * s.diag[i]
	}
	for i := n - 1; i >= 0; i-- {
		cols, vals := s.a.Row(i)
		var acc kahan.Accumulator
		acc.Add(dst[i])
		for k, j := range cols {
			if j > i {
				acc.Add(-w * vals[k] * dst[j])
			}
		}
		dst[i] = acc.Sum() / s.diag[i]
	}
}

// Name returns "ssor".
func (s *SSOR) Name() string { return "ssor" }

// Omega returns the relaxation parameter.
func (s *SSOR) Omega() float64 { return s.omega }

// Mode selects the preconditioner policy.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeNone   Mode = "none"
	ModeJacobi Mode = "jacobi"
	ModeIChol  Mode = "ichol0"
	ModeSSOR   Mode = "ssor"
)

// denseSPDMaxN bounds the dense Cholesky SPD probe.
const denseSPDMaxN = 1000

// ChoosePreconditioner builds the preconditioner named by mode. ModeAuto
// selects Jacobi when a is strictly diagonally dominant, IC(0) when a is
// symmetric with a positive diagonal, passes an SPD test (dense Cholesky for
// n ≤ 1000) and IC(0) succeeds, and SSOR(1) otherwise.
//
// Errors: construction errors of an explicitly requested preconditioner.
func ChoosePreconditioner(a *matrix.CSR, mode Mode) (Preconditioner, error) {
	switch mode {
	case ModeNone:
		return Identity{}, nil
	case ModeJacobi:
		return NewJacobi(a), nil
	case ModeIChol:
		return NewApproxCholesky(a)
	case ModeSSOR:
		return NewSSOR(a, 1)
	case ModeAuto, "":
	default:
		return nil, fmt.Errorf("ChoosePreconditioner: mode %q: %w", mode, ErrBadOption)
	}

	if a.DiagonallyDominant() {
		return NewJacobi(a), nil
	}
	if likelySPD(a) {
		if ic, err := NewApproxCholesky(a); err == nil {
			return ic, nil
		}
	}
	return NewSSOR(a, 1)
}

func likelySPD(a *matrix.CSR) bool {
	n, _ := a.Dims()
	if !a.IsSymmetric(1e-12) {
		return false
	}
	for _, d := range a.Diagonal() {
		if d <= 0 {
			return false
		}
	}
	if n > denseSPDMaxN {
		return true
	}
	dense := a.ToDense()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, dense.At(i, j))
		}
	}
	var chol mat.Cholesky
	return chol.Factorize(sym)
}
