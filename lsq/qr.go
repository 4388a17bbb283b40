// SPDX-License-Identifier: MIT
// Package: kec/lsq
//
// qr.go - Householder QR factorization and QR least squares.
//
// Rank policy:
//   - HouseholderQR(requireFullRank): a pivot |R_ii| ≤ max(m,n)·ε·‖A‖_F fails.
//   - SolveQR: numerical rank is the longest leading run of pivots with
//     |R_ii| > rcond·max|R_jj|; the remaining unknowns are set to zero
//     unless WithRequireFullRank, which turns truncation into an error.

package lsq

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/kec/kahan"
)

// HouseholderQR factors the m×n matrix a (m ≥ n) as a = Q·R with thin Q (m×n,
// orthonormal columns) and upper-triangular R (n×n). a is not modified.
//
// Errors: ErrShape (m < n or empty), ErrNaNInf, *RankDeficientError when
// requireFullRank and a pivot is numerically zero.
//
// Complexity: O(mn²) time, O(mn) space.
func HouseholderQR(a mat.Matrix, requireFullRank bool) (q, r *mat.Dense, err error) {
	const tag = "HouseholderQR"
	m, n, err := validate(tag, a, nil)
	if err != nil {
		return nil, nil, err
	}
	if m < n {
		return nil, nil, fmt.Errorf("%s: %dx%d needs m ≥ n: %w", tag, m, n, ErrShape)
	}
	q, r = thinQR(a, m, n)
	if requireFullRank {
		tol := float64(max(m, n)) * eps * mat.Norm(a, 2)
		for i := 0; i < n; i++ {
			if p := math.Abs(r.At(i, i)); p <= tol {
				return nil, nil, &RankDeficientError{Column: i, Pivot: p, Tolerance: tol,
					Diag: Diagnostics{Method: MethodQR, Condition: math.Inf(1), Rank: i}}
			}
		}
	}
	return q, r, nil
}

func thinQR(a mat.Matrix, m, n int) (q, r *mat.Dense) {
	var f mat.QR
	f.Factorize(a)
	var qFull, rFull mat.Dense
	f.QTo(&qFull)
	f.RTo(&rFull)
	q = mat.DenseCopyOf(qFull.Slice(0, m, 0, n))
	r = mat.DenseCopyOf(rFull.Slice(0, n, 0, n))
	return q, r
}

// pivotRank returns the leading-run rank of R's diagonal and the max/min
// pivot ratio over the full diagonal.
func pivotRank(r *mat.Dense, k int, rcond float64) (rank int, cond float64, first int, pivot float64) {
	maxP, minP := 0.0, math.Inf(1)
	for i := 0; i < k; i++ {
		p := math.Abs(r.At(i, i))
		maxP = math.Max(maxP, p)
		minP = math.Min(minP, p)
	}
	tol := rcond * maxP
	rank, first = k, -1
	for i := 0; i < k; i++ {
		if p := math.Abs(r.At(i, i)); p <= tol {
			rank, first, pivot = i, i, p
			break
		}
	}
	if minP == 0 || maxP == 0 {
		return rank, math.Inf(1), first, pivot
	}
	return rank, maxP / minP, first, pivot
}

// SolveQR solves min ‖Ax − b‖₂ by Householder QR. For m < n it returns the
// minimum-norm solution through the QR factorization of Aᵀ.
//
// Diagnostics.Condition is the max/min |R_ii| estimate (exact condition via
// ConditionNumber).
//
// Errors: ErrShape, ErrDimensionMismatch, ErrNaNInf, *RankDeficientError
// (only with WithRequireFullRank).
func SolveQR(a mat.Matrix, b []float64, opts ...Option) ([]float64, Diagnostics, error) {
	const tag = "SolveQR"
	start := time.Now()
	o := resolve(opts)
	m, n, err := validate(tag, a, b)
	if err != nil {
		return nil, Diagnostics{Method: MethodQR}, err
	}
	rcond := o.Rcond
	if rcond <= 0 {
		rcond = defaultRcond(m, n)
	}

	var x []float64
	diag := Diagnostics{Method: MethodQR}
	if m >= n {
		q, r := thinQR(a, m, n)
		rank, cond, first, pivot := pivotRank(r, n, rcond)
		diag.Rank, diag.Condition = rank, cond
		if rank < n {
			if o.RequireFullRank {
				diag.Elapsed = time.Since(start)
				return nil, diag, &RankDeficientError{Column: first, Pivot: pivot, Tolerance: rcond, Diag: diag}
			}
			diag.Notes = append(diag.Notes, fmt.Sprintf("rank-truncated %d/%d", rank, n))
		}
		c := mulTVec(q, b)
		x = backSubstitute(r, c, rank, n)
	} else {
		// Aᵀ = QR ⇒ A = Rᵀ Qᵀ; solve Rᵀ y = b, x = Q y.
		q, r := thinQR(a.T(), n, m)
		rank, cond, first, pivot := pivotRank(r, m, rcond)
		diag.Rank, diag.Condition = rank, cond
		if rank < m {
			if o.RequireFullRank {
				diag.Elapsed = time.Since(start)
				return nil, diag, &RankDeficientError{Column: first, Pivot: pivot, Tolerance: rcond, Diag: diag}
			}
			diag.Notes = append(diag.Notes, fmt.Sprintf("rank-truncated %d/%d", rank, m))
		}
		diag.Notes = append(diag.Notes, "underdetermined: minimum-norm")
		y := forwardSubstituteT(r, b, rank, m)
		x = mulVec(q, y)
	}
	diag.ResidualNorm = residualNorm(a, x, b)
	diag.Elapsed = time.Since(start)
	return x, diag, nil
}

// backSubstitute solves R[:k,:k] x[:k] = c[:k] and pads with zeros up to n.
func backSubstitute(r *mat.Dense, c []float64, k, n int) []float64 {
	x := make([]float64, n)
	for i := k - 1; i >= 0; i-- {
		var acc kahan.Accumulator
		acc.Add(c[i])
		for j := i + 1; j < k; j++ {
			acc.Add(-r.At(i, j) * x[j])
		}
		x[i] = acc.Sum() / r.At(i, i)
	}
	return x
}

// forwardSubstituteT solves R[:k,:k]ᵀ y[:k] = b[:k] and pads with zeros up to n.
func forwardSubstituteT(r *mat.Dense, b []float64, k, n int) []float64 {
	y := make([]float64, n)
	for i := 0; i < k; i++ {
		var acc kahan.Accumulator
		acc.Add(b[i])
		for j := 0; j < i; j++ {
			acc.Add(-r.At(j, i) * y[j])
		}
		y[i] = acc.Sum() / r.At(i, i)
	}
	return y
}
