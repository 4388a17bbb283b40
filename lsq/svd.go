// SPDX-License-Identifier: MIT
// Package: kec/lsq
//
// svd.go - truncated SVD, SVD least squares and the condition number.

package lsq

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/kec/kahan"
)

// SVD holds the k leading singular triplets of a matrix.
//
// U is m×k, V is n×k, S holds σ_1 ≥ … ≥ σ_k > 0. When k == 0, U and V are nil.
// Spectrum keeps every singular value of the full thin decomposition.
type SVD struct {
	U        *mat.Dense
	S        []float64
	V        *mat.Dense
	Rank     int
	Rcond    float64
	Spectrum []float64
}

// TruncatedSVD computes the leading singular triplets of a. Triplets with
// σ_i ≤ rcond·σ_1 are always discarded (rcond ≤ 0 selects ε·max(m,n)); when
// rank > 0 at most rank triplets are kept.
//
// Errors: ErrShape, ErrNaNInf, ErrFactorization.
//
// Complexity: O(mn·min(m,n)).
func TruncatedSVD(a mat.Matrix, rank int, rcond float64) (*SVD, error) {
	const tag = "TruncatedSVD"
	m, n, err := validate(tag, a, nil)
	if err != nil {
		return nil, err
	}
	if rcond <= 0 {
		rcond = defaultRcond(m, n)
	}
	var f mat.SVD
	if ok := f.Factorize(a, mat.SVDThin); !ok {
		return nil, fmt.Errorf("%s: %w", tag, ErrFactorization)
	}
	s := f.Values(nil)
	k := 0
	if len(s) > 0 && s[0] > 0 {
		cut := rcond * s[0]
		for k < len(s) && s[k] > cut {
			k++
		}
	}
	if rank > 0 && rank < k {
		k = rank
	}
	out := &SVD{Rank: k, Rcond: rcond, Spectrum: s, S: append([]float64(nil), s[:k]...)}
	if k == 0 {
		return out, nil
	}
	var u, v mat.Dense
	f.UTo(&u)
	f.VTo(&v)
	out.U = mat.DenseCopyOf(u.Slice(0, m, 0, k))
	out.V = mat.DenseCopyOf(v.Slice(0, n, 0, k))
	return out, nil
}

// TruncationError returns ‖A − U_k Σ_k V_kᵀ‖_F computed from the discarded
// singular values.
func (s *SVD) TruncationError() float64 {
	return kahan.Norm(s.Spectrum[s.Rank:])
}

// SolveSVD solves min ‖Ax − b‖₂ through the truncated SVD
// x = Σ_{i≤k} v_i (u_iᵀb)/σ_i. The returned x has minimum norm among the
// truncated-problem solutions.
//
// Errors: ErrShape, ErrDimensionMismatch, ErrNaNInf, ErrFactorization.
func SolveSVD(a mat.Matrix, b []float64, rank int, rcond float64) ([]float64, Diagnostics, error) {
	const tag = "SolveSVD"
	start := time.Now()
	m, n, err := validate(tag, a, b)
	if err != nil {
		return nil, Diagnostics{Method: MethodSVD}, err
	}
	f, err := TruncatedSVD(a, rank, rcond)
	if err != nil {
		return nil, Diagnostics{Method: MethodSVD, Condition: math.Inf(1)}, err
	}
	x := f.apply(b, n)
	diag := Diagnostics{
		Method:       MethodSVD,
		Condition:    conditionFromValues(f.Spectrum, m, n),
		Rank:         f.Rank,
		ResidualNorm: residualNorm(a, x, b),
	}
	if f.Rank < len(f.Spectrum) {
		diag.Notes = append(diag.Notes, fmt.Sprintf("truncated %d/%d (rcond=%.3g)", f.Rank, len(f.Spectrum), f.Rcond))
	}
	diag.Elapsed = time.Since(start)
	return x, diag, nil
}

func (s *SVD) apply(b []float64, n int) []float64 {
	x := make([]float64, n)
	if s.Rank == 0 {
		return x
	}
	m, _ := s.U.Dims()
	acc := make([]kahan.Accumulator, n)
	col := make([]float64, m)
	for i := 0; i < s.Rank; i++ {
		mat.Col(col, i, s.U)
		coef := kahan.MustDot(col, b) / s.S[i]
		for j := 0; j < n; j++ {
			acc[j].Add(s.V.At(j, i) * coef)
		}
	}
	for j := range x {
		x[j] = acc[j].Sum()
	}
	return x
}

// ConditionNumber returns σ_max/σ_min of a, or +Inf when a is numerically
// singular (σ_min ≤ ε·max(m,n)·σ_max), empty, non-finite, or the
// factorization fails. It never panics.
func ConditionNumber(a mat.Matrix) float64 {
	m, n, err := validate("ConditionNumber", a, nil)
	if err != nil {
		return math.Inf(1)
	}
	var f mat.SVD
	if ok := f.Factorize(a, mat.SVDNone); !ok {
		return math.Inf(1)
	}
	return conditionFromValues(f.Values(nil), m, n)
}

func conditionFromValues(s []float64, m, n int) float64 {
	if len(s) == 0 || s[0] == 0 {
		return math.Inf(1)
	}
	smin := s[len(s)-1]
	if smin <= s[0]*defaultRcond(m, n) {
		return math.Inf(1)
	}
	return s[0] / smin
}
