// SPDX-License-Identifier: MIT
// Package: kec/lsq
//
// helpers.go - validation and compensated vector helpers.

package lsq

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/kec/kahan"
)

func validate(tag string, a mat.Matrix, b []float64) (m, n int, err error) {
	if a == nil {
		return 0, 0, fmt.Errorf("%s: nil matrix: %w", tag, ErrShape)
	}
	m, n = a.Dims()
	if m == 0 || n == 0 {
		return 0, 0, fmt.Errorf("%s: %dx%d: %w", tag, m, n, ErrShape)
	}
	if b != nil && len(b) != m {
		return 0, 0, fmt.Errorf("%s: len(b)=%d rows=%d: %w", tag, len(b), m, ErrDimensionMismatch)
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			if v := a.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, 0, fmt.Errorf("%s: A(%d,%d)=%g: %w", tag, i, j, v, ErrNaNInf)
			}
		}
	}
	for i, v := range b {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, fmt.Errorf("%s: b[%d]=%g: %w", tag, i, v, ErrNaNInf)
		}
	}
	return m, n, nil
}

// mulVec returns A·x with compensated row sums.
func mulVec(a mat.Matrix, x []float64) []float64 {
	m, n := a.Dims()
	out := make([]float64, m)
	for i := 0; i < m; i++ {
		var acc kahan.Accumulator
		for j := 0; j < n; j++ {
			acc.Add(a.At(i, j) * x[j])
		}
		out[i] = acc.Sum()
	}
	return out
}

// mulTVec returns Aᵀ·y with compensated column sums.
func mulTVec(a mat.Matrix, y []float64) []float64 {
	m, n := a.Dims()
	out := make([]float64, n)
	for j := 0; j < n; j++ {
		var acc kahan.Accumulator
		for i := 0; i < m; i++ {
			acc.Add(a.At(i, j) * y[i])
		}
		out[j] = acc.Sum()
	}
	return out
}

// residualNorm returns ‖Ax − b‖₂.
func residualNorm(a mat.Matrix, x, b []float64) float64 {
	ax := mulVec(a, x)
	for i := range ax {
		ax[i] -= b[i]
	}
	return kahan.Norm(ax)
}

func maxAbs(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		if a := math.Abs(x); a > m {
			m = a
		}
	}
	return m
}

func defaultRcond(m, n int) float64 {
	if m > n {
		return eps * float64(m)
	}
	return eps * float64(n)
}
