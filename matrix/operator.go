// SPDX-License-Identifier: MIT
// Package: kec/matrix
//
// operator.go - the matrix-vector product abstraction consumed by cg and the
// sparse spectral backend.

package matrix

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/kec/kahan"
)

// Operator is a linear map that can be applied to a vector.
type Operator interface {
	Dims() (r, c int)
	// MulVecTo stores A·x into dst; len(dst) == r, len(x) == c.
	MulVecTo(dst, x []float64)
}

// DenseOperator adapts any gonum matrix to Operator using compensated row sums.
type DenseOperator struct {
	M mat.Matrix
}

// Dims returns the dimensions of the wrapped matrix.
func (d DenseOperator) Dims() (int, int) { return d.M.Dims() }

// MulVecTo computes dst = M·x.
func (d DenseOperator) MulVecTo(dst, x []float64) {
	r, c := d.M.Dims()
	if len(dst) != r || len(x) != c {
		panic(ErrDimensionMismatch)
	}
	for i := 0; i < r; i++ {
		var acc kahan.Accumulator
		for j := 0; j < c; j++ {
			acc.Add(d.M.At(i, j) * x[j])
		}
		dst[i] = acc.Sum()
	}
}
