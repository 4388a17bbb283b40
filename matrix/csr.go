// SPDX-License-Identifier: MIT
// Package: kec/matrix
//
// csr.go - compressed sparse row matrix.
//
// Contract:
//   - Immutable after construction; read accessors return views that callers
//     must not modify.
//   - Column indices are strictly ascending within each row; duplicates are
//     summed at construction, explicit zeros are dropped.
//   - Implements gonum mat.Matrix (Dims/At/T) and Operator (MulVecTo).
//
// Complexity:
//   - MulVecTo: O(nnz). At: O(log nnz_row). Construction: O(nnz log nnz).

package matrix

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/kec/kahan"
)

// Triplet is one (row, col, value) entry used to assemble a CSR.
type Triplet struct {
	Row, Col int
	Value    float64
}

// CSR is a compressed sparse row matrix.
type CSR struct {
	rows, cols int
	indptr     []int // len rows+1
	indices    []int // len nnz
	data       []float64
}

var (
	_ mat.Matrix = (*CSR)(nil)
	_ Operator   = (*CSR)(nil)
)

// NewCSR assembles a rows×cols CSR from triplets.
//
// Errors: ErrBadShape, ErrOutOfRange, ErrNaNInf.
func NewCSR(rows, cols int, triplets []Triplet) (*CSR, error) {
	const tag = "NewCSR"
	if rows <= 0 || cols <= 0 {
		return nil, matrixErrorf(tag, fmt.Errorf("%dx%d: %w", rows, cols, ErrBadShape))
	}
	ts := append([]Triplet(nil), triplets...)
	for _, t := range ts {
		if t.Row < 0 || t.Row >= rows || t.Col < 0 || t.Col >= cols {
			return nil, matrixErrorf(tag, fmt.Errorf("(%d,%d): %w", t.Row, t.Col, ErrOutOfRange))
		}
		if math.IsNaN(t.Value) || math.IsInf(t.Value, 0) {
			return nil, matrixErrorf(tag, fmt.Errorf("(%d,%d): %w", t.Row, t.Col, ErrNaNInf))
		}
	}
	sort.SliceStable(ts, func(i, j int) bool {
		if ts[i].Row != ts[j].Row {
			return ts[i].Row < ts[j].Row
		}
		return ts[i].Col < ts[j].Col
	})

	c := &CSR{rows: rows, cols: cols, indptr: make([]int, rows+1)}
	for i := 0; i < len(ts); {
		j := i
		var acc kahan.Accumulator
		for j < len(ts) && ts[j].Row == ts[i].Row && ts[j].Col == ts[i].Col {
			acc.Add(ts[j].Value)
			j++
		}
		if v := acc.Sum(); v != 0 {
			c.indices = append(c.indices, ts[i].Col)
			c.data = append(c.data, v)
			c.indptr[ts[i].Row+1]++
		}
		i = j
	}
	for r := 0; r < rows; r++ {
		c.indptr[r+1] += c.indptr[r]
	}
	return c, nil
}

// CSRFromDense converts a into CSR, dropping entries with |a_ij| ≤ dropTol.
func CSRFromDense(a mat.Matrix, dropTol float64) *CSR {
	r, cc := a.Dims()
	c := &CSR{rows: r, cols: cc, indptr: make([]int, r+1)}
	for i := 0; i < r; i++ {
		for j := 0; j < cc; j++ {
			if v := a.At(i, j); math.Abs(v) > dropTol {
				c.indices = append(c.indices, j)
				c.data = append(c.data, v)
			}
		}
		c.indptr[i+1] = len(c.indices)
	}
	return c
}

// Dims returns (rows, cols).
func (c *CSR) Dims() (int, int) { return c.rows, c.cols }

// At returns entry (i, j). It panics on out-of-range indices, as gonum
// matrices do.
func (c *CSR) At(i, j int) float64 {
	if i < 0 || i >= c.rows || j < 0 || j >= c.cols {
		panic(mat.ErrIndexOutOfRange)
	}
	lo, hi := c.indptr[i], c.indptr[i+1]
	k := lo + sort.SearchInts(c.indices[lo:hi], j)
	if k < hi && c.indices[k] == j {
		return c.data[k]
	}
	return 0
}

// T returns the implicit transpose.
func (c *CSR) T() mat.Matrix { return mat.Transpose{Matrix: c} }

// NNZ returns the number of stored entries.
func (c *CSR) NNZ() int { return len(c.data) }

// Row returns views of the column indices and values stored in row i.
func (c *CSR) Row(i int) (cols []int, vals []float64) {
	lo, hi := c.indptr[i], c.indptr[i+1]
	return c.indices[lo:hi], c.data[lo:hi]
}

// MulVecTo computes dst = c·x with compensated row sums.
// It panics if len(x) != cols or len(dst) != rows.
func (c *CSR) MulVecTo(dst, x []float64) {
	if len(x) != c.cols || len(dst) != c.rows {
		panic(ErrDimensionMismatch)
	}
	for i := 0; i < c.rows; i++ {
		var acc kahan.Accumulator
		for k := c.indptr[i]; k < c.indptr[i+1]; k++ {
			acc.Add(c.data[k] * x[c.indices[k]])
		}
		dst[i] = acc.Sum()
	}
}

// Diagonal returns a copy of the main diagonal (zeros where not stored).
func (c *CSR) Diagonal() []float64 {
	n := c.rows
	if c.cols < n {
		n = c.cols
	}
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		d[i] = c.At(i, i)
	}
	return d
}

// IsSymmetric reports whether c is square and |c_ij − c_ji| ≤ tol everywhere.
func (c *CSR) IsSymmetric(tol float64) bool {
	if c.rows != c.cols {
		return false
	}
	for i := 0; i < c.rows; i++ {
		cols, vals := c.Row(i)
		for k, j := range cols {
			if math.Abs(vals[k]-c.At(j, i)) > tol {
				return false
			}
		}
	}
	return true
}

// DiagonallyDominant reports strict row diagonal dominance:
// |a_ii| > Σ_{j≠i} |a_ij| for every row.
func (c *CSR) DiagonallyDominant() bool {
	if c.rows != c.cols {
		return false
	}
	for i := 0; i < c.rows; i++ {
		cols, vals := c.Row(i)
		var diag float64
		var off kahan.Accumulator
		for k, j := range cols {
			if j == i {
				diag = math.Abs(vals[k])
			} else {
				off.Add(math.Abs(vals[k]))
			}
		}
		if diag <= off.Sum() {
			return false
		}
	}
	return true
}

// ToDense materializes c as a *mat.Dense.
func (c *CSR) ToDense() *mat.Dense {
	d := mat.NewDense(c.rows, c.cols, nil)
	for i := 0; i < c.rows; i++ {
		cols, vals := c.Row(i)
		for k, j := range cols {
			d.Set(i, j, vals[k])
		}
	}
	return d
}
