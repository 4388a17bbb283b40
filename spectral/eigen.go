// SPDX-License-Identifier: MIT
// Package: kec/spectral
//
// eigen.go - smallest eigenpairs of a symmetric Laplacian, dense and Lanczos.

package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/kec/kahan"
	"github.com/katalvlaran/kec/matrix"
)

// eigenpairs are the q smallest eigenvalues (ascending) with unit vectors.
type eigenpairs struct {
	values    []float64
	vectors   [][]float64
	residuals []float64
	krylov    int
}

// denseSmallest factorizes the full dense Laplacian.
func denseSmallest(l *matrix.Laplacian, q int) (*eigenpairs, error) {
	d := l.Dense()
	n, _ := d.Dims()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			// exact symmetry; the Laplacian is symmetric up to rounding
			sym.SetSym(i, j, 0.5*(d.At(i, j)+d.At(j, i)))
		}
	}
	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, fmt.Errorf("dense n=%d: %w", n, ErrEigenFailed)
	}
	vals := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	ep := &eigenpairs{values: append([]float64(nil), vals[:q]...), vectors: make([][]float64, q)}
	for j := 0; j < q; j++ {
		ep.vectors[j] = mat.Col(nil, j, &vecs)
	}
	return ep, nil
}

// gershgorin returns max_i Σ_j |a_ij|, an upper bound of the spectrum.
func gershgorin(a *matrix.CSR) float64 {
	n, _ := a.Dims()
	bound := 0.0
	for i := 0; i < n; i++ {
		_, vals := a.Row(i)
		var acc kahan.Accumulator
		for _, v := range vals {
			acc.Add(math.Abs(v))
		}
		bound = math.Max(bound, acc.Sum())
	}
	if bound == 0 {
		return 1
	}
	return bound
}

// startVector is fixed and non-constant, so it is never the trivial
// eigenvector of a connected graph.
func startVector(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1 + 0.5*math.Sin(float64(i+1))
	}
	floats.Scale(1/kahan.Norm(v), v)
	return v
}

// orthogonalize removes the basis components of w, twice.
func orthogonalize(w []float64, basis [][]float64) {
	for pass := 0; pass < 2; pass++ {
		for _, q := range basis {
			floats.AddScaled(w, -kahan.MustDot(q, w), q)
		}
	}
}

// freshVector returns the next canonical basis vector that is not already
// spanned, advancing *next.
func freshVector(n int, basis [][]float64, next *int) ([]float64, bool) {
	for ; *next < n; *next++ {
		e := make([]float64, n)
		e[*next] = 1
		orthogonalize(e, basis)
		if nrm := kahan.Norm(e); nrm > 1e-8 {
			*next++
			floats.Scale(1/nrm, e)
			return e, true
		}
	}
	return nil, false
}

// lanczosSmallest runs m Lanczos steps on B = σI − A with full
// reorthogonalization; the largest Ritz values of B give the smallest
// eigenvalues of A. An invariant subspace restarts from the next canonical
// basis vector, so repeated eigenvalues are recovered.
func lanczosSmallest(a *matrix.CSR, q, m int) (*eigenpairs, error) {
	n, _ := a.Dims()
	sigma := gershgorin(a)
	apply := func(dst, x []float64) {
		a.MulVecTo(dst, x)
		for i := range dst {
			dst[i] = sigma*x[i] - dst[i]
		}
	}
	breakTol := 1e-12 * sigma

	basis := make([][]float64, 0, m)
	alpha := make([]float64, 0, m)
	beta := make([]float64, 0, m)
	v := startVector(n)
	next := 0
	for len(basis) < m {
		basis = append(basis, v)
		w := make([]float64, n)
		apply(w, v)
		alpha = append(alpha, kahan.MustDot(v, w))
		orthogonalize(w, basis)
		if len(basis) == m {
			break
		}
		b := kahan.Norm(w)
		if b <= breakTol {
			fresh, ok := freshVector(n, basis, &next)
			if !ok {
				break
			}
			beta = append(beta, 0)
			v = fresh
			continue
		}
		beta = append(beta, b)
		floats.Scale(1/b, w)
		v = w
	}

	k := len(basis)
	t := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		t.SetSym(i, i, alpha[i])
		if i+1 < k {
			t.SetSym(i, i+1, beta[i])
		}
	}
	var es mat.EigenSym
	if ok := es.Factorize(t, true); !ok {
		return nil, fmt.Errorf("lanczos tridiagonal k=%d: %w", k, ErrEigenFailed)
	}
	theta := es.Values(nil)
	var y mat.Dense
	es.VectorsTo(&y)

	if q > k {
		q = k
	}
	ep := &eigenpairs{krylov: k}
	ax := make([]float64, n)
	for r := 0; r < q; r++ {
		col := k - 1 - r
		x := make([]float64, n)
		for l := 0; l < k; l++ {
			floats.AddScaled(x, y.At(l, col), basis[l])
		}
		floats.Scale(1/kahan.Norm(x), x)
		lambda := sigma - theta[col]

		a.MulVecTo(ax, x)
		floats.AddScaled(ax, -lambda, x)
		ep.values = append(ep.values, lambda)
		ep.vectors = append(ep.vectors, x)
		ep.residuals = append(ep.residuals, kahan.Norm(ax))
	}
	return ep, nil
}
