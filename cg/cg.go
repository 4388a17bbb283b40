// SPDX-License-Identifier: MIT
// Package: kec/cg
//
// cg.go - the preconditioned CG iteration and the normal-equations wrapper.

package cg

import (
	"context"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/kec/kahan"
	"github.com/katalvlaran/kec/kecerr"
	"github.com/katalvlaran/kec/matrix"
)

// Solve runs preconditioned CG on the SPD system a·x = b.
//
// Returns the Result on convergence. On failure the Result is still returned
// (partial diagnostics) together with:
//   - *NonConvergenceError after MaxIter iterations (Result.X is the best iterate),
//   - *kecerr.CancelledError when ctx is done,
//   - ErrNotPositiveDefinite when pᵀAp ≤ 0.
//
// Errors without a Result: ErrNonSquare, ErrDimensionMismatch, ErrBadOption.
//
// Complexity: O(MaxIter · (nnz(A) + cost(M) + n)).
func Solve(ctx context.Context, a matrix.Operator, b []float64, opts ...Option) (*Result, error) {
	const tag = "cg.Solve"
	o := Options{Tol: DefaultTol}
	for _, opt := range opts {
		opt(&o)
	}
	n, c := a.Dims()
	if n != c {
		return nil, fmt.Errorf("%s: %dx%d: %w", tag, n, c, ErrNonSquare)
	}
	if len(b) != n || (o.X0 != nil && len(o.X0) != n) {
		return nil, fmt.Errorf("%s: n=%d len(b)=%d: %w", tag, n, len(b), ErrDimensionMismatch)
	}
	if !(o.Tol > 0) || o.MaxIter < 0 {
		return nil, fmt.Errorf("%s: tol=%g maxIter=%d: %w", tag, o.Tol, o.MaxIter, ErrBadOption)
	}
	maxIter := o.MaxIter
	if maxIter == 0 {
		maxIter = n
	}
	m := o.Preconditioner
	if m == nil {
		m = Identity{}
	}

	res, err := iterate(ctx, a, b, m, o.Tol, maxIter, o.X0)
	if o.Logger != nil {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		o.Logger.Log(ctx, level, "cg: solve", "n", n, "preconditioner", res.Preconditioner,
			"iterations", res.Iterations, "residual", res.RelativeResidual, "converged", res.Converged, "error", err)
	}
	if o.Observer != nil {
		o.Observer(res)
	}
	return res, err
}

func iterate(ctx context.Context, a matrix.Operator, b []float64, m Preconditioner, tol float64, maxIter int, x0 []float64) (*Result, error) {
	const tag = "cg.Solve"
	n := len(b)
	res := &Result{Preconditioner: m.Name()}
	x := make([]float64, n)

	bnorm := kahan.Norm(b)
	if bnorm == 0 {
		res.X, res.Converged, res.ResidualHistory = x, true, []float64{0}
		return res, nil
	}
	copy(x, x0)

	r := make([]float64, n)
	a.MulVecTo(r, x)
	for i := range r {
		r[i] = b[i] - r[i]
	}
	z := make([]float64, n)
	m.Apply(z, r)
	p := append([]float64(nil), z...)
	rz := kahan.MustDot(r, z)

	rel := kahan.Norm(r) / bnorm
	res.ResidualHistory = append(res.ResidualHistory, rel)
	best, bestRel := append([]float64(nil), x...), rel
	finish := func() {
		res.RelativeResidual = rel
		res.X = x
		if !res.Converged {
			res.X = best
		}
	}
	if rel <= tol {
		res.Converged = true
		finish()
		return res, nil
	}

	ap := make([]float64, n)
	for k := 1; k <= maxIter; k++ {
		if err := ctx.Err(); err != nil {
			finish()
			return res, &kecerr.CancelledError{Op: tag, Progress: res.Iterations, Cause: err}
		}
		a.MulVecTo(ap, p)
		pap := kahan.MustDot(p, ap)
		if !(pap > 0) {
			finish()
			return res, fmt.Errorf("%s: iteration %d pᵀAp=%.3g: %w", tag, k, pap, ErrNotPositiveDefinite)
		}
		alpha := rz / pap
		for i := 0; i < n; i++ {
			x[i] += alpha * p[i]
			r[i] -= alpha * ap[i]
		}
		res.Iterations = k
		rel = kahan.Norm(r) / bnorm
		res.ResidualHistory = append(res.ResidualHistory, rel)
		if rel < bestRel {
			bestRel = rel
			copy(best, x)
		}
		if rel <= tol {
			res.Converged = true
			break
		}
		m.Apply(z, r)
		rzNew := kahan.MustDot(r, z)
		beta := rzNew / rz
		rz = rzNew
		for i := 0; i < n; i++ {
			p[i] = z[i] + beta*p[i]
		}
	}
	finish()
	if !res.Converged {
		return res, &NonConvergenceError{
			Iterations:       res.Iterations,
			RelativeResidual: rel,
			BestResidual:     bestRel,
			Best:             append([]float64(nil), best...),
			History:          append([]float64(nil), res.ResidualHistory...),
		}
	}
	return res, nil
}

// normalOperator applies AᵀA without forming it.
type normalOperator struct {
	a   mat.Matrix
	tmp []float64
}

func (o *normalOperator) Dims() (int, int) {
	_, n := o.a.Dims()
	return n, n
}

func (o *normalOperator) MulVecTo(dst, x []float64) {
	matrix.DenseOperator{M: o.a}.MulVecTo(o.tmp, x)
	matrix.DenseOperator{M: o.a.T()}.MulVecTo(dst, o.tmp)
}

// LeastSquares solves min ‖Ax − b‖₂ by CG on AᵀA x = Aᵀb (CGNR). Without an
// explicit preconditioner it uses Jacobi on diag(AᵀA) (squared column norms).
// The residuals reported are those of the normal equations.
func LeastSquares(ctx context.Context, a mat.Matrix, b []float64, opts ...Option) (*Result, error) {
	rows, cols := a.Dims()
	if len(b) != rows {
		return nil, fmt.Errorf("cg.LeastSquares: rows=%d len(b)=%d: %w", rows, len(b), ErrDimensionMismatch)
	}
	op := &normalOperator{a: a, tmp: make([]float64, rows)}
	atb := make([]float64, cols)
	matrix.DenseOperator{M: a.T()}.MulVecTo(atb, b)

	colNorms := make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, a)
		if v := kahan.NormSquared(col); v > 0 {
			colNorms[j] = 1 / v
		} else {
			colNorms[j] = 1
		}
	}
	all := append([]Option{WithPreconditioner(&Jacobi{inv: colNorms})}, opts...)
	return Solve(ctx, op, atb, all...)
}
