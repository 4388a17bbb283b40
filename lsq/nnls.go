// SPDX-License-Identifier: MIT
// Package: kec/lsq
//
// nnls.go - non-negative least squares with a KKT certificate.
//
// Implementation:
//   - Lawson–Hanson active set. Passive-set subproblems are solved by the
//     truncated SVD so rank-deficient column subsets stay well-defined.
//   - A column whose unconstrained coefficient comes back non-positive right
//     after entering the passive set is blocked until the iterate moves, which
//     prevents add/drop cycling on the same index.
//   - Certification on g = Aᵀ(Ax − b), with tolerance tol·scale and
//     scale = max(1, ‖Aᵀb‖_∞, ‖A‖_F²·‖x‖_∞):
//       primal        min x_i ≥ −tol
//       dual          g_i ≥ −tol on the active set (x_i = 0)
//       stationarity  |g_i| ≤ tol on the passive set (x_i > 0)
//       slackness     |x_i g_i| ≤ tol·max(1, ‖x‖_∞)
//
// Budget: every inner step counts against MaxIter (default 10000).

package lsq

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// NNLS solves min ‖Ax − b‖₂ subject to x ≥ 0.
//
// Errors: ErrShape, ErrDimensionMismatch, ErrNaNInf, *KktViolationError (with the
// best iterate) when the budget is exhausted or certification fails.
func NNLS(a mat.Matrix, b []float64, opts ...Option) ([]float64, Diagnostics, error) {
	const tag = "NNLS"
	start := time.Now()
	o := resolve(opts)
	m, n, err := validate(tag, a, b)
	if err != nil {
		return nil, Diagnostics{Method: MethodNNLS}, err
	}
	tol := o.NNLSTol
	atb := mulTVec(a, b)
	baseScale := math.Max(1, maxAbs(atb))

	x := make([]float64, n)
	passive := make([]bool, n)
	blocked := make([]bool, n)
	iter := 0
	exhausted := false

outer:
	for {
		w := mulTVec(a, negResidual(a, x, b))
		j, best := -1, tol*baseScale
		for i := 0; i < n; i++ {
			if !passive[i] && !blocked[i] && w[i] > best {
				j, best = i, w[i]
			}
		}
		if j < 0 {
			break
		}
		passive[j] = true
		first := true
		for {
			if iter >= o.MaxIter {
				exhausted = true
				break outer
			}
			iter++
			z := passiveSolve(a, b, passive, m, n)
			if first && z[j] <= 0 {
				passive[j], blocked[j] = false, true
				continue outer
			}
			first = false

			feasible := true
			for i := 0; i < n; i++ {
				if passive[i] && z[i] <= 0 {
					feasible = false
					break
				}
			}
			if feasible {
				copy(x, z)
				clear(blocked)
				break
			}
			alpha := math.Inf(1)
			for i := 0; i < n; i++ {
				if passive[i] && z[i] <= 0 {
					step := 0.0
					if den := x[i] - z[i]; den > 0 {
						step = x[i] / den
					}
					alpha = math.Min(alpha, step)
				}
			}
			for i := 0; i < n; i++ {
				x[i] += alpha * (z[i] - x[i])
				if passive[i] && x[i] <= tol {
					passive[i], x[i] = false, 0
				}
			}
			clear(blocked)
		}
	}

	diag := Diagnostics{Method: MethodNNLS, Iterations: iter, ResidualNorm: residualNorm(a, x, b)}
	for _, p := range passive {
		if p {
			diag.Rank++
		}
	}
	diag.Condition = ConditionNumber(a)
	diag.Elapsed = time.Since(start)

	kerr := certify(a, b, x, tol, atb)
	switch {
	case exhausted:
		kerr.Reason = "iteration budget exhausted"
	case kerr.Reason == "":
		return x, diag, nil
	}
	kerr.X, kerr.Diag = append([]float64(nil), x...), diag
	return x, diag, kerr
}

// negResidual returns b − Ax.
func negResidual(a mat.Matrix, x, b []float64) []float64 {
	ax := mulVec(a, x)
	for i := range ax {
		ax[i] = b[i] - ax[i]
	}
	return ax
}

// passiveSolve returns the least-squares solution restricted to the passive
// columns, zero elsewhere.
func passiveSolve(a mat.Matrix, b []float64, passive []bool, m, n int) []float64 {
	cols := make([]int, 0, n)
	for i, p := range passive {
		if p {
			cols = append(cols, i)
		}
	}
	z := make([]float64, n)
	if len(cols) == 0 {
		return z
	}
	sub := mat.NewDense(m, len(cols), nil)
	for c, j := range cols {
		for i := 0; i < m; i++ {
			sub.Set(i, c, a.At(i, j))
		}
	}
	f, err := TruncatedSVD(sub, 0, 0)
	if err != nil {
		return z
	}
	zp := f.apply(b, len(cols))
	for c, j := range cols {
		z[j] = zp[c]
	}
	return z
}

// certify evaluates the KKT residuals; Reason is empty when all pass.
func certify(a mat.Matrix, b, x []float64, tol float64, atb []float64) *KktViolationError {
	g := mulTVec(a, negResidual(a, x, b))
	for i := range g {
		g[i] = -g[i]
	}
	xInf := maxAbs(x)
	normF := mat.Norm(a, 2)
	scale := math.Max(1, math.Max(maxAbs(atb), normF*normF*xInf))
	kt := tol * scale

	e := &KktViolationError{Tolerance: kt}
	zeroTol := tol * math.Max(1, xInf)
	for i, xi := range x {
		e.Primal = math.Max(e.Primal, -xi)
		if xi <= zeroTol {
			e.Dual = math.Max(e.Dual, -g[i])
		} else {
			e.Stationarity = math.Max(e.Stationarity, math.Abs(g[i]))
		}
		e.Slackness = math.Max(e.Slackness, math.Abs(xi*g[i]))
	}
	switch {
	case e.Primal > tol:
		e.Reason = "primal infeasible"
	case e.Dual > kt:
		e.Reason = "dual infeasible"
	case e.Stationarity > kt:
		e.Reason = "not stationary on passive set"
	case e.Slackness > kt*math.Max(1, xInf):
		e.Reason = "complementary slackness"
	}
	return e
}
