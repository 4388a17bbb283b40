// SPDX-License-Identifier: MIT
// Package: kec/lsq
//
// route.go - solver routing policy and the Solve entry point.

package lsq

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/mat"
)

// ChooseSolver applies the routing policy with the default threshold:
// nonneg → NNLS; cond(A) > 1e3 → SVD; otherwise prefer (QR when empty).
func ChooseSolver(a mat.Matrix, prefer Method, nonneg bool) Method {
	m, _ := route(a, prefer, nonneg, DefaultCondThreshold)
	return m
}

func route(a mat.Matrix, prefer Method, nonneg bool, threshold float64) (Method, float64) {
	if nonneg {
		return MethodNNLS, 0
	}
	cond := ConditionNumber(a)
	if cond > threshold {
		return MethodSVD, cond
	}
	if prefer == "" {
		prefer = MethodQR
	}
	return prefer, cond
}

// Solve routes (a, b) to QR, truncated SVD or NNLS and returns the solution
// with Diagnostics. Diagnostics.Condition is the exact SVD condition number for
// every route.
//
// When the SVD is chosen because of conditioning, the cutoff is RouteRcond
// (default 1e-5) unless WithRcond overrides it; an explicit WithPrefer(MethodSVD)
// on a well-conditioned system uses the ε·max(m,n) cutoff.
//
// Errors: everything the selected solver returns, and ErrUnknownMethod.
func Solve(a mat.Matrix, b []float64, opts ...Option) ([]float64, Diagnostics, error) {
	start := time.Now()
	o := resolve(opts)
	method, cond := route(a, o.Prefer, o.NonNeg, o.CondThreshold)

	var (
		x    []float64
		diag Diagnostics
		err  error
	)
	switch method {
	case MethodQR:
		x, diag, err = SolveQR(a, b, opts...)
	case MethodSVD:
		rcond := o.Rcond
		if rcond <= 0 && cond > o.CondThreshold {
			rcond = o.RouteRcond
		}
		x, diag, err = SolveSVD(a, b, o.Rank, rcond)
		if cond > o.CondThreshold {
			diag.Notes = append(diag.Notes, fmt.Sprintf("routed: cond=%.3g > %.3g", cond, o.CondThreshold))
		}
	case MethodNNLS:
		x, diag, err = NNLS(a, b, opts...)
	default:
		err = fmt.Errorf("Solve: %q: %w", method, ErrUnknownMethod)
		diag.Method = method
	}
	if method != MethodNNLS {
		diag.Condition = cond
	}
	diag.Elapsed = time.Since(start)

	if o.Logger != nil {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		o.Logger.Log(context.Background(), level, "lsq: solve",
			"method", string(diag.Method), "cond", diag.Condition, "residual", diag.ResidualNorm,
			"rank", diag.Rank, "iterations", diag.Iterations, "elapsed", diag.Elapsed, "error", err)
	}
	if o.Observer != nil {
		o.Observer(diag)
	}
	return x, diag, err
}
