// SPDX-License-Identifier: MIT
// Package: kec/cg
//
// types.go - options, result, sentinel and typed errors.

package cg

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/kec/kecerr"
)

// DefaultTol is the default relative residual tolerance.
const DefaultTol = 1e-8

// Sentinel errors.
var (
	// ErrNonSquare indicates a non-square operator.
	ErrNonSquare = errors.New("cg: operator is not square")

	// ErrDimensionMismatch indicates len(b) or len(X0) differs from n.
	ErrDimensionMismatch = errors.New("cg: dimension mismatch")

	// ErrNotPositiveDefinite indicates pᵀAp ≤ 0 during iteration.
	ErrNotPositiveDefinite = errors.New("cg: operator is not positive definite")

	// ErrBadOmega indicates an SSOR relaxation parameter outside (0, 2).
	ErrBadOmega = errors.New("cg: SSOR omega must lie in (0, 2)")

	// ErrFactorizationBreakdown indicates a non-positive pivot in IC(0).
	ErrFactorizationBreakdown = errors.New("cg: incomplete Cholesky breakdown")

	// ErrBadOption indicates an invalid tolerance or iteration budget.
	ErrBadOption = errors.New("cg: invalid option")
)

// Result is the outcome of a CG run, complete or partial.
type Result struct {
	X                []float64
	Iterations       int
	ResidualHistory  []float64 // relative residuals, index 0 is the initial guess
	RelativeResidual float64
	Converged        bool
	Preconditioner   string
}

// NonConvergenceError is returned when MaxIter is reached.
// Best is the iterate with the smallest relative residual seen.
type NonConvergenceError struct {
	Iterations       int
	RelativeResidual float64
	BestResidual     float64
	Best             []float64
	History          []float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("cg: no convergence after %d iterations (residual=%.3g, best=%.3g)",
		e.Iterations, e.RelativeResidual, e.BestResidual)
}

// Is reports kecerr.ErrNonConvergence.
func (e *NonConvergenceError) Is(target error) bool { return target == kecerr.ErrNonConvergence }

// Options configures Solve.
type Options struct {
	Preconditioner Preconditioner
	Tol            float64
	MaxIter        int // 0 selects n
	X0             []float64
	Logger         *slog.Logger
	Observer       func(*Result)
}

// Option mutates Options.
type Option func(*Options)

// WithPreconditioner sets M.
func WithPreconditioner(p Preconditioner) Option { return func(o *Options) { o.Preconditioner = p } }

// WithTol sets the relative residual tolerance.
func WithTol(tol float64) Option { return func(o *Options) { o.Tol = tol } }

// WithMaxIter sets the iteration budget.
func WithMaxIter(n int) Option { return func(o *Options) { o.MaxIter = n } }

// WithInitialGuess sets X0 (copied).
func WithInitialGuess(x0 []float64) Option {
	return func(o *Options) { o.X0 = append([]float64(nil), x0...) }
}

// WithLogger emits one debug record per solve.
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithObserver receives the final (or partial) Result of every solve.
func WithObserver(fn func(*Result)) Option { return func(o *Options) { o.Observer = fn } }
