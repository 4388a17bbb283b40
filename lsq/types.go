// SPDX-License-Identifier: MIT
// Package: kec/lsq
//
// types.go - Method, Diagnostics, options, sentinel and typed errors.

package lsq

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/katalvlaran/kec/kecerr"
)

// Method identifies a solver.
type Method string

const (
	MethodQR   Method = "qr"
	MethodSVD  Method = "svd_trunc"
	MethodNNLS Method = "nnls"
)

// Routing and tolerance defaults.
const (
	DefaultCondThreshold = 1e3
	DefaultRouteRcond    = 1e-5
	DefaultNNLSTol       = 1e-10
	DefaultNNLSMaxIter   = 10000
)

// eps is the float64 machine epsilon.
var eps = math.Nextafter(1, 2) - 1

// Sentinel errors for invalid input.
var (
	// ErrShape indicates an empty matrix or an unsupported shape.
	ErrShape = errors.New("lsq: invalid matrix shape")

	// ErrDimensionMismatch indicates len(b) differs from the row count of A.
	ErrDimensionMismatch = errors.New("lsq: dimension mismatch")

	// ErrNaNInf indicates a non-finite entry in A or b.
	ErrNaNInf = errors.New("lsq: NaN or Inf in input")

	// ErrFactorization indicates that the underlying LAPACK routine failed.
	ErrFactorization = errors.New("lsq: factorization failed")

	// ErrUnknownMethod indicates an unsupported Method value.
	ErrUnknownMethod = errors.New("lsq: unknown method")
)

// Diagnostics describes one solve. It accompanies every result.
type Diagnostics struct {
	Method       Method
	Condition    float64 // estimate; +Inf when numerically singular
	ResidualNorm float64 // ‖Ax − b‖₂
	Rank         int     // numerical rank used by the solve
	Iterations   int     // NNLS outer+inner steps; 0 for direct methods
	Elapsed      time.Duration
	Notes        []string
}

// String renders a compact single-line summary.
func (d Diagnostics) String() string {
	s := fmt.Sprintf("method=%s cond=%.3g resid=%.3g rank=%d iter=%d elapsed=%s",
		d.Method, d.Condition, d.ResidualNorm, d.Rank, d.Iterations, d.Elapsed)
	if len(d.Notes) > 0 {
		s += " notes=" + strings.Join(d.Notes, ";")
	}
	return s
}

// RankDeficientError reports a numerically zero pivot of R under a full-rank
// requirement.
type RankDeficientError struct {
	Column    int     // first pivot at or below Tolerance
	Pivot     float64 // |R_ii|
	Tolerance float64
	Diag      Diagnostics
}

func (e *RankDeficientError) Error() string {
	return fmt.Sprintf("lsq: rank deficient at column %d (|R_ii|=%.3g ≤ tol=%.3g)", e.Column, e.Pivot, e.Tolerance)
}

// Is reports kecerr.ErrRankDeficient.
func (e *RankDeficientError) Is(target error) bool { return target == kecerr.ErrRankDeficient }

// KktViolationError reports an NNLS result that could not be certified.
// X is the best iterate reached.
type KktViolationError struct {
	Reason       string
	Primal       float64 // max(0, −min x)
	Dual         float64 // max(0, −min g_i) over the active (zero) set
	Slackness    float64 // max |x_i g_i|
	Stationarity float64 // max |g_i| over the passive set
	Tolerance    float64
	X            []float64
	Diag         Diagnostics
}

func (e *KktViolationError) Error() string {
	return fmt.Sprintf("lsq: NNLS KKT violation (%s): primal=%.3g dual=%.3g slack=%.3g stat=%.3g tol=%.3g",
		e.Reason, e.Primal, e.Dual, e.Slackness, e.Stationarity, e.Tolerance)
}

// Is reports kecerr.ErrKktViolation.
func (e *KktViolationError) Is(target error) bool { return target == kecerr.ErrKktViolation }

// Options configures solves. Build with DefaultOptions and Option functions.
type Options struct {
	Prefer          Method
	NonNeg          bool
	Rank            int     // SVD: cap on kept triplets (0 = cutoff only)
	Rcond           float64 // relative cutoff; ≤ 0 selects ε·max(m,n)
	RouteRcond      float64 // cutoff used when Solve routes to SVD by conditioning
	CondThreshold   float64
	RequireFullRank bool
	NNLSTol         float64
	MaxIter         int
	Logger          *slog.Logger
	Observer        func(Diagnostics)
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns QR preference, cond threshold 1e3, route rcond 1e-5,
// NNLS tol 1e-10 with 10000 iterations, no logger.
func DefaultOptions() Options {
	return Options{
		Prefer:        MethodQR,
		RouteRcond:    DefaultRouteRcond,
		CondThreshold: DefaultCondThreshold,
		NNLSTol:       DefaultNNLSTol,
		MaxIter:       DefaultNNLSMaxIter,
	}
}

// WithPrefer selects the method used for well-conditioned systems.
func WithPrefer(m Method) Option { return func(o *Options) { o.Prefer = m } }

// WithNonNeg forces NNLS routing.
func WithNonNeg(on bool) Option { return func(o *Options) { o.NonNeg = on } }

// WithRank caps the number of singular triplets kept by SVD solves.
func WithRank(k int) Option { return func(o *Options) { o.Rank = k } }

// WithRcond sets the relative singular-value / pivot cutoff.
func WithRcond(r float64) Option { return func(o *Options) { o.Rcond = r } }

// WithRouteRcond sets the SVD cutoff used when routing by conditioning.
func WithRouteRcond(r float64) Option { return func(o *Options) { o.RouteRcond = r } }

// WithCondThreshold sets the condition number above which Solve uses SVD.
func WithCondThreshold(c float64) Option { return func(o *Options) { o.CondThreshold = c } }

// WithRequireFullRank makes QR fail with RankDeficientError instead of truncating.
func WithRequireFullRank() Option { return func(o *Options) { o.RequireFullRank = true } }

// WithNNLSTolerance sets the NNLS optimality tolerance.
func WithNNLSTolerance(tol float64) Option { return func(o *Options) { o.NNLSTol = tol } }

// WithMaxIter sets the NNLS iteration budget.
func WithMaxIter(n int) Option { return func(o *Options) { o.MaxIter = n } }

// WithLogger emits one debug record per solve.
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithObserver receives every Diagnostics produced by Solve.
func WithObserver(fn func(Diagnostics)) Option { return func(o *Options) { o.Observer = fn } }

func resolve(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.NNLSTol <= 0 {
		o.NNLSTol = DefaultNNLSTol
	}
	if o.MaxIter <= 0 {
		o.MaxIter = DefaultNNLSMaxIter
	}
	if o.CondThreshold <= 0 {
		o.CondThreshold = DefaultCondThreshold
	}
	return o
}
