// SPDX-License-Identifier: MIT

// Package kecerr - the failure taxonomy shared by every kec package.
//
// Purpose:
//   - Sentinel kinds (ErrRankDeficient, ErrKktViolation, ...) that callers
//     branch on with errors.Is, regardless of which package produced the error.
//   - Typed errors for failures that are not owned by a single solver package
//     (EmptyGraphError, DegenerateGraphError, CancelledError). Solver-specific
//     typed errors (lsq.RankDeficientError, cg.NonConvergenceError, ...) live in
//     their packages and report their kind through an Is method.
//
// AI-Hints:
//   - errors.Is(err, kecerr.ErrDegenerateGraph) to detect any degenerate-graph
//     failure; errors.As(err, &*kecerr.DegenerateGraphError) for the seed.
package kecerr

import (
	"errors"
	"fmt"
)

// Failure kinds.
var (
	ErrRankDeficient   = errors.New("kec: rank deficient")
	ErrKktViolation    = errors.New("kec: KKT conditions violated")
	ErrNonConvergence  = errors.New("kec: iteration did not converge")
	ErrEmptyGraph      = errors.New("kec: empty graph")
	ErrDegenerateGraph = errors.New("kec: degenerate graph")
	ErrCancelled       = errors.New("kec: cancelled")
)

// EmptyGraphError reports an operation that needs at least one edge (or
// vertex) but received none.
type EmptyGraphError struct {
	Op       string // operation that rejected the graph
	Vertices int
	Edges    int
}

func (e *EmptyGraphError) Error() string {
	return fmt.Sprintf("%s: empty graph (vertices=%d, edges=%d)", e.Op, e.Vertices, e.Edges)
}

// Is reports ErrEmptyGraph.
func (e *EmptyGraphError) Is(target error) bool { return target == ErrEmptyGraph }

// DegenerateGraphError reports a graph with no usable degree-preserving null:
// too few edges, an exhausted swap budget, or an isolated vertex in an
// ensemble.
type DegenerateGraphError struct {
	Op       string
	Reason   string
	Vertex   string // offending vertex, if any
	Seed     int64
	Swaps    int // successful swaps before giving up
	Target   int
	Attempts int
}

func (e *DegenerateGraphError) Error() string {
	msg := fmt.Sprintf("%s: degenerate graph: %s (seed=%d", e.Op, e.Reason, e.Seed)
	if e.Vertex != "" {
		msg += fmt.Sprintf(", vertex=%q", e.Vertex)
	}
	if e.Target > 0 {
		msg += fmt.Sprintf(", swaps=%d/%d, attempts=%d", e.Swaps, e.Target, e.Attempts)
	}
	return msg + ")"
}

// Is reports ErrDegenerateGraph.
func (e *DegenerateGraphError) Is(target error) bool { return target == ErrDegenerateGraph }

// CancelledError reports a cooperative cancellation. Progress counts the
// completed units of work (iterations, edges, shuffles); the caller receives
// the partial result alongside this error.
type CancelledError struct {
	Op       string
	Progress int
	Cause    error // ctx.Err()
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("%s: cancelled after %d steps: %v", e.Op, e.Progress, e.Cause)
}

// Is reports ErrCancelled.
func (e *CancelledError) Is(target error) bool { return target == ErrCancelled }

// Unwrap exposes the context error (context.Canceled or DeadlineExceeded).
func (e *CancelledError) Unwrap() error { return e.Cause }
