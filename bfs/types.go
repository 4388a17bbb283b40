// SPDX-License-Identifier: MIT
// Package: kec/bfs
//
// types.go - options, sentinel errors and the distance row.

package bfs

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors.
var (
	// ErrStartVertexNotFound is returned when the source ID is absent.
	ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

	// ErrGraphNil is returned if a nil graph or index is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrNeighbors is returned when fetching neighbors from the graph fails.
	ErrNeighbors = errors.New("bfs: neighbor iteration error")
)

const (
	// Unreached marks a vertex beyond the radius or in another component.
	Unreached = -1

	// CurvatureRadius bounds every distance between the closed
	// neighbourhoods of two adjacent vertices: x ~ u ~ v ~ y.
	CurvatureRadius = 3
)

// Option configures Distances.
type Option func(*Options)

// Options holds the traversal parameters.
type Options struct {
	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	err error
}

// DefaultOptions returns no depth limit.
func DefaultOptions() Options { return Options{} }

// WithMaxDepth stops the search at depth d: vertices farther than d hops
// stay Unreached. d == 0 means no limit; d < 0 yields ErrOptionViolation.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// Row is one single-source hop-distance row along an index.
type Row struct {
	Source  int   // index position of the source
	Radius  int   // 0 = unbounded
	Hops    []int // Unreached or hop count, by index position
	Reached int   // vertices with a finite entry, the source included
}

// Dist returns the hop count of position i as a float, +Inf when unreached.
func (r *Row) Dist(i int) float64 {
	if h := r.Hops[i]; h != Unreached {
		return float64(h)
	}
	return math.Inf(1)
}

// Floats returns the row as a ground-metric vector (+Inf when unreached).
func (r *Row) Floats() []float64 {
	out := make([]float64, len(r.Hops))
	for i := range out {
		out[i] = r.Dist(i)
	}
	return out
}
