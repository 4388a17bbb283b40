// SPDX-License-Identifier: MIT
// Package: kec/dijkstra
//
// types.go - sentinel errors and functional options.

package dijkstra

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrEmptySource indicates that the provided source vertex ID is empty.
	ErrEmptySource = errors.New("dijkstra: source vertex ID is empty")

	// ErrNilGraph indicates that a nil *core.Graph was passed to Dijkstra.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrVertexNotFound indicates that the source vertex does not exist.
	ErrVertexNotFound = errors.New("dijkstra: source vertex not found in graph")

	// ErrNegativeWeight indicates a negative or NaN edge length.
	ErrNegativeWeight = errors.New("dijkstra: negative edge length encountered")

	// ErrBadMaxDistance indicates a negative or NaN MaxDistance.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")

	// ErrBadInfThreshold indicates a zero, negative or NaN InfEdgeThreshold.
	ErrBadInfThreshold = errors.New("dijkstra: InfEdgeThreshold must be positive")
)

// Options configures the behavior of the Dijkstra algorithm.
//
// Source           – starting vertex ID (non-empty, present in the graph).
// ReturnPath       – if true, return the predecessor map; otherwise prev is nil.
// MaxDistance      – vertices farther than this are not settled. Default +Inf.
// InfEdgeThreshold – edges whose length is ≥ this are impassable. Default +Inf.
// Length           – maps a stored weight to an edge length. Default identity.
type Options struct {
	Source           string
	ReturnPath       bool
	MaxDistance      float64
	InfEdgeThreshold float64
	Length           func(weight float64) float64

	err error
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// Source sets the starting vertex ID.
func Source(str string) Option {
	return func(o *Options) { o.Source = str }
}

// WithReturnPath enables the predecessor map in the result.
func WithReturnPath() Option {
	return func(o *Options) { o.ReturnPath = true }
}

// WithMaxDistance stops settling vertices beyond max.
// A negative or NaN value surfaces ErrBadMaxDistance from Dijkstra.
func WithMaxDistance(max float64) Option {
	return func(o *Options) {
		if !(max >= 0) {
			o.err = fmt.Errorf("%w: %g", ErrBadMaxDistance, max)
			return
		}
		o.MaxDistance = max
	}
}

// WithInfEdgeThreshold treats edges with length ≥ threshold as missing.
// A non-positive or NaN value surfaces ErrBadInfThreshold from Dijkstra.
func WithInfEdgeThreshold(threshold float64) Option {
	return func(o *Options) {
		if !(threshold > 0) {
			o.err = fmt.Errorf("%w: %g", ErrBadInfThreshold, threshold)
			return
		}
		o.InfEdgeThreshold = threshold
	}
}

// WithLength sets the weight → length map (nil keeps the identity).
func WithLength(fn func(weight float64) float64) Option {
	return func(o *Options) {
		if fn != nil {
			o.Length = fn
		}
	}
}

// InverseWeight is the length 1/w used for association strengths.
func InverseWeight(w float64) float64 { return 1 / w }

// DefaultOptions returns Options for source with no caps and identity length.
func DefaultOptions(source string) Options {
	return Options{
		Source:           source,
		MaxDistance:      math.Inf(1),
		InfEdgeThreshold: math.Inf(1),
		Length:           func(w float64) float64 { return w },
	}
}
