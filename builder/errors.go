// SPDX-License-Identifier: MIT
// Package: kec/builder
//
// errors.go - sentinel errors.

package builder

import "errors"

var (
	// ErrTooFewVertices indicates a size parameter below the constructor minimum.
	ErrTooFewVertices = errors.New("builder: parameter too small")

	// ErrInvalidProbability indicates a probability outside [0,1].
	ErrInvalidProbability = errors.New("builder: probability out of range")

	// ErrNeedRandSource indicates a stochastic constructor without an RNG.
	ErrNeedRandSource = errors.New("builder: rng is required")

	// ErrConstructFailed indicates a nil constructor.
	ErrConstructFailed = errors.New("builder: construction failed")

	// ErrOptionViolation indicates a generated value the graph cannot hold.
	ErrOptionViolation = errors.New("builder: invalid option value")
)
