// SPDX-License-Identifier: MIT
// Package: kec/kahan
//
// kahan.go - Accumulator and the slice reductions built on it.

package kahan

import (
	"errors"
	"fmt"
	"math"
)

// ErrLengthMismatch is returned by Dot when the operands differ in length.
var ErrLengthMismatch = errors.New("kahan: length mismatch")

// Accumulator is a streaming compensated sum. The zero value is ready to use.
//
// Accumulator is not safe for concurrent use; every goroutine keeps its own.
type Accumulator struct {
	sum     float64 // high-order running sum
	comp    float64 // low-order compensation
	special float64 // IEEE channel for NaN/±Inf (addends or overflow)
	dirty   bool    // special has been touched
}

// Add folds x into the running sum.
func (a *Accumulator) Add(x float64) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		a.special += x
		a.dirty = true
		return
	}
	t := a.sum + x
	if math.IsInf(t, 0) {
		// finite overflow: report as the naive sum would
		a.special += t
		a.dirty = true
		return
	}
	if math.Abs(a.sum) >= math.Abs(x) {
		a.comp += (a.sum - t) + x
	} else {
		a.comp += (x - t) + a.sum
	}
	a.sum = t
}

// AddProduct folds x*y into the running sum.
func (a *Accumulator) AddProduct(x, y float64) { a.Add(x * y) }

// Sum returns the compensated total accumulated so far.
func (a *Accumulator) Sum() float64 {
	if a.dirty {
		return a.special
	}
	return a.sum + a.comp
}

// Reset clears the accumulator for reuse.
func (a *Accumulator) Reset() { *a = Accumulator{} }

// Sum returns the compensated sum of values. An empty slice sums to 0.
//
// Complexity: O(n) time, O(1) space.
func Sum(values []float64) float64 {
	var acc Accumulator
	for _, v := range values {
		acc.Add(v)
	}
	return acc.Sum()
}

// Dot returns the compensated inner product Σ a_i·b_i.
//
// Errors: ErrLengthMismatch when len(a) != len(b).
func Dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("Dot: len(a)=%d len(b)=%d: %w", len(a), len(b), ErrLengthMismatch)
	}
	return dot(a, b), nil
}

// MustDot is Dot for callers that already guarantee equal lengths
// (internal solver loops). It panics on mismatch.
func MustDot(a, b []float64) float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("kahan: MustDot len(a)=%d len(b)=%d", len(a), len(b)))
	}
	return dot(a, b)
}

func dot(a, b []float64) float64 {
	var acc Accumulator
	for i := range a {
		acc.Add(a[i] * b[i])
	}
	return acc.Sum()
}

// NormSquared returns the compensated Σ v_i².
func NormSquared(values []float64) float64 {
	var acc Accumulator
	for _, v := range values {
		acc.Add(v * v)
	}
	return acc.Sum()
}

// Norm returns the Euclidean norm sqrt(NormSquared(values)).
func Norm(values []float64) float64 {
	return math.Sqrt(NormSquared(values))
}
