// SPDX-License-Identifier: MIT
// Package: kec/stats
//
// null.go - observed value versus null ensemble.

package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// EmpiricalPValue returns (1 + #extreme)/(1 + N) over the finite null
// values. Two-sided extremity is measured from the null mean. A NaN
// observation has no p-value.
//
// Errors: ErrNaNObserved, ErrEmptySample, ErrUnknownTail.
func EmpiricalPValue(observed float64, null []float64, tail Tail) (float64, error) {
	const op = "stats.EmpiricalPValue"
	if math.IsNaN(observed) {
		return math.NaN(), fmt.Errorf("%s: %w", op, ErrNaNObserved)
	}
	x := finite(null)
	if len(x) == 0 {
		return math.NaN(), fmt.Errorf("%s: %w", op, ErrEmptySample)
	}
	var extreme int
	switch tail {
	case Greater:
		for _, v := range x {
			if v >= observed {
				extreme++
			}
		}
	case Less:
		for _, v := range x {
			if v <= observed {
				extreme++
			}
		}
	case TwoSided:
		mu := stat.Mean(x, nil)
		d := math.Abs(observed - mu)
		for _, v := range x {
			if math.Abs(v-mu) >= d {
				extreme++
			}
		}
	default:
		return math.NaN(), fmt.Errorf("%s: %v: %w", op, tail, ErrUnknownTail)
	}
	return float64(1+extreme) / float64(1+len(x)), nil
}

// CompareOption configures CompareToNull.
type CompareOption func(*compareConfig)

type compareConfig struct {
	tail  Tail
	alpha float64
}

// WithTail sets the alternative (default TwoSided).
func WithTail(t Tail) CompareOption { return func(c *compareConfig) { c.tail = t } }

// WithAlpha sets the width of the null range (default DefaultAlpha).
func WithAlpha(a float64) CompareOption { return func(c *compareConfig) { c.alpha = a } }

// CompareToNull reports mean, SD, z-score, empirical p-value and the central
// null range for observed.
//
// Errors: ErrNaNObserved, ErrEmptySample, ErrBadAlpha, ErrUnknownTail.
func CompareToNull(observed float64, null []float64, opts ...CompareOption) (NullComparison, error) {
	const op = "stats.CompareToNull"
	cfg := compareConfig{tail: TwoSided, alpha: DefaultAlpha}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !(cfg.alpha > 0 && cfg.alpha < 1) {
		return NullComparison{}, fmt.Errorf("%s: alpha=%g: %w", op, cfg.alpha, ErrBadAlpha)
	}
	p, err := EmpiricalPValue(observed, null, cfg.tail)
	if err != nil {
		return NullComparison{Observed: observed, P: math.NaN(), Z: math.NaN(), Tail: cfg.tail}, err
	}
	x := finite(null)
	mu, sd := stat.MeanStdDev(x, nil)
	if len(x) == 1 {
		sd = 0
	}
	z := math.NaN()
	if sd > 0 {
		z = (observed - mu) / sd
	}
	sort.Float64s(x)
	lo := stat.Quantile(cfg.alpha/2, stat.LinInterp, x, nil)
	hi := stat.Quantile(1-cfg.alpha/2, stat.LinInterp, x, nil)
	return NullComparison{
		Observed: observed, Mean: mu, SD: sd, Z: z, P: p, Tail: cfg.tail,
		Null: CI{Estimate: mu, Lower: lo, Upper: hi, Alpha: cfg.alpha, Resamples: len(x)},
		N:    len(x),
	}, nil
}
