// SPDX-License-Identifier: MIT
// Package: kec/stats
//
// types.go - defaults, errors and result types.

package stats

import (
	"errors"
	"fmt"
)

const (
	// DefaultResamples is the bootstrap resample count.
	DefaultResamples = 2000

	// DefaultAlpha gives 95% intervals.
	DefaultAlpha = 0.05

	// DefaultSeed is the bootstrap seed of the reference run configuration.
	DefaultSeed int64 = 1337
)

var (
	// ErrEmptySample indicates no finite observations.
	ErrEmptySample = errors.New("stats: no finite observations")

	// ErrBadAlpha indicates alpha outside (0, 1).
	ErrBadAlpha = errors.New("stats: alpha must lie in (0, 1)")

	// ErrBadResamples indicates a non-positive resample count.
	ErrBadResamples = errors.New("stats: resample count must be positive")

	// ErrBadPValue indicates a p-value outside [0, 1] or NaN.
	ErrBadPValue = errors.New("stats: p-value must lie in [0, 1]")

	// ErrNaNObserved indicates an undefined observed statistic.
	ErrNaNObserved = errors.New("stats: observed value is NaN")

	// ErrUnknownTail indicates an unsupported Tail.
	ErrUnknownTail = errors.New("stats: unknown tail")

	// ErrFitFailed indicates that every bootstrap refit failed.
	ErrFitFailed = errors.New("stats: every bootstrap fit failed")
)

// CI is a percentile confidence interval.
type CI struct {
	Estimate  float64 // statistic on the full sample
	Lower     float64
	Upper     float64
	Alpha     float64
	Resamples int // successful resamples
	Seed      int64
}

// Contains reports whether Lower ≤ x ≤ Upper.
func (c CI) Contains(x float64) bool { return c.Lower <= x && x <= c.Upper }

func (c CI) String() string {
	return fmt.Sprintf("%.6g [%.6g, %.6g] (%g%%, n=%d)", c.Estimate, c.Lower, c.Upper, 100*(1-c.Alpha), c.Resamples)
}

// Tail selects the alternative of an empirical test.
type Tail int

const (
	TwoSided Tail = iota
	Greater       // observed larger than the null
	Less          // observed smaller than the null
)

func (t Tail) String() string {
	switch t {
	case TwoSided:
		return "two-sided"
	case Greater:
		return "greater"
	case Less:
		return "less"
	}
	return fmt.Sprintf("Tail(%d)", int(t))
}

// NullComparison summarizes an observed value against its null ensemble.
type NullComparison struct {
	Observed float64
	Mean     float64
	SD       float64
	Z        float64 // NaN when SD is 0
	P        float64
	Tail     Tail
	Null     CI // central 1−alpha range of the null values
	N        int
}
