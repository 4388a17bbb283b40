// SPDX-License-Identifier: MIT
// Package: kec/stats
//
// bootstrap.go - percentile bootstrap over observations and over rows.

package stats

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// BootstrapOption configures BootstrapCI.
type BootstrapOption func(*bootstrapConfig)

type bootstrapConfig struct {
	statistic func([]float64) float64
}

// WithStatistic replaces the default statistic (the mean).
func WithStatistic(fn func([]float64) float64) BootstrapOption {
	return func(c *bootstrapConfig) {
		if fn != nil {
			c.statistic = fn
		}
	}
}

func mean(x []float64) float64 { return stat.Mean(x, nil) }

// finite drops NaN and ±Inf.
func finite(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

func checkCI(op string, nResamples int, alpha float64) error {
	if nResamples < 1 {
		return fmt.Errorf("%s: n=%d: %w", op, nResamples, ErrBadResamples)
	}
	if !(alpha > 0 && alpha < 1) {
		return fmt.Errorf("%s: alpha=%g: %w", op, alpha, ErrBadAlpha)
	}
	return nil
}

// percentile returns the alpha/2 and 1−alpha/2 quantiles; dist is sorted in place.
func percentile(dist []float64, alpha float64) (lo, hi float64) {
	sort.Float64s(dist)
	return stat.Quantile(alpha/2, stat.LinInterp, dist, nil), stat.Quantile(1-alpha/2, stat.LinInterp, dist, nil)
}

// BootstrapCI resamples samples with replacement nResamples times and
// returns the percentile interval of the statistic.
//
// Errors: ErrEmptySample, ErrBadResamples, ErrBadAlpha.
//
// Complexity: O(nResamples·n) plus the statistic.
func BootstrapCI(samples []float64, nResamples int, alpha float64, seed int64, opts ...BootstrapOption) (CI, error) {
	const op = "stats.BootstrapCI"
	cfg := bootstrapConfig{statistic: mean}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := checkCI(op, nResamples, alpha); err != nil {
		return CI{}, err
	}
	x := finite(samples)
	if len(x) == 0 {
		return CI{}, fmt.Errorf("%s: %w", op, ErrEmptySample)
	}
	rng := rand.New(rand.NewSource(seed))
	buf := make([]float64, len(x))
	dist := make([]float64, nResamples)
	for b := range dist {
		for i := range buf {
			buf[i] = x[rng.Intn(len(x))]
		}
		dist[b] = cfg.statistic(buf)
	}
	lo, hi := percentile(dist, alpha)
	return CI{Estimate: cfg.statistic(x), Lower: lo, Upper: hi, Alpha: alpha, Resamples: nResamples, Seed: seed}, nil
}

// BootstrapVector resamples row indices 0..rows-1 with replacement and refits
// a coefficient vector on each resample. Failing refits are skipped. One CI
// is returned per coefficient of the full-sample fit.
//
// Errors: ErrEmptySample (rows < 1), ErrBadResamples, ErrBadAlpha, the
// full-sample fit error, ErrFitFailed.
func BootstrapVector(rows int, fit func(idx []int) ([]float64, error), nResamples int, alpha float64, seed int64) ([]CI, error) {
	const op = "stats.BootstrapVector"
	if err := checkCI(op, nResamples, alpha); err != nil {
		return nil, err
	}
	if rows < 1 {
		return nil, fmt.Errorf("%s: rows=%d: %w", op, rows, ErrEmptySample)
	}
	all := make([]int, rows)
	for i := range all {
		all[i] = i
	}
	point, err := fit(all)
	if err != nil {
		return nil, fmt.Errorf("%s: full sample: %w", op, err)
	}
	k := len(point)
	dists := make([][]float64, k)
	rng := rand.New(rand.NewSource(seed))
	idx := make([]int, rows)
	for b := 0; b < nResamples; b++ {
		for i := range idx {
			idx[i] = rng.Intn(rows)
		}
		coef, err := fit(idx)
		if err != nil || len(coef) != k {
			continue
		}
		for j, c := range coef {
			dists[j] = append(dists[j], c)
		}
	}
	if k > 0 && len(dists[0]) == 0 {
		return nil, fmt.Errorf("%s: %d resamples: %w", op, nResamples, ErrFitFailed)
	}
	out := make([]CI, k)
	for j := range out {
		lo, hi := percentile(dists[j], alpha)
		out[j] = CI{Estimate: point[j], Lower: lo, Upper: hi, Alpha: alpha, Resamples: len(dists[j]), Seed: seed}
	}
	return out, nil
}
