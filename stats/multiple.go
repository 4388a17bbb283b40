// SPDX-License-Identifier: MIT
// Package: kec/stats
//
// multiple.go - Benjamini–Hochberg false discovery rate.

package stats

import (
	"fmt"
	"math"
	"sort"
)

// BHFDR returns Benjamini–Hochberg q-values in the input order:
// q_(i) = min_{j ≥ i} p_(j)·m/j over ascending p, capped at 1.
//
// Errors: ErrBadPValue.
//
// Complexity: O(m log m).
func BHFDR(p []float64) ([]float64, error) {
	m := len(p)
	for i, v := range p {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return nil, fmt.Errorf("stats.BHFDR: p[%d]=%g: %w", i, v, ErrBadPValue)
		}
	}
	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return p[order[a]] < p[order[b]] })

	q := make([]float64, m)
	run := 1.0
	for r := m - 1; r >= 0; r-- {
		i := order[r]
		run = math.Min(run, p[i]*float64(m)/float64(r+1))
		q[i] = run
	}
	return q, nil
}
