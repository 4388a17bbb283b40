// SPDX-License-Identifier: MIT
// Package: kec/pipeline
//
// outcome.go - per-vertex outcome regression on the KEC terms.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/kec/cg"
	"github.com/katalvlaran/kec/config"
	"github.com/katalvlaran/kec/kec"
	"github.com/katalvlaran/kec/lsq"
	"github.com/katalvlaran/kec/stats"
)

// ErrTooFewRows indicates fewer complete rows than coefficients.
var ErrTooFewRows = errors.New("pipeline: too few complete rows")

// outcomeCGIterations bounds the CGNR cross-check per coefficient.
const outcomeCGIterations = 10

// OutcomeFit is y ~ 1 + entropy + curvature [+ coherence] over vertices.
// Iterative is the CGNR solve of the full rows and may be unconverged.
type OutcomeFit struct {
	Outcome     string
	Beta        float64
	Terms       []string
	Coef        []stats.CI
	Diagnostics lsq.Diagnostics
	Iterative   *cg.Result
	N           int
}

// FitOutcome regresses the per-vertex outcome y on the KEC terms at beta,
// using vertices with a finite outcome and finite terms, and bootstraps the
// coefficients over rows. The fit is appended to res.Outcomes. Solves are
// reported to the telemetry passed to Run.
//
// Errors: *Error (stage outcomes) wrapping ErrTooFewRows, solver or
// bootstrap errors.
func (res *Result) FitOutcome(name string, beta float64, y map[string]float64, cfg *config.Config) (*OutcomeFit, error) {
	rep := res.Report
	fail := func(err error) (*OutcomeFit, error) {
		e := &Error{Stage: StageOutcomes, Metric: name, Beta: beta, HasBeta: true, Err: err}
		if rep != nil {
			e.GraphID = rep.GraphID
		}
		if cfg != nil && cfg.Randomness.Bootstrap.Seed != nil {
			e.Seed = *cfg.Randomness.Bootstrap.Seed
		}
		return nil, e
	}
	if rep == nil || cfg == nil {
		return fail(errors.New("missing report or config"))
	}
	var br *kec.BetaReport
	for i := range rep.Betas {
		if rep.Betas[i].Beta == beta {
			br = &rep.Betas[i]
		}
	}
	if br == nil || br.Entropy == nil || br.Curvature == nil {
		return fail(fmt.Errorf("beta %g not computed", beta))
	}
	terms := []string{"intercept", string(kec.KindEntropy), string(kec.KindCurvature)}
	if rep.Coherence != nil {
		terms = append(terms, string(kec.KindCoherence))
	}

	var xs [][]float64
	var ys []float64
	for i, id := range rep.IDs {
		yv, ok := y[id]
		if !ok || math.IsNaN(yv) {
			continue
		}
		row := []float64{1, br.Entropy.Entropy[i], br.Curvature.Node[i]}
		if rep.Coherence != nil {
			row = append(row, rep.Coherence.Node[i])
		}
		if !allFinite(row) {
			continue
		}
		xs = append(xs, row)
		ys = append(ys, yv)
	}
	k := len(terms)
	if len(xs) <= k {
		return fail(fmt.Errorf("%d rows for %d terms: %w", len(xs), k, ErrTooFewRows))
	}

	solver := cfg.SolverOptions()
	var iterOpts []cg.Option
	if res.metrics != nil {
		solver = append(solver, lsq.WithObserver(res.metrics.ObserveSolve))
		iterOpts = append(iterOpts, cg.WithObserver(res.metrics.ObserveCG))
	}
	design := func(idx []int) (*mat.Dense, []float64) {
		a := mat.NewDense(len(idx), k, nil)
		b := make([]float64, len(idx))
		for r, i := range idx {
			a.SetRow(r, xs[i])
			b[r] = ys[i]
		}
		return a, b
	}
	fit := func(idx []int) ([]float64, lsq.Diagnostics, error) {
		a, b := design(idx)
		return lsq.Solve(a, b, solver...)
	}
	all := make([]int, len(xs))
	for i := range all {
		all[i] = i
	}
	_, diag, err := fit(all)
	if err != nil {
		return fail(err)
	}
	a, b := design(all)
	iterative, _ := cg.LeastSquares(context.Background(), a, b, append(iterOpts, cg.WithMaxIter(outcomeCGIterations*k))...)
	boot := cfg.Randomness.Bootstrap
	cis, err := stats.BootstrapVector(len(xs), func(idx []int) ([]float64, error) {
		x, _, err := fit(idx)
		return x, err
	}, boot.N, boot.Alpha, *boot.Seed)
	if err != nil {
		return fail(err)
	}
	out := &OutcomeFit{Outcome: name, Beta: beta, Terms: terms, Coef: cis, Diagnostics: diag, Iterative: iterative, N: len(xs)}
	res.Outcomes = append(res.Outcomes, out)
	return out, nil
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
