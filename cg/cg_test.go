// SPDX-License-Identifier: MIT

package cg_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/kec/cg"
	"github.com/katalvlaran/kec/kecerr"
	"github.com/katalvlaran/kec/matrix"
)

// poisson returns the n×n tridiagonal (−1, 2, −1) matrix.
func poisson(t *testing.T, n int) *matrix.CSR {
	t.Helper()
	var ts []matrix.Triplet
	for i := 0; i < n; i++ {
		ts = append(ts, matrix.Triplet{Row: i, Col: i, Value: 2})
		if i > 0 {
			ts = append(ts, matrix.Triplet{Row: i, Col: i - 1, Value: -1}, matrix.Triplet{Row: i - 1, Col: i, Value: -1})
		}
	}
	a, err := matrix.NewCSR(n, n, ts)
	require.NoError(t, err)
	return a
}

func diagonal(t *testing.T, d ...float64) *matrix.CSR {
	t.Helper()
	ts := make([]matrix.Triplet, len(d))
	for i, v := range d {
		ts[i] = matrix.Triplet{Row: i, Col: i, Value: v}
	}
	a, err := matrix.NewCSR(len(d), len(d), ts)
	require.NoError(t, err)
	return a
}

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

type CGSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *CGSuite) SetupTest() { s.ctx = context.Background() }

func (s *CGSuite) TestDiagonalSPD_OneIteration() {
	a := diagonal(s.T(), 2, 5, 10, 49)
	b := []float64{1, 2, 3, 4}
	m, err := cg.ChoosePreconditioner(a, cg.ModeAuto)
	s.Require().NoError(err)
	s.Equal("jacobi", m.Name())

	res, err := cg.Solve(s.ctx, a, b, cg.WithPreconditioner(m))
	s.Require().NoError(err)
	s.True(res.Converged)
	s.Equal(1, res.Iterations)
	s.InDeltaSlice([]float64{0.5, 0.4, 0.3, 4.0 / 49}, res.X, 1e-15)
	s.Len(res.ResidualHistory, 2)
}

func (s *CGSuite) TestPoisson_AutoUsesIChol() {
	a := poisson(s.T(), 50)
	m, err := cg.ChoosePreconditioner(a, cg.ModeAuto)
	s.Require().NoError(err)
	s.Equal("ichol0", m.Name())

	res, err := cg.Solve(s.ctx, a, ones(50), cg.WithPreconditioner(m))
	s.Require().NoError(err)
	s.LessOrEqual(res.Iterations, 2)

	check := make([]float64, 50)
	a.MulVecTo(check, res.X)
	s.InDeltaSlice(ones(50), check, 1e-8)
}

func (s *CGSuite) TestPoisson_SSORBeatsIdentity() {
	a := poisson(s.T(), 60)
	ssor, err := cg.NewSSOR(a, 1.5)
	s.Require().NoError(err)
	s.Equal(1.5, ssor.Omega())

	plain, err := cg.Solve(s.ctx, a, ones(60))
	s.Require().NoError(err)
	pre, err := cg.Solve(s.ctx, a, ones(60), cg.WithPreconditioner(ssor))
	s.Require().NoError(err)
	s.Less(pre.Iterations, plain.Iterations)
	s.Equal("identity", plain.Preconditioner)
}

func (s *CGSuite) TestNonConvergenceKeepsBestAndHistory() {
	a := poisson(s.T(), 50)
	res, err := cg.Solve(s.ctx, a, ones(50), cg.WithMaxIter(3))
	s.Require().ErrorIs(err, kecerr.ErrNonConvergence)
	var nc *cg.NonConvergenceError
	s.Require().ErrorAs(err, &nc)
	s.Equal(3, nc.Iterations)
	s.Len(nc.History, 4)
	s.Len(nc.Best, 50)
	s.False(res.Converged)
	s.Equal(nc.Best, res.X)
	for _, r := range nc.History {
		s.GreaterOrEqual(r, nc.BestResidual)
	}
}

func (s *CGSuite) TestCancellationReturnsPartial() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	res, err := cg.Solve(ctx, poisson(s.T(), 10), ones(10))
	s.Require().ErrorIs(err, kecerr.ErrCancelled)
	s.Require().ErrorIs(err, context.Canceled)
	s.Require().NotNil(res)
	s.Equal(0, res.Iterations)
	s.Len(res.ResidualHistory, 1)
}

func (s *CGSuite) TestIndefiniteIsRejected() {
	_, err := cg.Solve(s.ctx, diagonal(s.T(), -1, -2), []float64{1, 1})
	s.ErrorIs(err, cg.ErrNotPositiveDefinite)
}

func (s *CGSuite) TestZeroRHS() {
	res, err := cg.Solve(s.ctx, poisson(s.T(), 4), make([]float64, 4))
	s.Require().NoError(err)
	s.Equal(0, res.Iterations)
	s.Equal(make([]float64, 4), res.X)
}

func (s *CGSuite) TestValidation() {
	_, err := cg.Solve(s.ctx, poisson(s.T(), 3), []float64{1})
	s.ErrorIs(err, cg.ErrDimensionMismatch)
	_, err = cg.Solve(s.ctx, poisson(s.T(), 3), ones(3), cg.WithTol(0))
	s.ErrorIs(err, cg.ErrBadOption)
	_, err = cg.NewSSOR(poisson(s.T(), 3), 2)
	s.ErrorIs(err, cg.ErrBadOmega)
	_, err = cg.NewApproxCholesky(diagonal(s.T(), 1, -1))
	s.ErrorIs(err, cg.ErrFactorizationBreakdown)
	_, err = cg.ChoosePreconditioner(poisson(s.T(), 3), cg.Mode("bogus"))
	s.ErrorIs(err, cg.ErrBadOption)
}

func (s *CGSuite) TestLeastSquares() {
	a := mat.NewDense(3, 2, []float64{1, 0, 1, 1, 1, 2})
	res, err := cg.LeastSquares(s.ctx, a, []float64{1, 3, 5}, cg.WithTol(1e-12), cg.WithMaxIter(10))
	s.Require().NoError(err)
	s.InDeltaSlice([]float64{1, 2}, res.X, 1e-8)
}

func TestCGSuite(t *testing.T) {
	suite.Run(t, new(CGSuite))
}

func TestChoosePreconditioner_NonSPDFallsBackToSSOR(t *testing.T) {
	// symmetric, positive diagonal, indefinite
	a, err := matrix.NewCSR(2, 2, []matrix.Triplet{
		{Row: 0, Col: 0, Value: 1}, {Row: 1, Col: 1, Value: 1},
		{Row: 0, Col: 1, Value: 2}, {Row: 1, Col: 0, Value: 2},
	})
	require.NoError(t, err)
	m, err := cg.ChoosePreconditioner(a, cg.ModeAuto)
	require.NoError(t, err)
	require.Equal(t, "ssor", m.Name())
}
