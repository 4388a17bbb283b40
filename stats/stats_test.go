// SPDX-License-Identifier: MIT

package stats_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/kec/lsq"
	"github.com/katalvlaran/kec/stats"
)

func seq(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i + 1)
	}
	return x
}

type BootstrapSuite struct {
	suite.Suite
}

func TestBootstrapSuite(t *testing.T) { suite.Run(t, new(BootstrapSuite)) }

func (s *BootstrapSuite) TestMeanInterval() {
	ci, err := stats.BootstrapCI(seq(100), stats.DefaultResamples, stats.DefaultAlpha, stats.DefaultSeed)
	s.Require().NoError(err)
	s.InDelta(50.5, ci.Estimate, 1e-12)
	s.True(ci.Contains(50.5))
	s.Less(ci.Lower, ci.Upper)
	// standard error of the mean is ≈ 2.9, so the interval is roughly ±5.7
	s.InDelta(11.3, ci.Upper-ci.Lower, 2.5)
	s.Equal(stats.DefaultResamples, ci.Resamples)
}

func (s *BootstrapSuite) TestSeedDeterminism() {
	x := seq(30)
	for i := range x {
		x[i] = math.Sqrt(x[i])
	}
	a, err := stats.BootstrapCI(x, 500, 0.1, 7)
	s.Require().NoError(err)
	b, err := stats.BootstrapCI(x, 500, 0.1, 7)
	s.Require().NoError(err)
	c, err := stats.BootstrapCI(x, 500, 0.1, 8)
	s.Require().NoError(err)
	s.Equal(a, b)
	s.NotEqual(a.Lower, c.Lower)
}

func (s *BootstrapSuite) TestConstantAndNaN() {
	ci, err := stats.BootstrapCI([]float64{3, math.NaN(), 3, 3}, 100, 0.05, 1)
	s.Require().NoError(err)
	s.Equal(3.0, ci.Lower)
	s.Equal(3.0, ci.Upper)

	maxStat := stats.WithStatistic(func(x []float64) float64 {
		m := math.Inf(-1)
		for _, v := range x {
			m = math.Max(m, v)
		}
		return m
	})
	ci, err = stats.BootstrapCI(seq(10), 200, 0.05, 1, maxStat)
	s.Require().NoError(err)
	s.Equal(10.0, ci.Estimate)
	s.LessOrEqual(ci.Upper, 10.0)
}

func (s *BootstrapSuite) TestInfiniteSamplesDropped() {
	ci, err := stats.BootstrapCI([]float64{1, math.Inf(1), 2, math.Inf(-1)}, 200, 0.05, 1)
	s.Require().NoError(err)
	s.InDelta(1.5, ci.Estimate, 1e-15)
	s.GreaterOrEqual(ci.Lower, 1.0)
	s.LessOrEqual(ci.Upper, 2.0)

	_, err = stats.BootstrapCI([]float64{math.Inf(1)}, 10, 0.05, 1)
	s.ErrorIs(err, stats.ErrEmptySample)
}

func (s *BootstrapSuite) TestErrors() {
	_, err := stats.BootstrapCI(nil, 10, 0.05, 1)
	s.ErrorIs(err, stats.ErrEmptySample)
	_, err = stats.BootstrapCI([]float64{math.NaN()}, 10, 0.05, 1)
	s.ErrorIs(err, stats.ErrEmptySample)
	_, err = stats.BootstrapCI(seq(3), 0, 0.05, 1)
	s.ErrorIs(err, stats.ErrBadResamples)
	_, err = stats.BootstrapCI(seq(3), 10, 1, 1)
	s.ErrorIs(err, stats.ErrBadAlpha)
}

// TestCoefficients bootstraps the slope and intercept of y = 1 + 2x + e.
func (s *BootstrapSuite) TestCoefficients() {
	const n = 40
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = float64(i) / 4
		y[i] = 1 + 2*x[i] + 0.1*math.Sin(float64(7*i))
	}
	fit := func(idx []int) ([]float64, error) {
		a := mat.NewDense(len(idx), 2, nil)
		b := make([]float64, len(idx))
		for r, i := range idx {
			a.Set(r, 0, 1)
			a.Set(r, 1, x[i])
			b[r] = y[i]
		}
		coef, _, err := lsq.Solve(a, b)
		return coef, err
	}
	cis, err := stats.BootstrapVector(n, fit, 300, 0.05, 3)
	s.Require().NoError(err)
	s.Require().Len(cis, 2)
	s.InDelta(1, cis[0].Estimate, 0.1)
	s.InDelta(2, cis[1].Estimate, 0.02)
	s.True(cis[1].Contains(cis[1].Estimate))
	s.Less(cis[1].Upper-cis[1].Lower, 0.05)

	_, err = stats.BootstrapVector(n, func([]int) ([]float64, error) { return nil, errors.New("singular") }, 10, 0.05, 1)
	s.Error(err)
	calls := 0
	flaky := func(idx []int) ([]float64, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("singular")
		}
		return []float64{1}, nil
	}
	_, err = stats.BootstrapVector(n, flaky, 10, 0.05, 1)
	s.ErrorIs(err, stats.ErrFitFailed)
}

func TestBHFDR(t *testing.T) {
	q, err := stats.BHFDR([]float64{0.01, 0.04, 0.03, 0.005})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.02, 0.04, 0.04, 0.02}, q, 1e-15)

	q, err = stats.BHFDR([]float64{0.9, 0.95})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.95, 0.95}, q, 1e-15)

	q, err = stats.BHFDR([]float64{1, 1, 0.5})
	require.NoError(t, err)
	for _, v := range q {
		require.LessOrEqual(t, v, 1.0)
	}

	q, err = stats.BHFDR(nil)
	require.NoError(t, err)
	require.Empty(t, q)

	_, err = stats.BHFDR([]float64{0.1, math.NaN()})
	require.ErrorIs(t, err, stats.ErrBadPValue)
	_, err = stats.BHFDR([]float64{1.2})
	require.ErrorIs(t, err, stats.ErrBadPValue)
}

func TestBHFDR_MonotoneInP(t *testing.T) {
	p := []float64{0.2, 0.001, 0.7, 0.04, 0.04, 0.3, 0.011, 0.5}
	q, err := stats.BHFDR(p)
	require.NoError(t, err)
	for i := range p {
		require.GreaterOrEqual(t, q[i], p[i])
		for j := range p {
			if p[i] <= p[j] {
				require.LessOrEqual(t, q[i], q[j], "p[%d]=%g p[%d]=%g", i, p[i], j, p[j])
			}
		}
	}
}

func TestEmpiricalPValue(t *testing.T) {
	null := make([]float64, 100)
	for i := range null {
		null[i] = float64(i)
	}
	p, err := stats.EmpiricalPValue(99, null, stats.Greater)
	require.NoError(t, err)
	require.InDelta(t, 2.0/101, p, 1e-15)
	p, err = stats.EmpiricalPValue(0, null, stats.Less)
	require.NoError(t, err)
	require.InDelta(t, 2.0/101, p, 1e-15)
	p, err = stats.EmpiricalPValue(99, null, stats.TwoSided)
	require.NoError(t, err)
	require.InDelta(t, 3.0/101, p, 1e-15)
	p, err = stats.EmpiricalPValue(1000, null, stats.Greater)
	require.NoError(t, err)
	require.InDelta(t, 1.0/101, p, 1e-15)

	_, err = stats.EmpiricalPValue(1, nil, stats.Greater)
	require.ErrorIs(t, err, stats.ErrEmptySample)
	_, err = stats.EmpiricalPValue(1, null, stats.Tail(9))
	require.ErrorIs(t, err, stats.ErrUnknownTail)
}

func TestEmpiricalPValue_NaNObserved(t *testing.T) {
	null := make([]float64, 999)
	for i := range null {
		null[i] = float64(i)
	}
	for _, tail := range []stats.Tail{stats.TwoSided, stats.Greater, stats.Less} {
		p, err := stats.EmpiricalPValue(math.NaN(), null, tail)
		require.ErrorIs(t, err, stats.ErrNaNObserved)
		require.True(t, math.IsNaN(p))
	}

	c, err := stats.CompareToNull(math.NaN(), null)
	require.ErrorIs(t, err, stats.ErrNaNObserved)
	require.True(t, math.IsNaN(c.P))
}

func TestCompareToNull(t *testing.T) {
	null := []float64{1, 2, 3, 4, 5}
	c, err := stats.CompareToNull(5, null, stats.WithTail(stats.Greater))
	require.NoError(t, err)
	require.Equal(t, 3.0, c.Mean)
	require.InDelta(t, math.Sqrt(2.5), c.SD, 1e-12)
	require.InDelta(t, 2/math.Sqrt(2.5), c.Z, 1e-12)
	require.InDelta(t, 2.0/6, c.P, 1e-15)
	require.Equal(t, 5, c.N)
	require.LessOrEqual(t, c.Null.Lower, c.Null.Upper)

	c, err = stats.CompareToNull(2, []float64{2, 2})
	require.NoError(t, err)
	require.True(t, math.IsNaN(c.Z))
	require.Equal(t, 1.0, c.P)

	_, err = stats.CompareToNull(1, null, stats.WithAlpha(0))
	require.ErrorIs(t, err, stats.ErrBadAlpha)
}
