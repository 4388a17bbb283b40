// SPDX-License-Identifier: MIT

package lsq_test

import (
	"bytes"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/kec/kecerr"
	"github.com/katalvlaran/kec/lsq"
)

func randomDense(rng *rand.Rand, m, n int) *mat.Dense {
	data := make([]float64, m*n)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return mat.NewDense(m, n, data)
}

func randomVec(rng *rand.Rand, n int, scale float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = scale * rng.NormFloat64()
	}
	return v
}

func relDiff(a, b []float64) float64 {
	d := make([]float64, len(a))
	floats.SubTo(d, a, b)
	return floats.Norm(d, 2) / math.Max(floats.Norm(b, 2), 1e-300)
}

func referenceSolve(t *testing.T, a *mat.Dense, b []float64) []float64 {
	t.Helper()
	var x mat.Dense
	require.NoError(t, x.Solve(a, mat.NewVecDense(len(b), b)))
	return mat.Col(nil, 0, &x)
}

func TestWellConditioned_AgreesWithReference(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		a := randomDense(rng, 30, 5)
		b := randomVec(rng, 30, 1)
		require.LessOrEqual(t, lsq.ConditionNumber(a), 10.0)
		ref := referenceSolve(t, a, b)

		xq, dq, err := lsq.SolveQR(a, b)
		require.NoError(t, err)
		require.Equal(t, lsq.MethodQR, dq.Method)
		require.Equal(t, 5, dq.Rank)
		require.LessOrEqual(t, relDiff(xq, ref), 1e-8)

		xs, ds, err := lsq.SolveSVD(a, b, 0, 0)
		require.NoError(t, err)
		require.Equal(t, 5, ds.Rank)
		require.LessOrEqual(t, relDiff(xs, ref), 1e-8)
		require.InDelta(t, dq.ResidualNorm, ds.ResidualNorm, 1e-8*math.Max(1, dq.ResidualNorm))

		require.Equal(t, lsq.MethodQR, lsq.ChooseSolver(a, "", false))
	}
}

// orthonormalCols returns the first n columns of the Q factor of a random
// m×n Gaussian matrix.
func orthonormalCols(rng *rand.Rand, m, n int) *mat.Dense {
	var qr mat.QR
	qr.Factorize(randomDense(rng, m, n))
	var q mat.Dense
	qr.QTo(&q)
	return mat.DenseCopyOf(q.Slice(0, m, 0, n))
}

// withSpectrum builds U·diag(sigma)·Vᵀ with orthonormal U (m×n) and V (n×n).
func withSpectrum(rng *rand.Rand, m int, sigma []float64) *mat.Dense {
	n := len(sigma)
	u := orthonormalCols(rng, m, n)
	v := orthonormalCols(rng, n, n)
	var us, a mat.Dense
	us.Mul(u, mat.NewDiagDense(n, sigma))
	a.Mul(&us, v.T())
	return &a
}

func TestConditionNumber_KnownSpectrum(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := withSpectrum(rng, 30, []float64{1, 1e-2, 1e-4, 1e-6})
	require.InEpsilon(t, 1e6, lsq.ConditionNumber(a), 1e-6)
	require.Equal(t, lsq.MethodSVD, lsq.ChooseSolver(a, lsq.MethodQR, false))

	b := randomVec(rng, 30, 1)
	_, diag, err := lsq.Solve(a, b)
	require.NoError(t, err)
	require.Equal(t, lsq.MethodSVD, diag.Method)
	require.InEpsilon(t, 1e6, diag.Condition, 1e-6)
	// the route cutoff 1e-5 drops σ = 1e-6 only
	require.Equal(t, 3, diag.Rank)

	well := withSpectrum(rng, 30, []float64{3, 2, 1, 0.1})
	require.InEpsilon(t, 30, lsq.ConditionNumber(well), 1e-9)
	require.Equal(t, lsq.MethodQR, lsq.ChooseSolver(well, "", false))
}

func TestIllConditioned_RoutesToSVDAndIsStable(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const m = 50
	data := make([]float64, 0, 2*m)
	for i := 0; i < m; i++ {
		a1 := rng.NormFloat64()
		data = append(data, a1, a1+1e-6*rng.NormFloat64())
	}
	a := mat.NewDense(m, 2, data)
	cond := lsq.ConditionNumber(a)
	require.Greater(t, cond, 1e5)
	require.False(t, math.IsInf(cond, 1))
	require.Equal(t, lsq.MethodSVD, lsq.ChooseSolver(a, lsq.MethodQR, false))

	var b0 mat.VecDense
	b0.MulVec(a, mat.NewVecDense(2, []float64{1, 1}))

	var svdX0, neX0 []float64
	for trial := 0; trial < 100; trial++ {
		b := make([]float64, m)
		for i := range b {
			b[i] = b0.AtVec(i) + 1e-3*rng.NormFloat64()
		}
		xs, diag, err := lsq.Solve(a, b)
		require.NoError(t, err)
		require.Equal(t, lsq.MethodSVD, diag.Method)
		require.Equal(t, 1, diag.Rank)
		svdX0 = append(svdX0, xs[0])

		var ata, atb mat.Dense
		ata.Mul(a.T(), a)
		atb.Mul(a.T(), mat.NewDense(m, 1, b))
		var xne mat.Dense
		if err := xne.Solve(&ata, &atb); err != nil {
			var c mat.Condition
			require.ErrorAs(t, err, &c)
		}
		neX0 = append(neX0, xne.At(0, 0))
	}
	require.Less(t, stat.Variance(svdX0, nil), stat.Variance(neX0, nil))
}

func TestNNLS_NegativeTargetGivesZero(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	x, diag, err := lsq.NNLS(a, []float64{-1, -1})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0}, x)
	require.Equal(t, lsq.MethodNNLS, diag.Method)
	require.Equal(t, 0, diag.Rank)
	require.InDelta(t, math.Sqrt2, diag.ResidualNorm, 1e-15)
}

func TestNNLS_ActiveConstraint(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	x, _, err := lsq.NNLS(a, []float64{1, -1})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{1, 0}, x, 1e-12)
}

func TestNNLS_RecoversNonNegativeSolution(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := randomDense(rng, 20, 3)
	var b mat.VecDense
	b.MulVec(a, mat.NewVecDense(3, []float64{1, 2, 0.5}))
	x, diag, err := lsq.NNLS(a, b.RawVector().Data)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{1, 2, 0.5}, x, 1e-8)
	require.Equal(t, 3, diag.Rank)
	require.Greater(t, diag.Iterations, 0)
}

func TestNNLS_BudgetExhaustedIsKktViolation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := randomDense(rng, 20, 3)
	var b mat.VecDense
	b.MulVec(a, mat.NewVecDense(3, []float64{1, 2, 0.5}))
	x, _, err := lsq.NNLS(a, b.RawVector().Data, lsq.WithMaxIter(1))
	require.ErrorIs(t, err, kecerr.ErrKktViolation)
	var kerr *lsq.KktViolationError
	require.ErrorAs(t, err, &kerr)
	require.Equal(t, "iteration budget exhausted", kerr.Reason)
	require.Equal(t, x, kerr.X)
	for _, v := range x {
		require.GreaterOrEqual(t, v, 0.0)
	}
}

func TestQR_RankDeficient(t *testing.T) {
	a := mat.NewDense(3, 2, []float64{1, 0, 2, 0, 3, 0})
	b := []float64{1, 2, 3}

	_, _, err := lsq.HouseholderQR(a, true)
	require.ErrorIs(t, err, kecerr.ErrRankDeficient)
	var rerr *lsq.RankDeficientError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, 1, rerr.Column)

	_, _, err = lsq.SolveQR(a, b, lsq.WithRequireFullRank())
	require.ErrorIs(t, err, kecerr.ErrRankDeficient)

	x, diag, err := lsq.SolveQR(a, b)
	require.NoError(t, err)
	require.Equal(t, 1, diag.Rank)
	require.True(t, math.IsInf(diag.Condition, 1))
	require.InDeltaSlice(t, []float64{1, 0}, x, 1e-12)
	require.NotEmpty(t, diag.Notes)
}

func TestHouseholderQR_Reconstructs(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := randomDense(rng, 6, 4)
	q, r, err := lsq.HouseholderQR(a, true)
	require.NoError(t, err)
	rows, cols := q.Dims()
	require.Equal(t, 6, rows)
	require.Equal(t, 4, cols)
	var qr mat.Dense
	qr.Mul(q, r)
	require.True(t, mat.EqualApprox(a, &qr, 1e-12))
	var qtq mat.Dense
	qtq.Mul(q.T(), q)
	require.True(t, mat.EqualApprox(eye(4), &qtq, 1e-12))

	_, _, err = lsq.HouseholderQR(mat.NewDense(2, 3, nil), false)
	require.ErrorIs(t, err, lsq.ErrShape)
}

func eye(n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}
	return d
}

func TestSolveQR_Underdetermined(t *testing.T) {
	x, diag, err := lsq.SolveQR(mat.NewDense(1, 2, []float64{1, 1}), []float64{2})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{1, 1}, x, 1e-12)
	require.InDelta(t, 0, diag.ResidualNorm, 1e-12)
}

func TestTruncatedSVD(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{3, 0, 0, 0, 2, 0, 0, 0, 1})
	f, err := lsq.TruncatedSVD(a, 2, 0)
	require.NoError(t, err)
	require.Equal(t, 2, f.Rank)
	require.InDeltaSlice(t, []float64{3, 2}, f.S, 1e-14)
	require.InDelta(t, 1.0, f.TruncationError(), 1e-14)

	f, err = lsq.TruncatedSVD(a, 0, 0.5)
	require.NoError(t, err)
	require.Equal(t, 2, f.Rank)

	f, err = lsq.TruncatedSVD(mat.NewDense(2, 2, nil), 0, 0)
	require.NoError(t, err)
	require.Equal(t, 0, f.Rank)
	require.Nil(t, f.U)
}

func TestConditionNumber(t *testing.T) {
	require.InDelta(t, 1.0, lsq.ConditionNumber(eye(3)), 1e-14)
	require.True(t, math.IsInf(lsq.ConditionNumber(mat.NewDense(2, 2, []float64{1, 1, 1, 1})), 1))
	require.True(t, math.IsInf(lsq.ConditionNumber(nil), 1))
	require.True(t, math.IsInf(lsq.ConditionNumber(mat.NewDense(1, 1, []float64{math.NaN()})), 1))
}

func TestSolve_RoutingLoggingAndObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	var seen []lsq.Method
	obs := lsq.WithObserver(func(d lsq.Diagnostics) { seen = append(seen, d.Method) })

	a := eye(2)
	_, d, err := lsq.Solve(a, []float64{1, 2}, lsq.WithLogger(logger), obs)
	require.NoError(t, err)
	require.Equal(t, lsq.MethodQR, d.Method)
	require.InDelta(t, 1.0, d.Condition, 1e-12)

	_, d, err = lsq.Solve(a, []float64{1, -2}, lsq.WithNonNeg(true), obs)
	require.NoError(t, err)
	require.Equal(t, lsq.MethodNNLS, d.Method)

	_, d, err = lsq.Solve(a, []float64{1, 2}, lsq.WithPrefer(lsq.MethodSVD), obs)
	require.NoError(t, err)
	require.Equal(t, lsq.MethodSVD, d.Method)

	require.Equal(t, []lsq.Method{lsq.MethodQR, lsq.MethodNNLS, lsq.MethodSVD}, seen)
	require.Contains(t, buf.String(), "method=qr")
}

func TestInputValidation(t *testing.T) {
	_, _, err := lsq.SolveQR(eye(2), []float64{1})
	require.ErrorIs(t, err, lsq.ErrDimensionMismatch)
	_, _, err = lsq.SolveSVD(eye(2), []float64{1, math.Inf(1)}, 0, 0)
	require.ErrorIs(t, err, lsq.ErrNaNInf)
	_, _, err = lsq.NNLS(nil, nil)
	require.ErrorIs(t, err, lsq.ErrShape)
}
