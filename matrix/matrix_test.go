// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/kec/core"
	"github.com/katalvlaran/kec/matrix"
)

func pathGraph(t *testing.T, directed bool) *core.Graph {
	t.Helper()
	g := core.NewGraph(core.WithDirected(directed))
	_, err := g.AddEdge("a", "b", 1)
	require.NoError(t, err)
	_, err = g.AddEdge("b", "c", 2)
	require.NoError(t, err)
	return g
}

func TestNewCSR_SumsDuplicatesAndDropsZeros(t *testing.T) {
	c, err := matrix.NewCSR(2, 3, []matrix.Triplet{
		{Row: 1, Col: 2, Value: 1}, {Row: 0, Col: 1, Value: 2}, {Row: 1, Col: 2, Value: 3}, {Row: 0, Col: 0, Value: 0},
	})
	require.NoError(t, err)
	require.Equal(t, 2, c.NNZ())
	require.Equal(t, 4.0, c.At(1, 2))
	require.Equal(t, 0.0, c.At(0, 0))

	dst := make([]float64, 2)
	c.MulVecTo(dst, []float64{1, 1, 1})
	require.Equal(t, []float64{2, 4}, dst)

	_, err = matrix.NewCSR(2, 2, []matrix.Triplet{{Row: 2, Col: 0, Value: 1}})
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = matrix.NewCSR(0, 2, nil)
	require.ErrorIs(t, err, matrix.ErrBadShape)
	_, err = matrix.NewCSR(1, 1, []matrix.Triplet{{Value: math.NaN()}})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestCSR_InteroperatesWithGonum(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{4, 1, 1, 3})
	c := matrix.CSRFromDense(a, 0)
	require.True(t, mat.Equal(a, c))
	require.True(t, mat.Equal(a.T(), c.T()))
	require.True(t, c.IsSymmetric(0))
	require.True(t, c.DiagonallyDominant())
	require.Equal(t, []float64{4, 3}, c.Diagonal())
	require.True(t, mat.Equal(a, c.ToDense()))
}

func TestLaplacian_Variants(t *testing.T) {
	g := pathGraph(t, false)
	for _, backend := range []matrix.Backend{matrix.BackendDense, matrix.BackendSparse} {
		l, err := matrix.NewLaplacian(g, matrix.Unnormalized, backend)
		require.NoError(t, err)
		want := mat.NewDense(3, 3, []float64{
			1, -1, 0,
			-1, 3, -2,
			0, -2, 2,
		})
		require.True(t, mat.EqualApprox(want, l.Dense(), 1e-15), backend.String())
		require.Equal(t, []float64{1, 3, 2}, l.Degrees())
		require.True(t, l.Matches(g))

		sym, err := matrix.NewLaplacian(g, matrix.Symmetric, backend)
		require.NoError(t, err)
		require.InDelta(t, -1/math.Sqrt(3), sym.At(0, 1), 1e-15)
		require.Equal(t, 1.0, sym.At(2, 2))

		rw, err := matrix.NewLaplacian(g, matrix.RandomWalk, backend)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			rowSum := 0.0
			for j := 0; j < 3; j++ {
				rowSum += rw.At(i, j)
			}
			require.InDelta(t, 0, rowSum, 1e-15)
		}
	}
}

func TestLaplacian_DirectedIsSymmetrized(t *testing.T) {
	l, err := matrix.NewLaplacian(pathGraph(t, true), matrix.Unnormalized, matrix.BackendSparse)
	require.NoError(t, err)
	require.Equal(t, -0.5, l.At(0, 1))
	require.Equal(t, -0.5, l.At(1, 0))
	require.True(t, l.Sparse().IsSymmetric(0))
}

func TestLaplacian_IsolatedVertex(t *testing.T) {
	g := pathGraph(t, false)
	require.NoError(t, g.AddVertex("z"))
	l, err := matrix.NewLaplacian(g, matrix.Symmetric, matrix.BackendDense)
	require.NoError(t, err)
	pos, ok := l.Index().Pos("z")
	require.True(t, ok)
	require.Equal(t, 1.0, l.At(pos, pos))
	require.False(t, math.IsNaN(l.At(0, 1)))
}

func TestLaplacian_Errors(t *testing.T) {
	_, err := matrix.NewLaplacian(nil, matrix.Symmetric, matrix.BackendDense)
	require.ErrorIs(t, err, matrix.ErrGraphNil)
	_, err = matrix.NewLaplacian(core.NewGraph(), matrix.Symmetric, matrix.BackendDense)
	require.ErrorIs(t, err, matrix.ErrBadShape)
	_, err = matrix.ParseNormalization("laplace")
	require.ErrorIs(t, err, matrix.ErrUnknownNormalization)
	n, err := matrix.ParseNormalization("rw")
	require.NoError(t, err)
	require.Equal(t, matrix.RandomWalk, n)
}

func TestAdjacency(t *testing.T) {
	w, idx, err := matrix.Adjacency(pathGraph(t, true))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, idx.IDs())
	require.Equal(t, 1.0, w.At(0, 1))
	require.Equal(t, 0.0, w.At(1, 0))
}
