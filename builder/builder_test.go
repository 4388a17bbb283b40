// SPDX-License-Identifier: MIT

package builder_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kec/builder"
	"github.com/katalvlaran/kec/core"
)

func build(t *testing.T, gopts []core.GraphOption, bopts []builder.BuilderOption, cons ...builder.Constructor) *core.Graph {
	t.Helper()
	g, err := builder.BuildGraph(gopts, bopts, cons...)
	require.NoError(t, err)
	return g
}

func TestTopologies(t *testing.T) {
	cases := []struct {
		name     string
		con      builder.Constructor
		vertices int
		edges    int
		degrees  []int
	}{
		{"cycle", builder.Cycle(5), 5, 5, []int{2, 2, 2, 2, 2}},
		{"path", builder.Path(4), 4, 3, []int{1, 1, 2, 2}},
		{"star", builder.Star(4), 4, 3, []int{1, 1, 1, 3}},
		{"complete", builder.Complete(4), 4, 6, []int{3, 3, 3, 3}},
		{"single", builder.Complete(1), 1, 0, []int{0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := build(t, nil, nil, tc.con)
			require.Equal(t, tc.vertices, g.VertexCount())
			require.Equal(t, tc.edges, g.EdgeCount())
			require.ElementsMatch(t, tc.degrees, g.DegreeSequence())
		})
	}
}

func TestCompleteDirected(t *testing.T) {
	g := build(t, []core.GraphOption{core.WithDirected(true)}, nil, builder.Complete(3))
	require.Equal(t, 6, g.EdgeCount())
	require.True(t, g.HasEdge("2", "0"))
}

func TestTooFew(t *testing.T) {
	for _, con := range []builder.Constructor{
		builder.Cycle(2), builder.Path(1), builder.Star(1), builder.Complete(0),
		builder.RandomSparse(0, 0.5), builder.PlantedPartition(0, 3, 1, 0),
	} {
		_, err := builder.BuildGraph(nil, nil, con)
		require.ErrorIs(t, err, builder.ErrTooFewVertices)
	}
	_, err := builder.BuildGraph(nil, nil, nil)
	require.ErrorIs(t, err, builder.ErrConstructFailed)
}

func TestIDAndWeightSchemes(t *testing.T) {
	g := build(t, nil, []builder.BuilderOption{
		builder.WithIDScheme(builder.PrefixIDFn("w", 3)),
		builder.WithWeightFn(builder.ConstantWeightFn(2.5)),
	}, builder.Path(3))
	require.Equal(t, []string{"w000", "w001", "w002"}, g.Vertices())
	w, ok := g.Weight("w001", "w000")
	require.True(t, ok)
	require.Equal(t, 2.5, w)

	require.Equal(t, "C", builder.SymbolIDFn(2))
	require.Panics(t, func() { builder.SymbolIDFn(26) })
	require.Panics(t, func() { builder.WithIDScheme(nil) })
	require.Panics(t, func() { builder.ConstantWeightFn(0) })

	_, err := builder.BuildGraph(nil, []builder.BuilderOption{
		builder.WithWeightFn(func(*rand.Rand) float64 { return 0 }),
	}, builder.Cycle(3))
	require.ErrorIs(t, err, builder.ErrOptionViolation)
}

func TestWeightDistributions(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	u := builder.UniformWeightFn(1, 2)
	f := builder.FrequencyWeightFn(4)
	var sum float64
	for i := 0; i < 4000; i++ {
		w := u(rng)
		require.True(t, w >= 1 && w < 2)
		c := f(rng)
		require.GreaterOrEqual(t, c, 1.0)
		require.Equal(t, float64(int(c)), c)
		sum += c
	}
	require.InDelta(t, 4, sum/4000, 0.3)
	require.Equal(t, builder.DefaultEdgeWeight, f(nil))
}

func TestRandomSparse(t *testing.T) {
	opts := []builder.BuilderOption{builder.WithSeed(42)}
	a := build(t, nil, opts, builder.RandomSparse(30, 0.2))
	b := build(t, nil, []builder.BuilderOption{builder.WithSeed(42)}, builder.RandomSparse(30, 0.2))
	require.Equal(t, a.Fingerprint(), b.Fingerprint())
	require.Equal(t, 30, a.VertexCount())

	full := build(t, nil, nil, builder.RandomSparse(5, 1))
	require.Equal(t, 10, full.EdgeCount())
	empty := build(t, nil, nil, builder.RandomSparse(5, 0))
	require.Zero(t, empty.EdgeCount())

	_, err := builder.BuildGraph(nil, nil, builder.RandomSparse(5, 0.5))
	require.ErrorIs(t, err, builder.ErrNeedRandSource)
	_, err = builder.BuildGraph(nil, opts, builder.RandomSparse(5, 1.5))
	require.ErrorIs(t, err, builder.ErrInvalidProbability)

	dir := build(t, []core.GraphOption{core.WithDirected(true)}, nil, builder.RandomSparse(4, 1))
	require.Equal(t, 12, dir.EdgeCount())
}

func TestPlantedPartition(t *testing.T) {
	idFn := builder.PrefixIDFn("n", 2)
	g := build(t, nil, []builder.BuilderOption{builder.WithSeed(1), builder.WithIDScheme(idFn)},
		builder.PlantedPartition(3, 4, 1, 0))
	// three disjoint K4
	require.Equal(t, 12, g.VertexCount())
	require.Equal(t, 18, g.EdgeCount())

	labels := builder.PlantedLabels(3, 4, idFn)
	for _, e := range g.Edges() {
		require.Equal(t, labels[e.From], labels[e.To])
	}
	require.Equal(t, 2, labels["n11"])
	require.Equal(t, 0, builder.PlantedLabels(1, 2, nil)["1"])
}
