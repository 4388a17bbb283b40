// SPDX-License-Identifier: MIT

package core_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/kec/core"
)

type GraphSuite struct {
	suite.Suite
	g *core.Graph
}

func (s *GraphSuite) SetupTest() {
	s.g = core.NewGraph()
	for _, e := range [][3]interface{}{{"a", "b", 1.0}, {"b", "c", 2.0}, {"c", "a", 0.5}} {
		_, err := s.g.AddEdge(e[0].(string), e[1].(string), e[2].(float64))
		s.Require().NoError(err)
	}
}

func (s *GraphSuite) TestUndirectedMirror() {
	w, ok := s.g.Weight("b", "a")
	s.True(ok)
	s.Equal(1.0, w)
	s.Equal(3, s.g.EdgeCount())

	nbrs, err := s.g.Neighbors("a")
	s.Require().NoError(err)
	s.Equal([]core.Neighbor{{ID: "b", Weight: 1}, {ID: "c", Weight: 0.5}}, nbrs)
}

func (s *GraphSuite) TestCanonicalEdges() {
	edges := s.g.Edges()
	s.Require().Len(edges, 3)
	s.Equal("a", edges[0].From)
	s.Equal("b", edges[0].To)
	s.Equal("a", edges[1].From)
	s.Equal("c", edges[1].To)
}

func (s *GraphSuite) TestRejections() {
	_, err := s.g.AddEdge("a", "b", 3)
	s.ErrorIs(err, core.ErrMultiEdgeNotAllowed)
	_, err = s.g.AddEdge("b", "a", 3)
	s.ErrorIs(err, core.ErrMultiEdgeNotAllowed)
	_, err = s.g.AddEdge("a", "a", 1)
	s.ErrorIs(err, core.ErrLoopNotAllowed)
	_, err = s.g.AddEdge("a", "d", -1)
	s.ErrorIs(err, core.ErrBadWeight)
	_, err = s.g.AddEdge("", "d", 1)
	s.ErrorIs(err, core.ErrEmptyVertexID)
	_, err = s.g.Neighbors("zz")
	s.ErrorIs(err, core.ErrVertexNotFound)
}

func (s *GraphSuite) TestZeroWeightIsAbsence() {
	id, err := s.g.AddEdge("a", "z", 0)
	s.NoError(err)
	s.Empty(id)
	s.True(s.g.HasVertex("z"))
	s.False(s.g.HasEdge("a", "z"))
	s.Equal([]string{"z"}, s.g.IsolatedVertices())
}

func (s *GraphSuite) TestCloneAndFingerprint() {
	c := s.g.Clone()
	s.Equal(s.g.Fingerprint(), c.Fingerprint())
	_, err := c.AddEdge("c", "d", 1)
	s.Require().NoError(err)
	s.NotEqual(s.g.Fingerprint(), c.Fingerprint())
	s.False(s.g.HasVertex("d"))
}

func TestGraphSuite(t *testing.T) {
	suite.Run(t, new(GraphSuite))
}

func TestDirectedDegreesAndSymmetrize(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true))
	_, err := g.AddEdge("a", "b", 2)
	require.NoError(t, err)
	_, err = g.AddEdge("b", "a", 4)
	require.NoError(t, err)
	_, err = g.AddEdge("b", "c", 1)
	require.NoError(t, err)

	in, out, err := g.Degree("b")
	require.NoError(t, err)
	require.Equal(t, 1, in)
	require.Equal(t, 2, out)
	require.Equal(t, []int{1, 2, 3}, g.DegreeSequence())

	preds, err := g.Predecessors("a")
	require.NoError(t, err)
	require.Equal(t, []core.Neighbor{{ID: "b", Weight: 4}}, preds)

	u := g.Symmetrized()
	require.False(t, u.Directed())
	w, ok := u.Weight("a", "b")
	require.True(t, ok)
	require.Equal(t, 3.0, w)
	w, _ = u.Weight("c", "b")
	require.Equal(t, 0.5, w)
}

func TestConcurrentReaders(t *testing.T) {
	g := core.NewGraph()
	for i := 0; i < 50; i++ {
		_, err := g.AddEdge("hub", string(rune('A'+i)), float64(i+1))
		require.NoError(t, err)
	}
	var wg sync.WaitGroup
	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				nbrs, err := g.Neighbors("hub")
				if err != nil || len(nbrs) != 50 {
					t.Errorf("unexpected neighbors: %d %v", len(nbrs), err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
