// SPDX-License-Identifier: MIT
// Package: kec/core
//
// types.go - Graph, Edge, Neighbor, GraphOption, sentinel errors and NewGraph.

package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrBadWeight indicates a negative, NaN or infinite edge weight.
	ErrBadWeight = errors.New("core: weight must be finite and non-negative")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a duplicate edge for the same pair.
	ErrMultiEdgeNotAllowed = errors.New("core: duplicate edge not allowed")
)

// Edge is an immutable snapshot of one stored edge.
//
// For undirected graphs From < To lexicographically (canonical orientation).
type Edge struct {
	ID     string
	From   string
	To     string
	Weight float64
}

// Neighbor is one adjacency entry: the vertex on the other end and the weight.
type Neighbor struct {
	ID     string
	Weight float64
}

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithDirected sets edge orientation for the whole graph.
func WithDirected(directed bool) GraphOption {
	return func(g *Graph) { g.directed = directed }
}

// Graph is the weighted association graph.
//
// muVert protects vertices; muEdgeAdj protects edges, out and in.
// nextEdgeID is an atomic counter for Edge.ID generation ("e1", "e2", ...).
type Graph struct {
	muVert    sync.RWMutex // guards vertices
	muEdgeAdj sync.RWMutex // guards edges and adjacency

	directed bool

	nextEdgeID uint64
	vertices   map[string]struct{}
	edges      map[string]*Edge
	out        map[string]map[string]string // from -> to -> edgeID (mirrored when undirected)
	in         map[string]map[string]string // to -> from -> edgeID (directed only)
}

// NewGraph creates an empty Graph configured by opts (undirected by default).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices: make(map[string]struct{}),
		edges:    make(map[string]*Edge),
		out:      make(map[string]map[string]string),
		in:       make(map[string]map[string]string),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Directed reports whether edges are one-way.
func (g *Graph) Directed() bool { return g.directed }
