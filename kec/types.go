// SPDX-License-Identifier: MIT
// Package: kec/kec
//
// types.go - metric kinds, samples, sentinels and per-metric result types.

package kec

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// WeightFloor is the smallest weight raised to β.
const WeightFloor = 1e-12

// Sentinel errors.
var (
	ErrGraphNil            = errors.New("kec: graph is nil")
	ErrBadBeta             = errors.New("kec: beta must be finite and non-negative")
	ErrBadAlpha            = errors.New("kec: alpha must lie in [0, 1)")
	ErrBadOption           = errors.New("kec: invalid option")
	ErrUnknownMethod       = errors.New("kec: unknown curvature method")
	ErrUnknownMode         = errors.New("kec: unknown curvature mode")
	ErrUnknownDistance     = errors.New("kec: unknown ground distance")
	ErrUnknownKind         = errors.New("kec: unknown metric kind")
	ErrPartitionIncomplete = errors.New("kec: partition does not cover every vertex")
	ErrEmbeddingMismatch   = errors.New("kec: embedding does not cover every vertex")
)

// Kind names a scalar metric.
type Kind string

const (
	KindEntropy   Kind = "entropy"
	KindCurvature Kind = "curvature"
	KindCoherence Kind = "coherence"
)

// ParseKind maps a name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindEntropy, KindCurvature, KindCoherence:
		return k, nil
	}
	return "", fmt.Errorf("ParseKind(%q): %w", s, ErrUnknownKind)
}

// MetricSample is one immutable scalar metric value.
type MetricSample struct {
	Kind    Kind
	Value   float64
	GraphID uint64
	Regime  string
	Beta    float64
	HasBeta bool
}

// String formats the sample for logs.
func (s MetricSample) String() string {
	if s.HasBeta {
		return fmt.Sprintf("%s[%016x β=%g %s]=%.6g", s.Kind, s.GraphID, s.Beta, s.Regime, s.Value)
	}
	return fmt.Sprintf("%s[%016x %s]=%.6g", s.Kind, s.GraphID, s.Regime, s.Value)
}

// EntropyResult is the output of TransitionEntropy. Slices are in IDs order.
type EntropyResult struct {
	Beta       float64
	IDs        []string
	Entropy    []float64 // nats
	Stationary []float64
	Rate       float64 // Σ π_u H_u
	Mean       float64 // graph-level value: mean vertex entropy

	// StationaryIterations is 0 for the closed-form undirected case.
	StationaryIterations int
	StationaryConverged  bool
}

// Of returns the entropy of id.
func (r *EntropyResult) Of(id string) (float64, bool) { return lookup(r.IDs, r.Entropy, id) }

// CurvatureMethod selects Ollivier or Forman curvature.
type CurvatureMethod string

const (
	MethodOllivier CurvatureMethod = "ollivier"
	MethodForman   CurvatureMethod = "forman"
)

// CurvatureMode selects whether direction is kept.
type CurvatureMode string

const (
	// ModeUndirected symmetrizes a directed graph first.
	ModeUndirected CurvatureMode = "undirected"
	// ModeDirected keeps edge direction (no-op on undirected graphs).
	ModeDirected CurvatureMode = "directed"
)

// Distance selects the Ollivier ground metric.
type Distance string

const (
	// DistanceHop counts edges (BFS).
	DistanceHop Distance = "hop"
	// DistanceWeighted uses shortest paths over length 1/w (Dijkstra).
	DistanceWeighted Distance = "weighted"
)

// EdgeCurvature is the curvature of one edge.
type EdgeCurvature struct {
	From, To string
	Weight   float64
	Value    float64
}

// CurvatureResult is the output of FormanRicci and OllivierRicci.
type CurvatureResult struct {
	Method     CurvatureMethod
	Mode       CurvatureMode
	Beta       float64
	Edges      []EdgeCurvature // evaluated edges, canonical order
	TotalEdges int             // edges of the working graph
	IDs        []string
	Node       []float64 // mean of incident evaluated edges; NaN when none
	Mean       float64   // mean of finite edge values; NaN when none
}

// Sampled reports whether only a subset of edges was evaluated.
func (r *CurvatureResult) Sampled() bool { return len(r.Edges) < r.TotalEdges }

// Of returns the node curvature of id.
func (r *CurvatureResult) Of(id string) (float64, bool) { return lookup(r.IDs, r.Node, id) }

// Partition assigns a community label to every vertex.
type Partition map[string]int

// CoherenceResult is the output of Coherence.
type CoherenceResult struct {
	IDs        []string
	Node       []float64 // mean intra proximity − mean inter proximity
	Community  []int
	Score      float64 // mean of finite node values
	Modularity float64
}

// Of returns the node coherence of id.
func (r *CoherenceResult) Of(id string) (float64, bool) { return lookup(r.IDs, r.Node, id) }

// lookup expects ids sorted ascending.
func lookup(ids []string, vals []float64, id string) (float64, bool) {
	i := sort.SearchStrings(ids, id)
	if i < len(ids) && ids[i] == id {
		return vals[i], true
	}
	return math.NaN(), false
}
