// SPDX-License-Identifier: MIT

// Package dijkstra implements Dijkstra's single-source shortest paths on a
// core.Graph with non-negative float64 edge lengths.
//
// Overview:
//
//   - Distances grow monotonically from the source; a binary min-heap
//     (github.com/emirpasic/gods) always expands the next-closest vertex,
//     ties broken by vertex ID so runs are reproducible.
//   - Edge length defaults to the stored weight. WithLength maps a weight to a
//     length; kec uses 1/w so strong associations are short.
//   - Optional predecessor map, distance cap and impassable-edge threshold.
//
// Performance and complexity:
//
//   - Time:  O((V + E) log V) with lazy decrease-key.
//   - Space: O(V + E).
//
// Error handling (sentinel errors):
//
//   - ErrEmptySource, ErrNilGraph, ErrVertexNotFound for bad input.
//   - ErrNegativeWeight when a length is negative or NaN.
//   - ErrBadMaxDistance (negative cap), ErrBadInfThreshold (non-positive
//     threshold) for invalid options.
//
// API reference:
//
//	func Dijkstra(g *core.Graph, opts ...Option) (dist map[string]float64, prev map[string]string, err error)
//
// Unreachable vertices (and vertices beyond MaxDistance) have distance +Inf.
package dijkstra
