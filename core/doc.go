// SPDX-License-Identifier: MIT

// Package core defines the weighted association Graph shared by every kec
// package, with thread-safe primitives for building, querying and cloning it.
//
// The Graph G = (V,E) is the in-memory form of a word-association corpus slice:
//
//   - Vertices are unique string IDs (cue / response words).
//   - Edges carry a finite weight ≥ 0; a weight of 0 is equivalent to absence,
//     so AddEdge(u, v, 0) registers the endpoints and stores nothing.
//   - Directed or undirected (WithDirected). No self-loops and no duplicate
//     edge per direction; for undirected graphs {u,v} is a single edge.
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency
//     (muEdgeAdj); readers never block each other.
//
// Determinism:
//
//   - Vertices(), Edges(), Neighbors() return sorted results, so every
//     downstream index (matrix rows, sampled edges, shuffles) is reproducible.
//   - Fingerprint() hashes the sorted canonical edge list with xxhash; it is the
//     graph identity reported in metric samples and pipeline errors.
//
// Lifecycle:
//
//   - A Graph is built once per corpus slice and treated as read-only for the
//     rest of an analysis run. Derived graphs (Clone, Symmetrized, null-model
//     shuffles) are new values; nothing writes back into the source.
//
// Errors:
//
//	ErrEmptyVertexID        - vertex ID is the empty string.
//	ErrVertexNotFound       - requested vertex does not exist.
//	ErrEdgeNotFound         - requested edge does not exist.
//	ErrBadWeight            - negative, NaN or infinite weight.
//	ErrLoopNotAllowed       - self-loop.
//	ErrMultiEdgeNotAllowed  - second edge for the same (direction of a) pair.
package core
