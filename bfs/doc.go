// SPDX-License-Identifier: MIT

// Package bfs computes single-source hop-distance rows over a core.Graph,
// laid out along a matrix.Index so that callers can address distances by
// row position.
//
// What
//
//   - Distances explores vertices in non-decreasing hop distance from a
//     source and returns a Row: Hops[i] is the hop count of idx.ID(i), or
//     Unreached.
//   - WithMaxDepth bounds the radius. Ollivier-Ricci curvature only needs
//     distances between the closed neighbourhoods of an edge's endpoints,
//     at most CurvatureRadius hops apart.
//   - Row.Dist converts to the float ground metric (+Inf when unreached).
//
// Weights are ignored: every stored edge is one hop. Directed graphs are
// followed along edge direction only.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - Time:   O(V + E), less when the radius is bounded
//   - Memory: O(V)
//
// Errors
//
//   - ErrGraphNil             if the graph or index is nil.
//   - ErrStartVertexNotFound  if the source is absent from the graph or index.
//   - ErrOptionViolation      for a negative MaxDepth.
//   - ErrNeighbors            if neighbor lookup fails or a neighbour is not
//     indexed.
//   - ctx.Err() on cancellation.
package bfs
