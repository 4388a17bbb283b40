// SPDX-License-Identifier: MIT

// Package matrix - graph→matrix adapters for kec: deterministic vertex
// indexing, adjacency and degree extraction, the three graph Laplacians, and a
// compressed sparse row (CSR) operator used by the iterative solver and the
// sparse spectral backend.
//
// Purpose:
//   - One Index (sorted vertex IDs) per graph snapshot; every row/column of
//     every matrix produced here follows it.
//   - Laplacian variants: Unnormalized L = D − W, Symmetric
//     L = I − D^{-1/2} W D^{-1/2}, RandomWalk L = I − D^{-1} W.
//   - CSR implements gonum's mat.Matrix so sparse operators interoperate with
//     the dense factorizations in lsq and spectral.
//
// Determinism:
//   - Index order is ascending vertex ID; CSR column indices are ascending per row.
//
// Numerical policy:
//   - Directed graphs are symmetrized as (W + Wᵀ)/2 before a Laplacian is built.
//   - Degrees are floored at machine epsilon so isolated vertices never divide
//     by zero; their normalized rows reduce to the identity row.
//
// AI-Hints:
//   - Laplacian values are immutable views; rebuild them when the graph changes.
//   - Use (*CSR).MulVecTo inside loops; At is a binary search per call.
package matrix
