// SPDX-License-Identifier: MIT

// Package spectral - Fiedler vectors and low-dimensional spectral embeddings
// of weighted graphs.
//
// What:
//   - Embed(g, k) returns the k eigenvectors of the graph Laplacian that follow
//     the trivial one, one column per dimension, rows in ascending vertex ID.
//   - Fiedler(g) is Embed with k = 1 plus the algebraic connectivity λ₁.
//
// Variants (matrix.Normalization):
//
//	Symmetric    L = I − D^{-1/2} W D^{-1/2}   (default)
//	Unnormalized L = D − W
//	RandomWalk   eigenvectors D^{-1/2}u of the Symmetric problem
//
// Backends:
//   - BackendDense: gonum mat.EigenSym over the dense Laplacian.
//   - BackendSparse: Lanczos with full reorthogonalization over the CSR
//     Laplacian, shifted so the smallest eigenvalues become the largest.
//     The start vector is fixed, so runs are reproducible.
//   - BackendAuto: dense for n ≤ DenseMaxN, sparse otherwise.
//
// Determinism:
//   - Columns are unit length and sign-fixed: the entry of largest magnitude
//     is positive (the first index wins ties). Identical graphs and options
//     give bit-identical embeddings.
//
// Diagnostics:
//   - Every result carries the computed spectrum prefix, consecutive gaps, a
//     Degenerate flag (a used eigenvalue shares its eigenspace with a
//     neighbour, so the basis is not unique), the number of near-zero
//     eigenvalues (connected components) and, for the sparse backend, the
//     Ritz residual norms.
//
// Errors:
//   - ErrBadDimension when k < 1 or k ≥ n.
//   - *kecerr.EmptyGraphError when g has no vertices or no edges.
//   - ErrEigenFailed when the dense factorization does not converge.
package spectral
