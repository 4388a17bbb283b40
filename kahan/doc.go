// SPDX-License-Identifier: MIT

// Package kahan - compensated floating-point reductions shared by every
// numeric routine in kec (solvers, CG, spectral diagnostics, graph metrics).
//
// Purpose:
//   - Bound accumulated rounding error of sums, dot products and squared norms
//     by O(ε) independently of the sequence length.
//   - Provide a streaming Accumulator so packages that reduce inside their own
//     loops (matrix-vector products, entropy sums) share one implementation.
//
// Algorithm:
//   - Kahan–Babuška (Neumaier) compensation: the running correction term also
//     captures the low-order bits when the addend is larger than the partial sum,
//     so sequences such as [1e100, 1, -1e100] sum to 1 instead of 0.
//
// Non-finite inputs:
//   - NaN and ±Inf are accumulated on a separate IEEE channel and win over the
//     finite sum: any NaN gives NaN, +Inf with -Inf gives NaN, otherwise ±Inf.
//     Nothing is clamped.
//
// Determinism:
//   - Pure functions; results depend only on the input order.
package kahan
