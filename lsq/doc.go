// SPDX-License-Identifier: MIT

// Package lsq - dense least-squares solvers with an explicit diagnostics and
// failure contract, plus the routing policy that picks among them.
//
// Solvers:
//   - SolveQR: Householder QR (gonum mat.QR) with compensated Qᵀb and
//     back-substitution. Minimum-norm solution via QR of Aᵀ when m < n.
//   - SolveSVD: truncated SVD (gonum mat.SVD); singular directions below
//     rcond·σ_max are discarded, so the SVD doubles as a regularizer.
//   - NNLS: Lawson–Hanson active set, then a numerical KKT certificate.
//
// Routing (ChooseSolver, Solve):
//
//	nonneg requested          → NNLS
//	cond(A) > CondThreshold   → truncated SVD (RouteRcond cutoff)
//	otherwise                 → prefer (default QR)
//
// Diagnostics:
//   - Every solve returns a Diagnostics value (method, condition estimate,
//     residual norm, rank, iterations, elapsed, notes), also on failure.
//
// Errors:
//   - *RankDeficientError (errors.Is kecerr.ErrRankDeficient) when a full-rank
//     QR was requested and a pivot is numerically zero.
//   - *KktViolationError (errors.Is kecerr.ErrKktViolation) when NNLS cannot be
//     certified within its iteration budget.
//   - ErrShape, ErrDimensionMismatch, ErrNaNInf for invalid input.
//
// Determinism:
//   - No randomness; identical inputs give bit-identical outputs.
//
// AI-Hints:
//   - Use Solve when you do not know the conditioning; call the specific
//     solver when the method is part of your experimental design.
//   - Hook WithObserver to telemetry.Metrics.ObserveSolve to count solves.
package lsq
