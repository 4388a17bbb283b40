// SPDX-License-Identifier: MIT

// Package cg - preconditioned Conjugate Gradient for symmetric positive
// definite systems Ax = b.
//
// Purpose:
//   - Solve(ctx, A, b, opts...) over any matrix.Operator; per-iteration cost
//     is one operator application plus O(n) compensated vector work.
//   - Preconditioners: Identity, Jacobi, ApproxCholesky (IC(0)), SSOR(ω).
//   - ChoosePreconditioner(A, ModeAuto) picks Jacobi for diagonally dominant
//     matrices, IC(0) for SPD sparse matrices, SSOR(1) otherwise.
//   - LeastSquares runs CG on the normal equations AᵀA x = Aᵀb without forming
//     AᵀA.
//
// Contract:
//   - Stopping rule ‖r_k‖/‖b‖ ≤ Tol (default 1e-8); MaxIter defaults to n.
//   - Never returns an unconverged iterate silently: NonConvergenceError carries
//     the best iterate and the full residual history.
//   - ctx is polled once per iteration; on cancellation the partial Result is
//     returned together with *kecerr.CancelledError.
//
// Determinism:
//   - No randomness; X0 defaults to the zero vector.
package cg
