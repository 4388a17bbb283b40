// SPDX-License-Identifier: MIT

// Package kec - the GraphMetricEngine: transition entropy, graph curvature
// and community coherence over weighted association graphs.
//
// Transition kernel (β ≥ 0, "temperature" of the random walk):
//
//	P(u→v) = w_uv^β / Σ_x w_ux^β      over successors of u
//
// Weights are floored at WeightFloor before the power. A vertex without
// successors is treated as a self-loop (entropy 0, measure δ_u).
//
// Metrics:
//   - TransitionEntropy: per-vertex Shannon entropy of P(u,·) in nats, the
//     stationary distribution and the entropy rate Σ π_u H_u.
//   - FormanRicci: weighted Forman curvature with unit vertex weights.
//   - OllivierRicci: κ(u,v) = 1 − W₁(m_u, m_v)/d(u,v) with lazy measures
//     m_x = α δ_x + (1−α) P(x,·); W₁ is solved exactly as a min-cost
//     transportation problem. Large graphs are handled by seeded edge
//     sampling (SampleEdges, SampleSeed).
//   - Coherence: per-vertex mean embedding proximity to its own community
//     minus the mean proximity to other communities, plus weighted Newman
//     modularity of the partition.
//
// Undefined values are NaN, never zero: an isolated vertex has no
// curvature, a singleton community has no intra proximity.
//
// Engine.Compute evaluates every requested β in parallel (errgroup) and
// returns MetricSample values tagged with the graph fingerprint, regime and
// β. Engine.MetricFunc adapts one scalar metric to the null-model ensemble
// builder.
//
// Concurrency: every function reads its graph only; the input is never
// mutated. Ollivier cancellation is polled between edges.
//
// Errors:
//   - *kecerr.EmptyGraphError for graphs without vertices or edges.
//   - *kecerr.CancelledError (with the partial result) on ctx cancellation.
//   - ErrBadBeta, ErrBadAlpha, ErrBadOption, ErrUnknownMethod,
//     ErrUnknownMode, ErrUnknownDistance, ErrUnknownKind,
//     ErrPartitionIncomplete, ErrEmbeddingMismatch.
package kec
