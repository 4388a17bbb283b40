// SPDX-License-Identifier: MIT
// Package: kec/builder
//
// doc.go - overview of deterministic graph generators.

// Package builder generates weighted graphs for fixtures, examples and
// synthetic studies of entropy, curvature and coherence.
//
// A graph is assembled by BuildGraph from core graph options, builder
// options and an ordered list of Constructors:
//
//	g, err := builder.BuildGraph(nil,
//		[]builder.BuilderOption{builder.WithSeed(7), builder.WithIDScheme(builder.PrefixIDFn("n", 2))},
//		builder.PlantedPartition(2, 10, 0.8, 0.05),
//	)
//
// Constructors:
//
//	Cycle(n)                 ring C_n, n ≥ 3
//	Path(n)                  path P_n, n ≥ 2
//	Star(n)                  hub (index 0) with n-1 leaves, n ≥ 2
//	Complete(n)              K_n, n ≥ 1
//	RandomSparse(n, p)       Erdős–Rényi G(n, p), needs an RNG for 0 < p < 1
//	PlantedPartition(k, s, pin, pout)
//	                         k blocks of s vertices, intra probability pin,
//	                         inter probability pout
//
// Vertex IDs come from the IDFn (default "0", "1", ...), edge weights from
// the WeightFn (default 1). A non-positive drawn weight fails with
// ErrOptionViolation: core.Graph treats weight 0 as a missing edge.
//
// Determinism: equal options, seed and constructor order give identical
// graphs. Trials run in ascending (i, j) order.
package builder
