// SPDX-License-Identifier: MIT

// Package pipeline runs a complete KEC analysis of one graph:
//
//  1. metrics: entropy and curvature per β, coherence once (kec.Engine);
//  2. nulls: one shared degree-preserving ensemble evaluated for every
//     configured metric (nullmodel.BuildEnsembles);
//  3. validation: observed versus null (empirical p, z), a bootstrap CI of
//     the node-level values, and BH q-values across all comparisons;
//  4. tables: WriteTables renders the CSV outputs.
//
// Result.FitOutcome adds a per-vertex regression of an external outcome on
// the KEC terms, with bootstrapped coefficient intervals.
//
// Ensembles smaller than nullmodel.MinEnsembleSize are refused unless
// WithNullOptions(nullmodel.WithMinSize(k)) lowers the floor.
//
// Every failure is an *Error naming the stage, metric, β, graph and seed.
// The configuration is passed in explicitly; the package holds no state.
package pipeline
