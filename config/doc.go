// SPDX-License-Identifier: MIT

// Package config is the YAML run configuration of a KEC analysis.
//
// The layout mirrors the provenance file of the reference runs:
//
//	randomness:
//	  null_graphs: {n: 1000, seed: 271828}
//	  bootstrap:   {n: 2000, seed: 1337, alpha: 0.05}
//	metrics:
//	  betas: [0.5, 1, 2]
//	  curvature: {method: ollivier, mode: undirected, alpha: 0.5,
//	              distance: hop, sample_edges: 500, sample_seed: 42}
//	  coherence: {dimensions: 2}
//	solver: {cond_threshold: 1000, route_rcond: 1e-5}
//	workers: 8
//
// Unknown keys are rejected. Every seed must be given explicitly: a file
// without one fails with ErrMissingSeed. Default returns a complete
// configuration for programmatic use.
//
// ApplyEnv overrides counts and seeds from KEC_NULLS_N, KEC_NULLS_SEED,
// KEC_BOOT_N, KEC_BOOT_SEED and KEC_WORKERS; ReadEnv collects them from the
// process environment and optional dotenv files.
package config
