// Package kec is the module overview for KEC analysis: transition entropy,
// graph curvature and meso-scale coherence over weighted word-association
// graphs, validated against degree-preserving null models.
//
// The module is organized as flat subpackages:
//
//	core/        thread-safe weighted graph with a stable fingerprint
//	builder/     deterministic and seeded graph generators
//	converters/  CSV edge-list import and output tables
//	kahan/       compensated summation
//	matrix/      adjacency, degree and Laplacian views, CSR operator
//	lsq/         QR, truncated SVD, NNLS and the solver router
//	cg/          preconditioned conjugate gradients
//	spectral/    Fiedler vector and Laplacian eigenmaps
//	bfs/         hop distances
//	dijkstra/    weighted shortest paths
//	kec/         entropy, Ollivier and Forman curvature, coherence, Engine
//	nullmodel/   double-edge-swap shuffles and null ensembles
//	stats/       bootstrap intervals, empirical p-values, BH-FDR
//	config/      YAML run configuration with explicit seeds
//	telemetry/   Prometheus collectors
//	pipeline/    metrics → nulls → validation → tables
//	kecerr/      shared error kinds
//
// Quick start:
//
//	g, _, _ := converters.ReadEdgeListFile("edges.csv")
//	cfg, _ := config.Load("kec.yaml")
//	res, err := pipeline.Run(ctx, g, cfg)
//	if err == nil {
//		_, err = pipeline.WriteTables("out", res)
//	}
//
// Every stochastic step takes an explicit seed, so equal inputs and
// configuration reproduce every table.
package kec
