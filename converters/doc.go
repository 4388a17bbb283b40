// SPDX-License-Identifier: MIT

// Package converters moves data between CSV files and kec types.
//
// ReadEdgeList builds a core.Graph from an edge list whose header names the
// endpoint and weight columns. Both the generic names and the SWOW tidy
// names are recognised:
//
//	source | cue        first column when neither is present
//	target | response   second column when neither is present
//	weight | frequency  optional; missing or non-numeric cells weigh 1.0
//
// Repeated pairs are summed (undirected pairs in either order count as one)
// and self-loops are dropped. WithTokenNorm folds vertex IDs to their
// normalized token form before the merge.
//
// The table helpers render a kec.Report as the entropy, curvature,
// coherence, edge and node tables; WriteCSV writes any Table. NaN cells are
// written empty.
package converters
