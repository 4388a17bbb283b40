// SPDX-License-Identifier: MIT

// Package nullmodel generates degree-preserving randomizations of a graph
// and evaluates metrics over ensembles of them.
//
// Shuffle rewires an undirected graph by double-edge swaps
// (a,b),(c,d) → (a,d),(c,b), or a directed graph by target swaps that keep
// every in- and out-degree. The result stays simple and each edge keeps its
// weight, and isolated vertices stay isolated. A graph with fewer than two
// edges or no reachable rewiring within the attempt budget is rejected with
// a *kecerr.DegenerateGraphError carrying the seed. An ensemble also rejects
// a graph with an isolated vertex, whose null metrics would be undefined.
//
// BuildEnsemble runs n shuffles in parallel. Shuffle i uses a seed derived
// from the ensemble seed and i, so the ensemble is identical for any worker
// count:
//
//	ens, err := nullmodel.BuildEnsemble(ctx, g, metric, 1000, 271828,
//		nullmodel.WithWorkers(8))
//	if err != nil {
//		var ee *nullmodel.EnsembleError
//		if errors.As(err, &ee) {
//			log.Printf("shuffle %d (seed %d): %v", ee.Index, ee.Seed, ee.Err)
//		}
//	}
//	null := ens.Values()
//
// The input graph is only read. Every worker builds its own copy.
package nullmodel
