// SPDX-License-Identifier: MIT
// Package: kec/kec
//
// transport.go - exact earth mover's distance between two discrete measures.
//
// Min-cost flow by successive shortest paths on the bipartite network
// source → supply_i → demand_j → sink. Node potentials keep reduced costs
// non-negative, so each shortest path is a dense Dijkstra over p + q + 2
// nodes; every augmentation exhausts a supply, a demand or a reverse arc.

package kec

import (
	"math"

	"github.com/katalvlaran/kec/kahan"
)

const massEps = 1e-14

// transport returns min Σ f_ij c_ij subject to Σ_j f_ij = a_i,
// Σ_i f_ij = b_j, f ≥ 0. a and b must carry equal total mass.
func transport(a, b []float64, cost [][]float64) float64 {
	p, q := len(a), len(b)
	// node ids: 0 source, 1..p supply, p+1..p+q demand, p+q+1 sink
	nv := p + q + 2
	sink := nv - 1
	sent := make([]float64, p)
	recv := make([]float64, q)
	flow := make([][]float64, p)
	for i := range flow {
		flow[i] = make([]float64, q)
	}
	pot := make([]float64, nv)
	dist := make([]float64, nv)
	prev := make([]int, nv)
	done := make([]bool, nv)

	var total kahan.Accumulator
	for {
		for v := range dist {
			dist[v], prev[v], done[v] = math.Inf(1), -1, false
		}
		dist[0] = 0
		for {
			u := -1
			for v := 0; v < nv; v++ {
				if !done[v] && !math.IsInf(dist[v], 1) && (u < 0 || dist[v] < dist[u]) {
					u = v
				}
			}
			if u < 0 {
				break
			}
			done[u] = true
			relax := func(v int, c float64) {
				if nd := dist[u] + c + pot[u] - pot[v]; nd < dist[v] {
					dist[v], prev[v] = nd, u
				}
			}
			switch {
			case u == 0:
				for i := 0; i < p; i++ {
					if a[i]-sent[i] > massEps {
						relax(1+i, 0)
					}
				}
			case u <= p:
				i := u - 1
				for j := 0; j < q; j++ {
					relax(p+1+j, cost[i][j])
				}
			case u < sink:
				j := u - p - 1
				for i := 0; i < p; i++ {
					if flow[i][j] > massEps {
						relax(1+i, -cost[i][j])
					}
				}
				if b[j]-recv[j] > massEps {
					relax(sink, 0)
				}
			}
		}
		if math.IsInf(dist[sink], 1) {
			break
		}
		for v := range pot {
			if !math.IsInf(dist[v], 1) {
				pot[v] += dist[v]
			}
		}

		// bottleneck along the path
		amount := math.Inf(1)
		for v := sink; v != 0; v = prev[v] {
			u := prev[v]
			switch {
			case u == 0:
				amount = math.Min(amount, a[v-1]-sent[v-1])
			case v == sink:
				amount = math.Min(amount, b[u-p-1]-recv[u-p-1])
			case u > p: // reverse arc demand → supply
				amount = math.Min(amount, flow[v-1][u-p-1])
			}
		}
		for v := sink; v != 0; v = prev[v] {
			u := prev[v]
			switch {
			case u == 0:
				sent[v-1] += amount
			case v == sink:
				recv[u-p-1] += amount
			case u <= p:
				flow[u-1][v-p-1] += amount
				total.Add(amount * cost[u-1][v-p-1])
			default:
				flow[v-1][u-p-1] -= amount
				total.Add(-amount * cost[v-1][u-p-1])
			}
		}
	}
	return total.Sum()
}
