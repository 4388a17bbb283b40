// SPDX-License-Identifier: MIT
// Package: kec/builder
//
// random.go - stochastic generators.
//
// Trials run for i ascending, then j ascending (j > i when undirected,
// j ≠ i when directed), one Bernoulli draw per pair, so a fixed seed fixes
// the graph.

package builder

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/kec/core"
)

const (
	methodRandomSparse     = "RandomSparse"
	methodPlantedPartition = "PlantedPartition"
)

func checkProb(method string, p float64) error {
	if !(p >= 0 && p <= 1) {
		return fmt.Errorf("%s: p=%g not in [0,1]: %w", method, p, ErrInvalidProbability)
	}
	return nil
}

// bernoulli connects every admissible pair with probability prob(i, j).
func bernoulli(method string, g *core.Graph, cfg builderConfig, ids []string, prob func(i, j int) float64) error {
	hit := func(p float64) bool {
		if p >= 1 {
			return true
		}
		return p > 0 && cfg.rng.Float64() < p
	}
	n := len(ids)
	for i := 0; i < n; i++ {
		start := i + 1
		if g.Directed() {
			start = 0
		}
		for j := start; j < n; j++ {
			if i == j || !hit(prob(i, j)) {
				continue
			}
			if err := addEdge(method, g, cfg, ids[i], ids[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

func needRand(method string, rng *rand.Rand, ps ...float64) error {
	if rng != nil {
		return nil
	}
	for _, p := range ps {
		if p > 0 && p < 1 {
			return fmt.Errorf("%s: %w", method, ErrNeedRandSource)
		}
	}
	return nil
}

// RandomSparse samples G(n, p).
func RandomSparse(n int, p float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < 1 {
			return tooFew(methodRandomSparse, n, 1)
		}
		if err := checkProb(methodRandomSparse, p); err != nil {
			return err
		}
		if err := needRand(methodRandomSparse, cfg.rng, p); err != nil {
			return err
		}
		ids, err := addVertices(methodRandomSparse, g, cfg, n)
		if err != nil {
			return err
		}
		return bernoulli(methodRandomSparse, g, cfg, ids, func(int, int) float64 { return p })
	}
}

// PlantedPartition samples k blocks of size vertices each. Vertex index i
// belongs to block i/size; pairs within a block connect with pin, across
// blocks with pout.
func PlantedPartition(k, size int, pin, pout float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if k < 1 {
			return tooFew(methodPlantedPartition, k, 1)
		}
		if size < 1 {
			return tooFew(methodPlantedPartition, size, 1)
		}
		for _, p := range []float64{pin, pout} {
			if err := checkProb(methodPlantedPartition, p); err != nil {
				return err
			}
		}
		if err := needRand(methodPlantedPartition, cfg.rng, pin, pout); err != nil {
			return err
		}
		ids, err := addVertices(methodPlantedPartition, g, cfg, k*size)
		if err != nil {
			return err
		}
		return bernoulli(methodPlantedPartition, g, cfg, ids, func(i, j int) float64 {
			if i/size == j/size {
				return pin
			}
			return pout
		})
	}
}

// PlantedLabels returns the block of every PlantedPartition(k, size, ...)
// vertex under idFn (nil means DefaultIDFn). The map converts directly to
// kec.Partition.
func PlantedLabels(k, size int, idFn IDFn) map[string]int {
	if idFn == nil {
		idFn = DefaultIDFn
	}
	out := make(map[string]int, k*size)
	for i := 0; i < k*size; i++ {
		out[idFn(i)] = i / size
	}
	return out
}
