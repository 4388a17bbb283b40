// SPDX-License-Identifier: MIT
// Package: kec/nullmodel
//
// rng.go - per-shuffle seed derivation.

package nullmodel

// deriveSeed mixes the ensemble seed and a shuffle index with the
// SplitMix64 finalizer. Neighbouring indices give uncorrelated streams.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// DeriveSeed exposes the seed BuildEnsemble gives shuffle i, so a single
// ensemble member can be reproduced with Shuffle.
func DeriveSeed(ensembleSeed int64, i int) int64 { return deriveSeed(ensembleSeed, uint64(i)) }
