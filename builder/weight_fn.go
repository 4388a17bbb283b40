// SPDX-License-Identifier: MIT
// Package: kec/builder
//
// weight_fn.go - edge weight generators.

package builder

import (
	"fmt"
	"math"
	"math/rand"
)

// DefaultEdgeWeight is the weight when no generator is configured.
const DefaultEdgeWeight float64 = 1

// WeightFn draws one edge weight. rng may be nil; generators then return
// DefaultEdgeWeight or their constant.
type WeightFn func(rng *rand.Rand) float64

// DefaultWeightFn returns DefaultEdgeWeight.
func DefaultWeightFn(_ *rand.Rand) float64 { return DefaultEdgeWeight }

// ConstantWeightFn returns value for every edge. Panics unless value > 0.
func ConstantWeightFn(value float64) WeightFn {
	if !(value > 0) || math.IsInf(value, 0) {
		panic(fmt.Sprintf("ConstantWeightFn: value must be finite and > 0, got %g", value))
	}
	return func(_ *rand.Rand) float64 { return value }
}

// UniformWeightFn draws uniformly from [min, max). Panics unless 0 < min ≤ max.
func UniformWeightFn(min, max float64) WeightFn {
	if !(min > 0) || max < min {
		panic(fmt.Sprintf("UniformWeightFn: require 0 < min ≤ max, got min=%g, max=%g", min, max))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultEdgeWeight
		}
		return min + rng.Float64()*(max-min)
	}
}

// FrequencyWeightFn draws 1+K with K geometric, giving positive integer
// counts with the given mean. Panics unless mean ≥ 1.
func FrequencyWeightFn(mean float64) WeightFn {
	if mean < 1 {
		panic(fmt.Sprintf("FrequencyWeightFn: mean must be ≥ 1, got %g", mean))
	}
	q := 1 - 1/mean
	return func(rng *rand.Rand) float64 {
		if rng == nil || q == 0 {
			return DefaultEdgeWeight
		}
		k := math.Floor(math.Log(1-rng.Float64()) / math.Log(q))
		return 1 + k
	}
}
