// SPDX-License-Identifier: MIT

// Package stats validates metric values: percentile bootstrap confidence
// intervals, Benjamini–Hochberg q-values, and comparisons of an observed
// value against a null ensemble.
//
// Every resampling entry point takes an explicit seed. NaN observations are
// dropped before resampling; an input with no finite values is rejected.
package stats
