// SPDX-License-Identifier: MIT

package kahan_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kec/kahan"
)

func naiveSum(values []float64) float64 {
	s := 0.0
	for _, v := range values {
		s += v
	}
	return s
}

func TestSum_TinyAddendsBeatNaive(t *testing.T) {
	values := make([]float64, 0, 1_000_001)
	values = append(values, 1.0)
	for i := 0; i < 1_000_000; i++ {
		values = append(values, 1e-16)
	}
	want := 1.0 + 1e-10

	require.Equal(t, 1.0, naiveSum(values), "naive summation drops every addend")
	require.InDelta(t, want, kahan.Sum(values), 1e-15)
}

func TestSum_WideDynamicRange(t *testing.T) {
	values := []float64{1e100, 1.0, -1e100}
	require.Equal(t, 0.0, naiveSum(values))
	require.Equal(t, 1.0, kahan.Sum(values))
}

func TestSum_Empty(t *testing.T) {
	require.Equal(t, 0.0, kahan.Sum(nil))
}

func TestSum_NonFinitePropagates(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		check  func(float64) bool
	}{
		{"nan", []float64{1, math.NaN(), 2}, math.IsNaN},
		{"posinf", []float64{1, math.Inf(1), 2}, func(x float64) bool { return math.IsInf(x, 1) }},
		{"neginf", []float64{math.Inf(-1), 3}, func(x float64) bool { return math.IsInf(x, -1) }},
		{"inf-inf", []float64{math.Inf(1), math.Inf(-1)}, math.IsNaN},
		{"overflow", []float64{math.MaxFloat64, math.MaxFloat64}, func(x float64) bool { return math.IsInf(x, 1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.True(t, tc.check(kahan.Sum(tc.values)))
		})
	}
}

func TestDot(t *testing.T) {
	got, err := kahan.Dot([]float64{1, 2, 3}, []float64{4, 5, 6})
	require.NoError(t, err)
	require.Equal(t, 32.0, got)

	_, err = kahan.Dot([]float64{1}, []float64{1, 2})
	require.ErrorIs(t, err, kahan.ErrLengthMismatch)
}

func TestNorm(t *testing.T) {
	require.Equal(t, 25.0, kahan.NormSquared([]float64{3, 4}))
	require.Equal(t, 5.0, kahan.Norm([]float64{3, 4}))
}

func TestAccumulator_Reset(t *testing.T) {
	var acc kahan.Accumulator
	acc.Add(math.NaN())
	require.True(t, math.IsNaN(acc.Sum()))
	acc.Reset()
	acc.AddProduct(2, 3)
	require.Equal(t, 6.0, acc.Sum())
}
