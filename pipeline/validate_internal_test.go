// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kec/builder"
	"github.com/katalvlaran/kec/config"
	"github.com/katalvlaran/kec/core"
	"github.com/katalvlaran/kec/kec"
	"github.com/katalvlaran/kec/nullmodel"
	"github.com/katalvlaran/kec/stats"
)

// TestValidate_NaNObserved: an undefined observed metric fails the stage
// and names the metric instead of reporting a p-value.
func TestValidate_NaNObserved(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.Cycle(8))
	require.NoError(t, err)
	constant := func(context.Context, *core.Graph) (float64, error) { return 0.5, nil }
	ens, err := nullmodel.BuildEnsemble(context.Background(), g, constant, 10, 271828, nullmodel.WithMinSize(10))
	require.NoError(t, err)

	cfg := config.Default()
	o := defaultOptions()
	r := &runner{ctx: context.Background(), g: g, gid: 7, cfg: cfg, o: o, log: o.Logger}
	res := &Result{
		Report: &kec.Report{
			GraphID: 7,
			Betas:   []kec.BetaReport{{Beta: 2, Curvature: &kec.CurvatureResult{Beta: 2, Mean: math.NaN()}}},
		},
		Nulls: []NullRun{{Kind: kec.KindCurvature, Beta: 2, HasBeta: true, Ensemble: ens}},
	}

	err = r.validate(res)
	require.ErrorIs(t, err, stats.ErrNaNObserved)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	require.Equal(t, StageValidation, perr.Stage)
	require.Equal(t, "curvature@2", perr.Metric)
	require.Equal(t, uint64(7), perr.GraphID)
	require.Empty(t, res.Validation)
}
