// SPDX-License-Identifier: MIT

package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kec/config"
	"github.com/katalvlaran/kec/core"
	"github.com/katalvlaran/kec/kec"
	"github.com/katalvlaran/kec/kecerr"
	"github.com/katalvlaran/kec/nullmodel"
	"github.com/katalvlaran/kec/pipeline"
	"github.com/katalvlaran/kec/telemetry"
)

// cliques joins two 5-cliques by one edge, with weights cycling 1..3.
func cliques(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for c := 0; c < 2; c++ {
		for i := 0; i < 5; i++ {
			for j := i + 1; j < 5; j++ {
				a, b := 5*c+i, 5*c+j
				_, err := g.AddEdge(fmt.Sprintf("n%02d", a), fmt.Sprintf("n%02d", b), float64(1+(a+b)%3))
				require.NoError(t, err)
			}
		}
	}
	_, err := g.AddEdge("n04", "n05", 1)
	require.NoError(t, err)
	return g
}

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Randomness.NullGraphs.N = 20
	cfg.Randomness.NullGraphs.SwapsPerEdge = 3
	cfg.Randomness.Bootstrap.N = 200
	cfg.Metrics.Betas = []float64{1, 2}
	cfg.Metrics.Curvature.Method = string(kec.MethodForman)
	cfg.Workers = 2
	return cfg
}

func small() pipeline.Option { return pipeline.WithNullOptions(nullmodel.WithMinSize(10)) }

func TestRun_Full(t *testing.T) {
	reg := prometheus.NewRegistry()
	res, err := pipeline.Run(context.Background(), cliques(t), smallConfig(),
		small(), pipeline.WithTelemetry(telemetry.New(reg)))
	require.NoError(t, err)
	require.NotNil(t, res.Report)
	require.Len(t, res.Report.Betas, 2)

	// entropy and curvature per β, coherence once
	require.Len(t, res.Nulls, 5)
	require.Len(t, res.Validation, 5)
	require.Equal(t, kec.KindCoherence, res.Nulls[4].Kind)
	require.False(t, res.Nulls[4].HasBeta)
	for _, n := range res.Nulls {
		require.Equal(t, 20, n.Ensemble.Len())
		require.Equal(t, int64(271828), n.Ensemble.Seed())
	}
	for _, v := range res.Validation {
		require.GreaterOrEqual(t, v.Null.P, 1.0/21)
		require.LessOrEqual(t, v.Null.P, 1.0)
		require.GreaterOrEqual(t, v.Q, v.Null.P)
		require.LessOrEqual(t, v.Q, 1.0)
		require.Equal(t, 20, v.Null.N)
	}
	require.False(t, math.IsNaN(res.Validation[0].Nodes.Estimate))

	n, err := testutil.GatherAndCount(reg, "kec_pipeline_stage_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestRun_Deterministic(t *testing.T) {
	a, err := pipeline.Run(context.Background(), cliques(t), smallConfig(), small())
	require.NoError(t, err)
	b, err := pipeline.Run(context.Background(), cliques(t), smallConfig(), small())
	require.NoError(t, err)
	for i := range a.Nulls {
		require.Equal(t, a.Nulls[i].Ensemble.Values(), b.Nulls[i].Ensemble.Values())
		require.Equal(t, a.Validation[i].Null.P, b.Validation[i].Null.P)
		require.Equal(t, a.Validation[i].Nodes, b.Validation[i].Nodes)
	}
}

func TestRun_MetricsOnly(t *testing.T) {
	cfg := smallConfig()
	cfg.Randomness.NullGraphs.N = 0
	res, err := pipeline.Run(context.Background(), cliques(t), cfg)
	require.NoError(t, err)
	require.NotNil(t, res.Report)
	require.Empty(t, res.Nulls)
	require.Empty(t, res.Validation)
}

func TestRun_ConfigError(t *testing.T) {
	cfg := smallConfig()
	cfg.Randomness.NullGraphs.Seed = nil
	_, err := pipeline.Run(context.Background(), cliques(t), cfg)
	var perr *pipeline.Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, pipeline.StageConfig, perr.Stage)
	require.ErrorIs(t, err, config.ErrMissingSeed)

	_, err = pipeline.Run(context.Background(), cliques(t), nil)
	require.ErrorAs(t, err, &perr)
	require.Equal(t, pipeline.StageConfig, perr.Stage)
}

func TestRun_DefaultMinSize(t *testing.T) {
	_, err := pipeline.Run(context.Background(), cliques(t), smallConfig())
	var perr *pipeline.Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, pipeline.StageNulls, perr.Stage)
	require.ErrorIs(t, err, nullmodel.ErrEnsembleTooSmall)
}

func TestRun_ShuffleFailure(t *testing.T) {
	// no double-edge swap of K4 keeps the graph simple
	g := core.NewGraph()
	ids := []string{"a", "b", "c", "d"}
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			_, err := g.AddEdge(ids[i], ids[j], 1)
			require.NoError(t, err)
		}
	}
	res, err := pipeline.Run(context.Background(), g, smallConfig(),
		small(), pipeline.WithNullOptions(nullmodel.WithAttemptsPerSwap(2)))
	require.Error(t, err)
	require.NotNil(t, res.Report)
	require.ErrorIs(t, err, kecerr.ErrDegenerateGraph)

	var perr *pipeline.Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, pipeline.StageNulls, perr.Stage)
	require.Equal(t, g.Fingerprint(), perr.GraphID)
	var ee *nullmodel.EnsembleError
	require.ErrorAs(t, err, &ee)
	require.Equal(t, ee.Seed, perr.Seed)
	require.Equal(t, nullmodel.DeriveSeed(271828, ee.Index), ee.Seed)
}

func TestFitOutcome(t *testing.T) {
	cfg := smallConfig()
	cfg.Randomness.NullGraphs.N = 0
	g := cliques(t)
	res, err := pipeline.Run(context.Background(), g, cfg)
	require.NoError(t, err)

	y := map[string]float64{}
	for i, id := range g.Vertices() {
		y[id] = float64(i%4) + 0.5
	}
	y["n00"] = math.NaN()
	fit, err := res.FitOutcome("score", 1, y, cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"intercept", "entropy", "curvature", "coherence"}, fit.Terms)
	require.Len(t, fit.Coef, 4)
	require.Equal(t, 9, fit.N)
	require.Len(t, res.Outcomes, 1)

	_, err = res.FitOutcome("score", 7, y, cfg)
	var perr *pipeline.Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, pipeline.StageOutcomes, perr.Stage)

	_, err = res.FitOutcome("sparse", 1, map[string]float64{"n01": 1, "n02": 2}, cfg)
	require.ErrorIs(t, err, pipeline.ErrTooFewRows)
}

func TestFitOutcome_Telemetry(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := smallConfig()
	cfg.Randomness.NullGraphs.N = 0
	g := cliques(t)
	res, err := pipeline.Run(context.Background(), g, cfg, pipeline.WithTelemetry(telemetry.New(reg)))
	require.NoError(t, err)

	y := map[string]float64{}
	for i, id := range g.Vertices() {
		y[id] = float64(i%3) - 1
	}
	fit, err := res.FitOutcome("score", 2, y, cfg)
	require.NoError(t, err)
	require.NotNil(t, fit.Iterative)
	require.Equal(t, "jacobi", fit.Iterative.Preconditioner)

	n, err := testutil.GatherAndCount(reg, "kec_lsq_solves_total")
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, 1)
	n, err = testutil.GatherAndCount(reg, "kec_cg_iterations")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestWriteTables(t *testing.T) {
	cfg := smallConfig()
	g := cliques(t)
	res, err := pipeline.Run(context.Background(), g, cfg, small())
	require.NoError(t, err)
	y := map[string]float64{}
	for i, id := range g.Vertices() {
		y[id] = float64(i % 3)
	}
	_, err = res.FitOutcome("score", 2, y, cfg)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	paths, err := pipeline.WriteTables(dir, res)
	require.NoError(t, err)
	require.Len(t, paths, 8)
	for _, name := range []string{
		pipeline.FileEntropy, pipeline.FileCurvature, pipeline.FileCoherence, pipeline.FileEdges,
		pipeline.FileNodes, pipeline.FileNulls, pipeline.FileValidation, pipeline.FileOutcomeCoefs,
	} {
		st, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		require.Positive(t, st.Size(), name)
	}
	require.Len(t, res.Tables()[pipeline.FileNulls].Rows, 5*20)
}

func TestWriteTables_BadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err := pipeline.WriteTables(filepath.Join(file, "sub"), &pipeline.Result{})
	var perr *pipeline.Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, pipeline.StageWrite, perr.Stage)
	require.False(t, errors.Is(err, kecerr.ErrDegenerateGraph))
}
