// SPDX-License-Identifier: MIT

package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kec/config"
	"github.com/katalvlaran/kec/kec"
)

const full = `
randomness:
  null_graphs: {n: 1000, seed: 271828, metrics: [entropy, curvature]}
  bootstrap: {n: 2000, seed: 1337, alpha: 0.05}
metrics:
  betas: [0.5, 1, 2]
  curvature:
    method: forman
    mode: directed
    alpha: 0.25
    distance: weighted
    sample_edges: 100
    sample_seed: 9
  coherence: {dimensions: 3}
solver: {cond_threshold: 1000, route_rcond: 1.0e-5}
workers: 4
regime: calm
`

func TestParse_Full(t *testing.T) {
	cfg, err := config.Parse([]byte(full))
	require.NoError(t, err)
	require.Equal(t, int64(271828), *cfg.Randomness.NullGraphs.Seed)
	require.Equal(t, []float64{0.5, 1, 2}, cfg.Metrics.Betas)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, []kec.Kind{kec.KindEntropy, kec.KindCurvature}, cfg.NullKinds())

	req := cfg.Request()
	require.Equal(t, kec.MethodForman, req.Curvature.Method)
	require.Equal(t, kec.ModeDirected, req.Curvature.Mode)
	require.Equal(t, kec.DistanceWeighted, req.Curvature.Distance)
	require.Equal(t, int64(9), req.Curvature.SampleSeed)
	require.Equal(t, 0.25, req.Curvature.Alpha)
	require.Equal(t, 3, req.Dimensions)
	require.Equal(t, "calm", req.Regime)
	require.NoError(t, req.Validate())
	require.Len(t, cfg.NullOptions(), 2)
	require.Len(t, cfg.SolverOptions(), 2)
}

func TestParse_Rejections(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want error
	}{
		"no null seed": {`
randomness:
  null_graphs: {n: 1000}
  bootstrap: {seed: 1}
metrics: {curvature: {sample_seed: 1}}`, config.ErrMissingSeed},
		"no bootstrap seed": {`
randomness:
  null_graphs: {seed: 1}
metrics: {curvature: {sample_seed: 1}}`, config.ErrMissingSeed},
		"no sample seed": {`
randomness:
  null_graphs: {seed: 1}
  bootstrap: {seed: 1}`, config.ErrMissingSeed},
		"empty document": {``, config.ErrMissingSeed},
		"negative beta": {`
randomness: {null_graphs: {seed: 1}, bootstrap: {seed: 1}}
metrics: {betas: [-1], curvature: {sample_seed: 1}}`, config.ErrInvalid},
		"bad method": {`
randomness: {null_graphs: {seed: 1}, bootstrap: {seed: 1}}
metrics: {curvature: {method: gauss, sample_seed: 1}}`, config.ErrInvalid},
		"bad alpha": {`
randomness: {null_graphs: {seed: 1}, bootstrap: {seed: 1, alpha: 2}}
metrics: {curvature: {sample_seed: 1}}`, config.ErrInvalid},
		"bad null metric": {`
randomness: {null_graphs: {seed: 1, metrics: [volume]}, bootstrap: {seed: 1}}
metrics: {curvature: {sample_seed: 1}}`, config.ErrInvalid},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(tc.doc))
			require.ErrorIs(t, err, tc.want)
		})
	}

	_, err := config.Parse([]byte("randomness: {null_graphs: {seed: 1}, bootstrap: {seed: 1}}\nbogus: 1\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "bogus")
}

func TestParse_UnsampledNeedsNoSampleSeed(t *testing.T) {
	cfg, err := config.Parse([]byte(`
randomness: {null_graphs: {seed: 5}, bootstrap: {seed: 6}}
metrics: {curvature: {sample_edges: 0}}`))
	require.NoError(t, err)
	require.Equal(t, config.Default().Metrics.Betas, cfg.Metrics.Betas)
	require.Equal(t, kec.DefaultSampleSeed, int(cfg.Request().Curvature.SampleSeed))
}

func TestEncode_RoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Betas = []float64{0.25, 4}
	cfg.Regime = "storm"
	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))
	back, err := config.Parse(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, cfg, back)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "provenance.yaml")
	require.NoError(t, os.WriteFile(path, []byte(full), 0o600))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "calm", cfg.Regime)

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("KEC_NULLS_SEED=7\nKEC_BOOT_N=50\nUNRELATED=1\n"), 0o600))
	t.Setenv(config.EnvBootN, "60")

	env, err := config.ReadEnv(dotenv)
	require.NoError(t, err)
	require.Equal(t, map[string]string{config.EnvNullsSeed: "7", config.EnvBootN: "60"}, env)

	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv(env))
	require.Equal(t, int64(7), *cfg.Randomness.NullGraphs.Seed)
	require.Equal(t, 60, cfg.Randomness.Bootstrap.N)

	require.ErrorIs(t, cfg.ApplyEnv(map[string]string{config.EnvWorkers: "many"}), config.ErrInvalid)
	require.ErrorIs(t, cfg.ApplyEnv(map[string]string{config.EnvBootN: "0"}), config.ErrInvalid)
}
