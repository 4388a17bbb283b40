// SPDX-License-Identifier: MIT
// Package: kec/config
//
// config.go - Config, defaults, loading and validation.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/kec/kec"
	"github.com/katalvlaran/kec/lsq"
	"github.com/katalvlaran/kec/nullmodel"
	"github.com/katalvlaran/kec/stats"
)

var (
	// ErrMissingSeed indicates a randomness section without an explicit seed.
	ErrMissingSeed = errors.New("config: missing seed")

	// ErrInvalid indicates an out-of-range or unknown value.
	ErrInvalid = errors.New("config: invalid value")
)

// Config is one run configuration.
type Config struct {
	Randomness Randomness `yaml:"randomness"`
	Metrics    Metrics    `yaml:"metrics"`
	Solver     Solver     `yaml:"solver"`
	Workers    int        `yaml:"workers,omitempty"`
	Regime     string     `yaml:"regime,omitempty"`
}

// Randomness holds the seeded sections; every seed must be explicit.
type Randomness struct {
	NullGraphs NullGraphs `yaml:"null_graphs"`
	Bootstrap  Bootstrap  `yaml:"bootstrap"`
}

// NullGraphs configures the degree-preserving null ensemble. N = 0 skips
// the null and validation stages.
type NullGraphs struct {
	N            int    `yaml:"n"`
	Seed         *int64 `yaml:"seed"`
	SwapsPerEdge int    `yaml:"swaps_per_edge,omitempty"`
	// Metrics lists the kinds evaluated over the ensemble.
	Metrics []string `yaml:"metrics,omitempty"`
}

// Bootstrap configures percentile intervals.
type Bootstrap struct {
	N     int     `yaml:"n"`
	Seed  *int64  `yaml:"seed"`
	Alpha float64 `yaml:"alpha"`
}

// Metrics selects the β grid and the per-metric settings.
type Metrics struct {
	Betas     []float64 `yaml:"betas"`
	Curvature Curvature `yaml:"curvature"`
	Coherence Coherence `yaml:"coherence"`
}

// Curvature maps to kec.CurvatureOptions. Method is ollivier or forman,
// Distance is hop or weighted.
type Curvature struct {
	Method      string  `yaml:"method"`
	Mode        string  `yaml:"mode"`
	Alpha       float64 `yaml:"alpha"`
	Distance    string  `yaml:"distance"`
	SampleEdges int     `yaml:"sample_edges"`
	SampleSeed  *int64  `yaml:"sample_seed"`
}

// Coherence sets the spectral embedding dimension.
type Coherence struct {
	Dimensions int `yaml:"dimensions"`
}

// Solver holds the lsq routing thresholds.
type Solver struct {
	CondThreshold float64 `yaml:"cond_threshold"`
	RouteRcond    float64 `yaml:"route_rcond"`
}

func seed(v int64) *int64 { return &v }

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		Randomness: Randomness{
			NullGraphs: NullGraphs{
				N: nullmodel.MinEnsembleSize, Seed: seed(271828), SwapsPerEdge: nullmodel.DefaultSwapsPerEdge,
				Metrics: []string{string(kec.KindEntropy), string(kec.KindCurvature), string(kec.KindCoherence)},
			},
			Bootstrap: Bootstrap{N: stats.DefaultResamples, Seed: seed(stats.DefaultSeed), Alpha: stats.DefaultAlpha},
		},
		Metrics: Metrics{
			Betas: []float64{1},
			Curvature: Curvature{
				Method: string(kec.MethodOllivier), Mode: string(kec.ModeUndirected),
				Alpha: kec.DefaultAlpha, Distance: string(kec.DistanceHop),
				SampleEdges: kec.DefaultSampleEdges, SampleSeed: seed(kec.DefaultSampleSeed),
			},
			Coherence: Coherence{Dimensions: 2},
		},
		Solver: Solver{CondThreshold: lsq.DefaultCondThreshold, RouteRcond: lsq.DefaultRouteRcond},
	}
}

// Parse decodes YAML over the defaults, with every seed cleared so that
// the document must state it, and validates the result.
//
// Errors: YAML syntax or unknown-field errors, ErrMissingSeed, ErrInvalid.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	cfg.Randomness.NullGraphs.Seed = nil
	cfg.Randomness.Bootstrap.Seed = nil
	cfg.Metrics.Curvature.SampleSeed = nil

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, pkgerrors.Wrap(err, "config: decode")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "config: read %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, pkgerrors.WithMessagef(err, "config: %s", path)
	}
	return cfg, nil
}

// Encode writes cfg as YAML.
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return pkgerrors.Wrap(err, "config: encode")
	}
	return enc.Close()
}

func invalid(field string, v any) error {
	return fmt.Errorf("%s=%v: %w", field, v, ErrInvalid)
}

// Validate checks ranges, names and seeds.
func (c *Config) Validate() error {
	r := c.Randomness
	switch {
	case r.NullGraphs.Seed == nil:
		return fmt.Errorf("randomness.null_graphs.seed: %w", ErrMissingSeed)
	case r.Bootstrap.Seed == nil:
		return fmt.Errorf("randomness.bootstrap.seed: %w", ErrMissingSeed)
	case c.Metrics.Curvature.SampleEdges > 0 && c.Metrics.Curvature.SampleSeed == nil:
		return fmt.Errorf("metrics.curvature.sample_seed: %w", ErrMissingSeed)
	}
	if r.NullGraphs.N < 0 {
		return invalid("randomness.null_graphs.n", r.NullGraphs.N)
	}
	if r.NullGraphs.SwapsPerEdge < 0 {
		return invalid("randomness.null_graphs.swaps_per_edge", r.NullGraphs.SwapsPerEdge)
	}
	for _, k := range r.NullGraphs.Metrics {
		if _, err := kec.ParseKind(k); err != nil {
			return invalid("randomness.null_graphs.metrics", k)
		}
	}
	if r.Bootstrap.N < 1 {
		return invalid("randomness.bootstrap.n", r.Bootstrap.N)
	}
	if !(r.Bootstrap.Alpha > 0 && r.Bootstrap.Alpha < 1) {
		return invalid("randomness.bootstrap.alpha", r.Bootstrap.Alpha)
	}

	m := c.Metrics
	if len(m.Betas) == 0 {
		return invalid("metrics.betas", m.Betas)
	}
	for _, b := range m.Betas {
		if math.IsNaN(b) || math.IsInf(b, 0) || b < 0 {
			return invalid("metrics.betas", b)
		}
	}
	if m.Coherence.Dimensions < 1 {
		return invalid("metrics.coherence.dimensions", m.Coherence.Dimensions)
	}
	if err := c.Request().Validate(); err != nil {
		return fmt.Errorf("metrics: %w: %w", ErrInvalid, err)
	}

	if !(c.Solver.CondThreshold > 1) {
		return invalid("solver.cond_threshold", c.Solver.CondThreshold)
	}
	if !(c.Solver.RouteRcond > 0 && c.Solver.RouteRcond < 1) {
		return invalid("solver.route_rcond", c.Solver.RouteRcond)
	}
	if c.Workers < 0 {
		return invalid("workers", c.Workers)
	}
	return nil
}

// Request maps the metrics section to a kec.Request.
func (c *Config) Request() kec.Request {
	cv := c.Metrics.Curvature
	o := kec.DefaultCurvatureOptions()
	o.Method = kec.CurvatureMethod(cv.Method)
	o.Mode = kec.CurvatureMode(cv.Mode)
	o.Alpha = cv.Alpha
	o.Distance = kec.Distance(cv.Distance)
	o.SampleEdges = cv.SampleEdges
	if cv.SampleSeed != nil {
		o.SampleSeed = *cv.SampleSeed
	}
	return kec.Request{
		Betas:      append([]float64(nil), c.Metrics.Betas...),
		Curvature:  o,
		Dimensions: c.Metrics.Coherence.Dimensions,
		Regime:     c.Regime,
	}
}

// NullKinds returns the metric kinds evaluated over null ensembles.
func (c *Config) NullKinds() []kec.Kind {
	out := make([]kec.Kind, 0, len(c.Randomness.NullGraphs.Metrics))
	for _, k := range c.Randomness.NullGraphs.Metrics {
		out = append(out, kec.Kind(k))
	}
	return out
}

// NullOptions maps the null_graphs section and workers to nullmodel options.
func (c *Config) NullOptions() []nullmodel.Option {
	opts := []nullmodel.Option{nullmodel.WithWorkers(c.Workers)}
	if c.Randomness.NullGraphs.SwapsPerEdge > 0 {
		opts = append(opts, nullmodel.WithSwapsPerEdge(c.Randomness.NullGraphs.SwapsPerEdge))
	}
	return opts
}

// SolverOptions maps the solver section to lsq options.
func (c *Config) SolverOptions() []lsq.Option {
	return []lsq.Option{lsq.WithCondThreshold(c.Solver.CondThreshold), lsq.WithRouteRcond(c.Solver.RouteRcond)}
}
