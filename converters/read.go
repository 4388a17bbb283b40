// SPDX-License-Identifier: MIT
// Package: kec/converters
//
// read.go - CSV edge-list import.

package converters

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/katalvlaran/kec/core"
)

var (
	// ErrMissingColumns indicates a header with fewer than two columns.
	ErrMissingColumns = errors.New("converters: edge list needs two endpoint columns")

	// ErrBadWeight indicates a negative or infinite weight cell.
	ErrBadWeight = errors.New("converters: weight must be finite and non-negative")
)

var (
	sourceNames = []string{"source", "cue"}
	targetNames = []string{"target", "response"}
	weightNames = []string{"weight", "frequency"}
)

// ReadOption configures ReadEdgeList.
type ReadOption func(*readConfig)

type readConfig struct {
	directed  bool
	tokenNorm bool
}

// WithDirected keeps cue → response direction.
func WithDirected(on bool) ReadOption { return func(c *readConfig) { c.directed = on } }

// WithTokenNorm applies TokenNorm to both endpoints.
func WithTokenNorm(on bool) ReadOption { return func(c *readConfig) { c.tokenNorm = on } }

// ReadStats counts what ReadEdgeList did with the rows.
type ReadStats struct {
	Rows           int
	Edges          int
	Merged         int // rows folded into an earlier pair
	SelfLoops      int
	DefaultWeights int // missing or non-numeric weight cells
	Blank          int // rows with an empty endpoint
}

type pair struct{ from, to string }

// ReadEdgeList parses a CSV edge list.
//
// Errors: ErrMissingColumns, ErrBadWeight, CSV syntax errors (with line).
func ReadEdgeList(r io.Reader, opts ...ReadOption) (*core.Graph, ReadStats, error) {
	var cfg readConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	var st ReadStats
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, st, pkgerrors.WithStack(ErrMissingColumns)
		}
		return nil, st, pkgerrors.Wrap(err, "converters: read header")
	}
	if len(header) < 2 {
		return nil, st, pkgerrors.Wrapf(ErrMissingColumns, "header %q", header)
	}
	src, dst, wcol := columns(header)

	sums := map[pair]float64{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, st, pkgerrors.Wrap(err, "converters: read row")
		}
		line, _ := cr.FieldPos(0)
		st.Rows++
		from, to := cell(rec, src), cell(rec, dst)
		if cfg.tokenNorm {
			from, to = TokenNorm(from), TokenNorm(to)
		}
		if from == "" || to == "" {
			st.Blank++
			continue
		}
		if from == to {
			st.SelfLoops++
			continue
		}
		w := 1.0
		if raw := cell(rec, wcol); raw != "" {
			v, perr := strconv.ParseFloat(raw, 64)
			switch {
			case perr != nil || math.IsNaN(v):
				st.DefaultWeights++
			case v < 0 || math.IsInf(v, 0):
				return nil, st, pkgerrors.Wrapf(ErrBadWeight, "converters: line %d: %q", line, raw)
			default:
				w = v
			}
		} else {
			st.DefaultWeights++
		}
		if !cfg.directed && to < from {
			from, to = to, from
		}
		p := pair{from, to}
		if _, seen := sums[p]; seen {
			st.Merged++
		}
		sums[p] += w
	}

	keys := make([]pair, 0, len(sums))
	for p := range sums {
		keys = append(keys, p)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].from != keys[j].from {
			return keys[i].from < keys[j].from
		}
		return keys[i].to < keys[j].to
	})
	g := core.NewGraph(core.WithDirected(cfg.directed))
	for _, p := range keys {
		if _, err := g.AddEdge(p.from, p.to, sums[p]); err != nil {
			return nil, st, pkgerrors.Wrapf(err, "converters: edge %s→%s", p.from, p.to)
		}
	}
	st.Edges = g.EdgeCount()
	return g, st, nil
}

// ReadEdgeListFile opens path and calls ReadEdgeList.
func ReadEdgeListFile(path string, opts ...ReadOption) (*core.Graph, ReadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadStats{}, pkgerrors.Wrapf(err, "converters: open %s", path)
	}
	defer f.Close()
	g, st, err := ReadEdgeList(f, opts...)
	if err != nil {
		return nil, st, pkgerrors.WithMessage(err, path)
	}
	return g, st, nil
}

// columns resolves the endpoint and weight positions; weight is -1 when
// absent.
func columns(header []string) (src, dst, weight int) {
	pos := map[string]int{}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}
	find := func(names []string, fallback int) int {
		for _, n := range names {
			if i, ok := pos[n]; ok {
				return i
			}
		}
		return fallback
	}
	return find(sourceNames, 0), find(targetNames, 1), find(weightNames, -1)
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
