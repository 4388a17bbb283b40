// SPDX-License-Identifier: MIT
// Package: kec/pipeline
//
// write.go - CSV outputs of a run.

package pipeline

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"github.com/katalvlaran/kec/converters"
)

// Table file names.
const (
	FileEntropy      = "entropy.csv"
	FileCurvature    = "curvature.csv"
	FileCoherence    = "coherence.csv"
	FileEdges        = "edges.csv"
	FileNodes        = "kec_nodes.csv"
	FileNulls        = "nulls.csv"
	FileValidation   = "validation.csv"
	FileOutcomeCoefs = "outcome_coeffs.csv"
)

// Tables renders res as named tables. Null, validation and outcome tables
// appear only when the run produced them.
func (res *Result) Tables() map[string]converters.Table {
	out := map[string]converters.Table{}
	if rep := res.Report; rep != nil {
		out[FileEntropy] = converters.EntropyTable(rep)
		out[FileCurvature] = converters.CurvatureTable(rep)
		out[FileCoherence] = converters.CoherenceTable(rep)
		out[FileEdges] = converters.EdgeTable(rep)
		out[FileNodes] = converters.NodeTable(rep)
	}
	if len(res.Nulls) > 0 {
		t := converters.Table{Header: []string{"kind", "beta", "index", "seed", "value"}}
		for _, n := range res.Nulls {
			beta := ""
			if n.HasBeta {
				beta = converters.Float(n.Beta)
			}
			for _, s := range n.Ensemble.Samples() {
				t.Append(string(n.Kind), beta, converters.Int(s.Index), formatSeed(s.Seed), converters.Float(s.Value))
			}
		}
		out[FileNulls] = t
	}
	if len(res.Validation) > 0 {
		t := converters.Table{Header: []string{
			"kind", "beta", "observed", "null_mean", "null_sd", "z", "p", "q",
			"null_lower", "null_upper", "node_mean", "node_lower", "node_upper", "n_null",
		}}
		for _, v := range res.Validation {
			beta := ""
			if v.HasBeta {
				beta = converters.Float(v.Beta)
			}
			c := v.Null
			t.Append(string(v.Kind), beta, converters.Float(c.Observed), converters.Float(c.Mean),
				converters.Float(c.SD), converters.Float(c.Z), converters.Float(c.P), converters.Float(v.Q),
				converters.Float(c.Null.Lower), converters.Float(c.Null.Upper),
				converters.Float(v.Nodes.Estimate), converters.Float(v.Nodes.Lower), converters.Float(v.Nodes.Upper),
				converters.Int(c.N))
		}
		out[FileValidation] = t
	}
	if len(res.Outcomes) > 0 {
		t := converters.Table{Header: []string{"outcome", "beta", "term", "estimate", "lower", "upper", "n", "method"}}
		for _, f := range res.Outcomes {
			for j, term := range f.Terms {
				c := f.Coef[j]
				t.Append(f.Outcome, converters.Float(f.Beta), term, converters.Float(c.Estimate),
					converters.Float(c.Lower), converters.Float(c.Upper), converters.Int(f.N), string(f.Diagnostics.Method))
			}
		}
		out[FileOutcomeCoefs] = t
	}
	return out
}

// WriteTables writes every table of res into dir, creating it if needed.
// It returns the written paths in name order.
func WriteTables(dir string, res *Result) ([]string, error) {
	var gid uint64
	if res.Report != nil {
		gid = res.Report.GraphID
	}
	fail := func(err error) ([]string, error) {
		return nil, &Error{Stage: StageWrite, GraphID: gid, Err: err}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fail(pkgerrors.Wrapf(err, "mkdir %s", dir))
	}
	tables := res.Tables()
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		if err := converters.WriteCSVFile(p, tables[name]); err != nil {
			return fail(err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func formatSeed(s int64) string { return strconv.FormatInt(s, 10) }
