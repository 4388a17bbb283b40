// SPDX-License-Identifier: MIT
// Package: kec/converters
//
// table.go - CSV tables for metric reports.

package converters

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"github.com/katalvlaran/kec/kec"
)

// Scope values of the metric tables.
const (
	ScopeNode  = "node"
	ScopeGraph = "graph"
)

// Table is a header plus string rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Append adds one row.
func (t *Table) Append(cells ...string) { t.Rows = append(t.Rows, cells) }

// Float formats v for a table cell; NaN becomes empty.
func Float(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Int formats n for a table cell.
func Int(n int) string { return strconv.Itoa(n) }

// GraphID renders a fingerprint the way the tables key graph rows.
func GraphID(fp uint64) string { return fmt.Sprintf("graph:%016x", fp) }

// WriteCSV writes t to w.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return pkgerrors.Wrap(err, "converters: write header")
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return pkgerrors.Wrap(err, "converters: write rows")
	}
	return nil
}

// WriteCSVFile creates path and writes t.
func WriteCSVFile(path string, t Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return pkgerrors.Wrapf(err, "converters: create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = pkgerrors.Wrapf(cerr, "converters: close %s", path)
		}
	}()
	return WriteCSV(f, t)
}

// EntropyTable has node rows (entropy, stationary mass) and one graph row
// per β (mean entropy, entropy rate).
func EntropyTable(rep *kec.Report) Table {
	t := Table{Header: []string{"id", "scope", "beta", "entropy", "stationary", "rate"}}
	gid := GraphID(rep.GraphID)
	for _, b := range rep.Betas {
		if b.Entropy == nil {
			continue
		}
		beta := Float(b.Beta)
		for i, id := range b.Entropy.IDs {
			t.Append(id, ScopeNode, beta, Float(b.Entropy.Entropy[i]), Float(b.Entropy.Stationary[i]), "")
		}
		t.Append(gid, ScopeGraph, beta, Float(b.Entropy.Mean), "", Float(b.Entropy.Rate))
	}
	return t
}

// CurvatureTable has node rows and one graph row per β.
func CurvatureTable(rep *kec.Report) Table {
	t := Table{Header: []string{"id", "scope", "beta", "curvature", "method", "edges", "total_edges"}}
	gid := GraphID(rep.GraphID)
	for _, b := range rep.Betas {
		c := b.Curvature
		if c == nil {
			continue
		}
		beta := Float(b.Beta)
		for i, id := range c.IDs {
			t.Append(id, ScopeNode, beta, Float(c.Node[i]), string(c.Method), "", "")
		}
		t.Append(gid, ScopeGraph, beta, Float(c.Mean), string(c.Method), Int(len(c.Edges)), Int(c.TotalEdges))
	}
	return t
}

// CoherenceTable has node rows and one graph row. Coherence does not depend
// on β, so the beta column is empty.
func CoherenceTable(rep *kec.Report) Table {
	t := Table{Header: []string{"id", "scope", "beta", "coherence", "community", "modularity"}}
	c := rep.Coherence
	if c == nil {
		return t
	}
	for i, id := range c.IDs {
		t.Append(id, ScopeNode, "", Float(c.Node[i]), Int(c.Community[i]), "")
	}
	t.Append(GraphID(rep.GraphID), ScopeGraph, "", Float(c.Score), "", Float(c.Modularity))
	return t
}

// EdgeTable lists every evaluated edge curvature.
func EdgeTable(rep *kec.Report) Table {
	t := Table{Header: []string{"source", "target", "weight", "beta", "curvature"}}
	for _, b := range rep.Betas {
		if b.Curvature == nil {
			continue
		}
		beta := Float(b.Beta)
		for _, e := range b.Curvature.Edges {
			t.Append(e.From, e.To, Float(e.Weight), beta, Float(e.Value))
		}
	}
	return t
}

// NodeTable is the joined per-node table, one row per (vertex, β).
func NodeTable(rep *kec.Report) Table {
	t := Table{Header: []string{"id", "beta", "entropy", "curvature", "coherence", "community"}}
	for _, r := range rep.NodeRows() {
		community := ""
		if r.Community >= 0 {
			community = Int(r.Community)
		}
		t.Append(r.ID, Float(r.Beta), Float(r.Entropy), Float(r.Curvature), Float(r.Coherence), community)
	}
	return t
}
