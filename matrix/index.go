// SPDX-License-Identifier: MIT
// Package: kec/matrix
//
// index.go - deterministic vertex ID ↔ row index mapping.

package matrix

import (
	"sort"

	"github.com/katalvlaran/kec/core"
)

// Index maps vertex IDs to contiguous row indices in ascending ID order.
type Index struct {
	ids []string
	pos map[string]int
}

// NewIndex builds an Index over ids. The input is copied, sorted and
// de-duplicated.
func NewIndex(ids []string) *Index {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	uniq := sorted[:0]
	for i, id := range sorted {
		if i > 0 && id == sorted[i-1] {
			continue
		}
		uniq = append(uniq, id)
	}
	pos := make(map[string]int, len(uniq))
	for i, id := range uniq {
		pos[id] = i
	}
	return &Index{ids: uniq, pos: pos}
}

// IndexOf returns the Index of g's vertices.
func IndexOf(g *core.Graph) *Index { return NewIndex(g.Vertices()) }

// Len returns the number of indexed vertices.
func (x *Index) Len() int { return len(x.ids) }

// ID returns the vertex at row i.
func (x *Index) ID(i int) string { return x.ids[i] }

// Pos returns the row of id.
func (x *Index) Pos(id string) (int, bool) {
	i, ok := x.pos[id]
	return i, ok
}

// IDs returns a copy of the ordered vertex IDs.
func (x *Index) IDs() []string { return append([]string(nil), x.ids...) }
