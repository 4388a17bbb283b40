// SPDX-License-Identifier: MIT
// Package: kec/bfs
//
// bfs.go - the breadth-first loop behind Distances.

package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/kec/core"
	"github.com/katalvlaran/kec/matrix"
)

// Distances returns the hop-distance row from source over g, laid out along
// idx. Every vertex of g must be indexed. Cancellation is polled once per
// expanded vertex.
func Distances(ctx context.Context, g *core.Graph, idx *matrix.Index, source string, opts ...Option) (*Row, error) {
	if g == nil || idx == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	src, ok := idx.Pos(source)
	if !ok || !g.HasVertex(source) {
		return nil, fmt.Errorf("Distances(%s): %w", source, ErrStartVertexNotFound)
	}

	row := &Row{Source: src, Radius: o.MaxDepth, Hops: make([]int, idx.Len()), Reached: 1}
	for i := range row.Hops {
		row.Hops[i] = Unreached
	}
	row.Hops[src] = 0
	queue := make([]int, 1, idx.Len())
	queue[0] = src
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cur := queue[0]
		queue = queue[1:]
		next := row.Hops[cur] + 1
		if o.MaxDepth > 0 && next > o.MaxDepth {
			continue
		}
		nbrs, err := g.NeighborIDs(idx.ID(cur))
		if err != nil {
			return nil, fmt.Errorf("%w: neighbors of %q: %v", ErrNeighbors, idx.ID(cur), err)
		}
		for _, id := range nbrs {
			p, ok := idx.Pos(id)
			if !ok {
				return nil, fmt.Errorf("%w: %q is not indexed", ErrNeighbors, id)
			}
			if row.Hops[p] != Unreached {
				continue
			}
			row.Hops[p] = next
			row.Reached++
			queue = append(queue, p)
		}
	}
	return row, nil
}
