// SPDX-License-Identifier: MIT
// Package: kec/core
//
// fingerprint.go - stable content hash used as graph identity.

package core

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a 64-bit xxhash of the orientation flag, the sorted
// vertex list and the sorted edge list (endpoints and exact weight bits).
// Equal graphs always hash equally; edge IDs do not participate.
func (g *Graph) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	if g.directed {
		_, _ = d.Write([]byte{1})
	} else {
		_, _ = d.Write([]byte{0})
	}
	for _, id := range g.Vertices() {
		_, _ = d.WriteString(id)
		_, _ = d.Write([]byte{0})
	}
	_, _ = d.Write([]byte{0xff})
	for _, e := range g.Edges() {
		_, _ = d.WriteString(e.From)
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(e.To)
		_, _ = d.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(e.Weight))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
