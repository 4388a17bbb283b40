// SPDX-License-Identifier: MIT
// Package: kec/builder
//
// id_fn.go - vertex ID schemes.

package builder

import (
	"fmt"
	"strconv"
)

// IDFn maps a vertex index to its ID.
type IDFn func(idx int) string

// DefaultIDFn renders idx in base 10.
func DefaultIDFn(idx int) string { return strconv.Itoa(idx) }

// SymbolIDFn maps 0..25 to "A".."Z". Panics outside that range.
func SymbolIDFn(idx int) string {
	if idx < 0 || idx > 25 {
		panic(fmt.Sprintf("SymbolIDFn: idx must be in [0,25], got %d", idx))
	}
	return string(rune('A' + idx))
}

// PrefixIDFn renders prefix followed by idx zero-padded to width, so that
// lexical order matches index order up to 10^width vertices.
func PrefixIDFn(prefix string, width int) IDFn {
	if width < 1 {
		width = 1
	}
	return func(idx int) string { return fmt.Sprintf("%s%0*d", prefix, width, idx) }
}
