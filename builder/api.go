// SPDX-License-Identifier: MIT
// Package: kec/builder
//
// api.go - BuildGraph and the Constructor type.

package builder

import (
	"fmt"

	"github.com/katalvlaran/kec/core"
)

// Constructor applies one deterministic mutation to g using cfg.
// Constructors validate parameters before touching g and never panic.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates a graph with gopts, resolves bopts and applies cons
// in order. The first constructor error is returned wrapped as
// "BuildGraph: %w"; branch with errors.Is on the package sentinels.
func BuildGraph(gopts []core.GraphOption, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph(gopts...)
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}
	return g, nil
}
