// SPDX-License-Identifier: MIT

package kec_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/kec/core"
	"github.com/katalvlaran/kec/kec"
)

// ExampleOllivierRicci compares a triangle edge with a bridge.
func ExampleOllivierRicci() {
	g := core.NewGraph()
	for _, e := range [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"}} {
		_, _ = g.AddEdge(e[0], e[1], 1)
	}
	r, err := kec.OllivierRicci(context.Background(), g, kec.WithAlpha(0))
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, e := range r.Edges {
		fmt.Printf("%s-%s %.3f\n", e.From, e.To, e.Value)
	}
	// Output:
	// a-b 0.500
	// a-c 0.333
	// b-c 0.333
	// c-d 0.000
}

// ExampleEngine_Compute evaluates entropy and curvature at two β values.
func ExampleEngine_Compute() {
	g := core.NewGraph()
	for _, e := range [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "a"}} {
		_, _ = g.AddEdge(e[0], e[1], 1)
	}
	req := kec.DefaultRequest()
	req.Betas = []float64{0.5, 2}
	req.Curvature.Method = kec.MethodForman
	req.SkipCoherence = true
	rep, err := kec.NewEngine().Compute(context.Background(), g, req)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, s := range rep.Samples() {
		fmt.Printf("%s β=%g %.4f\n", s.Kind, s.Beta, s.Value)
	}
	// Output:
	// entropy β=0.5 0.6931
	// curvature β=0.5 0.0000
	// entropy β=2 0.6931
	// curvature β=2 0.0000
}
