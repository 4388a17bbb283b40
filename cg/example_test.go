// SPDX-License-Identifier: MIT

package cg_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/kec/cg"
	"github.com/katalvlaran/kec/matrix"
)

// ExampleSolve solves a small diagonally dominant system with the
// automatically chosen preconditioner.
func ExampleSolve() {
	a, _ := matrix.NewCSR(2, 2, []matrix.Triplet{
		{Row: 0, Col: 0, Value: 4}, {Row: 0, Col: 1, Value: 1},
		{Row: 1, Col: 0, Value: 1}, {Row: 1, Col: 1, Value: 3},
	})
	m, _ := cg.ChoosePreconditioner(a, cg.ModeAuto)
	res, err := cg.Solve(context.Background(), a, []float64{1, 2}, cg.WithPreconditioner(m))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%s %.4f %.4f\n", res.Preconditioner, res.X[0], res.X[1])
	// Output: jacobi 0.0909 0.6364
}
