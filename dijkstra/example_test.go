// SPDX-License-Identifier: MIT

package dijkstra_test

import (
	"fmt"

	"github.com/katalvlaran/kec/core"
	"github.com/katalvlaran/kec/dijkstra"
)

// ExampleDijkstra measures association distance as 1/strength.
func ExampleDijkstra() {
	g := core.NewGraph()
	_, _ = g.AddEdge("sun", "hot", 4)
	_, _ = g.AddEdge("hot", "fire", 2)
	_, _ = g.AddEdge("sun", "fire", 0.5)

	dist, prev, err := dijkstra.Dijkstra(g,
		dijkstra.Source("sun"),
		dijkstra.WithLength(dijkstra.InverseWeight),
		dijkstra.WithReturnPath(),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("fire %.2f via %s\n", dist["fire"], prev["fire"])
	// Output: fire 0.75 via hot
}
