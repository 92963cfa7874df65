package constraint_test

import (
	"fmt"

	"github.com/katalvlaran/gerrysim/constraint"
	"github.com/katalvlaran/gerrysim/partition"
	"github.com/katalvlaran/gerrysim/unitgraph"
)

// ExampleContiguous judges a legal stripe plan and a deliberately broken
// one on the same 3×3 grid.
func ExampleContiguous() {
	g, _ := unitgraph.NewGrid(3, 3)

	stripes, _ := partition.NewFromAssignment(g, 3, []int{0, 1, 2, 0, 1, 2, 0, 1, 2})
	_, ok := constraint.Contiguous(stripes)
	fmt.Println("stripes legal:", ok)

	// District 0 split across opposite corners.
	broken, _ := partition.NewFromAssignment(g, 2, []int{0, 1, 1, 1, 1, 1, 1, 1, 0})
	per, ok := constraint.Contiguous(broken)
	fmt.Println("broken legal:", ok, "per-district:", per)

	// Output:
	// stripes legal: true
	// broken legal: false per-district: [false true]
}

// ExampleDeviation measures balance of a stripe plan: every district holds
// exactly the target population.
func ExampleDeviation() {
	g, _ := unitgraph.NewGrid(3, 3)
	p, _ := partition.NewFromAssignment(g, 3, []int{0, 1, 2, 0, 1, 2, 0, 1, 2})

	max, _ := constraint.Deviation(p)
	fmt.Println("target:", constraint.TargetPopulation(g, 3))
	fmt.Println("max deviation:", max)

	// Output:
	// target: 300
	// max deviation: 0
}
