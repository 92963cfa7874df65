package unitgraph

import (
	"fmt"
)

// NewGrid synthesizes a rows×cols scenario graph: each cell is one unit with
// ID "r,c" (row-major, zero-based), orthogonally adjacent to its 4 neighbors.
// Populations and leans come from GridOptions hooks; defaults are a uniform
// DefaultGridPopulation and lean 0.
//
// Returns ErrGridDimension if rows or cols < 1. Hook outputs flow through
// the same validation as New, so a hook yielding a negative population
// surfaces as ErrNegativePopulation naming the offending cell.
//
// Complexity: O(R×C) time and memory.
func NewGrid(rows, cols int, opts ...GridOption) (*Graph, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrGridDimension, rows, cols)
	}
	o := DefaultGridOptions()
	for _, opt := range opts {
		opt(&o)
	}

	units := make([]Unit, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			// East and south neighbors only; New mirrors the relation.
			var nbrs []string
			if c+1 < cols {
				nbrs = append(nbrs, gridID(r, c+1))
			}
			if r+1 < rows {
				nbrs = append(nbrs, gridID(r+1, c))
			}
			units = append(units, Unit{
				ID:         gridID(r, c),
				Population: o.Population(r, c),
				Lean:       o.Lean(r, c),
				Neighbors:  nbrs,
			})
		}
	}

	return New(units)
}

// gridID formats the unit identifier for the cell at (r, c).
func gridID(r, c int) string {
	return fmt.Sprintf("%d,%d", r, c)
}
