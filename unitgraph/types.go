// Package unitgraph defines core types, options, and sentinel errors
// for the unitgraph package of github.com/katalvlaran/gerrysim.
package unitgraph

import (
	"errors"
)

// Sentinel errors for unit set validation and lookups.
var (
	// ErrNoUnits indicates an empty unit set.
	ErrNoUnits = errors.New("unitgraph: unit set must contain at least one unit")

	// ErrEmptyUnitID indicates a unit whose ID is the empty string.
	ErrEmptyUnitID = errors.New("unitgraph: unit ID must be non-empty")

	// ErrDuplicateUnit indicates two units sharing the same ID.
	ErrDuplicateUnit = errors.New("unitgraph: duplicate unit ID")

	// ErrNegativePopulation indicates a unit with population < 0.
	ErrNegativePopulation = errors.New("unitgraph: unit population must be non-negative")

	// ErrLeanExceedsPopulation indicates a unit whose |lean| exceeds its
	// population; a vote margin cannot be wider than the votes cast.
	ErrLeanExceedsPopulation = errors.New("unitgraph: unit lean magnitude must not exceed population")

	// ErrUnknownNeighbor indicates an adjacency reference to an ID absent
	// from the unit set.
	ErrUnknownNeighbor = errors.New("unitgraph: neighbor references unknown unit ID")

	// ErrSelfAdjacency indicates a unit listing itself as a neighbor.
	ErrSelfAdjacency = errors.New("unitgraph: unit must not neighbor itself")

	// ErrUnknownUnit indicates a lookup by an ID not present in the graph.
	ErrUnknownUnit = errors.New("unitgraph: unknown unit ID")

	// ErrGridDimension indicates NewGrid called with rows or cols < 1.
	ErrGridDimension = errors.New("unitgraph: grid dimensions must be at least 1x1")
)

// Unit is one indivisible population unit, the atom of any districting plan.
//
// ID         – unique, stable, non-empty identifier.
// Population – resident count, must be ≥ 0.
// Lean       – signed partisan vote margin; positive favors party A,
// negative favors party B; |Lean| ≤ Population.
// Neighbors  – IDs of adjacent units. The relation may be listed one-sided;
// construction takes the union of both directions.
type Unit struct {
	ID         string
	Population int64
	Lean       int64
	Neighbors  []string
}

// Graph is an immutable, validated unit universe with dense integer indices.
// Units are ordered by ID ascending; adjacency is symmetric, deduplicated,
// and sorted ascending per unit. Built once by New, never mutated afterwards,
// and therefore safe for concurrent readers.
type Graph struct {
	ids      []string       // index → unit ID, ascending
	pop      []int64        // index → population
	lean     []int64        // index → signed lean
	adj      [][]int        // index → sorted neighbor indices (symmetric)
	index    map[string]int // unit ID → index
	totalPop int64          // Σ population over all units
	edges    int            // undirected adjacency edge count
}

// DefaultGridPopulation is the per-cell population used by NewGrid unless
// overridden via WithUniformPopulation or WithPopulationFunc.
const DefaultGridPopulation int64 = 100

// PopulationFunc yields the population of the grid cell at (row, col).
type PopulationFunc func(row, col int) int64

// LeanFunc yields the signed lean of the grid cell at (row, col).
type LeanFunc func(row, col int) int64

// GridOptions contains tunable parameters for grid scenario synthesis.
type GridOptions struct {
	// Population yields per-cell population.
	// Default: constant DefaultGridPopulation.
	Population PopulationFunc
	// Lean yields per-cell signed lean. Default: constant 0.
	Lean LeanFunc
}

// GridOption customizes NewGrid by mutating GridOptions before synthesis.
type GridOption func(*GridOptions)

// DefaultGridOptions returns grid synthesis defaults:
// uniform population DefaultGridPopulation and lean 0 everywhere.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		Population: func(int, int) int64 { return DefaultGridPopulation },
		Lean:       func(int, int) int64 { return 0 },
	}
}

// WithUniformPopulation sets the same population p for every cell.
// Negative p is not rejected here; New reports ErrNegativePopulation
// for the first offending cell.
func WithUniformPopulation(p int64) GridOption {
	return func(o *GridOptions) {
		o.Population = func(int, int) int64 { return p }
	}
}

// WithPopulationFunc sets a per-cell population generator.
// Panics on nil to surface programmer error early.
func WithPopulationFunc(fn PopulationFunc) GridOption {
	if fn == nil {
		panic("unitgraph: WithPopulationFunc(nil)")
	}
	return func(o *GridOptions) {
		o.Population = fn
	}
}

// WithLeanFunc sets a per-cell lean generator. Panics on nil.
func WithLeanFunc(fn LeanFunc) GridOption {
	if fn == nil {
		panic("unitgraph: WithLeanFunc(nil)")
	}
	return func(o *GridOptions) {
		o.Lean = fn
	}
}
