package unitgraph

import (
	"fmt"
	"sort"
)

// New validates a unit set and builds the immutable Graph.
//
// Validation stages:
//  1. Shape: at least one unit (ErrNoUnits).
//  2. Per-unit scan: non-empty IDs (ErrEmptyUnitID), uniqueness
//     (ErrDuplicateUnit), population ≥ 0 (ErrNegativePopulation),
//     |lean| ≤ population (ErrLeanExceedsPopulation).
//  3. Adjacency: every referenced neighbor exists (ErrUnknownNeighbor),
//     no self-loops (ErrSelfAdjacency); the relation is symmetrized
//     (union of both directions) and deduplicated.
//
// Unit order in the input is irrelevant: indices are assigned by ID
// ascending, so equal unit sets always produce identical graphs.
// The input slice is never retained; Neighbors slices are copied.
//
// Complexity: O(N log N + E log E) time, O(N + E) memory.
func New(units []Unit) (*Graph, error) {
	// Stage 1: shape.
	if len(units) == 0 {
		return nil, ErrNoUnits
	}
	n := len(units)

	// Stage 2: per-unit scan over the input order.
	byID := make(map[string]*Unit, n)
	for i := range units {
		u := &units[i]
		if u.ID == "" {
			return nil, fmt.Errorf("%w: unit at position %d", ErrEmptyUnitID, i)
		}
		if _, dup := byID[u.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateUnit, u.ID)
		}
		if u.Population < 0 {
			return nil, fmt.Errorf("%w: unit %q population=%d", ErrNegativePopulation, u.ID, u.Population)
		}
		if u.Lean > u.Population || u.Lean < -u.Population {
			return nil, fmt.Errorf("%w: unit %q lean=%d population=%d", ErrLeanExceedsPopulation, u.ID, u.Lean, u.Population)
		}
		byID[u.ID] = u
	}

	// Assign dense indices by ID ascending for order-independent results.
	ids := make([]string, 0, n)
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}

	g := &Graph{
		ids:   ids,
		pop:   make([]int64, n),
		lean:  make([]int64, n),
		adj:   make([][]int, n),
		index: index,
	}
	for i, id := range ids {
		u := byID[id]
		g.pop[i] = u.Population
		g.lean[i] = u.Lean
		g.totalPop += u.Population
	}

	// Stage 3: adjacency. Validate references, then mirror and dedupe.
	sets := make([]map[int]struct{}, n)
	for i := range sets {
		sets[i] = make(map[int]struct{})
	}
	for _, id := range ids {
		u := byID[id]
		ui := index[id]
		for _, ref := range u.Neighbors {
			vi, ok := index[ref]
			if !ok {
				return nil, fmt.Errorf("%w: unit %q references %q", ErrUnknownNeighbor, id, ref)
			}
			if vi == ui {
				return nil, fmt.Errorf("%w: unit %q", ErrSelfAdjacency, id)
			}
			sets[ui][vi] = struct{}{}
			sets[vi][ui] = struct{}{}
		}
	}
	for i := range sets {
		nbrs := make([]int, 0, len(sets[i]))
		for v := range sets[i] {
			nbrs = append(nbrs, v)
		}
		sort.Ints(nbrs)
		g.adj[i] = nbrs
		g.edges += len(nbrs)
	}
	g.edges /= 2 // each undirected edge counted from both endpoints

	return g, nil
}

// Len returns the number of units. Complexity: O(1).
func (g *Graph) Len() int { return len(g.ids) }

// TotalPopulation returns the population sum over all units. Complexity: O(1).
func (g *Graph) TotalPopulation() int64 { return g.totalPop }

// EdgeCount returns the number of undirected adjacency edges. Complexity: O(1).
func (g *Graph) EdgeCount() int { return g.edges }

// Index returns the dense index of the given unit ID and whether it exists.
// Complexity: O(1).
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// ID returns the unit ID at index i. The index must be in [0, Len()).
// Complexity: O(1).
func (g *Graph) ID(i int) string { return g.ids[i] }

// Population returns the population of the unit at index i. Complexity: O(1).
func (g *Graph) Population(i int) int64 { return g.pop[i] }

// Lean returns the signed lean of the unit at index i. Complexity: O(1).
func (g *Graph) Lean(i int) int64 { return g.lean[i] }

// Degree returns the neighbor count of the unit at index i. Complexity: O(1).
func (g *Graph) Degree(i int) int { return len(g.adj[i]) }

// Neighbors returns the sorted neighbor indices of the unit at index i.
// The returned slice is internal: callers must not modify it.
// Complexity: O(1).
func (g *Graph) Neighbors(i int) []int { return g.adj[i] }

// IDs returns a fresh copy of all unit IDs in ascending order.
// Complexity: O(N).
func (g *Graph) IDs() []string {
	out := make([]string, len(g.ids))
	copy(out, g.ids)

	return out
}

// Unit reconstructs the normalized unit at index i: the stored population
// and lean with neighbor IDs sorted ascending. The index must be in
// [0, Len()). Complexity: O(deg).
func (g *Graph) Unit(i int) Unit {
	nbrs := make([]string, len(g.adj[i]))
	for k, v := range g.adj[i] {
		nbrs[k] = g.ids[v]
	}

	return Unit{ID: g.ids[i], Population: g.pop[i], Lean: g.lean[i], Neighbors: nbrs}
}

// NeighborIDs returns the sorted neighbor IDs of the given unit ID.
// Returns ErrUnknownUnit if the ID is not present. Complexity: O(deg).
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	i, ok := g.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, id)
	}

	return g.Unit(i).Neighbors, nil
}

// Components returns the number of connected components of the adjacency
// graph, using an iterative BFS with a slice-backed queue.
//
// Time: O(N + E). Memory: O(N).
func (g *Graph) Components() int {
	n := len(g.ids)
	seen := make([]bool, n)
	count := 0

	for s := 0; s < n; s++ {
		if seen[s] {
			continue
		}
		count++
		// BFS flood fill from s.
		queue := []int{s}
		seen[s] = true
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for _, v := range g.adj[u] {
				if !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
	}

	return count
}
