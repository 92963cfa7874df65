package partition

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/gerrysim/unitgraph"
)

// New builds a contiguous K-district starting plan by seeded multi-source
// region growing:
//
//  1. Draw K distinct seed units from the injected RNG.
//  2. Repeatedly pick the district with the smallest aggregate population
//     that still has frontier candidates (ties → lowest district index) and
//     annex one random unassigned unit adjacent to its territory.
//  3. Stop when every unit is assigned, or fail with ErrUnassignedUnits
//     when unassigned units remain but no frontier can reach them.
//
// Every district grown this way is contiguous by construction. Coverage
// fails only on disconnected graphs where some component received no seed;
// callers wanting feasibility on such inputs retry with another seed.
//
// Complexity: O(N + E) expected time, O(N + K) memory.
func New(g *unitgraph.Graph, k int, opts ...Option) (*Partition, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.Len()
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: k=%d units=%d", ErrDistrictCount, k, n)
	}
	c := newConfig(opts)

	p := &Partition{
		g:      g,
		k:      k,
		assign: make([]int, n),
		aggs:   make([]Aggregate, k),
	}
	for i := range p.assign {
		p.assign[i] = unassigned
	}

	// Stage 1: K distinct seeds, one per district.
	perm := c.rng.Perm(n)
	for d := 0; d < k; d++ {
		p.annex(perm[d], d)
	}

	// Stage 2: balanced growth. frontiers[d] holds annexation candidates;
	// entries may go stale once another district claims them, so pops skip
	// stale units lazily.
	frontiers := make([][]int, k)
	for d := 0; d < k; d++ {
		seed := perm[d]
		for _, v := range g.Neighbors(seed) {
			if p.assign[v] == unassigned {
				frontiers[d] = append(frontiers[d], v)
			}
		}
	}
	remaining := n - k
	for remaining > 0 {
		d := lightestWithFrontier(p.aggs, frontiers)
		if d < 0 {
			return nil, fmt.Errorf("%w: %d left", ErrUnassignedUnits, remaining)
		}
		u := popLive(&frontiers[d], p.assign, c.rng)
		if u < 0 {
			continue // frontier was all stale; re-pick district
		}
		p.annex(u, d)
		remaining--
		for _, v := range g.Neighbors(u) {
			if p.assign[v] == unassigned {
				frontiers[d] = append(frontiers[d], v)
			}
		}
	}

	return p, nil
}

// NewFromAssignment adopts an externally produced assignment (one district
// index per unit, in graph index order) and computes its aggregates.
// The slice is copied, not retained. Districts may be empty or
// non-contiguous here; legality is the constraint package's concern.
//
// Complexity: O(N + K).
func NewFromAssignment(g *unitgraph.Graph, k int, assign []int) (*Partition, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.Len()
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: k=%d units=%d", ErrDistrictCount, k, n)
	}
	if len(assign) != n {
		return nil, fmt.Errorf("%w: len=%d units=%d", ErrAssignmentShape, len(assign), n)
	}

	p := &Partition{
		g:      g,
		k:      k,
		assign: make([]int, n),
		aggs:   make([]Aggregate, k),
	}
	for u, d := range assign {
		if d < 0 || d >= k {
			return nil, fmt.Errorf("%w: unit %d district %d", ErrAssignmentShape, u, d)
		}
		p.assign[u] = d
		p.aggs[d].Population += g.Population(u)
		p.aggs[d].Lean += g.Lean(u)
		p.aggs[d].Units++
	}

	return p, nil
}

// unassigned marks a unit not yet claimed during seeded growth.
const unassigned = -1

// annex assigns unit u to district d unconditionally and credits its
// population and lean. Growth-time helper; u must be unassigned.
func (p *Partition) annex(u, d int) {
	p.assign[u] = d
	p.aggs[d].Population += p.g.Population(u)
	p.aggs[d].Lean += p.g.Lean(u)
	p.aggs[d].Units++
}

// lightestWithFrontier returns the district with the smallest population
// among those with a non-empty frontier, or -1 when all frontiers drained.
// Ties break toward the lowest index to keep growth deterministic.
func lightestWithFrontier(aggs []Aggregate, frontiers [][]int) int {
	best := -1
	for d := range frontiers {
		if len(frontiers[d]) == 0 {
			continue
		}
		if best < 0 || aggs[d].Population < aggs[best].Population {
			best = d
		}
	}

	return best
}

// popLive removes and returns a random still-unassigned unit from f,
// discarding stale entries along the way. Returns -1 once f drains.
func popLive(f *[]int, assign []int, rng *rand.Rand) int {
	for len(*f) > 0 {
		j := rng.Intn(len(*f))
		u := (*f)[j]
		(*f)[j] = (*f)[len(*f)-1]
		*f = (*f)[:len(*f)-1]
		if assign[u] == unassigned {
			return u
		}
	}

	return -1
}
