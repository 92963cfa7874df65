package partition

import (
	"fmt"

	"github.com/katalvlaran/gerrysim/unitgraph"
)

// Reassign moves unit u into district d, transferring its population and
// lean between the affected aggregates. Moving a unit into its current
// district is a no-op. Any bounds-valid move is accepted, including moves
// that empty the donor district or break contiguity; validity is judged
// by the constraint package, not here.
//
// Complexity: O(1).
func (p *Partition) Reassign(u, d int) error {
	if u < 0 || u >= len(p.assign) {
		return fmt.Errorf("%w: %d", ErrUnitIndex, u)
	}
	if d < 0 || d >= p.k {
		return fmt.Errorf("%w: %d", ErrDistrictIndex, d)
	}
	from := p.assign[u]
	if from == d {
		return nil
	}

	pop, lean := p.g.Population(u), p.g.Lean(u)
	p.aggs[from].Population -= pop
	p.aggs[from].Lean -= lean
	p.aggs[from].Units--
	p.aggs[d].Population += pop
	p.aggs[d].Lean += lean
	p.aggs[d].Units++
	p.assign[u] = d

	return nil
}

// K returns the district count. Complexity: O(1).
func (p *Partition) K() int { return p.k }

// Len returns the unit count. Complexity: O(1).
func (p *Partition) Len() int { return len(p.assign) }

// Graph returns the underlying immutable unit graph. Complexity: O(1).
func (p *Partition) Graph() *unitgraph.Graph { return p.g }

// District returns the district of unit u. The index must be in
// [0, Len()). Complexity: O(1).
func (p *Partition) District(u int) int { return p.assign[u] }

// Size returns the member count of district d. The index must be in
// [0, K()). Complexity: O(1).
func (p *Partition) Size(d int) int { return p.aggs[d].Units }

// Aggregates returns the running totals of district d.
// Complexity: O(1).
func (p *Partition) Aggregates(d int) (Aggregate, error) {
	if d < 0 || d >= p.k {
		return Aggregate{}, fmt.Errorf("%w: %d", ErrDistrictIndex, d)
	}

	return p.aggs[d], nil
}

// AggregatesAll returns a fresh copy of all district aggregates, indexed
// by district. Complexity: O(K).
func (p *Partition) AggregatesAll() []Aggregate {
	out := make([]Aggregate, p.k)
	copy(out, p.aggs)

	return out
}

// Assignment returns a fresh copy of the unit→district assignment.
// Complexity: O(N).
func (p *Partition) Assignment() []int {
	out := make([]int, len(p.assign))
	copy(out, p.assign)

	return out
}

// Clone returns an independent copy sharing only the immutable graph.
// Mutating the clone never affects the original, so each worker in a
// parallel search can own one. Complexity: O(N + K).
func (p *Partition) Clone() *Partition {
	cp := &Partition{
		g:      p.g,
		k:      p.k,
		assign: make([]int, len(p.assign)),
		aggs:   make([]Aggregate, p.k),
	}
	copy(cp.assign, p.assign)
	copy(cp.aggs, p.aggs)

	return cp
}
