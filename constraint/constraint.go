package constraint

import (
	"github.com/katalvlaran/gerrysim/partition"
	"github.com/katalvlaran/gerrysim/unitgraph"
)

// Contiguous reports per-district contiguity of the plan: per[d] is true
// when district d's member units induce a connected subgraph, and ok is
// the conjunction over all districts. An empty district yields false.
//
// The check is an iterative BFS per district over induced adjacency;
// districts are disjoint, so one shared visited slice serves all of them.
//
// Time: O(N + E). Memory: O(N).
func Contiguous(p *partition.Partition) (per []bool, ok bool) {
	g := p.Graph()
	n := g.Len()
	k := p.K()

	// First member of each district, or -1 when empty.
	first := make([]int, k)
	for d := range first {
		first[d] = -1
	}
	for u := 0; u < n; u++ {
		if d := p.District(u); first[d] < 0 {
			first[d] = u
		}
	}

	per = make([]bool, k)
	ok = true
	seen := make([]bool, n)
	for d := 0; d < k; d++ {
		if first[d] < 0 {
			ok = false
			continue // empty district
		}
		reached := floodFill(g, p, d, first[d], seen)
		per[d] = reached == p.Size(d)
		ok = ok && per[d]
	}

	return per, ok
}

// DistrictContiguous reports whether district d alone induces a connected
// subgraph. This is the optimizer's hot path: a boundary move can only
// disconnect the donor district, since the moved unit was adjacent to the
// receiver. The index must be in [0, K()).
//
// Time: O(N + E) worst case; proportional to the district in practice.
func DistrictContiguous(p *partition.Partition, d int) bool {
	size := p.Size(d)
	if size == 0 {
		return false
	}
	g := p.Graph()
	n := g.Len()
	start := -1
	for u := 0; u < n; u++ {
		if p.District(u) == d {
			start = u
			break
		}
	}

	return floodFill(g, p, d, start, make([]bool, n)) == size
}

// floodFill runs an iterative BFS from start through units of district d,
// marking seen, and returns the number of reached members. Callers hand in
// a visited slice that is never reset here; disjoint districts cannot
// collide in it.
func floodFill(g *unitgraph.Graph, p *partition.Partition, d, start int, seen []bool) int {
	queue := []int{start}
	seen[start] = true
	reached := 0
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		reached++
		for _, v := range g.Neighbors(u) {
			if !seen[v] && p.District(v) == d {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}

	return reached
}

// TargetPopulation returns the ideal per-district population total/k as a
// float; integer division would misstate the target whenever k does not
// divide the total. k must be ≥ 1.
func TargetPopulation(g *unitgraph.Graph, k int) float64 {
	return float64(g.TotalPopulation()) / float64(k)
}

// Deviation measures population balance: per[d] is
// |population(d) − target| / target with target = total/K, and max is the
// largest per-district value. A plan satisfies tolerance t when max ≤ t.
// Degenerate zero-population universes deviate by 0 everywhere.
//
// Time: O(K) using partition aggregates.
func Deviation(p *partition.Partition) (max float64, per []float64) {
	k := p.K()
	per = make([]float64, k)
	target := TargetPopulation(p.Graph(), k)
	if target == 0 {
		return 0, per
	}

	for d := 0; d < k; d++ {
		pop := float64(mustAggregates(p, d).Population)
		dev := pop - target
		if dev < 0 {
			dev = -dev
		}
		dev /= target
		per[d] = dev
		if dev > max {
			max = dev
		}
	}

	return max, per
}

// mustAggregates reads district aggregates for an index the caller already
// bounds-checked via p.K().
func mustAggregates(p *partition.Partition, d int) partition.Aggregate {
	agg, _ := p.Aggregates(d)
	return agg
}
