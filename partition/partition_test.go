package partition_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/katalvlaran/gerrysim/partition"
	"github.com/katalvlaran/gerrysim/unitgraph"
)

//----------------------------------------------------------------------------//
// Test helpers (independent of the implementation under test)
//----------------------------------------------------------------------------//

// recomputeAggregates sums district totals from scratch for comparison with
// the incrementally maintained ones.
func recomputeAggregates(g *unitgraph.Graph, p *partition.Partition) []partition.Aggregate {
	aggs := make([]partition.Aggregate, p.K())
	for u := 0; u < g.Len(); u++ {
		d := p.District(u)
		aggs[d].Population += g.Population(u)
		aggs[d].Lean += g.Lean(u)
		aggs[d].Units++
	}

	return aggs
}

// allContiguous re-derives per-district contiguity with its own flood fill,
// deliberately not reusing any library traversal.
func allContiguous(g *unitgraph.Graph, p *partition.Partition) bool {
	for d := 0; d < p.K(); d++ {
		var members []int
		for u := 0; u < g.Len(); u++ {
			if p.District(u) == d {
				members = append(members, u)
			}
		}
		if len(members) == 0 {
			return false
		}
		seen := map[int]bool{members[0]: true}
		queue := []int{members[0]}
		for qi := 0; qi < len(queue); qi++ {
			for _, v := range g.Neighbors(queue[qi]) {
				if p.District(v) == d && !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
		if len(seen) != len(members) {
			return false
		}
	}

	return true
}

//----------------------------------------------------------------------------//
// New tests
//----------------------------------------------------------------------------//

// TestNew_Errors verifies constructor input validation.
func TestNew_Errors(t *testing.T) {
	g, err := unitgraph.NewGrid(2, 2)
	if err != nil {
		t.Fatalf("NewGrid error: %v", err)
	}

	cases := []struct {
		name string
		g    *unitgraph.Graph
		k    int
		err  error
	}{
		{"NilGraph", nil, 2, partition.ErrNilGraph},
		{"ZeroDistricts", g, 0, partition.ErrDistrictCount},
		{"NegativeDistricts", g, -3, partition.ErrDistrictCount},
		{"MoreDistrictsThanUnits", g, 5, partition.ErrDistrictCount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := partition.New(tc.g, tc.k)
			if !errors.Is(err, tc.err) {
				t.Errorf("New(k=%d) error = %v; want %v", tc.k, err, tc.err)
			}
		})
	}
}

// TestNew_GrowthInvariants runs seeded growth across district counts on a
// 5×5 grid and checks coverage, aggregate consistency, and contiguity.
func TestNew_GrowthInvariants(t *testing.T) {
	g, err := unitgraph.NewGrid(5, 5)
	if err != nil {
		t.Fatalf("NewGrid error: %v", err)
	}

	for _, k := range []int{1, 2, 3, 5, 12, 25} {
		for _, seed := range []int64{1, 7, 42} {
			p, err := partition.New(g, k, partition.WithSeed(seed))
			if err != nil {
				t.Fatalf("New(k=%d,seed=%d) error: %v", k, seed, err)
			}

			// Every unit assigned to exactly one in-range district.
			counts := make([]int, k)
			for u := 0; u < g.Len(); u++ {
				d := p.District(u)
				if d < 0 || d >= k {
					t.Fatalf("k=%d seed=%d: unit %d district %d out of range", k, seed, u, d)
				}
				counts[d]++
			}
			for d, c := range counts {
				if c == 0 {
					t.Errorf("k=%d seed=%d: district %d empty", k, seed, d)
				}
				if c != p.Size(d) {
					t.Errorf("k=%d seed=%d: Size(%d)=%d; members=%d", k, seed, d, p.Size(d), c)
				}
			}

			if got, want := p.AggregatesAll(), recomputeAggregates(g, p); !reflect.DeepEqual(got, want) {
				t.Errorf("k=%d seed=%d: aggregates diverge: %v vs %v", k, seed, got, want)
			}
			if !allContiguous(g, p) {
				t.Errorf("k=%d seed=%d: grown plan not contiguous", k, seed)
			}
		}
	}
}

// TestNew_Deterministic verifies seed-for-seed reproducibility and the
// seed==0 fixed-default policy.
func TestNew_Deterministic(t *testing.T) {
	g, err := unitgraph.NewGrid(4, 4)
	if err != nil {
		t.Fatalf("NewGrid error: %v", err)
	}

	p1, err := partition.New(g, 4, partition.WithSeed(99))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	p2, err := partition.New(g, 4, partition.WithSeed(99))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if !reflect.DeepEqual(p1.Assignment(), p2.Assignment()) {
		t.Error("same seed produced different assignments")
	}

	z, err := partition.New(g, 4, partition.WithSeed(0))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	def, err := partition.New(g, 4)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if !reflect.DeepEqual(z.Assignment(), def.Assignment()) {
		t.Error("WithSeed(0) diverged from default construction")
	}
}

// TestNew_DisconnectedUnreachable verifies that growth fails when the graph
// has more components than any single seed can reach.
func TestNew_DisconnectedUnreachable(t *testing.T) {
	units := []unitgraph.Unit{
		{ID: "a", Population: 1, Neighbors: []string{"b"}},
		{ID: "b", Population: 1},
		{ID: "c", Population: 1, Neighbors: []string{"d"}},
		{ID: "d", Population: 1},
	}
	g, err := unitgraph.New(units)
	if err != nil {
		t.Fatalf("New graph error: %v", err)
	}

	for _, seed := range []int64{1, 2, 3, 42} {
		if _, err = partition.New(g, 1, partition.WithSeed(seed)); !errors.Is(err, partition.ErrUnassignedUnits) {
			t.Errorf("seed=%d: error = %v; want ErrUnassignedUnits", seed, err)
		}
	}
}

//----------------------------------------------------------------------------//
// NewFromAssignment tests
//----------------------------------------------------------------------------//

// TestNewFromAssignment verifies adoption of an external plan and its
// shape validation.
func TestNewFromAssignment(t *testing.T) {
	g, err := unitgraph.NewGrid(2, 2)
	if err != nil {
		t.Fatalf("NewGrid error: %v", err)
	}

	p, err := partition.NewFromAssignment(g, 2, []int{0, 0, 1, 1})
	if err != nil {
		t.Fatalf("NewFromAssignment error: %v", err)
	}
	if p.Size(0) != 2 || p.Size(1) != 2 {
		t.Errorf("Sizes = %d,%d; want 2,2", p.Size(0), p.Size(1))
	}
	agg, err := p.Aggregates(0)
	if err != nil {
		t.Fatalf("Aggregates error: %v", err)
	}
	if agg.Population != 2*unitgraph.DefaultGridPopulation {
		t.Errorf("district 0 population = %d; want %d", agg.Population, 2*unitgraph.DefaultGridPopulation)
	}

	bad := []struct {
		name   string
		k      int
		assign []int
		err    error
	}{
		{"ShortSlice", 2, []int{0, 1}, partition.ErrAssignmentShape},
		{"ValueOutOfRange", 2, []int{0, 1, 2, 0}, partition.ErrAssignmentShape},
		{"NegativeValue", 2, []int{0, -1, 1, 0}, partition.ErrAssignmentShape},
		{"BadK", 0, []int{0, 0, 0, 0}, partition.ErrDistrictCount},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := partition.NewFromAssignment(g, tc.k, tc.assign); !errors.Is(err, tc.err) {
				t.Errorf("error = %v; want %v", err, tc.err)
			}
		})
	}
}

//----------------------------------------------------------------------------//
// Reassign and Clone tests
//----------------------------------------------------------------------------//

// TestReassign verifies O(1) aggregate transfer against full recomputation
// across a randomized move sequence.
func TestReassign(t *testing.T) {
	g, err := unitgraph.NewGrid(3, 3, unitgraph.WithPopulationFunc(
		func(r, c int) int64 { return int64(10 + 3*r + c) },
	), unitgraph.WithLeanFunc(
		func(r, c int) int64 { return int64(c - r) },
	))
	if err != nil {
		t.Fatalf("NewGrid error: %v", err)
	}
	p, err := partition.New(g, 3, partition.WithSeed(7))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	moves := []struct{ u, d int }{{0, 2}, {4, 0}, {8, 1}, {0, 0}, {4, 2}, {4, 2}}
	for _, m := range moves {
		if err = p.Reassign(m.u, m.d); err != nil {
			t.Fatalf("Reassign(%d,%d) error: %v", m.u, m.d, err)
		}
		if p.District(m.u) != m.d {
			t.Fatalf("District(%d) = %d; want %d", m.u, p.District(m.u), m.d)
		}
		if got, want := p.AggregatesAll(), recomputeAggregates(g, p); !reflect.DeepEqual(got, want) {
			t.Fatalf("after Reassign(%d,%d): aggregates diverge: %v vs %v", m.u, m.d, got, want)
		}
	}
}

// TestReassign_NoOp verifies that moving a unit into its own district
// changes nothing.
func TestReassign_NoOp(t *testing.T) {
	g, err := unitgraph.NewGrid(2, 2)
	if err != nil {
		t.Fatalf("NewGrid error: %v", err)
	}
	p, err := partition.New(g, 2, partition.WithSeed(1))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	before := p.AggregatesAll()
	if err = p.Reassign(0, p.District(0)); err != nil {
		t.Fatalf("Reassign no-op error: %v", err)
	}
	if !reflect.DeepEqual(before, p.AggregatesAll()) {
		t.Error("no-op reassignment changed aggregates")
	}
}

// TestReassign_Bounds verifies index validation sentinels.
func TestReassign_Bounds(t *testing.T) {
	g, err := unitgraph.NewGrid(2, 2)
	if err != nil {
		t.Fatalf("NewGrid error: %v", err)
	}
	p, err := partition.New(g, 2)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if err = p.Reassign(-1, 0); !errors.Is(err, partition.ErrUnitIndex) {
		t.Errorf("Reassign(-1,0) error = %v; want ErrUnitIndex", err)
	}
	if err = p.Reassign(4, 0); !errors.Is(err, partition.ErrUnitIndex) {
		t.Errorf("Reassign(4,0) error = %v; want ErrUnitIndex", err)
	}
	if err = p.Reassign(0, 2); !errors.Is(err, partition.ErrDistrictIndex) {
		t.Errorf("Reassign(0,2) error = %v; want ErrDistrictIndex", err)
	}
	if _, err = p.Aggregates(2); !errors.Is(err, partition.ErrDistrictIndex) {
		t.Errorf("Aggregates(2) error = %v; want ErrDistrictIndex", err)
	}
}

// TestClone verifies the clone is independent of the original.
func TestClone(t *testing.T) {
	g, err := unitgraph.NewGrid(3, 3)
	if err != nil {
		t.Fatalf("NewGrid error: %v", err)
	}
	p, err := partition.New(g, 3, partition.WithSeed(5))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	cp := p.Clone()
	if !reflect.DeepEqual(p.Assignment(), cp.Assignment()) {
		t.Fatal("clone assignment differs from original")
	}
	if cp.Graph() != p.Graph() {
		t.Fatal("clone must share the immutable graph")
	}

	// Mutate the clone; the original must not move.
	target := (cp.District(0) + 1) % cp.K()
	if err = cp.Reassign(0, target); err != nil {
		t.Fatalf("Reassign error: %v", err)
	}
	if p.District(0) == cp.District(0) {
		t.Error("mutating the clone leaked into the original")
	}
	if !reflect.DeepEqual(p.AggregatesAll(), recomputeAggregates(g, p)) {
		t.Error("original aggregates disturbed by clone mutation")
	}
}
