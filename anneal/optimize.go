package anneal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/gerrysim/constraint"
	"github.com/katalvlaran/gerrysim/partition"
	"github.com/katalvlaran/gerrysim/unitgraph"
)

// balanceBudgetFactor bounds repair moves per feasibility attempt: the
// deviation-reducing descent may spend at most factor×N moves.
const balanceBudgetFactor = 4

// maxProposalTries bounds boundary-unit rejection sampling per iteration.
// On plans with k ≥ 2 a boundary unit exists, so 32 draws miss only with
// vanishing probability; a miss just costs one rejected iteration.
const maxProposalTries = 32

// Optimize searches for a contiguous, population-balanced K-district plan
// minimizing obj over the unit graph.
//
// Phases:
//  1. Feasibility (StateInitial): grow a seeded contiguous plan
//     (partition.New), then repair population balance by deviation-reducing
//     boundary moves. Up to InitRestarts derived-seed attempts; none
//     feasible ⇒ ErrInfeasible wrapping the underlying cause.
//  2. Search (StateSearching): propose a random boundary unit and a random
//     adjacent receiver district; trial-commit the move; roll back unless
//     the donor stays contiguous and non-empty and the plan stays within
//     Tolerance; accept improving moves always and worsening moves with
//     probability exp(−Δ/T) under geometric cooling.
//  3. Convergence (StateConverged): iteration budget exhausted or
//     StaleLimit consecutive iterations without an accepted move.
//
// Contracts:
//   - obj.Score is treated as a pure cost (lower is better).
//   - A fixed Seed reproduces the full move sequence and final plan.
//   - Cancellation is honored once per iteration; a cancelled search
//     returns the work so far together with the context error, and the
//     returned plan is always fully committed (never mid-move).
//
// Complexity: O(MaxIterations × (district BFS + K)) time, O(N) memory
// beyond the partition.
func Optimize(g *unitgraph.Graph, k int, obj Objective, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if obj == nil {
		return nil, ErrNilObjective
	}
	// Build options and catch any invalid ones immediately.
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// Fast-fail arithmetic infeasibility: a zero tolerance is unreachable
	// when K does not divide the total population.
	if o.Tolerance == 0 && k >= 1 && g.TotalPopulation()%int64(k) != 0 {
		return nil, fmt.Errorf("%w: tolerance 0 with total population %d not divisible by %d districts",
			ErrInfeasible, g.TotalPopulation(), k)
	}

	s := &searcher{g: g, k: k, obj: obj, opts: o, state: StateInitial}
	if err := s.feasible(); err != nil {
		return nil, err
	}

	s.state = StateSearching
	s.score = s.obj.Score(s.p)
	s.temp = o.Temperature
	err := s.search()

	return s.result(), err
}

// searcher encapsulates mutable optimizer state across phases.
type searcher struct {
	g    *unitgraph.Graph
	k    int
	obj  Objective
	opts Options

	p     *partition.Partition
	rng   *rand.Rand
	score float64
	temp  float64

	iterations int
	accepted   int
	rejected   int
	restarts   int
	stale      int
	state      State

	cands []int // reused buffer of cross-district neighbor units
}

// feasible produces a contiguous starting plan within Tolerance, retrying
// with independently derived RNG streams. District-count violations are
// structural and fail immediately; unreachable-unit growth failures and
// tolerance misses consume restart attempts.
func (s *searcher) feasible() error {
	base := rngFromSeed(s.opts.Seed)
	bestDev := math.Inf(1)
	var growErr error

	for r := 0; r < s.opts.InitRestarts; r++ {
		// cancellation check (once per attempt)
		select {
		case <-s.opts.Ctx.Done():
			return s.opts.Ctx.Err()
		default:
		}

		rng := deriveRNG(base, uint64(r))
		p, err := partition.New(s.g, s.k, partition.WithRand(rng))
		if err != nil {
			if errors.Is(err, partition.ErrDistrictCount) {
				// No restart fixes an out-of-range district count.
				return fmt.Errorf("%w: %w", ErrInfeasible, err)
			}
			growErr = err
			continue
		}

		dev := s.repair(p)
		if dev <= s.opts.Tolerance {
			s.p = p
			s.rng = rng
			s.restarts = r

			return nil
		}
		if dev < bestDev {
			bestDev = dev
		}
	}

	if math.IsInf(bestDev, 1) && growErr != nil {
		// Every attempt failed at growth; surface the structural cause.
		return fmt.Errorf("%w: %w after %d attempts", ErrInfeasible, growErr, s.opts.InitRestarts)
	}

	return fmt.Errorf("%w: best deviation %.4f exceeds tolerance %v after %d attempts",
		ErrInfeasible, bestDev, s.opts.Tolerance, s.opts.InitRestarts)
}

// repair runs a deterministic first-improvement descent on the L1 population
// imbalance Σ|pop(d)−target|: scan units in index order, move the first unit
// whose transfer to an adjacent district strictly reduces the imbalance
// while keeping the donor contiguous and non-empty. Returns the final max
// deviation.
func (s *searcher) repair(p *partition.Partition) float64 {
	maxDev, _ := constraint.Deviation(p)
	if maxDev <= s.opts.Tolerance {
		return maxDev
	}
	target := constraint.TargetPopulation(s.g, s.k)
	budget := balanceBudgetFactor * s.g.Len()

	for moves := 0; moves < budget; moves++ {
		if !s.balanceStep(p, target) {
			break // local optimum of the imbalance descent
		}
		maxDev, _ = constraint.Deviation(p)
		if maxDev <= s.opts.Tolerance {
			break
		}
	}

	return maxDev
}

// balanceStep applies at most one imbalance-reducing move and reports
// whether one was applied.
func (s *searcher) balanceStep(p *partition.Partition, target float64) bool {
	n := s.g.Len()
	for u := 0; u < n; u++ {
		from := p.District(u)
		if p.Size(from) <= 1 {
			continue // donor would be emptied
		}
		w := float64(s.g.Population(u))
		fromPop := districtPop(p, from)

		for _, v := range s.g.Neighbors(u) {
			to := p.District(v)
			if to == from {
				continue
			}
			toPop := districtPop(p, to)
			delta := math.Abs(fromPop-w-target) - math.Abs(fromPop-target) +
				math.Abs(toPop+w-target) - math.Abs(toPop-target)
			if delta >= 0 {
				continue // not strictly improving
			}

			// Trial-commit; keep only if the donor stays connected.
			_ = p.Reassign(u, to)
			if !constraint.DistrictContiguous(p, from) {
				_ = p.Reassign(u, from)
				continue
			}

			return true
		}
	}

	return false
}

// search runs the annealed boundary-move loop until budget exhaustion or
// staleness. Single-district plans admit no boundary moves and converge
// immediately.
func (s *searcher) search() error {
	if s.k < 2 {
		s.state = StateConverged

		return nil
	}

	for s.iterations < s.opts.MaxIterations {
		// cancellation check (once per iteration)
		select {
		case <-s.opts.Ctx.Done():
			return s.opts.Ctx.Err()
		default:
		}

		s.iterations++
		if s.step() {
			s.accepted++
			s.stale = 0
		} else {
			s.rejected++
			s.stale++
		}

		// Geometric cooling; temperature 0 stays greedy.
		if s.temp > 0 {
			s.temp *= s.opts.Cooling
		}
		if s.opts.StaleLimit > 0 && s.stale >= s.opts.StaleLimit {
			break
		}
	}
	s.state = StateConverged

	return nil
}

// step makes one transactional proposal and reports whether it committed.
// The plan is structurally valid on every return path: a rejected move is
// rolled back by the inverse reassignment before returning.
func (s *searcher) step() bool {
	n := s.g.Len()

	// Stage 1: draw a boundary unit by rejection sampling; collect its
	// cross-district neighbors as receiver candidates.
	var (
		u     int
		from  int
		found bool
	)
	for try := 0; try < maxProposalTries; try++ {
		u = s.rng.Intn(n)
		from = s.p.District(u)
		s.cands = s.cands[:0]
		for _, v := range s.g.Neighbors(u) {
			if s.p.District(v) != from {
				s.cands = append(s.cands, v)
			}
		}
		if len(s.cands) > 0 {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	// Stage 2: the donor must keep at least one unit.
	if s.p.Size(from) <= 1 {
		return false
	}
	to := s.p.District(s.cands[s.rng.Intn(len(s.cands))])

	// Stage 3: trial-commit, then validate. The receiver stays connected
	// because u is adjacent to it; only the donor can break.
	_ = s.p.Reassign(u, to)
	if !constraint.DistrictContiguous(s.p, from) {
		_ = s.p.Reassign(u, from)

		return false
	}
	if maxDev, _ := constraint.Deviation(s.p); maxDev > s.opts.Tolerance {
		_ = s.p.Reassign(u, from)

		return false
	}

	// Stage 4: Metropolis acceptance on the objective delta.
	trial := s.obj.Score(s.p)
	delta := trial - s.score
	if delta < 0 || (s.temp > 0 && s.rng.Float64() < math.Exp(-delta/s.temp)) {
		s.score = trial

		return true
	}
	_ = s.p.Reassign(u, from)

	return false
}

// result snapshots the searcher into the exported Result.
func (s *searcher) result() *Result {
	return &Result{
		Partition:  s.p,
		Objective:  s.obj.Name(),
		Score:      s.score,
		Iterations: s.iterations,
		Accepted:   s.accepted,
		Rejected:   s.rejected,
		Restarts:   s.restarts,
		State:      s.state,
	}
}

// districtPop reads one district's population for an index the caller
// already knows is in range.
func districtPop(p *partition.Partition, d int) float64 {
	agg, _ := p.Aggregates(d)

	return float64(agg.Population)
}
