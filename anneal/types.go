// Package anneal defines tunable options, capability interfaces, and error
// definitions for the districting optimizer.
package anneal

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/gerrysim/partition"
)

// Sentinel errors for optimizer execution.
var (
	// ErrNilGraph is returned if a nil graph pointer is passed.
	ErrNilGraph = errors.New("anneal: graph is nil")

	// ErrNilObjective is returned if a nil objective is passed.
	ErrNilObjective = errors.New("anneal: objective is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("anneal: invalid option supplied")

	// ErrInfeasible is returned when no starting plan can satisfy the
	// structural constraints: district count out of range, unreachable
	// units, or a population tolerance no contiguous plan can meet.
	// The underlying cause is wrapped and remains matchable via errors.Is.
	ErrInfeasible = errors.New("anneal: no feasible plan under the given configuration")
)

// Objective scores a candidate plan; lower is better. Implementations must
// be pure functions of the partition snapshot: the optimizer calls Score
// on every trial move and compares values across iterations.
type Objective interface {
	// Name identifies the objective in results and logs.
	Name() string
	// Score returns the cost of the plan. It must not mutate p.
	Score(p *partition.Partition) float64
}

// State is the optimizer lifecycle phase, observable in Result.
type State int

const (
	// StateInitial covers feasibility search: growing and balance-repairing
	// starting plans until one satisfies the population tolerance.
	StateInitial State = iota
	// StateSearching covers the annealed local search over boundary moves.
	StateSearching
	// StateConverged is terminal: the iteration budget ran out or the
	// search went stale.
	StateConverged
)

// String returns the phase name for logs and test output.
func (s State) String() string {
	switch s {
	case StateInitial:
		return "Initial"
	case StateSearching:
		return "Searching"
	case StateConverged:
		return "Converged"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Default option values; see DefaultOptions.
const (
	// DefaultTolerance allows 10% population deviation from target.
	DefaultTolerance = 0.1
	// DefaultMaxIterations bounds the search phase.
	DefaultMaxIterations = 10000
	// DefaultStaleLimit converges after this many consecutive iterations
	// without an accepted move.
	DefaultStaleLimit = 500
	// DefaultTemperature is the initial annealing temperature.
	DefaultTemperature = 1.0
	// DefaultCooling is the geometric temperature decay per iteration.
	DefaultCooling = 0.995
	// DefaultInitRestarts bounds feasibility attempts before giving up.
	DefaultInitRestarts = 20
)

// Options holds parameters customizing an optimization run.
type Options struct {
	// Ctx allows cancellation and deadlines; checked once per iteration.
	Ctx context.Context

	// Tolerance is the largest acceptable per-district population
	// deviation |pop−target|/target. Must be ≥ 0.
	Tolerance float64

	// MaxIterations bounds the search phase. Must be ≥ 1.
	MaxIterations int

	// StaleLimit ends the search after this many consecutive iterations
	// without an accepted move. 0 disables staleness detection.
	StaleLimit int

	// Temperature is the initial annealing temperature; worsening moves
	// are accepted with probability exp(−Δ/T). 0 means pure greedy
	// descent.
	Temperature float64

	// Cooling is the geometric temperature decay applied every iteration.
	// Must be in (0, 1].
	Cooling float64

	// InitRestarts bounds the number of seeded starting plans tried
	// during the feasibility phase. Must be ≥ 1.
	InitRestarts int

	// Seed drives all randomness. 0 selects a fixed default stream, so
	// runs are reproducible unless a varying seed is supplied.
	Seed int64

	// internal error recorded during option parsing
	err error
}

// Option configures Optimize via functional arguments. An invalid Option
// (negative tolerance, zero cooling, ...) is recorded internally and
// surfaced as ErrOptionViolation when Optimize is invoked.
type Option func(*Options)

// DefaultOptions returns Options with production defaults:
//   - Context.Background()
//   - Tolerance 0.1, MaxIterations 10000, StaleLimit 500
//   - Temperature 1.0 with Cooling 0.995
//   - InitRestarts 20, Seed 0 (fixed default stream).
func DefaultOptions() Options {
	return Options{
		Ctx:           context.Background(),
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		StaleLimit:    DefaultStaleLimit,
		Temperature:   DefaultTemperature,
		Cooling:       DefaultCooling,
		InitRestarts:  DefaultInitRestarts,
		Seed:          0,
		err:           nil,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithTolerance sets the population deviation ceiling.
//
//	t ≥ 0: plans must satisfy max deviation ≤ t
//	t < 0 or NaN: invalid option → ErrOptionViolation
func WithTolerance(t float64) Option {
	return func(o *Options) {
		if t < 0 || math.IsNaN(t) {
			o.err = fmt.Errorf("%w: Tolerance must be non-negative (%v)", ErrOptionViolation, t)
			return
		}
		o.Tolerance = t
	}
}

// WithMaxIterations sets the search budget; n < 1 → ErrOptionViolation.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: MaxIterations must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxIterations = n
	}
}

// WithStaleLimit sets the staleness window.
//
//	n > 0: converge after n consecutive iterations without acceptance
//	n == 0: explicit "no staleness detection"
//	n < 0: invalid option → ErrOptionViolation
func WithStaleLimit(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: StaleLimit cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.StaleLimit = n
	}
}

// WithTemperature sets the initial annealing temperature; 0 disables
// annealing (greedy descent). Negative or NaN → ErrOptionViolation.
func WithTemperature(t float64) Option {
	return func(o *Options) {
		if t < 0 || math.IsNaN(t) {
			o.err = fmt.Errorf("%w: Temperature must be non-negative (%v)", ErrOptionViolation, t)
			return
		}
		o.Temperature = t
	}
}

// WithCooling sets the geometric decay factor, required in (0, 1].
func WithCooling(c float64) Option {
	return func(o *Options) {
		if !(c > 0 && c <= 1) {
			o.err = fmt.Errorf("%w: Cooling must be in (0,1] (%v)", ErrOptionViolation, c)
			return
		}
		o.Cooling = c
	}
}

// WithInitRestarts sets the feasibility restart budget; n < 1 →
// ErrOptionViolation.
func WithInitRestarts(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: InitRestarts must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.InitRestarts = n
	}
}

// WithSeed makes the run reproducible. Policy: seed==0 ⇒ fixed default
// stream; any other value is used verbatim.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// Result holds the outcome of an optimization run.
type Result struct {
	// Partition is the best plan found; structurally valid and within
	// tolerance whenever the run completed without error.
	Partition *partition.Partition

	// Objective is the Name() of the objective that was minimized.
	Objective string

	// Score is the objective value of Partition (lower is better).
	Score float64

	// Iterations counts search iterations performed.
	Iterations int

	// Accepted and Rejected count committed and rolled-back proposals.
	Accepted int
	Rejected int

	// Restarts counts extra feasibility attempts consumed before a
	// starting plan satisfied the tolerance (0 ⇒ first attempt held).
	Restarts int

	// State is the terminal lifecycle phase: StateConverged on normal
	// completion, StateSearching when cancelled mid-search.
	State State
}
