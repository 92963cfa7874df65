// Package partition defines core types, options, and sentinel errors
// for the partition package of github.com/katalvlaran/gerrysim.
package partition

import (
	"errors"
	"math/rand"

	"github.com/katalvlaran/gerrysim/unitgraph"
)

// Sentinel errors for partition construction and mutation.
var (
	// ErrNilGraph indicates a nil *unitgraph.Graph was passed to a constructor.
	ErrNilGraph = errors.New("partition: graph is nil")

	// ErrDistrictCount indicates a district count outside [1, unit count].
	ErrDistrictCount = errors.New("partition: district count must be in [1, unit count]")

	// ErrAssignmentShape indicates NewFromAssignment received an assignment
	// of wrong length or with district values outside [0, k).
	ErrAssignmentShape = errors.New("partition: assignment length or district value out of range")

	// ErrUnassignedUnits indicates seeded growth terminated with unreachable
	// units left over; the graph has components no seed landed in.
	ErrUnassignedUnits = errors.New("partition: seeded growth could not assign every unit")

	// ErrUnitIndex indicates a unit index outside [0, unit count).
	ErrUnitIndex = errors.New("partition: unit index out of range")

	// ErrDistrictIndex indicates a district index outside [0, district count).
	ErrDistrictIndex = errors.New("partition: district index out of range")
)

// defaultSeed is the fixed seed used when no WithSeed/WithRand option is
// given (and when WithSeed receives 0). Arbitrary but stable, so default
// construction stays reproducible.
const defaultSeed int64 = 1

// Aggregate holds the running totals of one district.
type Aggregate struct {
	Population int64 // Σ population over member units
	Lean       int64 // Σ signed lean over member units
	Units      int   // member unit count
}

// Partition is a mutable unit→district assignment over an immutable graph.
// All mutation goes through Reassign, which keeps aggs consistent with
// assign at every step. Not safe for concurrent mutation; clone per worker.
type Partition struct {
	g      *unitgraph.Graph
	k      int
	assign []int       // unit index → district index
	aggs   []Aggregate // district index → running totals
}

// config collects construction-time knobs set by Options.
type config struct {
	rng *rand.Rand
}

// Option customizes New by mutating the internal construction config.
type Option func(*config)

// WithSeed derives the growth RNG from the given seed.
// Policy: seed==0 ⇒ fixed default stream (still deterministic).
func WithSeed(seed int64) Option {
	return func(c *config) {
		s := seed
		if s == 0 {
			s = defaultSeed
		}
		c.rng = rand.New(rand.NewSource(s))
	}
}

// WithRand provides an explicit RNG for seeded growth.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("partition: WithRand(nil)")
	}
	return func(c *config) {
		c.rng = r
	}
}

// newConfig applies opts over the deterministic default config.
func newConfig(opts []Option) *config {
	c := &config{rng: rand.New(rand.NewSource(defaultSeed))}
	for _, opt := range opts {
		opt(c)
	}

	return c
}
