// Package anneal - RNG utilities shared by the feasibility and search phases.
//
// All randomness in an optimization run flows from one seeded source so that
// a fixed seed reproduces the exact move sequence, acceptance decisions, and
// final plan.
//
// Goals:
//   - Determinism: same seed ⇒ identical results across platforms.
//   - Encapsulation: a single RNG factory; no time-based sources anywhere.
//   - Independence: derived streams for restarts and parallel runs stay
//     uncorrelated via a SplitMix64-style mix.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Each run/restart owns its stream.
package anneal

import "math/rand"

// defaultRNGSeed is the fixed "zero" seed used when callers pass seed==0.
// The value is arbitrary but stable to keep reproducible defaults.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
//
// Complexity: O(1).
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new 64-bit
// seed. Use it to give restarts, workers, or parallel runs independent yet
// reproducible randomness: DeriveSeed(base, run) for run = 0, 1, 2, ...
//
// The constants are the canonical SplitMix64 multipliers/finalizer; they
// give strong bit diffusion, so adjacent stream IDs produce uncorrelated
// seeds.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// deriveRNG creates an independent deterministic RNG stream from a base RNG
// and a stream identifier. If base==nil, defaultRNGSeed is the parent.
// Otherwise base.Int63() is consumed once, so reusing a stream ID by
// mistake still yields distinct children.
//
// Call during setup (not in hot loops) to create per-restart RNGs.
//
// Complexity: O(1).
func deriveRNG(base *rand.Rand, stream uint64) *rand.Rand {
	var parent int64
	if base == nil {
		parent = defaultRNGSeed
	} else {
		parent = base.Int63()
	}

	return rand.New(rand.NewSource(DeriveSeed(parent, stream)))
}
