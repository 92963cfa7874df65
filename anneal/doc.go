// Package anneal searches the space of legal districting plans for one that
// minimizes a pluggable objective, using seeded randomized local search with
// simulated-annealing acceptance.
//
// What
//
//   - Optimize drives the full lifecycle over a unitgraph.Graph:
//     feasibility (grow + balance-repair a contiguous starting plan),
//     search (transactional boundary moves), convergence.
//   - Result carries the final partition, its score, and run counters
//     (iterations, accepted, rejected, restarts, terminal state).
//   - Objective is a capability interface; any pure cost function over a
//     partition plugs in (the metrics package ships ready-made ones).
//
// Legality invariant
//
//	Every plan the optimizer exposes (after feasibility, after every
//	iteration, and in the final Result) covers all units with exactly K
//	non-empty contiguous districts within the population tolerance. A
//	proposal is trial-committed, validated, and rolled back by the inverse
//	reassignment when it fails validation or acceptance; rejected
//	candidates are internal retries, never errors.
//
// Move proposal
//
//	One iteration samples a boundary unit (a unit with at least one
//	neighbor in another district) and a receiver district among its
//	cross-district neighbors. The receiver always stays connected because
//	the moved unit is adjacent to it; only the donor needs re-checking,
//	which keeps validation per iteration near the size of one district.
//
// Acceptance
//
//	Improving moves (Δ < 0) always commit. Worsening moves commit with
//	probability exp(−Δ/T); T starts at Options.Temperature and decays
//	geometrically by Options.Cooling each iteration. Temperature 0 gives
//	pure greedy descent.
//
// Determinism
//
//	All randomness flows from Options.Seed through one base stream;
//	feasibility restarts use derived independent streams (DeriveSeed).
//	A fixed seed reproduces the exact proposal sequence, acceptance
//	decisions, and final assignment. Seed 0 selects a fixed default.
//
// Complexity (N = units, E = adjacency edges, K = districts)
//
//   - Feasibility: O(InitRestarts × (N + E) × balance budget) worst case.
//   - One search iteration: O(donor district + K); worst case O(N + E).
//   - Memory: O(N) beyond the partition itself.
//
// Errors
//
//   - ErrNilGraph, ErrNilObjective   if required inputs are missing.
//   - ErrOptionViolation             if an invalid Option was supplied.
//   - ErrInfeasible                  if no starting plan can satisfy the
//     configuration; wraps the underlying cause (district count out of
//     range, unreachable units, tolerance arithmetic), which stays
//     matchable via errors.Is.
//   - Context errors                 when cancelled; the Result so far is
//     still returned with a fully committed plan.
package anneal
