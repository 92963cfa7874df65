// Package partition maintains the unit→district assignment of a districting
// plan together with per-district running aggregates.
//
// What:
//
//   - Partition binds a unitgraph.Graph to an assignment slice and keeps
//     population/lean/unit-count aggregates per district, updated in O(1)
//     on every reassignment.
//   - New grows K contiguous starting districts from random seed units,
//     always extending the district with the smallest population, so initial
//     plans start roughly balanced.
//   - NewFromAssignment adopts an externally produced assignment.
//   - Reassign is the sole mutation primitive; it moves one unit and
//     transfers its contribution between the two aggregates.
//
// Why:
//
//   - Local-search optimizers probe thousands of single-unit moves; summing
//     district populations from scratch per probe would dominate runtime.
//     Incremental aggregates make a probe O(1) plus the validity check.
//
// Determinism:
//
//	All randomness flows through the injected RNG (WithSeed / WithRand).
//	The default is a fixed seed, so New is reproducible out of the box.
//	Ties in the balanced-growth rule break toward the lowest district index.
//
// Validity:
//
//	Partition tracks structure, not legality. Reassign accepts any
//	bounds-valid move, including ones that empty a district or break
//	contiguity; judging a plan is the constraint package's concern.
//
// Complexity:
//
//   - New:               O(N + E) expected (seeded multi-source growth).
//   - Reassign/District: O(1).
//   - Clone:             O(N + K).
//
// Errors:
//
//   - ErrNilGraph, ErrDistrictCount: invalid construction inputs.
//   - ErrAssignmentShape: NewFromAssignment length/range violations.
//   - ErrUnassignedUnits: growth could not reach every unit (disconnected
//     input with fewer reachable components than districts).
//   - ErrUnitIndex, ErrDistrictIndex: out-of-range arguments.
package partition
