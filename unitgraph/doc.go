// Package unitgraph models a set of indivisible population units and their
// adjacency as an immutable graph: the input universe of a districting plan.
//
// What:
//
//   - Unit couples a stable ID with a population count and a signed partisan
//     lean (positive favors party A, negative party B).
//   - Graph validates a unit set, symmetrizes and deduplicates the neighbor
//     relation, and exposes dense integer indices for allocation-free
//     traversal by partitioners and validators.
//   - NewGrid synthesizes rectangular scenarios ("r,c" IDs, 4-neighbor
//     adjacency) with per-cell population/lean hooks.
//
// Why:
//
//   - Districting simulations need a single validated adjacency universe
//     shared by every candidate plan; index-based access keeps the
//     optimizer's inner loop free of map lookups.
//   - Grid scenarios give reproducible inputs with known shape for tests,
//     benchmarks, and demos.
//
// Complexity:
//
//   - New:       O(N log N + E log E) time (ID ordering, adjacency sorting),
//     O(N + E) memory.
//   - Accessors: O(1). Neighbors returns an internal slice (read-only).
//   - NewGrid:   O(R×C).
//
// Errors:
//
//   - ErrNoUnits, ErrEmptyUnitID, ErrDuplicateUnit, ErrNegativePopulation,
//     ErrLeanExceedsPopulation, ErrUnknownNeighbor, ErrSelfAdjacency:
//     input validation failures (bad unit data).
//   - ErrUnknownUnit: lookup of an ID not present in the graph.
//   - ErrGridDimension: NewGrid called with rows or cols < 1.
package unitgraph
