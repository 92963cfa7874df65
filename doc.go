// Package gerrysim is an in-memory districting laboratory: build a unit
// graph, carve it into legal districts, and measure who the map favors.
//
// 🚀 What is gerrysim?
//
//	A seedable simulator that brings together:
//		• Unit graphs: census-style units with population, partisan lean & adjacency
//		• Partitions: unit→district assignment with O(1) incremental aggregates
//		• Constraints: contiguity (iterative BFS) & population-balance windows
//		• Optimization: annealed boundary search with restarts & rollback
//		• Metrics: efficiency gap, mean-median, cut edges, seat counts
//		• Batches: parallel best-of-N runs with derived per-run seeds
//
// ✨ Why gerrysim?
//
//   - Deterministic – one seed fixes every random choice, so runs replay exactly
//   - Legal by construction – every reported plan is contiguous & population-balanced
//   - Composable – accept an Objective, return a Result; wire your own scoring
//
// Everything is organized under focused subpackages:
//
//	unitgraph/  — immutable unit graph: IDs, populations, leans, symmetric adjacency
//	partition/  — district assignment + incremental population/lean aggregates
//	constraint/ — contiguity and deviation checks over a partition
//	anneal/     — simulated-annealing optimizer (Initial → Searching → Converged)
//	metrics/    — fairness reports and the built-in objectives
//	runner/     — parallel best-of-N batch execution
//
// Quick ASCII example:
//
//	    0,0───0,1
//	     │     │
//	    1,0───1,1
//
//	a 2×2 grid of four 100-person units; two vertical districts split it 200/200.
//
// The gerrysim command wraps it all up: `gerrysim run --grid 8x8 -k 4`.
package gerrysim
