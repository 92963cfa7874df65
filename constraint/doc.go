// Package constraint judges districting plans: per-district contiguity and
// population balance against the ideal target.
//
// What:
//
//   - Contiguous reports, for every district, whether its member units
//     induce a connected subgraph (iterative BFS, slice-backed queue).
//     An empty district is not contiguous.
//   - DistrictContiguous checks a single district, the optimizer's hot
//     path: after a boundary move only the donor district can break.
//   - Deviation measures per-district |population − target| / target with
//     target = total population / district count.
//
// Why:
//
//   - Validators are pure judgments over a partition snapshot. Enforcement
//     policy (tolerances, rollback) belongs to the optimizer; keeping the
//     checks side-effect-free lets them serve searches, reports, and tests
//     alike.
//
// Complexity:
//
//   - Contiguous:         O(N + E) time, O(N) memory.
//   - DistrictContiguous: O(N + E) worst case, proportional to the
//     district's size in practice.
//   - Deviation:          O(K) using partition aggregates.
//
// The package never mutates a partition and defines no sentinel errors:
// judgments are values, not failures.
package constraint
