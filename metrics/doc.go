// Package metrics summarizes a finished districting plan as named fairness
// and compactness figures, and packages those figures as optimizer
// objectives.
//
// 🚀 What does it measure?
//
//	Given a valid plan (every district non-empty and contiguous), Compute
//	reports:
//	  • Efficiency gap  — (wastedA − wastedB) / total votes
//	  • Mean-median gap — median(shareA) − mean(shareA)
//	  • Cut edges       — adjacency edges crossing district boundaries
//	  • Max deviation   — worst |population − target| / target
//	  • Seats           — districts won per party (ties count for neither)
//
// ✨ Vote model:
//
//	Unit lean is a signed margin on the population scale: a district with
//	population V and aggregate lean M casts votesA = (V+M)/2 and
//	votesB = (V−M)/2. Wasted votes follow the half-threshold rule: the
//	winner wastes votes beyond V/2, the loser wastes all of theirs.
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/gerrysim/metrics"
//
//	report, err := metrics.Compute(p)
//	if err != nil { ... }           // ErrInvalidPartition on a broken map
//	fmt.Println(report.EfficiencyGap)
//
//	obj, _ := metrics.ObjectiveByName("fairness")
//	res, _ := anneal.Optimize(g, k, obj)
//
// Built-in objectives (all lower-is-better costs):
//   - fairness     — minimize |efficiency gap|
//   - advantage-a  — maximize PartyA seats (mean share breaks plateaus)
//   - advantage-b  — maximize PartyB seats
//   - compactness  — minimize cut edges
//
// Compute re-validates contiguity defensively and returns
// ErrInvalidPartition naming the first broken district; objectives skip
// that check because the optimizer scores only validated plans.
//
// Performance: every figure is one pass over districts or edges,
// O(N + E) time, O(K) memory.
package metrics
