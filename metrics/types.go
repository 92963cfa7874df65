// Package metrics turns a finished districting plan into named fairness
// and compactness figures. See doc.go for formulas.
package metrics

import (
	"errors"

	"github.com/katalvlaran/gerrysim/partition"
)

// Sentinel errors returned by the reporter.
var (
	// ErrNilPartition is returned if a nil partition pointer is passed.
	ErrNilPartition = errors.New("metrics: partition is nil")

	// ErrInvalidPartition is returned when a report is requested on a plan
	// that violates the contiguity invariant (a district is empty or
	// disconnected). The offending district index is wrapped in the detail.
	ErrInvalidPartition = errors.New("metrics: partition violates districting invariants")

	// ErrUnknownObjective is returned by ObjectiveByName for names outside
	// the built-in registry.
	ErrUnknownObjective = errors.New("metrics: unknown objective")
)

// Party labels the two sides of the signed lean scale: positive unit lean
// favors PartyA, negative favors PartyB.
type Party string

// The two parties of the lean scale.
const (
	PartyA Party = "A"
	PartyB Party = "B"
)

// Objective is a named, pure, lower-is-better cost over a plan. It mirrors
// the optimizer's scoring capability, so every value built in this package
// plugs directly into anneal.Optimize.
type Objective interface {
	// Name identifies the objective in results and logs.
	Name() string
	// Score returns the cost of the plan. It must not mutate p.
	Score(p *partition.Partition) float64
}

// DistrictRow is one district's line in a Report.
type DistrictRow struct {
	// District is the district index, 0..K-1.
	District int `json:"district"`
	// Units is the member unit count.
	Units int `json:"units"`
	// Population is the aggregate population.
	Population int64 `json:"population"`
	// Lean is the aggregate signed margin (positive favors PartyA).
	Lean int64 `json:"lean"`
	// ShareA is PartyA's vote share under the margin vote model; 0.5 for a
	// district with zero population.
	ShareA float64 `json:"share_a"`
	// Winner is "A", "B", or "tie".
	Winner string `json:"winner"`
}

// Report is the full metric set for one plan.
type Report struct {
	// EfficiencyGap is (wastedA − wastedB) / totalVotes; positive values
	// mean PartyA wastes more votes, i.e. the plan favors PartyB.
	EfficiencyGap float64 `json:"efficiency_gap"`

	// MeanMedian is median(shareA) − mean(shareA) across districts;
	// negative values suggest PartyA's voters are packed.
	MeanMedian float64 `json:"mean_median"`

	// CutEdges counts adjacency edges whose endpoints lie in different
	// districts; lower means more compact boundaries.
	CutEdges int `json:"cut_edges"`

	// MaxDeviation is the largest |population − target| / target across
	// districts, target being totalPopulation / K.
	MaxDeviation float64 `json:"max_deviation"`

	// SeatsA and SeatsB count districts won by each party; tied districts
	// count for neither.
	SeatsA int `json:"seats_a"`
	SeatsB int `json:"seats_b"`

	// Districts holds one row per district, ordered by district index.
	Districts []DistrictRow `json:"districts"`
}
