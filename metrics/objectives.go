package metrics

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/gerrysim/partition"
)

// FairnessObjective drives plans toward partisan symmetry by minimizing
// the absolute efficiency gap.
type FairnessObjective struct{}

// Name returns "fairness".
func (FairnessObjective) Name() string { return "fairness" }

// Score returns |efficiency gap|; 0 is a perfectly symmetric plan.
func (FairnessObjective) Score(p *partition.Partition) float64 {
	return math.Abs(efficiencyGap(p))
}

// AdvantageObjective maximizes one party's seat count. The party's mean
// vote share serves as a sub-seat gradient, so the search keeps direction
// on seat-count plateaus; a full seat always outweighs any share change.
type AdvantageObjective struct {
	// Party is the side being favored.
	Party Party
}

// Name returns "advantage-a" or "advantage-b".
func (o AdvantageObjective) Name() string {
	return "advantage-" + strings.ToLower(string(o.Party))
}

// Score returns −(seats + meanShare) for the favored party.
func (o AdvantageObjective) Score(p *partition.Partition) float64 {
	seatsA, seatsB := seatTotals(p)
	aggs := p.AggregatesAll()
	var mean float64
	for _, agg := range aggs {
		mean += voteShare(agg.Population, agg.Lean)
	}
	if len(aggs) > 0 {
		mean /= float64(len(aggs))
	}
	if o.Party == PartyB {
		return -(float64(seatsB) + (1 - mean))
	}

	return -(float64(seatsA) + mean)
}

// CompactnessObjective minimizes boundary length measured in cut
// adjacency edges.
type CompactnessObjective struct{}

// Name returns "compactness".
func (CompactnessObjective) Name() string { return "compactness" }

// Score returns the cut-edge count.
func (CompactnessObjective) Score(p *partition.Partition) float64 {
	return float64(cutEdges(p))
}

// ObjectiveByName resolves a configuration objective name, trimmed and
// case-insensitive. Known names: fairness, advantage-a, advantage-b,
// compactness. Unknown names return ErrUnknownObjective.
func ObjectiveByName(name string) (Objective, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fairness":
		return FairnessObjective{}, nil
	case "advantage-a":
		return AdvantageObjective{Party: PartyA}, nil
	case "advantage-b":
		return AdvantageObjective{Party: PartyB}, nil
	case "compactness":
		return CompactnessObjective{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownObjective, name)
	}
}
