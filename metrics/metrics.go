package metrics

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/gerrysim/constraint"
	"github.com/katalvlaran/gerrysim/partition"
)

// Compute derives the full metric set from a completed plan.
//
// The plan must satisfy the contiguity invariant: every district non-empty
// and connected. Compute re-checks this defensively and returns
// ErrInvalidPartition naming the first offending district, because fairness
// figures on a broken map are meaningless. The partition is never mutated.
func Compute(p *partition.Partition) (*Report, error) {
	if p == nil {
		return nil, ErrNilPartition
	}
	if per, ok := constraint.Contiguous(p); !ok {
		for d, connected := range per {
			if !connected {
				return nil, fmt.Errorf("%w: district %d is empty or disconnected", ErrInvalidPartition, d)
			}
		}
	}

	aggs := p.AggregatesAll()
	rows := make([]DistrictRow, len(aggs))
	shares := make([]float64, len(aggs))
	var seatsA, seatsB int
	for d, agg := range aggs {
		shares[d] = voteShare(agg.Population, agg.Lean)
		w := winnerOf(agg.Lean)
		switch w {
		case string(PartyA):
			seatsA++
		case string(PartyB):
			seatsB++
		}
		rows[d] = DistrictRow{
			District:   d,
			Units:      agg.Units,
			Population: agg.Population,
			Lean:       agg.Lean,
			ShareA:     shares[d],
			Winner:     w,
		}
	}
	maxDev, _ := constraint.Deviation(p)

	return &Report{
		EfficiencyGap: efficiencyGap(p),
		MeanMedian:    meanMedian(shares),
		CutEdges:      cutEdges(p),
		MaxDeviation:  maxDev,
		SeatsA:        seatsA,
		SeatsB:        seatsB,
		Districts:     rows,
	}, nil
}

// voteShare is PartyA's share under the margin vote model: votesA =
// (population + lean) / 2. A zero-population district is scored neutral.
func voteShare(pop, lean int64) float64 {
	if pop <= 0 {
		return 0.5
	}

	return (float64(pop) + float64(lean)) / 2 / float64(pop)
}

// winnerOf maps the aggregate margin sign to "A", "B", or "tie".
func winnerOf(lean int64) string {
	switch {
	case lean > 0:
		return string(PartyA)
	case lean < 0:
		return string(PartyB)
	default:
		return "tie"
	}
}

// wastedVotes splits one district's votes into wasted counts under the
// half-threshold rule: the winner wastes votes beyond the winning
// threshold, the loser wastes all of theirs. An exact tie leaves both
// parties at the threshold, wasting nothing.
func wastedVotes(pop, lean int64) (wastedA, wastedB float64) {
	votesA := (float64(pop) + float64(lean)) / 2
	votesB := float64(pop) - votesA
	half := float64(pop) / 2
	switch {
	case lean > 0:
		return votesA - half, votesB
	case lean < 0:
		return votesA, votesB - half
	default:
		return 0, 0
	}
}

// efficiencyGap is (ΣwastedA − ΣwastedB) / total votes, 0 on an empty map.
func efficiencyGap(p *partition.Partition) float64 {
	var wa, wb, total float64
	for _, agg := range p.AggregatesAll() {
		a, b := wastedVotes(agg.Population, agg.Lean)
		wa += a
		wb += b
		total += float64(agg.Population)
	}
	if total == 0 {
		return 0
	}

	return (wa - wb) / total
}

// meanMedian is median − mean of the given shares; 0 for an empty slice.
func meanMedian(shares []float64) float64 {
	if len(shares) == 0 {
		return 0
	}
	var mean float64
	for _, s := range shares {
		mean += s
	}
	mean /= float64(len(shares))

	sorted := append([]float64(nil), shares...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	return median - mean
}

// cutEdges counts adjacency edges crossing a district boundary. Each edge
// is visited from both endpoints; the u < v guard keeps the count single.
func cutEdges(p *partition.Partition) int {
	g := p.Graph()
	var cut int
	for u := 0; u < g.Len(); u++ {
		du := p.District(u)
		for _, v := range g.Neighbors(u) {
			if u < v && p.District(v) != du {
				cut++
			}
		}
	}

	return cut
}

// seatTotals counts districts won per party; ties count for neither.
func seatTotals(p *partition.Partition) (seatsA, seatsB int) {
	for _, agg := range p.AggregatesAll() {
		switch {
		case agg.Lean > 0:
			seatsA++
		case agg.Lean < 0:
			seatsB++
		}
	}

	return seatsA, seatsB
}
