package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gerrysim/anneal"
	"github.com/katalvlaran/gerrysim/constraint"
	"github.com/katalvlaran/gerrysim/internal/config"
	"github.com/katalvlaran/gerrysim/partition"
	"github.com/katalvlaran/gerrysim/unitgraph"
)

// CheckReport summarizes the dataset and the population window every
// district of a legal plan must land in.
type CheckReport struct {
	Units           int     `json:"units"`
	Edges           int     `json:"edges"`
	Components      int     `json:"components"`
	TotalPopulation int64   `json:"total_population"`
	Districts       int     `json:"districts"`
	Target          float64 `json:"target_population"`
	Tolerance       float64 `json:"tolerance"`
	MinPopulation   float64 `json:"min_population"`
	MaxPopulation   float64 `json:"max_population"`
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the dataset and configuration without optimizing",
		Long: "Load the configured units, verify the graph and district count are\n" +
			"structurally workable, and report the population window a plan must hit.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(root, cmd)
			if err != nil {
				return err
			}

			g, err := buildGraph(cfg)
			if err != nil {
				return err
			}

			rep, err := checkFeasibility(g, cfg)
			if err != nil {
				return err
			}

			return renderCheck(cmd.OutOrStdout(), cfg.Output.Format, rep)
		},
	}

	addSharedFlags(cmd)

	return cmd
}

// checkFeasibility reports the dataset shape and rejects configurations
// no plan can ever satisfy: more districts than units, fewer districts
// than connected components, or an exact-balance demand the total
// population cannot divide into.
func checkFeasibility(g *unitgraph.Graph, cfg *config.Config) (*CheckReport, error) {
	k := cfg.Simulation.Districts
	n := g.Len()
	comps := g.Components()

	if k > n {
		return nil, fmt.Errorf("%w: %w: %d districts over %d units",
			anneal.ErrInfeasible, partition.ErrDistrictCount, k, n)
	}
	if comps > k {
		return nil, fmt.Errorf("%w: graph splits into %d components but only %d districts are allowed",
			anneal.ErrInfeasible, comps, k)
	}

	tol := cfg.Simulation.Tolerance
	if tol == 0 && g.TotalPopulation()%int64(k) != 0 {
		return nil, fmt.Errorf("%w: zero tolerance, but total population %d does not divide into %d districts",
			anneal.ErrInfeasible, g.TotalPopulation(), k)
	}

	target := constraint.TargetPopulation(g, k)

	return &CheckReport{
		Units:           n,
		Edges:           g.EdgeCount(),
		Components:      comps,
		TotalPopulation: g.TotalPopulation(),
		Districts:       k,
		Target:          target,
		Tolerance:       tol,
		MinPopulation:   target * (1 - tol),
		MaxPopulation:   target * (1 + tol),
	}, nil
}
