package cli

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/gerrysim/anneal"
	"github.com/katalvlaran/gerrysim/internal/config"
	"github.com/katalvlaran/gerrysim/internal/dataset"
	"github.com/katalvlaran/gerrysim/partition"
	"github.com/katalvlaran/gerrysim/runner"
	"github.com/katalvlaran/gerrysim/unitgraph"
)

// flagBindings maps flag names onto configuration keys. Bound flags hold
// the highest precedence during loading; flags a command does not define
// are skipped.
var flagBindings = map[string]string{
	"districts":   "simulation.districts",
	"tolerance":   "simulation.tolerance",
	"iterations":  "simulation.max_iterations",
	"stale-limit": "simulation.stale_limit",
	"temperature": "simulation.temperature",
	"cooling":     "simulation.cooling",
	"restarts":    "simulation.init_restarts",
	"objective":   "simulation.objective",
	"seed":        "simulation.seed",
	"runs":        "batch.runs",
	"parallelism": "batch.parallelism",
	"data":        "dataset.path",
	"format":      "dataset.format",
	"grid":        "dataset.grid",
	"log-level":   "log.level",
	"log-format":  "log.format",
	"output":      "output.format",
	"assignment":  "output.assignment",
}

// addSharedFlags registers the flags common to run and check.
func addSharedFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntP("districts", "k", 0, "number of districts to carve (required)")
	fs.Float64("tolerance", anneal.DefaultTolerance, "population deviation ceiling; 0 demands exact balance")
	fs.String("objective", config.DefaultObjective, "objective: fairness|advantage-a|advantage-b|compactness")
	fs.Int64("seed", 0, "base random seed; 0 selects the fixed default stream")
	fs.String("data", "", "unit dataset file (.yaml/.yml or .csv)")
	fs.String("format", "", "dataset format override: yaml|csv")
	fs.String("grid", "", "synthesize a uniform RxC grid instead of a file, e.g. 8x8")
	fs.StringP("output", "o", config.DefaultOutputFormat, "result rendering: table|json")
}

func newRunCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Optimize a districting plan and report its metrics",
		Long: "Run a batch of independent annealed searches over the configured units,\n" +
			"pick the best-scoring legal plan, and render its fairness metrics.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(root, cmd)
			if err != nil {
				return err
			}

			log, err := newLogger(cfg.Log)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			g, err := buildGraph(cfg)
			if err != nil {
				return err
			}

			obj, err := cfg.Objective()
			if err != nil {
				return err
			}

			sum, err := runner.Run(cmd.Context(), g, obj, cfg.RunnerConfig(), log)
			if err != nil {
				return err
			}

			if path := cfg.Output.Assignment; path != "" {
				if err := writeAssignment(path, g, sum.Best.Result.Partition); err != nil {
					return err
				}
				log.Info("assignment written", zap.String("path", path))
			}

			return renderSummary(cmd.OutOrStdout(), cfg.Output.Format, sum)
		},
	}

	addSharedFlags(cmd)
	fs := cmd.Flags()
	fs.Int("iterations", anneal.DefaultMaxIterations, "search iteration budget per run")
	fs.Int("stale-limit", anneal.DefaultStaleLimit, "converge after this many rejected moves in a row; 0 disables")
	fs.Float64("temperature", anneal.DefaultTemperature, "initial annealing temperature; 0 is greedy descent")
	fs.Float64("cooling", anneal.DefaultCooling, "geometric temperature decay per iteration, in (0,1]")
	fs.Int("restarts", anneal.DefaultInitRestarts, "feasibility restart budget per run")
	fs.Int("runs", config.DefaultRuns, "independent runs; the best plan wins")
	fs.Int("parallelism", config.DefaultParallelism, "max concurrent runs; 0 is unbounded")
	fs.String("assignment", "", "also write the winning unit,district assignment CSV here")

	return cmd
}

// loadConfig merges changed flags over environment variables over the
// optional config file.
func loadConfig(root *rootOptions, cmd *cobra.Command) (*config.Config, error) {
	bind := config.WithFlagSet(cmd.Flags(), flagBindings)
	if root.configPath != "" {
		return config.Load(root.configPath, bind)
	}

	return config.LoadFromEnv(bind)
}

// buildGraph constructs the unit graph from the configured source: a
// synthetic grid when dataset.grid is set, a unit file otherwise.
func buildGraph(cfg *config.Config) (*unitgraph.Graph, error) {
	if cfg.Dataset.Grid != "" {
		rows, cols, err := cfg.Dataset.ParseGrid()
		if err != nil {
			return nil, fmt.Errorf("%w: dataset.grid: %v", config.ErrInvalid, err)
		}

		return dataset.Grid(rows, cols)
	}

	return dataset.Load(cfg.Dataset.Path, cfg.Dataset.Format)
}

// writeAssignment writes "unit,district" CSV rows for every unit in
// index order.
func writeAssignment(path string, g *unitgraph.Graph, p *partition.Partition) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cli: assignment file: %w", err)
	}

	w := csv.NewWriter(f)
	_ = w.Write([]string{"unit", "district"})
	for u, d := range p.Assignment() {
		_ = w.Write([]string{g.ID(u), strconv.Itoa(d)})
	}
	w.Flush()

	if err := w.Error(); err != nil {
		_ = f.Close()

		return fmt.Errorf("cli: writing assignment: %w", err)
	}

	return f.Close()
}
