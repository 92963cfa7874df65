package config

import (
	"github.com/spf13/viper"

	"github.com/katalvlaran/gerrysim/anneal"
)

// Defaults for fields a minimal configuration may omit. Simulation knobs
// reuse the optimizer's own defaults so the CLI and library agree.
const (
	DefaultObjective    = "fairness"
	DefaultRuns         = 1
	DefaultParallelism  = 0 // unbounded
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
	DefaultOutputFormat = "table"
)

// setDefaults registers every key with viper before unmarshalling.
// Registration makes GERRYSIM_* environment overrides visible to
// Unmarshal, and viper-level defaults (unlike post-unmarshal patching)
// preserve explicitly configured zero values such as tolerance: 0 or
// stale_limit: 0.
func setDefaults(v *viper.Viper) {
	v.SetDefault("simulation.districts", 0) // required, no usable default
	v.SetDefault("simulation.tolerance", anneal.DefaultTolerance)
	v.SetDefault("simulation.max_iterations", anneal.DefaultMaxIterations)
	v.SetDefault("simulation.stale_limit", anneal.DefaultStaleLimit)
	v.SetDefault("simulation.temperature", anneal.DefaultTemperature)
	v.SetDefault("simulation.cooling", anneal.DefaultCooling)
	v.SetDefault("simulation.init_restarts", anneal.DefaultInitRestarts)
	v.SetDefault("simulation.objective", DefaultObjective)
	v.SetDefault("simulation.seed", 0)

	v.SetDefault("batch.runs", DefaultRuns)
	v.SetDefault("batch.parallelism", DefaultParallelism)

	v.SetDefault("dataset.path", "")
	v.SetDefault("dataset.format", "")
	v.SetDefault("dataset.grid", "")

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	v.SetDefault("output.format", DefaultOutputFormat)
	v.SetDefault("output.assignment", "")
}
