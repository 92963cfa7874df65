// Package runner executes batches of independent optimization runs and
// merges the best plan. See doc.go.
package runner

import (
	"errors"
	"time"

	"github.com/katalvlaran/gerrysim/anneal"
	"github.com/katalvlaran/gerrysim/metrics"
)

// ErrNoRuns is returned when the configured run count is below one.
var ErrNoRuns = errors.New("runner: at least one run is required")

// Config sizes and seeds a batch of independent optimization runs.
type Config struct {
	// Districts is the district count K, forwarded to every run.
	Districts int

	// Runs is the number of independent optimizations; must be ≥ 1.
	Runs int

	// Parallelism bounds concurrently executing runs; values < 1 leave
	// the batch unbounded.
	Parallelism int

	// Seed is the parent seed. Run r uses anneal.DeriveSeed(Seed, r), so
	// a batch reproduces exactly regardless of scheduling order.
	Seed int64

	// Options are forwarded to every anneal.Optimize call. The derived
	// per-run seed and the batch context are appended after these and
	// take precedence.
	Options []anneal.Option
}

// RunResult captures one finished run.
type RunResult struct {
	// Run is the zero-based index within the batch.
	Run int `json:"run"`

	// ID correlates the run's log lines.
	ID string `json:"id"`

	// Seed is the derived per-run seed.
	Seed int64 `json:"seed"`

	// Score is the final objective value; lower is better.
	Score float64 `json:"score"`

	// Duration is the run's wall-clock time.
	Duration time.Duration `json:"duration"`

	// Result is the raw optimizer outcome, including the final plan.
	Result *anneal.Result `json:"-"`

	// Report holds the plan's computed metrics.
	Report *metrics.Report `json:"report"`
}

// Summary is the merged outcome of a batch.
type Summary struct {
	// Objective is the minimized objective's name.
	Objective string `json:"objective"`

	// Best is the winning run: lowest score, ties broken by run index.
	Best RunResult `json:"best"`

	// Runs lists every run in index order.
	Runs []RunResult `json:"runs"`
}
