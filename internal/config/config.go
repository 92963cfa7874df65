// Package config defines the simulation configuration record: plain data
// types, validation, and conversion into optimizer and runner settings.
// Loading and defaults live in loader.go and defaults.go.
package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/gerrysim/anneal"
	"github.com/katalvlaran/gerrysim/metrics"
	"github.com/katalvlaran/gerrysim/runner"
)

// Sentinel errors classifying configuration failures.
var (
	// ErrNotFound is returned when the config file cannot be read.
	ErrNotFound = errors.New("config: file not found")

	// ErrParse is returned when the config file or environment cannot be
	// decoded into the Config shape.
	ErrParse = errors.New("config: cannot parse configuration")

	// ErrInvalid is returned when a decoded Config fails semantic
	// validation. The offending field is named in the detail.
	ErrInvalid = errors.New("config: invalid configuration")
)

// SimulationConfig holds the optimizer tunables for a single run.
type SimulationConfig struct {
	// Districts is K, the number of districts to carve. Required.
	Districts int `mapstructure:"districts"`
	// Tolerance is the population deviation ceiling; 0 demands exact
	// balance.
	Tolerance float64 `mapstructure:"tolerance"`
	// MaxIterations bounds the annealed search.
	MaxIterations int `mapstructure:"max_iterations"`
	// StaleLimit converges after this many iterations without an accepted
	// move; 0 disables staleness detection.
	StaleLimit int `mapstructure:"stale_limit"`
	// Temperature is the initial annealing temperature; 0 is greedy.
	Temperature float64 `mapstructure:"temperature"`
	// Cooling is the geometric decay per iteration, in (0, 1].
	Cooling float64 `mapstructure:"cooling"`
	// InitRestarts bounds feasibility attempts.
	InitRestarts int `mapstructure:"init_restarts"`
	// Objective names the scoring function (see metrics.ObjectiveByName).
	Objective string `mapstructure:"objective"`
	// Seed drives all randomness; 0 selects the fixed default stream.
	Seed int64 `mapstructure:"seed"`
}

// BatchConfig sizes the best-of-N batch.
type BatchConfig struct {
	// Runs is the number of independent optimizations.
	Runs int `mapstructure:"runs"`
	// Parallelism bounds concurrent runs; 0 leaves the batch unbounded.
	Parallelism int `mapstructure:"parallelism"`
}

// DatasetConfig selects the unit universe: a file or a synthetic grid.
type DatasetConfig struct {
	// Path points at a YAML or CSV unit file.
	Path string `mapstructure:"path"`
	// Format forces the file format ("yaml" | "csv"); empty infers from
	// the extension.
	Format string `mapstructure:"format"`
	// Grid synthesizes a uniform RxC grid (e.g. "8x8") instead of a file.
	Grid string `mapstructure:"grid"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	// Level is "debug" | "info" | "warn" | "error".
	Level string `mapstructure:"level"`
	// Format is "json" | "console".
	Format string `mapstructure:"format"`
}

// OutputConfig shapes result rendering.
type OutputConfig struct {
	// Format is "table" | "json".
	Format string `mapstructure:"format"`
	// Assignment optionally writes the final unit→district assignment as
	// CSV to this path.
	Assignment string `mapstructure:"assignment"`
}

// Config is the root configuration record. It is always passed explicitly;
// nothing reads ambient process state.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Batch      BatchConfig      `mapstructure:"batch"`
	Dataset    DatasetConfig    `mapstructure:"dataset"`
	Log        LogConfig        `mapstructure:"log"`
	Output     OutputConfig     `mapstructure:"output"`
}

// Validate performs semantic validation and returns the first violation,
// wrapped in ErrInvalid. Callers should treat any error as fatal.
func (c *Config) Validate() error {
	s := c.Simulation
	if s.Districts < 1 {
		return fmt.Errorf("%w: simulation.districts must be ≥ 1, got %d", ErrInvalid, s.Districts)
	}
	if s.Tolerance < 0 || math.IsNaN(s.Tolerance) {
		return fmt.Errorf("%w: simulation.tolerance must be ≥ 0, got %v", ErrInvalid, s.Tolerance)
	}
	if s.MaxIterations < 1 {
		return fmt.Errorf("%w: simulation.max_iterations must be ≥ 1, got %d", ErrInvalid, s.MaxIterations)
	}
	if s.StaleLimit < 0 {
		return fmt.Errorf("%w: simulation.stale_limit must be ≥ 0, got %d", ErrInvalid, s.StaleLimit)
	}
	if s.Temperature < 0 || math.IsNaN(s.Temperature) {
		return fmt.Errorf("%w: simulation.temperature must be ≥ 0, got %v", ErrInvalid, s.Temperature)
	}
	if !(s.Cooling > 0 && s.Cooling <= 1) {
		return fmt.Errorf("%w: simulation.cooling must be in (0,1], got %v", ErrInvalid, s.Cooling)
	}
	if s.InitRestarts < 1 {
		return fmt.Errorf("%w: simulation.init_restarts must be ≥ 1, got %d", ErrInvalid, s.InitRestarts)
	}
	if _, err := metrics.ObjectiveByName(s.Objective); err != nil {
		return fmt.Errorf("%w: simulation.objective: %v", ErrInvalid, err)
	}

	if c.Batch.Runs < 1 {
		return fmt.Errorf("%w: batch.runs must be ≥ 1, got %d", ErrInvalid, c.Batch.Runs)
	}
	if c.Batch.Parallelism < 0 {
		return fmt.Errorf("%w: batch.parallelism must be ≥ 0, got %d", ErrInvalid, c.Batch.Parallelism)
	}

	d := c.Dataset
	switch {
	case d.Path == "" && d.Grid == "":
		return fmt.Errorf("%w: dataset.path or dataset.grid is required", ErrInvalid)
	case d.Path != "" && d.Grid != "":
		return fmt.Errorf("%w: dataset.path and dataset.grid are mutually exclusive", ErrInvalid)
	}
	switch d.Format {
	case "", "yaml", "csv":
	default:
		return fmt.Errorf("%w: dataset.format %q is invalid; expected yaml|csv", ErrInvalid, d.Format)
	}
	if d.Grid != "" {
		if _, _, err := d.ParseGrid(); err != nil {
			return fmt.Errorf("%w: dataset.grid: %v", ErrInvalid, err)
		}
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q is invalid; expected debug|info|warn|error", ErrInvalid, c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log.format %q is invalid; expected json|console", ErrInvalid, c.Log.Format)
	}
	switch c.Output.Format {
	case "table", "json":
	default:
		return fmt.Errorf("%w: output.format %q is invalid; expected table|json", ErrInvalid, c.Output.Format)
	}

	return nil
}

// ParseGrid parses the "RxC" grid shape, e.g. "8x8" or "4x12".
func (d DatasetConfig) ParseGrid() (rows, cols int, err error) {
	r, c, ok := strings.Cut(strings.ToLower(d.Grid), "x")
	if !ok {
		return 0, 0, fmt.Errorf("shape %q is not RxC", d.Grid)
	}
	rows, err = strconv.Atoi(r)
	if err != nil {
		return 0, 0, fmt.Errorf("rows in %q: %v", d.Grid, err)
	}
	cols, err = strconv.Atoi(c)
	if err != nil {
		return 0, 0, fmt.Errorf("cols in %q: %v", d.Grid, err)
	}
	if rows < 1 || cols < 1 {
		return 0, 0, fmt.Errorf("shape %q has non-positive dimension", d.Grid)
	}

	return rows, cols, nil
}

// Objective resolves the configured objective.
func (c *Config) Objective() (metrics.Objective, error) {
	return metrics.ObjectiveByName(c.Simulation.Objective)
}

// AnnealOptions converts the simulation section into optimizer options.
// The seed is deliberately absent: the runner derives per-run seeds from
// Simulation.Seed.
func (c *Config) AnnealOptions() []anneal.Option {
	return []anneal.Option{
		anneal.WithTolerance(c.Simulation.Tolerance),
		anneal.WithMaxIterations(c.Simulation.MaxIterations),
		anneal.WithStaleLimit(c.Simulation.StaleLimit),
		anneal.WithTemperature(c.Simulation.Temperature),
		anneal.WithCooling(c.Simulation.Cooling),
		anneal.WithInitRestarts(c.Simulation.InitRestarts),
	}
}

// RunnerConfig converts the batch and simulation sections into a runner
// configuration.
func (c *Config) RunnerConfig() runner.Config {
	return runner.Config{
		Districts:   c.Simulation.Districts,
		Runs:        c.Batch.Runs,
		Parallelism: c.Batch.Parallelism,
		Seed:        c.Simulation.Seed,
		Options:     c.AnnealOptions(),
	}
}
