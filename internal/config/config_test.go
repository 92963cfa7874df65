package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gerrysim/anneal"
)

// validConfig returns a baseline that passes Validate; cases mutate one
// field at a time.
func validConfig() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Districts:     3,
			Tolerance:     0.1,
			MaxIterations: 1000,
			StaleLimit:    100,
			Temperature:   1,
			Cooling:       0.99,
			InitRestarts:  5,
			Objective:     "fairness",
			Seed:          42,
		},
		Batch:   BatchConfig{Runs: 2, Parallelism: 2},
		Dataset: DatasetConfig{Grid: "4x4"},
		Log:     LogConfig{Level: "info", Format: "console"},
		Output:  OutputConfig{Format: "table"},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Violations(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"ZeroDistricts", func(c *Config) { c.Simulation.Districts = 0 }},
		{"NegativeTolerance", func(c *Config) { c.Simulation.Tolerance = -0.5 }},
		{"ZeroIterations", func(c *Config) { c.Simulation.MaxIterations = 0 }},
		{"NegativeStaleLimit", func(c *Config) { c.Simulation.StaleLimit = -1 }},
		{"NegativeTemperature", func(c *Config) { c.Simulation.Temperature = -2 }},
		{"ZeroCooling", func(c *Config) { c.Simulation.Cooling = 0 }},
		{"CoolingAboveOne", func(c *Config) { c.Simulation.Cooling = 1.01 }},
		{"ZeroRestarts", func(c *Config) { c.Simulation.InitRestarts = 0 }},
		{"UnknownObjective", func(c *Config) { c.Simulation.Objective = "tilted" }},
		{"ZeroRuns", func(c *Config) { c.Batch.Runs = 0 }},
		{"NegativeParallelism", func(c *Config) { c.Batch.Parallelism = -1 }},
		{"NoDataset", func(c *Config) { c.Dataset = DatasetConfig{} }},
		{"AmbiguousDataset", func(c *Config) { c.Dataset = DatasetConfig{Path: "u.yaml", Grid: "4x4"} }},
		{"BadDatasetFormat", func(c *Config) { c.Dataset = DatasetConfig{Path: "u.dat", Format: "xml"} }},
		{"BadGridShape", func(c *Config) { c.Dataset = DatasetConfig{Grid: "4by4"} }},
		{"BadLogLevel", func(c *Config) { c.Log.Level = "verbose" }},
		{"BadLogFormat", func(c *Config) { c.Log.Format = "text" }},
		{"BadOutputFormat", func(c *Config) { c.Output.Format = "xml" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestParseGrid(t *testing.T) {
	cases := []struct {
		in         string
		rows, cols int
		ok         bool
	}{
		{"8x8", 8, 8, true},
		{"4X12", 4, 12, true},
		{"1x1", 1, 1, true},
		{"9", 0, 0, false},
		{"x3", 0, 0, false},
		{"3x", 0, 0, false},
		{"0x4", 0, 0, false},
		{"3x-2", 0, 0, false},
		{"axb", 0, 0, false},
	}
	for _, tc := range cases {
		rows, cols, err := DatasetConfig{Grid: tc.in}.ParseGrid()
		if !tc.ok {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.rows, rows, tc.in)
		assert.Equal(t, tc.cols, cols, tc.in)
	}
}

// TestAnnealOptions verifies the simulation section lands on the optimizer
// options field for field.
func TestAnnealOptions(t *testing.T) {
	cfg := validConfig()
	cfg.Simulation.Tolerance = 0.25
	cfg.Simulation.MaxIterations = 123
	cfg.Simulation.StaleLimit = 0
	cfg.Simulation.Temperature = 0
	cfg.Simulation.Cooling = 0.5
	cfg.Simulation.InitRestarts = 9

	o := anneal.DefaultOptions()
	for _, opt := range cfg.AnnealOptions() {
		opt(&o)
	}

	assert.Equal(t, 0.25, o.Tolerance)
	assert.Equal(t, 123, o.MaxIterations)
	assert.Equal(t, 0, o.StaleLimit)
	assert.Equal(t, 0.0, o.Temperature)
	assert.Equal(t, 0.5, o.Cooling)
	assert.Equal(t, 9, o.InitRestarts)
}

func TestRunnerConfig(t *testing.T) {
	cfg := validConfig()
	rc := cfg.RunnerConfig()

	assert.Equal(t, 3, rc.Districts)
	assert.Equal(t, 2, rc.Runs)
	assert.Equal(t, 2, rc.Parallelism)
	assert.Equal(t, int64(42), rc.Seed)
	assert.Len(t, rc.Options, 6)
}

func TestObjective(t *testing.T) {
	cfg := validConfig()
	obj, err := cfg.Objective()
	require.NoError(t, err)
	assert.Equal(t, "fairness", obj.Name())
}
