package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gerrysim/anneal"
	"github.com/katalvlaran/gerrysim/internal/config"
	"github.com/katalvlaran/gerrysim/internal/dataset"
	"github.com/katalvlaran/gerrysim/partition"
)

// summaryJSON mirrors the JSON shape of a rendered runner.Summary.
type summaryJSON struct {
	Objective string `json:"objective"`
	Best      struct {
		Run    int     `json:"run"`
		Seed   int64   `json:"seed"`
		Score  float64 `json:"score"`
		Report struct {
			EfficiencyGap float64 `json:"efficiency_gap"`
			CutEdges      int     `json:"cut_edges"`
			MaxDeviation  float64 `json:"max_deviation"`
			SeatsA        int     `json:"seats_a"`
			SeatsB        int     `json:"seats_b"`
			Districts     []struct {
				District   int     `json:"district"`
				Units      int     `json:"units"`
				Population int64   `json:"population"`
				Lean       int64   `json:"lean"`
				ShareA     float64 `json:"share_a"`
				Winner     string  `json:"winner"`
			} `json:"districts"`
		} `json:"report"`
	} `json:"best"`
	Runs []json.RawMessage `json:"runs"`
}

func TestRunCmd_GridJSON(t *testing.T) {
	out, err := executeCommand(t,
		"run", "--grid", "3x3", "-k", "3", "--seed", "7",
		"-o", "json", "--log-level", "error")
	require.NoError(t, err)

	var sum summaryJSON
	require.NoError(t, json.Unmarshal([]byte(out), &sum))

	assert.Equal(t, "fairness", sum.Objective)
	assert.Len(t, sum.Runs, 1)
	assert.Equal(t, anneal.DeriveSeed(7, 0), sum.Best.Seed)

	// A lean-free uniform grid scores a zero efficiency gap everywhere.
	assert.Equal(t, 0.0, sum.Best.Score)
	require.Len(t, sum.Best.Report.Districts, 3)
	for _, d := range sum.Best.Report.Districts {
		assert.Equal(t, 3, d.Units)
		assert.Equal(t, int64(300), d.Population)
		assert.Equal(t, int64(0), d.Lean)
		assert.Equal(t, 0.5, d.ShareA)
		assert.Equal(t, "tie", d.Winner)
	}
	assert.Equal(t, 0.0, sum.Best.Report.MaxDeviation)
}

func TestRunCmd_TableOutput(t *testing.T) {
	out, err := executeCommand(t,
		"run", "--grid", "3x3", "-k", "3", "--seed", "7", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "objective       fairness")
	assert.Contains(t, out, "state           Converged")
	assert.Contains(t, out, "efficiency gap  +0.0000")
	assert.Contains(t, out, "seats           A=0 B=0")
	assert.Contains(t, out, "district  units  population")
}

func TestRunCmd_WritesAssignment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.csv")

	_, err := executeCommand(t,
		"run", "--grid", "3x3", "-k", "3", "--seed", "7",
		"--assignment", path, "-o", "json", "--log-level", "error")
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 10) // header + 9 units
	assert.Equal(t, "unit,district", lines[0])
	for _, line := range lines[1:] {
		parts := strings.Split(line, ",")
		require.Len(t, parts, 2)
		assert.Contains(t, []string{"0", "1", "2"}, parts[1])
	}
}

func TestRunCmd_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
simulation:
  districts: 3
  seed: 5
dataset:
  grid: 3x3
output:
  format: table
`), 0o644))

	// The changed -o flag must beat the file's output format.
	out, err := executeCommand(t,
		"run", "-c", path, "-o", "json", "--log-level", "error")
	require.NoError(t, err)

	var sum summaryJSON
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, "fairness", sum.Objective)
	assert.Equal(t, anneal.DeriveSeed(5, 0), sum.Best.Seed)
}

func TestRunCmd_DataFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
units:
  - id: a
    population: 120
    lean: 10
    neighbors: [b]
  - id: b
    population: 80
    lean: -10
    neighbors: [a]
`), 0o644))

	out, err := executeCommand(t,
		"run", "--data", path, "-k", "1", "--seed", "3",
		"-o", "json", "--log-level", "error")
	require.NoError(t, err)

	var sum summaryJSON
	require.NoError(t, json.Unmarshal([]byte(out), &sum))

	require.Len(t, sum.Best.Report.Districts, 1)
	d := sum.Best.Report.Districts[0]
	assert.Equal(t, 2, d.Units)
	assert.Equal(t, int64(200), d.Population)
	assert.Equal(t, int64(0), d.Lean)
	assert.Equal(t, "tie", d.Winner)
	assert.Equal(t, 0, sum.Best.Report.CutEdges)
	assert.Equal(t, 0.0, sum.Best.Report.EfficiencyGap)
}

func TestRunCmd_MissingDistricts(t *testing.T) {
	_, err := executeCommand(t, "run", "--grid", "3x3")
	require.ErrorIs(t, err, config.ErrInvalid)
	assert.Equal(t, ExitConfig, ExitCode(err))
}

func TestRunCmd_TooManyDistricts(t *testing.T) {
	_, err := executeCommand(t,
		"run", "--grid", "2x2", "-k", "9", "--log-level", "error")
	require.ErrorIs(t, err, anneal.ErrInfeasible)
	require.ErrorIs(t, err, partition.ErrDistrictCount)
	assert.Equal(t, ExitInfeasible, ExitCode(err))
}

func TestRunCmd_MissingDataFile(t *testing.T) {
	_, err := executeCommand(t,
		"run", "--data", filepath.Join(t.TempDir(), "absent.yaml"), "-k", "2")
	require.ErrorIs(t, err, dataset.ErrLoad)
	assert.Equal(t, ExitData, ExitCode(err))
}
