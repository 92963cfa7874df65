// Package dataset loads unit universes from YAML or CSV files, or
// synthesizes them as uniform grids. Every failure wraps ErrLoad, so
// callers can classify data problems with a single errors.Is check while
// finer sentinels stay matchable underneath.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gerrysim/unitgraph"
)

// Sentinel errors for unit loading.
var (
	// ErrLoad tags every error leaving this package.
	ErrLoad = errors.New("dataset: cannot load units")

	// ErrUnsupportedFormat is returned for file formats outside yaml|csv.
	ErrUnsupportedFormat = errors.New("dataset: unsupported format")

	// ErrMalformedRow is returned for a CSV header or row that does not
	// fit the expected id,population,lean,neighbors shape.
	ErrMalformedRow = errors.New("dataset: malformed row")
)

// csvColumns is the required CSV header, in order, case-insensitive.
var csvColumns = [4]string{"id", "population", "lean", "neighbors"}

// fileUnit is the on-disk unit shape shared by both formats.
type fileUnit struct {
	ID         string   `yaml:"id"`
	Population int64    `yaml:"population"`
	Lean       int64    `yaml:"lean"`
	Neighbors  []string `yaml:"neighbors"`
}

// fileDoc is the YAML document root.
type fileDoc struct {
	Units []fileUnit `yaml:"units"`
}

// Load reads the unit file at path and builds the validated graph.
// An empty format infers yaml|csv from the file extension.
func Load(path, format string) (*unitgraph.Graph, error) {
	units, err := LoadUnits(path, format)
	if err != nil {
		return nil, err
	}

	return build(units)
}

// Grid synthesizes a uniform rows×cols unit grid.
func Grid(rows, cols int) (*unitgraph.Graph, error) {
	g, err := unitgraph.NewGrid(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	return g, nil
}

// LoadUnits reads the unit file at path into raw units without building
// the graph.
func LoadUnits(path, format string) ([]unitgraph.Unit, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			format = "yaml"
		case ".csv":
			format = "csv"
		default:
			return nil, fmt.Errorf("%w: %w: cannot infer from %q", ErrLoad, ErrUnsupportedFormat, path)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()

	switch format {
	case "yaml":
		return decodeYAML(f)
	case "csv":
		return decodeCSV(f)
	default:
		return nil, fmt.Errorf("%w: %w: %q", ErrLoad, ErrUnsupportedFormat, format)
	}
}

// build validates units into a graph, tagging construction errors.
func build(units []unitgraph.Unit) (*unitgraph.Graph, error) {
	g, err := unitgraph.New(units)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	return g, nil
}

func decodeYAML(r io.Reader) ([]unitgraph.Unit, error) {
	var doc fileDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: yaml: %v", ErrLoad, err)
	}

	units := make([]unitgraph.Unit, len(doc.Units))
	for i, fu := range doc.Units {
		units[i] = unitgraph.Unit(fu)
	}

	return units, nil
}

func decodeCSV(r io.Reader) ([]unitgraph.Unit, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w: missing header", ErrLoad, ErrMalformedRow)
	}
	if len(header) != len(csvColumns) {
		return nil, fmt.Errorf("%w: %w: header has %d columns, want %d",
			ErrLoad, ErrMalformedRow, len(header), len(csvColumns))
	}
	for i, want := range csvColumns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, fmt.Errorf("%w: %w: header column %d is %q, want %q",
				ErrLoad, ErrMalformedRow, i, header[i], want)
		}
	}

	var units []unitgraph.Unit
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w: line %d: %v", ErrLoad, ErrMalformedRow, line, err)
		}

		pop, err := strconv.ParseInt(strings.TrimSpace(rec[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w: line %d: population: %v", ErrLoad, ErrMalformedRow, line, err)
		}
		lean, err := strconv.ParseInt(strings.TrimSpace(rec[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w: line %d: lean: %v", ErrLoad, ErrMalformedRow, line, err)
		}

		units = append(units, unitgraph.Unit{
			ID:         strings.TrimSpace(rec[0]),
			Population: pop,
			Lean:       lean,
			Neighbors:  splitNeighbors(rec[3]),
		})
	}

	return units, nil
}

// splitNeighbors parses the semicolon-separated neighbor cell, e.g. "b;c".
func splitNeighbors(cell string) []string {
	var out []string
	for _, part := range strings.Split(cell, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}

	return out
}
