package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/katalvlaran/gerrysim/runner"
)

// printJSON renders v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// formatTable renders rows as an aligned ASCII table with a dashed rule
// under the header. The last column is left unpadded.
func formatTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(cells)-1 {
				b.WriteString(cell)
			} else {
				b.WriteString(padRight(cell, widths[i]))
			}
		}
		b.WriteByte('\n')
	}

	writeRow(headers)
	rule := make([]string, len(headers))
	for i := range rule {
		rule[i] = strings.Repeat("-", widths[i])
	}
	writeRow(rule)
	for _, row := range rows {
		writeRow(row)
	}

	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return s + strings.Repeat(" ", width-len(s))
}

// renderSummary writes the batch outcome in the requested format. The
// table variant prints headline metrics followed by the per-district
// breakdown of the winning plan.
func renderSummary(w io.Writer, format string, sum *runner.Summary) error {
	if format == "json" {
		return printJSON(w, sum)
	}

	best := sum.Best
	rep := best.Report

	fmt.Fprintf(w, "objective       %s\n", sum.Objective)
	fmt.Fprintf(w, "runs            %d\n", len(sum.Runs))
	fmt.Fprintf(w, "best run        %d (seed %d)\n", best.Run, best.Seed)
	fmt.Fprintf(w, "score           %.4f\n", best.Score)
	fmt.Fprintf(w, "state           %s\n", best.Result.State)
	fmt.Fprintf(w, "iterations      %d\n", best.Result.Iterations)
	fmt.Fprintf(w, "restarts        %d\n", best.Result.Restarts)
	fmt.Fprintf(w, "duration        %s\n", best.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "efficiency gap  %+.4f\n", rep.EfficiencyGap)
	fmt.Fprintf(w, "mean-median     %+.4f\n", rep.MeanMedian)
	fmt.Fprintf(w, "cut edges       %d\n", rep.CutEdges)
	fmt.Fprintf(w, "max deviation   %.4f\n", rep.MaxDeviation)
	fmt.Fprintf(w, "seats           A=%d B=%d\n\n", rep.SeatsA, rep.SeatsB)

	headers := []string{"district", "units", "population", "lean", "share-a", "winner"}
	rows := make([][]string, 0, len(rep.Districts))
	for _, d := range rep.Districts {
		rows = append(rows, []string{
			strconv.Itoa(d.District),
			strconv.Itoa(d.Units),
			strconv.FormatInt(d.Population, 10),
			strconv.FormatInt(d.Lean, 10),
			fmt.Sprintf("%.4f", d.ShareA),
			d.Winner,
		})
	}
	_, err := io.WriteString(w, formatTable(headers, rows))

	return err
}

// renderCheck writes the feasibility report in the requested format.
func renderCheck(w io.Writer, format string, rep *CheckReport) error {
	if format == "json" {
		return printJSON(w, rep)
	}

	rows := [][]string{
		{"units", strconv.Itoa(rep.Units)},
		{"edges", strconv.Itoa(rep.Edges)},
		{"components", strconv.Itoa(rep.Components)},
		{"total population", strconv.FormatInt(rep.TotalPopulation, 10)},
		{"districts", strconv.Itoa(rep.Districts)},
		{"target population", fmt.Sprintf("%.1f", rep.Target)},
		{"tolerance", fmt.Sprintf("%.4f", rep.Tolerance)},
		{"allowed range", fmt.Sprintf("[%.1f, %.1f]", rep.MinPopulation, rep.MaxPopulation)},
	}
	_, err := io.WriteString(w, formatTable([]string{"property", "value"}, rows))

	return err
}
