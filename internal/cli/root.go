// Package cli implements the gerrysim command tree: configuration
// loading, dataset construction, batch optimization, and result
// rendering, with process exit codes that classify failures.
//
// Exit codes:
//
//	0  success
//	1  unclassified failure
//	2  the dataset cannot be loaded
//	3  the configuration is invalid
//	4  no feasible plan exists for the configuration
//	5  a reported partition violates districting invariants
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/gerrysim/anneal"
	"github.com/katalvlaran/gerrysim/internal/config"
	"github.com/katalvlaran/gerrysim/internal/dataset"
	"github.com/katalvlaran/gerrysim/metrics"
	"github.com/katalvlaran/gerrysim/partition"
	"github.com/katalvlaran/gerrysim/runner"
)

// Build-time metadata, injected by the main package via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// Process exit codes, as documented in the package comment.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitData       = 2
	ExitConfig     = 3
	ExitInfeasible = 4
	ExitMetrics    = 5
)

// rootOptions carries persistent flag values shared by every subcommand.
type rootOptions struct {
	configPath string
}

// NewRootCommand assembles the gerrysim command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "gerrysim",
		Short: "Partisan districting simulator",
		Long: strings.TrimSpace(`
gerrysim carves a population graph into contiguous, population-balanced
districts with an annealed local search, then reports partisan fairness
metrics (efficiency gap, mean-median, cut edges) for the winning plan.

Configuration merges four layers, strongest first: command line flags,
GERRYSIM_* environment variables, the YAML config file, built-in
defaults.
`),
		Version:       fmt.Sprintf("%s (commit %s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "YAML config file; env vars and flags override it")
	pf.String("log-level", config.DefaultLogLevel, "log verbosity: debug|info|warn|error")
	pf.String("log-format", config.DefaultLogFormat, "log encoding: console|json")

	cmd.AddCommand(newRunCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))

	return cmd
}

// Execute runs the CLI and maps the outcome to a process exit code.
// SIGINT and SIGTERM cancel the batch through the command context.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)

		return ExitCode(err)
	}

	return ExitOK
}

// ExitCode classifies err into the documented exit codes. Infeasibility
// is tested before configuration errors on purpose: an out-of-range
// district count wraps both anneal.ErrInfeasible and
// partition.ErrDistrictCount, and the infeasibility reading wins.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, anneal.ErrInfeasible):
		return ExitInfeasible
	case errors.Is(err, metrics.ErrInvalidPartition):
		return ExitMetrics
	case errors.Is(err, dataset.ErrLoad):
		return ExitData
	case errors.Is(err, config.ErrInvalid),
		errors.Is(err, config.ErrParse),
		errors.Is(err, config.ErrNotFound),
		errors.Is(err, anneal.ErrOptionViolation),
		errors.Is(err, partition.ErrDistrictCount),
		errors.Is(err, metrics.ErrUnknownObjective),
		errors.Is(err, runner.ErrNoRuns):
		return ExitConfig
	default:
		return ExitFailure
	}
}

// newLogger builds the zap logger described by lc, writing to stderr so
// stdout stays clean for rendered results.
func newLogger(lc config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log.level: %v", config.ErrInvalid, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = lc.Format
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	if lc.Format == "console" {
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	return zc.Build()
}
