package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/gerrysim/anneal"
	"github.com/katalvlaran/gerrysim/metrics"
	"github.com/katalvlaran/gerrysim/unitgraph"
)

// Run executes cfg.Runs independent optimizations of g and returns the
// batch summary. Runs share only the read-only graph: each owns its
// partition and RNG stream, so results are independent of scheduling.
// The first failing run cancels the rest and its error is returned.
// A nil logger disables logging.
func Run(ctx context.Context, g *unitgraph.Graph, obj anneal.Objective, cfg Config, log *zap.Logger) (*Summary, error) {
	if cfg.Runs < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoRuns, cfg.Runs)
	}
	if log == nil {
		log = zap.NewNop()
	}

	eg, ctx := errgroup.WithContext(ctx)
	if cfg.Parallelism > 0 {
		eg.SetLimit(cfg.Parallelism)
	}

	// Each goroutine writes only its own slot.
	results := make([]RunResult, cfg.Runs)
	for r := 0; r < cfg.Runs; r++ {
		eg.Go(func() error {
			started := time.Now()
			id := uuid.NewString()
			seed := anneal.DeriveSeed(cfg.Seed, uint64(r))

			// Fresh slice per run: appending to the shared cfg.Options
			// backing array would race.
			opts := make([]anneal.Option, 0, len(cfg.Options)+2)
			opts = append(opts, cfg.Options...)
			opts = append(opts, anneal.WithSeed(seed), anneal.WithContext(ctx))

			log.Info("optimization run started",
				zap.Int("run", r),
				zap.String("id", id),
				zap.Int64("seed", seed))

			res, err := anneal.Optimize(g, cfg.Districts, obj, opts...)
			if err != nil {
				log.Warn("optimization run failed",
					zap.Int("run", r),
					zap.String("id", id),
					zap.Error(err))

				return fmt.Errorf("run %d: %w", r, err)
			}
			rep, err := metrics.Compute(res.Partition)
			if err != nil {
				return fmt.Errorf("run %d: %w", r, err)
			}

			results[r] = RunResult{
				Run:      r,
				ID:       id,
				Seed:     seed,
				Score:    res.Score,
				Duration: time.Since(started),
				Result:   res,
				Report:   rep,
			}
			log.Info("optimization run finished",
				zap.Int("run", r),
				zap.String("id", id),
				zap.Float64("score", res.Score),
				zap.Int("iterations", res.Iterations),
				zap.Duration("took", results[r].Duration))

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// Deterministic merge: lowest score wins, earliest run breaks ties.
	best := 0
	for r := 1; r < len(results); r++ {
		if results[r].Score < results[best].Score {
			best = r
		}
	}

	return &Summary{
		Objective: obj.Name(),
		Best:      results[best],
		Runs:      results,
	}, nil
}
