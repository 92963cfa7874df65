// Package runner fans a districting problem out over independent
// optimization runs and merges the best plan.
//
// The optimizer is single-threaded within one run: every move reads and
// writes shared district aggregates. Parallelism therefore lives across
// runs. Each run derives its own seed from the batch seed
// (anneal.DeriveSeed), owns its partition, and never touches another
// run's state; the read-only unit graph is the only shared structure.
// Batch results are consequently reproducible: the same parent seed and
// configuration produce the same per-run plans and the same winner,
// whatever the scheduling or parallelism limit.
//
// Concurrency is bounded with errgroup.SetLimit; the first failing run
// cancels the remainder. Every run logs start/finish lines tagged with a
// unique run ID, and ships its plan plus a metrics.Report in the Summary.
package runner
