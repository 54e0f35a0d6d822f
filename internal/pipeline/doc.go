// Package pipeline orchestrates a run: scan, then for every pair plan,
// archive, verify and (optionally) delete the originals, then summarize.
//
// Pairs are processed strictly one after another. A failure on one pair is
// counted and logged; the batch continues. Cancelling the context stops the
// run before the next pair.
//
// Files:
//   - runner.go   Run and the per-pair flow
//   - analyze.go  analysis-only mode (tables + JSON report)
//   - events.go   progress events and observers
//   - stats.go    RunStats
package pipeline
