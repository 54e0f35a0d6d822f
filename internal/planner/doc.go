// Package planner decides, per pair, whether to archive, preview (dry run)
// or skip, and where the archive goes. The pipeline runner consumes the
// resulting PairPlan.
package planner
