package planner

import (
	"os"

	"github.com/backmassage/webarchiver/internal/config"
	"github.com/backmassage/webarchiver/internal/naming"
	"github.com/backmassage/webarchiver/internal/scan"
)

// Planner builds PairPlans for one run. The collision resolver is shared
// across the run so two pairs never target the same archive.
type Planner struct {
	cfg      *config.Config
	resolver *naming.CollisionResolver
	exists   func(path string) bool
}

// New returns a Planner for cfg.
func New(cfg *config.Config) *Planner {
	return &Planner{
		cfg:      cfg,
		resolver: naming.NewCollisionResolver(),
		exists:   fileExists,
	}
}

// BuildPlan decides what to do with pair.
//
// Flow:
//  1. Resolve the archive path (sanitized name, run-unique)
//  2. Preflight: long paths and ambiguous names, skipped or warned per config
//  3. Existing archive: skipped unless --force
//  4. Dry run turns an archive decision into a preview
func (p *Planner) BuildPlan(pair scan.Pair) *PairPlan {
	plan := &PairPlan{
		Pair:        pair,
		Action:      ActionArchive,
		ArchivePath: p.resolver.Resolve(pair.HTMLPath, naming.OutputPath(pair.HTMLPath)),
	}

	plan.Preflight = scan.Preflight(pair, plan.ArchivePath, p.cfg.PathLimit)
	if plan.Preflight.LongPath() {
		if p.cfg.SkipLongPaths {
			return skip(plan, SkipLongPath)
		}
	}
	if plan.Preflight.HasAmbiguous() {
		if p.cfg.SkipAmbiguous {
			return skip(plan, SkipAmbiguous)
		}
	}
	plan.Warnings = plan.Preflight.Issues()

	if p.exists(plan.ArchivePath) {
		if p.cfg.SkipExisting {
			return skip(plan, SkipExisting)
		}
		plan.Overwrite = true
	}

	if p.cfg.DryRun {
		plan.Action = ActionPreview
	}
	return plan
}

func skip(plan *PairPlan, reason SkipReason) *PairPlan {
	plan.Action = ActionSkip
	plan.SkipReason = reason
	plan.Warnings = plan.Preflight.Issues()
	return plan
}

func fileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
