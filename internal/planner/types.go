package planner

import (
	"github.com/backmassage/webarchiver/internal/scan"
)

// Action describes the per-pair processing decision.
type Action int

const (
	ActionArchive Action = iota
	ActionPreview
	ActionSkip
)

func (a Action) String() string {
	switch a {
	case ActionArchive:
		return "archive"
	case ActionPreview:
		return "preview"
	case ActionSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// SkipReason explains an ActionSkip decision.
type SkipReason string

const (
	SkipNone      SkipReason = ""
	SkipExisting  SkipReason = "archive already exists (use --force to overwrite)"
	SkipLongPath  SkipReason = "path exceeds the configured limit"
	SkipAmbiguous SkipReason = "name contains ambiguous Unicode characters"
)

// PairPlan holds every decision for one pair. It is produced by BuildPlan
// and consumed by the pipeline runner.
type PairPlan struct {
	Pair        scan.Pair
	Action      Action
	SkipReason  SkipReason
	ArchivePath string

	// Overwrite is set when an archive already exists and will be replaced.
	Overwrite bool

	Preflight scan.PreflightReport
	// Warnings are preflight findings that did not cause a skip.
	Warnings []string
}
