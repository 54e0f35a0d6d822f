package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/backmassage/webarchiver/internal/archive"
	"github.com/backmassage/webarchiver/internal/config"
	"github.com/backmassage/webarchiver/internal/display"
	"github.com/backmassage/webarchiver/internal/gate"
	"github.com/backmassage/webarchiver/internal/logging"
	"github.com/backmassage/webarchiver/internal/planner"
	"github.com/backmassage/webarchiver/internal/report"
	"github.com/backmassage/webarchiver/internal/scan"
	"github.com/backmassage/webarchiver/internal/sevenzip"
	"github.com/backmassage/webarchiver/internal/verify"
)

// maxLoggedMismatches caps the per-file CRC lines logged for one archive.
const maxLoggedMismatches = 20

// Creator archives one pair.
type Creator interface {
	Create(ctx context.Context, pair scan.Pair, outputPath string, level int) archive.Result
}

// Verifier runs the integrity, count and CRC checks for one archive.
type Verifier interface {
	Verify(ctx context.Context, archivePath string, pair scan.Pair, skipCRC bool) (verify.Result, error)
}

// Deps are the collaborators of a run. Zero fields are filled by Run:
// Scanner from the logger, Out with os.Stdout, RunID with a new UUID.
// Creator and Verifier are required for runs that archive.
type Deps struct {
	Scanner  *scan.Scanner
	Creator  Creator
	Verifier Verifier
	// Observer receives progress events in addition to the log.
	Observer Observer
	// Out receives the rendered tables.
	Out   io.Writer
	RunID string
}

// NewDeps wires the production collaborators: one 7z client shared by the
// creator and the verifier.
func NewDeps(cfg *config.Config, log *logging.Logger) Deps {
	client := sevenzip.NewClient(cfg.SevenZipPath, log)
	return Deps{
		Scanner:  scan.NewScanner(log),
		Creator:  archive.NewCreator(client, log),
		Verifier: verify.NewVerifier(client, log),
		Out:      os.Stdout,
		RunID:    uuid.NewString(),
	}
}

func (d Deps) withDefaults(log *logging.Logger) Deps {
	if d.Scanner == nil {
		d.Scanner = scan.NewScanner(log)
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.RunID == "" {
		d.RunID = uuid.NewString()
	}
	return d
}

// runner carries the state of one run.
type runner struct {
	cfg    *config.Config
	log    *logging.Logger
	deps   Deps
	obs    Observer
	stats  RunStats
	report *report.Report
}

// Run is the top-level batch entry point. It scans cfg.RootDir, then
// either prints the analysis (AnalyzeOnly) or processes each pair in scan
// order, and returns aggregate stats. The returned error is non-nil only
// when the scan itself fails or the JSON report cannot be written.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, deps Deps) (RunStats, error) {
	deps = deps.withDefaults(log)
	r := &runner{cfg: cfg, log: log, deps: deps}
	r.obs = LogObserver(log)
	if deps.Observer != nil {
		r.obs = multiObserver{r.obs, deps.Observer}
	}

	log.Info("Scanning %s (depth: %s)", cfg.RootDir, cfg.DepthLabel())
	res, err := deps.Scanner.Scan(ctx, cfg.RootDir, cfg.MaxDepth)
	if err != nil {
		return r.stats, err
	}

	pairs := res.Pairs()
	r.stats.Total = len(pairs)
	r.stats.Orphans = res.Orphans()
	r.obs.Observe(Event{Total: len(pairs), Stage: StageScan, Outcome: OutcomeOK,
		Detail: fmt.Sprintf("%d pairs, %d orphans", len(pairs), res.Orphans())})
	r.report = report.New(deps.RunID, modeOf(cfg), res)

	if cfg.AnalyzeOnly {
		r.analyze(res)
		return r.stats, r.writeReport()
	}

	r.logBatchHeader(res)
	if len(pairs) == 0 {
		log.Warn("No web archive pairs found in %s", cfg.RootDir)
		return r.stats, r.writeReport()
	}

	plans := planner.New(cfg)
	for i, pair := range pairs {
		r.stats.Current = i + 1
		if ctx.Err() != nil {
			r.interrupted()
			break
		}
		r.processPair(ctx, plans.BuildPlan(pair))
		if !r.stats.Interrupted {
			r.stats.Processed++
		}
		fmt.Fprintln(deps.Out)
	}

	r.logSummary()
	return r.stats, r.writeReport()
}

// processPair handles one pair: plan → archive → verify → delete.
func (r *runner) processPair(ctx context.Context, plan *planner.PairPlan) {
	pair := plan.Pair
	r.log.Info("[%d/%d] %s (%s, %d files)", r.stats.Current, r.stats.Total,
		pair.Name(), display.FormatBytes(pair.TotalSize()), pair.FileCount())

	for _, w := range plan.Warnings {
		r.log.Warn("  Preflight: %s", w)
	}
	if len(plan.Warnings) > 0 {
		r.stats.Preflight = append(r.stats.Preflight, PreflightNotice{
			HTMLPath: pair.HTMLPath,
			Issues:   plan.Warnings,
			Skipped:  plan.Action == planner.ActionSkip,
		})
	}

	switch plan.Action {
	case planner.ActionSkip:
		r.log.Warn("Skip (%s): %s", plan.SkipReason, filepath.Base(plan.ArchivePath))
		r.stats.Skipped++
		r.emit(pair, StageArchive, OutcomeSkipped, string(plan.SkipReason))
		r.setOutcome(pair, report.Outcome{
			Status:      report.StatusSkipped,
			ArchivePath: plan.ArchivePath,
			Warnings:    plan.Warnings,
			Error:       string(plan.SkipReason),
		})
		return

	case planner.ActionPreview:
		r.preview(plan)
		return
	}

	if plan.Overwrite {
		r.log.Warn("  Replacing existing archive %s", filepath.Base(plan.ArchivePath))
	}
	r.log.Info("  -> %s", filepath.Base(plan.ArchivePath))

	// --- Archive ---
	res := r.deps.Creator.Create(ctx, pair, plan.ArchivePath, r.cfg.CompressionLevel)
	if !res.Success {
		if ctx.Err() != nil {
			r.interrupted()
			return
		}
		r.fail(plan, StageArchive, fmt.Sprintf("Archive failed: %v", res.Err), nil)
		return
	}
	r.log.Success("  Archived: %s -> %s (%s)", display.FormatBytes(res.OriginalSize),
		display.FormatBytes(res.CompressedSize), display.FormatRatio(res.CompressedSize, res.OriginalSize))
	r.emit(pair, StageArchive, OutcomeOK, res.ArchivePath)

	// --- Verify ---
	vres, err := r.deps.Verifier.Verify(ctx, res.ArchivePath, pair, r.cfg.SkipCRC)
	if err != nil {
		if ctx.Err() != nil {
			r.interrupted()
			return
		}
		r.fail(plan, StageVerify, fmt.Sprintf("Verification error: %v (archive kept: %s)", err, res.ArchivePath), &vres)
		return
	}
	if !vres.Passed() {
		r.fail(plan, StageVerify, fmt.Sprintf("Verification failed: %s (archive kept: %s)", vres.Summary(), res.ArchivePath), &vres)
		r.logMismatches(vres.Mismatches)
		return
	}
	r.log.Success("  Verified: %s", vres.Summary())
	r.emit(pair, StageVerify, OutcomeOK, vres.Summary())

	r.stats.Succeeded++
	r.stats.TotalInputBytes += res.OriginalSize
	r.stats.TotalOutputBytes += res.CompressedSize
	outcome := report.Outcome{
		Status:         report.StatusArchived,
		ArchivePath:    res.ArchivePath,
		CompressedSize: res.CompressedSize,
		Verification:   report.VerificationOf(vres),
		Warnings:       plan.Warnings,
	}

	// --- Delete ---
	if r.cfg.DeleteSource {
		if err := gate.DeleteOriginals(pair, vres); err != nil {
			r.stats.DeleteFailed++
			r.log.Error("  Delete failed: %v", err)
			r.emit(pair, StageDelete, OutcomeFailed, err.Error())
			outcome.Error = err.Error()
		} else {
			r.stats.Deleted++
			r.log.Success("  Deleted originals")
			r.emit(pair, StageDelete, OutcomeOK, "")
			outcome.Deleted = true
		}
	}
	r.setOutcome(pair, outcome)
}

// preview reports what a real run would do. Nothing is written.
func (r *runner) preview(plan *planner.PairPlan) {
	res := archive.Preview(plan.Pair, plan.ArchivePath)
	verb := "create"
	if plan.Overwrite {
		verb = "replace"
	}
	r.log.Success("  [DRY] Would %s %s from %s", verb, filepath.Base(res.ArchivePath), display.FormatBytes(res.OriginalSize))
	if r.cfg.DeleteSource {
		r.log.Info("  [DRY] Would delete originals after verification")
	}
	r.stats.Previewed++
	r.stats.TotalInputBytes += res.OriginalSize
	r.emit(plan.Pair, StageArchive, OutcomePreview, res.ArchivePath)
	r.setOutcome(plan.Pair, report.Outcome{
		Status:      report.StatusPreview,
		ArchivePath: res.ArchivePath,
		Warnings:    plan.Warnings,
	})
}

func (r *runner) fail(plan *planner.PairPlan, stage Stage, msg string, vres *verify.Result) {
	r.log.Error("  %s", msg)
	r.stats.Failed++
	r.emit(plan.Pair, stage, OutcomeFailed, msg)
	o := report.Outcome{
		Status:      report.StatusFailed,
		ArchivePath: plan.ArchivePath,
		Warnings:    plan.Warnings,
		Error:       msg,
	}
	if vres != nil {
		o.Verification = report.VerificationOf(*vres)
	}
	r.setOutcome(plan.Pair, o)
}

func (r *runner) interrupted() {
	if !r.stats.Interrupted {
		r.log.Warn("Interrupted, stopping before the next pair")
	}
	r.stats.Interrupted = true
}

func (r *runner) emit(pair scan.Pair, stage Stage, outcome Outcome, detail string) {
	r.obs.Observe(Event{
		Index:    r.stats.Current,
		Total:    r.stats.Total,
		HTMLPath: pair.HTMLPath,
		Stage:    stage,
		Outcome:  outcome,
		Detail:   detail,
	})
}

func (r *runner) setOutcome(pair scan.Pair, o report.Outcome) {
	r.report.SetOutcome(pair.HTMLPath, o)
}

func (r *runner) logMismatches(ms []verify.Mismatch) {
	for i, m := range ms {
		if i == maxLoggedMismatches {
			r.log.Error("    ... %d more", len(ms)-maxLoggedMismatches)
			return
		}
		r.log.Error("    %s", m)
	}
}

func (r *runner) writeReport() error {
	if r.cfg.JSONReport == "" {
		return nil
	}
	if !r.cfg.AnalyzeOnly {
		s := r.stats
		r.report.Summary = &report.Summary{
			Succeeded:     s.Succeeded,
			Failed:        s.Failed,
			Skipped:       s.Skipped,
			Previewed:     s.Previewed,
			Deleted:       s.Deleted,
			DeleteFailed:  s.DeleteFailed,
			OriginalBytes: s.TotalInputBytes,
			ArchiveBytes:  s.TotalOutputBytes,
		}
	}
	if err := r.report.Write(r.cfg.JSONReport); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	r.log.Info("JSON report written to %s", r.cfg.JSONReport)
	return nil
}

func modeOf(cfg *config.Config) string {
	switch {
	case cfg.AnalyzeOnly:
		return report.ModeAnalyze
	case cfg.DryRun:
		return report.ModeDryRun
	default:
		return report.ModeRun
	}
}

// --- Logging helpers ---

func (r *runner) logBatchHeader(res *scan.Result) {
	cfg := r.cfg
	r.log.Info("Found %d pairs (%s), %d orphans", r.stats.Total, display.FormatBytes(res.TotalSize()), res.Orphans())
	for _, w := range res.Warnings() {
		r.log.Warn("Skipped %s: %s", w.Path, w.Reason)
	}
	r.log.Info("Compression: -mx=%d via %s", cfg.CompressionLevel, cfg.SevenZipPath)
	if cfg.SkipCRC {
		r.log.Warn("Verification: integrity + file count only (CRC skipped)")
	} else {
		r.log.Info("Verification: integrity + file count + CRC32")
	}
	if cfg.DeleteSource {
		r.log.Warn("Originals will be deleted after a passed verification")
	}
	if !cfg.SkipExisting {
		r.log.Info("Existing archives will be replaced (--force)")
	}
	fmt.Fprintln(r.deps.Out)
}

func (r *runner) logSummary() {
	s := &r.stats
	r.log.Info("==============================")
	if r.cfg.DryRun {
		r.log.Info("Done: %d previewed, %d skipped (dry run, nothing written)", s.Previewed, s.Skipped)
	} else {
		r.log.Info("Done: %d archived, %d skipped, %d failed", s.Succeeded, s.Skipped, s.Failed)
	}

	rows := []display.Row{
		{Label: "Pairs found", Value: fmt.Sprint(s.Total)},
		{Label: "Archived and verified", Value: fmt.Sprint(s.Succeeded)},
		{Label: "Failed", Value: fmt.Sprint(s.Failed)},
		{Label: "Skipped", Value: fmt.Sprint(s.Skipped)},
	}
	if r.cfg.DryRun {
		rows = append(rows, display.Row{Label: "Previewed", Value: fmt.Sprint(s.Previewed)},
			display.Row{Label: "Original size", Value: display.FormatBytes(s.TotalInputBytes)})
	} else {
		rows = append(rows,
			display.Row{Label: "Original size", Value: display.FormatBytes(s.TotalInputBytes)},
			display.Row{Label: "Archive size", Value: display.FormatBytes(s.TotalOutputBytes)},
			display.Row{Label: "Ratio", Value: display.FormatRatio(s.TotalOutputBytes, s.TotalInputBytes)})
	}
	if r.cfg.DeleteSource {
		rows = append(rows, display.Row{Label: "Originals deleted", Value: fmt.Sprint(s.Deleted)},
			display.Row{Label: "Deletions failed", Value: fmt.Sprint(s.DeleteFailed)})
	}
	rows = append(rows, display.Row{Label: "Orphans", Value: fmt.Sprint(s.Orphans)})
	display.SummaryTable(r.deps.Out, "Run summary", rows)

	if !r.cfg.DryRun && s.Succeeded > 0 {
		saved := s.SpaceSaved()
		if saved >= 0 {
			r.log.Success("Total space saved: %s", display.FormatBytes(saved))
		} else {
			r.log.Warn("Total space saved: %s (archives are larger)", display.FormatBytesWithSign(saved))
		}
	}

	if len(s.Preflight) > 0 {
		r.log.Warn("%d pairs flagged by preflight:", len(s.Preflight))
		for _, n := range s.Preflight {
			state := "archived with warnings"
			if n.Skipped {
				state = "skipped"
			}
			r.log.Warn("  %s (%s): %s", filepath.Base(n.HTMLPath), state, strings.Join(n.Issues, "; "))
		}
	}
	if s.Interrupted {
		r.log.Warn("Run was interrupted; %d of %d pairs not processed", s.Total-s.Processed, s.Total)
	}
}

// IsAccessError reports whether err came from an unusable scan root.
func IsAccessError(err error) bool {
	var ae *scan.AccessError
	return errors.As(err, &ae)
}
