package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/backmassage/webarchiver/internal/display"
	"github.com/backmassage/webarchiver/internal/naming"
	"github.com/backmassage/webarchiver/internal/scan"
)

// analyze prints the scan report: statistics, pairs, orphans, skipped
// paths, and preflight findings. Nothing is written besides the optional
// JSON report.
func (r *runner) analyze(res *scan.Result) {
	out := r.deps.Out
	pairs := res.Pairs()

	fmt.Fprintln(out)
	display.StatsTable(out, res)
	if len(pairs) > 0 {
		display.PairsTable(out, pairs)
	} else {
		r.log.Warn("No web archive pairs found in %s", res.Root)
	}
	display.OrphansTable(out, append(res.OrphanHTML(), res.OrphanFolders()...))

	for _, w := range res.Warnings() {
		r.log.Warn("Skipped %s: %s", w.Path, w.Reason)
	}

	flagged := 0
	for _, p := range pairs {
		pre := scan.Preflight(p, naming.OutputPath(p.HTMLPath), r.cfg.PathLimit)
		if pre.Clean() {
			continue
		}
		flagged++
		r.stats.Preflight = append(r.stats.Preflight, PreflightNotice{HTMLPath: p.HTMLPath, Issues: pre.Issues()})
		r.log.Warn("Preflight %s: %s", filepath.Base(p.HTMLPath), strings.Join(pre.Issues(), "; "))
	}

	r.log.Info("Analyzed %d pairs, %d orphans (%s)", len(pairs), res.Orphans(), display.FormatBytes(res.TotalSize()))
	if flagged == 0 && len(pairs) > 0 {
		r.log.Success("No preflight issues")
	}
}
