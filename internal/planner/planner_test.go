package planner

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/webarchiver/internal/config"
	"github.com/backmassage/webarchiver/internal/scan"
)

func newTestPlanner(cfg config.Config, existing ...string) *Planner {
	p := New(&cfg)
	set := make(map[string]bool)
	for _, e := range existing {
		set[e] = true
	}
	p.exists = func(path string) bool { return set[path] }
	return p
}

func pairAt(html string) scan.Pair {
	return scan.Pair{
		HTMLPath:    html,
		FolderPath:  strings.TrimSuffix(html, filepath.Ext(html)) + "_files",
		LongestPath: len(html),
	}
}

func TestBuildPlan_Archive(t *testing.T) {
	p := newTestPlanner(config.DefaultConfig())

	plan := p.BuildPlan(pairAt("/saved/My Page.html"))

	assert.Equal(t, ActionArchive, plan.Action)
	assert.Equal(t, "/saved/my-page_web_archive.7z", plan.ArchivePath)
	assert.False(t, plan.Overwrite)
	assert.Empty(t, plan.Warnings)
}

func TestBuildPlan_DryRunPreviews(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DryRun = true

	plan := newTestPlanner(cfg).BuildPlan(pairAt("/saved/a.html"))

	assert.Equal(t, ActionPreview, plan.Action)
	assert.Equal(t, "preview", plan.Action.String())
}

func TestBuildPlan_ExistingArchive(t *testing.T) {
	cfg := config.DefaultConfig()
	plan := newTestPlanner(cfg, "/saved/a_web_archive.7z").BuildPlan(pairAt("/saved/a.html"))
	assert.Equal(t, ActionSkip, plan.Action)
	assert.Equal(t, SkipExisting, plan.SkipReason)

	cfg.SkipExisting = false
	plan = newTestPlanner(cfg, "/saved/a_web_archive.7z").BuildPlan(pairAt("/saved/a.html"))
	assert.Equal(t, ActionArchive, plan.Action)
	assert.True(t, plan.Overwrite)
}

func TestBuildPlan_CollisionsWithinRun(t *testing.T) {
	p := newTestPlanner(config.DefaultConfig())

	first := p.BuildPlan(pairAt("/saved/Report.html"))
	second := p.BuildPlan(pairAt("/saved/report.htm"))

	assert.Equal(t, "/saved/report_web_archive.7z", first.ArchivePath)
	assert.Equal(t, "/saved/report-dup1_web_archive.7z", second.ArchivePath)
}

func TestBuildPlan_LongPathPolicy(t *testing.T) {
	long := "/saved/" + strings.Repeat("n", 300) + ".html"

	cfg := config.DefaultConfig()
	plan := newTestPlanner(cfg).BuildPlan(pairAt(long))
	assert.Equal(t, ActionArchive, plan.Action, "warn only by default")
	assert.NotEmpty(t, plan.Warnings)

	cfg.SkipLongPaths = true
	plan = newTestPlanner(cfg).BuildPlan(pairAt(long))
	assert.Equal(t, ActionSkip, plan.Action)
	assert.Equal(t, SkipLongPath, plan.SkipReason)
}

func TestBuildPlan_AmbiguousPolicy(t *testing.T) {
	pair := pairAt("/saved/It’s.html")
	pair.Ambiguous = []scan.Finding{{Path: pair.HTMLPath, Char: '’'}}

	cfg := config.DefaultConfig()
	plan := newTestPlanner(cfg).BuildPlan(pair)
	assert.Equal(t, ActionArchive, plan.Action)
	assert.Len(t, plan.Warnings, 1)

	cfg.SkipAmbiguous = true
	plan = newTestPlanner(cfg).BuildPlan(pair)
	assert.Equal(t, ActionSkip, plan.Action)
	assert.Equal(t, SkipAmbiguous, plan.SkipReason)
}
