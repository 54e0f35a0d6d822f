package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/webarchiver/internal/scan"
	"github.com/backmassage/webarchiver/internal/verify"
)

func touch(t *testing.T, path string, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func scanFixture(t *testing.T) *scan.Result {
	t.Helper()
	root := t.TempDir()
	touch(t, filepath.Join(root, "report.html"), "<title>Report</title>")
	touch(t, filepath.Join(root, "report_files", "a.css"), "body{}")
	touch(t, filepath.Join(root, "lonely.html"), "x")
	res, err := scan.NewScanner(nil).Scan(context.Background(), root, scan.Unlimited)
	require.NoError(t, err)
	return res
}

func TestNew_MirrorsScan(t *testing.T) {
	res := scanFixture(t)

	r := New("run-1", ModeAnalyze, res)

	assert.Equal(t, "run-1", r.RunID)
	assert.Equal(t, ModeAnalyze, r.Mode)
	assert.Equal(t, res.Root, r.Root)
	assert.Equal(t, 1, r.Stats.Pairs)
	assert.Equal(t, 1, r.Stats.OrphanHTML)
	require.Len(t, r.Pairs, 1)
	assert.Equal(t, "Report", r.Pairs[0].Title)
	assert.Equal(t, "suffix-files", r.Pairs[0].Pattern)
	assert.Equal(t, 1, r.Pairs[0].FolderFiles)
	require.Len(t, r.Orphans, 1)
	assert.Equal(t, "html", r.Orphans[0].Kind)
	assert.Nil(t, r.Pairs[0].Outcome)
}

func TestSetOutcome(t *testing.T) {
	res := scanFixture(t)
	r := New("run-2", ModeRun, res)
	html := res.Pairs()[0].HTMLPath

	v := verify.Result{IntegrityOK: true, ExpectedFiles: 2, ArchivedFiles: 2, CRCChecked: 2}
	ok := r.SetOutcome(html, Outcome{
		Status:       StatusArchived,
		ArchivePath:  "/x/report_web_archive.7z",
		Verification: VerificationOf(v),
	})
	require.True(t, ok)
	assert.False(t, r.SetOutcome("/not/in/report.html", Outcome{}))

	require.NotNil(t, r.Pairs[0].Outcome)
	assert.True(t, r.Pairs[0].Outcome.Verification.Passed)
}

func TestWrite(t *testing.T) {
	res := scanFixture(t)
	r := New("run-3", ModeDryRun, res)
	r.Summary = &Summary{Previewed: 1}
	path := filepath.Join(t.TempDir(), "out", "report.json")

	require.NoError(t, r.Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "run-3", decoded["run_id"])
	assert.Equal(t, "dry-run", decoded["mode"])
	assert.Contains(t, decoded, "summary")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file is renamed away")
}
