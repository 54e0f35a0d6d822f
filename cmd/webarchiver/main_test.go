package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the user's config file out of the test.
func isolate(t *testing.T) {
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	xdg.Reload()
}

func TestRun_RequiresDirectory(t *testing.T) {
	isolate(t)
	assert.Equal(t, exitFailure, run([]string{"--no-color"}))
}

func TestRun_RejectsBadCompression(t *testing.T) {
	isolate(t)
	assert.Equal(t, exitFailure, run([]string{"--no-color", "-x", "12", t.TempDir()}))
}

func TestRun_MissingRoot(t *testing.T) {
	isolate(t)
	missing := filepath.Join(t.TempDir(), "gone")
	assert.Equal(t, exitFailure, run([]string{"--no-color", "--analyze", missing}))
}

func TestRun_AnalyzeWritesReport(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "page.html"), []byte("<title>p</title>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "page_files"), 0o755))
	report := filepath.Join(t.TempDir(), "report.json")

	code := run([]string{"--no-color", "--analyze", "--json", report, root})

	assert.Equal(t, exitOK, code)
	assert.FileExists(t, report)
	assert.NoFileExists(t, filepath.Join(root, "page_web_archive.7z"))
}

func TestRun_DryRunNeedsNoCompressor(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "page.html"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "page_files"), 0o755))

	code := run([]string{"--no-color", "--dry-run", "--7z-path", filepath.Join(root, "no-such-7z"), root})

	assert.Equal(t, exitOK, code)
	assert.NoFileExists(t, filepath.Join(root, "page_web_archive.7z"))
}
