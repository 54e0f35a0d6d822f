package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/webarchiver/internal/config"
)

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	return cfg
}

func TestNewLogger_NoFile(t *testing.T) {
	cfg := testConfig()
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	defer l.Close()
	l.Info("test message")
}

func TestLogger_ConsoleLevels(t *testing.T) {
	cfg := testConfig()
	var out, errOut bytes.Buffer
	l, err := newLogger(&cfg, &out, &errOut)
	require.NoError(t, err)

	l.Info("scanning %s", "/downloads")
	l.Success("archived %d pairs", 3)
	l.Warn("long path")
	l.Error("7z failed")
	l.Debug("hidden unless verbose")

	stdout := out.String()
	assert.Contains(t, stdout, "[INFO] scanning /downloads")
	assert.Contains(t, stdout, "[SUCCESS] archived 3 pairs")
	assert.Contains(t, stdout, "[WARN] long path")
	assert.NotContains(t, stdout, "7z failed", "errors go to stderr")
	assert.NotContains(t, stdout, "hidden unless verbose")
	assert.Contains(t, errOut.String(), "[ERROR] 7z failed")
}

func TestLogger_VerboseEnablesDebug(t *testing.T) {
	cfg := testConfig()
	cfg.Verbose = true
	var out bytes.Buffer
	l, err := newLogger(&cfg, &out, &out)
	require.NoError(t, err)

	l.Debug("crc %08X", 0xCAFEBABE)
	assert.True(t, l.Verbose())
	assert.Contains(t, out.String(), "[DEBUG] crc CAFEBABE")
}

func TestNewLogger_WithFile(t *testing.T) {
	cfg := testConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "webarchiver.log")
	var out bytes.Buffer
	l, err := newLogger(&cfg, &out, &out)
	require.NoError(t, err)

	l.WithRunID("run-1").Event("pair_archived", map[string]interface{}{"html": "report.html"})
	l.Success("to file")
	require.NoError(t, l.Close())

	assert.NotContains(t, out.String(), "pair_archived", "events stay off the console unless verbose")

	b, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "debug", first["level"])
	assert.Equal(t, "pair_archived", first["event"])
	assert.Equal(t, "report.html", first["html"])
	assert.Equal(t, "run-1", first["run_id"])

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "success", second["level"])
	assert.Equal(t, "to file", second["message"])
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	assert.NoError(t, l.Close())
}
