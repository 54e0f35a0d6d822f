// Package check provides system diagnostics (--check mode) and the
// pre-pipeline dependency validation (CheckDeps) for the 7z executable.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/backmassage/webarchiver/internal/archive"
	"github.com/backmassage/webarchiver/internal/config"
	"github.com/backmassage/webarchiver/internal/naming"
	"github.com/backmassage/webarchiver/internal/scan"
	"github.com/backmassage/webarchiver/internal/sevenzip"
	"github.com/backmassage/webarchiver/internal/verify"
)

// ErrSevenZipNotFound is returned by CheckDeps when the configured 7z
// executable cannot be found.
var ErrSevenZipNotFound = errors.New("7z not found (install p7zip or 7-Zip, or pass --7z-path)")

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// stays testable with a recording logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the --check flow: locate 7z, print its version banner, and
// run a create → test → list → CRC round trip in a temporary directory.
// It returns false when any step fails.
func RunCheck(ctx context.Context, cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	path, err := exec.LookPath(cfg.SevenZipPath)
	if err != nil {
		log.Error("7z not found: %s", cfg.SevenZipPath)
		return false
	}
	log.Success("7z: %s", path)

	client := sevenzip.NewClient(path, nil)
	if v, err := client.Version(ctx); err != nil {
		log.Warn("Could not read 7z version: %v", err)
	} else {
		log.Info("  %s", v)
	}

	log.Info("Testing archive round trip...")
	summary, err := roundTrip(ctx, client)
	if err != nil {
		log.Error("Round trip failed: %v", err)
		return false
	}
	log.Success("Round trip works (%s)", summary)
	return true
}

// CheckDeps is the pre-pipeline validation: it verifies that the 7z
// executable can be found. Dry runs and analysis never need it.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.SevenZipPath); err != nil {
		return fmt.Errorf("%w: %s", ErrSevenZipNotFound, cfg.SevenZipPath)
	}
	return nil
}

// roundTrip saves a small page in a temp dir, archives it and verifies the
// archive with every check enabled.
func roundTrip(ctx context.Context, client *sevenzip.Client) (string, error) {
	dir, err := os.MkdirTemp("", "webarchiver-check-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	files := map[string]string{
		"check.html":                  "<html><head><title>check</title></head></html>",
		"check_files/style.css":       "body { color: #333 }",
		"check_files/img/pixel.txt":   "pixel",
		"check_files/empty-file.json": "",
	}
	for rel, data := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", err
		}
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			return "", err
		}
	}

	res, err := scan.NewScanner(nil).Scan(ctx, dir, 0)
	if err != nil {
		return "", err
	}
	pairs := res.Pairs()
	if len(pairs) != 1 {
		return "", fmt.Errorf("scanner found %d pairs in the test page, want 1", len(pairs))
	}
	pair := pairs[0]

	out := naming.OutputPath(pair.HTMLPath)
	created := archive.NewCreator(client, nil).Create(ctx, pair, out, config.CompressionDefault)
	if !created.Success {
		return "", created.Err
	}

	vres, err := verify.NewVerifier(client, nil).Verify(ctx, out, pair, false)
	if err != nil {
		return "", err
	}
	if !vres.Passed() {
		return "", errors.New(vres.Summary())
	}
	return vres.Summary(), nil
}
