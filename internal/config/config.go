// Package config holds runtime configuration: defaults, CLI flag parsing,
// the optional YAML config file, and validation.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// UnlimitedDepth disables the scan depth limit.
const UnlimitedDepth = -1

// Compression level bounds accepted by the 7z -mx switch.
const (
	CompressionMin     = 0
	CompressionMax     = 9
	CompressionDefault = 5
)

// DefaultPathLimit is the Windows MAX_PATH value used by path-length preflight.
const DefaultPathLimit = 260

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by the optional config file, then by CLI flags, and passed by
// pointer to the packages that need it.
type Config struct {
	// Paths (set from the positional arg).
	RootDir string

	// Scan settings.
	MaxDepth int // Default: UnlimitedDepth. 0 scans the root only.

	// Archive settings.
	SevenZipPath     string // Default: "7z" (resolved on PATH).
	CompressionLevel int    // Default: 5. Range 0 (store) to 9 (ultra).

	// Behavior flags.
	DryRun       bool // Scan, name and size only; nothing is written.
	AnalyzeOnly  bool // Stop after the scan and print the report.
	DeleteSource bool // Delete originals after a passed verification.
	SkipCRC      bool // Skip the CRC32 comparison (integrity + count only).
	SkipExisting bool // Default: true. Cleared by --force.

	// Preflight policy.
	PathLimit     int  // Default: 260.
	SkipLongPaths bool // Skip pairs whose paths exceed PathLimit.
	SkipAmbiguous bool // Skip pairs with visually ambiguous Unicode names.

	// Output.
	JSONReport string // Optional path for the JSON scan/run report.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.

	// ConfigFile is the YAML file that was loaded, if any.
	ConfigFile string
}

// DefaultConfig returns a Config with all defaults applied. Used as the base
// before the config file and CLI flags apply overrides.
func DefaultConfig() Config {
	return Config{
		MaxDepth:         UnlimitedDepth,
		SevenZipPath:     "7z",
		CompressionLevel: CompressionDefault,
		SkipExisting:     true,
		PathLimit:        DefaultPathLimit,
		ColorMode:        ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks ranges and enum fields. When not in CheckOnly mode, it
// also requires a root directory.
func (c *Config) Validate() error {
	if c.CompressionLevel < CompressionMin || c.CompressionLevel > CompressionMax {
		return fmt.Errorf("invalid compression level %d (use %d-%d)", c.CompressionLevel, CompressionMin, CompressionMax)
	}
	if c.MaxDepth < UnlimitedDepth {
		return fmt.Errorf("invalid max depth %d (use 0 or more, or omit for unlimited)", c.MaxDepth)
	}
	if c.PathLimit <= 0 {
		return fmt.Errorf("invalid path limit %d", c.PathLimit)
	}
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}
	if strings.TrimSpace(c.SevenZipPath) == "" {
		return errors.New("7z path must not be empty")
	}

	if c.CheckOnly {
		return nil
	}
	if c.RootDir == "" {
		return errors.New("need exactly one directory to scan")
	}
	if c.AnalyzeOnly && c.DeleteSource {
		return errors.New("--analyze and --delete-source are mutually exclusive")
	}
	return nil
}

// Mutating reports whether the run may write archives or delete files.
func (c *Config) Mutating() bool {
	return !c.DryRun && !c.AnalyzeOnly && !c.CheckOnly
}

// DepthLabel renders MaxDepth for logs and reports.
func (c *Config) DepthLabel() string {
	if c.MaxDepth == UnlimitedDepth {
		return "unlimited"
	}
	return fmt.Sprintf("%d", c.MaxDepth)
}
