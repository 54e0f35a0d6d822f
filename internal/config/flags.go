package config

// This file implements CLI flag registration for the cobra root command.
// Flags are grouped into scan, archive, safety, output/display, and utility.
// Negated flags (e.g. --force, --no-color) are applied after parsing so
// Config defaults hold unless the user passes the flag.

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
)

// FlagState holds flag values that are not bound directly to Config fields.
// Create it with [RegisterFlags] and finish with [FlagState.Apply].
type FlagState struct {
	negated    negatedFlags
	configFile string
}

// negatedFlags holds boolean flags that invert a default or pick a mode.
type negatedFlags struct {
	force      bool
	forceColor bool
	noColor    bool
}

// RegisterFlags binds every CLI flag on fs to cfg. Call before parsing.
func RegisterFlags(fs *pflag.FlagSet, cfg *Config) *FlagState {
	st := &FlagState{}

	defineScanFlags(fs, cfg)
	defineArchiveFlags(fs, cfg)
	defineSafetyFlags(fs, cfg, &st.negated)
	defineDisplayFlags(fs, cfg, st)

	return st
}

// defineScanFlags registers --max-depth and --analyze.
func defineScanFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.MaxDepth, "max-depth", cfg.MaxDepth, "Maximum scan depth (0 = root only, -1 = unlimited)")
	fs.BoolVarP(&cfg.AnalyzeOnly, "analyze", "a", false, "Scan and report only; do not archive")
}

// defineArchiveFlags registers --compression and --7z-path.
func defineArchiveFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVarP(&cfg.CompressionLevel, "compression", "x", cfg.CompressionLevel, "Compression level 0-9 (0 = store, 9 = ultra)")
	fs.StringVar(&cfg.SevenZipPath, "7z-path", cfg.SevenZipPath, "Path to the 7z executable")
}

// defineSafetyFlags registers dry-run, delete, verification and preflight policy flags.
func defineSafetyFlags(fs *pflag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVarP(&cfg.DryRun, "dry-run", "d", false, "Preview only; do not create archives or delete anything")
	fs.BoolVar(&cfg.DeleteSource, "delete-source", false, "Delete originals after the archive passes verification")
	fs.BoolVar(&cfg.SkipCRC, "skip-crc", false, "Skip CRC32 comparison (integrity test and file count only)")
	fs.BoolVar(&cfg.SkipCRC, "skip-verification", false, "Same as --skip-crc")
	_ = fs.MarkHidden("skip-verification")
	fs.BoolVarP(&n.force, "force", "f", false, "Overwrite archives that already exist")
	fs.IntVar(&cfg.PathLimit, "path-limit", cfg.PathLimit, "Path length limit used by the long-path preflight")
	fs.BoolVar(&cfg.SkipLongPaths, "skip-long-paths", false, "Skip pairs whose paths would exceed --path-limit")
	fs.BoolVar(&cfg.SkipAmbiguous, "skip-ambiguous", false, "Skip pairs whose names contain ambiguous Unicode characters")
}

// defineDisplayFlags registers --json, --color, --no-color, verbose, --check, --log, --config.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config, st *FlagState) {
	fs.StringVar(&cfg.JSONReport, "json", "", "Write the scan/run report as JSON to this file")
	fs.BoolVar(&st.negated.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&st.negated.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVarP(&cfg.CheckOnly, "check", "c", false, "Run 7z diagnostics and exit")
	fs.StringVarP(&cfg.LogFile, "log", "l", "", "Append logs to file")
	fs.StringVar(&st.configFile, "config", "", "YAML config file (default: $XDG_CONFIG_HOME/webarchiver/config.yaml)")
}

// Apply finishes configuration after parsing: overlays the config file for
// settings the user did not pass on the command line, applies negated
// flags, and sets RootDir from the positional args.
func (st *FlagState) Apply(fs *pflag.FlagSet, cfg *Config, args []string) error {
	path := st.configFile
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile()
	}
	if path != "" {
		fc, err := LoadFile(path)
		if err != nil {
			if explicit || !isNotExist(err) {
				return err
			}
		} else {
			fc.applyTo(cfg, fs.Changed)
			cfg.ConfigFile = path
		}
	}

	applyNegatedFlags(cfg, &st.negated)
	return parsePositionalArgs(cfg, args)
}

// applyNegatedFlags copies negated flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.force {
		cfg.SkipExisting = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets RootDir from the single positional arg when not in
// CheckOnly mode. RootDir is made absolute so every path handed to 7z starts
// with a separator.
func parsePositionalArgs(cfg *Config, args []string) error {
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("need exactly one directory to scan (got %d args)", len(args))
	}
	root := NormalizeDirArg(strings.TrimSpace(args[0]))
	if root == "" {
		return errors.New("directory to scan must not be empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", root, err)
	}
	cfg.RootDir = abs
	return nil
}
