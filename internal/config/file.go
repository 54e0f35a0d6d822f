package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// configRelPath is the config file location relative to the XDG config dirs.
const configRelPath = "webarchiver/config.yaml"

// FileConfig mirrors the subset of Config that may be set from YAML. Pointer
// fields distinguish "absent" from zero values.
type FileConfig struct {
	MaxDepth         *int    `yaml:"max_depth"`
	SevenZipPath     *string `yaml:"seven_zip_path"`
	CompressionLevel *int    `yaml:"compression_level"`
	SkipCRC          *bool   `yaml:"skip_crc"`
	DeleteSource     *bool   `yaml:"delete_source"`
	PathLimit        *int    `yaml:"path_limit"`
	SkipLongPaths    *bool   `yaml:"skip_long_paths"`
	SkipAmbiguous    *bool   `yaml:"skip_ambiguous"`
	Color            *string `yaml:"color"`
	LogFile          *string `yaml:"log_file"`
	Verbose          *bool   `yaml:"verbose"`
}

// DefaultConfigFile returns the first existing config.yaml in the XDG config
// search path, or "" when there is none.
func DefaultConfigFile() string {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		return ""
	}
	return path
}

// LoadFile reads and decodes a YAML config file. Unknown keys are rejected so
// typos surface instead of being silently ignored.
func LoadFile(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	var fc FileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return &fc, nil
		}
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &fc, nil
}

// applyTo copies every set field into cfg unless the matching CLI flag was
// passed explicitly (changed reports that).
func (fc *FileConfig) applyTo(cfg *Config, changed func(string) bool) {
	if fc.MaxDepth != nil && !changed("max-depth") {
		cfg.MaxDepth = *fc.MaxDepth
	}
	if fc.SevenZipPath != nil && !changed("7z-path") {
		cfg.SevenZipPath = *fc.SevenZipPath
	}
	if fc.CompressionLevel != nil && !changed("compression") {
		cfg.CompressionLevel = *fc.CompressionLevel
	}
	if fc.SkipCRC != nil && !changed("skip-crc") && !changed("skip-verification") {
		cfg.SkipCRC = *fc.SkipCRC
	}
	if fc.DeleteSource != nil && !changed("delete-source") {
		cfg.DeleteSource = *fc.DeleteSource
	}
	if fc.PathLimit != nil && !changed("path-limit") {
		cfg.PathLimit = *fc.PathLimit
	}
	if fc.SkipLongPaths != nil && !changed("skip-long-paths") {
		cfg.SkipLongPaths = *fc.SkipLongPaths
	}
	if fc.SkipAmbiguous != nil && !changed("skip-ambiguous") {
		cfg.SkipAmbiguous = *fc.SkipAmbiguous
	}
	if fc.Color != nil && !changed("color") && !changed("no-color") {
		cfg.ColorMode = ColorMode(*fc.Color)
	}
	if fc.LogFile != nil && !changed("log") {
		cfg.LogFile = *fc.LogFile
	}
	if fc.Verbose != nil && !changed("verbose") {
		cfg.Verbose = *fc.Verbose
	}
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
