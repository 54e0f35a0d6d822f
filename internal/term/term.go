// Package term provides color state and terminal detection.
//
// Colorizers are package-level because several packages (logging, display,
// pipeline) format colored output. [Configure] sets them once during
// startup; when colors are disabled every colorizer returns its input
// unchanged.
package term

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/backmassage/webarchiver/internal/config"
)

var (
	red     = color.New(color.FgHiRed, color.Bold)
	green   = color.New(color.FgHiGreen, color.Bold)
	yellow  = color.New(color.FgHiYellow, color.Bold)
	blue    = color.New(color.FgHiBlue, color.Bold)
	cyan    = color.New(color.FgHiCyan, color.Bold)
	magenta = color.New(color.FgHiMagenta, color.Bold)
)

// Configure resolves the color mode and toggles fatih/color globally.
// Call once during startup (from [logging.NewLogger]).
func Configure(mode config.ColorMode) {
	color.NoColor = !resolve(mode)
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return !color.NoColor }

// Red, Green, Yellow, Blue, Cyan and Magenta wrap s in the matching color.
func Red(s string) string     { return red.Sprint(s) }
func Green(s string) string   { return green.Sprint(s) }
func Yellow(s string) string  { return yellow.Sprint(s) }
func Blue(s string) string    { return blue.Sprint(s) }
func Cyan(s string) string    { return cyan.Sprint(s) }
func Magenta(s string) string { return magenta.Sprint(s) }

// Mark renders a pass/fail check mark.
func Mark(ok bool) string {
	if ok {
		return Green("✓")
	}
	return Red("✗")
}

// resolve determines whether colors should be enabled based on the configured
// mode, TTY detection, and the NO_COLOR env var (https://no-color.org).
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(os.Stdout) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
