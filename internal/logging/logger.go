// Package logging wraps zerolog behind the leveled, colored logger used by
// every webarchiver command.
//
// Console output is human-oriented (timestamp, bracketed level tag, message
// and key=value fields). When a log file is configured the same events are
// appended to it as JSON lines, debug included, so runs can be inspected
// with jq.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/backmassage/webarchiver/internal/config"
	"github.com/backmassage/webarchiver/internal/term"
)

// levelSuccess is written as the level of Success events. zerolog has no
// success level, so these events are emitted without one and tagged here.
const levelSuccess = "success"

const consoleTimeFormat = "2006-01-02 15:04:05"

// Logger provides leveled, optionally colored logging with an optional JSON
// file sink.
type Logger struct {
	zl      zerolog.Logger
	verbose bool

	mu   sync.Mutex
	file *os.File
}

// NewLogger configures colors from cfg and optionally opens cfg.LogFile.
// Call Close when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	return newLogger(cfg, os.Stdout, os.Stderr)
}

func newLogger(cfg *config.Config, out, errOut io.Writer) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	consoleLevel := zerolog.InfoLevel
	if cfg.Verbose {
		consoleLevel = zerolog.DebugLevel
	}
	writers := []io.Writer{&zerolog.FilteredLevelWriter{
		Writer: consoleRouter{
			out: newConsoleWriter(out),
			err: newConsoleWriter(errOut),
		},
		Level: consoleLevel,
	}}

	l := &Logger{verbose: cfg.Verbose}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
		writers = append(writers, f)
	}

	// The file sink records debug events even when the console does not.
	level := consoleLevel
	if l.file != nil {
		level = zerolog.DebugLevel
	}
	l.zl = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()
	return l, nil
}

// Discard returns a Logger that drops everything. Used by tests and by
// callers that only want the return values of a pipeline stage.
func Discard() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// WithRunID returns a child logger that stamps every event with run_id.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		zl:      l.zl.With().Str("run_id", id).Logger(),
		verbose: l.verbose,
		file:    l.file,
	}
}

// Verbose reports whether debug output is enabled.
func (l *Logger) Verbose() bool { return l.verbose }

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.zl.Log().Str(zerolog.LevelFieldName, levelSuccess).Msgf(format, args...)
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}

// Error logs at ERROR level (red) on stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

// Debug logs at DEBUG level (cyan). The console shows it only when verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

// Event logs a structured pipeline event at DEBUG level: always kept in the
// log file as JSON keys, shown as key=value on the console only when
// verbose.
func (l *Logger) Event(name string, fields map[string]interface{}) {
	l.zl.Debug().Str("event", name).Fields(fields).Msg(name)
}

func newConsoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:         w,
		NoColor:     !term.Enabled(),
		TimeFormat:  consoleTimeFormat,
		FormatLevel: formatLevel,
	}
}

func formatLevel(i interface{}) string {
	s, _ := i.(string)
	switch s {
	case zerolog.LevelDebugValue:
		return term.Cyan("[DEBUG]")
	case zerolog.LevelInfoValue:
		return term.Blue("[INFO]")
	case levelSuccess:
		return term.Green("[SUCCESS]")
	case zerolog.LevelWarnValue:
		return term.Yellow("[WARN]")
	case zerolog.LevelErrorValue, zerolog.LevelFatalValue, zerolog.LevelPanicValue:
		return term.Red("[ERROR]")
	default:
		return "[" + s + "]"
	}
}

// consoleRouter sends error-level events to err and everything else to out.
type consoleRouter struct {
	out io.Writer
	err io.Writer
}

func (r consoleRouter) Write(p []byte) (int, error) {
	return r.out.Write(p)
}

func (r consoleRouter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	switch level {
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return r.err.Write(p)
	default:
		return r.out.Write(p)
	}
}
