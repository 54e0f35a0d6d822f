package sevenzip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
)

// ErrNotFound is returned when the 7z executable cannot be started.
var ErrNotFound = errors.New("7z executable not found")

// Output holds the captured streams and exit code of one invocation.
type Output struct {
	Stdout   []byte
	Stderr   string
	ExitCode int
}

// Executor runs the 7z binary at Path. When Tee is set, stderr is copied
// to it in real time as well as captured.
type Executor struct {
	Path string
	Tee  io.Writer
}

// Run executes 7z with args and waits for it to exit. A non-zero exit code
// is returned as *ExitError; a missing binary wraps ErrNotFound. Cancelling
// ctx kills the process.
func (e *Executor) Run(ctx context.Context, op string, args ...string) (Output, error) {
	cmd := exec.CommandContext(ctx, e.Path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if e.Tee != nil {
		cmd.Stderr = io.MultiWriter(&stderr, e.Tee)
	} else {
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.String()}
	if err == nil {
		return out, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, fmt.Errorf("7z %s: %w", op, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, &ExitError{Op: op, Code: out.ExitCode, Stderr: out.Stderr}
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return out, fmt.Errorf("%w: %s", ErrNotFound, e.Path)
	}
	return out, fmt.Errorf("7z %s: %w", op, err)
}
