// Package runlock keeps two mutating runs from processing the same tree at
// the same time. The lock is an advisory flock on a file in the XDG state
// directory, named after a hash of the absolute root path.
package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the lock.
var ErrLocked = errors.New("another webarchiver run is processing this directory")

// Lock is a held run lock. Release it when the run ends.
type Lock struct {
	fl   *flock.Flock
	path string
}

// PathFor returns the lock file path for root, creating the state
// directory if needed.
func PathFor(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", root, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	sum := sha256.Sum256([]byte(abs))
	name := filepath.Join("webarchiver", "locks", hex.EncodeToString(sum[:8])+".lock")
	path, err := xdg.StateFile(name)
	if err != nil {
		return "", fmt.Errorf("locate lock file: %w", err)
	}
	return path, nil
}

// Acquire takes the lock for root without blocking.
func Acquire(root string) (*Lock, error) {
	path, err := PathFor(root)
	if err != nil {
		return nil, err
	}
	return AcquireAt(path)
}

// AcquireAt takes the lock at an explicit lock file path without blocking.
// It returns ErrLocked when the lock is already held.
func AcquireAt(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock file %s)", ErrLocked, path)
	}
	return &Lock{fl: fl, path: path}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string { return l.path }

// Release unlocks and closes the lock file. The file itself is left in
// place; removing it would race with a process about to lock it.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return nil
}
