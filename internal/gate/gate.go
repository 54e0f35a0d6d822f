// Package gate is the only code path that deletes original pages.
//
// DeleteOriginals refuses to act unless the archive's verification passed.
// It removes the HTML file first, then the resource folder. A failure part
// way is reported, not rolled back: the verified archive already holds
// everything, so the worst case is stale originals left behind.
package gate

import (
	"errors"
	"fmt"
	"os"

	"github.com/backmassage/webarchiver/internal/scan"
)

// ErrNotVerified is returned when deletion is requested for an archive that
// did not pass verification. Nothing is touched.
var ErrNotVerified = errors.New("archive not verified; originals kept")

// Verification is the subset of a verification result the gate needs.
type Verification interface {
	Passed() bool
}

// Stage names what the gate was deleting when it failed.
type Stage string

const (
	StageHTML   Stage = "html"
	StageFolder Stage = "folder"
)

// DeletionError reports a deletion that stopped part way.
type DeletionError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *DeletionError) Error() string {
	msg := fmt.Sprintf("delete %s %s: %v", e.Stage, e.Path, e.Err)
	if e.Stage == StageFolder {
		msg += " (HTML file already deleted)"
	}
	return msg
}

func (e *DeletionError) Unwrap() error { return e.Err }

// DeleteOriginals removes pair's HTML file and folder if v passed.
func DeleteOriginals(pair scan.Pair, v Verification) error {
	if v == nil || !v.Passed() {
		return ErrNotVerified
	}
	if err := os.Remove(pair.HTMLPath); err != nil {
		return &DeletionError{Path: pair.HTMLPath, Stage: StageHTML, Err: err}
	}
	if err := os.RemoveAll(pair.FolderPath); err != nil {
		return &DeletionError{Path: pair.FolderPath, Stage: StageFolder, Err: err}
	}
	return nil
}
