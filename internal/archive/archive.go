// Package archive creates one 7z archive per saved page.
//
// The compressor writes to a hidden temporary file next to the final
// archive. Only when the compressor exits zero and the temporary file is
// non-empty is it renamed into place, so a failed or interrupted run never
// leaves a partial archive under the final name.
package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/backmassage/webarchiver/internal/logging"
	"github.com/backmassage/webarchiver/internal/scan"
)

// Compressor produces an archive from input paths.
type Compressor interface {
	Add(ctx context.Context, archive string, level int, inputs ...string) error
}

// Stage names the step of archive creation that failed.
type Stage string

const (
	StageCompress Stage = "compress"
	StageOutput   Stage = "output"
	StageRename   Stage = "rename"
)

// errEmptyOutput is wrapped when the compressor exits cleanly but leaves
// an empty file behind.
var errEmptyOutput = errors.New("compressor produced an empty archive")

// CreationError reports a failed archive creation. Originals are never
// touched when it is returned.
type CreationError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("create %s (%s): %v", filepath.Base(e.Path), e.Stage, e.Err)
}

func (e *CreationError) Unwrap() error { return e.Err }

// Result is the outcome of archiving one pair.
type Result struct {
	ArchivePath    string
	OriginalSize   int64
	CompressedSize int64
	Success        bool
	// DryRun marks a preview: nothing was written.
	DryRun bool
	Err    error
}

// SpaceSaved is OriginalSize minus CompressedSize for a created archive.
func (r Result) SpaceSaved() int64 {
	if !r.Success || r.DryRun {
		return 0
	}
	return r.OriginalSize - r.CompressedSize
}

// Creator archives pairs with a Compressor.
type Creator struct {
	comp Compressor
	log  *logging.Logger
}

// NewCreator returns a Creator backed by comp.
func NewCreator(comp Compressor, log *logging.Logger) *Creator {
	if log == nil {
		log = logging.Discard()
	}
	return &Creator{comp: comp, log: log}
}

// Preview returns the Result a dry run reports for pair: the planned
// archive path and the source size, with nothing written.
func Preview(pair scan.Pair, outputPath string) Result {
	return Result{
		ArchivePath:  outputPath,
		OriginalSize: pair.TotalSize(),
		Success:      true,
		DryRun:       true,
	}
}

// Create compresses the pair's HTML file and folder into outputPath at the
// given level (0-9). An existing file at outputPath is replaced only once
// the new archive is complete.
func (c *Creator) Create(ctx context.Context, pair scan.Pair, outputPath string, level int) Result {
	res := Result{ArchivePath: outputPath, OriginalSize: pair.TotalSize()}

	tmp := TempPath(outputPath)
	fail := func(stage Stage, err error) Result {
		if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			c.log.Warn("could not remove partial archive %s: %v", tmp, rmErr)
		}
		res.Err = &CreationError{Path: outputPath, Stage: stage, Err: err}
		return res
	}

	if err := c.comp.Add(ctx, tmp, level, pair.HTMLPath, pair.FolderPath); err != nil {
		return fail(StageCompress, err)
	}

	info, err := os.Stat(tmp)
	if err != nil {
		return fail(StageOutput, err)
	}
	if info.Size() == 0 {
		return fail(StageOutput, errEmptyOutput)
	}
	if err := ctx.Err(); err != nil {
		return fail(StageRename, err)
	}
	if err := os.Rename(tmp, outputPath); err != nil {
		return fail(StageRename, err)
	}

	res.CompressedSize = info.Size()
	res.Success = true
	c.log.Debug("created %s (%d -> %d bytes)", filepath.Base(outputPath), res.OriginalSize, res.CompressedSize)
	return res
}

// TempPath returns a unique hidden sibling of outputPath used while the
// archive is being written.
func TempPath(outputPath string) string {
	dir, name := filepath.Split(outputPath)
	return filepath.Join(dir, "."+name+"."+uuid.NewString()+".partial")
}
