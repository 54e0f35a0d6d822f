// Package verify checks a freshly created archive against the originals it
// was built from.
//
// Three checks run in order: the compressor's integrity test, a file count
// comparison, and (unless skipped) a CRC32 comparison of every original
// against the checksum stored in the archive listing. Only an unreadable
// listing stops verification early. The verifier never modifies anything.
package verify

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/backmassage/webarchiver/internal/crc"
	"github.com/backmassage/webarchiver/internal/logging"
	"github.com/backmassage/webarchiver/internal/scan"
	"github.com/backmassage/webarchiver/internal/sevenzip"
)

// Inspector tests and lists archives.
type Inspector interface {
	Test(ctx context.Context, archive string) error
	List(ctx context.Context, archive string) ([]sevenzip.Entry, error)
}

// Verifier runs the three-level check.
type Verifier struct {
	insp Inspector
	log  *logging.Logger
}

// NewVerifier returns a Verifier backed by insp.
func NewVerifier(insp Inspector, log *logging.Logger) *Verifier {
	if log == nil {
		log = logging.Discard()
	}
	return &Verifier{insp: insp, log: log}
}

// original is one source file and its key as stored in the archive.
type original struct {
	key  string
	path string
}

// Verify checks archivePath against pair. The returned error is non-nil
// only when the archive cannot be listed (or ctx is cancelled); the Result
// then holds whatever was established before that point.
func (v *Verifier) Verify(ctx context.Context, archivePath string, pair scan.Pair, skipCRC bool) (Result, error) {
	res := Result{ArchivePath: archivePath, CRCSkipped: skipCRC}

	// 1. Integrity.
	if err := v.insp.Test(ctx, archivePath); err != nil {
		if ctx.Err() != nil {
			res.Incomplete = true
			return res, ctx.Err()
		}
		res.IntegrityDetail = err.Error()
		v.log.Warn("integrity test failed for %s: %v", filepath.Base(archivePath), err)
	} else {
		res.IntegrityOK = true
	}

	// 2. File count.
	entries, err := v.insp.List(ctx, archivePath)
	if err != nil {
		res.ListErr = err.Error()
		if ctx.Err() != nil {
			res.Incomplete = true
		}
		return res, fmt.Errorf("list %s: %w", archivePath, err)
	}
	archived := make(map[string]sevenzip.Entry)
	for _, e := range sevenzip.Files(entries) {
		archived[normalizeKey(e.Path)] = e
		res.ArchivedFiles++
	}

	originals, err := listOriginals(pair)
	if err != nil {
		res.SourceErr = err.Error()
		res.ExpectedFiles = pair.FileCount()
		v.log.Warn("could not list originals of %s: %v", pair.Name(), err)
	} else {
		res.ExpectedFiles = len(originals)
	}
	if !res.CountOK() {
		v.log.Warn("file count mismatch for %s: expected %d, archive has %d",
			filepath.Base(archivePath), res.ExpectedFiles, res.ArchivedFiles)
	}

	// 3. CRC32.
	if skipCRC {
		return res, nil
	}
	for _, o := range originals {
		if err := ctx.Err(); err != nil {
			res.Incomplete = true
			return res, err
		}
		res.CRCChecked++
		m, ok := compare(o, archived)
		if !ok {
			res.Mismatches = append(res.Mismatches, m)
			v.log.Warn("CRC check: %s", m)
		}
	}
	v.log.Debug("verified %s: %s", filepath.Base(archivePath), res.Summary())
	return res, nil
}

// compare checks one original against the archive entries. ok is false
// when the returned Mismatch should be recorded.
func compare(o original, archived map[string]sevenzip.Entry) (Mismatch, bool) {
	want, err := crc.File(o.path)
	if err != nil {
		return Mismatch{Path: o.key, ReadErr: err.Error()}, false
	}
	e, found := archived[normalizeKey(o.key)]
	if !found {
		return Mismatch{Path: o.key, Expected: want, Missing: true}, false
	}
	// 7z records no CRC for empty files; CRC32 of nothing is 0.
	if e.CRC != want {
		return Mismatch{Path: o.key, Expected: want, Actual: e.CRC}, false
	}
	return Mismatch{}, true
}

// listOriginals returns the HTML file and every file of the folder, keyed
// the way 7z names them when given the two paths as inputs.
func listOriginals(pair scan.Pair) ([]original, error) {
	out := []original{{key: filepath.Base(pair.HTMLPath), path: pair.HTMLPath}}
	files, err := crc.Files(pair.FolderPath)
	if err != nil {
		return out, err
	}
	base := filepath.Base(pair.FolderPath)
	for _, rel := range files {
		out = append(out, original{
			key:  base + "/" + rel,
			path: filepath.Join(pair.FolderPath, filepath.FromSlash(rel)),
		})
	}
	return out, nil
}
