// Package crc computes CRC32 (IEEE) checksums of files, the same checksum
// 7-Zip records for every stored entry.
package crc

import (
	"bufio"
	"fmt"
	"hash/crc32"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// BufferSize is the read chunk size. Memory use stays bounded regardless
// of file size.
const BufferSize = 1 << 20

// IOError reports a file that could not be opened or read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("crc32 %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// File streams path through a CRC32 accumulator.
func File(path string) (uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	sum, err := Reader(f)
	if err != nil {
		return 0, &IOError{Path: path, Err: err}
	}
	return sum, nil
}

// Reader computes the CRC32 of everything read from r.
func Reader(r io.Reader) (uint32, error) {
	h := crc32.NewIEEE()
	if _, err := io.Copy(h, bufio.NewReaderSize(r, BufferSize)); err != nil {
		return 0, err
	}
	return h.Sum32(), nil
}

// Bytes returns the CRC32 of b.
func Bytes(b []byte) uint32 { return crc32.ChecksumIEEE(b) }

// Files lists every regular file below dir (symlinks to regular files
// count), as sorted slash-separated paths relative to dir.
func Files(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &IOError{Path: path, Err: err}
		}
		if d.IsDir() || !regular(path, d) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return &IOError{Path: path, Err: err}
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Tree returns the CRC32 of every file Files lists, keyed by the same
// relative path. The first unreadable file aborts with an *IOError.
func Tree(dir string) (map[string]uint32, error) {
	files, err := Files(dir)
	if err != nil {
		return nil, err
	}
	sums := make(map[string]uint32, len(files))
	for _, rel := range files {
		sum, err := File(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, err
		}
		sums[rel] = sum
	}
	return sums, nil
}

func regular(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		return err == nil && info.Mode().IsRegular()
	}
	return d.Type().IsRegular()
}
