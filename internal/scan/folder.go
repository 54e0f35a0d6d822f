package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// folderStats summarizes every file the compressor will store for a folder.
type folderStats struct {
	files       int
	size        int64
	longestPath int
	ambiguous   []Finding
}

// statFolder walks dir recursively. Regular files count, as do symlinks
// that resolve to regular files; directories and dangling links do not.
// The first walk error is returned alongside whatever was gathered.
func statFolder(dir string) (folderStats, error) {
	var st folderStats
	var firstErr error

	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		st.ambiguous = append(st.ambiguous, findAmbiguous(path, d.Name())...)
		if d.IsDir() {
			return nil
		}
		info, ok := fileInfo(path, d)
		if !ok {
			return nil
		}
		st.files++
		st.size += info.Size()
		if n := utf8.RuneCountInString(path); n > st.longestPath {
			st.longestPath = n
		}
		return nil
	})
	return st, firstErr
}

// fileInfo resolves d to the info of a regular file, following symlinks.
func fileInfo(path string, d fs.DirEntry) (fs.FileInfo, bool) {
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return nil, false
		}
		return info, true
	}
	if !d.Type().IsRegular() {
		return nil, false
	}
	info, err := d.Info()
	if err != nil {
		return nil, false
	}
	return info, true
}
