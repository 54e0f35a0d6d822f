// Package scan walks a directory tree and pairs saved web pages with their
// resource folders.
//
// Each directory is handled in two passes. Pass 1 reads the entries once
// and collects the subdirectory names. Pass 2 runs the pattern matcher for
// every HTML file against that set: a match claims the folder and yields a
// Pair, no match yields an orphan HTML entry. Resource-like folders left
// unclaimed become orphan folders. Claimed folders are never descended
// into, so HTML embedded in a saved page (frames, iframes) is never treated
// as a page of its own.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/backmassage/webarchiver/internal/logging"
	"github.com/backmassage/webarchiver/internal/pattern"
)

var errNotDir = errors.New("not a directory")

// Scanner finds pairs and orphans below a root directory.
type Scanner struct {
	// ReadTitles parses each paired HTML file for its <title>.
	ReadTitles bool

	log *logging.Logger
}

// NewScanner returns a Scanner that reads page titles.
func NewScanner(log *logging.Logger) *Scanner {
	if log == nil {
		log = logging.Discard()
	}
	return &Scanner{ReadTitles: true, log: log}
}

// walkState accumulates results across directories of one scan.
type walkState struct {
	root     string
	maxDepth int
	visited  map[string]bool
	result   *Result
}

// Scan walks root down to maxDepth levels (0 = root only, Unlimited = no
// limit). A missing or unreadable root yields an *AccessError. Unreadable
// subdirectories and symlink cycles are recorded as warnings and skipped.
func (s *Scanner) Scan(ctx context.Context, root string, maxDepth int) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &AccessError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &AccessError{Path: root, Err: errNotDir}
	}

	st := &walkState{
		root:     root,
		maxDepth: maxDepth,
		visited:  make(map[string]bool),
		result:   &Result{Root: root, MaxDepth: maxDepth},
	}
	if err := s.walk(ctx, st, root, 0); err != nil {
		return nil, err
	}

	r := st.result
	s.log.Debug("scan of %s: %d pairs, %d orphan html, %d orphan folders, %d dirs, %d files",
		root, len(r.pairs), len(r.orphanHTML), len(r.orphanFolders), r.DirectoriesScanned, r.FilesScanned)
	return r, nil
}

func (s *Scanner) walk(ctx context.Context, st *walkState, dir string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		resolved = dir
	}
	if st.visited[resolved] {
		st.warn(dir, "symlink cycle (already scanned as "+resolved+")")
		return nil
	}
	st.visited[resolved] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		if dir == st.root {
			return &AccessError{Path: dir, Err: err}
		}
		st.warn(dir, err.Error())
		return nil
	}
	st.result.DirectoriesScanned++

	// Pass 1: classify entries. os.ReadDir sorts by name.
	subdirs := make(map[string]bool)
	var dirNames, htmlNames []string
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		isDir, isFile := classify(path, e)
		switch {
		case isDir:
			subdirs[e.Name()] = true
			dirNames = append(dirNames, e.Name())
		case isFile:
			st.result.FilesScanned++
			if pattern.IsHTML(e.Name()) {
				htmlNames = append(htmlNames, e.Name())
			}
		}
	}

	// Pass 2: attach HTML files to folders.
	claimed := make(map[string]string)
	exists := func(name string) bool { return subdirs[name] }
	for _, name := range htmlNames {
		htmlPath := filepath.Join(dir, name)
		folder, p, ok := pattern.Match(name, exists)
		if !ok {
			st.orphanHTML(htmlPath, "no matching resource folder found")
			continue
		}
		if owner, taken := claimed[folder]; taken {
			st.orphanHTML(htmlPath, fmt.Sprintf("resource folder already claimed by %s", owner))
			continue
		}
		claimed[folder] = name
		st.result.pairs = append(st.result.pairs, s.buildPair(st, htmlPath, filepath.Join(dir, folder), p))
	}

	for _, name := range dirNames {
		if _, ok := claimed[name]; ok || !pattern.Candidate(name) {
			continue
		}
		path := filepath.Join(dir, name)
		fst, _ := statFolder(path)
		st.result.orphanFolders = append(st.result.orphanFolders, Orphan{
			Path:   path,
			Kind:   OrphanFolder,
			Size:   fst.size,
			Reason: "no matching HTML file found",
		})
	}

	if st.maxDepth != Unlimited && depth >= st.maxDepth {
		return nil
	}
	for _, name := range dirNames {
		if _, ok := claimed[name]; ok {
			continue
		}
		if err := s.walk(ctx, st, filepath.Join(dir, name), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) buildPair(st *walkState, htmlPath, folderPath string, p pattern.Pattern) Pair {
	pair := Pair{
		HTMLPath:   htmlPath,
		FolderPath: folderPath,
		Pattern:    p,
	}
	if info, err := os.Stat(htmlPath); err == nil {
		pair.HTMLSize = info.Size()
	}

	fst, err := statFolder(folderPath)
	if err != nil {
		st.warn(folderPath, "incomplete folder walk: "+err.Error())
	}
	pair.FolderFiles = fst.files
	pair.FolderSize = fst.size
	pair.LongestPath = max(utf8.RuneCountInString(htmlPath), fst.longestPath)
	pair.Ambiguous = append(findAmbiguous(htmlPath, filepath.Base(htmlPath)), fst.ambiguous...)

	if s.ReadTitles {
		pair.Title = readTitle(htmlPath)
	}

	s.log.Debug("pair %s + %s (%s): %d files, %d bytes, longest path %d",
		filepath.Base(htmlPath), filepath.Base(folderPath), p.Name, pair.FolderFiles, pair.TotalSize(), pair.LongestPath)
	return pair
}

// classify resolves e (following symlinks) to directory or regular file.
func classify(path string, e fs.DirEntry) (isDir, isFile bool) {
	mode := e.Type()
	if mode&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil {
			return false, false
		}
		mode = info.Mode()
	}
	return mode.IsDir(), mode.IsRegular()
}

func (st *walkState) orphanHTML(path, reason string) {
	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}
	st.result.orphanHTML = append(st.result.orphanHTML, Orphan{
		Path:   path,
		Kind:   OrphanHTML,
		Size:   size,
		Reason: reason,
	})
}

func (st *walkState) warn(path, reason string) {
	st.result.warnings = append(st.result.warnings, Warning{Path: path, Reason: reason})
}
