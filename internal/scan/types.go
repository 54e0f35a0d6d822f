package scan

import (
	"fmt"
	"path/filepath"

	"github.com/backmassage/webarchiver/internal/pattern"
)

// Unlimited disables the depth limit.
const Unlimited = -1

// Pair is a saved page and its resource folder. The scanner builds each
// Pair once; it is passed by value afterwards.
type Pair struct {
	HTMLPath    string
	FolderPath  string
	Pattern     pattern.Pattern
	HTMLSize    int64
	FolderFiles int
	FolderSize  int64

	// Title is the page's <title>, if one could be read.
	Title string
	// LongestPath is the longest source path (in characters) among the
	// HTML file and every file in the folder.
	LongestPath int
	// Ambiguous lists visually ambiguous characters found in source names.
	Ambiguous []Finding
}

// TotalSize is the HTML size plus the folder size.
func (p Pair) TotalSize() int64 { return p.HTMLSize + p.FolderSize }

// FileCount is the number of files the archive must hold: the folder's
// files plus the HTML file.
func (p Pair) FileCount() int { return p.FolderFiles + 1 }

// Name is the HTML file name, used to identify the pair in logs.
func (p Pair) Name() string { return filepath.Base(p.HTMLPath) }

// OrphanKind tells orphan HTML files from orphan folders.
type OrphanKind string

const (
	OrphanHTML   OrphanKind = "html"
	OrphanFolder OrphanKind = "folder"
)

// Orphan is an HTML file without a resource folder, or a folder that looks
// like a resource folder but belongs to no HTML file.
type Orphan struct {
	Path   string
	Kind   OrphanKind
	Size   int64
	Reason string
}

// Warning records a subdirectory the scanner skipped.
type Warning struct {
	Path   string
	Reason string
}

// Result is the outcome of one scan. Accessors return copies; a Result is
// never modified after Scan returns it.
type Result struct {
	Root     string
	MaxDepth int

	FilesScanned       int
	DirectoriesScanned int

	pairs         []Pair
	orphanHTML    []Orphan
	orphanFolders []Orphan
	warnings      []Warning
}

// Pairs returns the matched pairs in scan order.
func (r *Result) Pairs() []Pair { return append([]Pair(nil), r.pairs...) }

// OrphanHTML returns HTML files that have no resource folder.
func (r *Result) OrphanHTML() []Orphan { return append([]Orphan(nil), r.orphanHTML...) }

// OrphanFolders returns resource-like folders that no HTML file claimed.
func (r *Result) OrphanFolders() []Orphan { return append([]Orphan(nil), r.orphanFolders...) }

// Warnings returns subdirectories that were skipped.
func (r *Result) Warnings() []Warning { return append([]Warning(nil), r.warnings...) }

// TotalSize sums TotalSize over all pairs.
func (r *Result) TotalSize() int64 {
	var n int64
	for _, p := range r.pairs {
		n += p.TotalSize()
	}
	return n
}

// Orphans returns the total number of orphan files and folders.
func (r *Result) Orphans() int { return len(r.orphanHTML) + len(r.orphanFolders) }

// AccessError reports that the scan root is missing, not a directory, or
// unreadable. It is fatal to a run.
type AccessError struct {
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("cannot scan %s: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }
