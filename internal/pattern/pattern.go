// Package pattern recognizes the resource folders browsers create next to a
// page saved with "Save As".
//
// Each convention derives the folder name from the page's base name by
// appending a fixed suffix. The conventions form a closed, ordered list;
// matching tries them in that order and the first folder that exists wins.
package pattern

import (
	"path/filepath"
	"strings"
)

// Pattern is one folder naming convention.
type Pattern struct {
	// Name is the stable identifier used in reports ("suffix-files").
	Name string
	// Label describes which browsers produce the convention.
	Label string
	// Suffix is appended to the page base name to form the folder name.
	Suffix string
}

// Folder returns the resource folder name this pattern derives from base.
func (p Pattern) Folder(base string) string { return base + p.Suffix }

// String implements fmt.Stringer.
func (p Pattern) String() string { return p.Name }

var (
	SuffixFiles = Pattern{Name: "suffix-files", Label: "Chrome/Edge (page_files)", Suffix: "_files"}
	SuffixFile  = Pattern{Name: "suffix-file", Label: "Chrome alternative (page_file)", Suffix: "_file"}
	DotFiles    = Pattern{Name: "dot-files", Label: "Internet Explorer (page.files)", Suffix: ".files"}
	CamelFiles  = Pattern{Name: "camel-files", Label: "Generic (pageFiles)", Suffix: "Files"}
)

// All lists the conventions in matching priority order.
var All = []Pattern{SuffixFiles, SuffixFile, DotFiles, CamelFiles}

var htmlExtensions = map[string]bool{
	".htm":   true,
	".html":  true,
	".xhtml": true,
}

// IsHTML reports whether name has a saved-page extension (case-insensitive).
func IsHTML(name string) bool {
	return htmlExtensions[strings.ToLower(filepath.Ext(name))]
}

// Base returns the page base name: the file name without its extension.
func Base(htmlName string) string {
	name := filepath.Base(htmlName)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Match derives each candidate folder name for htmlName in priority order
// and returns the first one for which exists reports true. Names are
// compared case-sensitively. ok is false when htmlName is not an HTML file
// or no candidate exists.
func Match(htmlName string, exists func(folderName string) bool) (folder string, p Pattern, ok bool) {
	if !IsHTML(htmlName) {
		return "", Pattern{}, false
	}
	base := Base(htmlName)
	if base == "" {
		return "", Pattern{}, false
	}
	for _, cand := range All {
		name := cand.Folder(base)
		if exists(name) {
			return name, cand, true
		}
	}
	return "", Pattern{}, false
}

// Candidate reports whether folderName could be a resource folder under any
// convention, i.e. it ends with a known suffix preceded by a non-empty base.
func Candidate(folderName string) bool {
	_, ok := Reverse(folderName)
	return ok
}

// Reverse returns the first convention whose suffix folderName carries.
func Reverse(folderName string) (Pattern, bool) {
	for _, p := range All {
		if len(folderName) > len(p.Suffix) && strings.HasSuffix(folderName, p.Suffix) {
			return p, true
		}
	}
	return Pattern{}, false
}

// ByName looks up a convention by its Name.
func ByName(name string) (Pattern, bool) {
	for _, p := range All {
		if p.Name == name {
			return p, true
		}
	}
	return Pattern{}, false
}
