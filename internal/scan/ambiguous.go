package scan

import (
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Finding is one visually ambiguous character in a source name.
type Finding struct {
	Path string
	Char rune
}

// String renders the finding as "U+2019 RIGHT SINGLE QUOTATION MARK in <path>".
func (f Finding) String() string {
	return fmt.Sprintf("%U %s in %s", f.Char, ambiguousNames[f.Char], f.Path)
}

// ambiguousNames lists characters that look like plain ASCII (or nothing)
// but are not. Archive tools and shells disagree on them, so names carrying
// them tend to break extraction or matching.
var ambiguousNames = map[rune]string{
	'\u2018': "LEFT SINGLE QUOTATION MARK",
	'\u2019': "RIGHT SINGLE QUOTATION MARK",
	'\u201C': "LEFT DOUBLE QUOTATION MARK",
	'\u201D': "RIGHT DOUBLE QUOTATION MARK",
	'\u00A0': "NO-BREAK SPACE",
	'\u200B': "ZERO WIDTH SPACE",
	'\u200C': "ZERO WIDTH NON-JOINER",
	'\u200D': "ZERO WIDTH JOINER",
	'\uFEFF': "ZERO WIDTH NO-BREAK SPACE",
}

var ambiguousTable = func() *unicode.RangeTable {
	rs := make([]rune, 0, len(ambiguousNames))
	for r := range ambiguousNames {
		rs = append(rs, r)
	}
	return rangetable.New(rs...)
}()

// findAmbiguous reports each distinct ambiguous character in name. path
// identifies where name was found.
func findAmbiguous(path, name string) []Finding {
	var out []Finding
	var seen map[rune]bool
	for _, r := range name {
		if !unicode.Is(ambiguousTable, r) || seen[r] {
			continue
		}
		if seen == nil {
			seen = make(map[rune]bool)
		}
		seen[r] = true
		out = append(out, Finding{Path: path, Char: r})
	}
	return out
}
