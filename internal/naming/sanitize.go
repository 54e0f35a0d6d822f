package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxNameLength caps the sanitized base name in bytes.
	MaxNameLength = 180

	// ArchiveSuffix is appended to every sanitized base name.
	ArchiveSuffix = "_web_archive.7z"

	fallbackName = "page"
)

// Sanitize lower-cases name, folds accented letters to their base letter,
// and replaces every character outside [a-z0-9-_.] with a hyphen. The
// result is truncated to MaxNameLength bytes; an empty result becomes
// "page".
func Sanitize(name string) string {
	folded := stripMarks(name)
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if allowed(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
		if b.Len() >= MaxNameLength {
			break
		}
	}

	out := b.String()
	if len(out) > MaxNameLength {
		out = out[:MaxNameLength]
	}
	if out == "" {
		return fallbackName
	}
	return out
}

// ArchiveName returns the archive file name for a page base name.
func ArchiveName(base string) string {
	return Sanitize(base) + ArchiveSuffix
}

func allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '_', r == '.':
		return true
	}
	return false
}

// stripMarks decomposes s (compatibility form, so ligatures and full-width
// forms also fold) and drops combining marks.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
