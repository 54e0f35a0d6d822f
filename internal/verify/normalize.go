package verify

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var quoteReplacer = strings.NewReplacer(
	"\u2018", "'",
	"\u2019", "'",
	"\u201c", `"`,
	"\u201d", `"`,
	`\`, "/",
)

// normalizeKey maps an archive entry name or a source-relative path to a
// comparison key. Filesystems and archivers disagree on Unicode forms and
// on curly versus straight quotes, so both sides go through NFKC and quote
// folding; separators become forward slashes.
func normalizeKey(p string) string {
	p = quoteReplacer.Replace(norm.NFKC.String(p))
	p = strings.TrimPrefix(p, "./")
	return strings.TrimPrefix(p, "/")
}
