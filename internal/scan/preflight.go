package scan

import (
	"fmt"
	"unicode/utf8"

	"github.com/backmassage/webarchiver/internal/naming"
)

// PreflightReport lists conditions worth checking before a pair is
// archived. It never blocks anything by itself; the caller applies policy.
type PreflightReport struct {
	ArchivePath       string
	ArchivePathLength int
	LongestPath       int
	Limit             int
	Ambiguous         []Finding
}

// LongPath reports whether the archive path or any source path exceeds the
// limit.
func (r PreflightReport) LongPath() bool {
	return r.ArchivePathLength > r.Limit || r.LongestPath > r.Limit
}

// HasAmbiguous reports whether any source name contains an ambiguous character.
func (r PreflightReport) HasAmbiguous() bool { return len(r.Ambiguous) > 0 }

// Clean reports whether nothing was found.
func (r PreflightReport) Clean() bool { return !r.LongPath() && !r.HasAmbiguous() }

// Issues renders the findings as short human-readable lines.
func (r PreflightReport) Issues() []string {
	var out []string
	if r.ArchivePathLength > r.Limit {
		out = append(out, fmt.Sprintf("archive path is %d characters (limit %d)", r.ArchivePathLength, r.Limit))
	}
	if r.LongestPath > r.Limit {
		out = append(out, fmt.Sprintf("longest source path is %d characters (limit %d)", r.LongestPath, r.Limit))
	}
	for _, f := range r.Ambiguous {
		out = append(out, f.String())
	}
	return out
}

// Preflight checks pair against a path length limit, using archivePath as
// the archive destination. An empty archivePath uses naming.OutputPath.
func Preflight(pair Pair, archivePath string, limit int) PreflightReport {
	if archivePath == "" {
		archivePath = naming.OutputPath(pair.HTMLPath)
	}
	return PreflightReport{
		ArchivePath:       archivePath,
		ArchivePathLength: utf8.RuneCountInString(archivePath),
		LongestPath:       pair.LongestPath,
		Limit:             limit,
		Ambiguous:         append([]Finding(nil), pair.Ambiguous...),
	}
}
