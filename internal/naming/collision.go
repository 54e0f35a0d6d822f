package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// CollisionResolver hands out archive paths for one run. Two pages whose
// names sanitize to the same archive (say "Report.html" and "report.htm")
// must not overwrite each other's archive, so each path belongs to the
// first HTML file that asks for it and later pages get a numbered variant
// such as "report-dup1_web_archive.7z". Safe for concurrent use.
type CollisionResolver struct {
	mu     sync.Mutex
	claims map[string]string // archive path -> HTML file holding it
}

// NewCollisionResolver returns an empty resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{
		claims: make(map[string]string),
	}
}

// Resolve claims an archive path for html, preferring want. Asking again
// for the same html returns the same path.
func (cr *CollisionResolver) Resolve(html, want string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if cr.tryClaim(want, html) {
		return want
	}

	dir := filepath.Dir(want)
	stem, suffix := splitSuffix(filepath.Base(want))
	for n := 1; ; n++ {
		alt := filepath.Join(dir, fmt.Sprintf("%s-dup%d%s", stem, n, suffix))
		if cr.tryClaim(alt, html) {
			return alt
		}
	}
}

// tryClaim records html as the holder of path unless another file holds it.
func (cr *CollisionResolver) tryClaim(path, html string) bool {
	if holder, ok := cr.claims[path]; ok && holder != html {
		return false
	}
	cr.claims[path] = html
	return true
}

// splitSuffix cuts the "_web_archive.7z" suffix off base. Names without it
// are split at their extension.
func splitSuffix(base string) (stem, suffix string) {
	if s, ok := strings.CutSuffix(base, ArchiveSuffix); ok {
		return s, ArchiveSuffix
	}
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext), ext
}
