// Package report serializes a scan, and optionally the outcome of a run, as
// a JSON document. The report is written to a temporary sibling and renamed
// into place so readers never see a half-written file.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/webarchiver/internal/scan"
	"github.com/backmassage/webarchiver/internal/verify"
)

// Mode values recorded in Report.Mode.
const (
	ModeAnalyze = "analyze"
	ModeDryRun  = "dry-run"
	ModeRun     = "run"
)

// Status values recorded in Outcome.Status.
const (
	StatusArchived = "archived"
	StatusFailed   = "failed"
	StatusSkipped  = "skipped"
	StatusPreview  = "preview"
)

// Report is the top-level JSON document.
type Report struct {
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Mode        string         `json:"mode"`
	Root        string         `json:"root"`
	MaxDepth    int            `json:"max_depth"`
	Stats       ScanStats      `json:"stats"`
	Pairs       []PairEntry    `json:"pairs"`
	Orphans     []OrphanEntry  `json:"orphans"`
	Warnings    []WarningEntry `json:"warnings,omitempty"`
	Summary     *Summary       `json:"summary,omitempty"`

	index map[string]int
}

// ScanStats mirrors the scan counters.
type ScanStats struct {
	DirectoriesScanned int   `json:"directories_scanned"`
	FilesScanned       int   `json:"files_scanned"`
	Pairs              int   `json:"pairs"`
	OrphanHTML         int   `json:"orphan_html"`
	OrphanFolders      int   `json:"orphan_folders"`
	TotalSize          int64 `json:"total_size"`
}

// PairEntry describes one pair and, after a run, what happened to it.
type PairEntry struct {
	HTML        string   `json:"html"`
	Folder      string   `json:"folder"`
	Pattern     string   `json:"pattern"`
	Title       string   `json:"title,omitempty"`
	HTMLSize    int64    `json:"html_size"`
	FolderFiles int      `json:"folder_files"`
	FolderSize  int64    `json:"folder_size"`
	TotalSize   int64    `json:"total_size"`
	LongestPath int      `json:"longest_path"`
	Ambiguous   []string `json:"ambiguous,omitempty"`
	Outcome     *Outcome `json:"outcome,omitempty"`
}

// OrphanEntry is an unpaired HTML file or resource folder.
type OrphanEntry struct {
	Kind   string `json:"kind"`
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	Reason string `json:"reason"`
}

// WarningEntry is a path the scanner skipped.
type WarningEntry struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Outcome is the per-pair result of a run.
type Outcome struct {
	Status         string        `json:"status"`
	ArchivePath    string        `json:"archive_path,omitempty"`
	CompressedSize int64         `json:"compressed_size,omitempty"`
	Verification   *Verification `json:"verification,omitempty"`
	Deleted        bool          `json:"deleted"`
	Warnings       []string      `json:"warnings,omitempty"`
	Error          string        `json:"error,omitempty"`
}

// Verification is the JSON form of a verify.Result.
type Verification struct {
	Passed        bool     `json:"passed"`
	IntegrityOK   bool     `json:"integrity_ok"`
	ExpectedFiles int      `json:"expected_files"`
	ArchivedFiles int      `json:"archived_files"`
	CRCSkipped    bool     `json:"crc_skipped"`
	CRCChecked    int      `json:"crc_checked"`
	Mismatches    []string `json:"mismatches,omitempty"`
	ListError     string   `json:"list_error,omitempty"`
}

// Summary holds the run counters.
type Summary struct {
	Succeeded     int   `json:"succeeded"`
	Failed        int   `json:"failed"`
	Skipped       int   `json:"skipped"`
	Previewed     int   `json:"previewed"`
	Deleted       int   `json:"deleted"`
	DeleteFailed  int   `json:"delete_failed"`
	OriginalBytes int64 `json:"original_bytes"`
	ArchiveBytes  int64 `json:"archive_bytes"`
}

// New builds a report from a scan result.
func New(runID, mode string, res *scan.Result) *Report {
	pairs := res.Pairs()
	r := &Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Mode:        mode,
		Root:        res.Root,
		MaxDepth:    res.MaxDepth,
		Stats: ScanStats{
			DirectoriesScanned: res.DirectoriesScanned,
			FilesScanned:       res.FilesScanned,
			Pairs:              len(pairs),
			OrphanHTML:         len(res.OrphanHTML()),
			OrphanFolders:      len(res.OrphanFolders()),
			TotalSize:          res.TotalSize(),
		},
		Pairs:   make([]PairEntry, 0, len(pairs)),
		Orphans: []OrphanEntry{},
		index:   make(map[string]int, len(pairs)),
	}

	for _, p := range pairs {
		e := PairEntry{
			HTML:        p.HTMLPath,
			Folder:      p.FolderPath,
			Pattern:     p.Pattern.Name,
			Title:       p.Title,
			HTMLSize:    p.HTMLSize,
			FolderFiles: p.FolderFiles,
			FolderSize:  p.FolderSize,
			TotalSize:   p.TotalSize(),
			LongestPath: p.LongestPath,
		}
		for _, f := range p.Ambiguous {
			e.Ambiguous = append(e.Ambiguous, f.String())
		}
		r.index[p.HTMLPath] = len(r.Pairs)
		r.Pairs = append(r.Pairs, e)
	}
	for _, o := range append(res.OrphanHTML(), res.OrphanFolders()...) {
		r.Orphans = append(r.Orphans, OrphanEntry{
			Kind:   string(o.Kind),
			Path:   o.Path,
			Size:   o.Size,
			Reason: o.Reason,
		})
	}
	for _, w := range res.Warnings() {
		r.Warnings = append(r.Warnings, WarningEntry{Path: w.Path, Reason: w.Reason})
	}
	return r
}

// SetOutcome attaches o to the pair whose HTML file is htmlPath. It reports
// false when no such pair is in the report.
func (r *Report) SetOutcome(htmlPath string, o Outcome) bool {
	i, ok := r.index[htmlPath]
	if !ok {
		return false
	}
	r.Pairs[i].Outcome = &o
	return true
}

// VerificationOf converts a verify.Result for the report.
func VerificationOf(v verify.Result) *Verification {
	out := &Verification{
		Passed:        v.Passed(),
		IntegrityOK:   v.IntegrityOK,
		ExpectedFiles: v.ExpectedFiles,
		ArchivedFiles: v.ArchivedFiles,
		CRCSkipped:    v.CRCSkipped,
		CRCChecked:    v.CRCChecked,
		ListError:     v.ListErr,
	}
	for _, m := range v.Mismatches {
		out.Mismatches = append(out.Mismatches, m.String())
	}
	return out
}

// Write encodes the report as indented JSON to path.
func (r *Report) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return writeAtomic(path, append(data, '\n'))
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync report: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod report: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename report: %w", err)
	}
	return nil
}
