package verify

import (
	"fmt"
	"strings"
)

// Mismatch is one original file whose archived copy does not match.
type Mismatch struct {
	Path     string
	Expected uint32
	Actual   uint32
	// Missing is set when the file has no entry in the archive listing.
	Missing bool
	// ReadErr is set when the original could not be read.
	ReadErr string
}

func (m Mismatch) String() string {
	switch {
	case m.ReadErr != "":
		return fmt.Sprintf("%s: unreadable original (%s)", m.Path, m.ReadErr)
	case m.Missing:
		return fmt.Sprintf("%s: missing from archive (expected %08X)", m.Path, m.Expected)
	default:
		return fmt.Sprintf("%s: expected %08X, archive has %08X", m.Path, m.Expected, m.Actual)
	}
}

// Result is the outcome of the three verification checks for one archive.
// It is informational only; acting on it is the caller's decision.
type Result struct {
	ArchivePath string

	IntegrityOK     bool
	IntegrityDetail string

	ExpectedFiles int
	ArchivedFiles int
	// SourceErr is set when the originals could not be enumerated.
	SourceErr string
	// ListErr is set when the archive listing could not be read. Counts
	// and checksums are then unknown.
	ListErr string

	CRCSkipped bool
	CRCChecked int
	Mismatches []Mismatch
	// Incomplete is set when verification stopped before every check ran.
	Incomplete bool
}

// CountOK reports whether the archive holds exactly the expected files.
func (r Result) CountOK() bool { return r.ExpectedFiles == r.ArchivedFiles }

// CRCOK reports whether every checksum matched, or the check was skipped.
func (r Result) CRCOK() bool { return r.CRCSkipped || len(r.Mismatches) == 0 }

// Passed is integrity AND count AND (CRC OK or skipped). An unreadable
// listing, originals that could not be enumerated, or a check cut short
// never pass.
func (r Result) Passed() bool {
	if r.ListErr != "" || r.SourceErr != "" || r.Incomplete {
		return false
	}
	return r.IntegrityOK && r.CountOK() && r.CRCOK()
}

// Failures names each failed check.
func (r Result) Failures() []string {
	var out []string
	if !r.IntegrityOK {
		msg := "integrity test failed"
		if r.IntegrityDetail != "" {
			msg += ": " + r.IntegrityDetail
		}
		out = append(out, msg)
	}
	if r.ListErr != "" {
		out = append(out, "archive listing unreadable: "+r.ListErr)
	}
	if r.SourceErr != "" {
		out = append(out, "originals unreadable: "+r.SourceErr)
	}
	if !r.CountOK() {
		out = append(out, fmt.Sprintf("file count mismatch: expected %d, archive has %d", r.ExpectedFiles, r.ArchivedFiles))
	}
	if !r.CRCOK() {
		out = append(out, fmt.Sprintf("CRC mismatch: %d of %d files differ", len(r.Mismatches), r.CRCChecked))
	}
	if r.Incomplete {
		out = append(out, "verification interrupted")
	}
	return out
}

// Summary renders the result on one line.
func (r Result) Summary() string {
	if r.Passed() {
		crc := fmt.Sprintf("%d CRCs match", r.CRCChecked)
		if r.CRCSkipped {
			crc = "CRC skipped"
		}
		return fmt.Sprintf("integrity ok, %d files, %s", r.ArchivedFiles, crc)
	}
	return strings.Join(r.Failures(), "; ")
}
