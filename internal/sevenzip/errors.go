package sevenzip

import (
	"fmt"
	"regexp"
	"strings"
)

// 7z exit codes.
const (
	ExitOK          = 0
	ExitWarning     = 1
	ExitFatal       = 2
	ExitCommandLine = 7
	ExitMemory      = 8
	ExitUserStop    = 255
)

// ExitError reports a 7z invocation that exited non-zero.
type ExitError struct {
	Op     string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("7z %s exited %d (%s)", e.Op, e.Code, ExitMeaning(e.Code))
	if cause := Classify(e.Stderr); cause != "" {
		msg += ": " + cause
	} else if line := lastLine(e.Stderr); line != "" {
		msg += ": " + line
	}
	return msg
}

// ExitMeaning describes a 7z exit code.
func ExitMeaning(code int) string {
	switch code {
	case ExitOK:
		return "no error"
	case ExitWarning:
		return "warning, some files were locked or unreadable"
	case ExitFatal:
		return "fatal error"
	case ExitCommandLine:
		return "command line error"
	case ExitMemory:
		return "not enough memory"
	case ExitUserStop:
		return "stopped by user"
	default:
		return "unknown exit code"
	}
}

// Pre-compiled regexes for classifying 7z stderr. Checked in order by
// Classify; the first match wins.
var (
	reDiskFull     = regexp.MustCompile(`(?i)no space left on device|there is not enough space on the disk`)
	reNotArchive   = regexp.MustCompile(`(?i)can ?not open (the )?file as( an)? archive|is not archive`)
	reDataError    = regexp.MustCompile(`(?i)CRC Failed|Data Error|Headers Error|Unexpected end of (archive|data)`)
	reCannotOpen   = regexp.MustCompile(`(?i)can ?not open|cannot find|the system cannot find`)
	reAccessDenied = regexp.MustCompile(`(?i)access is denied|permission denied`)
)

var causes = []struct {
	re    *regexp.Regexp
	cause string
}{
	{reDiskFull, "disk full"},
	{reNotArchive, "not a readable archive"},
	{reDataError, "archive data is corrupt"},
	{reAccessDenied, "access denied"},
	{reCannotOpen, "input could not be opened"},
}

// Classify maps 7z stderr to a short cause, or "" if nothing matches.
func Classify(stderr string) string {
	for _, c := range causes {
		if c.re.MatchString(stderr) {
			return c.cause
		}
	}
	return ""
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
