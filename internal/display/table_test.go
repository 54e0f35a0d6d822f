package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/webarchiver/internal/pattern"
	"github.com/backmassage/webarchiver/internal/scan"
)

func TestPairsTable(t *testing.T) {
	var buf bytes.Buffer
	PairsTable(&buf, []scan.Pair{{
		HTMLPath:    "/saved/report.html",
		FolderPath:  "/saved/report_files",
		Pattern:     pattern.SuffixFiles,
		HTMLSize:    1024,
		FolderFiles: 3,
		FolderSize:  10240,
		Title:       "Quarterly Report",
	}})

	out := buf.String()
	assert.Contains(t, out, "report.html")
	assert.Contains(t, out, "report_files")
	assert.Contains(t, out, pattern.SuffixFiles.Label)
	assert.Contains(t, out, "11.00 KB")
	assert.Contains(t, out, "Quarterly Report")
}

func TestPairsTable_TrimsLongNames(t *testing.T) {
	long := strings.Repeat("a", 120) + ".html"
	var buf bytes.Buffer
	PairsTable(&buf, []scan.Pair{{HTMLPath: "/saved/" + long, FolderPath: "/saved/x_files"}})

	assert.NotContains(t, buf.String(), long)
}

func TestOrphansTable(t *testing.T) {
	var buf bytes.Buffer
	OrphansTable(&buf, nil)
	assert.Empty(t, buf.String())

	OrphansTable(&buf, []scan.Orphan{
		{Path: "/saved/page.html", Kind: scan.OrphanHTML, Size: 10, Reason: "no matching resource folder found"},
	})
	assert.Contains(t, buf.String(), "/saved/page.html")
	assert.Contains(t, buf.String(), "no matching resource folder found")
}

func TestSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	SummaryTable(&buf, "Run summary", []Row{{"Succeeded", "3"}, {"Failed", "0"}})

	out := buf.String()
	assert.Contains(t, out, "Run summary")
	assert.Contains(t, out, "Succeeded")
	assert.Contains(t, out, "3")
}
