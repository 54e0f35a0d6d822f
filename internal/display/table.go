package display

import (
	"io"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/backmassage/webarchiver/internal/scan"
)

// nameWidth caps the file-name columns; longer names are trimmed.
const nameWidth = 48

// Row is one label/value line of a summary table.
type Row struct {
	Label string
	Value string
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if title != "" {
		t.SetTitle(title)
	}
	return t
}

// PairsTable renders one line per pair: page, resource folder, pattern,
// file count, size and title.
func PairsTable(w io.Writer, pairs []scan.Pair) {
	t := newTable(w, "Web archive pairs")
	t.AppendHeader(table.Row{"#", "HTML", "Resource folder", "Pattern", "Files", "Size", "Title"})
	var files int
	var size int64
	for i, p := range pairs {
		t.AppendRow(table.Row{
			i + 1,
			filepath.Base(p.HTMLPath),
			filepath.Base(p.FolderPath),
			p.Pattern.Label,
			p.FileCount(),
			FormatBytes(p.TotalSize()),
			p.Title,
		})
		files += p.FileCount()
		size += p.TotalSize()
	}
	t.AppendFooter(table.Row{"", "", "", "Total", files, FormatBytes(size), ""})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: nameWidth, WidthMaxEnforcer: text.Trim},
		{Number: 3, WidthMax: nameWidth, WidthMaxEnforcer: text.Trim},
		{Number: 5, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 6, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 7, WidthMax: nameWidth, WidthMaxEnforcer: text.Trim},
	})
	t.Render()
}

// OrphansTable renders orphan HTML files and folders with the reason they
// were not paired. Nothing is written when orphans is empty.
func OrphansTable(w io.Writer, orphans []scan.Orphan) {
	if len(orphans) == 0 {
		return
	}
	t := newTable(w, "Orphans")
	t.AppendHeader(table.Row{"Kind", "Path", "Size", "Reason"})
	for _, o := range orphans {
		t.AppendRow(table.Row{string(o.Kind), o.Path, FormatBytes(o.Size), o.Reason})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}

// StatsTable renders the scan counters.
func StatsTable(w io.Writer, res *scan.Result) {
	depth := "unlimited"
	if res.MaxDepth != scan.Unlimited {
		depth = strconv.Itoa(res.MaxDepth)
	}
	SummaryTable(w, "Scan statistics", []Row{
		{"Root", res.Root},
		{"Max depth", depth},
		{"Directories scanned", strconv.Itoa(res.DirectoriesScanned)},
		{"Files scanned", strconv.Itoa(res.FilesScanned)},
		{"Pairs", strconv.Itoa(len(res.Pairs()))},
		{"Orphan HTML files", strconv.Itoa(len(res.OrphanHTML()))},
		{"Orphan folders", strconv.Itoa(len(res.OrphanFolders()))},
		{"Warnings", strconv.Itoa(len(res.Warnings()))},
		{"Total pair size", FormatBytes(res.TotalSize())},
	})
}

// SummaryTable renders label/value rows under title.
func SummaryTable(w io.Writer, title string, rows []Row) {
	t := newTable(w, title)
	for _, r := range rows {
		t.AppendRow(table.Row{r.Label, r.Value})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	t.Render()
}
