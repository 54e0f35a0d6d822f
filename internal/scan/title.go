package scan

import (
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxTitleRead bounds how much of a page is parsed to find its title.
const maxTitleRead = 1 << 20

// readTitle returns the whitespace-collapsed <title> of an HTML file, or ""
// if the file cannot be read or has no title.
func readTitle(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(f, maxTitleRead))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}
