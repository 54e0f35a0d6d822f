package display

import (
	"fmt"
	"io"

	"github.com/backmassage/webarchiver/internal/term"
)

const banner = `           _                       _     _
 __      _| |__   __ _ _ __ ___| |__ (_)_   _____ _ __
 \ \ /\ / / '_ \ / _` + "`" + ` | '__/ __| '_ \| \ \ / / _ \ '__|
  \ V  V /| |_) | (_| | | | (__| | | | |\ V /  __/ |
   \_/\_/ |_.__/ \__,_|_|  \___|_| |_|_| \_/ \___|_|
`

// PrintBanner writes the ASCII art banner to w in magenta when colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprintln(w, term.Magenta(banner))
}
