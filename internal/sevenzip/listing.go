package sevenzip

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoListing is returned when a technical listing has no entries section.
var ErrNoListing = errors.New("7z listing has no entries section")

const listingSeparator = "----------"

// Entry is one item of a technical (-slt) listing.
type Entry struct {
	Path       string
	Folder     bool
	Size       int64
	CRC        uint32
	HasCRC     bool
	Attributes string
	Modified   string
}

// ParseListing parses `7z l -slt` output. Entries follow the
// "----------" separator as blocks of "Key = Value" lines separated by
// blank lines; everything before the separator describes the archive
// itself and is skipped. Exported for testing without a real 7z binary.
func ParseListing(data []byte) ([]Entry, error) {
	return parseListing(bytes.NewReader(data))
}

func parseListing(r io.Reader) ([]Entry, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var (
		entries []Entry
		cur     Entry
		inBody  bool
	)
	flush := func() {
		if cur.Path != "" {
			entries = append(entries, cur)
		}
		cur = Entry{}
	}

	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if !inBody {
			if strings.TrimSpace(line) == listingSeparator {
				inBody = true
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		key, value, ok := strings.Cut(line, " =")
		if !ok {
			continue
		}
		value = strings.TrimPrefix(value, " ")
		if err := cur.set(strings.TrimSpace(key), value); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read 7z listing: %w", err)
	}
	if !inBody {
		return nil, ErrNoListing
	}
	flush()
	return entries, nil
}

func (e *Entry) set(key, value string) error {
	switch key {
	case "Path":
		e.Path = value
	case "Folder":
		e.Folder = strings.TrimSpace(value) == "+"
	case "Size":
		if v := strings.TrimSpace(value); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("7z listing: bad size %q for %s", v, e.Path)
			}
			e.Size = n
		}
	case "CRC":
		if v := strings.TrimSpace(value); v != "" {
			n, err := strconv.ParseUint(v, 16, 32)
			if err != nil {
				return fmt.Errorf("7z listing: bad CRC %q for %s", v, e.Path)
			}
			e.CRC = uint32(n)
			e.HasCRC = true
		}
	case "Attributes":
		e.Attributes = strings.TrimSpace(value)
		if strings.HasPrefix(e.Attributes, "D") {
			e.Folder = true
		}
	case "Modified":
		e.Modified = strings.TrimSpace(value)
	}
	return nil
}

// Files returns the non-folder entries.
func Files(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if !e.Folder {
			out = append(out, e)
		}
	}
	return out
}
