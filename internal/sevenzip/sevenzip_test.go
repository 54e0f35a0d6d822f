package sevenzip

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingFixture = `
7-Zip [64] 16.02 : Copyright (c) 1999-2016 Igor Pavlov : 2016-05-21
p7zip Version 16.02 (locale=en_US.UTF-8,Utf16=on,HugeFiles=on,64 bits,8 CPUs)

Scanning the drive for archives:
1 file, 1873 bytes (2 KiB)

Listing archive: /saved/report_web_archive.7z

--
Path = /saved/report_web_archive.7z
Type = 7z
Physical Size = 1873
Headers Size = 268
Method = LZMA2:24
Solid = +
Blocks = 1

----------
Path = report_files
Size = 0
Packed Size = 0
Modified = 2024-05-01 10:00:00
Attributes = D_ drwxr-xr-x
CRC = 
Encrypted = -
Method = 
Block = 

Path = report.html
Size = 120
Packed Size = 1605
Modified = 2024-05-01 10:00:00
Attributes = A_ -rw-r--r--
CRC = 3610A686
Encrypted = -
Method = LZMA2:24
Block = 0

Path = report_files/style.css
Size = 4096
Packed Size = 
Modified = 2024-05-01 10:00:00
Attributes = A_ -rw-r--r--
CRC = 0000BEEF
Encrypted = -
Method = LZMA2:24
Block = 0

Path = report_files/empty.txt
Size = 0
Packed Size = 0
Modified = 2024-05-01 10:00:00
Attributes = A_ -rw-r--r--
CRC = 
Encrypted = -
Method = 
Block = 

`

func TestArgBuilders(t *testing.T) {
	assert.Equal(t,
		[]string{"a", "-t7z", "-mx=9", "-bd", "-y", "-spd", "--", "/s/a.7z", "/s/a.html", "/s/a_files"},
		AddArgs("/s/a.7z", 9, "/s/a.html", "/s/a_files"))
	assert.Equal(t, []string{"t", "-bd", "-spd", "--", "/s/a.7z"}, IntegrityArgs("/s/a.7z"))
	assert.Equal(t, []string{"l", "-slt", "-spd", "--", "/s/a.7z"}, ListArgs("/s/a.7z"))
}

func TestParseListing(t *testing.T) {
	entries, err := ParseListing([]byte(listingFixture))
	require.NoError(t, err)
	require.Len(t, entries, 4, "archive header block is skipped")

	assert.Equal(t, "report_files", entries[0].Path)
	assert.True(t, entries[0].Folder)
	assert.False(t, entries[0].HasCRC)

	assert.Equal(t, Entry{
		Path:       "report.html",
		Size:       120,
		CRC:        0x3610A686,
		HasCRC:     true,
		Attributes: "A_ -rw-r--r--",
		Modified:   "2024-05-01 10:00:00",
	}, entries[1])

	assert.Equal(t, uint32(0xBEEF), entries[2].CRC)

	assert.Equal(t, "report_files/empty.txt", entries[3].Path)
	assert.False(t, entries[3].HasCRC)
	assert.Equal(t, int64(0), entries[3].Size)

	files := Files(entries)
	assert.Len(t, files, 3)
}

func TestParseListing_FolderFlagAndCRLF(t *testing.T) {
	data := "----------\r\nPath = a\r\nFolder = +\r\n\r\nPath = a\\b.txt\r\nFolder = -\r\nCRC = 00000001\r\n"
	entries, err := ParseListing([]byte(data))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Folder)
	assert.Equal(t, `a\b.txt`, entries[1].Path)
	assert.False(t, entries[1].Folder)
	assert.Equal(t, uint32(1), entries[1].CRC)
}

func TestParseListing_PathWithEquals(t *testing.T) {
	entries, err := ParseListing([]byte("----------\nPath = a = b.html\nCRC = 0A\n"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a = b.html", entries[0].Path)
}

func TestParseListing_NoSeparator(t *testing.T) {
	_, err := ParseListing([]byte("Path = x\n"))
	assert.ErrorIs(t, err, ErrNoListing)
}

func TestParseListing_BadCRC(t *testing.T) {
	_, err := ParseListing([]byte("----------\nPath = x\nCRC = ZZZZ\n"))
	assert.Error(t, err)
}

func TestExitError(t *testing.T) {
	err := &ExitError{Op: "test", Code: ExitFatal, Stderr: "ERROR: CRC Failed : report.html\n"}
	assert.Contains(t, err.Error(), "exited 2 (fatal error)")
	assert.Contains(t, err.Error(), "archive data is corrupt")

	err = &ExitError{Op: "add", Code: ExitCommandLine, Stderr: "something odd\nlast words\n"}
	assert.Contains(t, err.Error(), "command line error")
	assert.Contains(t, err.Error(), "last words")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		stderr string
		want   string
	}{
		{"ERROR: No space left on device", "disk full"},
		{"ERROR: x.7z\nCan not open the file as archive", "not a readable archive"},
		{"Headers Error", "archive data is corrupt"},
		{"WARNING: Permission denied : secret.css", "access denied"},
		{"WARNING: cannot find the file specified", "input could not be opened"},
		{"all fine", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.stderr), tt.stderr)
	}
}

func TestExitMeaning(t *testing.T) {
	assert.Equal(t, "not enough memory", ExitMeaning(ExitMemory))
	assert.Equal(t, "stopped by user", ExitMeaning(ExitUserStop))
	assert.Equal(t, "unknown exit code", ExitMeaning(42))
}

// fakeSevenZip writes a shell script standing in for 7z.
func fakeSevenZip(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "7z")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestClient_List(t *testing.T) {
	fixture := filepath.Join(t.TempDir(), "listing.txt")
	require.NoError(t, os.WriteFile(fixture, []byte(listingFixture), 0o644))
	bin := fakeSevenZip(t, "cat '"+fixture+"'\n")

	entries, err := NewClient(bin, nil).List(context.Background(), "/saved/report_web_archive.7z")
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestClient_TestFailure(t *testing.T) {
	bin := fakeSevenZip(t, "echo 'ERROR: Data Error : report.html' >&2\nexit 2\n")

	err := NewClient(bin, nil).Test(context.Background(), "/saved/a.7z")

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitFatal, exitErr.Code)
	assert.Equal(t, "test", exitErr.Op)
	assert.Contains(t, exitErr.Stderr, "Data Error")
}

func TestClient_AddPassesArgs(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	bin := fakeSevenZip(t, "echo \"$@\" > '"+argsFile+"'\n")

	err := NewClient(bin, nil).Add(context.Background(), "/s/a.7z", 3, "/s/a.html", "/s/a_files")
	require.NoError(t, err)

	got, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "a -t7z -mx=3 -bd -y -spd -- /s/a.7z /s/a.html /s/a_files", strings.TrimSpace(string(got)))
}

func TestClient_AddKeepsOddNamesAsPaths(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	bin := fakeSevenZip(t, "for a in \"$@\"; do printf '%s\\n' \"$a\"; done > '"+argsFile+"'\n")

	err := NewClient(bin, nil).Add(context.Background(), ".x.partial", 5, "-page.html", "what?.html", "-page_files", "@list.html")
	require.NoError(t, err)

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	got := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, got, 12)
	sep := 0
	for i, a := range got {
		if a == "--" {
			sep = i
		}
	}
	assert.Equal(t, []string{".x.partial", "-page.html", "what?.html", "-page_files", "@list.html"}, got[sep+1:],
		"every path follows the end-of-switches marker")
	assert.Contains(t, got[:sep], "-spd")
}

func TestClient_Version(t *testing.T) {
	bin := fakeSevenZip(t, "echo\necho '7-Zip [64] 16.02 : Copyright (c) 1999-2016 Igor Pavlov'\necho usage\n")

	v, err := NewClient(bin, nil).Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "7-Zip [64] 16.02 : Copyright (c) 1999-2016 Igor Pavlov", v)
}

func TestClient_NotFound(t *testing.T) {
	err := NewClient(filepath.Join(t.TempDir(), "no-such-7z"), nil).Test(context.Background(), "x.7z")
	assert.ErrorIs(t, err, ErrNotFound)
}
