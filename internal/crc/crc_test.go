package crc

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_KnownValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "check.txt")
	require.NoError(t, os.WriteFile(path, []byte("123456789"), 0o644))

	sum, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xCBF43926), sum, "standard CRC-32 check value")
}

func TestFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	sum, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), sum)
}

func TestFile_LargerThanBuffer(t *testing.T) {
	data := bytes.Repeat([]byte("webarchiver"), BufferSize/5)
	path := filepath.Join(t.TempDir(), "big.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	sum, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, Bytes(data), sum)
}

func TestFile_Missing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "missing"))

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestFile_SingleByteChangeDiffers(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(a, []byte("hello world"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("hello World"), 0o644))

	sa, err := File(a)
	require.NoError(t, err)
	sb, err := File(b)
	require.NoError(t, err)
	assert.NotEqual(t, sa, sb)
}

func TestTree(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "img", "icons"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img", "icons", "a.svg"), []byte("<svg/>"), 0o644))

	files, err := Files(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"img/icons/a.svg", "style.css"}, files)

	sums, err := Tree(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]uint32{
		"style.css":       Bytes([]byte("body{}")),
		"img/icons/a.svg": Bytes([]byte("<svg/>")),
	}, sums)
}

func TestFiles_MissingDir(t *testing.T) {
	_, err := Files(filepath.Join(t.TempDir(), "gone"))

	var ioErr *IOError
	assert.True(t, errors.As(err, &ioErr))
}
