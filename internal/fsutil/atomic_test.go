package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestWriteFileAtomicCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "file.db")

	require.NoError(t, WriteFileAtomic(path, strings.NewReader("content"), 0600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "content", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestWriteFileAtomicKeepsOriginalOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.db")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0644))

	require.Error(t, WriteFileAtomic(path, failingReader{}, 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "original", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestCopyFileAtomic(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0640))

	require.NoError(t, CopyFileAtomic(src, dst))
	require.True(t, FileExists(dst))
	require.False(t, FileExists(dir))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0640), info.Mode().Perm())

	require.Error(t, CopyFileAtomic(filepath.Join(dir, "missing"), dst))
}
