package dbupdate

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestHashFileMatchesSHA256(t *testing.T) {
	// Spans several read chunks
	content := strings.Repeat("appshelf", 10000)
	path := filepath.Join(t.TempDir(), "db")
	writeFile(t, path, content)

	sum := sha256.Sum256([]byte(content))
	got, err := HashFile(path)
	require.NoError(t, err)
	require.Equal(t, hex.EncodeToString(sum[:]), got)
}

func TestHashFileDirectory(t *testing.T) {
	_, err := HashFile(t.TempDir())
	require.Error(t, err)
}

func TestDiff(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "app.db")
	staged := filepath.Join(dir, "server_app.db")

	writeFile(t, local, "A")
	writeFile(t, staged, "A")
	res, err := Diff(local, staged)
	require.NoError(t, err)
	require.Equal(t, Same, res)

	writeFile(t, staged, "B")
	res, err = Diff(local, staged)
	require.NoError(t, err)
	require.Equal(t, Different, res)

	require.NoError(t, os.Remove(local))
	res, err = Diff(local, staged)
	require.NoError(t, err)
	require.Equal(t, Different, res)

	require.NoError(t, os.Remove(staged))
	res, err = Diff(local, staged)
	require.Error(t, err)
	require.Equal(t, Indeterminate, res)
}
