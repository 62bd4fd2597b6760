package dbupdate

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

const hashChunkSize = 32 * 1024

// DiffResult is the outcome of comparing the local and staged files.
type DiffResult int

const (
	// Indeterminate means the staged file could not be read.
	Indeterminate DiffResult = iota
	Same
	Different
)

func (d DiffResult) String() string {
	switch d {
	case Same:
		return "same"
	case Different:
		return "different"
	default:
		return "indeterminate"
	}
}

// HashFile returns the hex SHA-256 of the file at path, read in fixed chunks.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, hashChunkSize)
	for {
		n, err := f.Read(buf)
		h.Write(buf[:n])
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("hash %s: %w", path, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Diff compares the content of localPath and stagedPath. An unreadable
// staged file is Indeterminate and the returned error says why. An
// unreadable local file counts as Different so the staged copy can replace it.
func Diff(localPath, stagedPath string) (DiffResult, error) {
	stagedHash, err := HashFile(stagedPath)
	if err != nil {
		return Indeterminate, err
	}
	localHash, err := HashFile(localPath)
	if err != nil {
		return Different, nil
	}
	if localHash == stagedHash {
		return Same, nil
	}
	return Different, nil
}
