// Package fsutil reads source files with enough state to notice concurrent
// edits, and writes fixed sources back atomically with optional backups.
package fsutil

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// Sentinel errors, matched with errors.Is.
var (
	ErrNilSnapshot      = errors.New("nil snapshot")
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
)

// Snapshot records a source file as it was read, so a later write can be
// refused if someone else edited the file in between.
type Snapshot struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [sha256.Size]byte
}

// ReadFile returns the content of path and a snapshot of it.
func ReadFile(ctx context.Context, path string) ([]byte, *Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	return content, &Snapshot{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// Changed reports whether the file no longer matches the snapshot. A
// deleted file counts as changed. Mod time and size are always compared;
// with strict set, an unchanged stat is confirmed by re-hashing the content,
// which catches same-size edits within the file system's time resolution.
func (s *Snapshot) Changed(ctx context.Context, strict bool) (bool, error) {
	if s == nil {
		return false, ErrNilSnapshot
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check %s: %w", s.Path, err)
	}

	stat, err := os.Stat(s.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	case err != nil:
		return false, fmt.Errorf("stat %s: %w", s.Path, err)
	}
	if !stat.ModTime().Equal(s.ModTime) || stat.Size() != s.Size {
		return true, nil
	}
	if !strict {
		return false, nil
	}

	content, err := os.ReadFile(s.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", s.Path, err)
	}
	sum := sha256.Sum256(content)
	return !bytes.Equal(sum[:], s.Hash[:]), nil
}

// ContentHash returns the hex SHA-256 digest of content. The result cache
// and the parse cache key entries by it.
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
