// Package cache stores lint results on disk so unchanged files are not
// parsed again. Entries are msgpack encoded and keyed by a fingerprint of
// the active rule set, the file path and the file content.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/gotslint/internal/logging"
	"github.com/yaklabco/gotslint/pkg/fsutil"
	"github.com/yaklabco/gotslint/pkg/lint"
)

// schemaVersion changes whenever the entry layout does.
const schemaVersion uint16 = 1

// entry is the on-disk record for one file.
type entry struct {
	Schema      uint16
	Fingerprint string
	Path        string
	ContentHash string
	Diagnostics []lint.Diagnostic
}

// Stats counts cache lookups.
type Stats struct {
	Hits   int64
	Misses int64
	Writes int64
}

// DiskCache is a lint.ResultCache backed by one file per entry.
// It is safe for concurrent use.
type DiskCache struct {
	mu          sync.RWMutex
	dir         string
	fingerprint string
	logger      *log.Logger

	hits   atomic.Int64
	misses atomic.Int64
	writes atomic.Int64
}

var _ lint.ResultCache = (*DiskCache)(nil)

// DefaultDir returns $XDG_CACHE_HOME/gotslint, or ~/.cache/gotslint.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "gotslint"), nil
}

// Open returns a cache rooted at dir, creating it if needed. Empty dir
// means DefaultDir. Entries written under a different fingerprint are
// never returned.
func Open(dir, fingerprint string) (*DiskCache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &DiskCache{
		dir:         dir,
		fingerprint: fingerprint,
		logger:      logging.Default(),
	}, nil
}

// SetLogger replaces the logger used for cache I/O failures.
func (c *DiskCache) SetLogger(logger *log.Logger) {
	c.logger = logger
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string {
	return c.dir
}

// Stats returns the lookup counters.
func (c *DiskCache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Writes: c.writes.Load()}
}

func (c *DiskCache) key(path string, contentHash string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	sum := sha256.Sum256([]byte(c.fingerprint + "\x00" + abs + "\x00" + contentHash))
	return hex.EncodeToString(sum[:])
}

func (c *DiskCache) pathFor(key string) string {
	return filepath.Join(c.dir, "results", key[:2], key+".mp")
}

// Get returns the cached diagnostics for path with exactly this content.
// I/O and decoding failures count as misses.
func (c *DiskCache) Get(path string, text []byte) ([]lint.Diagnostic, bool) {
	if c == nil {
		return nil, false
	}
	contentHash := fsutil.ContentHash(text)
	file := c.pathFor(c.key(path, contentHash))

	c.mu.RLock()
	data, err := os.ReadFile(file)
	c.mu.RUnlock()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Debug("cache read failed", logging.FieldPath, path, logging.FieldError, err)
		}
		c.misses.Add(1)
		return nil, false
	}

	var e entry
	if err := msgpack.Unmarshal(data, &e); err != nil {
		c.logger.Debug("cache entry corrupt", logging.FieldPath, path, logging.FieldError, err)
		c.misses.Add(1)
		return nil, false
	}
	if e.Schema != schemaVersion || e.Fingerprint != c.fingerprint || e.ContentHash != contentHash {
		c.misses.Add(1)
		return nil, false
	}

	for i := range e.Diagnostics {
		e.Diagnostics[i].FilePath = path
	}
	c.hits.Add(1)
	return e.Diagnostics, true
}

// Put stores diagnostics for path and content. Results containing
// internal diagnostics are not cached so failing rules run again.
func (c *DiskCache) Put(path string, text []byte, diags []lint.Diagnostic) {
	if c == nil {
		return
	}
	for i := range diags {
		if diags[i].Internal {
			return
		}
	}

	contentHash := fsutil.ContentHash(text)
	data, err := msgpack.Marshal(&entry{
		Schema:      schemaVersion,
		Fingerprint: c.fingerprint,
		Path:        path,
		ContentHash: contentHash,
		Diagnostics: diags,
	})
	if err != nil {
		c.logger.Debug("cache encode failed", logging.FieldPath, path, logging.FieldError, err)
		return
	}

	if err := c.write(c.pathFor(c.key(path, contentHash)), data); err != nil {
		c.logger.Debug("cache write failed", logging.FieldPath, path, logging.FieldError, err)
		return
	}
	c.writes.Add(1)
}

func (c *DiskCache) write(file string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(file), "tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, file); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// Clear removes every entry.
func (c *DiskCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.RemoveAll(filepath.Join(c.dir, "results")); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}
