package fsutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// BackupMode selects where the pre-fix copy of a file is kept.
type BackupMode string

const (
	// BackupModeSidecar writes <file>.gotslint.bak next to the file.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeXDG writes under StateDir()/backups, keyed by the file's
	// directory, leaving the source tree clean.
	BackupModeXDG BackupMode = "xdg"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to sidecar backups.
const BackupSuffix = ".gotslint.bak"

// BackupConfig controls backups taken before a fixed file is written.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig returns backups disabled, sidecar when enabled.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// Active reports whether Save will write anything.
func (c BackupConfig) Active() bool {
	return c.Enabled && c.Mode != BackupModeNone
}

// Path returns where the backup of file lives, or "" in none mode.
// Unknown modes behave as sidecar.
func (c BackupConfig) Path(file string) string {
	switch c.Mode {
	case BackupModeNone:
		return ""
	case BackupModeXDG:
		return xdgBackupPath(file)
	default:
		return file + BackupSuffix
	}
}

// Save stores original as the backup of file. An existing backup is kept,
// so repeated fix runs preserve the oldest content. It reports whether a
// backup was written.
func (c BackupConfig) Save(ctx context.Context, file string, original []byte, mode os.FileMode) (bool, error) {
	if !c.Active() {
		return false, nil
	}
	target := c.Path(file)

	_, err := os.Lstat(target)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("stat backup: %w", err)
	}

	if c.Mode == BackupModeXDG {
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return false, fmt.Errorf("create backup dir: %w", err)
		}
	}
	if err := WriteAtomic(ctx, target, original, mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// Exists reports whether a backup of file is present.
func (c BackupConfig) Exists(file string) bool {
	target := c.Path(file)
	if target == "" {
		return false
	}
	_, err := os.Stat(target)
	return err == nil
}

// StateDir is $XDG_STATE_HOME/gotslint, defaulting to ~/.local/state.
func StateDir() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "gotslint")
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "gotslint")
}

// xdgBackupPath names the backup directory after a digest of the file's
// absolute directory, so index.ts in two trees does not collide.
func xdgBackupPath(file string) string {
	abs, err := filepath.Abs(file)
	if err != nil {
		abs = file
	}
	sum := sha256.Sum256([]byte(filepath.Dir(abs)))
	return filepath.Join(StateDir(), "backups", hex.EncodeToString(sum[:8]), filepath.Base(abs)+".bak")
}
