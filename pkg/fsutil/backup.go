package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupSuffix is the suffix for sidecar backup files.
const BackupSuffix = ".leptomcp.bak"

// BackupConfig controls backup behavior during fix mode.
type BackupConfig struct {
	// Enabled indicates whether backups should be created.
	Enabled bool
}

// DefaultBackupConfig returns the default backup behavior: disabled.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Enabled: false}
}

// BackupPath returns the sidecar backup path for the given file.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup writes a sidecar backup of the file at path if one does
// not already exist. Returns true if a backup was created.
//
// Creation is idempotent: an existing backup is never overwritten, so
// repeated fix runs keep the pristine original.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled {
		return false, nil
	}

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("create backup: %w", ctx.Err())
	default:
	}

	backupPath := BackupPath(path)

	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, stat.Mode()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}

	return true, nil
}

// BackupExists reports whether a sidecar backup exists for path.
func BackupExists(path string) bool {
	_, err := os.Stat(BackupPath(path))
	return err == nil
}
