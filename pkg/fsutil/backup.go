package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// BackupSuffix is the suffix used for sidecar backup files.
const BackupSuffix = ".bak"

// BackupPath returns the sidecar backup path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// Backup copies path to its sidecar backup, replacing any older backup.
// It reports false without error when path does not exist.
func Backup(ctx context.Context, path string) (bool, error) {
	content, snap, err := ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	stat, err := os.Stat(snap.Path)
	if err != nil {
		return false, fmt.Errorf("stat original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, BackupPath(path), content, stat.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// Restore replaces path with its sidecar backup. It reports false without
// error when no backup exists.
func Restore(ctx context.Context, path string) (bool, error) {
	backupPath := BackupPath(path)
	content, err := os.ReadFile(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read backup: %w", err)
	}

	stat, err := os.Stat(backupPath)
	if err != nil {
		return false, fmt.Errorf("stat backup: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, stat.Mode().Perm()); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	return true, nil
}
