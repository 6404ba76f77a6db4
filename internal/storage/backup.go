package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// BackupPath returns a timestamped backup file name next to the database.
func (s *SQLiteStorage) BackupPath(now time.Time) string {
	base := strings.TrimSuffix(filepath.Base(s.dbPath), filepath.Ext(s.dbPath))
	return filepath.Join(filepath.Dir(s.dbPath), "backups",
		fmt.Sprintf("%s-%s.db", base, now.Format("20060102-150405")))
}

// Backup writes a consistent copy of the database to destPath.
func (s *SQLiteStorage) Backup(ctx context.Context, destPath string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if s.dbPath == ":memory:" {
		return fmt.Errorf("cannot back up an in-memory database")
	}

	// destPath is interpolated into SQL below.
	if strings.ContainsAny(destPath, "'\";") {
		return fmt.Errorf("invalid destination path: contains forbidden characters")
	}
	if !filepath.IsAbs(destPath) || strings.Contains(destPath, "..") {
		return fmt.Errorf("invalid destination path %q: must be absolute", destPath)
	}
	if _, err := os.Stat(destPath); err == nil {
		return fmt.Errorf("backup destination %q already exists", destPath)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0750); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("failed to checkpoint WAL: %w", err)
	}

	// #nosec G201 - destPath is validated above
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", destPath)); err != nil {
		return fmt.Errorf("failed to back up database: %w", err)
	}
	return nil
}
