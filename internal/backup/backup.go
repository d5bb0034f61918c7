// Package backup copies the store file to and from the backups directory.
// Copies are raw file copies taken while the workstation is otherwise idle.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/diewo77/computer-store/gate"
	"github.com/diewo77/computer-store/internal/services"
	"github.com/diewo77/computer-store/internal/session"
	"github.com/sirupsen/logrus"
)

const (
	filePrefix = "computer_store_backup_"
	fileLayout = "20060102_150405"
	extension  = ".db"
)

// ErrInvalidFile rejects restore sources that are not .db regular files or
// that are the live store itself.
var ErrInvalidFile = errors.New("invalid backup file")

// Info describes a backup on disk.
type Info struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Manager creates and restores backups of one store file.
type Manager struct {
	dbPath string
	dir    string
	auth   services.Authorizer
	now    func() time.Time
	// AfterRestore runs once the live file has been replaced, typically the
	// schema initialiser.
	AfterRestore func(ctx context.Context) error
}

// NewManager manages backups of dbPath kept in dir.
func NewManager(dbPath, dir string, auth services.Authorizer) *Manager {
	return &Manager{dbPath: dbPath, dir: dir, auth: auth, now: time.Now}
}

// FileName is the backup name for t.
func FileName(t time.Time) string {
	return filePrefix + t.Format(fileLayout) + extension
}

// Create copies the live store into the backups directory and returns the
// new file's path.
func (m *Manager) Create(ctx context.Context) (string, error) {
	if err := m.auth.Authorize(ctx, gate.ActionBackup, session.ResourceBackup); err != nil {
		return "", err
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	dst := filepath.Join(m.dir, FileName(m.now()))
	if err := copyFile(m.dbPath, dst); err != nil {
		logrus.WithError(err).WithField("dst", dst).Error("backup failed")
		return "", err
	}
	logrus.WithField("path", dst).Info("backup created")
	return dst, nil
}

// Restore overwrites the live store with src.
func (m *Manager) Restore(ctx context.Context, src string) error {
	if err := m.auth.Authorize(ctx, gate.ActionRestore, session.ResourceBackup); err != nil {
		return err
	}
	if !strings.EqualFold(filepath.Ext(src), extension) {
		return fmt.Errorf("%w: %s", ErrInvalidFile, filepath.Base(src))
	}
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrInvalidFile, filepath.Base(src))
	}
	if live, err := os.Stat(m.dbPath); err == nil && os.SameFile(fi, live) {
		return fmt.Errorf("%w: %s is the live store", ErrInvalidFile, filepath.Base(src))
	}
	if err := copyFile(src, m.dbPath); err != nil {
		logrus.WithError(err).WithField("src", src).Error("restore failed")
		return err
	}
	logrus.WithField("src", src).Info("backup restored")
	if m.AfterRestore != nil {
		if err := m.AfterRestore(ctx); err != nil {
			logrus.WithError(err).Warn("restore: post-restore initialisation reported errors")
		}
	}
	return nil
}

// List returns the backups in the directory, newest first. A missing
// directory yields an empty list.
func (m *Manager) List(ctx context.Context) ([]Info, error) {
	if err := m.auth.Authorize(ctx, gate.ActionList, session.ResourceBackup); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(m.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := []Info{}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), extension) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Info{Name: e.Name(), Path: filepath.Join(m.dir, e.Name()), Size: fi.Size(), ModTime: fi.ModTime()})
	}
	slices.SortFunc(out, func(a, b Info) int {
		if c := b.ModTime.Compare(a.ModTime); c != 0 {
			return c
		}
		return strings.Compare(b.Name, a.Name)
	})
	return out, nil
}

// copyFile copies src over dst, keeping src's modification time. The
// destination is written in place so open handles see the same inode.
func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()
	fi, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", dst, cerr)
		}
	}()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", dst, err)
	}
	if err := os.Chtimes(dst, fi.ModTime(), fi.ModTime()); err != nil {
		return fmt.Errorf("chtimes %s: %w", dst, err)
	}
	return nil
}
