// Package fsutil holds the small filesystem primitives shared by the
// repository layout and the object store: idempotent directory creation
// that reports file-in-the-way conflicts, and atomic file replacement.
package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// ErrNotADirectory is returned when a path component that must be a
// directory exists as something else.
var ErrNotADirectory = errors.New("not a directory")

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Exists reports whether anything exists at path.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsEmptyDir reports whether the directory at path has no entries.
func IsEmptyDir(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}

// EnsureDir creates path and any missing parents. It is a no-op when the
// directory already exists. If path, or any ancestor, exists as a non-directory
// the returned error wraps ErrNotADirectory.
func EnsureDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("ensure dir %s: %w", path, ErrNotADirectory)
		}
		return nil
	}
	if blocker := fileAncestor(path); blocker != "" {
		return fmt.Errorf("ensure dir %s: %s: %w", path, blocker, ErrNotADirectory)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		if blocker := fileAncestor(path); blocker != "" {
			return fmt.Errorf("ensure dir %s: %s: %w", path, blocker, ErrNotADirectory)
		}
		return fmt.Errorf("ensure dir %s: %w", path, err)
	}
	return nil
}

// EnsureParent ensures the directory that will contain path exists.
func EnsureParent(path string) error {
	return EnsureDir(filepath.Dir(path))
}

// fileAncestor returns the nearest existing ancestor of path (path included)
// when it is not a directory, or "" otherwise.
func fileAncestor(path string) string {
	cur := filepath.Clean(path)
	for {
		info, err := os.Stat(cur)
		if err == nil {
			if info.IsDir() {
				return ""
			}
			return cur
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return ""
		}
		cur = parent
	}
}

// WriteFileAtomic writes data to path via a temp file in the same directory
// that is renamed into place. The parent directory must already exist.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	return WriteAtomic(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteAtomic streams the output of fill into a temp file next to path and
// renames it over path once fill and the close both succeed. Readers never
// observe a partially written file.
func WriteAtomic(path string, perm os.FileMode, fill func(w io.Writer) error) (retErr error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("atomic write %s: tmpfile: %w", path, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			retErr = multierr.Append(retErr, removeIfExists(tmpName))
		}
	}()

	if err := fill(tmp); err != nil {
		return multierr.Append(fmt.Errorf("atomic write %s: %w", path, err), tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("atomic write %s: close: %w", path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("atomic write %s: chmod: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("atomic write %s: rename: %w", path, err)
	}
	committed = true
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
