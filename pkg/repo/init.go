package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/odvcencio/gitobj/pkg/fsutil"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const defaultDescription = "Unnamed repository; edit this file 'description' to name the repository.\n"

// Init creates a new repository at path, creating the working tree directory
// if needed. It lays out .git/ with objects/, refs/heads/, refs/tags/ and
// branches/, a description file and the default config. An existing but
// empty .git/ is reused; a populated one is an error.
func Init(path string, opts ...Option) (_ *Repo, retErr error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("init: abs path: %w", err)
	}

	if err := fsutil.EnsureDir(abs); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	r := newRepo(abs, opts)

	// Best-effort serialisation of concurrent inits of the same working tree.
	// The lock file is removed afterwards, so a waiter holding the unlinked
	// inode can overlap a newcomer; the emptiness check below still turns
	// every init after the first completed one into ErrNonEmptyMetadataDir.
	lockPath := filepath.Join(abs, GitDirName+".lock")
	lock := flock.New(lockPath)
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("init: lock %s: %w", lockPath, err)
	}
	defer func() {
		retErr = multierr.Append(retErr, lock.Unlock())
		if err := os.Remove(lockPath); err != nil && !os.IsNotExist(err) {
			retErr = multierr.Append(retErr, err)
		}
	}()

	if fsutil.Exists(r.GitDir) {
		if !fsutil.IsDir(r.GitDir) {
			return nil, fmt.Errorf("init: %s: %w", r.GitDir, ErrNotADirectory)
		}
		empty, err := fsutil.IsEmptyDir(r.GitDir)
		if err != nil {
			return nil, fmt.Errorf("init: %w", err)
		}
		if !empty {
			return nil, fmt.Errorf("init: %s: %w", r.GitDir, ErrNonEmptyMetadataDir)
		}
	}

	dirs := [][]string{
		{"branches"},
		{"objects"},
		{"refs", "tags"},
		{"refs", "heads"},
	}
	for _, d := range dirs {
		if _, err := r.Dir(d...); err != nil {
			return nil, fmt.Errorf("init: %w", err)
		}
	}

	descPath, err := r.File("description")
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := os.WriteFile(descPath, []byte(defaultDescription), 0o644); err != nil {
		return nil, fmt.Errorf("init: write description: %w", err)
	}

	if err := r.WriteConfig(DefaultConfig()); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	r.logger.Debug("repository initialized", zap.String("gitdir", r.GitDir))
	return r, nil
}

// Open opens the repository rooted exactly at path. Unlike Discover it does
// not look at parent directories.
func Open(path string, opts ...Option) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}
	r := newRepo(abs, opts)
	if !fsutil.IsDir(r.GitDir) {
		return nil, fmt.Errorf("open: %s: %w", abs, ErrNotARepository)
	}
	return r, nil
}

// Discover searches upward from path for a .git/ directory and opens the
// repository that contains it. The filesystem is never modified.
func Discover(path string, opts ...Option) (*Repo, error) {
	// Resolve to a canonical path for consistent traversal.
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("discover: abs path: %w", err)
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}

	cur := abs
	for {
		if fsutil.IsDir(filepath.Join(cur, GitDirName)) {
			return Open(cur, opts...)
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached filesystem root without finding .git/.
			return nil, fmt.Errorf("discover: %s (or any parent up to %s): %w", abs, cur, ErrNoRepositoryFound)
		}
		cur = parent
	}
}
