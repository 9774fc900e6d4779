package repo

import (
	"errors"
	"path/filepath"

	"github.com/odvcencio/gitobj/pkg/fsutil"
	"github.com/odvcencio/gitobj/pkg/object"
	"go.uber.org/zap"
)

// GitDirName is the name of the metadata directory at a repository root.
const GitDirName = ".git"

var (
	ErrNotARepository      = errors.New("not a repository")
	ErrNoRepositoryFound   = errors.New("no repository found")
	ErrNonEmptyMetadataDir = errors.New("metadata directory is not empty")

	// ErrNotADirectory is returned when a path that must be a directory is a file.
	ErrNotADirectory = fsutil.ErrNotADirectory
)

// Repo represents an opened repository. It holds nothing but its two paths
// and the object store built on them; all state lives on disk.
type Repo struct {
	RootDir string        // working tree root
	GitDir  string        // .git/ directory
	Store   *object.Store // content-addressed object store

	logger *zap.Logger
}

// Option configures a Repo as it is created or opened.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used by the repository and its object store.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newRepo(root string, opts []Option) *Repo {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	gitDir := filepath.Join(root, GitDirName)
	return &Repo{
		RootDir: root,
		GitDir:  gitDir,
		Store:   object.NewStore(gitDir, object.WithLogger(o.logger)),
		logger:  o.logger,
	}
}

// Path joins elem onto the metadata directory. It does no I/O.
func (r *Repo) Path(elem ...string) string {
	return filepath.Join(append([]string{r.GitDir}, elem...)...)
}

// File returns Path(elem...) after making sure its parent directory chain
// exists, so the caller can create the file.
func (r *Repo) File(elem ...string) (string, error) {
	p := r.Path(elem...)
	if err := fsutil.EnsureParent(p); err != nil {
		return "", err
	}
	return p, nil
}

// Dir returns Path(elem...) after making sure it exists as a directory.
func (r *Repo) Dir(elem ...string) (string, error) {
	p := r.Path(elem...)
	if err := fsutil.EnsureDir(p); err != nil {
		return "", err
	}
	return p, nil
}
