package repo

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/odvcencio/gitobj/pkg/fsutil"
)

// ErrUnsupportedFormatVersion is returned for repositories whose
// core.repositoryformatversion this package does not understand.
var ErrUnsupportedFormatVersion = errors.New("unsupported repository format version")

// Config is the subset of .git/config this package reads and writes. The
// TOML encoding of it is also valid Git config syntax.
type Config struct {
	Core CoreConfig `toml:"core"`
}

// CoreConfig is the [core] section.
type CoreConfig struct {
	RepositoryFormatVersion int  `toml:"repositoryformatversion"`
	FileMode                bool `toml:"filemode"`
	Bare                    bool `toml:"bare"`
}

// DefaultConfig returns the config written by Init.
func DefaultConfig() *Config {
	return &Config{Core: CoreConfig{
		RepositoryFormatVersion: 0,
		FileMode:                false,
		Bare:                    false,
	}}
}

func (r *Repo) configPath() string {
	return r.Path("config")
}

// ReadConfig reads .git/config. Missing config returns the default config.
func (r *Repo) ReadConfig() (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(r.configPath(), cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

// WriteConfig atomically writes .git/config.
func (r *Repo) WriteConfig(cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	path, err := r.File("config")
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	err = fsutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return toml.NewEncoder(w).Encode(cfg)
	})
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// CheckFormat reads the config and rejects repository format versions
// other than 0.
func (r *Repo) CheckFormat() error {
	cfg, err := r.ReadConfig()
	if err != nil {
		return err
	}
	if v := cfg.Core.RepositoryFormatVersion; v != 0 {
		return fmt.Errorf("repository %s: %w %d", r.RootDir, ErrUnsupportedFormatVersion, v)
	}
	return nil
}
