package object

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zlib"
	"github.com/odvcencio/gitobj/pkg/fsutil"
	"go.uber.org/zap"
)

// objectFileMode matches the read-only mode Git gives loose objects.
const objectFileMode = 0o444

// Store is a content-addressed loose object store with a 2-character fan-out
// directory layout: objects/ab/cdef0123...
type Store struct {
	root   string
	level  int
	logger *zap.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for debug output about reads and writes.
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCompressionLevel sets the zlib level used for new objects.
func WithCompressionLevel(level int) StoreOption {
	return func(s *Store) {
		s.level = level
	}
}

// NewStore creates a Store rooted at the given metadata directory. The
// objects/ subdirectory and its fan-out directories are created lazily on
// first write.
func NewStore(root string, opts ...StoreOption) *Store {
	s := &Store{
		root:   root,
		level:  zlib.BestCompression,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the filesystem path for a given hash. It does no I/O.
// Upper-case hashes are folded; a malformed hash yields "".
func (s *Store) Path(h Hash) string {
	h, err := ParseHash(string(h))
	if err != nil {
		return ""
	}
	return filepath.Join(s.root, "objects", string(h[:2]), string(h[2:]))
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	path := s.Path(h)
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Write stores an object and returns its content hash. The object is
// written only when no file exists for its hash yet; either way the hash
// is returned. New files are written to a temp file and renamed into place.
func (s *Store) Write(o Object) (Hash, error) {
	raw := Envelope(o)
	h := HashBytes(raw)

	// Fast path: already exists.
	if s.Has(h) {
		s.logger.Debug("object exists", zap.String("hash", string(h)), zap.String("type", string(o.Type())))
		return h, nil
	}

	dest := s.Path(h)
	if err := fsutil.EnsureParent(dest); err != nil {
		return "", fmt.Errorf("object write %s: %w", h, err)
	}

	err := fsutil.WriteAtomic(dest, objectFileMode, func(w io.Writer) error {
		zw, err := zlib.NewWriterLevel(w, s.level)
		if err != nil {
			return err
		}
		if _, err := zw.Write(raw); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	})
	if err != nil {
		// Another writer may have renamed the same bytes into place first.
		if s.Has(h) {
			return h, nil
		}
		return "", fmt.Errorf("object write %s: %w", h, err)
	}

	s.logger.Debug("object written",
		zap.String("hash", string(h)),
		zap.String("type", string(o.Type())),
		zap.Int("size", len(o.Payload())),
	)
	return h, nil
}

// WriteType decodes data as objType and writes it.
func (s *Store) WriteType(objType ObjectType, data []byte) (Hash, error) {
	o, err := Decode(objType, data)
	if err != nil {
		return "", err
	}
	return s.Write(o)
}

// Read retrieves an object by hash.
func (s *Store) Read(h Hash) (Object, error) {
	h, err := ParseHash(string(h))
	if err != nil {
		return nil, fmt.Errorf("object read: %w", err)
	}

	compressed, err := os.ReadFile(s.Path(h))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("object read %s: %w", h, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}

	raw, err := inflate(compressed)
	if err != nil {
		return nil, fmt.Errorf("object read %s: %w: %v", h, ErrCorruptCompression, err)
	}

	env, err := parseEnvelope(h, raw)
	if err != nil {
		return nil, err
	}
	o, err := Decode(env.typ, env.payload)
	if err != nil {
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}

	s.logger.Debug("object read", zap.String("hash", string(h)), zap.String("type", string(env.typ)))
	return o, nil
}

// ReadAs reads an object and checks that it has the wanted type.
func (s *Store) ReadAs(h Hash, want ObjectType) (Object, error) {
	o, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if o.Type() != want {
		return nil, fmt.Errorf("object %s: %w: got %q, want %q", h, ErrTypeMismatch, o.Type(), want)
	}
	return o, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// ReadBlob reads a blob object.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	o, err := s.ReadAs(h, TypeBlob)
	if err != nil {
		return nil, err
	}
	return o.(*Blob), nil
}

// ReadTree reads a tree object.
func (s *Store) ReadTree(h Hash) (*Tree, error) {
	o, err := s.ReadAs(h, TypeTree)
	if err != nil {
		return nil, err
	}
	return o.(*Tree), nil
}

// ReadCommit reads a commit object.
func (s *Store) ReadCommit(h Hash) (*Commit, error) {
	o, err := s.ReadAs(h, TypeCommit)
	if err != nil {
		return nil, err
	}
	return o.(*Commit), nil
}

// ReadTag reads an annotated tag object.
func (s *Store) ReadTag(h Hash) (*Tag, error) {
	o, err := s.ReadAs(h, TypeTag)
	if err != nil {
		return nil, err
	}
	return o.(*Tag), nil
}

func inflate(compressed []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
