package object

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownType        = errors.New("unknown object type")
	ErrInvalidHash        = errors.New("invalid object hash")
	ErrObjectNotFound     = errors.New("object not found")
	ErrCorruptCompression = errors.New("corrupt object compression")
	ErrMalformedHeader    = errors.New("malformed object header")
	ErrLengthMismatch     = errors.New("object length mismatch")
	ErrTypeMismatch       = errors.New("object type mismatch")
)

// LengthMismatchError reports an object whose header declares a payload
// length different from the number of bytes that follow the header.
type LengthMismatchError struct {
	Hash     Hash
	Declared uint64
	Actual   uint64
}

func (e *LengthMismatchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("object %s: %s (header=%d, actual=%d)", e.Hash, ErrLengthMismatch, e.Declared, e.Actual)
}

func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrLengthMismatch
}
