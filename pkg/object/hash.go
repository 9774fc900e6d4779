package object

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// HashHexSize is the length of a hex-encoded object hash.
const HashHexSize = 2 * sha1.Size

// HashBytes computes the raw SHA-1 of data as a lowercase hex Hash.
func HashBytes(data []byte) Hash {
	sum := sha1.Sum(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// HashObject computes the SHA-1 of the envelope "type len\0content", which
// is the identity Git gives the object.
func HashObject(objType ObjectType, data []byte) Hash {
	h := sha1.New()
	h.Write(AppendHeader(nil, objType, len(data)))
	h.Write(data)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// ParseHash validates a hex object name. Upper-case digits are accepted and
// folded to lower case.
func ParseHash(s string) (Hash, error) {
	if len(s) != HashHexSize {
		return "", fmt.Errorf("parse hash %q: %w: want %d hex characters", s, ErrInvalidHash, HashHexSize)
	}
	s = strings.ToLower(s)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", fmt.Errorf("parse hash %q: %w: bad character %q", s, ErrInvalidHash, c)
		}
	}
	return Hash(s), nil
}

// Valid reports whether h is a well-formed lowercase hex object name.
func (h Hash) Valid() bool {
	p, err := ParseHash(string(h))
	return err == nil && p == h
}

// Bytes returns the 20-byte binary form of h, as stored in tree entries.
func (h Hash) Bytes() ([]byte, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("hash %q: %w", h, ErrInvalidHash)
	}
	return hex.DecodeString(string(h))
}

// HashFromBytes hex-encodes a 20-byte binary hash.
func HashFromBytes(b []byte) (Hash, error) {
	if len(b) != sha1.Size {
		return "", fmt.Errorf("binary hash %x: %w: wrong size", b, ErrInvalidHash)
	}
	return Hash(hex.EncodeToString(b)), nil
}
