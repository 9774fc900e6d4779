package object

import (
	"bytes"
	"fmt"
	"strconv"
)

// AppendHeader appends the object header "type len\0" to dst.
func AppendHeader(dst []byte, objType ObjectType, n int) []byte {
	dst = append(dst, objType...)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(n), 10)
	dst = append(dst, 0)
	return dst
}

// envelope is the result of splitting an inflated object into its header
// fields and payload. The type token is not validated here.
type envelope struct {
	typ      ObjectType
	declared uint64
	payload  []byte
}

// parseEnvelope splits raw as "type len\0content". The declared length is
// checked against the bytes that remain after the NUL; h is only used to
// label a mismatch.
func parseEnvelope(h Hash, raw []byte) (envelope, error) {
	sp := bytes.IndexByte(raw, ' ')
	if sp < 0 {
		return envelope{}, fmt.Errorf("object %s: %w: no space after type", h, ErrMalformedHeader)
	}
	nul := bytes.IndexByte(raw[sp+1:], 0)
	if nul < 0 {
		return envelope{}, fmt.Errorf("object %s: %w: no NUL after length", h, ErrMalformedHeader)
	}
	nul += sp + 1

	lenField := raw[sp+1 : nul]
	if len(lenField) == 0 {
		return envelope{}, fmt.Errorf("object %s: %w: empty length", h, ErrMalformedHeader)
	}
	for _, c := range lenField {
		if c < '0' || c > '9' {
			return envelope{}, fmt.Errorf("object %s: %w: invalid length %q", h, ErrMalformedHeader, lenField)
		}
	}
	declared, err := strconv.ParseUint(string(lenField), 10, 64)
	if err != nil {
		return envelope{}, fmt.Errorf("object %s: %w: length %q: %v", h, ErrMalformedHeader, lenField, err)
	}

	actual := uint64(len(raw) - nul - 1)
	if declared != actual {
		return envelope{}, &LengthMismatchError{Hash: h, Declared: declared, Actual: actual}
	}

	return envelope{
		typ:      ObjectType(raw[:sp]),
		declared: declared,
		payload:  raw[nul+1:],
	}, nil
}
