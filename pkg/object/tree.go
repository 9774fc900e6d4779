package object

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMalformedTree is returned when a tree payload cannot be split into
// entries.
var ErrMalformedTree = errors.New("malformed tree")

// TreeEntry is one entry in a tree payload.
type TreeEntry struct {
	Mode string
	Name string
	Hash Hash
}

// canonicalMode strips leading zeros, so "040000" and "40000" compare equal.
func (e TreeEntry) canonicalMode() string {
	return strings.TrimLeft(e.Mode, "0")
}

// IsDir reports whether the entry names a subtree.
func (e TreeEntry) IsDir() bool {
	return e.canonicalMode() == TreeModeDir
}

// ObjectType returns the type of object the entry points at.
func (e TreeEntry) ObjectType() ObjectType {
	switch e.canonicalMode() {
	case TreeModeDir:
		return TypeTree
	case TreeModeSubmodule:
		return TypeCommit
	}
	return TypeBlob
}

// sortKey is the name Git orders entries by: subtrees sort as if their
// name had a trailing slash.
func (e TreeEntry) sortKey() string {
	if e.IsDir() {
		return e.Name + "/"
	}
	return e.Name
}

// ParseTree splits a tree payload into entries of the form
// "<mode> <name>\0<20-byte hash>".
func ParseTree(data []byte) ([]TreeEntry, error) {
	var entries []TreeEntry
	for pos := 0; pos < len(data); {
		sp := bytes.IndexByte(data[pos:], ' ')
		if sp <= 0 {
			return nil, fmt.Errorf("parse tree: %w: bad mode at offset %d", ErrMalformedTree, pos)
		}
		mode := string(data[pos : pos+sp])
		pos += sp + 1

		nul := bytes.IndexByte(data[pos:], 0)
		if nul <= 0 {
			return nil, fmt.Errorf("parse tree: %w: bad name at offset %d", ErrMalformedTree, pos)
		}
		name := string(data[pos : pos+nul])
		pos += nul + 1

		if len(data)-pos < HashHexSize/2 {
			return nil, fmt.Errorf("parse tree: %w: truncated hash for %q", ErrMalformedTree, name)
		}
		h, err := HashFromBytes(data[pos : pos+HashHexSize/2])
		if err != nil {
			return nil, fmt.Errorf("parse tree: %w", err)
		}
		pos += HashHexSize / 2

		entries = append(entries, TreeEntry{Mode: mode, Name: name, Hash: h})
	}
	return entries, nil
}

// MarshalTree serializes entries in Git's canonical order. The input slice
// is not modified.
func MarshalTree(entries []TreeEntry) ([]byte, error) {
	sorted := make([]TreeEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].sortKey() < sorted[j].sortKey()
	})

	var buf bytes.Buffer
	for _, e := range sorted {
		if e.Mode == "" || e.Name == "" || bytes.IndexByte([]byte(e.Name), 0) >= 0 {
			return nil, fmt.Errorf("marshal tree: %w: entry %q", ErrMalformedTree, e.Name)
		}
		raw, err := e.Hash.Bytes()
		if err != nil {
			return nil, fmt.Errorf("marshal tree: entry %q: %w", e.Name, err)
		}
		buf.WriteString(e.Mode)
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		buf.Write(raw)
	}
	return buf.Bytes(), nil
}

// Entries parses the tree payload.
func (t *Tree) Entries() ([]TreeEntry, error) {
	return ParseTree(t.Data)
}
