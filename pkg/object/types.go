package object

// Hash is a 40-character lowercase hex-encoded SHA-1 digest.
type Hash string

// ObjectType identifies the kind of object stored. It is the token written
// at the start of every object header.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
	TypeTag    ObjectType = "tag"
)

// IsValid reports whether t is one of the four known object types.
func (t ObjectType) IsValid() bool {
	switch t {
	case TypeBlob, TypeTree, TypeCommit, TypeTag:
		return true
	}
	return false
}

const (
	// Tree mode constants compatible with Git's canonical mode strings.
	TreeModeDir        = "40000"
	TreeModeFile       = "100644"
	TreeModeExecutable = "100755"
	TreeModeSymlink    = "120000"
	TreeModeSubmodule  = "160000"
)

// Object is a stored object. The concrete type fixes the type token; the
// payload is the exact byte sequence that follows the header on disk.
type Object interface {
	Type() ObjectType
	Payload() []byte
}

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

// Tree holds a tree payload: a sequence of (mode, name, binary hash) entries.
type Tree struct {
	Data []byte
}

// Commit holds a commit payload: key/value headers, a blank line, a message.
type Commit struct {
	Data []byte
}

// Tag holds an annotated tag payload, shaped like a commit payload.
type Tag struct {
	Data []byte
}

func (*Blob) Type() ObjectType   { return TypeBlob }
func (*Tree) Type() ObjectType   { return TypeTree }
func (*Commit) Type() ObjectType { return TypeCommit }
func (*Tag) Type() ObjectType    { return TypeTag }

func (b *Blob) Payload() []byte   { return b.Data }
func (t *Tree) Payload() []byte   { return t.Data }
func (c *Commit) Payload() []byte { return c.Data }
func (t *Tag) Payload() []byte    { return t.Data }
