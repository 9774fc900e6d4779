package object

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedKVLM is returned when a commit or tag payload does not have
// the header-lines, blank line, message shape.
var ErrMalformedKVLM = errors.New("malformed key-value list with message")

// Field is one header line of a commit or tag. Multi-line values (such as
// gpgsig) hold their lines joined by "\n" without the continuation space.
type Field struct {
	Key   string
	Value string
}

// KVLM is a parsed commit or tag payload: ordered header fields followed by
// a free-form message.
type KVLM struct {
	Fields  []Field
	Message []byte
}

// ParseKVLM parses a commit or tag payload. Field order and repeated keys are
// preserved so that Marshal reproduces the input byte for byte.
func ParseKVLM(data []byte) (*KVLM, error) {
	kv := &KVLM{}
	pos := 0
	for {
		if pos >= len(data) {
			return nil, fmt.Errorf("parse kvlm: %w: missing blank line before message", ErrMalformedKVLM)
		}
		if data[pos] == '\n' {
			kv.Message = data[pos+1:]
			return kv, nil
		}

		sp := bytes.IndexByte(data[pos:], ' ')
		nl := bytes.IndexByte(data[pos:], '\n')
		if sp <= 0 || nl < 0 || nl < sp {
			return nil, fmt.Errorf("parse kvlm: %w: bad header line at offset %d", ErrMalformedKVLM, pos)
		}
		key := string(data[pos : pos+sp])

		// The value runs until a newline that is not followed by a space.
		end := pos + sp + 1
		for {
			nl := bytes.IndexByte(data[end:], '\n')
			if nl < 0 {
				return nil, fmt.Errorf("parse kvlm: %w: unterminated value for %q", ErrMalformedKVLM, key)
			}
			end += nl
			if end+1 < len(data) && data[end+1] == ' ' {
				end++
				continue
			}
			break
		}
		value := strings.ReplaceAll(string(data[pos+sp+1:end]), "\n ", "\n")
		kv.Fields = append(kv.Fields, Field{Key: key, Value: value})
		pos = end + 1
	}
}

// Marshal serializes the fields and message back to payload form.
func (kv *KVLM) Marshal() []byte {
	var buf bytes.Buffer
	for _, f := range kv.Fields {
		buf.WriteString(f.Key)
		buf.WriteByte(' ')
		buf.WriteString(strings.ReplaceAll(f.Value, "\n", "\n "))
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(kv.Message)
	return buf.Bytes()
}

// Get returns the first value for key.
func (kv *KVLM) Get(key string) (string, bool) {
	for _, f := range kv.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// GetAll returns every value for key in order, e.g. all parents of a merge.
func (kv *KVLM) GetAll(key string) []string {
	var out []string
	for _, f := range kv.Fields {
		if f.Key == key {
			out = append(out, f.Value)
		}
	}
	return out
}

// Add appends a field.
func (kv *KVLM) Add(key, value string) {
	kv.Fields = append(kv.Fields, Field{Key: key, Value: value})
}

// Fields parses the commit payload.
func (c *Commit) Fields() (*KVLM, error) {
	return ParseKVLM(c.Data)
}

// Fields parses the tag payload.
func (t *Tag) Fields() (*KVLM, error) {
	return ParseKVLM(t.Data)
}
