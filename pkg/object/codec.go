package object

import "fmt"

// Decode wraps payload in the variant named by objType. Ownership of payload
// passes to the returned object. No structural validation is done; see
// ParseTree and ParseKVLM for that.
func Decode(objType ObjectType, payload []byte) (Object, error) {
	switch objType {
	case TypeBlob:
		return &Blob{Data: payload}, nil
	case TypeTree:
		return &Tree{Data: payload}, nil
	case TypeCommit:
		return &Commit{Data: payload}, nil
	case TypeTag:
		return &Tag{Data: payload}, nil
	}
	return nil, fmt.Errorf("decode: %w %q", ErrUnknownType, objType)
}

// Encode returns the payload bytes of o unchanged.
func Encode(o Object) []byte {
	return o.Payload()
}

// TypeToken returns the header token for o.
func TypeToken(o Object) ObjectType {
	return o.Type()
}

// Envelope returns the full uncompressed on-disk form of o: header and payload.
func Envelope(o Object) []byte {
	data := Encode(o)
	raw := AppendHeader(make([]byte, 0, len(data)+32), TypeToken(o), len(data))
	return append(raw, data...)
}
