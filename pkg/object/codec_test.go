package object

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeDispatch(t *testing.T) {
	payload := []byte("payload")
	for _, typ := range []ObjectType{TypeBlob, TypeTree, TypeCommit, TypeTag} {
		o, err := Decode(typ, payload)
		if err != nil {
			t.Fatalf("Decode(%s): %v", typ, err)
		}
		if TypeToken(o) != typ {
			t.Errorf("TypeToken(Decode(%s)) = %s", typ, TypeToken(o))
		}
		if !bytes.Equal(Encode(o), payload) {
			t.Errorf("Encode(Decode(%s)) = %q, want %q", typ, Encode(o), payload)
		}
	}
}

func TestDecodeVariants(t *testing.T) {
	if o, _ := Decode(TypeBlob, nil); !isType[*Blob](o) {
		t.Errorf("blob decoded to %T", o)
	}
	if o, _ := Decode(TypeTree, nil); !isType[*Tree](o) {
		t.Errorf("tree decoded to %T", o)
	}
	if o, _ := Decode(TypeCommit, nil); !isType[*Commit](o) {
		t.Errorf("commit decoded to %T", o)
	}
	if o, _ := Decode(TypeTag, nil); !isType[*Tag](o) {
		t.Errorf("tag decoded to %T", o)
	}
}

func isType[T Object](o Object) bool {
	_, ok := o.(T)
	return ok
}

func TestDecodeUnknownType(t *testing.T) {
	for _, typ := range []ObjectType{"widget", "", "Blob", "blob "} {
		if _, err := Decode(typ, []byte("anything")); !errors.Is(err, ErrUnknownType) {
			t.Errorf("Decode(%q): got %v, want ErrUnknownType", typ, err)
		}
	}
}

func TestEnvelope(t *testing.T) {
	got := Envelope(&Blob{Data: []byte("hello")})
	want := []byte("blob 5\x00hello")
	if !bytes.Equal(got, want) {
		t.Errorf("Envelope = %q, want %q", got, want)
	}
}

func TestParseEnvelope(t *testing.T) {
	const h = Hash("0123456789012345678901234567890123456789")

	env, err := parseEnvelope(h, []byte("commit 3\x00a\x00b"))
	if err != nil {
		t.Fatalf("parseEnvelope: %v", err)
	}
	if env.typ != TypeCommit || string(env.payload) != "a\x00b" || env.declared != 3 {
		t.Errorf("parseEnvelope = %+v", env)
	}

	malformed := []string{
		"blob",
		"blob5\x00hello",
		"blob 5hello",
		"blob \x00",
		"blob 5a\x00hello",
		"blob -5\x00hello",
		"blob +5\x00hello",
	}
	for _, raw := range malformed {
		if _, err := parseEnvelope(h, []byte(raw)); !errors.Is(err, ErrMalformedHeader) {
			t.Errorf("parseEnvelope(%q): got %v, want ErrMalformedHeader", raw, err)
		}
	}
}

func TestParseEnvelopeLengthMismatch(t *testing.T) {
	const h = Hash("0123456789012345678901234567890123456789")

	for _, raw := range []string{"blob 10\x00hello", "blob 2\x00hello", "blob 0\x00x"} {
		_, err := parseEnvelope(h, []byte(raw))
		if !errors.Is(err, ErrLengthMismatch) {
			t.Fatalf("parseEnvelope(%q): got %v, want ErrLengthMismatch", raw, err)
		}
		var lm *LengthMismatchError
		if !errors.As(err, &lm) {
			t.Fatalf("parseEnvelope(%q): error %T is not *LengthMismatchError", raw, err)
		}
		if lm.Hash != h {
			t.Errorf("LengthMismatchError.Hash = %s, want %s", lm.Hash, h)
		}
	}
}
