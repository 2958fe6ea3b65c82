package record

import (
	"fmt"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
)

// Marshal encodes v through the BSON codec into a Document. Struct fields
// tagged `bson:",omitempty"` are left out when they hold their zero value, which
// is how records omit fields at their default.
//
// v must be a struct, a map with string keys, or a pointer to either.
func Marshal(v any) (Document, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", v, err)
	}

	doc := Document{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %T into document: %w", v, err)
	}
	return doc, nil
}

// Decode maps doc into a value of type T.
//
// When T (or *T) implements Record the document is validated against the
// declared schema first, so a document missing a required field is rejected
// instead of producing a half-filled value. The returned error wraps ErrDecode.
//
// Fields present in the document but absent from T, such as the store
// identifier, are ignored.
func Decode[T any](doc Document) (T, error) {
	var out T

	if s, ok := schemaOf[T](); ok {
		if err := Validate(doc, s); err != nil {
			return out, fmt.Errorf("%w into %T: %w", ErrDecode, out, err)
		}
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		return out, fmt.Errorf("%w into %T: %w", ErrDecode, out, err)
	}
	if err := bson.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w into %T: %w", ErrDecode, out, err)
	}
	return out, nil
}

// DecodeAll decodes every document into T. It fails on the first document
// that does not fit, reporting its position; partial results are not returned.
func DecodeAll[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for i, doc := range docs {
		v, err := Decode[T](doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// schemaOf returns the schema declared by T when T or *T implements Record.
// FieldSchema is called on a zero value, so implementations must not depend
// on the receiver's contents.
func schemaOf[T any]() (Schema, bool) {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		if r, ok := reflect.New(t.Elem()).Interface().(Record); ok {
			return r.FieldSchema(), true
		}
		return nil, false
	}

	var zero T
	if r, ok := any(zero).(Record); ok {
		return r.FieldSchema(), true
	}
	if r, ok := any(&zero).(Record); ok {
		return r.FieldSchema(), true
	}
	return nil, false
}
