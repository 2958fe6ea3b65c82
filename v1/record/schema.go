package record

import (
	"fmt"
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind is the declared type of a schema field.
type Kind int

const (
	// KindAny accepts every value.
	KindAny Kind = iota
	KindString
	// KindFloat accepts floating point and integer values.
	KindFloat
	// KindInt accepts integer values of any width.
	KindInt
	KindBool
	// KindTime accepts time.Time and BSON datetimes.
	KindTime
	// KindDocument accepts nested documents. Field.Fields, when set,
	// describes the nested document.
	KindDocument
	// KindArray accepts lists. Field.Elem, when set, describes every element.
	KindArray
)

var kindNames = map[Kind]string{
	KindAny:      "any",
	KindString:   "string",
	KindFloat:    "float",
	KindInt:      "int",
	KindBool:     "bool",
	KindTime:     "time",
	KindDocument: "document",
	KindArray:    "array",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Field declares one field of a record type.
type Field struct {
	Name     string
	Kind     Kind
	Required bool

	// Elem describes array elements when Kind is KindArray. Its Name is ignored.
	Elem *Field

	// Fields describes the nested document when Kind is KindDocument.
	Fields Schema
}

// Schema is the declared field set of a record type.
type Schema []Field

// Names returns the field names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s))
	for _, f := range s {
		names = append(names, f.Name)
	}
	return names
}

// Lookup returns the field declared under name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks doc against s. Required fields must be present and not nil,
// and every declared field that is present must match its Kind. Fields that
// the schema does not declare are accepted.
func Validate(doc Document, s Schema) error {
	return validateFields(doc, s, "")
}

func validateFields(doc map[string]any, s Schema, prefix string) error {
	for _, f := range s {
		path := prefix + f.Name
		v, ok := doc[f.Name]
		if !ok || v == nil {
			if f.Required {
				return fmt.Errorf("%w: missing required field %q", ErrSchemaViolation, path)
			}
			continue
		}
		if err := validateValue(v, f, path); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(v any, f Field, path string) error {
	if !matchesKind(v, f.Kind) {
		return fmt.Errorf("%w: field %q must be %s, got %T", ErrSchemaViolation, path, f.Kind, v)
	}

	switch f.Kind {
	case KindDocument:
		if len(f.Fields) == 0 {
			return nil
		}
		nested, err := asMap(v)
		if err != nil {
			return fmt.Errorf("%w: field %q: %v", ErrSchemaViolation, path, err)
		}
		return validateFields(nested, f.Fields, path+".")
	case KindArray:
		if f.Elem == nil {
			return nil
		}
		rv := reflect.ValueOf(v)
		for i := 0; i < rv.Len(); i++ {
			elemPath := fmt.Sprintf("%s[%d]", path, i)
			elem := rv.Index(i).Interface()
			if elem == nil {
				if f.Elem.Required {
					return fmt.Errorf("%w: nil element at %q", ErrSchemaViolation, elemPath)
				}
				continue
			}
			if err := validateValue(elem, *f.Elem, elemPath); err != nil {
				return err
			}
		}
	}
	return nil
}

func matchesKind(v any, k Kind) bool {
	switch k {
	case KindAny:
		return true
	case KindString:
		_, ok := v.(string)
		return ok
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindTime:
		switch v.(type) {
		case time.Time, primitive.DateTime, primitive.Timestamp:
			return true
		}
		return false
	case KindInt:
		return isInt(v)
	case KindFloat:
		switch v.(type) {
		case float32, float64:
			return true
		}
		return isInt(v)
	case KindDocument:
		return isDocument(v)
	case KindArray:
		if isDocument(v) {
			return false
		}
		if _, ok := v.([]byte); ok {
			return false
		}
		rk := reflect.ValueOf(v).Kind()
		return rk == reflect.Slice || rk == reflect.Array
	}
	return false
}

func isInt(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isDocument(v any) bool {
	if _, ok := v.(bson.D); ok {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
}

// asMap normalizes the nested document representations produced by the BSON
// codec (bson.M, bson.D, Document or plain maps) into a map.
func asMap(v any) (map[string]any, error) {
	switch m := v.(type) {
	case Document:
		return m, nil
	case map[string]any:
		return m, nil
	case bson.M:
		return m, nil
	case bson.D:
		out := make(map[string]any, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("not a document: %T", v)
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, nil
}
