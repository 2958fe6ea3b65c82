package record

import (
	"fmt"
)

// Document is the store-native representation of a record: a mapping from
// field name to value. Documents read back from the store carry the
// store-assigned identifier under IDField.
type Document map[string]any

// IDField is the name of the identifier field assigned by the store on insertion.
const IDField = "_id"

// Record is implemented by every application type that can be written through
// the facade.
//
// Serialize produces the document to store, omitting fields left at their
// default value. FieldSchema declares the fields of the type; it is checked
// when a record is serialized and when documents are decoded into the type.
//
// Most implementations delegate Serialize to Marshal:
//
//	type Item struct {
//	    ItemID     string  `bson:"item_id"`
//	    Price      float64 `bson:"price"`
//	    CurrencyID string  `bson:"currency_id,omitempty"`
//	}
//
//	func (i Item) Serialize() (record.Document, error) { return record.Marshal(i) }
//
//	func (Item) FieldSchema() record.Schema {
//	    return record.Schema{
//	        {Name: "item_id", Kind: record.KindString, Required: true},
//	        {Name: "price", Kind: record.KindFloat, Required: true},
//	        {Name: "currency_id", Kind: record.KindString},
//	    }
//	}
type Record interface {
	Serialize() (Document, error)
	FieldSchema() Schema
}

// Serialize turns r into a Document and validates it against r's declared schema.
// The returned error wraps ErrSchemaViolation when the document does not match.
func Serialize(r Record) (Document, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil record", ErrSchemaViolation)
	}

	doc, err := r.Serialize()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize record: %w", err)
	}
	if doc == nil {
		doc = Document{}
	}

	if err := Validate(doc, r.FieldSchema()); err != nil {
		return nil, err
	}
	return doc, nil
}

// SerializeAll serializes every record, stopping at the first failure.
// Nothing is returned for a batch that contains an invalid record.
func SerializeAll[T Record](records []T) ([]Document, error) {
	docs := make([]Document, 0, len(records))
	for i, r := range records {
		doc, err := Serialize(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// ID returns the store-assigned identifier of the document, or nil if the
// document has not been stored yet.
func (d Document) ID() any {
	return d[IDField]
}

// Without returns a shallow copy of the document without the given fields.
func (d Document) Without(fields ...string) Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	for _, f := range fields {
		delete(out, f)
	}
	return out
}
