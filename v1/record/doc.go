// Package record defines the contract between application types and the
// document store facade in v1/mongo.
//
// A Record is an application value with a declared field set (its Schema) and a
// Serialize method producing a generic Document. Records are validated against
// their schema when they are serialized for writing, and documents read back
// from the store are mapped into typed values with the generic Decode and
// DecodeAll functions, so the output shape is chosen at compile time:
//
//	items, err := record.DecodeAll[Item](docs)
//	if errors.Is(err, record.ErrDecode) {
//	    // a stored document does not fit Item
//	}
//
// # Schemas
//
// A Schema lists the fields of a record type together with their Kind. Nested
// records are described with KindDocument and Field.Fields; lists of
// sub-records with KindArray and Field.Elem:
//
//	record.Schema{
//	    {Name: "order_id", Kind: record.KindString, Required: true},
//	    {Name: "lines", Kind: record.KindArray, Elem: &record.Field{
//	        Kind: record.KindDocument,
//	        Fields: record.Schema{
//	            {Name: "sku", Kind: record.KindString, Required: true},
//	            {Name: "quantity", Kind: record.KindInt},
//	        },
//	    }},
//	}
//
// Fields that a schema does not declare are accepted; the store itself enforces
// no schema.
package record
