package record

import "errors"

var (
	// ErrSchemaViolation is returned when a document does not match the
	// schema declared by its record type.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrDecode is returned when a stored document cannot be mapped into the
	// requested output type.
	ErrDecode = errors.New("cannot decode document")
)
