package mongo

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Facade errors. Driver errors are returned to the caller unchanged; use
// TranslateError to map them onto these sentinels where that helps.
var (
	// ErrEmptyBatch is returned by SaveMany when there is nothing to insert.
	ErrEmptyBatch = errors.New("mongo: empty batch")

	// ErrInvalidFilter is returned when a filter names no field, an empty
	// field, or a field starting with "$".
	ErrInvalidFilter = errors.New("mongo: invalid filter")

	// ErrDuplicateKey is the translation of a unique index violation.
	ErrDuplicateKey = errors.New("mongo: duplicate key")

	// ErrNotConnected is returned when the facade is built without a driver client.
	ErrNotConnected = errors.New("mongo: client is not connected")
)

// TranslateError normalizes driver errors to the sentinels above.
// Errors without a translation are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

// IsWriteRejected reports whether the server refused to apply a write, e.g.
// on a unique index or document validation failure. Save, SaveMany and Update
// report rejected writes as a false result instead of an error.
//
// An exception carrying only a write concern error is not a rejection: the
// write was applied but not acknowledged as durable.
func IsWriteRejected(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		return len(we.WriteErrors) > 0
	}
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		return len(bwe.WriteErrors) > 0
	}
	return false
}

// IsDuplicateKey reports whether err is a unique index violation.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey) || mongo.IsDuplicateKeyError(err)
}

// IsTimeout reports whether err is a timeout, including context deadlines.
func IsTimeout(err error) bool {
	return mongo.IsTimeout(err)
}

// IsNetworkError reports whether err is a connectivity failure.
func IsNetworkError(err error) bool {
	return mongo.IsNetworkError(err)
}
