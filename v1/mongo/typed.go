package mongo

import (
	"context"

	"github.com/cpunk/mongostd/v1/record"
)

// FindByAs is FindBy decoding every matched document into T.
//
// When T (or *T) is a record.Record each document is first validated against
// its field schema. The first document that does not fit T fails the whole
// call with an error wrapping record.ErrDecode; no partial result is returned.
//
// Example:
//
//	users, err := mongo.FindByAs[User](ctx, db, "users", "name", "Marcos")
func FindByAs[T any](ctx context.Context, c Client, collection, field string, value any) ([]T, error) {
	docs, err := c.FindBy(ctx, collection, field, value)
	if err != nil {
		return nil, err
	}
	return record.DecodeAll[T](docs)
}

// FilterAs is Filter decoding every matched document into T.
// It fails on the first document that does not fit T, like FindByAs.
func FilterAs[T any](ctx context.Context, c Client, collection string, params map[string]any) ([]T, error) {
	docs, err := c.Filter(ctx, collection, params)
	if err != nil {
		return nil, err
	}
	return record.DecodeAll[T](docs)
}

// ILikeAs is ILike decoding every matched document into T.
// It fails on the first document that does not fit T, like FindByAs.
func ILikeAs[T any](ctx context.Context, c Client, collection string, fields []string, substring string) ([]T, error) {
	docs, err := c.ILike(ctx, collection, fields, substring)
	if err != nil {
		return nil, err
	}
	return record.DecodeAll[T](docs)
}

// SaveAll is SaveMany for a slice of one concrete record type.
func SaveAll[T record.Record](ctx context.Context, c Client, collection string, records []T) (bool, error) {
	batch := make([]record.Record, len(records))
	for i, r := range records {
		batch[i] = r
	}
	return c.SaveMany(ctx, collection, batch)
}
