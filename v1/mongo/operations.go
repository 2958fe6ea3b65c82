package mongo

import (
	"context"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cpunk/mongostd/v1/record"
)

// byInsertion orders reads by _id. Driver-generated ObjectIDs grow with
// insertion time, so this is insertion order as long as records leave _id to
// the driver.
var byInsertion = bson.D{{Key: record.IDField, Value: 1}}

// Save serializes r and inserts it into collection.
//
// It returns false with a nil error when the server rejects the write, e.g. on
// a duplicate key. Serialization failures and connectivity errors are
// returned as errors.
func (m *Mongo) Save(ctx context.Context, collection string, r record.Record) (bool, error) {
	ctx, op := m.begin(ctx, "save", collection, "")

	doc, err := record.Serialize(r)
	if err != nil {
		op.end(err, 0)
		return false, err
	}

	_, err = m.Collection(collection).InsertOne(ctx, doc)
	op.end(err, countOnSuccess(err, 1))
	return m.writeResult(err, "save", collection)
}

// SaveMany serializes every record and inserts them in one ordered batch.
//
// Nothing is written when a record fails to serialize. It returns true only
// when the server accepted every document; a rejected batch returns false
// with a nil error. There is no partial-success contract: after a false
// result the documents preceding the rejected one may have been stored.
func (m *Mongo) SaveMany(ctx context.Context, collection string, records []record.Record) (bool, error) {
	ctx, op := m.begin(ctx, "save_many", collection, "")

	if len(records) == 0 {
		op.end(ErrEmptyBatch, 0)
		return false, ErrEmptyBatch
	}

	docs, err := record.SerializeAll(records)
	if err != nil {
		op.end(err, 0)
		return false, err
	}

	batch := make([]interface{}, len(docs))
	for i, doc := range docs {
		batch[i] = doc
	}

	res, err := m.Collection(collection).InsertMany(ctx, batch)
	var inserted int64
	if res != nil {
		inserted = int64(len(res.InsertedIDs))
	}
	op.end(err, inserted)

	ok, err := m.writeResult(err, "save_many", collection)
	return ok && inserted == int64(len(docs)), err
}

// FindBy returns the documents of collection whose field equals value,
// ordered by _id. That is insertion order for driver-generated ObjectIDs; a
// record that serializes its own _id is returned in _id order instead.
func (m *Mongo) FindBy(ctx context.Context, collection, field string, value any) ([]record.Document, error) {
	ctx, op := m.begin(ctx, "find_by", collection, field)

	filter, err := Eq(field, value)
	if err != nil {
		op.end(err, 0)
		return nil, err
	}
	return m.find(ctx, op, collection, filter)
}

// Filter returns the documents of collection matching every field/value pair
// in params. An empty params matches every document. Ordering is as for FindBy.
func (m *Mongo) Filter(ctx context.Context, collection string, params map[string]any) ([]record.Document, error) {
	ctx, op := m.begin(ctx, "filter", collection, joinKeys(params))

	filter, err := AllOf(params)
	if err != nil {
		op.end(err, 0)
		return nil, err
	}
	return m.find(ctx, op, collection, filter)
}

// ILike returns the documents of collection where any of fields contains
// substring, ignoring case. A document matching on several fields is returned
// once. Results are ordered by _id, which is insertion order unless records
// set their own _id.
func (m *Mongo) ILike(ctx context.Context, collection string, fields []string, substring string) ([]record.Document, error) {
	ctx, op := m.begin(ctx, "ilike", collection, strings.Join(fields, ","))

	filter, err := AnyContains(fields, substring)
	if err != nil {
		op.end(err, 0)
		return nil, err
	}
	return m.find(ctx, op, collection, filter)
}

// Update replaces the first document of collection whose field equals value
// with the serialized r. It returns false with a nil error when no document
// matched or the server rejected the replacement.
func (m *Mongo) Update(ctx context.Context, collection, field string, value any, r record.Record) (bool, error) {
	ctx, op := m.begin(ctx, "update", collection, field)

	filter, err := Eq(field, value)
	if err != nil {
		op.end(err, 0)
		return false, err
	}

	doc, err := record.Serialize(r)
	if err != nil {
		op.end(err, 0)
		return false, err
	}

	res, err := m.Collection(collection).ReplaceOne(ctx, filter, doc)
	var matched int64
	if res != nil {
		matched = res.MatchedCount
	}
	op.end(err, matched)

	ok, err := m.writeResult(err, "update", collection)
	return ok && matched > 0, err
}

// Delete removes the first document of collection whose field equals value.
// It returns false when no document matched.
func (m *Mongo) Delete(ctx context.Context, collection, field string, value any) (bool, error) {
	ctx, op := m.begin(ctx, "delete", collection, field)

	filter, err := Eq(field, value)
	if err != nil {
		op.end(err, 0)
		return false, err
	}

	res, err := m.Collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		op.end(err, 0)
		return false, err
	}
	op.end(nil, res.DeletedCount)
	return res.DeletedCount > 0, nil
}

// DeleteAll removes every document of collection. It returns true for an
// already empty or never written collection.
func (m *Mongo) DeleteAll(ctx context.Context, collection string) (bool, error) {
	ctx, op := m.begin(ctx, "delete_all", collection, "")

	res, err := m.Collection(collection).DeleteMany(ctx, bson.D{})
	if err != nil {
		op.end(err, 0)
		return false, err
	}
	op.end(nil, res.DeletedCount)
	return true, nil
}

// Count returns the number of documents of collection matching every
// field/value pair in params.
func (m *Mongo) Count(ctx context.Context, collection string, params map[string]any) (int64, error) {
	ctx, op := m.begin(ctx, "count", collection, joinKeys(params))

	filter, err := AllOf(params)
	if err != nil {
		op.end(err, 0)
		return 0, err
	}

	n, err := m.Collection(collection).CountDocuments(ctx, filter)
	op.end(err, n)
	return n, err
}

func (m *Mongo) find(ctx context.Context, op *operation, collection string, filter bson.D) ([]record.Document, error) {
	cursor, err := m.Collection(collection).Find(ctx, filter, options.Find().SetSort(byInsertion))
	if err != nil {
		op.end(err, 0)
		return nil, err
	}

	docs := make([]record.Document, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		op.end(err, 0)
		return nil, err
	}

	op.end(nil, int64(len(docs)))
	return docs, nil
}

// writeResult maps the outcome of a write onto the (ok, err) contract: a
// rejected write is a false result, anything else unexpected is an error.
func (m *Mongo) writeResult(err error, operation, collection string) (bool, error) {
	if err == nil {
		return true, nil
	}
	if IsWriteRejected(err) {
		m.logWarn("MongoDB rejected write", err, map[string]interface{}{
			"operation":     operation,
			"collection":    collection,
			"duplicate_key": IsDuplicateKey(err),
		})
		return false, nil
	}
	return false, err
}

func countOnSuccess(err error, n int64) int64 {
	if err != nil {
		return 0
	}
	return n
}

func joinKeys(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}
