package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cpunk/mongostd/v1/record"
)

// Client provides record level access to the collections of one MongoDB
// database. Writes take records and serialize them through their field
// schema; reads return raw documents in insertion order. Use the generic
// FindByAs, FilterAs and ILikeAs helpers to receive typed values instead.
//
// This interface is implemented by the concrete *Mongo type.
type Client interface {
	// Write operations
	Save(ctx context.Context, collection string, r record.Record) (bool, error)
	SaveMany(ctx context.Context, collection string, records []record.Record) (bool, error)
	Update(ctx context.Context, collection, field string, value any, r record.Record) (bool, error)

	// Read operations
	FindBy(ctx context.Context, collection, field string, value any) ([]record.Document, error)
	Filter(ctx context.Context, collection string, params map[string]any) ([]record.Document, error)
	ILike(ctx context.Context, collection string, fields []string, substring string) ([]record.Document, error)
	Count(ctx context.Context, collection string, params map[string]any) (int64, error)

	// Delete operations
	Delete(ctx context.Context, collection, field string, value any) (bool, error)
	DeleteAll(ctx context.Context, collection string) (bool, error)

	// Connection and lifecycle
	Ping(ctx context.Context) error
	Database() *mongo.Database
	Collection(name string) *mongo.Collection
	GracefulShutdown(ctx context.Context) error
}

var _ Client = (*Mongo)(nil)
