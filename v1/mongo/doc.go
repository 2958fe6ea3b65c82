// Package mongo provides record level access to a MongoDB database.
//
// The mongo package is a thin facade over the official MongoDB driver. Writes
// take values implementing record.Record, which are serialized and checked
// against their declared field schema before they reach the server. Reads
// return documents in insertion order, either as raw record.Document values
// or, through the generic helpers, decoded into a caller chosen type.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Client interface: Defines the contract for record operations
//   - Mongo struct: Concrete implementation of the Client interface
//   - NewMongo constructor: Returns *Mongo (concrete type)
//   - FX module: Provides both *Mongo and Client interface for dependency injection
//
// Core Features:
//   - Save and SaveMany for single and ordered batch inserts
//   - FindBy, Filter and ILike reads (equality, conjunction and
//     case-insensitive substring match over several fields)
//   - Update and Delete acting on the first matching document
//   - DeleteAll and Count
//   - Typed results via FindByAs, FilterAs and ILikeAs
//   - OpenTelemetry spans and an optional observer for every operation
//
// # Direct Usage (Without FX)
//
//	import (
//		"context"
//
//		"github.com/cpunk/mongostd/v1/mongo"
//	)
//
//	db, err := mongo.NewMongo(mongo.Config{
//		Host:     "localhost",
//		Port:     27017,
//		Database: "shop",
//	})
//	if err != nil {
//		return err
//	}
//	defer db.GracefulShutdown(context.Background())
//
//	ok, err := db.Save(ctx, "items", Item{ID: 32, Price: 25.5})
//	items, err := mongo.FindByAs[Item](ctx, db, "items", "item_id", 32)
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule, // Optional: provides the observability.Observer
//		mongo.FXModule,   // Provides *mongo.Mongo and mongo.Client
//		fx.Provide(
//			func(l *logger.LoggerClient) mongo.Logger { return l },
//			func() mongo.Config { return loadMongoConfig() },
//		),
//	)
//
// # Results
//
// Write operations return (bool, error). A false result with a nil error means
// the server received the request and did not apply it: a rejected write
// (for example a duplicate key), an update or delete that matched nothing.
// A non-nil error means the operation could not be carried out at all:
// an invalid record, an invalid filter, or a connectivity problem.
//
// Update and Delete act on the first document in insertion order that
// matches; other matches are left untouched.
//
// # Thread Safety
//
// All methods on *Mongo are safe for concurrent use once the logger and
// observer have been configured.
package mongo
