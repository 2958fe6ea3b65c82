package mongo

import (
	"context"

	"go.uber.org/fx"

	"github.com/cpunk/mongostd/v1/observability"
)

// FXModule is an fx.Module that provides and configures the MongoDB facade.
// This module registers the facade with the Fx dependency injection framework,
// making both *Mongo and the Client interface available to other components.
//
// The module:
// 1. Provides the facade factory function
// 2. Provides the Client interface backed by the same instance
// 3. Invokes the lifecycle registration to manage the driver connection
//
// Usage:
//
//	app := fx.New(
//	    mongo.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("mongo",
	fx.Provide(
		NewMongoClientWithDI,
		ProvideClient,
	),
	fx.Invoke(RegisterMongoLifecycle),
)

// MongoParams groups the dependencies needed to create the facade
type MongoParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"` // Optional logger from std/v1/logger
	Observer observability.Observer `optional:"true"` // Optional observer, e.g. from std/v1/metrics
}

// NewMongoClientWithDI creates the facade using dependency injection.
// The optional logger is injected into the config and the optional observer
// is attached before the facade is handed out.
//
// Example usage with fx:
//
//	app := fx.New(
//	    mongo.FXModule,
//	    logger.FXModule, // Optional: provides logger
//	    fx.Provide(
//	        func(l *logger.LoggerClient) mongo.Logger { return l },
//	        func() mongo.Config {
//	            return loadMongoConfig() // Your config loading function
//	        },
//	    ),
//	)
func NewMongoClientWithDI(params MongoParams) (*Mongo, error) {
	if params.Logger != nil {
		params.Config.Logger = params.Logger
	}

	m, err := NewMongo(params.Config)
	if err != nil {
		return nil, err
	}
	if params.Observer != nil {
		m.WithObserver(params.Observer)
	}
	return m, nil
}

// ProvideClient exposes the facade through the Client interface.
func ProvideClient(m *Mongo) Client {
	return m
}

// MongoLifecycleParams groups the dependencies needed for lifecycle management
type MongoLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Mongo     *Mongo
}

// RegisterMongoLifecycle registers the facade with the fx lifecycle system.
//
// The function:
//  1. On application start: pings the primary so a misconfigured or
//     unreachable server fails startup
//  2. On application stop: disconnects the driver client
func RegisterMongoLifecycle(params MongoLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := params.Mongo.Ping(ctx); err != nil {
				params.Mongo.logWarn("Failed to ping MongoDB on startup", err, nil)
				return err
			}
			params.Mongo.logInfo("MongoDB client started and healthy", nil, nil)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return params.Mongo.GracefulShutdown(ctx)
		},
	})
}
