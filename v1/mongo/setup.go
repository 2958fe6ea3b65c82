package mongo

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/cpunk/mongostd/v1/observability"
)

const instrumentationName = "github.com/cpunk/mongostd/v1/mongo"

// Mongo is the record access facade over a MongoDB database.
// It wraps one long-lived driver client and one database name, and
// translates typed records into documents on the way in and documents into
// typed values on the way out.
//
// The driver client is safe for concurrent use, and so is Mongo once its
// logger and observer are set.
//
// Mongo implements the Client interface.
type Mongo struct {
	client *mongo.Client
	cfg    Config

	// logger is used for structured logging; nil disables logging
	logger Logger

	// observer provides optional observability hooks for tracking operations
	observer observability.Observer

	tracer trace.Tracer

	// ownsClient is true when the client was created by NewMongo and must be
	// disconnected on shutdown
	ownsClient bool

	closeOnce sync.Once
	closeErr  error
}

// NewMongo creates a facade connected to the server described by cfg.
//
// The driver connects lazily, so a nil error does not mean the server is
// reachable; call Ping (the fx lifecycle does) to verify connectivity.
//
// Example:
//
//	db, err := mongo.NewMongo(mongo.Config{
//		Host:     "localhost",
//		Port:     27017,
//		Database: "example",
//	})
//	if err != nil {
//		return err
//	}
//	defer db.GracefulShutdown(context.Background())
func NewMongo(cfg Config) (*Mongo, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := options.Client().
		ApplyURI(cfg.ConnectionURI()).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout)
	if cfg.AppName != "" {
		opts.SetAppName(cfg.AppName)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	m := newMongo(client, cfg)
	m.ownsClient = true

	m.logInfo("MongoDB client initialized", nil, map[string]interface{}{
		"database": cfg.Database,
	})
	return m, nil
}

// NewMongoFromClient wraps an existing driver client. The caller keeps
// ownership of client: GracefulShutdown does not disconnect it.
func NewMongoFromClient(client *mongo.Client, cfg Config) (*Mongo, error) {
	if client == nil {
		return nil, ErrNotConnected
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newMongo(client, cfg), nil
}

func newMongo(client *mongo.Client, cfg Config) *Mongo {
	return &Mongo{
		client: client,
		cfg:    cfg,
		logger: cfg.Logger,
		tracer: otel.Tracer(instrumentationName),
	}
}

// Ping verifies that the primary is reachable.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// Client returns the underlying driver client for advanced operations.
func (m *Mongo) Client() *mongo.Client {
	return m.client
}

// Database returns the database handle all operations run against.
func (m *Mongo) Database() *mongo.Database {
	return m.client.Database(m.cfg.Database)
}

// Collection returns the handle of the named collection. Collections are
// created by the server on first write.
func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.Database().Collection(name)
}

// GracefulShutdown disconnects the driver client if this facade created it.
// It is safe to call more than once; later calls return the first result.
func (m *Mongo) GracefulShutdown(ctx context.Context) error {
	m.closeOnce.Do(func() {
		if !m.ownsClient {
			return
		}
		m.logInfo("Closing MongoDB client", nil, nil)
		if err := m.client.Disconnect(ctx); err != nil {
			m.logWarn("Failed to close MongoDB client", err, nil)
			m.closeErr = err
		}
	})
	return m.closeErr
}

// WithObserver sets the observer for this client and returns the client for method chaining.
// The observer receives events about every facade operation (e.g., save, find_by, delete).
//
// Example:
//
//	db := db.WithObserver(metricsClient).WithLogger(log)
func (m *Mongo) WithObserver(observer observability.Observer) *Mongo {
	m.observer = observer
	return m
}

// WithLogger sets the logger for this client and returns the client for method chaining.
func (m *Mongo) WithLogger(logger Logger) *Mongo {
	m.logger = logger
	return m
}

// WithTracerProvider makes the client create its spans from tp instead of the
// global provider.
func (m *Mongo) WithTracerProvider(tp trace.TracerProvider) *Mongo {
	m.tracer = tp.Tracer(instrumentationName)
	return m
}

func (m *Mongo) logInfo(msg string, err error, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.Info(msg, err, fields)
	}
}

func (m *Mongo) logDebug(msg string, err error, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.Debug(msg, err, fields)
	}
}

func (m *Mongo) logWarn(msg string, err error, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.Warn(msg, err, fields)
	}
}
