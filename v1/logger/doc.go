// Package logger provides the structured logger shared by the std packages.
//
// LoggerClient wraps a zap.Logger that writes one JSON object per entry to
// stderr, with an ISO8601 "timestamp", a capitalised "level", the caller and
// two fields present on every entry: "pid" and "service". The exposed Zap
// field gives direct access to the underlying logger.
//
// Every method takes a message, an optional error (written under "error") and
// any number of field maps; later maps override earlier keys:
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Info,
//		ServiceName: "inventory",
//	})
//
//	log.Warn("MongoDB rejected write", err, map[string]interface{}{
//		"collection": "items",
//	})
//
// # Trace correlation
//
// With EnableTracing set, the *WithContext methods add "trace_id" and
// "span_id" taken from the OpenTelemetry span in the context. Without a span,
// or with tracing disabled, they behave like the plain methods.
//
//	log.InfoWithContext(ctx, "Catalog imported", nil, nil)
//
// # Clients
//
// Client packages declare the subset of Logger they need, e.g. mongo.Logger,
// and accept *LoggerClient for it. Tests can capture entries with
// NewLoggerClientFromCore and zaptest/observer.
//
// # FX Module Integration
//
// FXModule provides *LoggerClient and the Logger interface, and flushes
// buffered entries with Sync when the application stops:
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{Level: logger.Debug, EnableTracing: true, ServiceName: "inventory"}
//		}),
//	)
//
// # Configuration
//
//	ZAP_LOGGER_LEVEL=debug          # debug, info, warning or error; anything else is info
//	LOGGER_ENABLE_TRACING=true      # add trace_id and span_id in *WithContext methods
//	LOGGER_SERVICE_NAME=inventory   # value of the "service" field
//
// All methods are safe for concurrent use.
package logger
