package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	traceapi "go.opentelemetry.io/otel/trace"
)

// Logger defines the logging methods the tracer needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Tracer provides a simplified API for distributed tracing with OpenTelemetry.
// It owns the process-wide TracerProvider and provides convenient methods for
// creating spans, recording errors, and propagating trace context across
// service boundaries.
//
// The Tracer is safe for concurrent use.
type Tracer struct {
	tracer     *trace.TracerProvider
	propagator propagation.TextMapPropagator
	logger     Logger
}

// NewClient creates the tracer provider and installs it, together with the
// W3C trace context and baggage propagators, as the OpenTelemetry globals.
// Clients such as mongo pick the provider up from there.
//
// logger may be nil.
//
// Example:
//
//	tr, err := tracer.NewClient(tracer.Config{
//	    ServiceName:  "inventory",
//	    AppEnv:       "production",
//	    EnableExport: true,
//	}, log)
//	if err != nil {
//	    return err
//	}
//	defer tr.Shutdown(context.Background())
func NewClient(cfg Config, logger Logger) (*Tracer, error) {
	var options []trace.TracerProviderOption

	if cfg.EnableExport {
		exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient())
		if err != nil {
			if logger != nil {
				logger.Error("cannot initiate tracer", err, nil)
			}
			return nil, fmt.Errorf("failed to create otlp exporter: %w", err)
		}
		options = append(options, trace.WithBatcher(exporter))
	}

	options = append(options, trace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))

	tp := trace.NewTracerProvider(options...)
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagator)

	if logger != nil {
		logger.Info("Tracer initialized", nil, map[string]interface{}{
			"service_name":   cfg.ServiceName,
			"export_enabled": cfg.EnableExport,
		})
	}

	return &Tracer{tracer: tp, propagator: propagator, logger: logger}, nil
}

// TracerProvider returns the provider backing this tracer, e.g. for
// mongo.Mongo.WithTracerProvider.
func (t *Tracer) TracerProvider() traceapi.TracerProvider {
	return t.tracer
}

// RegisterSpanProcessor adds sp to the provider, e.g. a second exporter.
func (t *Tracer) RegisterSpanProcessor(sp trace.SpanProcessor) {
	t.tracer.RegisterSpanProcessor(sp)
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.tracer == nil {
		return nil
	}
	return t.tracer.Shutdown(ctx)
}
