package mongo

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cpunk/mongostd/v1/observability"
)

// observeOperation notifies the observer about an operation if one is configured.
//
// Notes:
//   - resource: the collection being operated on
//   - subResource: the filtered field(s), if any
func (m *Mongo) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if m == nil || m.observer == nil {
		return
	}

	m.observer.ObserveOperation(observability.OperationContext{
		Component:   "mongo",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}

// operation tracks one facade call: its span, its start time and what to
// report to the observer when it ends.
type operation struct {
	m           *Mongo
	span        trace.Span
	name        string
	collection  string
	subResource string
	start       time.Time
}

func (m *Mongo) begin(ctx context.Context, name, collection, subResource string) (context.Context, *operation) {
	tracer := m.tracer
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	ctx, span := tracer.Start(ctx, "mongo."+name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "mongodb"),
			attribute.String("db.name", m.cfg.Database),
			attribute.String("db.collection", collection),
			attribute.String("db.operation", name),
		),
	)
	return ctx, &operation{
		m:           m,
		span:        span,
		name:        name,
		collection:  collection,
		subResource: subResource,
		start:       time.Now(),
	}
}

// end closes the span and reports the outcome. err is the outcome of the
// operation, which may differ from what the caller receives: rejected writes
// are reported as errors here but returned as a false result.
func (op *operation) end(err error, size int64) {
	if err != nil {
		op.span.RecordError(err)
		op.span.SetStatus(codes.Error, err.Error())
	}
	op.span.SetAttributes(attribute.Int64("db.documents", size))
	op.span.End()

	duration := time.Since(op.start)
	op.m.observeOperation(op.name, op.collection, op.subResource, duration, err, size, nil)
	op.m.logDebug("MongoDB operation finished", err, map[string]interface{}{
		"operation":   op.name,
		"collection":  op.collection,
		"documents":   size,
		"duration_ms": duration.Milliseconds(),
	})
}
